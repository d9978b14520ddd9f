// Package vtest drives a portal app the way a browser tab would, without a
// browser: it loads the shell page, runs navigations and actions, applies the
// streamed patches to an HTML document and follows hash navigations.
package vtest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/aletheia/portal"
)

// maxRedirects bounds how many hash navigations one step follows.
const maxRedirects = 10

var (
	actionURL = regexp.MustCompile(`@post\('([^']+)'`)
	elementID = regexp.MustCompile(`^\s*<[a-zA-Z][a-zA-Z0-9-]*\s[^>]*?\sid="([^"]+)"`)
)

// Browser is one tab of one browser session.
type Browser struct {
	tb       testing.TB
	app      *portal.App
	tab      *portal.Tab
	cookie   *http.Cookie
	doc      *goquery.Document
	hash     string
	redirect string
	signals  map[string]any
	timeout  time.Duration
}

// Open loads the shell page of app with a fresh session.
func Open(tb testing.TB, app *portal.App) *Browser {
	tb.Helper()
	return open(tb, app, nil)
}

// NewTab opens another tab in the same browser session.
func (b *Browser) NewTab() *Browser {
	b.tb.Helper()
	return open(b.tb, b.app, b.cookie)
}

func open(tb testing.TB, app *portal.App, cookie *http.Cookie) *Browser {
	tb.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		tb.Fatalf("vtest: shell returned %d", w.Code)
	}
	for _, ck := range w.Result().Cookies() {
		if ck.Name == app.Options().SessionCookieName {
			cookie = ck
		}
	}
	if cookie == nil {
		tb.Fatalf("vtest: shell did not set a session cookie")
	}

	doc, err := goquery.NewDocumentFromReader(w.Body)
	if err != nil {
		tb.Fatalf("vtest: parsing shell: %v", err)
	}
	id, ok := doc.Find("#stream").Attr("data-tab")
	if !ok {
		tb.Fatalf("vtest: shell has no tab id")
	}
	tab, err := app.Tab(id)
	if err != nil {
		tb.Fatalf("vtest: %v", err)
	}
	return &Browser{
		tb:      tb,
		app:     app,
		tab:     tab,
		cookie:  cookie,
		doc:     doc,
		signals: map[string]any{},
		timeout: 5 * time.Second,
	}
}

// SessionID is the value of the session cookie.
func (b *Browser) SessionID() string { return b.cookie.Value }

// Tab is the tab the browser drives.
func (b *Browser) Tab() *portal.Tab { return b.tab }

// Hash is the location hash after the last step.
func (b *Browser) Hash() string { return b.hash }

// Redirected is the last URL the app sent the browser to outside the portal.
func (b *Browser) Redirected() string { return b.redirect }

// Signals are the datastar signals patched so far.
func (b *Browser) Signals() map[string]any { return b.signals }

// Visit sets the location hash and waits for the app to settle.
func (b *Browser) Visit(hash string) *Browser {
	b.tb.Helper()
	b.hash = hash
	next := b.run(func(ctx context.Context) {
		b.app.Navigate(ctx, b.tab, hash)
	})
	b.follow(next)
	return b
}

// Act posts values to the named action.
func (b *Browser) Act(name string, values url.Values) error {
	b.tb.Helper()
	var err error
	next := b.run(func(ctx context.Context) {
		err = b.app.RunAction(ctx, b.tab, name, values)
	})
	b.follow(next)
	return err
}

// Click posts to the action bound to the click handler of the first element matching selector.
func (b *Browser) Click(selector string) error {
	b.tb.Helper()
	return b.trigger(selector, "data-on:click", nil)
}

// Submit posts values to the submit action of the form matching selector.
func (b *Browser) Submit(selector string, values url.Values) error {
	b.tb.Helper()
	return b.trigger(selector, "data-on:submit", values)
}

func (b *Browser) trigger(selector, attr string, values url.Values) error {
	b.tb.Helper()
	sel := b.doc.Find(selector).First()
	if sel.Length() == 0 {
		b.tb.Fatalf("vtest: no element matches %q", selector)
	}
	expr, ok := sel.Attr(attr)
	if !ok {
		b.tb.Fatalf("vtest: %q has no %s", selector, attr)
	}
	m := actionURL.FindStringSubmatch(expr)
	if m == nil {
		b.tb.Fatalf("vtest: %q does not post to an action: %s", selector, expr)
	}
	u, err := url.Parse(m[1])
	if err != nil {
		b.tb.Fatalf("vtest: bad action url %q: %v", m[1], err)
	}
	form := url.Values{}
	for k, vs := range values {
		form[k] = vs
	}
	for k, vs := range u.Query() {
		form[k] = append(form[k], vs...)
	}
	return b.Act(path.Base(u.Path), form)
}

// run executes fn while draining the tab's patches, returning the last hash
// the app navigated to.
func (b *Browser) run(fn func(ctx context.Context)) string {
	b.tb.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(ctx)
	}()

	next := ""
	for {
		select {
		case p := <-b.tab.Patches():
			if hash, ok := b.apply(p); ok {
				next = hash
			}
		case <-done:
			for {
				select {
				case p := <-b.tab.Patches():
					if hash, ok := b.apply(p); ok {
						next = hash
					}
				default:
					return next
				}
			}
		case <-ctx.Done():
			b.tb.Fatalf("vtest: app did not settle within %s", b.timeout)
			return ""
		}
	}
}

// follow behaves like the hashchange listener: a navigation to the hash
// already shown does not fire.
func (b *Browser) follow(next string) {
	b.tb.Helper()
	for i := 0; next != "" && next != b.hash; i++ {
		if i == maxRedirects {
			b.tb.Fatalf("vtest: too many navigations, last %q", next)
		}
		b.hash = next
		hash := next
		next = b.run(func(ctx context.Context) {
			b.app.Navigate(ctx, b.tab, hash)
		})
	}
}

func (b *Browser) apply(p portal.Patch) (string, bool) {
	if !b.tab.Current(p) {
		return "", false
	}
	switch p.Kind {
	case portal.PatchElements:
		b.patchElements(p.Content)
	case portal.PatchNavigate:
		return p.Content, true
	case portal.PatchRedirect:
		b.redirect = p.Content
	case portal.PatchSignals:
		if err := json.Unmarshal([]byte(p.Content), &b.signals); err != nil {
			b.tb.Errorf("vtest: bad signals patch %q: %v", p.Content, err)
		}
	}
	return "", false
}

// patchElements morphs by id. Each patch holds one element; goquery parses it
// in the context of the target's parent, so table sections survive.
func (b *Browser) patchElements(html string) {
	m := elementID.FindStringSubmatch(html)
	if m == nil {
		b.tb.Errorf("vtest: patch element without id: %s", html)
		return
	}
	target := b.doc.Find(fmt.Sprintf("[id=%q]", m[1]))
	if target.Length() == 0 {
		b.tb.Errorf("vtest: patch target #%s not found", m[1])
		return
	}
	target.ReplaceWithHtml(html)
}

// Find queries the current document.
func (b *Browser) Find(selector string) *goquery.Selection {
	return b.doc.Find(selector)
}

// Text is the whitespace-collapsed text of the #app element.
func (b *Browser) Text() string {
	return strings.Join(strings.Fields(b.doc.Find("#app").Text()), " ")
}

// Toast is the text of the toast currently shown, if any.
func (b *Browser) Toast() string {
	return strings.TrimSpace(b.doc.Find("#" + portal.ToastRegion + " .toast").Last().Text())
}

// AssertText fails the test unless the page contains text.
func (b *Browser) AssertText(text string) {
	b.tb.Helper()
	if !strings.Contains(b.Text(), text) {
		b.tb.Fatalf("vtest: expected page to contain %q, got:\n%s", text, b.Text())
	}
}

// AssertHash fails the test unless the location hash is hash.
func (b *Browser) AssertHash(hash string) {
	b.tb.Helper()
	if b.hash != hash {
		b.tb.Fatalf("vtest: expected hash %q, got %q", hash, b.hash)
	}
}
