package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/aletheia/portal/api"
	"github.com/aletheia/portal/h"
	"github.com/rs/zerolog"
)

// Context is the bridge between a page controller and one browser tab for the
// length of a navigation or an action.
//
// Writes made through a Context are dropped once the tab has moved on to a
// newer navigation, and its context.Context is cancelled at that point.
type Context struct {
	ctx     context.Context
	app     *App
	tab     *Tab
	epoch   uint64
	route   string
	params  Params
	form    url.Values
	session *Session
	api     *api.Client
	log     zerolog.Logger
}

func newContext(ctx context.Context, app *App, tab *Tab, epoch uint64, route string, params Params) *Context {
	if params == nil {
		params = Params{}
	}
	c := &Context{
		ctx:    ctx,
		app:    app,
		tab:    tab,
		epoch:  epoch,
		route:  route,
		params: params,
		form:   url.Values{},
	}
	c.log = app.log.With().Str("tab", tab.id).Str("route", route).Logger()
	c.session = NewSession(tab.sid, app.cfg.Store, c)
	c.session.log = c.log
	if app.cfg.API != nil {
		c.api = app.cfg.API.WithCredentials(c.session.Credentials())
	}
	return c
}

// Context returns the context.Context of the navigation or action.
func (c *Context) Context() context.Context { return c.ctx }

// Param returns a route binding or query value.
func (c *Context) Param(name string) string { return c.params.Get(name) }

func (c *Context) Params() Params { return c.params }

// Route is the pattern that matched, e.g. "/buildings/:id".
func (c *Context) Route() string { return c.route }

func (c *Context) Session() *Session { return c.session }

// API returns the backend client bound to this tab's session.
func (c *Context) API() *api.Client { return c.api }

func (c *Context) Log() *zerolog.Logger { return &c.log }

func (c *Context) Tab() *Tab { return c.tab }

// Current reports whether the tab is still on this Context's navigation.
func (c *Context) Current() bool {
	return c.tab.isCurrent(c.epoch)
}

// Render patches each node into the element sharing its id.
//
// Example:
//
//	c.Render(h.Div(h.ID("dash-stats"), h.Text("Loading...")))
func (c *Context) Render(nodes ...h.H) error {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		html, err := h.String(n)
		if err != nil {
			return fmt.Errorf("rendering patch: %w", err)
		}
		c.send(Patch{Kind: PatchElements, Content: html})
	}
	return nil
}

// Navigate moves the browser to hash, e.g. "#/login". The browser then
// navigates the tab as if the user had followed a link.
func (c *Context) Navigate(hash string) {
	c.send(Patch{Kind: PatchNavigate, Content: hash})
}

// Redirect sends the browser to an absolute URL, leaving the portal.
func (c *Context) Redirect(u string) {
	c.send(Patch{Kind: PatchRedirect, Content: u})
}

// Toast kinds.
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
)

// ToastRegion is the id of the element toasts are rendered into.
const ToastRegion = "toasts"

// Toast shows a transient notification.
func (c *Context) Toast(kind, msg string) {
	_ = c.Render(h.Div(h.ID(ToastRegion),
		h.Div(
			h.Class("toast toast-"+kind),
			h.Role("status"),
			h.DataInit("setTimeout(() => el.remove(), 4500)"),
			h.Text(msg),
		),
	))
}

// Reload runs the tab's current navigation again. Later writes through c
// belong to the reloaded page.
func (c *Context) Reload() {
	c.epoch = c.app.navigate(c.ctx, c.tab, c.tab.Hash())
}

// FormValue returns a posted form or query value of the action being run.
func (c *Context) FormValue(key string) string {
	return c.form.Get(key)
}

// Form returns every posted value of the action being run.
func (c *Context) Form() url.Values { return c.form }

// Decode fills dst from the posted form using its `form` struct tags.
func (c *Context) Decode(dst any) error {
	if err := c.app.forms.Decode(dst, c.form); err != nil {
		return fmt.Errorf("decoding form: %w", err)
	}
	return nil
}

// Signals sends datastar signal values to the browser.
func (c *Context) Signals(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding signals: %w", err)
	}
	c.send(Patch{Kind: PatchSignals, Content: string(b)})
	return nil
}

func (c *Context) send(p Patch) {
	p.epoch = c.epoch
	if !c.tab.enqueue(c.ctx, p) {
		c.log.Debug().Int("kind", int(p.Kind)).Msg("patch dropped")
	}
}
