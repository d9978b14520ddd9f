// Package portal is the runtime of the Aletheia web portal.
//
// The browser keeps hash routing: every hash change is sent to the server,
// which runs the matching page controller in Go and patches the result into
// the page over a per-tab Server-Sent Events stream (datastar). Tokens never
// leave the server; they live in a SessionStore keyed by a cookie.
package portal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/aletheia/portal/api"
	"github.com/aletheia/portal/h"
	"github.com/aletheia/portal/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/form"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/starfederation/datastar-go/datastar"
)

var (
	ErrTabNotFound    = errors.New("tab not found")
	ErrActionNotFound = errors.New("action not found")
)

const defaultDatastarURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// App is the root application.
// It owns the client routes, the open tabs and their streams.
type App struct {
	cfg    Options
	log    zerolog.Logger
	router *Router
	forms  *form.Decoder

	tabs   map[string]*Tab
	tabsMu sync.RWMutex

	actions   map[string]ActionFunc
	actionsMu sync.RWMutex

	documentHeadIncludes []h.H
	documentFootIncludes []h.H
	handlers             []mounted
	middlewares          []func(http.Handler) http.Handler

	sweeper   *Routine
	buildOnce sync.Once
	handler   http.Handler
	done      chan struct{}
	closeOnce sync.Once
}

type mounted struct {
	pattern string
	handler http.Handler
}

// New creates a portal application with default configuration.
func New() *App {
	a := &App{
		router:  NewRouter(),
		forms:   form.NewDecoder(),
		tabs:    make(map[string]*Tab),
		actions: make(map[string]ActionFunc),
		log:     zerolog.Nop(),
		done:    make(chan struct{}),
		cfg: Options{
			ServerAddress:       ":8080",
			LogLvl:              LogLevelInfo,
			DocumentTitle:       "Aletheia",
			SessionCookieName:   "aletheia_sid",
			SessionCookieMaxAge: 30 * 24 * time.Hour,
			TabTTL:              30 * time.Minute,
			Store:               NewMemoryStore(),
			DatastarURL:         defaultDatastarURL,
			ReadTimeout:         15 * time.Second,
		},
	}
	a.sweeper = NewRoutine(time.Minute, a.sweep)
	return a
}

// Config overrides the default configuration with the non-zero fields of cfg.
func (a *App) Config(cfg Options) {
	if cfg.ServerAddress != "" {
		a.cfg.ServerAddress = cfg.ServerAddress
	}
	if cfg.LogLvl != undefined {
		a.cfg.LogLvl = cfg.LogLvl
	}
	if cfg.Logger != nil {
		a.cfg.Logger = cfg.Logger
	}
	if a.cfg.Logger != nil {
		a.log = a.cfg.Logger.Level(a.cfg.LogLvl.zerolog())
	}
	if cfg.DocumentTitle != "" {
		a.cfg.DocumentTitle = cfg.DocumentTitle
	}
	if cfg.SessionCookieName != "" {
		a.cfg.SessionCookieName = cfg.SessionCookieName
	}
	if cfg.SessionCookieMaxAge != 0 {
		a.cfg.SessionCookieMaxAge = cfg.SessionCookieMaxAge
	}
	if cfg.TabTTL != 0 {
		a.cfg.TabTTL = cfg.TabTTL
		a.sweeper = NewRoutine(sweepInterval(cfg.TabTTL), a.sweep)
	}
	if cfg.Store != nil {
		a.cfg.Store = cfg.Store
	}
	if cfg.API != nil {
		a.cfg.API = cfg.API
	}
	if cfg.DatastarURL != "" {
		a.cfg.DatastarURL = cfg.DatastarURL
	}
	if cfg.ActionRate != "" {
		a.cfg.ActionRate = cfg.ActionRate
	}
	if cfg.ReadTimeout != 0 {
		a.cfg.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout != 0 {
		a.cfg.WriteTimeout = cfg.WriteTimeout
	}
	for _, plugin := range cfg.Plugins {
		if plugin != nil {
			plugin.Register(a)
		}
	}
}

func sweepInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	if ttl < time.Minute {
		return ttl
	}
	return time.Minute
}

// Options returns the effective configuration.
func (a *App) Options() Options { return a.cfg }

// Logger returns the application logger.
func (a *App) Logger() zerolog.Logger { return a.log }

// Router returns the client route table.
func (a *App) Router() *Router { return a.router }

// AppendToHead appends the given h.H nodes to the head of the shell document.
// Useful for including css stylesheets and JS scripts.
func (a *App) AppendToHead(elements ...h.H) {
	for _, el := range elements {
		if el != nil {
			a.documentHeadIncludes = append(a.documentHeadIncludes, el)
		}
	}
}

// AppendToFoot appends the given h.H nodes to the end of the shell document body.
func (a *App) AppendToFoot(elements ...h.H) {
	for _, el := range elements {
		if el != nil {
			a.documentFootIncludes = append(a.documentFootIncludes, el)
		}
	}
}

// Page registers a client route and its page controller.
//
// Example:
//
//	app.Page("/buildings/:id", portal.HandlerFunc(func(c *portal.Context) error {
//		return c.Render(h.Div(h.ID("app"), h.Text(c.Param("id"))))
//	}))
func (a *App) Page(pattern string, handler Handler, guards ...Guard) *Route {
	return a.router.Register(pattern, handler, guards...)
}

// Action registers a named action. Registering a name twice replaces the function.
func (a *App) Action(name string, fn ActionFunc) *ActionHandle {
	if fn == nil {
		a.log.Error().Str("action", name).Msg("failed to bind action: nil func")
		return &ActionHandle{name: name}
	}
	a.actionsMu.Lock()
	defer a.actionsMu.Unlock()
	a.actions[name] = fn
	return &ActionHandle{name: name}
}

func (a *App) action(name string) (ActionFunc, bool) {
	a.actionsMu.RLock()
	defer a.actionsMu.RUnlock()
	fn, ok := a.actions[name]
	return fn, ok
}

// Handle mounts an extra HTTP handler, e.g. metrics or static assets.
// It must be called before Handler.
func (a *App) Handle(pattern string, handler http.Handler) {
	a.handlers = append(a.handlers, mounted{pattern, handler})
}

// Use adds HTTP middleware around every portal endpoint. It must be called before Handler.
func (a *App) Use(mw ...func(http.Handler) http.Handler) {
	a.middlewares = append(a.middlewares, mw...)
}

// OpenTab registers a new tab for the browser session sid.
func (a *App) OpenTab(sid string) *Tab {
	t := newTab(uuid.NewString(), sid)
	a.tabsMu.Lock()
	a.tabs[t.id] = t
	n := len(a.tabs)
	a.tabsMu.Unlock()
	metrics.TabsActive.Set(float64(n))
	a.log.Debug().Str("tab", t.id).Msg("tab opened")
	return t
}

// Tab looks up an open tab.
func (a *App) Tab(id string) (*Tab, error) {
	a.tabsMu.RLock()
	defer a.tabsMu.RUnlock()
	if t, ok := a.tabs[id]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrTabNotFound, id)
}

func (a *App) sweep(context.Context) {
	if a.cfg.TabTTL <= 0 {
		return
	}
	cutoff := time.Now().Add(-a.cfg.TabTTL)
	a.tabsMu.Lock()
	removed := 0
	for id, t := range a.tabs {
		if t.idleSince(cutoff) {
			t.dispose()
			delete(a.tabs, id)
			removed++
		}
	}
	n := len(a.tabs)
	a.tabsMu.Unlock()
	metrics.TabsActive.Set(float64(n))
	if removed > 0 {
		a.log.Debug().Int("removed", removed).Int("open", n).Msg("idle tabs swept")
	}
}

// Navigate runs the page controller for hash in tab. A navigation already
// running in the tab is cancelled and its remaining output discarded.
func (a *App) Navigate(ctx context.Context, tab *Tab, hash string) {
	a.navigate(ctx, tab, hash)
}

func (a *App) navigate(parent context.Context, tab *Tab, hash string) uint64 {
	ctx, epoch := tab.begin(parent, hash)
	defer tab.end(epoch)
	start := time.Now()

	route, params, ok := a.router.Resolve(hash)
	if !ok {
		c := newContext(ctx, a, tab, epoch, "", nil)
		if c.session.IsAuthenticated(ctx) {
			c.session.RedirectToDashboard(ctx)
		} else {
			c.Navigate(RootHash)
		}
		c.log.Debug().Str("hash", hash).Msg("no route matched")
		metrics.NavigationsTotal.WithLabelValues("unmatched", "redirect").Inc()
		return epoch
	}

	c := newContext(ctx, a, tab, epoch, route.Pattern, params)
	for _, guard := range route.guards {
		if !guard(c) {
			metrics.NavigationsTotal.WithLabelValues(route.Pattern, "redirect").Inc()
			return epoch
		}
	}

	outcome := "ok"
	if err := safely(func() error { return route.Handler.Init(c) }); err != nil {
		outcome = a.report(c, err, "page init failed")
	}
	metrics.NavigationDuration.WithLabelValues(route.Pattern).Observe(time.Since(start).Seconds())
	metrics.NavigationsTotal.WithLabelValues(route.Pattern, outcome).Inc()
	return epoch
}

// RunAction runs a named action against the tab's current page with the posted values.
func (a *App) RunAction(ctx context.Context, tab *Tab, name string, values url.Values) error {
	fn, ok := a.action(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrActionNotFound, name)
	}
	epoch := tab.snapshot()
	pattern := ""
	route, params, matched := a.router.Resolve(tab.Hash())
	if matched {
		pattern = route.Pattern
	}
	c := newContext(ctx, a, tab, epoch, pattern, params)
	if values != nil {
		c.form = values
	}
	c.log = c.log.With().Str("action", name).Logger()

	err := safely(func() error { return fn(c) })
	outcome := "ok"
	if err != nil {
		outcome = a.report(c, err, "action failed")
	}
	metrics.ActionsTotal.WithLabelValues(name, outcome).Inc()
	return err
}

// report logs err and shows it as a toast unless the navigation was superseded
// or the session was sent to the login screen.
func (a *App) report(c *Context, err error, msg string) string {
	if errors.Is(err, context.Canceled) || !c.Current() {
		c.log.Debug().Err(err).Msg("superseded")
		return "superseded"
	}
	c.log.Error().Err(err).Str("hash", c.tab.Hash()).Msg(msg)
	if !errors.Is(err, api.ErrUnauthenticated) {
		c.Toast(ToastError, UserMessage(err))
	}
	return "error"
}

// UserMessage is the text shown to the user for err.
func UserMessage(err error) string {
	var apiErr *api.Error
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, api.ErrUnauthenticated):
		return api.ErrUnauthenticated.Error()
	default:
		return "Something went wrong. Please try again."
	}
}

func safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

// Handler returns the HTTP handler serving the shell page, streams and actions.
func (a *App) Handler() http.Handler {
	a.buildOnce.Do(func() {
		a.handler = a.buildRouter()
	})
	return a.handler
}

func (a *App) buildRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, a.accessLog, middleware.Recoverer)
	r.Use(a.middlewares...)

	r.With(compress).Get("/", a.serveShell)
	r.Get("/_sse/{tab}", a.serveStream)
	r.Get("/_nav/{tab}", a.serveNav)
	r.With(a.actionLimiter()...).Post("/_action/{tab}/{action}", a.serveAction)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "tabs": a.tabCount()})
	})
	for _, m := range a.handlers {
		r.Handle(m.pattern, m.handler)
	}
	return r
}

func (a *App) tabCount() int {
	a.tabsMu.RLock()
	defer a.tabsMu.RUnlock()
	return len(a.tabs)
}

// sessionID reads the session cookie, issuing a new one when absent.
func (a *App) sessionID(w http.ResponseWriter, r *http.Request) string {
	if ck, err := r.Cookie(a.cfg.SessionCookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	sid := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     a.cfg.SessionCookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(a.cfg.SessionCookieMaxAge / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}

func (a *App) serveShell(w http.ResponseWriter, r *http.Request) {
	tab := a.OpenTab(a.sessionID(w, r))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := a.shell(tab).Render(w); err != nil {
		a.log.Error().Err(err).Str("tab", tab.id).Msg("failed to render shell")
	}
}

func (a *App) shell(tab *Tab) h.H {
	withHash := func(endpoint string) string {
		return fmt.Sprintf("@get('/%s/%s?hash=' + encodeURIComponent(location.hash))", endpoint, tab.id)
	}
	head := []h.H{h.Script(h.Type("module"), h.Src(a.cfg.DatastarURL))}
	head = append(head, a.documentHeadIncludes...)
	body := []h.H{
		h.Div(h.ID("stream"), h.Data("tab", tab.id), h.Data("init", withHash("_sse"))),
		h.Div(h.ID("router"), h.DataOnWindow("hashchange", withHash("_nav"))),
		h.Div(h.ID("app"), h.Attr("aria-busy", "true")),
		h.Div(h.ID(ToastRegion)),
	}
	body = append(body, a.documentFootIncludes...)
	return h.HTML5(h.HTML5Props{
		Title:    a.cfg.DocumentTitle,
		Language: "en",
		Head:     head,
		Body:     body,
	})
}

// serveStream holds the tab's SSE stream open, navigating once on connect so a
// reconnecting browser gets the current page again.
func (a *App) serveStream(w http.ResponseWriter, r *http.Request) {
	tab, err := a.Tab(chi.URLParam(r, "tab"))
	sse := datastar.NewSSE(w, r)
	if err != nil {
		a.log.Warn().Err(err).Msg("stream for unknown tab")
		_ = sse.ExecuteScript("window.location.reload()")
		return
	}
	tab.streamOpened()
	metrics.StreamsOpen.Inc()
	defer func() {
		tab.streamClosed()
		metrics.StreamsOpen.Dec()
		a.log.Debug().Str("tab", tab.id).Msg("stream closed")
	}()
	a.log.Debug().Str("tab", tab.id).Msg("stream opened")

	ctx := sse.Context()
	hash := r.URL.Query().Get("hash")
	go a.Navigate(ctx, tab, hash)

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.done:
			return
		case p := <-tab.patches:
			if !tab.Current(p) {
				continue
			}
			if err := writePatch(sse, p); err != nil {
				a.log.Debug().Err(err).Str("tab", tab.id).Msg("stream write failed")
				return
			}
		}
	}
}

func writePatch(sse *datastar.ServerSentEventGenerator, p Patch) error {
	switch p.Kind {
	case PatchElements:
		return sse.PatchElements(p.Content)
	case PatchNavigate:
		hash, err := json.Marshal(p.Content)
		if err != nil {
			return err
		}
		return sse.ExecuteScript("window.location.hash = " + string(hash))
	case PatchRedirect:
		return sse.Redirect(p.Content)
	case PatchSignals:
		return sse.PatchSignals([]byte(p.Content))
	default:
		return fmt.Errorf("unknown patch kind %d", p.Kind)
	}
}

func (a *App) serveNav(w http.ResponseWriter, r *http.Request) {
	tab, err := a.Tab(chi.URLParam(r, "tab"))
	if err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ExecuteScript("window.location.reload()")
		return
	}
	a.Navigate(r.Context(), tab, r.URL.Query().Get("hash"))
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) serveAction(w http.ResponseWriter, r *http.Request) {
	tab, err := a.Tab(chi.URLParam(r, "tab"))
	if err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ExecuteScript("window.location.reload()")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	name := chi.URLParam(r, "action")
	if err := a.RunAction(r.Context(), tab, name, r.Form); errors.Is(err, ErrActionNotFound) {
		a.log.Warn().Str("tab", tab.id).Str("action", name).Msg("unknown action")
		http.Error(w, "unknown action", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Start serves the portal on ServerAddress until ctx ends, then shuts down gracefully.
func (a *App) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.ServerAddress,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       a.cfg.ReadTimeout,
		WriteTimeout:      a.cfg.WriteTimeout,
	}
	a.sweeper.Start(ctx)
	defer a.sweeper.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	a.log.Info().Str("addr", a.cfg.ServerAddress).Msg("portal started")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	a.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// Close ends every open stream and cancels running navigations.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		close(a.done)
		a.tabsMu.Lock()
		defer a.tabsMu.Unlock()
		for _, t := range a.tabs {
			t.dispose()
		}
	})
}
