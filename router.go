package portal

import (
	"net/url"
	"strings"
	"sync"
)

// Handler initializes a page for a navigation.
type Handler interface {
	Init(c *Context) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(c *Context) error

func (f HandlerFunc) Init(c *Context) error { return f(c) }

// Params are the route bindings of a navigation merged with its query string.
type Params map[string]string

// Get returns the value for key, or "".
func (p Params) Get(key string) string {
	return p[key]
}

// Route is a compiled pattern such as "/buildings/:id".
type Route struct {
	Pattern  string
	Handler  Handler
	segments []string
	guards   []Guard
}

// Router holds routes in an explicit order. Match walks them front to back and
// the first route that fits wins, so registration order is the precedence.
type Router struct {
	mu     sync.RWMutex
	routes []*Route
}

func NewRouter() *Router {
	return &Router{}
}

// Register appends a route. Registering a pattern again replaces its handler
// and guards but keeps its position.
func (rt *Router) Register(pattern string, handler Handler, guards ...Guard) *Route {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	for _, r := range rt.routes {
		if r.Pattern == pattern {
			r.Handler = handler
			r.guards = guards
			return r
		}
	}
	r := &Route{
		Pattern:  pattern,
		Handler:  handler,
		segments: strings.Split(pattern, "/"),
		guards:   guards,
	}
	rt.routes = append(rt.routes, r)
	return r
}

// Routes lists the registered patterns in precedence order.
func (rt *Router) Routes() []string {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	out := make([]string, len(rt.routes))
	for i, r := range rt.routes {
		out[i] = r.Pattern
	}
	return out
}

// Match finds the first route fitting path.
func (rt *Router) Match(path string) (*Route, Params, bool) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	segs := strings.Split(path, "/")
	for _, r := range rt.routes {
		if params, ok := r.match(segs); ok {
			return r, params, true
		}
	}
	return nil, nil, false
}

// Resolve matches a location hash such as "#/buildings/42?tab=units".
// Query values override route bindings of the same name.
func (rt *Router) Resolve(hash string) (*Route, Params, bool) {
	path, query := SplitHash(hash)
	r, params, ok := rt.Match(path)
	if !ok {
		return nil, nil, false
	}
	for k, vs := range parseQuery(query) {
		params[k] = vs
	}
	return r, params, true
}

// SplitHash strips the leading "#" and splits on the first "?". A bare "/" is the root route "".
func SplitHash(hash string) (path, query string) {
	hash = strings.TrimPrefix(hash, "#")
	path, query, _ = strings.Cut(hash, "?")
	if path == "/" {
		path = ""
	}
	return path, query
}

func (r *Route) match(segs []string) (Params, bool) {
	if len(segs) != len(r.segments) {
		return nil, false
	}
	params := Params{}
	for i, seg := range r.segments {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			params[name] = segs[i]
			continue
		}
		if seg != segs[i] {
			return nil, false
		}
	}
	return params, true
}

// matchRoute reports whether path fits pattern, binding ":name" segments verbatim.
func matchRoute(pattern, path string) (Params, bool) {
	r := &Route{Pattern: pattern, segments: strings.Split(pattern, "/")}
	return r.match(strings.Split(path, "/"))
}

// parseQuery keeps the last value of repeated keys.
func parseQuery(q string) map[string]string {
	out := map[string]string{}
	if q == "" {
		return out
	}
	values, _ := url.ParseQuery(q)
	for k, vs := range values {
		if len(vs) > 0 {
			out[k] = vs[len(vs)-1]
		}
	}
	return out
}
