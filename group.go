package portal

// Guard runs before a page initializer. Returning false stops the navigation;
// the guard is expected to have redirected.
type Guard func(c *Context) bool

// RequireAuth lets only signed-in sessions through.
func RequireAuth() Guard {
	return func(c *Context) bool {
		return c.Session().RequireAuth(c.Context())
	}
}

// RequireRole lets only sessions with role through, sending others to their own dashboard.
func RequireRole(role string) Guard {
	return func(c *Context) bool {
		return c.Session().RequireRole(c.Context(), role)
	}
}

// Group represents a route group with a common prefix and guards.
type Group struct {
	app    *App
	prefix string
	guards []Guard
}

// Group creates a new route group with the given prefix.
// The callback receives the Group for registering routes.
func (a *App) Group(prefix string, fn func(*Group)) {
	g := &Group{
		app:    a,
		prefix: prefix,
	}
	fn(g)
}

// Use adds guards to this group only.
func (g *Group) Use(guards ...Guard) {
	g.guards = append(g.guards, guards...)
}

// Group creates a nested route group within this group.
func (g *Group) Group(prefix string, fn func(*Group)) {
	child := &Group{
		app:    g.app,
		prefix: g.prefix + prefix,
		guards: append([]Guard{}, g.guards...),
	}
	fn(child)
}

// Page registers a page route within the group. Guards run in the order they were added.
func (g *Group) Page(pattern string, handler Handler) *Route {
	return g.app.router.Register(g.prefix+pattern, handler, append([]Guard{}, g.guards...)...)
}
