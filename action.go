package portal

import (
	"fmt"
	"net/url"

	"github.com/aletheia/portal/h"
)

// ActionFunc handles a posted action for the tab's current page.
type ActionFunc func(c *Context) error

// ActionHandle represents a handle to a named action.
type ActionHandle struct {
	name string
}

// Name returns the action's registered name.
func (a *ActionHandle) Name() string {
	return a.name
}

// URL is the endpoint the browser posts to. args are key/value pairs added to the query.
func (a *ActionHandle) URL(c *Context, args ...string) string {
	u := fmt.Sprintf("/_action/%s/%s", c.tab.id, a.name)
	if len(args) > 1 {
		q := url.Values{}
		for i := 0; i+1 < len(args); i += 2 {
			q.Set(args[i], args[i+1])
		}
		u += "?" + q.Encode()
	}
	return u
}

// OnSubmit returns an h attribute for a <form> that posts its fields to the action.
func (a *ActionHandle) OnSubmit(c *Context, args ...string) h.H {
	return h.DataOn("submit", fmt.Sprintf("@post('%s', {contentType: 'form'})", a.URL(c, args...)))
}

// OnClick returns an h attribute that posts to the action on click.
func (a *ActionHandle) OnClick(c *Context, args ...string) h.H {
	return h.DataOn("click", fmt.Sprintf("@post('%s')", a.URL(c, args...)))
}

// OnChange returns an h attribute that posts the enclosing form when an input changes.
func (a *ActionHandle) OnChange(c *Context, args ...string) h.H {
	return h.DataOn("change", fmt.Sprintf("@post('%s', {contentType: 'form'})", a.URL(c, args...)))
}
