package pages

import (
	"github.com/aletheia/portal"
	"github.com/aletheia/portal/h"
)

var features = []struct{ title, text string }{
	{"Rent collection", "Tenants pay online and every payment lands in one ledger."},
	{"Tenant onboarding", "Invite tenants to a unit by email or phone with a single link."},
	{"Maintenance", "Requests arrive with a priority and move from open to resolved."},
	{"Documents", "Leases and receipts stay attached to the right building."},
}

func (p *Pages) landing(c *portal.Context) error {
	if c.Session().IsAuthenticated(c.Context()) {
		c.Session().RedirectToDashboard(c.Context())
		return nil
	}
	return c.Render(h.Div(h.ID("app"), h.Class("landing"),
		h.Header(h.Class("landing-nav"),
			h.Strong(h.Text("Aletheia")),
			h.Nav(
				h.A(h.Href("#/login"), h.Text("Sign in")),
				h.A(h.Href("#/signup"), h.Role("button"), h.Text("Get started")),
			),
		),
		h.Section(h.ID("hero"), h.Class("hero"),
			h.H1(h.Text("Managing properties in Nigeria made simple")),
			h.P(h.Text("Collect rent, onboard tenants and track repairs across your whole portfolio.")),
			h.Div(h.Class("hero-actions"),
				h.A(h.Href("#/signup"), h.Role("button"), h.Text("Create a free account")),
				h.A(h.Href("#/login"), h.Class("secondary"), h.Role("button"), h.Text("Sign in")),
			),
		),
		h.Section(h.ID("features"), h.Class("feature-grid"),
			h.Map(features, func(f struct{ title, text string }) h.H {
				return h.Article(h.H3(h.Text(f.title)), h.P(h.Text(f.text)))
			}),
		),
	))
}
