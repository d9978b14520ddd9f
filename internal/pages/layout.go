package pages

import (
	"github.com/aletheia/portal"
	"github.com/aletheia/portal/api"
	"github.com/aletheia/portal/format"
	"github.com/aletheia/portal/h"
)

type navItem struct {
	hash, label string
}

var landlordNav = []navItem{
	{"#/dashboard", "Dashboard"},
	{"#/buildings", "Properties"},
	{"#/payments", "Payments"},
	{"#/maintenance", "Maintenance"},
	{"#/documents", "Documents"},
}

var tenantNav = []navItem{
	{"#/tenant", "My Home"},
	{"#/pay-rent", "Pay Rent"},
	{"#/payments", "Payments"},
	{"#/maintenance", "Maintenance"},
	{"#/documents", "Documents"},
}

// viewer is the signed-in profile as the layout shows it.
type viewer struct {
	name string
	role string
}

// viewerOf reads the session profile. Pages shared by both roles fall back to landlord.
func viewerOf(c *portal.Context) viewer {
	v := viewer{name: "User", role: api.RoleLandlord}
	if p, ok := c.Session().User(c.Context()); ok {
		if p.FullName != "" {
			v.name = p.FullName
		}
		if p.Role != "" {
			v.role = p.Role
		}
	}
	return v
}

func portalLabel(role string) string {
	if role == api.RoleTenant {
		return "Tenant Portal"
	}
	return "Landlord Portal"
}

// layout renders the signed-in shell into #app with content in #view.
func (p *Pages) layout(c *portal.Context, active, title string, content ...h.H) h.H {
	v := viewerOf(c)
	nav := landlordNav
	if v.role == api.RoleTenant {
		nav = tenantNav
	}
	initials := format.Initials(v.name)

	return h.Div(h.ID("app"), h.Class("app-layout"),
		h.Aside(h.Class("sidebar"),
			h.Div(h.Class("brand"),
				h.Strong(h.Text("Aletheia")),
				h.Small(h.ID("sidebar-portal-label"), h.Text(portalLabel(v.role))),
			),
			h.Nav(h.Ul(h.Map(nav, func(n navItem) h.H {
				return h.Li(h.A(
					h.Class("nav-link"),
					h.Href(n.hash),
					h.If(n.hash == active, h.AriaCurrent("page")),
					h.Text(n.label),
				))
			}))),
			h.Div(h.Class("sidebar-user"),
				h.Span(h.Class("avatar"), h.Text(initials)),
				h.Div(
					h.Div(h.ID("user-name"), h.Text(v.name)),
					h.Small(h.ID("user-role"), h.Text(v.role)),
				),
			),
			h.Button(h.ID("sign-out"), h.Class("secondary outline"), p.logout.OnClick(c), h.Text("Sign out")),
		),
		h.Main(h.Class("main"),
			h.Header(h.Class("topbar"),
				h.H2(h.ID("topbar-title"), h.Text(title)),
				h.Div(h.Class("topbar-user"),
					h.Span(h.ID("topbar-name"), h.Text(format.FirstName(v.name, "User"))),
					h.Small(h.ID("topbar-role"), h.Text(portalLabel(v.role))),
					h.Span(h.ID("topbar-avatar"), h.Class("avatar"), h.Text(initials)),
				),
			),
			h.Section(h.ID("view"), h.Group(content...)),
		),
	)
}

// stat is one card of a stats row.
type stat struct {
	label, value, note string
	bar                int
	hasBar, highlight  bool
}

func statCards(id string, stats []stat) h.H {
	return h.Div(h.ID(id), h.Class("stat-grid"), h.Map(stats, func(s stat) h.H {
		class := "stat-card"
		if s.highlight {
			class += " stat-card--highlight"
		}
		return h.Article(h.Class(class),
			h.Small(h.Class("stat-label"), h.Text(s.label)),
			h.Div(h.Class("stat-value"), h.Text(s.value)),
			h.If(s.hasBar, h.El("progress", h.Value(itoa(s.bar)), h.Attr("max", "100"))),
			h.If(s.note != "", h.Small(h.Class("stat-note"), h.Text(s.note))),
		)
	}))
}

func avatarCell(i int, name, sub string) h.H {
	return h.Div(h.Class("avatar-cell"),
		h.Span(h.Class("avatar avatar-"+format.AvatarColor(i)), h.Text(format.Initials(name))),
		h.Div(
			h.Strong(h.Text(name)),
			h.If(sub != "", h.Small(h.Class("muted"), h.Text(sub))),
		),
	)
}
