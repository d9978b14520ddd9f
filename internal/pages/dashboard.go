package pages

import (
	"github.com/aletheia/portal"
	"github.com/aletheia/portal/api"
	"github.com/aletheia/portal/format"
	"github.com/aletheia/portal/h"
)

const (
	recentPaymentsShown = 5
	propertiesShown     = 4
)

func (p *Pages) landlordDashboard(c *portal.Context) error {
	ctx := c.Context()
	user, _ := c.Session().User(ctx)
	err := c.Render(p.layout(c, "#/dashboard", "Dashboard",
		h.Div(h.Class("page-header"),
			h.H1(h.Text("Welcome back, "), h.Span(h.ID("dash-name"), h.Text(format.FirstName(user.FullName, "Chief")))),
			h.P(h.Class("muted"), h.Text("Here is how your portfolio is doing.")),
		),
		message("dash-stats", "Loading..."),
		h.Div(h.Class("grid-2"),
			h.Article(h.H3(h.Text("Recent Payments")), message("dash-payments", "Loading...")),
			h.Article(h.H3(h.Text("Your Properties")), message("dash-properties", "Loading...")),
		),
	))
	if err != nil {
		return err
	}

	d, err := c.API().LandlordDashboard(ctx)
	if err != nil {
		return failed(c, err, message("dash-stats", "Unable to load dashboard data."))
	}
	return c.Render(
		dashboardStats(d),
		recentPayments(d.RecentPayments),
		dashboardProperties(d.ActiveBuildings),
	)
}

func dashboardStats(d api.LandlordDashboard) h.H {
	occ := format.OccupancyPercent(d.OccupiedUnits, d.TotalUnits)
	pendingNote := "All caught up"
	if d.TotalPending > 0 {
		pendingNote = "Action needed"
	}
	return statCards("dash-stats", []stat{
		{label: "Total Properties", value: itoa(d.TotalBuildings)},
		{label: "Total Units", value: itoa(d.TotalUnits), note: itoa(d.OccupiedUnits) + " occupied"},
		{label: "Occupancy Rate", value: itoa(occ) + "%", bar: occ, hasBar: true},
		{label: "Collected", value: format.Naira(d.TotalCollected), highlight: true},
		{label: "Pending", value: format.Naira(d.TotalPending), note: pendingNote},
	})
}

func recentPayments(payments []api.PaymentWithDetails) h.H {
	if len(payments) == 0 {
		return message("dash-payments", "No recent payments")
	}
	if len(payments) > recentPaymentsShown {
		payments = payments[:recentPaymentsShown]
	}
	rows := make([]h.H, 0, len(payments))
	for i, pay := range payments {
		rows = append(rows, h.Tr(
			h.Td(avatarCell(i, nonEmpty(pay.Tenant(), "Tenant"), "")),
			h.Td(h.Text(nonEmpty(pay.Building(), format.Empty))),
			h.Td(h.Strong(h.Text(format.Money(pay.Amount)))),
			h.Td(format.StatusBadge(pay.Status)),
		))
	}
	return h.Div(h.ID("dash-payments"),
		h.Table(h.Class("data-table"),
			h.THead(h.Tr(h.Th(h.Text("Tenant")), h.Th(h.Text("Building")), h.Th(h.Text("Amount")), h.Th(h.Text("Status")))),
			h.TBody(rows...),
		),
	)
}

func dashboardProperties(buildings []api.BuildingWithStats) h.H {
	if len(buildings) == 0 {
		return message("dash-properties", "No properties yet")
	}
	if len(buildings) > propertiesShown {
		buildings = buildings[:propertiesShown]
	}
	return h.Div(h.ID("dash-properties"), h.Map(buildings, func(b api.BuildingWithStats) h.H {
		return h.A(h.Class("property-row"), h.Href("#/buildings/"+b.ID),
			h.Div(
				h.Strong(h.Text(b.Name)),
				h.Small(h.Class("muted"), h.Text(b.Address)),
			),
			h.Small(h.Textf("%d units · %d%% occupied", b.TotalUnits, format.OccupancyPercent(b.OccupiedUnits, b.TotalUnits))),
		)
	}))
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
