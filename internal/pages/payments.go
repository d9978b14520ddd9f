package pages

import (
	"github.com/aletheia/portal"
	"github.com/aletheia/portal/api"
	"github.com/aletheia/portal/format"
	"github.com/aletheia/portal/h"
)

var paymentStatuses = []struct{ value, label string }{
	{"all", "All"},
	{"successful", "Paid"},
	{"pending", "Pending"},
	{"failed", "Failed"},
}

func (p *Pages) payments(c *portal.Context) error {
	v := viewerOf(c)
	subtitle := "Track rent collections across your properties."
	if v.role == portal.RoleTenant {
		subtitle = "Your rent payment history."
	}
	paymentFilter.Reset(c)

	err := c.Render(p.layout(c, "#/payments", "Payments",
		h.Div(h.Class("page-header"),
			h.Div(
				h.H1(h.Text("Payments")),
				h.P(h.ID("payments-subtitle"), h.Class("muted"), h.Text(subtitle)),
			),
		),
		p.paymentFilters(c),
		h.Table(h.Class("data-table"),
			h.THead(h.Tr(
				h.Th(h.Text("Tenant")), h.Th(h.Text("Property")), h.Th(h.Text("Amount")),
				h.Th(h.Text("Period")), h.Th(h.Text("Status")), h.Th(h.Text("Date")),
			)),
			emptyRow("payments-body", 6, "Loading..."),
		),
	))
	if err != nil {
		return err
	}

	list, err := c.API().ListPayments(c.Context(), "")
	if err != nil {
		return failed(c, err, emptyRow("payments-body", 6, "Failed to load payments."))
	}
	paymentsCache.Set(c, list)
	return c.Render(paymentRows(list, "all"))
}

func (p *Pages) paymentFilters(c *portal.Context) h.H {
	active := paymentFilter.Get(c)
	return h.Div(h.ID("payment-filters"), h.Role("group"),
		h.Map(paymentStatuses, func(s struct{ value, label string }) h.H {
			class := "filter-btn outline"
			if s.value == active {
				class = "filter-btn"
			}
			return h.Button(h.ID("filter-"+s.value), h.Type("button"), h.Class(class),
				h.Attr("aria-pressed", boolString(s.value == active)),
				p.filterPayments.OnClick(c, "status", s.value),
				h.Text(s.label))
		}),
	)
}

func paymentRows(list []api.PaymentWithDetails, status string) h.H {
	rows := make([]h.H, 0, len(list))
	for i, pay := range list {
		if status != "all" && pay.Status != status {
			continue
		}
		date := pay.CreatedAt
		if pay.PaidAt != nil {
			date = *pay.PaidAt
		}
		rows = append(rows, h.Tr(
			h.Td(avatarCell(i, nonEmpty(pay.Tenant(), "Tenant"), "")),
			h.Td(h.Text(pay.Building()), h.If(pay.Unit() != "", h.Small(h.Class("muted"), h.Text(" · "+pay.Unit())))),
			h.Td(h.Strong(h.Text(format.Money(pay.Amount)))),
			h.Td(h.Text(nonEmpty(pay.Period, format.Empty))),
			h.Td(format.StatusBadge(pay.Status)),
			h.Td(h.Text(format.DateString(date))),
		))
	}
	if len(rows) == 0 {
		return emptyRow("payments-body", 6, "No payments found")
	}
	return h.TBody(h.ID("payments-body"), h.Group(rows...))
}

func (p *Pages) onFilterPayments(c *portal.Context) error {
	status := c.FormValue("status")
	switch status {
	case "all", "successful", "pending", "failed":
	default:
		status = "all"
	}
	paymentFilter.Set(c, status)
	return c.Render(p.paymentFilters(c), paymentRows(paymentsCache.Get(c), status))
}
