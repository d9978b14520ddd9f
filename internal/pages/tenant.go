package pages

import (
	"strconv"

	"github.com/aletheia/portal"
	"github.com/aletheia/portal/api"
	"github.com/aletheia/portal/format"
	"github.com/aletheia/portal/h"
)

const noUnitHint = "You are not linked to a unit yet. Ask your landlord for an invitation link."

// payRentSummary is what the checkout action pays for, captured when the page loads.
type payRentSummary struct {
	UnitID   string
	Period   string
	Amount   int64
	Building string
	Unit     string
}

func (p *Pages) tenantDashboard(c *portal.Context) error {
	v := viewerOf(c)
	err := c.Render(p.layout(c, "#/tenant", "My Home",
		h.Div(h.Class("page-header"),
			h.Div(
				h.H1(h.Text("Welcome home, "), h.Span(h.ID("tenant-dash-name"), h.Text(format.FirstName(v.name, "Tenant")))),
				h.P(h.ID("tenant-building-subtitle"), h.Class("muted")),
			),
		),
		message("tenant-main", "Loading..."),
	))
	if err != nil {
		return err
	}

	d, err := c.API().TenantDashboard(c.Context())
	if err != nil {
		return failed(c, err, message("tenant-main", "Unable to load your tenancy info."))
	}
	if d.Unit == nil {
		return c.Render(message("tenant-main", nonEmpty(d.Message, noUnitHint)))
	}

	b := d.Building
	if b == nil {
		b = &api.Building{}
	}
	next := d.NextAmount
	if next == 0 {
		next = d.Unit.RentAmount
	}
	last := format.Empty
	if d.LastPayment != nil {
		last = format.Money(d.LastPayment.Amount) + " · " + format.DatePtr(d.LastPayment.PaidAt)
	}

	return c.Render(
		h.P(h.ID("tenant-building-subtitle"), h.Class("muted"),
			h.Text(nonEmpty(b.Name, "Your building")+", "+d.Unit.UnitNumber)),
		h.Div(h.ID("tenant-main"), h.Class("grid-2"),
			h.Article(h.Class("tenant-property-card"),
				h.If(b.PhotoURL != nil, h.Img(h.Src(str(b.PhotoURL)), h.Alt(b.Name))),
				h.Small(h.Class("muted"), h.Text("YOUR PROPERTY")),
				h.H2(h.ID("tenant-building"), h.Text(nonEmpty(b.Name, "Your Building"))),
				h.P(h.Class("muted"), h.Text(b.Address)),
				h.Div(h.Class("stat-grid"),
					h.Div(h.Small(h.Text("Unit Number")), h.Strong(h.ID("tenant-unit"), h.Text(nonEmpty(d.Unit.UnitNumber, format.Empty)))),
					h.Div(h.Small(h.Text("Monthly Rent")), h.Strong(h.Text(format.Money(d.Unit.RentAmount)))),
					h.Div(h.Small(h.Text("Lease Start")), h.Strong(h.Text(format.DatePtr(d.Unit.LeaseStart)))),
					h.Div(h.Small(h.Text("Lease End")), h.Strong(h.Text(format.DatePtr(d.Unit.LeaseEnd)))),
				),
				h.Footer(
					h.Small(h.Text("Next payment due: ")),
					h.Strong(h.Text(nextDue(d.NextDueDate))),
					h.A(h.ID("pay-rent-link"), h.Href("#/pay-rent"), h.Role("button"), h.Text("Pay Rent Now")),
				),
			),
			statCards("tenant-stats", []stat{
				{label: "Total Paid", value: format.Money(d.TotalPaid), highlight: true},
				{label: "Last Payment", value: last},
				{label: "Next Due Amount", value: format.Money(next)},
				{label: "Current Period", value: format.Period(p.now())},
			}),
		),
	)
}

func nextDue(s *string) string {
	if s == nil || *s == "" {
		return "Not scheduled"
	}
	return format.DateString(*s)
}

func (p *Pages) payRent(c *portal.Context) error {
	rentSummary.Reset(c)
	err := c.Render(p.layout(c, "#/pay-rent", "Pay Rent",
		h.Div(h.Class("page-header"),
			h.Div(
				h.H1(h.Text("Pay Your Rent")),
				h.P(h.Class("muted"), h.Text("Complete your monthly rent payment securely through Paystack.")),
			),
		),
		message("pay-rent-summary", "Loading..."),
	))
	if err != nil {
		return err
	}

	d, err := c.API().TenantDashboard(c.Context())
	if err != nil {
		return failed(c, err, message("pay-rent-summary", "Unable to load payment info."))
	}
	if d.Unit == nil {
		return c.Render(message("pay-rent-summary", nonEmpty(d.Message, noUnitHint)))
	}

	s := payRentSummary{
		UnitID: d.Unit.ID,
		Period: format.Period(p.now()),
		Amount: d.NextAmount,
		Unit:   d.Unit.UnitNumber,
	}
	if s.Amount == 0 {
		s.Amount = d.Unit.RentAmount
	}
	if d.Building != nil {
		s.Building = d.Building.Name
	}
	rentSummary.Set(c, s)

	return c.Render(h.Article(h.ID("pay-rent-summary"), h.Class("pay-rent-card"),
		h.Header(h.Small(h.Text("PAYING FOR")), h.H3(h.Text(s.Period+" Rent"))),
		h.Table(h.Class("summary"),
			h.Tr(h.Th(h.Text("Property")), h.Td(h.ID("pay-building"), h.Text(nonEmpty(s.Building, format.Empty)))),
			h.Tr(h.Th(h.Text("Unit")), h.Td(h.ID("pay-unit"), h.Text(nonEmpty(s.Unit, format.Empty)))),
			h.Tr(h.Th(h.Text("Period")), h.Td(h.ID("pay-period"), h.Text(s.Period))),
			h.Tr(h.Th(h.Text("Total Amount Due")), h.Td(h.ID("pay-amount"), h.Strong(h.Text(format.Money(s.Amount))))),
		),
		h.Button(h.ID("checkout"), p.checkout.OnClick(c), h.Text("Proceed to Pay")),
		h.Small(h.Class("muted"), h.Text("Secured by Paystack")),
	))
}

func (p *Pages) onCheckout(c *portal.Context) error {
	s := rentSummary.Get(c)
	if s.UnitID == "" {
		c.Toast(portal.ToastError, "There is nothing to pay yet")
		return nil
	}
	res, err := c.API().InitializePayment(c.Context(), api.InitializePaymentRequest{
		UnitID: s.UnitID,
		Period: s.Period,
	})
	if err != nil {
		return err
	}
	if res.AuthorizationURL == "" {
		c.Toast(portal.ToastInfo, "Payment initialized. Reference: "+res.Reference)
		return nil
	}
	c.Redirect(res.AuthorizationURL)
	return nil
}

func (p *Pages) paymentSuccess(c *portal.Context) error {
	now := p.now()
	amount, _ := strconv.ParseInt(c.Param("amount"), 10, 64)
	reference := c.Param("reference")
	if reference == "" {
		reference = "TXN-" + strconv.FormatInt(now.UnixMilli(), 10)
	}

	return c.Render(p.layout(c, "#/tenant", "Payment Successful",
		h.Section(h.ID("payment-success"), h.Class("center"),
			h.Div(h.Class("success-icon"), h.Text("✓")),
			h.H1(h.Text("Payment Successful")),
			h.P(h.Class("muted"), h.Text("Your payment has been processed successfully. A copy of the receipt has been sent to your email.")),
			h.Article(h.Class("receipt"),
				h.Header(
					h.Small(h.Text("TOTAL AMOUNT PAID")),
					h.H2(h.ID("receipt-amount"), h.Text(format.Money(amount))),
					format.StatusBadge("successful"),
				),
				h.Table(h.Class("summary"),
					h.Tr(h.Th(h.Text("Property")), h.Td(h.ID("receipt-building"), h.Text(nonEmpty(c.Param("building"), format.Empty)))),
					h.Tr(h.Th(h.Text("Payment Type")), h.Td(h.ID("receipt-type"), h.Text(nonEmpty(c.Param("type"), "Monthly Rent")))),
					h.Tr(h.Th(h.Text("Transaction ID")), h.Td(h.ID("receipt-reference"), h.Text(reference))),
					h.Tr(h.Th(h.Text("Date")), h.Td(h.ID("receipt-date"), h.Text(format.Date(now)))),
				),
			),
			h.A(h.Href("#/tenant"), h.Role("button"), h.Text("Back to Dashboard")),
		),
	))
}
