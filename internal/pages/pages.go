// Package pages holds the portal's screens: one controller per client route,
// plus the actions their forms and buttons post to.
package pages

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aletheia/portal"
	"github.com/aletheia/portal/api"
	"github.com/aletheia/portal/h"
)

// Pages wires the screens into an App.
type Pages struct {
	now func() time.Time

	selectRole              *portal.ActionHandle
	authSubmit              *portal.ActionHandle
	createBuilding          *portal.ActionHandle
	createUnit              *portal.ActionHandle
	sendInvite              *portal.ActionHandle
	filterPayments          *portal.ActionHandle
	createMaintenance       *portal.ActionHandle
	updateMaintenanceStatus *portal.ActionHandle
	uploadDocument          *portal.ActionHandle
	checkout                *portal.ActionHandle
	acceptInvite            *portal.ActionHandle
	logout                  *portal.ActionHandle
}

// Page-local state, kept per tab.
var (
	signupRole    = portal.State(api.RoleLandlord)
	paymentsCache = portal.State([]api.PaymentWithDetails(nil))
	paymentFilter = portal.State("all")
	rentSummary   = portal.State(payRentSummary{})
)

// Register adds every route, in precedence order, and every action to app.
func Register(app *portal.App) *Pages {
	p := &Pages{now: time.Now}

	p.selectRole = app.Action("select-role", p.onSelectRole)
	p.authSubmit = app.Action("auth-submit", p.onAuthSubmit)
	p.createBuilding = app.Action("create-building", p.onCreateBuilding)
	p.createUnit = app.Action("create-unit", p.onCreateUnit)
	p.sendInvite = app.Action("send-invite", p.onSendInvite)
	p.filterPayments = app.Action("filter-payments", p.onFilterPayments)
	p.createMaintenance = app.Action("create-maintenance", p.onCreateMaintenance)
	p.updateMaintenanceStatus = app.Action("update-maintenance-status", p.onUpdateMaintenanceStatus)
	p.uploadDocument = app.Action("upload-document", p.onUploadDocument)
	p.checkout = app.Action("checkout", p.onCheckout)
	p.acceptInvite = app.Action("accept-invite", p.onAcceptInvite)
	p.logout = app.Action("logout", p.onLogout)

	app.Page("", portal.HandlerFunc(p.landing))
	app.Page("/login", portal.HandlerFunc(p.login))
	app.Page("/signup", portal.HandlerFunc(p.signup))
	app.Group("", func(g *portal.Group) {
		g.Use(portal.RequireRole(portal.RoleLandlord))
		g.Page("/dashboard", portal.HandlerFunc(p.landlordDashboard))
		g.Page("/buildings", portal.HandlerFunc(p.buildings))
		g.Page("/buildings/:id", portal.HandlerFunc(p.buildingDetail))
	})
	app.Group("", func(g *portal.Group) {
		g.Use(portal.RequireAuth())
		g.Page("/payments", portal.HandlerFunc(p.payments))
		g.Page("/maintenance", portal.HandlerFunc(p.maintenance))
		g.Page("/documents", portal.HandlerFunc(p.documents))
	})
	app.Group("", func(g *portal.Group) {
		g.Use(portal.RequireRole(portal.RoleTenant))
		g.Page("/tenant", portal.HandlerFunc(p.tenantDashboard))
		g.Page("/pay-rent", portal.HandlerFunc(p.payRent))
	})
	app.Group("", func(g *portal.Group) {
		g.Use(portal.RequireAuth())
		g.Page("/payment-success", portal.HandlerFunc(p.paymentSuccess))
	})
	app.Page("/invite/:token", portal.HandlerFunc(p.invite))
	return p
}

// failed replaces a region with fallback after a load error. A cancelled
// navigation is passed through untouched.
func failed(c *portal.Context, err error, fallback h.H) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	c.Log().Warn().Err(err).Msg("load failed")
	return c.Render(fallback)
}

// message is a muted paragraph used for empty and failed regions.
func message(id, text string) h.H {
	return h.Div(h.ID(id), h.P(h.Class("muted"), h.Text(text)))
}

// emptyRow fills a table body with a single message row.
func emptyRow(id string, cols int, text string) h.H {
	return h.TBody(h.ID(id), h.Tr(h.Td(h.ColSpan(itoa(cols)), h.Class("muted center"), h.Text(text))))
}

func field(label string, input h.H) h.H {
	return h.Label(h.Text(label), input)
}

func dialog(id, title string, form h.H) h.H {
	return h.Dialog(h.ID(id),
		h.Article(
			h.Header(
				h.Button(h.Class("close"), h.AriaLabel("Close"), h.CloseDialog()),
				h.H3(h.Text(title)),
			),
			form,
		),
	)
}

func itoa(n int) string { return strconv.Itoa(n) }

// submitAndClose posts the form to act and closes the dialog holding it.
func submitAndClose(c *portal.Context, act *portal.ActionHandle, args ...string) h.H {
	return h.DataOn("submit", fmt.Sprintf("el.closest('dialog').close(); @post('%s', {contentType: 'form'})", act.URL(c, args...)))
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
