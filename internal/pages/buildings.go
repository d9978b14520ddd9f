package pages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aletheia/portal"
	"github.com/aletheia/portal/api"
	"github.com/aletheia/portal/format"
	"github.com/aletheia/portal/h"
)

const phonePrefix = "+234"

func (p *Pages) buildings(c *portal.Context) error {
	ctx := c.Context()
	err := c.Render(p.layout(c, "#/buildings", "Properties",
		h.Div(h.Class("page-header"),
			h.Div(
				h.H1(h.Text("Properties")),
				h.P(h.ID("buildings-subtitle"), h.Class("muted"), h.Text("Loading...")),
			),
			h.Button(h.ID("add-building"), h.OpenDialog("modal-add-building"), h.Text("+ Add Property")),
		),
		message("buildings-grid", "Loading..."),
		p.addBuildingDialog(c),
	))
	if err != nil {
		return err
	}

	list, err := c.API().ListBuildings(ctx)
	if err != nil {
		return failed(c, err, message("buildings-grid", "Failed to load properties."))
	}

	// Occupancy and collections only come with the dashboard summary.
	stats := map[string]api.BuildingWithStats{}
	if d, err := c.API().LandlordDashboard(ctx); err == nil {
		for _, b := range d.ActiveBuildings {
			stats[b.ID] = b
		}
	} else {
		c.Log().Debug().Err(err).Msg("building stats unavailable")
	}

	n := len(list)
	return c.Render(
		h.P(h.ID("buildings-subtitle"), h.Class("muted"),
			h.Textf("%d %s in your portfolio", n, format.Plural(n, "property", "properties"))),
		buildingGrid(list, stats),
	)
}

func buildingGrid(list []api.Building, stats map[string]api.BuildingWithStats) h.H {
	cards := make([]h.H, 0, len(list)+1)
	if len(list) == 0 {
		cards = append(cards, h.Div(h.Class("empty-state"),
			h.H3(h.Text("No properties yet")),
			h.P(h.Class("muted"), h.Text("Add your first building to start collecting rent.")),
		))
	}
	for _, b := range list {
		s := stats[b.ID]
		occ := format.OccupancyPercent(s.OccupiedUnits, b.TotalUnits)
		label := format.OccupancyLabel(occ)
		cards = append(cards, h.Article(h.Class("building-card"),
			h.Div(h.Class("building-photo"),
				h.If(b.PhotoURL != nil, h.Img(h.Src(str(b.PhotoURL)), h.Alt(b.Name))),
				h.Span(h.Class("status-tag status-"+strings.ToLower(label)), h.Text(label)),
			),
			h.H3(h.Class("building-name"), h.Text(b.Name)),
			h.P(h.Class("muted"), h.Text(nonEmpty(b.Address, "No address"))),
			h.Div(h.Class("building-metrics"),
				h.Div(h.Small(h.Text("Units")), h.Strong(h.Textf("%d/%d", s.OccupiedUnits, b.TotalUnits))),
				h.Div(h.Small(h.Text("Rent collected")), h.Strong(h.Text(format.Money(s.TotalCollected)))),
			),
			h.Div(h.Class("occupancy-row"), h.Span(h.Text("Occupancy")), h.Span(h.Textf("%d%%", occ))),
			h.El("progress", h.Value(itoa(occ)), h.Attr("max", "100")),
			h.Footer(
				h.Small(h.Class("muted"), h.Text("Updated "+format.DateString(b.UpdatedAt))),
				h.A(h.Href("#/buildings/"+b.ID), h.Text("Manage →")),
			),
		))
	}
	cards = append(cards, h.Button(h.Class("building-card--new outline"), h.OpenDialog("modal-add-building"),
		h.Strong(h.Text("Add New Property")),
		h.Small(h.Text("Expand your portfolio by adding a new building")),
	))
	return h.Div(h.ID("buildings-grid"), h.Class("building-grid"), h.Group(cards...))
}

func (p *Pages) addBuildingDialog(c *portal.Context) h.H {
	return dialog("modal-add-building", "Add Property",
		h.Form(h.ID("form-add-building"), submitAndClose(c, p.createBuilding),
			field("Building Name", h.Input(h.Name("name"), h.Type("text"), h.Placeholder("e.g. Palm Court"), h.Required())),
			field("Address", h.Input(h.Name("address"), h.Type("text"), h.Placeholder("12 Admiralty Way, Lekki"), h.Required())),
			field("Total Units", h.Input(h.Name("total_units"), h.Type("number"), h.Min("0"), h.Value("1"), h.Required())),
			field("Photo URL", h.Input(h.Name("photo_url"), h.Type("url"))),
			h.Button(h.Type("submit"), h.Text("Create Property")),
		),
	)
}

func (p *Pages) onCreateBuilding(c *portal.Context) error {
	var req api.CreateBuildingRequest
	if err := c.Decode(&req); err != nil {
		return err
	}
	if _, err := c.API().CreateBuilding(c.Context(), req); err != nil {
		return err
	}
	c.Reload()
	c.Toast(portal.ToastSuccess, "Property added")
	return nil
}

func isOccupied(u api.UnitWithTenant) bool {
	return u.Occupied() || u.TenantID != nil
}

func (p *Pages) buildingDetail(c *portal.Context) error {
	ctx := c.Context()
	id := c.Param("id")
	err := c.Render(p.layout(c, "#/buildings", "Property",
		h.Nav(h.Class("breadcrumb"), h.A(h.Href("#/buildings"), h.Text("Properties")), h.Text(" / "),
			h.Span(h.ID("building-breadcrumb"), h.Text("..."))),
		h.Div(h.Class("page-header"),
			h.Div(
				h.H1(h.ID("building-detail-name"), h.Text("Loading...")),
				h.P(h.ID("building-detail-address"), h.Class("muted")),
			),
			h.Button(h.ID("add-unit"), h.OpenDialog("modal-add-unit"), h.Text("+ Add Unit")),
		),
		message("building-stats", ""),
		h.Table(h.Class("data-table"),
			h.THead(h.Tr(
				h.Th(h.Text("Unit")), h.Th(h.Text("Tenant")), h.Th(h.Text("Rent")),
				h.Th(h.Text("Status")), h.Th(h.Text("Payment")), h.Th(),
			)),
			emptyRow("building-units-body", 6, "Loading..."),
		),
		h.Div(h.ID("invite-result")),
		p.addUnitDialog(c),
		p.inviteDialog(c),
	))
	if err != nil {
		return err
	}

	b, err := c.API().GetBuilding(ctx, id)
	if err != nil {
		return failed(c, err, emptyRow("building-units-body", 6, portal.UserMessage(err)))
	}
	units, err := c.API().ListUnits(ctx, id)
	if err != nil {
		return failed(c, err, emptyRow("building-units-body", 6, portal.UserMessage(err)))
	}

	return c.Render(
		h.Span(h.ID("building-breadcrumb"), h.Text(b.Name)),
		h.H1(h.ID("building-detail-name"), h.Text(b.Name)),
		h.P(h.ID("building-detail-address"), h.Class("muted"), h.Text(b.Address)),
		unitStats(units),
		p.unitRows(units),
	)
}

func unitStats(units []api.UnitWithTenant) h.H {
	occupied := 0
	var rentRoll int64
	for _, u := range units {
		if isOccupied(u) {
			occupied++
			rentRoll += u.RentAmount
		}
	}
	occ := format.OccupancyPercent(occupied, len(units))
	return statCards("building-stats", []stat{
		{label: "Total Units", value: itoa(len(units))},
		{label: "Occupied", value: itoa(occupied)},
		{label: "Vacant", value: itoa(len(units) - occupied)},
		{label: "Occupancy", value: itoa(occ) + "%", bar: occ, hasBar: true},
		{label: "Monthly Rent Roll", value: format.Naira(rentRoll), highlight: true},
	})
}

func (p *Pages) unitRows(units []api.UnitWithTenant) h.H {
	if len(units) == 0 {
		return emptyRow("building-units-body", 6, "No units found. Add one above.")
	}
	rows := make([]h.H, 0, len(units))
	for i, u := range units {
		tenant := h.H(h.Span(h.Class("muted"), h.Text("Vacant")))
		if name := u.Tenant(); name != "" {
			tenant = avatarCell(i, name, str(u.TenantPhone))
		}
		payment := h.H(h.Text(format.Empty))
		if u.PaymentStatus != "" {
			payment = format.StatusBadge(u.PaymentStatus)
		}
		var invite h.H
		if !isOccupied(u) {
			invite = h.Button(h.Class("small"), h.Data("unit", u.ID), h.DataOn("click", fmt.Sprintf(
				"document.getElementById('invite-unit-id').value = '%s'; document.getElementById('modal-invite-tenant').showModal()", u.ID)),
				h.Text("Invite"))
		}
		status := u.Status
		if status == "" {
			status = "vacant"
		}
		rows = append(rows, h.Tr(
			h.Td(h.Strong(h.Text(nonEmpty(u.UnitNumber, "Unit")))),
			h.Td(tenant),
			h.Td(h.Strong(h.Text(format.Money(u.RentAmount)))),
			h.Td(format.StatusBadge(status)),
			h.Td(payment),
			h.Td(invite),
		))
	}
	return h.TBody(h.ID("building-units-body"), h.Group(rows...))
}

func (p *Pages) addUnitDialog(c *portal.Context) h.H {
	return dialog("modal-add-unit", "Add Unit",
		h.Form(h.ID("form-add-unit"), submitAndClose(c, p.createUnit),
			field("Unit Number", h.Input(h.Name("unit_number"), h.Type("text"), h.Placeholder("e.g. Flat 4B"), h.Required())),
			field("Monthly Rent (₦)", h.Input(h.Name("rent"), h.Type("number"), h.Min("0"), h.Step("1"), h.Required())),
			field("Lease Start", h.Input(h.Name("lease_start"), h.Type("date"))),
			field("Lease End", h.Input(h.Name("lease_end"), h.Type("date"))),
			h.Button(h.Type("submit"), h.Text("Add Unit")),
		),
	)
}

func (p *Pages) inviteDialog(c *portal.Context) h.H {
	return dialog("modal-invite-tenant", "Invite Tenant",
		h.Form(h.ID("form-invite-tenant"), submitAndClose(c, p.sendInvite),
			h.Input(h.ID("invite-unit-id"), h.Name("unit_id"), h.Type("hidden")),
			field("Email Address", h.Input(h.Name("email"), h.Type("email"), h.Placeholder("tenant@example.com"))),
			field("Phone Number ("+phonePrefix+")", h.Input(h.Name("phone"), h.Type("tel"), h.Placeholder("801 234 5678"))),
			h.Button(h.Type("submit"), h.Text("Send Invite")),
		),
	)
}

func (p *Pages) onCreateUnit(c *portal.Context) error {
	var req api.CreateUnitRequest
	if err := c.Decode(&req); err != nil {
		return err
	}
	naira, err := strconv.ParseInt(strings.TrimSpace(c.FormValue("rent")), 10, 64)
	if err != nil || naira < 0 {
		c.Toast(portal.ToastError, "Enter the monthly rent as a whole number of naira")
		return nil
	}
	req.BuildingID = c.Param("id")
	req.RentAmount = format.KoboFromNaira(naira)
	if _, err := c.API().CreateUnit(c.Context(), req); err != nil {
		return err
	}
	c.Reload()
	c.Toast(portal.ToastSuccess, "Unit added")
	return nil
}

// withPrefix prepends the country code to a local number the user typed.
func withPrefix(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" || strings.HasPrefix(phone, "+") {
		return phone
	}
	return phonePrefix + phone
}

func (p *Pages) onSendInvite(c *portal.Context) error {
	var req api.SendInviteRequest
	if err := c.Decode(&req); err != nil {
		return err
	}
	req.Phone = withPrefix(req.Phone)
	inv, err := c.API().SendInvite(c.Context(), req)
	if err != nil {
		return err
	}
	link := "#/invite/" + inv.Token
	c.Toast(portal.ToastSuccess, "Invite sent successfully!")
	return c.Render(h.Div(h.ID("invite-result"), h.Class("notice"),
		h.P(h.Text("Share this link with your tenant:")),
		h.A(h.ID("invite-link"), h.Href(link), h.Code(h.Text(link))),
	))
}
