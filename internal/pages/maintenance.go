package pages

import (
	"github.com/aletheia/portal"
	"github.com/aletheia/portal/api"
	"github.com/aletheia/portal/format"
	"github.com/aletheia/portal/h"
)

var maintenanceStatuses = []string{"open", "in_progress", "resolved", "closed"}

var priorities = []string{"low", "medium", "high", "urgent"}

func (p *Pages) maintenance(c *portal.Context) error {
	v := viewerOf(c)
	tenant := v.role == portal.RoleTenant
	subtitle := "Requests raised by tenants across your properties."
	if tenant {
		subtitle = "Report problems in your unit and follow their progress."
	}

	err := c.Render(p.layout(c, "#/maintenance", "Maintenance",
		h.Div(h.Class("page-header"),
			h.Div(
				h.H1(h.Text("Maintenance")),
				h.P(h.Class("muted"), h.Text(subtitle)),
			),
			h.If(tenant, h.Button(h.ID("new-request"), h.OpenDialog("modal-new-request"), h.Text("+ New Request"))),
		),
		message("maintenance-list", "Loading..."),
		h.If(tenant, p.newRequestDialog(c)),
	))
	if err != nil {
		return err
	}

	list, err := c.API().ListMaintenance(c.Context())
	if err != nil {
		return failed(c, err, message("maintenance-list", "Failed to load maintenance requests."))
	}
	return c.Render(p.maintenanceList(c, list, tenant))
}

func (p *Pages) maintenanceList(c *portal.Context, list []api.MaintenanceRequest, tenant bool) h.H {
	if len(list) == 0 {
		return message("maintenance-list", "No maintenance requests")
	}
	now := p.now()
	return h.Div(h.ID("maintenance-list"), h.Class("request-list"), h.Map(list, func(r api.MaintenanceRequest) h.H {
		var where string
		if r.Buildings != nil {
			where = r.Buildings.Name
		}
		if r.Units != nil {
			where += " · " + r.Units.UnitNumber
		}
		created, _ := format.ParseTime(r.CreatedAt)

		var status h.H
		if tenant {
			status = format.StatusBadge(r.Status)
		} else {
			status = h.Form(h.ID("status-"+r.ID), h.Class("status-form"),
				h.Select(h.Name("status"), h.AriaLabel("Status"), p.updateMaintenanceStatus.OnChange(c, "id", r.ID),
					h.Map(maintenanceStatuses, func(s string) h.H {
						return h.Option(h.Value(s), h.If(s == r.Status, h.Selected()), h.Text(format.StatusFor(s).Label))
					}),
				),
			)
		}

		return h.Article(h.ID("request-"+r.ID), h.Class("request-card"),
			h.Header(
				h.Strong(h.Text(r.Title)),
				format.PriorityBadge(r.Priority),
			),
			h.P(h.Text(r.Description)),
			h.Footer(
				h.Small(h.Class("muted"),
					h.If(!tenant && r.Profiles != nil, h.Text(profileName(r.Profiles)+" · ")),
					h.If(where != "", h.Text(where+" · ")),
					h.Text(format.TimeAgo(created, now)),
				),
				status,
			),
		)
	}))
}

func profileName(p *api.ProfileRef) string {
	if p == nil {
		return ""
	}
	return p.FullName
}

func (p *Pages) newRequestDialog(c *portal.Context) h.H {
	return dialog("modal-new-request", "New Maintenance Request",
		h.Form(h.ID("form-new-request"), submitAndClose(c, p.createMaintenance),
			field("Title", h.Input(h.Name("title"), h.Type("text"), h.Placeholder("e.g. Leaking kitchen tap"), h.Required())),
			field("Description", h.Textarea(h.Name("description"), h.Attr("rows", "4"), h.Required())),
			field("Priority", h.Select(h.Name("priority"), h.Map(priorities, func(s string) h.H {
				return h.Option(h.Value(s), h.If(s == "medium", h.Selected()), h.Text(format.PriorityFor(s).Label))
			}))),
			h.Button(h.Type("submit"), h.Text("Submit Request")),
		),
	)
}

func (p *Pages) onCreateMaintenance(c *portal.Context) error {
	var req api.CreateMaintenanceRequest
	if err := c.Decode(&req); err != nil {
		return err
	}
	if req.Priority == "" {
		req.Priority = "medium"
	}
	if _, err := c.API().CreateMaintenance(c.Context(), req); err != nil {
		return err
	}
	c.Reload()
	c.Toast(portal.ToastSuccess, "Request submitted")
	return nil
}

func (p *Pages) onUpdateMaintenanceStatus(c *portal.Context) error {
	var req api.UpdateMaintenanceStatusRequest
	if err := c.Decode(&req); err != nil {
		return err
	}
	if _, err := c.API().UpdateMaintenanceStatus(c.Context(), c.FormValue("id"), req); err != nil {
		return err
	}
	c.Reload()
	c.Toast(portal.ToastSuccess, "Status updated")
	return nil
}
