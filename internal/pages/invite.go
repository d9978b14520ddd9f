package pages

import (
	"github.com/aletheia/portal"
	"github.com/aletheia/portal/api"
	"github.com/aletheia/portal/format"
	"github.com/aletheia/portal/h"
)

func (p *Pages) invite(c *portal.Context) error {
	token := c.Param("token")
	err := c.Render(h.Div(h.ID("app"), h.Class("auth-page invite-page"),
		h.Article(h.Class("auth-card"),
			h.Span(h.Class("badge badge-success"), h.Text("OFFICIAL INVITATION")),
			h.H1(h.Text("Accept your invitation")),
			h.P(h.Class("muted"), h.Text("You've been invited by the property manager to join Aletheia and manage your tenancy.")),
			message("invite-property", "Checking invitation..."),
			h.Form(h.ID("invite-accept-form"), p.acceptInvite.OnSubmit(c),
				field("Full Name", h.Input(h.Name("full_name"), h.Type("text"), h.Placeholder("e.g. Chidi Okafor"), h.Required())),
				field("Email Address", h.Input(h.Name("email"), h.Type("email"), h.AutoComplete("email"), h.Required())),
				field("Phone Number ("+phonePrefix+")", h.Input(h.Name("phone"), h.Type("tel"), h.Placeholder("801 234 5678"))),
				field("Create Password", h.Input(h.Name("password"), h.Type("password"), h.AutoComplete("new-password"), h.Required())),
				h.Button(h.ID("invite-accept-btn"), h.Type("submit"), h.Text("Accept Invite & Create Account →")),
			),
		),
	))
	if err != nil || token == "" {
		return err
	}

	inv, err := c.API().VerifyInvite(c.Context(), token)
	if err != nil {
		return failed(c, err, message("invite-property", "This invitation is invalid or has expired"))
	}
	return c.Render(invitedProperty(inv))
}

func invitedProperty(inv api.InvitationWithDetails) h.H {
	return h.Div(h.ID("invite-property"), h.Class("invite-property-card"),
		h.If(inv.BuildingPhoto != nil, h.Img(h.Src(str(inv.BuildingPhoto)), h.Alt(inv.BuildingName))),
		h.H3(h.ID("invite-building"), h.Text(inv.BuildingName)),
		h.P(h.Class("muted"), h.Text(inv.BuildingAddress)),
		h.Div(h.Class("grid-2"),
			h.Div(h.Small(h.Text("UNIT NUMBER")), h.Strong(h.ID("invite-unit"), h.Text(inv.UnitNumber))),
			h.Div(h.Small(h.Text("MONTHLY RENT")), h.Strong(h.ID("invite-rent"), h.Text(format.Naira(inv.RentAmount)))),
		),
	)
}

func (p *Pages) onAcceptInvite(c *portal.Context) error {
	var req api.AcceptInviteRequest
	if err := c.Decode(&req); err != nil {
		return err
	}
	req.Token = c.Param("token")
	req.Phone = withPrefix(req.Phone)
	res, err := c.API().AcceptInvite(c.Context(), req)
	if err != nil {
		return err
	}
	if err := c.Session().Save(c.Context(), res); err != nil {
		return err
	}
	c.Navigate(portal.TenantHomeHash)
	return nil
}
