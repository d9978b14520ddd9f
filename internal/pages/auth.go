package pages

import (
	"errors"

	"github.com/aletheia/portal"
	"github.com/aletheia/portal/api"
	"github.com/aletheia/portal/h"
)

func (p *Pages) login(c *portal.Context) error {
	return c.Render(p.authPage(c, false))
}

func (p *Pages) signup(c *portal.Context) error {
	return c.Render(p.authPage(c, true))
}

func (p *Pages) authPage(c *portal.Context, isSignup bool) h.H {
	title, subtitle, submit := "Welcome Back", "Managing properties in Nigeria made simple.", "Sign In →"
	toggleText, toggleLink, toggleLabel := "Don't have an account?", "#/signup", "Sign up for free"
	if isSignup {
		title, subtitle, submit = "Create your Account", "Start managing your properties in minutes.", "Create Account →"
		toggleText, toggleLink, toggleLabel = "Already have an account?", "#/login", "Sign in"
	}

	return h.Div(h.ID("app"), h.Class("auth-page"),
		h.Article(h.Class("auth-card"),
			h.H1(h.Text(title)),
			h.P(h.ID("auth-subtitle"), h.Class("muted"), h.Text(subtitle)),
			h.Form(h.ID("auth-form"), p.authSubmit.OnSubmit(c),
				h.If(isSignup, field("Full Name",
					h.Input(h.Name("full_name"), h.Type("text"), h.Placeholder("e.g. Chidi Okafor"), h.Required()))),
				h.If(isSignup, p.rolePicker(c)),
				field("Email Address",
					h.Input(h.Name("email"), h.Type("email"), h.AutoComplete("email"), h.Required())),
				field("Password",
					h.Input(h.Name("password"), h.Type("password"), h.AutoComplete("current-password"), h.Required())),
				authError(""),
				h.Button(h.ID("auth-submit-btn"), h.Type("submit"), h.Text(submit)),
			),
			h.P(h.Class("auth-toggle"), h.Text(toggleText+" "), h.A(h.Href(toggleLink), h.Text(toggleLabel))),
		),
	)
}

func (p *Pages) rolePicker(c *portal.Context) h.H {
	selected := signupRole.Get(c)
	option := func(role, label, hint string) h.H {
		class := "role-option"
		if role == selected {
			class += " selected"
		}
		return h.Button(
			h.ID("role-"+role),
			h.Type("button"),
			h.Class(class),
			h.Attr("aria-pressed", boolString(role == selected)),
			p.selectRole.OnClick(c, "role", role),
			h.Strong(h.Text(label)),
			h.Small(h.Text(hint)),
		)
	}
	return h.Div(h.ID("auth-roles"), h.Class("role-picker"),
		option(api.RoleLandlord, "Landlord", "I own or manage property"),
		option(api.RoleTenant, "Tenant", "I rent a unit"),
	)
}

func authError(msg string) h.H {
	if msg == "" {
		return h.P(h.ID("auth-error"), h.Class("form-error"), h.Attr("hidden"))
	}
	return h.P(h.ID("auth-error"), h.Class("form-error"), h.Role("alert"), h.Text(msg))
}

func (p *Pages) onSelectRole(c *portal.Context) error {
	role := c.FormValue("role")
	if role != api.RoleLandlord && role != api.RoleTenant {
		return nil
	}
	signupRole.Set(c, role)
	return c.Render(p.rolePicker(c))
}

func (p *Pages) onAuthSubmit(c *portal.Context) error {
	ctx := c.Context()
	var (
		res api.AuthResponse
		err error
	)
	if c.Route() == "/signup" {
		var req api.SignupRequest
		if err := c.Decode(&req); err != nil {
			return err
		}
		req.Role = signupRole.Get(c)
		res, err = c.API().Signup(ctx, req)
	} else {
		var req api.LoginRequest
		if err := c.Decode(&req); err != nil {
			return err
		}
		res, err = c.API().Login(ctx, req)
	}
	if err == nil {
		err = c.Session().Save(ctx, res)
	}
	if err != nil {
		c.Log().Info().Err(err).Str("route", c.Route()).Msg("authentication failed")
		return c.Render(authError(authErrorMessage(err)))
	}
	c.Navigate(portal.DashboardHash(res.User.Role))
	return nil
}

func authErrorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Authentication failed"
}

func (p *Pages) onLogout(c *portal.Context) error {
	c.Session().Logout(c.Context())
	return nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
