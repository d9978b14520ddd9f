package h

import (
	g "maragu.dev/gomponents"
	gh "maragu.dev/gomponents/html"
)

func Alt(v string) H         { return gh.Alt(v) }
func Href(v string) H        { return gh.Href(v) }
func Type(v string) H        { return gh.Type(v) }
func Src(v string) H         { return gh.Src(v) }
func ID(v string) H          { return gh.ID(v) }
func Value(v string) H       { return gh.Value(v) }
func Name(v string) H        { return gh.Name(v) }
func Placeholder(v string) H { return gh.Placeholder(v) }
func Rel(v string) H         { return gh.Rel(v) }
func Class(v string) H       { return gh.Class(v) }
func Role(v string) H        { return gh.Role(v) }
func For(v string) H         { return gh.For(v) }
func Target(v string) H      { return gh.Target(v) }
func Min(v string) H         { return g.Attr("min", v) }
func Step(v string) H        { return g.Attr("step", v) }
func Content(v string) H     { return gh.Content(v) }
func Charset(v string) H     { return gh.Charset(v) }
func Title(v string) H       { return gh.Title(v) }

func Required() H { return gh.Required() }
func Selected() H { return gh.Selected() }
func Checked() H  { return gh.Checked() }
func Disabled() H { return gh.Disabled() }

// ColSpan sets the colspan of a table cell.
func ColSpan(v string) H { return g.Attr("colspan", v) }

// AutoComplete sets the autocomplete hint of an input.
func AutoComplete(v string) H { return g.Attr("autocomplete", v) }

// Data attributes automatically have their name prefixed with "data-".
func Data(name, v string) H {
	return gh.Data(name, v)
}

func AriaLabel(v string) H {
	return gh.Aria("label", v)
}

func AriaCurrent(v string) H {
	return gh.Aria("current", v)
}
