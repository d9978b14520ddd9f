// Package h is the portal's HTML toolkit: a thin typed layer over gomponents
// plus the datastar attributes the runtime understands.
//
//	h.Div(h.ID("view"), h.H1(h.Text("Properties")))
package h

import (
	"bytes"
	"io"

	g "maragu.dev/gomponents"
	gc "maragu.dev/gomponents/components"
)

// H is an HTML node or attribute.
type H interface {
	Render(w io.Writer) error
}

// Text is HTML-escaped text.
func Text(s string) H {
	return g.Text(s)
}

// Textf is Text with fmt formatting.
func Textf(format string, a ...any) H {
	return g.Textf(format, a...)
}

// Raw is unescaped HTML. Never feed it user input.
func Raw(s string) H {
	return g.Raw(s)
}

// Attr is an arbitrary attribute. Without a value it renders as a boolean attribute.
func Attr(name string, value ...string) H {
	return g.Attr(name, value...)
}

// If returns n when cond holds, nil otherwise.
func If(cond bool, n H) H {
	if !cond {
		return nil
	}
	return n
}

// Iff is If with a lazily built node.
func Iff(cond bool, f func() H) H {
	if !cond || f == nil {
		return nil
	}
	return f()
}

// Map renders each item of ts with f.
func Map[T any](ts []T, f func(T) H) H {
	nodes := make([]H, 0, len(ts))
	for _, t := range ts {
		nodes = append(nodes, f(t))
	}
	return Group(nodes...)
}

// Group renders nodes side by side without a wrapper element. Nil nodes are skipped.
func Group(nodes ...H) H {
	list := make(g.Group, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			list = append(list, n)
		}
	}
	return list
}

// HTML5Props configures HTML5.
type HTML5Props struct {
	Title     string
	Language  string
	Head      []H
	Body      []H
	HTMLAttrs []H
}

// HTML5 renders a full document.
func HTML5(p HTML5Props) H {
	return gc.HTML5(gc.HTML5Props{
		Title:     p.Title,
		Language:  p.Language,
		Head:      retype(p.Head),
		Body:      retype(p.Body),
		HTMLAttrs: retype(p.HTMLAttrs),
	})
}

// El builds an element by tag name.
func El(name string, children ...H) H {
	return g.El(name, retype(children)...)
}

// String renders n, returning "" on a nil node.
func String(n H) (string, error) {
	if n == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := n.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
