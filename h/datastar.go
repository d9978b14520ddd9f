package h

import "fmt"

// DataInit runs expr when the element enters the DOM.
func DataInit(format string, a ...any) H {
	return Data("init", fmt.Sprintf(format, a...))
}

// DataOn binds a datastar event handler, e.g. DataOn("submit", "@post('/x')").
func DataOn(event, expr string) H {
	return Data("on:"+event, expr)
}

// DataOnWindow binds a handler to an event fired on window.
func DataOnWindow(event, expr string) H {
	return Data("on:"+event+"__window", expr)
}

// DataSignals seeds datastar signals from a JSON object literal.
func DataSignals(json string) H {
	return Data("signals", json)
}

// DataShow toggles visibility on a signal expression.
func DataShow(expr string) H {
	return Data("show", expr)
}

// OpenDialog returns a click handler that opens the <dialog> with the given id.
func OpenDialog(id string) H {
	return DataOn("click", fmt.Sprintf("document.getElementById('%s').showModal()", id))
}

// CloseDialog returns a click handler that closes the enclosing <dialog>.
func CloseDialog() H {
	return DataOn("click", "el.closest('dialog').close()")
}
