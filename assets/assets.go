// Package assets serves the portal's own stylesheet under content-hashed names.
package assets

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/aletheia/portal"
	"github.com/aletheia/portal/h"
	"github.com/benbjohnson/hashfs"
)

// Prefix is the URL path the assets are mounted under.
const Prefix = "/assets"

//go:embed static
var embedded embed.FS

// FS holds the static files with their hashed names.
var FS = hashfs.NewFS(mustSub(embedded, "static"))

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Path is the cache-busting URL of a static file, e.g. /assets/app.4f2a….css.
func Path(name string) string {
	return Prefix + "/" + FS.HashName(name)
}

// Handler serves hashed names with far-future caching.
func Handler() http.Handler {
	return gziphandler.GzipHandler(http.StripPrefix(Prefix, hashfs.FileServer(FS)))
}

// Plugin mounts the assets and links the stylesheet from the shell.
func Plugin() portal.Plugin {
	return portal.PluginFunc(func(a *portal.App) {
		a.Handle(Prefix+"/*", Handler())
		a.AppendToHead(h.Link(h.Rel("stylesheet"), h.Href(Path("app.css"))))
	})
}
