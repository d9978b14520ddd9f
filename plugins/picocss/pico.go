// Package picocss styles the portal with a Pico CSS colour theme.
//
// The theme stylesheet is fetched from the CDN once at startup and served from
// the portal itself with an ETag and gzip. If the CDN cannot be reached the
// shell links the CDN file directly instead.
//
//	app.Config(portal.Options{Plugins: []portal.Plugin{
//		picocss.New(picocss.WithTheme(picocss.ThemeJade), picocss.WithLightMode()),
//	}})
package picocss

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"hash/crc32"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/aletheia/portal"
	"github.com/aletheia/portal/h"
)

const (
	cdnVersion = "2.1.1"
	cdnBase    = "https://cdn.jsdelivr.net/npm/@picocss/pico@" + cdnVersion + "/css/"
)

// ThemePath is where the fetched stylesheet is served.
const ThemePath = "/_plugins/picocss/theme.css"

// maxCSSBodySize caps CDN response bodies.
const maxCSSBodySize = 512 * 1024

// Theme is a Pico colour theme.
type Theme string

const (
	ThemeAmber   Theme = "amber"
	ThemeBlue    Theme = "blue"
	ThemeCyan    Theme = "cyan"
	ThemeGreen   Theme = "green"
	ThemeIndigo  Theme = "indigo"
	ThemeJade    Theme = "jade"
	ThemeOrange  Theme = "orange"
	ThemePumpkin Theme = "pumpkin"
	ThemePurple  Theme = "purple"
	ThemeSlate   Theme = "slate"
	ThemeViolet  Theme = "violet"
	ThemeZinc    Theme = "zinc"
)

var themes = []Theme{
	ThemeAmber, ThemeBlue, ThemeCyan, ThemeGreen, ThemeIndigo, ThemeJade,
	ThemeOrange, ThemePumpkin, ThemePurple, ThemeSlate, ThemeViolet, ThemeZinc,
}

// ParseTheme returns the named theme, or ThemeJade when name is unknown.
func ParseTheme(name string) Theme {
	t := Theme(strings.ToLower(strings.TrimSpace(name)))
	if slices.Contains(themes, t) {
		return t
	}
	return ThemeJade
}

// Option configures the plugin.
type Option func(*plugin)

// WithTheme sets the colour theme. Defaults to ThemeJade.
func WithTheme(t Theme) Option { return func(p *plugin) { p.theme = t } }

// WithDarkMode forces the dark scheme.
func WithDarkMode() Option { return func(p *plugin) { dark := true; p.dark = &dark } }

// WithLightMode forces the light scheme.
func WithLightMode() Option { return func(p *plugin) { dark := false; p.dark = &dark } }

// WithCDN fetches themes from base instead of jsDelivr.
func WithCDN(base string) Option {
	return func(p *plugin) { p.base = strings.TrimSuffix(base, "/") + "/" }
}

// WithHTTPClient sets the client used to fetch the theme.
func WithHTTPClient(c *http.Client) Option { return func(p *plugin) { p.client = c } }

type plugin struct {
	theme  Theme
	dark   *bool // nil follows prefers-color-scheme
	base   string
	client *http.Client

	css     []byte
	cssGzip []byte
	etag    string
}

// New creates the plugin.
func New(opts ...Option) portal.Plugin {
	p := &plugin{
		theme:  ThemeJade,
		base:   cdnBase,
		client: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *plugin) themeURL() string {
	return fmt.Sprintf("%spico.%s.min.css", p.base, p.theme)
}

func (p *plugin) fetch() error {
	resp, err := p.client.Get(p.themeURL())
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pico: fetch %s: status %d", p.themeURL(), resp.StatusCode)
	}
	css, err := io.ReadAll(io.LimitReader(resp.Body, maxCSSBodySize))
	if err != nil {
		return err
	}
	p.css = css
	p.etag = fmt.Sprintf(`"%08x"`, crc32.ChecksumIEEE(css))
	p.cssGzip = gzipBytes(css)
	return nil
}

func gzipBytes(b []byte) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	w.Write(b)
	w.Close()
	return buf.Bytes()
}

func (p *plugin) serveTheme(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("If-None-Match") == p.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("ETag", p.etag)
	w.Header().Set("Vary", "Accept-Encoding")
	if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(p.cssGzip)
		return
	}
	w.Write(p.css)
}

// schemeExpr is the datastar expression for the initial dark-mode signal.
func schemeExpr(dark *bool) string {
	switch {
	case dark == nil:
		return "window.matchMedia('(prefers-color-scheme: dark)').matches"
	case *dark:
		return "true"
	default:
		return "false"
	}
}

func (p *plugin) Register(a *portal.App) {
	log := a.Logger()
	href := ThemePath
	if err := p.fetch(); err != nil {
		log.Warn().Err(err).Str("theme", string(p.theme)).Msg("pico theme not cached, linking cdn")
		href = p.themeURL()
	} else {
		a.Handle(ThemePath, http.HandlerFunc(p.serveTheme))
	}

	a.AppendToHead(
		h.Link(h.Rel("stylesheet"), h.Href(href)),
		h.Meta(h.DataSignals(fmt.Sprintf(`{_picoDarkMode: %s}`, schemeExpr(p.dark)))),
	)
	a.AppendToFoot(h.Div(h.ID("pico-scheme"),
		h.Data("effect", "document.documentElement.dataset.theme = $_picoDarkMode ? 'dark' : 'light'")))
}
