package picocss_test

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aletheia/portal"
	"github.com/aletheia/portal/plugins/picocss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const themeCSS = ":root{--pico-primary:#00895a}"

func cdn(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path != "/pico.jade.min.css" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(themeCSS))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func shell(t *testing.T, app *portal.App) string {
	t.Helper()
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in   string
		want picocss.Theme
	}{
		{"jade", picocss.ThemeJade},
		{" Purple ", picocss.ThemePurple},
		{"azure", picocss.ThemeJade},
		{"", picocss.ThemeJade},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, picocss.ParseTheme(tt.in))
		})
	}
}

func TestServesFetchedTheme(t *testing.T) {
	srv, hits := cdn(t)
	app := portal.New()
	app.Config(portal.Options{Plugins: []portal.Plugin{
		picocss.New(picocss.WithCDN(srv.URL), picocss.WithLightMode()),
	}})

	body := shell(t, app)
	assert.Contains(t, body, `href="`+picocss.ThemePath+`"`)
	assert.Contains(t, body, "_picoDarkMode: false")
	assert.Contains(t, body, `id="pico-scheme"`)

	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, picocss.ThemePath, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, themeCSS, w.Body.String())
	assert.Equal(t, "text/css; charset=utf-8", w.Header().Get("Content-Type"))
	etag := w.Header().Get("ETag")
	assert.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, picocss.ThemePath, nil)
	req.Header.Set("If-None-Match", etag)
	w = httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotModified, w.Code)

	assert.Equal(t, 1, *hits)
}

func TestServesGzippedTheme(t *testing.T) {
	srv, _ := cdn(t)
	app := portal.New()
	app.Config(portal.Options{Plugins: []portal.Plugin{picocss.New(picocss.WithCDN(srv.URL))}})

	req := httptest.NewRequest(http.MethodGet, picocss.ThemePath, nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)

	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	css, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, themeCSS, string(css))
}

func TestFallsBackToCDNLink(t *testing.T) {
	srv, _ := cdn(t)
	app := portal.New()
	app.Config(portal.Options{Plugins: []portal.Plugin{
		picocss.New(picocss.WithCDN(srv.URL), picocss.WithTheme(picocss.ThemeSlate), picocss.WithDarkMode()),
	}})

	body := shell(t, app)
	assert.Contains(t, body, srv.URL+"/pico.slate.min.css")
	assert.Contains(t, body, "_picoDarkMode: true")

	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, picocss.ThemePath, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
