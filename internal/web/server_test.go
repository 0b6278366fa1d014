package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/theme"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testServer(t *testing.T, profile content.Profile, opts Options) http.Handler {
	t.Helper()
	opts.Source = content.Static(profile)
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) }
	}
	return New(opts).Handler()
}

func do(t *testing.T, h http.Handler, method, path string, cookie *http.Cookie, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func themeCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == theme.PreferenceKey {
			return c
		}
	}
	return nil
}

func TestIndexFreshClientGetsDarkAndCookie(t *testing.T) {
	h := testServer(t, content.Default(), Options{})

	rec := do(t, h, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<html lang="en" class="dark">`)

	c := themeCookie(t, rec)
	require.NotNil(t, c, "first visit persists the default")
	assert.Equal(t, "dark", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, CookieMaxAge, c.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.False(t, c.HttpOnly)
}

func TestIndexHonoursStoredMode(t *testing.T) {
	h := testServer(t, content.Default(), Options{})

	rec := do(t, h, http.MethodGet, "/", &http.Cookie{Name: "theme", Value: "light"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<html lang="en" class="">`)
	assert.Contains(t, rec.Body.String(), theme.Icon(theme.Light))
	assert.Nil(t, themeCookie(t, rec), "a valid stored value is not rewritten")
}

func TestIndexReplacesMalformedCookie(t *testing.T) {
	h := testServer(t, content.Default(), Options{})

	rec := do(t, h, http.MethodGet, "/", &http.Cookie{Name: "theme", Value: "blue"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="dark"`)

	c := themeCookie(t, rec)
	require.NotNil(t, c)
	assert.Equal(t, "dark", c.Value)
}

func TestIndexUsesConfiguredDefault(t *testing.T) {
	h := testServer(t, content.Default(), Options{Default: theme.Light})

	rec := do(t, h, http.MethodGet, "/", nil, nil)
	assert.Contains(t, rec.Body.String(), `class=""`)
	require.NotNil(t, themeCookie(t, rec))
	assert.Equal(t, "light", themeCookie(t, rec).Value)
}

func TestIndexRendersProfile(t *testing.T) {
	p := content.Default()
	h := testServer(t, p, Options{})

	body := do(t, h, http.MethodGet, "/", nil, nil).Body.String()
	assert.Contains(t, body, p.Name)
	assert.Contains(t, body, "<details open>")
	assert.Contains(t, body, "<strong>system design</strong>")
	assert.Contains(t, body, p.Experience[0].Company)
	assert.Contains(t, body, p.Projects[0].Name)
	assert.Contains(t, body, p.Skills[0])
	assert.Contains(t, body, "© 2026 "+p.Domain)
	assert.NotContains(t, body, `href="/resume"`, "no résumé configured")
}

func TestToggleRedirectsAndFlipsCookie(t *testing.T) {
	h := testServer(t, content.Default(), Options{})

	rec := do(t, h, http.MethodPost, "/theme", &http.Cookie{Name: "theme", Value: "dark"}, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	c := themeCookie(t, rec)
	require.NotNil(t, c)
	assert.Equal(t, "light", c.Value)
}

func TestToggleJSON(t *testing.T) {
	h := testServer(t, content.Default(), Options{})

	rec := do(t, h, http.MethodPost, "/theme", &http.Cookie{Name: "theme", Value: "light"}, map[string]string{"Accept": "application/json"})
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Theme      string `json:"theme"`
		Persistent bool   `json:"persistent"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "dark", got.Theme)
	assert.True(t, got.Persistent)
}

func TestToggleFreshClientLastCookieWins(t *testing.T) {
	h := testServer(t, content.Default(), Options{})

	rec := do(t, h, http.MethodPost, "/theme", nil, map[string]string{"Accept": "application/json"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"theme":"light"`)

	// Initialize writes dark, the toggle then writes light; the browser keeps
	// the last Set-Cookie.
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "dark", cookies[0].Value)
	assert.Equal(t, "light", cookies[1].Value)
}

func TestSecureCookiesOption(t *testing.T) {
	plain := do(t, testServer(t, content.Default(), Options{}), http.MethodGet, "/", nil, nil)
	c := themeCookie(t, plain)
	require.NotNil(t, c)
	assert.False(t, c.Secure)

	secure := do(t, testServer(t, content.Default(), Options{SecureCookies: true}), http.MethodGet, "/", nil, nil)
	c = themeCookie(t, secure)
	require.NotNil(t, c)
	assert.True(t, c.Secure)
}

func TestFreshReloadScenario(t *testing.T) {
	h := testServer(t, content.Default(), Options{})

	first := do(t, h, http.MethodGet, "/", nil, nil)
	assert.Contains(t, first.Body.String(), `class="dark"`)
	cookie := themeCookie(t, first)
	require.NotNil(t, cookie)

	toggled := do(t, h, http.MethodPost, "/theme", cookie, nil)
	cookie = themeCookie(t, toggled)
	require.NotNil(t, cookie)
	assert.Equal(t, "light", cookie.Value)

	reloaded := do(t, h, http.MethodGet, "/", cookie, nil)
	assert.Contains(t, reloaded.Body.String(), `<html lang="en" class="">`)
}

func TestCurrentTheme(t *testing.T) {
	h := testServer(t, content.Default(), Options{})

	rec := do(t, h, http.MethodGet, "/theme", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"theme":"dark","persistent":true}`, rec.Body.String())
	require.NotNil(t, themeCookie(t, rec))
}

func TestThemeCSS(t *testing.T) {
	h := testServer(t, content.Default(), Options{})

	rec := do(t, h, http.MethodGet, "/theme.css", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/css"))

	css := rec.Body.String()
	light, err := theme.Palette(theme.Light)
	require.NoError(t, err)
	dark, err := theme.Palette(theme.Dark)
	require.NoError(t, err)
	assert.Contains(t, css, ":root {\n  --page-fg: "+light.Page.Foreground)
	assert.Contains(t, css, ":root.dark {\n  --page-fg: "+dark.Page.Foreground)
	assert.Contains(t, css, "--page-bg: "+dark.Page.Background)
}

func TestResume(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))

	p := content.Default()
	p.Resume = content.Resume{Path: path, Filename: "Riley Park Resume.pdf"}
	h := testServer(t, p, Options{})

	rec := do(t, h, http.MethodGet, "/resume", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, "%PDF-1.4", rec.Body.String())

	index := do(t, h, http.MethodGet, "/", nil, nil)
	assert.Contains(t, index.Body.String(), `href="/resume"`)
}

func TestResumeMissing(t *testing.T) {
	p := content.Default()
	h := testServer(t, p, Options{})
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/resume", nil, nil).Code)

	p.Resume.Path = filepath.Join(t.TempDir(), "gone.pdf")
	h = testServer(t, p, Options{})
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/resume", nil, nil).Code)
}

func TestHealthzAndRequestID(t *testing.T) {
	h := testServer(t, content.Default(), Options{})

	rec := do(t, h, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	const id = "0b6f2a0e-8c1a-4e55-9b7f-3f1d6f0f8c11"
	rec = do(t, h, http.MethodGet, "/healthz", nil, map[string]string{requestIDHeader: id})
	assert.Equal(t, id, rec.Header().Get(requestIDHeader))
}
