package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-entryform/pkg/controller"
	"github.com/goliatone/go-entryform/pkg/form"
)

func testFactory(taken ...string) func(ctx context.Context) (*controller.Controller, error) {
	return func(ctx context.Context) (*controller.Controller, error) {
		locations := controller.LocationSourceFunc(func(context.Context) ([]string, error) {
			return []string{"USA", "Canada"}, nil
		})
		validator := controller.NameValidatorFunc(func(_ context.Context, name string) (bool, error) {
			for _, n := range taken {
				if n == name {
					return false, nil
				}
			}
			return true, nil
		})
		ctrl, err := controller.New(locations, validator, controller.WithDebounce(5*time.Millisecond))
		if err != nil {
			return nil, err
		}
		ctrl.Initialize(ctx)
		return ctrl, nil
	}
}

type testClient struct {
	t      *testing.T
	server *httptest.Server
	http   *http.Client
}

func newTestClient(t *testing.T, opts ...Option) (*testClient, *Handler) {
	t.Helper()
	handler, err := NewHandler(testFactory("Bob"), opts...)
	require.NoError(t, err)
	t.Cleanup(handler.Close)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testClient{
		t:      t,
		server: server,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, handler
}

func (c *testClient) do(method, path string, form url.Values, accept string) *http.Response {
	c.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, c.server.URL+path, body)
	require.NoError(c.t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	res, err := c.http.Do(req)
	require.NoError(c.t, err)
	c.t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

func (c *testClient) postJSON(path string, form url.Values) envelope {
	c.t.Helper()
	res := c.do(http.MethodPost, path, form, "application/json")
	require.Equal(c.t, http.StatusOK, res.StatusCode)
	var env envelope
	require.NoError(c.t, json.NewDecoder(res.Body).Decode(&env))
	return env
}

func (c *testClient) state() stateView {
	c.t.Helper()
	res := c.do(http.MethodGet, "/state", nil, "application/json")
	require.Equal(c.t, http.StatusOK, res.StatusCode)
	var env envelope
	require.NoError(c.t, json.NewDecoder(res.Body).Decode(&env))
	return env.Data
}

func TestHandler_PageRendersDefaults(t *testing.T) {
	client, handler := newTestClient(t)

	res := client.do(http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	html := string(body)
	assert.Contains(t, html, `<option value="USA" selected>USA</option>`)
	assert.Contains(t, html, `<option value="Canada">Canada</option>`)
	assert.Contains(t, html, `--brand: #3b5bdb;`)
	assert.Contains(t, html, `id="add" type="submit" disabled`)
	assert.Contains(t, html, "No entries yet")
	assert.Contains(t, html, "var delay = 600;")
	assert.Equal(t, 1, handler.Sessions())

	var found bool
	for _, cookie := range res.Cookies() {
		if cookie.Name == SessionCookie {
			found = true
			assert.True(t, cookie.HttpOnly)
		}
	}
	assert.True(t, found, "expected session cookie")
}

func TestHandler_AliceFlow(t *testing.T) {
	client, handler := newTestClient(t)

	client.postJSON("/name", url.Values{"name": {"Alice"}})
	require.Eventually(t, func() bool {
		s := client.state()
		return !s.Validating && s.CanAdd
	}, time.Second, 5*time.Millisecond)

	client.postJSON("/country", url.Values{"country": {"Canada"}})
	env := client.postJSON("/add", nil)

	require.NotNil(t, env.Added)
	assert.True(t, *env.Added)
	assert.Equal(t, form.Table{{Name: "Alice", Country: "Canada"}}, env.Data.Table)
	assert.Equal(t, "", env.Data.Name)
	assert.Equal(t, "USA", env.Data.Country)
	assert.Equal(t, 1, handler.Sessions())
}

func TestHandler_TakenName(t *testing.T) {
	client, _ := newTestClient(t)

	client.postJSON("/name", url.Values{"name": {"Bob"}})
	require.Eventually(t, func() bool {
		return client.state().Error == form.MessageNameTaken
	}, time.Second, 5*time.Millisecond)

	env := client.postJSON("/add", nil)
	require.NotNil(t, env.Added)
	assert.False(t, *env.Added)
	assert.Empty(t, env.Data.Table)
}

func TestHandler_FormPostRedirects(t *testing.T) {
	client, _ := newTestClient(t)

	res := client.do(http.MethodPost, "/clear", url.Values{}, "text/html")
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/", res.Header.Get("Location"))
}

func TestHandler_StripsMarkupFromNames(t *testing.T) {
	client, _ := newTestClient(t)

	env := client.postJSON("/name", url.Values{"name": {"<b>Eve</b>"}})
	assert.Equal(t, "Eve", env.Data.Name)
}

func TestHandler_RejectsUnknownCountry(t *testing.T) {
	client, _ := newTestClient(t)

	res := client.do(http.MethodPost, "/country", url.Values{"country": {"Atlantis"}}, "application/json")
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Equal(t, "USA", client.state().Country)
}

func TestHandler_SessionsAreIsolated(t *testing.T) {
	first, handler := newTestClient(t)
	second := &testClient{t: t, server: first.server, http: &http.Client{}}
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	second.http.Jar = jar

	first.postJSON("/name", url.Values{"name": {"Ann"}})
	assert.Equal(t, "", second.state().Name)
	assert.Equal(t, "Ann", first.state().Name)
	assert.Equal(t, 2, handler.Sessions())
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	client, _ := newTestClient(t)
	res := client.do(http.MethodGet, "/add", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestHandler_BasePath(t *testing.T) {
	client, _ := newTestClient(t, WithBasePath("form/"))

	res := client.do(http.MethodPost, "/form/clear", url.Values{}, "")
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/form/", res.Header.Get("Location"))

	res = client.do(http.MethodGet, "/state", nil, "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestHandler_ThemeVariant(t *testing.T) {
	client, _ := newTestClient(t, WithThemeSelector(NewManifestSelector(DefaultManifest()), "entryform", "dark"))

	res := client.do(http.MethodGet, "/", nil, "")
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "--surface: #111827;")
	assert.Contains(t, string(body), `data-variant="dark"`)
}

func TestNewHandler_UnknownVariant(t *testing.T) {
	_, err := NewHandler(testFactory(), WithThemeSelector(NewManifestSelector(DefaultManifest()), "", "sepia"))
	assert.Error(t, err)
}
