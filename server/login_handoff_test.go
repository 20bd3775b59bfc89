package server_test

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const mobileRedirectTarget = "myapp://redirect"

// webFixture drives the login pages the way a browser would: cookies are
// kept across requests and redirects are returned instead of followed,
// so each Location header can be asserted.
type webFixture struct {
	*testFixture
	ts     *httptest.Server
	client *http.Client
}

func setupWebFixture(t *testing.T) *webFixture {
	t.Helper()

	f := setupTestFixture(t)
	ts := httptest.NewServer(f.server)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &webFixture{
		testFixture: f,
		ts:          ts,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (f *webFixture) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := f.client.Get(f.ts.URL + path)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp
}

func (f *webFixture) submitLogin(t *testing.T, email, password string) *http.Response {
	t.Helper()
	resp, err := f.client.PostForm(f.ts.URL+"/auth/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp
}

// runHandoff performs the full mobile handoff and returns the minted
// session token from the final redirect.
func (f *webFixture) runHandoff(t *testing.T) string {
	t.Helper()

	resp := f.get(t, "/login?postLoginMobileAppRedirectUrl="+url.QueryEscape(mobileRedirectTarget))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.submitLogin(t, f.config.GetSeedUserEmail(), f.config.GetSeedUserPassword())
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login-success", resp.Header.Get("Location"))

	resp = f.get(t, "/login-success")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	location := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(location, mobileRedirectTarget+"?sessionId="),
		"expected redirect into the app, got %q", location)

	parsed, err := url.Parse(location)
	require.NoError(t, err)
	token := parsed.Query().Get("sessionId")
	require.NotEmpty(t, token)
	return token
}

func TestMobileHandoffMintsUsableToken(t *testing.T) {
	f := setupWebFixture(t)

	token := f.runHandoff(t)

	// The token handed to the app must work as an API bearer token
	rec := f.doAPI(http.MethodGet, "/api/user", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandoffRedirectIsSingleUse(t *testing.T) {
	f := setupWebFixture(t)

	f.runHandoff(t)

	// Revisiting the landing page must not re-trigger the app redirect
	resp := f.get(t, "/login-success")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

func TestLoginSuccessWithoutLoginGoesHome(t *testing.T) {
	f := setupWebFixture(t)

	resp := f.get(t, "/login-success")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

func TestPlainLoginDoesNotRedirectIntoApp(t *testing.T) {
	f := setupWebFixture(t)

	// No handoff parameter, so no redirect target is stashed
	resp := f.get(t, "/login")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.submitLogin(t, f.config.GetSeedUserEmail(), f.config.GetSeedUserPassword())
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp = f.get(t, "/login-success")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

func TestWrongPasswordRedirectsBackToLogin(t *testing.T) {
	f := setupWebFixture(t)

	resp := f.submitLogin(t, f.config.GetSeedUserEmail(), "wrong-password")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	location := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(location, "/login?error="), "got %q", location)

	parsed, err := url.Parse(location)
	require.NoError(t, err)
	require.Equal(t, f.config.GetSeedUserEmail(), parsed.Query().Get("email"))
}

func TestHandoffLoginRevokesExistingBrowserSession(t *testing.T) {
	f := setupWebFixture(t)

	// First handoff leaves an authenticated browser session behind
	firstToken := f.runHandoff(t)

	// Starting a new handoff must revoke it rather than reuse it
	resp := f.get(t, "/login?postLoginMobileAppRedirectUrl="+url.QueryEscape(mobileRedirectTarget))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rec := f.doAPI(http.MethodGet, "/api/user", firstToken, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// The fresh handoff still completes with a new, working token
	secondToken := f.runHandoff(t)
	require.NotEqual(t, firstToken, secondToken)

	rec = f.doAPI(http.MethodGet, "/api/user", secondToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutClearsBrowserSession(t *testing.T) {
	f := setupWebFixture(t)

	token := f.runHandoff(t)

	resp := f.get(t, "/auth/logout")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))

	rec := f.doAPI(http.MethodGet, "/api/user", token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
