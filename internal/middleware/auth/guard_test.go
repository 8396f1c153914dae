package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hantagam/qrmenu/internal/auth"
)

func newTestGuard() (*Guard, *auth.TokenService) {
	tokens := &auth.TokenService{
		Secret: []byte("test-secret-test-secret-test-secret!"),
		TTL:    24 * time.Hour,
	}
	return NewGuard(tokens), tokens
}

func doGuarded(t *testing.T, mw echo.MiddlewareFunc, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRequireAdmin_AllowsValidToken(t *testing.T) {
	t.Parallel()

	g, tokens := newTestGuard()
	token, exp, err := tokens.IssueToken("hantagam_admin", "admin")
	require.NoError(t, err)

	rec := doGuarded(t, g.RequireAdmin, tokens.SessionCookie(token, exp))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_DeniesUniformly(t *testing.T) {
	t.Parallel()

	g, tokens := newTestGuard()

	expired := &auth.TokenService{Secret: tokens.Secret, TTL: -time.Hour}
	expiredToken, _, err := expired.IssueToken("hantagam_admin", "admin")
	require.NoError(t, err)

	foreign := &auth.TokenService{Secret: []byte("other-secret-other-secret-0123456789"), TTL: time.Hour}
	foreignToken, _, err := foreign.IssueToken("hantagam_admin", "admin")
	require.NoError(t, err)

	tests := []struct {
		name    string
		cookies []*http.Cookie
	}{
		{"no cookie", nil},
		{"empty cookie", []*http.Cookie{{Name: auth.CookieName, Value: ""}}},
		{"garbage token", []*http.Cookie{{Name: auth.CookieName, Value: "not-a-jwt"}}},
		{"expired token", []*http.Cookie{{Name: auth.CookieName, Value: expiredToken}}},
		{"wrong secret", []*http.Cookie{{Name: auth.CookieName, Value: foreignToken}}},
	}
	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGuarded(t, g.RequireAdmin, tt.cookies...)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			bodies = append(bodies, rec.Body.String())
		})
	}

	// every failure mode answers with the identical body
	for i := 1; i < len(bodies); i++ {
		assert.Equal(t, bodies[0], bodies[i])
	}
}

func TestRedirectToLogin(t *testing.T) {
	t.Parallel()

	g, tokens := newTestGuard()

	rec := doGuarded(t, g.RedirectToLogin("/admin"))
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get(echo.HeaderLocation))

	token, exp, err := tokens.IssueToken("hantagam_admin", "admin")
	require.NoError(t, err)
	rec = doGuarded(t, g.RedirectToLogin("/admin"), tokens.SessionCookie(token, exp))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_SetsIdentityInContext(t *testing.T) {
	t.Parallel()

	g, tokens := newTestGuard()
	token, exp, err := tokens.IssueToken("hantagam_admin", "admin")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.AddCookie(tokens.SessionCookie(token, exp))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var username, role any
	handler := g.RequireAdmin(func(c echo.Context) error {
		username = c.Get("username")
		role = c.Get("role")
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, "hantagam_admin", username)
	assert.Equal(t, "admin", role)
}
