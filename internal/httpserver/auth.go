package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hantagam/qrmenu/internal/auth"
	"github.com/hantagam/qrmenu/internal/logging"
	"github.com/hantagam/qrmenu/internal/transport"
)

type AuthHTTP struct {
	Limiter  *auth.LoginLimiter
	Verifier *auth.CredentialVerifier
	Tokens   *auth.TokenService
}

// Login is the rate-limited admin login. Order matters: the limiter is
// consulted before credentials are even looked at, and validation
// failures count as failed attempts too.
func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")
	clientKey := c.RealIP()

	if !h.Limiter.Allow(clientKey) {
		l.Warn("login_rate_limited", "status", 429, "client", clientKey)
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later")
	}

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		h.Limiter.RecordFailure(clientKey)
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}
	if req.Username == "" || req.Password == "" {
		h.Limiter.RecordFailure(clientKey)
		l.Warn("login_failed", "status", 400, "reason", "missing fields")
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	if !h.Verifier.Verify(req.Username, req.Password) {
		h.Limiter.RecordFailure(clientKey)
		l.Warn("login_failed", "status", 401, "client", clientKey)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}

	h.Limiter.Reset(clientKey)

	token, exp, err := h.Tokens.IssueToken(req.Username, "admin")
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	c.SetCookie(h.Tokens.SessionCookie(token, exp))
	l.Info("login_successful")
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Verify reports whether the request carries a valid session cookie.
// Absent, malformed and expired tokens all look the same.
func (h *AuthHTTP) Verify(c echo.Context) error {
	cookie, err := c.Cookie(auth.CookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"authenticated": false})
	}
	if _, err := h.Tokens.ParseToken(cookie.Value); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"authenticated": false})
	}
	return c.JSON(http.StatusOK, echo.Map{"authenticated": true})
}

// LogOut clears the cookie. There is no server-side revocation; the
// token stays valid until its natural expiry.
func (h *AuthHTTP) LogOut(c echo.Context) error {
	c.SetCookie(h.Tokens.DeleteCookie())
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
