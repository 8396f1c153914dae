package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hantagam/qrmenu/internal/auth"
)

// Guard protects admin routes. Every failure mode (missing cookie,
// malformed token, bad signature, expired) is answered identically so
// the response never reveals which check failed.
type Guard struct {
	Tokens *auth.TokenService
}

func NewGuard(tokens *auth.TokenService) *Guard {
	return &Guard{Tokens: tokens}
}

func (g *Guard) check(c echo.Context) (*auth.SessionClaims, bool) {
	cookie, err := c.Cookie(auth.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	claims, err := g.Tokens.ParseToken(cookie.Value)
	if err != nil || claims == nil {
		return nil, false
	}
	return claims, true
}

// RequireAdmin is the API variant: unauthenticated requests get 401.
func (g *Guard) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := g.check(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		return next(c)
	}
}

// RedirectToLogin is the page variant: unauthenticated requests are
// sent to the login page instead of receiving a bare 401.
func (g *Guard) RedirectToLogin(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := g.check(c)
			if !ok {
				return c.Redirect(http.StatusTemporaryRedirect, loginPath)
			}
			c.Set("username", claims.Username)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}
