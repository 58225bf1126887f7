package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"tenant-auth-service/app/domain"
	"tenant-auth-service/app/port"
)

// AccessMiddleware gates routes on the current session and an access
// spec. Denial is expressed as a redirect target in the body; a missing
// session denies toward the login page with 401, everything else 403.
type AccessMiddleware struct {
	sessions port.SessionSource
	logger   *slog.Logger
}

// NewAccessMiddleware creates the access gate.
func NewAccessMiddleware(sessions port.SessionSource, logger *slog.Logger) *AccessMiddleware {
	return &AccessMiddleware{
		sessions: sessions,
		logger:   logger.With("component", "access_middleware"),
	}
}

// DeniedResponse is the body returned on a denied request.
type DeniedResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code"`
	Redirect string `json:"redirect"`
}

// Require returns middleware enforcing the given spec on a route.
func (m *AccessMiddleware) Require(spec domain.AccessSpec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := m.sessions.CurrentSession()
			decision := domain.CheckAccess(session, spec)
			if decision.Allowed {
				return next(c)
			}

			if decision.Redirect == domain.RedirectLogin {
				m.logger.Info("unauthenticated request denied",
					"path", c.Request().URL.Path,
					"ip", c.RealIP())
				return c.JSON(http.StatusUnauthorized, DeniedResponse{
					Error:    "authentication required",
					Code:     "NO_SESSION",
					Redirect: decision.Redirect,
				})
			}

			m.logger.Info("request denied by access policy",
				"path", c.Request().URL.Path,
				"role", session.Role,
				"redirect", decision.Redirect)
			return c.JSON(http.StatusForbidden, DeniedResponse{
				Error:    "access denied",
				Code:     "FORBIDDEN",
				Redirect: decision.Redirect,
			})
		}
	}
}

// RequireSession enforces only login-gating: any valid session passes.
func (m *AccessMiddleware) RequireSession() echo.MiddlewareFunc {
	return m.Require(domain.AccessSpec{})
}
