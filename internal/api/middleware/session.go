package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freelancehub/marketplace/internal/api/metrics"
	"github.com/freelancehub/marketplace/internal/core/domain"
)

// SessionVerifier resolves an opaque session token to its user.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*domain.User, error)
}

// Session validates the X-Session-Token header against the session store and
// injects the resolved user into context under "user".
func Session(verifier SessionVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get("X-Session-Token")
			if token == "" {
				metrics.SessionVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "session token required")
			}

			user, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				metrics.SessionVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			metrics.SessionVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set("user", user)
			return next(c)
		}
	}
}
