package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freelancehub/marketplace/internal/core/domain"
)

// ctxUser extracts the user injected by the session middleware and
// fast-fails when the route was wired without it. Presence of the value
// proves verification already happened.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
	}
	return user, nil
}
