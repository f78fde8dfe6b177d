package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cereza/orderdesk/internal/api/middleware"
	"github.com/cereza/orderdesk/internal/core/service"
)

// ctxSession returns the SessionContext installed by the Session middleware.
// A missing session means the route was mounted without it.
func ctxSession(c echo.Context) (*service.SessionContext, error) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session middleware not installed")
	}
	return sess, nil
}

// bindAndValidate decodes the JSON body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
