package server

import (
	"errors"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	appmiddleware "github.com/tourofheroes/heroes/internal/middleware"
)

// setupErrorHandling logs unhandled errors with a stack trace before echo
// turns them into a response. *echo.HTTPError values are expected outcomes
// and are passed through quietly.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			appmiddleware.FromContext(c.Request().Context()).Error("Internal Server Error (Unhandled)",
				"error", err,
				"stack_trace", string(debug.Stack()),
			)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
