package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tourofheroes/heroes/internal/view"
)

// TrackHistory records full page loads in the session history so "back" can
// return to them. htmx requests only replace fragments and are skipped.
// The visit is recorded before the handler runs because the session cookie
// must be written before the response body.
func TrackHistory(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Method == http.MethodGet && c.Request().Header.Get("HX-Request") != "true" {
			view.Visit(c, c.Request().URL.RequestURI())
		}
		return next(c)
	}
}
