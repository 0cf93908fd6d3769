package view

import (
	"log/slog"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	historySessionName = "history-session"
	historyKeyPages    = "pages"
	historyLimit       = 10
)

// DefaultBackPath is where "back" leads when there is no earlier page.
const DefaultBackPath = "/dashboard"

// Visit records path as the current page. Revisiting the current page is a
// no-op and only the last historyLimit pages are kept.
func Visit(c echo.Context, path string) {
	sess, err := session.Get(historySessionName, c)
	if err != nil {
		slog.Warn("History session unavailable", "error", err)
		return
	}

	pages := pagesOf(sess.Values[historyKeyPages])
	if n := len(pages); n > 0 && pages[n-1] == path {
		return
	}
	pages = append(pages, path)
	if len(pages) > historyLimit {
		pages = pages[len(pages)-historyLimit:]
	}

	sess.Values[historyKeyPages] = pages
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		slog.Warn("Failed to save history session", "error", err)
	}
}

// Back drops the current page and returns the one before it, or
// DefaultBackPath when there is none.
func Back(c echo.Context) string {
	sess, err := session.Get(historySessionName, c)
	if err != nil {
		slog.Warn("History session unavailable", "error", err)
		return DefaultBackPath
	}

	pages := pagesOf(sess.Values[historyKeyPages])
	target := DefaultBackPath
	if len(pages) >= 2 {
		pages = pages[:len(pages)-1]
		target = pages[len(pages)-1]
	} else {
		pages = nil
	}

	sess.Values[historyKeyPages] = pages
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		slog.Warn("Failed to save history session", "error", err)
	}
	return target
}

// Pages returns the recorded history, oldest first.
func Pages(c echo.Context) []string {
	sess, err := session.Get(historySessionName, c)
	if err != nil {
		return nil
	}
	return pagesOf(sess.Values[historyKeyPages])
}

func pagesOf(v any) []string {
	pages, _ := v.([]string)
	return append([]string(nil), pages...)
}
