package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/medshare/internal/logger"
)

// handleError is the top-level boundary: anything that escapes a handler, panics included
// (via Recover), ends on a page asking the user to reload.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
	}

	if status == http.StatusNotFound {
		if rerr := c.Redirect(http.StatusSeeOther, "/404"); rerr != nil {
			logger.Error("Failed to redirect", logger.F("error", rerr))
		}
		return
	}

	logger.Error("Request failed",
		logger.F("path", c.Request().URL.Path),
		logger.F("status", status),
		logger.F("error", err))

	if c.Request().Method == http.MethodHead {
		c.NoContent(status)
		return
	}
	if rerr := c.Render(status, "error", Page{Title: "Something went wrong"}); rerr != nil {
		c.String(status, "Something went wrong. Please reload the page.")
	}
}

func (s *Server) handleNotFound(c echo.Context) error {
	return s.page(c, http.StatusNotFound, "not_found", Page{Title: "Page not found"})
}
