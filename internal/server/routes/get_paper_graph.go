package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frido22/ai-paper-agent/internal/server/middleware"
	"github.com/frido22/ai-paper-agent/pkg/registry"
)

// GetPaperGraphHandler returns just the nodes/edges graph of a paper.
func GetPaperGraphHandler(c echo.Context) error {
	type getPaperGraphData struct {
		PaperID string `param:"id" validate:"required"`
	}

	cc := c.(*middleware.AppContext)

	data := new(getPaperGraphData)
	if err := c.Bind(data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request params")
	}
	if err := c.Validate(data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request params")
	}

	p, err := cc.App.Registry.Get(c.Request().Context(), data.PaperID)
	if errors.Is(err, registry.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "paper not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load paper")
	}
	return c.JSON(http.StatusOK, p.Graph)
}
