package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frido22/ai-paper-agent/internal/server/middleware"
	"github.com/frido22/ai-paper-agent/pkg/registry"
)

// GetPapersHandler lists all processed papers without their graphs.
func GetPapersHandler(c echo.Context) error {
	cc := c.(*middleware.AppContext)

	papers, err := cc.App.Registry.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list papers")
	}
	if papers == nil {
		papers = []registry.Paper{}
	}
	return c.JSON(http.StatusOK, papers)
}

// GetPaperHandler returns one paper record including its graph.
func GetPaperHandler(c echo.Context) error {
	type getPaperData struct {
		PaperID string `param:"id" validate:"required"`
	}

	cc := c.(*middleware.AppContext)

	data := new(getPaperData)
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
	return c.JSON(http.StatusOK, p)
}
