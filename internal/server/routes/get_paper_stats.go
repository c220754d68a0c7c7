package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frido22/ai-paper-agent/internal/server/middleware"
	"github.com/frido22/ai-paper-agent/pkg/argument"
	"github.com/frido22/ai-paper-agent/pkg/registry"
)

// GetPaperStatsHandler returns count summaries and complexity metrics for a
// stored paper's graph.
func GetPaperStatsHandler(c echo.Context) error {
	type getPaperStatsData struct {
		PaperID string `param:"id" validate:"required"`
	}

	cc := c.(*middleware.AppContext)

	data := new(getPaperStatsData)
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

	graph := argument.FromOutput(p.Graph)

	type statsResponse struct {
		Stats      argument.Stats      `json:"stats"`
		Complexity argument.Complexity `json:"complexity"`
		Issues     []string            `json:"issues,omitempty"`
	}

	return c.JSON(http.StatusOK, statsResponse{
		Stats:      graph.Stats(),
		Complexity: argument.AnalyzeComplexity(graph),
		Issues:     graph.Validate(),
	})
}
