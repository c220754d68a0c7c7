package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frido22/ai-paper-agent/internal/server/middleware"
	"github.com/frido22/ai-paper-agent/pkg/registry"
)

// DeletePaperHandler removes a stored paper record.
func DeletePaperHandler(c echo.Context) error {
	type deletePaperData struct {
		PaperID string `param:"id" validate:"required"`
	}

	cc := c.(*middleware.AppContext)

	data := new(deletePaperData)
	if err := c.Bind(data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request params")
	}
	if err := c.Validate(data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request params")
	}

	err := cc.App.Registry.Delete(c.Request().Context(), data.PaperID)
	if errors.Is(err, registry.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "paper not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not delete paper")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "paper deleted"})
}
