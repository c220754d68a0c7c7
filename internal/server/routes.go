package server

import (
	"github.com/labstack/echo/v4"

	"github.com/frido22/ai-paper-agent/internal/server/middleware"
	"github.com/frido22/ai-paper-agent/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Paper routes
	apiRoutes.POST("/papers", routes.UploadPaperHandler)
	apiRoutes.GET("/papers", routes.GetPapersHandler)
	apiRoutes.GET("/papers/:id", routes.GetPaperHandler)
	apiRoutes.GET("/papers/:id/graph", routes.GetPaperGraphHandler)
	apiRoutes.GET("/papers/:id/stats", routes.GetPaperStatsHandler)
	apiRoutes.DELETE("/papers/:id", routes.DeletePaperHandler)
}
