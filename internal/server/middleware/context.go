package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/frido22/ai-paper-agent/pkg/ai"
	"github.com/frido22/ai-paper-agent/pkg/argument"
	"github.com/frido22/ai-paper-agent/pkg/registry"
)

// App bundles the long-lived dependencies handlers need.
type App struct {
	Registry      *registry.Registry
	AiClient      ai.ReasoningClient
	ExtractConfig argument.Config
	APIKey        string
}

// AppContext wraps the echo context with application state.
type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware attaches the shared application state to every
// request.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{c, app})
		}
	}
}
