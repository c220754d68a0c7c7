package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware checks the X-Api-Key header against the configured key.
// When no key is configured the API is open, which is the expected setup for
// local single-user runs.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cc, ok := c.(*AppContext)
		if !ok {
			return echo.NewHTTPError(http.StatusInternalServerError, "missing app context")
		}

		if cc.App.APIKey == "" {
			return next(c)
		}

		provided := c.Request().Header.Get("X-Api-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(cc.App.APIKey)) != 1 {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid API key")
		}
		return next(c)
	}
}
