// handlers_health.go - Health check handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandlerImpl implements the HealthHandler interface
type HealthHandlerImpl struct {
	version string
	types   []string
}

// NewHealthHandler creates a new health handler. types lists the widget
// types the converter supports.
func NewHealthHandler(version string, types []string) HealthHandler {
	return &HealthHandlerImpl{
		version: version,
		types:   types,
	}
}

// HandleHealth returns server health status
func (h *HealthHandlerImpl) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"version":     h.version,
		"widgetTypes": h.types,
	})
}
