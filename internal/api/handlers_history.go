// handlers_history.go - Conversion history handlers
package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const defaultHistoryLimit = 50

// HistoryHandlerImpl implements the HistoryHandler interface
type HistoryHandlerImpl struct {
	history HistoryReader
}

// NewHistoryHandler creates a new history handler. A nil reader makes the
// endpoints report the service as unavailable.
func NewHistoryHandler(history HistoryReader) HistoryHandler {
	return &HistoryHandlerImpl{history: history}
}

// HandleHistory returns recent conversions, newest first
func (h *HistoryHandlerImpl) HandleHistory(c echo.Context) error {
	if h.history == nil {
		return NewServiceUnavailableError("conversion history is disabled")
	}

	limit := defaultHistoryLimit
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return NewValidationError("limit")
		}
		limit = n
	}

	records, err := h.history.Recent(c.Request().Context(), limit)
	if err != nil {
		return NewInternalError("failed to read history", err)
	}
	return c.JSON(http.StatusOK, records)
}

// HandleSkippedTypes ranks the widget types conversions had to leave out
func (h *HistoryHandlerImpl) HandleSkippedTypes(c echo.Context) error {
	if h.history == nil {
		return NewServiceUnavailableError("conversion history is disabled")
	}

	counts, err := h.history.SkippedTypes(c.Request().Context())
	if err != nil {
		return NewInternalError("failed to read history", err)
	}
	return c.JSON(http.StatusOK, counts)
}
