// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/tmlemon/opi2edl/internal/batch"
	"github.com/tmlemon/opi2edl/internal/history"
	"github.com/tmlemon/opi2edl/internal/models"
)

// ConvertHandler handles upload-and-convert jobs
type ConvertHandler interface {
	HandleConvert(c echo.Context) error
	HandleJobStatus(c echo.Context) error
	HandleDownload(c echo.Context) error
	HandleReportMsgpack(c echo.Context) error
}

// PaletteHandler exposes the colour palette
type PaletteHandler interface {
	HandlePalette(c echo.Context) error
	HandleMatch(c echo.Context) error
}

// HistoryHandler reports past conversions
type HistoryHandler interface {
	HandleHistory(c echo.Context) error
	HandleSkippedTypes(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// JobStreamHandler streams job progress over WebSocket
type JobStreamHandler interface {
	HandleJobStream(c echo.Context) error
}

// JobManager defines the job operations the handlers need
// This allows mocking in tests
type JobManager interface {
	StartJob(inputs []batch.Input, layout bool) models.ConversionJob
	GetJob(id string) (models.ConversionJob, bool)
	Subscribe(id string) (<-chan models.ConversionJob, func(), error)
}

// HistoryReader defines read access to the conversion history
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error)
	SkippedTypes(ctx context.Context) ([]history.SkippedCount, error)
}

var (
	_ JobManager    = (*batch.Manager)(nil)
	_ HistoryReader = (*history.Store)(nil)
)
