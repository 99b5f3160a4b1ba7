// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/tmlemon/opi2edl/internal/edl"
	"github.com/tmlemon/opi2edl/internal/storage"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Store      storage.Store
	Jobs       JobManager
	History    HistoryReader // nil disables the history endpoints
	Palette    edl.Palette
	Extensions []string
	Layout     bool
	Types      []string
	Version    string
	Logger     *slog.Logger
}

// Handlers holds all handler instances
type Handlers struct {
	Health    HealthHandler
	Convert   ConvertHandler
	Palette   PaletteHandler
	History   HistoryHandler
	JobStream JobStreamHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(deps.Version, deps.Types),
		Convert:   NewConvertHandler(deps.Store, deps.Jobs, deps.Extensions, deps.Layout),
		Palette:   NewPaletteHandler(deps.Palette),
		History:   NewHistoryHandler(deps.History),
		JobStream: NewWebSocketHandler(deps.Jobs, deps.Logger),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	e.GET("/api/health", handlers.Health.HandleHealth)

	// Conversion routes
	convertGroup := e.Group("/api/convert")
	convertGroup.POST("", handlers.Convert.HandleConvert)
	convertGroup.GET("/:jobId", handlers.Convert.HandleJobStatus)
	convertGroup.GET("/:jobId/files/:fileId", handlers.Convert.HandleDownload)
	convertGroup.GET("/:jobId/report/msgpack", handlers.Convert.HandleReportMsgpack)

	// Palette routes
	paletteGroup := e.Group("/api/palette")
	paletteGroup.GET("", handlers.Palette.HandlePalette)
	paletteGroup.GET("/match", handlers.Palette.HandleMatch)

	// History routes
	historyGroup := e.Group("/api/history")
	historyGroup.GET("", handlers.History.HandleHistory)
	historyGroup.GET("/skipped", handlers.History.HandleSkippedTypes)

	RegisterWebSocketRoutes(e, handlers)
}

// RegisterWebSocketRoutes registers WebSocket routes
func RegisterWebSocketRoutes(e *echo.Echo, handlers *Handlers) {
	e.GET("/api/ws/jobs/:jobId", handlers.JobStream.HandleJobStream)
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo) {
	e.HTTPErrorHandler = ErrorHandler
}
