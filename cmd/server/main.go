package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/tmlemon/opi2edl/internal/api"
	"github.com/tmlemon/opi2edl/internal/batch"
	"github.com/tmlemon/opi2edl/internal/config"
	"github.com/tmlemon/opi2edl/internal/history"
	"github.com/tmlemon/opi2edl/internal/storage"
	"github.com/tmlemon/opi2edl/internal/translator"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Get the executable's directory for config resolution
	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}
	exeDir := filepath.Dir(exePath)

	// Load XML configuration
	configPath := filepath.Join(exeDir, "opi2edl.config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Ensure all data directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))

	opts, err := cfg.TranslatorOptions()
	if err != nil {
		fmt.Printf("Failed to load translator options: %v\n", err)
		os.Exit(1)
	}

	// Initialize storage
	fileStore, err := storage.NewLocalStore(cfg.Storage.UploadsDirectory)
	if err != nil {
		fmt.Printf("Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}

	// Conversion history is optional; an empty path disables it.
	var historyStore *history.Store
	if cfg.Advanced.HistoryDatabase != "" {
		historyStore, err = history.Open(cfg.Advanced.HistoryDatabase)
		if err != nil {
			fmt.Printf("Failed to open history database: %v\n", err)
			os.Exit(1)
		}
		defer historyStore.Close()
	}

	managerCfg := batch.ManagerConfig{
		Options: opts,
		Sink:    batch.StoreSink{Store: fileStore},
		Workers: cfg.Conversion.MaxConcurrentConversions,
		Logger:  logger,
	}
	deps := &api.Dependencies{
		Store:      fileStore,
		Palette:    opts.Palette,
		Extensions: cfg.Extensions(),
		Layout:     cfg.Conversion.LayoutMode,
		Types:      translator.New(opts).Registry().Types(),
		Version:    Version,
		Logger:     logger,
	}
	if historyStore != nil {
		managerCfg.History = historyStore
		deps.History = historyStore
	}

	jobMgr := batch.NewManager(managerCfg)
	defer jobMgr.Close()
	deps.Jobs = jobMgr

	// Start background job cleanup
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	interval := time.Duration(cfg.Conversion.CleanupIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				jobMgr.CleanupOldJobs(time.Duration(cfg.Conversion.JobRetentionMinutes) * time.Minute)
			}
		}
	}()

	e := echo.New()
	e.HideBanner = true
	api.SetupMiddleware(e)

	// Configure middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging if disabled in config
			if !cfg.Advanced.EnableRequestLogging {
				return true
			}
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/api/ws/") ||
				path == "/api/health"
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	// Body limit middleware
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// CORS configuration
	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 1 && origins[0] == "" {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	api.RegisterRoutes(e, api.NewHandlers(deps))

	// Configure server with settings from XML config
	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	historyPath := "disabled"
	if historyStore != nil {
		historyPath = cfg.Advanced.HistoryDatabase
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           OPI to EDL Conversion Server                    ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  Layout:     %-45t║\n", cfg.Conversion.LayoutMode)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Uploads:   %-46s║\n", cfg.Storage.UploadsDirectory)
	fmt.Printf("║  History:   %-46s║\n", historyPath)
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	if err := e.StartServer(s); err != nil && err != http.ErrServerClosed {
		logger.Error("server stopped", slog.String("error", err.Error()))
	}
}
