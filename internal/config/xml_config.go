// Package config provides XML-based configuration management for the converter service.
package config

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tmlemon/opi2edl/internal/parser"
	"github.com/tmlemon/opi2edl/internal/translator"
)

// AppConfig represents the root XML configuration structure
type AppConfig struct {
	XMLName xml.Name `xml:"OPI2EDL"`

	// Server configuration
	Server ServerConfig `xml:"Server"`

	// Storage configuration
	Storage StorageConfig `xml:"Storage"`

	// Conversion configuration
	Conversion ConversionConfig `xml:"Conversion"`

	// Advanced options
	Advanced AdvancedConfig `xml:"Advanced"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int    `xml:"Port"`
	BindAddress  string `xml:"BindAddress"`
	EnableCORS   bool   `xml:"EnableCORS"`
	AllowOrigins string `xml:"AllowOrigins"`
	ReadTimeout  int    `xml:"ReadTimeoutSeconds"`
	WriteTimeout int    `xml:"WriteTimeoutSeconds"`
	IdleTimeout  int    `xml:"IdleTimeoutSeconds"`
	BodyLimit    string `xml:"BodyLimit"`
}

// StorageConfig contains file storage settings
type StorageConfig struct {
	DataDirectory    string `xml:"DataDirectory"`
	UploadsDirectory string `xml:"UploadsDirectory"`
}

// ConversionConfig contains translation settings
type ConversionConfig struct {
	OutputDirectory          string `xml:"OutputDirectory"`
	ImagePathPrefix          string `xml:"ImagePathPrefix"`
	LayoutMode               bool   `xml:"LayoutMode"`
	MaxConcurrentConversions int    `xml:"MaxConcurrentConversions"`
	RulesFile                string `xml:"RulesFile"`
	InputExtensions          string `xml:"InputExtensions"`
	JobRetentionMinutes      int    `xml:"JobRetentionMinutes"`
	CleanupIntervalMinutes   int    `xml:"CleanupIntervalMinutes"`
}

// AdvancedConfig contains advanced/tuning options
type AdvancedConfig struct {
	LogLevel             string `xml:"LogLevel"`
	EnableRequestLogging bool   `xml:"EnableRequestLogging"`
	HistoryDatabase      string `xml:"HistoryDatabase"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         8089,
			BindAddress:  "0.0.0.0",
			EnableCORS:   true,
			AllowOrigins: "*",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  120,
			BodyLimit:    "64M",
		},
		Storage: StorageConfig{
			DataDirectory:    "./data",
			UploadsDirectory: "./data/uploads",
		},
		Conversion: ConversionConfig{
			OutputDirectory:          "./data/edl",
			ImagePathPrefix:          "",
			LayoutMode:               false,
			MaxConcurrentConversions: 4,
			RulesFile:                "",
			InputExtensions:          ".opi",
			JobRetentionMinutes:      60,
			CleanupIntervalMinutes:   5,
		},
		Advanced: AdvancedConfig{
			LogLevel:             "info",
			EnableRequestLogging: true,
			HistoryDatabase:      "./data/history.duckdb",
		},
	}
}

// LoadConfig loads configuration from XML file
func LoadConfig(configPath string) (*AppConfig, error) {
	// If file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		config.applyEnvironmentOverrides()
		config.resolvePaths(filepath.Dir(configPath))
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := xml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides
	config.applyEnvironmentOverrides()

	// Resolve relative paths
	config.resolvePaths(filepath.Dir(configPath))

	return config, nil
}

// Save saves the configuration to XML file
func (c *AppConfig) Save(configPath string) error {
	output, err := xml.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(xml.Header + "\n<!-- OPI to EDL converter configuration -->\n<!-- This file is auto-generated on first run -->\n\n")
	content := append(header, output...)

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		c.Storage.DataDirectory = dataDir
		c.Storage.UploadsDirectory = filepath.Join(dataDir, "uploads")
	}

	if outDir := os.Getenv("OPI2EDL_OUTPUT_DIR"); outDir != "" {
		c.Conversion.OutputDirectory = outDir
	}

	if level := os.Getenv("OPI2EDL_LOG_LEVEL"); level != "" {
		c.Advanced.LogLevel = level
	}
}

// resolvePaths converts relative paths to absolute based on config file location
func (c *AppConfig) resolvePaths(configDir string) {
	for _, p := range []*string{
		&c.Storage.DataDirectory,
		&c.Storage.UploadsDirectory,
		&c.Conversion.OutputDirectory,
		&c.Conversion.RulesFile,
		&c.Advanced.HistoryDatabase,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(configDir, *p)
		}
	}
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// Extensions returns the accepted input extensions, each with a leading dot.
func (c *AppConfig) Extensions() []string {
	var exts []string
	for _, e := range strings.Split(c.Conversion.InputExtensions, ",") {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	return exts
}

// LogLevel maps Advanced.LogLevel to a slog level. Unknown names give info.
func (c *AppConfig) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Advanced.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// TranslatorOptions builds translator options from the Conversion section,
// loading the panel rules file when one is configured.
func (c *AppConfig) TranslatorOptions() (translator.Options, error) {
	opts := translator.Options{
		Layout:          c.Conversion.LayoutMode,
		ImagePathPrefix: c.Conversion.ImagePathPrefix,
	}
	if c.Conversion.RulesFile != "" {
		rules, err := parser.ParsePanelRules(c.Conversion.RulesFile)
		if err != nil {
			return opts, fmt.Errorf("failed to load rules file %s: %w", c.Conversion.RulesFile, err)
		}
		opts.Rules = rules
	}
	return opts, nil
}

// EnsureDirectories creates all necessary directories
func (c *AppConfig) EnsureDirectories() error {
	dirs := []string{
		c.Storage.DataDirectory,
		c.Storage.UploadsDirectory,
		c.Conversion.OutputDirectory,
	}
	if c.Advanced.HistoryDatabase != "" {
		dirs = append(dirs, filepath.Dir(c.Advanced.HistoryDatabase))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
