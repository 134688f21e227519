// Package logging provides config-driven categorized file-based logging for flipdeck.
// Logs are written to .flipdeck/logs/ with separate files per category.
// Logging is controlled by debug_mode in .flipdeck/config.yaml - when false, no logs are written
// and every category logger is a no-op, since the terminal belongs to the TUI.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot      Category = "boot"      // Boot/initialization
	CategoryStore     Category = "store"     // State persistence
	CategoryGame      Category = "game"      // Card rounds, reveal/remove, timer picks
	CategoryCountdown Category = "countdown" // Countdown ticks and completion
	CategoryAudio     Category = "audio"     // Beep synthesis and playback
	CategoryUI        Category = "ui"        // TUI events
	CategoryConfig    Category = "config"    // Config loading and hot reload
)

// Config mirrors the relevant parts of config.LoggingConfig
// to avoid circular imports
type Config struct {
	DebugMode  bool
	Level      string
	Categories map[string]bool
}

var (
	loggers   = make(map[Category]*zap.Logger)
	loggersMu sync.RWMutex
	logsDir   string
	config    Config
	configMu  sync.RWMutex
	level     = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	// override, when set, receives every category instead of per-category files.
	override *zap.Logger
)

// Initialize sets up the logging directory for the workspace.
// Should be called once at startup with the workspace path.
func Initialize(workspace string, cfg Config) error {
	if workspace == "" {
		return fmt.Errorf("workspace path required")
	}

	CloseAll()

	configMu.Lock()
	config = cfg
	level.SetLevel(parseLevel(cfg.Level))
	configMu.Unlock()

	dir := filepath.Join(workspace, ".flipdeck", "logs")

	// Only create logs directory if debug mode is enabled
	if !cfg.DebugMode {
		loggersMu.Lock()
		logsDir = ""
		loggersMu.Unlock()
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	loggersMu.Lock()
	logsDir = dir
	loggersMu.Unlock()

	boot := Get(CategoryBoot)
	boot.Info("=== flipdeck logging initialized ===",
		zap.String("workspace", workspace),
		zap.String("logs_dir", dir),
		zap.String("level", level.String()))

	return nil
}

// UseLogger routes every category to l (for CLI --verbose runs and tests).
// Pass nil to go back to per-category files.
func UseLogger(l *zap.Logger) {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	override = l
	loggers = make(map[Category]*zap.Logger)
}

// IsDebugMode returns whether debug logging is enabled
func IsDebugMode() bool {
	configMu.RLock()
	defer configMu.RUnlock()
	return config.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	configMu.RLock()
	defer configMu.RUnlock()

	if config.Categories == nil {
		return true
	}
	enabled, exists := config.Categories[string(category)]
	if !exists {
		return true // Enable by default if not specified
	}
	return enabled
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *zap.Logger {
	if !IsCategoryEnabled(category) {
		return zap.NewNop()
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	ov, dir := override, logsDir
	loggersMu.RUnlock()

	if ov == nil && (dir == "" || !IsDebugMode()) {
		return zap.NewNop()
	}

	loggersMu.Lock()
	defer loggersMu.Unlock()

	// Double-check after acquiring write lock
	if l, ok := loggers[category]; ok {
		return l
	}

	var l *zap.Logger
	if ov != nil {
		l = ov.Named(string(category))
	} else {
		built, err := newFileLogger(dir, category)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[logging] Warning: %v\n", err)
			return zap.NewNop()
		}
		l = built
	}
	loggers[category] = l
	return l
}

// newFileLogger creates a JSON zap logger writing to a dated per-category file.
func newFileLogger(dir string, category Category) (*zap.Logger, error) {
	date := time.Now().Format("2006-01-02")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.log", date, category))

	cfg := zap.Config{
		Level:            level,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("could not open log file %s: %w", path, err)
	}
	return l.Named(string(category)), nil
}

// SetLevel changes the level of every category logger at runtime.
func SetLevel(s string) {
	level.SetLevel(parseLevel(s))
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// CloseAll flushes all category loggers and forgets them.
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, l := range loggers {
		_ = l.Sync()
	}
	loggers = make(map[Category]*zap.Logger)
}
