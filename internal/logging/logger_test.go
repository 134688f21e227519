package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func resetLogging(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		UseLogger(nil)
		CloseAll()
		configMu.Lock()
		config = Config{}
		configMu.Unlock()
		loggersMu.Lock()
		logsDir = ""
		loggersMu.Unlock()
	})
}

// TestAllCategoriesLog tests that every category creates its own log file when debug_mode is true
func TestAllCategoriesLog(t *testing.T) {
	resetLogging(t)
	workspace := t.TempDir()

	require.NoError(t, Initialize(workspace, Config{DebugMode: true, Level: "debug"}))
	assert.True(t, IsDebugMode())

	categories := []Category{
		CategoryStore, CategoryGame, CategoryCountdown,
		CategoryAudio, CategoryUI, CategoryConfig,
	}
	for _, cat := range categories {
		Get(cat).Info("test message", zap.String("category", string(cat)))
	}
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(workspace, ".flipdeck", "logs"))
	require.NoError(t, err)

	found := make(map[string]bool)
	for _, e := range entries {
		for _, cat := range append(categories, CategoryBoot) {
			if strings.HasSuffix(e.Name(), "_"+string(cat)+".log") {
				found[string(cat)] = true
			}
		}
	}
	for _, cat := range categories {
		assert.True(t, found[string(cat)], "missing log file for %s", cat)
	}
}

func TestProductionModeWritesNothing(t *testing.T) {
	resetLogging(t)
	workspace := t.TempDir()

	require.NoError(t, Initialize(workspace, Config{DebugMode: false}))
	Get(CategoryGame).Info("should be dropped")

	_, err := os.Stat(filepath.Join(workspace, ".flipdeck", "logs"))
	assert.True(t, os.IsNotExist(err), "logs dir must not exist in production mode")
}

func TestInitializeRequiresWorkspace(t *testing.T) {
	resetLogging(t)
	assert.Error(t, Initialize("", Config{}))
}

func TestCategoryFilter(t *testing.T) {
	resetLogging(t)
	core, logs := observer.New(zap.DebugLevel)
	UseLogger(zap.New(core))

	configMu.Lock()
	config = Config{DebugMode: true, Categories: map[string]bool{"audio": false}}
	configMu.Unlock()

	Get(CategoryAudio).Info("muted")
	Get(CategoryGame).Info("heard")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "heard", entry.Message)
	assert.Equal(t, "game", entry.LoggerName)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("DEBUG").String())
	assert.Equal(t, "warn", parseLevel("warning").String())
	assert.Equal(t, "error", parseLevel("error").String())
	assert.Equal(t, "info", parseLevel("nonsense").String())
}
