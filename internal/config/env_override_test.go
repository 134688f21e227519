package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides_State(t *testing.T) {
	t.Setenv("FLIPDECK_STATE_BACKEND", "SQLITE")
	t.Setenv("FLIPDECK_STATE_PATH", "/tmp/deck.db")
	t.Setenv("FLIPDECK_SQLITE_DRIVER", "sqlite3")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, BackendSQLite, cfg.State.Backend)
	assert.Equal(t, "/tmp/deck.db", cfg.State.Path)
	assert.Equal(t, DriverCgo, cfg.State.Driver)
}

func TestEnvOverrides_Audio(t *testing.T) {
	t.Run("FLIPDECK_AUDIO disables cues", func(t *testing.T) {
		t.Setenv("FLIPDECK_AUDIO", "false")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.False(t, cfg.Audio.Enabled)
	})

	t.Run("unparseable FLIPDECK_AUDIO is ignored", func(t *testing.T) {
		t.Setenv("FLIPDECK_AUDIO", "maybe")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.True(t, cfg.Audio.Enabled)
	})

	t.Run("FLIPDECK_AUDIO_PLAYER sets player", func(t *testing.T) {
		t.Setenv("FLIPDECK_AUDIO_PLAYER", "paplay")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "paplay", cfg.Audio.Player)
	})
}

func TestEnvOverrides_DebugRaisesLevel(t *testing.T) {
	t.Setenv("FLIPDECK_DEBUG", "1")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.True(t, cfg.Logging.DebugMode)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverrides_Theme(t *testing.T) {
	t.Setenv("FLIPDECK_THEME", "Dark")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestLoad_DotEnvFile(t *testing.T) {
	// Register cleanup for the variable, then make sure it is unset so the
	// .env value is not shadowed by the real environment.
	t.Setenv("FLIPDECK_THEME", "")
	require.NoError(t, os.Unsetenv("FLIPDECK_THEME"))

	ws := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(ws, ".env"), []byte("FLIPDECK_THEME=light\n"), 0644))

	cfg, err := Load(DefaultPath(ws))
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.UI.Theme)
}

func TestLoad_RealEnvBeatsDotEnv(t *testing.T) {
	t.Setenv("FLIPDECK_THEME", "dark")

	ws := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(ws, ".env"), []byte("FLIPDECK_THEME=light\n"), 0644))

	cfg, err := Load(DefaultPath(ws))
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.UI.Theme)
}
