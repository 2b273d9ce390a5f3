package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		s, err := Load(filepath.Join(t.TempDir(), "espmanager.toml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), s)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "espmanager.toml")
		contents := `
projects_dir = "firmware"
log_dir = ""
debug = true
default_baud = 921600
esptool_path = "/opt/esptool/esptool"
`
		require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "firmware", s.ProjectsDir)
		assert.Empty(t, s.LogDir)
		assert.True(t, s.Debug)
		assert.Equal(t, 921600, s.DefaultBaud)
		assert.Equal(t, "/opt/esptool/esptool", s.EsptoolPath)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "espmanager.toml")
		require.NoError(t, os.WriteFile(path, []byte(`projects_dir = "firmware"`), 0644))
		t.Setenv("ESPMANAGER_PROJECTS_DIR", "/srv/esp32")
		t.Setenv("ESPMANAGER_DEBUG", "true")

		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/srv/esp32", s.ProjectsDir)
		assert.True(t, s.Debug)
	})

	t.Run("broken toml is reported", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "espmanager.toml")
		require.NoError(t, os.WriteFile(path, []byte("projects_dir = ["), 0644))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("empty projects dir is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "espmanager.toml")
		require.NoError(t, os.WriteFile(path, []byte(`projects_dir = ""`), 0644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}
