package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"espmanager/internal/domain/models"
	"espmanager/internal/infrastructure/storage"
	"espmanager/internal/service/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

func (nopLogger) Printf(format string, args ...interface{}) {}

func newTestCatalog(root string) *Service {
	v := validation.NewValidator(storage.NewIniConfigStore(), nopLogger{})
	return NewService(root, v, nopLogger{})
}

func makeProject(t *testing.T, root, name, config string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.Mkdir(dir, 0755))
	if config != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.ini"), []byte(config), 0644))
	}
	return dir
}

func TestService_Scan(t *testing.T) {
	t.Run("missing root yields distinct error and empty catalog", func(t *testing.T) {
		s := newTestCatalog(filepath.Join(t.TempDir(), "nope"))

		projects, err := s.Scan()
		require.ErrorIs(t, err, models.ErrRootNotFound)
		assert.Empty(t, projects)
		assert.Empty(t, s.Projects())
	})

	t.Run("scan lists folders in directory order and tags validity", func(t *testing.T) {
		root := t.TempDir()
		makeProject(t, root, "alpha", "[Settings]\nBaud_Rate = 115200\n")
		makeProject(t, root, "beta", "")
		makeProject(t, root, "gamma", "[Settings]\nBaud_Rate = 12345\n")
		// файлы в корне не являются проектами
		require.NoError(t, os.WriteFile(filepath.Join(root, "readme.txt"), []byte("x"), 0644))

		s := newTestCatalog(root)
		projects, err := s.Scan()
		require.NoError(t, err)
		require.Len(t, projects, 3)

		assert.Equal(t, "alpha", projects[0].Name)
		assert.Equal(t, "beta", projects[1].Name)
		assert.Equal(t, "gamma", projects[2].Name)

		assert.Equal(t, models.ValidityValid, projects[0].Validity())
		assert.Equal(t, models.ValidityInvalid, projects[1].Validity())
		assert.Equal(t, models.ValidityValidWithWarnings, projects[2].Validity())
	})
}

func TestService_Revalidate(t *testing.T) {
	t.Run("changes exactly one entry and keeps order", func(t *testing.T) {
		root := t.TempDir()
		makeProject(t, root, "alpha", "[Settings]\nBaud_Rate = 115200\n")
		betaDir := makeProject(t, root, "beta", "")
		makeProject(t, root, "gamma", "[Settings]\nBaud_Rate = 115200\n")

		s := newTestCatalog(root)
		_, err := s.Scan()
		require.NoError(t, err)

		before := s.Projects()
		alphaBefore, gammaBefore := *before[0], *before[2]
		require.Equal(t, models.ValidityInvalid, before[1].Validity())

		// чиним проект и перепроверяем только его
		require.NoError(t, os.WriteFile(filepath.Join(betaDir, "config.ini"),
			[]byte("[Settings]\nBaud_Rate = 115200\n"), 0644))
		p, err := s.Revalidate("beta")
		require.NoError(t, err)
		assert.Equal(t, models.ValidityValid, p.Validity())
		assert.Empty(t, p.Issues)

		after := s.Projects()
		require.Len(t, after, 3)
		assert.Equal(t, "alpha", after[0].Name)
		assert.Equal(t, "beta", after[1].Name)
		assert.Equal(t, "gamma", after[2].Name)
		assert.Equal(t, alphaBefore, *after[0])
		assert.Equal(t, gammaBefore, *after[2])
	})

	t.Run("revalidate replaces stale warnings", func(t *testing.T) {
		root := t.TempDir()
		dir := makeProject(t, root, "proj", "[Settings]\nBaud_Rate = 12345\n")

		s := newTestCatalog(root)
		_, err := s.Scan()
		require.NoError(t, err)
		p, _ := s.Find("proj")
		require.Len(t, p.Warnings, 1)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.ini"),
			[]byte("[Settings]\nBaud_Rate = 115200\n"), 0644))
		_, err = s.Revalidate("proj")
		require.NoError(t, err)
		assert.Empty(t, p.Warnings)
		assert.Equal(t, models.ValidityValid, p.Validity())
	})

	t.Run("unknown project name is an error", func(t *testing.T) {
		s := newTestCatalog(t.TempDir())
		_, err := s.Scan()
		require.NoError(t, err)

		_, err = s.Revalidate("ghost")
		assert.Error(t, err)
	})
}
