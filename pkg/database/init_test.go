package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mharbulous/storysync/pkg/config"
	"github.com/mharbulous/storysync/pkg/errors"
	"github.com/mharbulous/storysync/pkg/filesystem"
)

func setupSource(t *testing.T, withTemplate bool) (sourceRoot, target string) {
	t.Helper()
	tmpDir := t.TempDir()
	sourceRoot = filepath.Join(tmpDir, "source")
	target = filepath.Join(tmpDir, "target")
	require.NoError(t, os.MkdirAll(sourceRoot, 0755))
	require.NoError(t, os.MkdirAll(target, 0755))

	if withTemplate {
		template := filepath.Join(sourceRoot, config.Default().Database.Template)
		require.NoError(t, os.MkdirAll(filepath.Dir(template), 0755))
		require.NoError(t, os.WriteFile(template, []byte("sqlite-template"), 0644))
	}
	return sourceRoot, target
}

func TestInitFromTemplate(t *testing.T) {
	sourceRoot, target := setupSource(t, true)
	init := NewInitializer(filesystem.NewOS(), config.Default().Database)

	dest, err := init.Init(sourceRoot, target, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(target, config.Default().Database.Dest), dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "sqlite-template", string(data))
}

func TestInitRefusesToOverwrite(t *testing.T) {
	sourceRoot, target := setupSource(t, true)
	init := NewInitializer(filesystem.NewOS(), config.Default().Database)

	_, err := init.Init(sourceRoot, target, false)
	require.NoError(t, err)

	_, err = init.Init(sourceRoot, target, false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDBExists))
}

func TestInitForceOverwrites(t *testing.T) {
	sourceRoot, target := setupSource(t, true)
	init := NewInitializer(filesystem.NewOS(), config.Default().Database)

	dest, err := init.Init(sourceRoot, target, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dest, []byte("modified"), 0644))

	_, err = init.Init(sourceRoot, target, true)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "sqlite-template", string(data))
}

func TestInitWithoutTemplateOrSchema(t *testing.T) {
	sourceRoot, target := setupSource(t, false)
	init := NewInitializer(filesystem.NewOS(), config.Default().Database)

	_, err := init.Init(sourceRoot, target, false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDBInit))
}
