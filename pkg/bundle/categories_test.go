package bundle

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

func TestCategoriesOrderAndEligibility(t *testing.T) {
	cats := Categories(config.Default())

	var names []string
	for _, cat := range cats {
		names = append(names, cat.Name)
	}
	assert.Equal(t, []string{"skills", "commands", "scripts", "data", "workflows", "actions"}, names)

	for _, cat := range cats {
		switch cat.Name {
		case "workflows", "actions":
			assert.False(t, cat.SymlinkEligible, "%s must always be copied", cat.Name)
		default:
			assert.True(t, cat.SymlinkEligible, "%s should be symlink-eligible", cat.Name)
		}
	}
}

func TestCategoryPredicates(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "subdir"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "doc.md"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "run.py"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "flow.yml"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "flow.yaml"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0644))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	byName := make(map[string]os.DirEntry)
	for _, entry := range entries {
		byName[entry.Name()] = entry
	}

	cats := Categories(config.Default())
	byCat := make(map[string]func(os.DirEntry) bool)
	for _, cat := range cats {
		byCat[cat.Name] = cat.Match
	}

	assert.True(t, byCat["skills"](byName["subdir"]))
	assert.False(t, byCat["skills"](byName["doc.md"]))

	assert.True(t, byCat["commands"](byName["doc.md"]))
	assert.False(t, byCat["commands"](byName["run.py"]))
	assert.False(t, byCat["commands"](byName["subdir"]))

	assert.True(t, byCat["scripts"](byName["run.py"]))
	assert.False(t, byCat["scripts"](byName["notes.txt"]))

	assert.True(t, byCat["data"](byName["run.py"]))

	assert.True(t, byCat["workflows"](byName["flow.yml"]))
	assert.True(t, byCat["workflows"](byName["flow.yaml"]))
	assert.False(t, byCat["workflows"](byName["notes.txt"]))

	assert.True(t, byCat["actions"](byName["subdir"]))
	assert.False(t, byCat["actions"](byName["flow.yml"]))
}

func TestAlwaysCopy(t *testing.T) {
	cats := AlwaysCopy(Categories(config.Default()))

	var names []string
	for _, cat := range cats {
		names = append(names, cat.Name)
	}
	assert.Equal(t, []string{"workflows", "actions"}, names)
}

func TestSymlinkEligible(t *testing.T) {
	cats := SymlinkEligible(Categories(config.Default()))

	var names []string
	for _, cat := range cats {
		names = append(names, cat.Name)
	}
	assert.Equal(t, []string{"skills", "commands", "scripts", "data"}, names)
}

func TestCheckSourceDirs(t *testing.T) {
	fsys := filesystem.NewOS()
	cats := Categories(config.Default())

	t.Run("all present", func(t *testing.T) {
		root := t.TempDir()
		for _, cat := range cats {
			require.NoError(t, os.MkdirAll(filepath.Join(root, cat.SourceDir), 0755))
		}
		assert.NoError(t, CheckSourceDirs(fsys, root, cats))
	})

	t.Run("missing directories", func(t *testing.T) {
		root := t.TempDir()
		err := CheckSourceDirs(fsys, root, cats)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSourceMissing))
	})
}

func TestResolveSourceRoot(t *testing.T) {
	t.Run("explicit", func(t *testing.T) {
		dir := t.TempDir()
		root, err := ResolveSourceRoot(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, root)
	})

	t.Run("environment", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvSourceRoot, dir)
		root, err := ResolveSourceRoot("")
		require.NoError(t, err)
		assert.Equal(t, dir, root)
	})
}
