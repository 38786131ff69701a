package filesystem

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAferoFSReadWrite(t *testing.T) {
	fsys := NewAferoFS(afero.NewMemMapFs())

	require.NoError(t, fsys.MkdirAll("/src/claude/commands", 0755))
	require.NoError(t, fsys.WriteFile("/src/claude/commands/plan.md", []byte("plan"), 0644))

	data, err := fsys.ReadFile("/src/claude/commands/plan.md")
	require.NoError(t, err)
	assert.Equal(t, "plan", string(data))

	entries, err := fsys.ReadDir("/src/claude/commands")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "plan.md", entries[0].Name())
	assert.False(t, entries[0].IsDir())
}

func TestAferoFSReadFileRejectsDirectory(t *testing.T) {
	fsys := NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fsys.MkdirAll("/src/claude/skills", 0755))

	_, err := fsys.ReadFile("/src/claude/skills")
	require.Error(t, err)
}

func TestAferoFSSymlinkSimulation(t *testing.T) {
	fsys := NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fsys.MkdirAll("/target/.claude/commands", 0755))

	// The memory FS stores the link target as file content with the
	// symlink mode bit
	require.NoError(t, fsys.Symlink("/src/claude/commands/plan.md", "/target/.claude/commands/plan.md"))

	target, err := fsys.Readlink("/target/.claude/commands/plan.md")
	require.NoError(t, err)
	assert.Equal(t, "/src/claude/commands/plan.md", target)
}

func TestAferoFSRemove(t *testing.T) {
	fsys := NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fsys.MkdirAll("/target/.claude/scripts", 0755))
	require.NoError(t, fsys.WriteFile("/target/.claude/scripts/run.py", []byte("pass"), 0644))

	require.NoError(t, fsys.Remove("/target/.claude/scripts/run.py"))
	_, err := fsys.Stat("/target/.claude/scripts/run.py")
	require.Error(t, err)

	require.NoError(t, fsys.RemoveAll("/target/.claude"))
	_, err = fsys.Stat("/target/.claude/scripts")
	require.Error(t, err)
}
