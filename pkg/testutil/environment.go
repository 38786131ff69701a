// Package testutil builds throwaway bundle source and target trees for
// tests. Everything lives under t.TempDir() so symlink behavior is real.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mharbulous/storysync/pkg/filesystem"
	"github.com/mharbulous/storysync/pkg/types"
)

// TestEnvironment holds a populated bundle source tree and an empty target
type TestEnvironment struct {
	SourceRoot string
	Target     string
	FS         types.FS

	t *testing.T
}

// NewTestEnvironment creates the standard bundle source layout and an
// empty target directory under t.TempDir()
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	tmpDir := t.TempDir()
	env := &TestEnvironment{
		SourceRoot: filepath.Join(tmpDir, "source"),
		Target:     filepath.Join(tmpDir, "target"),
		FS:         filesystem.NewOS(),
		t:          t,
	}

	for _, dir := range []string{
		filepath.Join("claude", "skills"),
		filepath.Join("claude", "commands"),
		filepath.Join("claude", "scripts"),
		filepath.Join("claude", "data"),
		filepath.Join("github", "workflows"),
		filepath.Join("github", "actions"),
	} {
		require.NoError(t, os.MkdirAll(filepath.Join(env.SourceRoot, dir), 0755))
	}
	require.NoError(t, os.MkdirAll(env.Target, 0755))

	return env
}

// AddSkill creates a skill directory with a SKILL.md inside
func (e *TestEnvironment) AddSkill(name string) string {
	e.t.Helper()
	dir := filepath.Join(e.SourceRoot, "claude", "skills", name)
	require.NoError(e.t, os.MkdirAll(dir, 0755))
	e.writeFile(filepath.Join(dir, "SKILL.md"), "# "+name+"\n")
	return dir
}

// AddCommand creates a command markdown file
func (e *TestEnvironment) AddCommand(name string) string {
	e.t.Helper()
	path := filepath.Join(e.SourceRoot, "claude", "commands", name)
	e.writeFile(path, "command "+name+"\n")
	return path
}

// AddScript creates a script file
func (e *TestEnvironment) AddScript(name string) string {
	e.t.Helper()
	path := filepath.Join(e.SourceRoot, "claude", "scripts", name)
	e.writeFile(path, "print('"+name+"')\n")
	return path
}

// AddDataScript creates a data script file
func (e *TestEnvironment) AddDataScript(name string) string {
	e.t.Helper()
	path := filepath.Join(e.SourceRoot, "claude", "data", name)
	e.writeFile(path, "print('"+name+"')\n")
	return path
}

// AddWorkflow creates a workflow file with the given content
func (e *TestEnvironment) AddWorkflow(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.SourceRoot, "github", "workflows", name)
	e.writeFile(path, content)
	return path
}

// AddAction creates an action directory with an action.yml inside
func (e *TestEnvironment) AddAction(name string) string {
	e.t.Helper()
	dir := filepath.Join(e.SourceRoot, "github", "actions", name)
	require.NoError(e.t, os.MkdirAll(dir, 0755))
	e.writeFile(filepath.Join(dir, "action.yml"), "name: "+name+"\nruns:\n  using: composite\n")
	return dir
}

// NewTargetDir creates another empty target directory (for dependents)
func (e *TestEnvironment) NewTargetDir(name string) string {
	e.t.Helper()
	dir := filepath.Join(filepath.Dir(e.Target), name)
	require.NoError(e.t, os.MkdirAll(dir, 0755))
	return dir
}

func (e *TestEnvironment) writeFile(path, content string) {
	e.t.Helper()
	require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0644))
}
