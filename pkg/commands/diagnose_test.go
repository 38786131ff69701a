package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mharbulous/storysync/pkg/errors"
	"github.com/mharbulous/storysync/pkg/testutil"
	"github.com/mharbulous/storysync/pkg/types"
)

func TestDiagnoseHealthyInstall(t *testing.T) {
	forceSymlinkMode(t)
	env := testutil.NewTestEnvironment(t)
	populate(env)
	require.NoError(t, os.Mkdir(filepath.Join(env.Target, ".git"), 0755))

	port := newFakeGitPort()
	_, err := Install(InstallOptions{
		SourceRoot: env.SourceRoot,
		Target:     env.Target,
		GitPort:    port,
	})
	require.NoError(t, err)

	result, err := Diagnose(DiagnoseOptions{
		SourceRoot: env.SourceRoot,
		Target:     env.Target,
		GitPort:    port,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Issues)
	assert.True(t, result.SourceReachable)
	assert.True(t, result.GitChecked)
	require.Len(t, result.GitSettings, 2)
	for _, setting := range result.GitSettings {
		assert.Equal(t, types.SettingOK, setting.Status)
	}

	require.Contains(t, result.Reports, "skills")
	assert.Equal(t, []string{"review"}, result.Reports["skills"].Valid)
}

func TestDiagnoseFindsDegradedItems(t *testing.T) {
	forceSymlinkMode(t)
	env := testutil.NewTestEnvironment(t)
	populate(env)

	port := newFakeGitPort()
	_, err := Install(InstallOptions{
		SourceRoot: env.SourceRoot,
		Target:     env.Target,
		GitPort:    port,
	})
	require.NoError(t, err)

	// Break one link, drop one item, and swap one link for a real file
	require.NoError(t, os.RemoveAll(filepath.Join(env.SourceRoot, "claude", "skills", "review")))
	require.NoError(t, os.Remove(filepath.Join(env.Target, ".claude", "commands", "plan.md")))
	scriptLink := filepath.Join(env.Target, ".claude", "scripts", "run.py")
	require.NoError(t, os.Remove(scriptLink))
	require.NoError(t, os.WriteFile(scriptLink, []byte("print('diverged local copy of run')\n"), 0644))

	result, err := Diagnose(DiagnoseOptions{
		SourceRoot: env.SourceRoot,
		Target:     env.Target,
		GitPort:    port,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"review"}, result.Reports["skills"].Broken)
	assert.Equal(t, []string{"plan.md"}, result.Reports["commands"].Missing)
	assert.Equal(t, []string{"run.py"}, result.Reports["scripts"].Extra)

	// Broken link + missing item + extra file
	assert.Equal(t, 3, result.Issues)
	assert.True(t, result.SourceReachable)
}

func TestDiagnoseReportsPlaceholders(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	populate(env)

	commandsDir := filepath.Join(env.Target, ".claude", "commands")
	require.NoError(t, os.MkdirAll(commandsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(commandsDir, "plan.md"),
		[]byte("../../.StoryTree/claude/commands/plan.md"), 0644))

	result, err := Diagnose(DiagnoseOptions{
		SourceRoot: env.SourceRoot,
		Target:     env.Target,
		GitPort:    newFakeGitPort(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"plan.md"}, result.Reports["commands"].Placeholder)
	assert.NotContains(t, result.Reports["commands"].Extra, "plan.md")
}

func TestDiagnoseMissingTarget(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	populate(env)

	_, err := Diagnose(DiagnoseOptions{
		SourceRoot: env.SourceRoot,
		Target:     filepath.Join(env.Target, "absent"),
		GitPort:    newFakeGitPort(),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTargetNotFound))
}

func TestDiagnoseNonRepoSkipsGit(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	populate(env)

	result, err := Diagnose(DiagnoseOptions{
		SourceRoot: env.SourceRoot,
		Target:     env.Target,
		GitPort:    newFakeGitPort(),
	})
	require.NoError(t, err)
	assert.False(t, result.GitChecked)
	assert.Empty(t, result.GitSettings)
}
