package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mharbulous/storysync/pkg/testutil"
)

func TestSyncWorkflowsCopiesOnlyGithubCategories(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.AddSkill("review")
	env.AddWorkflow("ci.yml", "name: ci\non: push\n")
	env.AddAction("setup")

	result, err := SyncWorkflows(SyncWorkflowsOptions{
		SourceRoot: env.SourceRoot,
		Target:     env.Target,
	})
	require.NoError(t, err)

	require.Len(t, result.Categories, 2)
	assert.Empty(t, result.Warnings)

	testutil.AssertFileContent(t, filepath.Join(env.Target, ".github", "workflows", "ci.yml"), "name: ci\non: push\n")
	testutil.AssertNotSymlink(t, filepath.Join(env.Target, ".github", "actions", "setup"))

	// Claude-side categories are untouched by a workflow sync
	testutil.AssertNotExists(t, filepath.Join(env.Target, ".claude"))
}

func TestSyncWorkflowsRefreshesStaleCopy(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.AddWorkflow("ci.yml", "name: ci\non: push\n")
	env.AddAction("setup")

	opts := SyncWorkflowsOptions{SourceRoot: env.SourceRoot, Target: env.Target}
	_, err := SyncWorkflows(opts)
	require.NoError(t, err)

	env.AddWorkflow("ci.yml", "name: ci\non: pull_request\n")
	_, err = SyncWorkflows(opts)
	require.NoError(t, err)

	testutil.AssertFileContent(t, filepath.Join(env.Target, ".github", "workflows", "ci.yml"), "name: ci\non: pull_request\n")
}

func TestSyncWorkflowsReportsLintWarnings(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.AddWorkflow("bad.yml", "jobs: [broken\n")
	env.AddAction("setup")

	result, err := SyncWorkflows(SyncWorkflowsOptions{
		SourceRoot: env.SourceRoot,
		Target:     env.Target,
	})
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "bad.yml", result.Warnings[0].File)
}
