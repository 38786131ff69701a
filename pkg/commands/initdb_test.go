package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mharbulous/storysync/pkg/errors"
	"github.com/mharbulous/storysync/pkg/testutil"
)

func addDBTemplate(t *testing.T, env *testutil.TestEnvironment) string {
	t.Helper()
	template := filepath.Join(env.SourceRoot, "templates", "story-tree.db.empty")
	require.NoError(t, os.MkdirAll(filepath.Dir(template), 0755))
	require.NoError(t, os.WriteFile(template, []byte("empty-db"), 0644))
	return template
}

func TestInitDBFromTemplate(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	addDBTemplate(t, env)

	dest, err := InitDB(InitDBOptions{SourceRoot: env.SourceRoot, Target: env.Target})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(env.Target, ".claude", "data", "story-tree.db"), dest)
	testutil.AssertFileContent(t, dest, "empty-db")
}

func TestInitDBRefusesOverwrite(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	addDBTemplate(t, env)

	opts := InitDBOptions{SourceRoot: env.SourceRoot, Target: env.Target}
	dest, err := InitDB(opts)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dest, []byte("real data"), 0644))

	_, err = InitDB(opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDBExists))
	testutil.AssertFileContent(t, dest, "real data")

	opts.Force = true
	_, err = InitDB(opts)
	require.NoError(t, err)
	testutil.AssertFileContent(t, dest, "empty-db")
}

func TestInitDBMissingTarget(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	addDBTemplate(t, env)

	_, err := InitDB(InitDBOptions{
		SourceRoot: env.SourceRoot,
		Target:     filepath.Join(env.Target, "absent"),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTargetNotFound))
}
