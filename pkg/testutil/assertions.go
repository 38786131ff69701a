package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSymlink asserts that path is a real symlink pointing at target
func AssertSymlink(t *testing.T, path, target string) {
	t.Helper()

	info, err := os.Lstat(path)
	require.NoError(t, err, "expected %s to exist", path)
	require.True(t, info.Mode()&os.ModeSymlink != 0, "expected %s to be a symlink", path)

	actual, err := os.Readlink(path)
	require.NoError(t, err)
	assert.Equal(t, target, actual)
}

// AssertNotSymlink asserts that path exists and is not a symlink
func AssertNotSymlink(t *testing.T, path string) {
	t.Helper()

	info, err := os.Lstat(path)
	require.NoError(t, err, "expected %s to exist", path)
	assert.True(t, info.Mode()&os.ModeSymlink == 0, "expected %s not to be a symlink", path)
}

// AssertFileContent asserts that path holds exactly content
func AssertFileContent(t *testing.T, path, content string) {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err, "expected %s to be readable", path)
	assert.Equal(t, content, string(data))
}

// AssertNotExists asserts that nothing occupies path
func AssertNotExists(t *testing.T, path string) {
	t.Helper()

	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err), "expected %s to be absent", path)
}
