package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSymlink checks that path is a symlink and returns its target
func AssertSymlink(t *testing.T, path string, msgAndArgs ...interface{}) string {
	t.Helper()

	info, err := os.Lstat(path)
	require.NoError(t, err, msgAndArgs...)
	require.True(t, info.Mode()&os.ModeSymlink != 0, msgAndArgs...)

	target, err := os.Readlink(path)
	require.NoError(t, err, msgAndArgs...)
	return target
}

// AssertRealDir checks that path is a directory and not a symlink
func AssertRealDir(t *testing.T, path string, msgAndArgs ...interface{}) {
	t.Helper()

	info, err := os.Lstat(path)
	require.NoError(t, err, msgAndArgs...)
	assert.True(t, info.IsDir(), msgAndArgs...)
	assert.Zero(t, info.Mode()&os.ModeSymlink, msgAndArgs...)
}

// AssertSameFile checks that a and b are the same inode
func AssertSameFile(t *testing.T, a, b string, msgAndArgs ...interface{}) {
	t.Helper()

	ia, err := os.Stat(a)
	require.NoError(t, err)
	ib, err := os.Stat(b)
	require.NoError(t, err)
	assert.True(t, os.SameFile(ia, ib), msgAndArgs...)
}

// AssertFileContent checks the content of a file
func AssertFileContent(t *testing.T, path, expected string, msgAndArgs ...interface{}) {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err, msgAndArgs...)
	assert.Equal(t, expected, string(data), msgAndArgs...)
}

// AssertNotExists checks that nothing, not even a dangling link, is at path
func AssertNotExists(t *testing.T, path string, msgAndArgs ...interface{}) {
	t.Helper()

	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err), msgAndArgs...)
}
