// TEST TYPE: Unit Tests
// DEPENDENCIES: In-memory filesystem
// PURPOSE: Test removal of ephemeral game output

package workspace_test

import (
	"testing"

	"github.com/arthur-debert/realmctl/pkg/errors"
	"github.com/arthur-debert/realmctl/pkg/filesystem"
	"github.com/arthur-debert/realmctl/pkg/testutil"
	"github.com/arthur-debert/realmctl/pkg/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dirtyGame(t *testing.T) *testutil.TestBase {
	t.Helper()
	g := testutil.NewTestBase(t, filesystem.NewMemory(), "/games/wotlk")
	g.AddFile(t, "Cache/WDB/enUS/creaturecache.wdb", "x")
	g.AddFile(t, "Logs/Sound.log", "x")
	g.AddDir(t, "Errors")
	g.AddFile(t, "Data/common.MPQ", "data")
	g.AddFile(t, "Data/itemcache.wdb", "x")
	g.AddFile(t, "Data/enUS/questcache.wdb", "x")
	g.AddFile(t, "Data/enUS/realmlist.wtf", "x")
	g.AddFile(t, "Data/Interface/stale.wdb", "x")
	return g
}

func TestClean(t *testing.T) {
	tests := []struct {
		name        string
		opts        workspace.CleanOptions
		wantRemoved []string
		wantKept    []string
	}{
		{
			name:        "ephemeral dirs only",
			wantRemoved: []string{"Cache", "Logs", "Errors"},
			wantKept:    []string{"Data/itemcache.wdb", "Data/enUS/questcache.wdb", "Data/common.MPQ"},
		},
		{
			name: "with wdb",
			opts: workspace.CleanOptions{WDB: true},
			wantRemoved: []string{
				"Cache", "Logs", "Errors",
				"Data/itemcache.wdb", "Data/enUS/questcache.wdb",
			},
			// Interface is not a four letter locale name
			wantKept: []string{"Data/common.MPQ", "Data/enUS/realmlist.wtf", "Data/Interface/stale.wdb"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := dirtyGame(t)

			report, err := workspace.Clean(g.FS, g.Dir, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRemoved, report.Removed)
			assert.Empty(t, report.Failures)

			for _, rel := range tt.wantRemoved {
				_, err := g.FS.Stat(g.Path(rel))
				assert.Error(t, err, "%s should be gone", rel)
			}
			for _, rel := range tt.wantKept {
				_, err := g.FS.Stat(g.Path(rel))
				assert.NoError(t, err, "%s should be kept", rel)
			}
		})
	}
}

func TestClean_DryRun(t *testing.T) {
	g := dirtyGame(t)

	report, err := workspace.Clean(g.FS, g.Dir, workspace.CleanOptions{WDB: true, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Cache", "Logs", "Errors",
		"Data/itemcache.wdb", "Data/enUS/questcache.wdb",
	}, report.Removed)

	for _, rel := range report.Removed {
		_, err := g.FS.Stat(g.Path(rel))
		assert.NoError(t, err, "%s should still exist", rel)
	}
}

func TestClean_AlreadyClean(t *testing.T) {
	g := testutil.NewTestBase(t, filesystem.NewMemory(), "/games/clean")

	report, err := workspace.Clean(g.FS, g.Dir, workspace.CleanOptions{WDB: true})
	require.NoError(t, err)
	assert.True(t, report.Empty())
}

func TestClean_MissingDir(t *testing.T) {
	_, err := workspace.Clean(filesystem.NewMemory(), "/nope", workspace.CleanOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
