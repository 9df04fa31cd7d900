package testutil

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/realmctl/pkg/base"
	"github.com/arthur-debert/realmctl/pkg/filesystem"
	"github.com/arthur-debert/realmctl/pkg/types"
	"github.com/stretchr/testify/require"
)

// TestBase represents a mock client installation
type TestBase struct {
	FS  types.FS
	Dir string
}

// NewTestBase creates an empty base directory at dir on fsys
func NewTestBase(t *testing.T, fsys types.FS, dir string) *TestBase {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(dir, 0755))
	return &TestBase{FS: fsys, Dir: dir}
}

// SetupTestBase creates an empty base on the real filesystem
func SetupTestBase(t *testing.T) *TestBase {
	t.Helper()
	return NewTestBase(t, filesystem.NewOS(), filepath.Join(t.TempDir(), "base"))
}

// Path returns the absolute path of rel inside the base
func (b *TestBase) Path(rel string) string {
	return filepath.Join(b.Dir, filepath.FromSlash(rel))
}

// AddFile writes a file, creating parent directories
func (b *TestBase) AddFile(t *testing.T, rel, content string) string {
	t.Helper()

	target := b.Path(rel)
	require.NoError(t, b.FS.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, b.FS.WriteFile(target, []byte(content), 0644))
	return target
}

// AddDir creates a directory
func (b *TestBase) AddDir(t *testing.T, rel string) string {
	t.Helper()

	target := b.Path(rel)
	require.NoError(t, b.FS.MkdirAll(target, 0755))
	return target
}

// AddLayout writes every file of layout and creates the listed directories
func (b *TestBase) AddLayout(t *testing.T, layout Layout) *TestBase {
	t.Helper()

	for _, dir := range layout.Dirs {
		b.AddDir(t, dir)
	}

	rels := make([]string, 0, len(layout.Files))
	for rel := range layout.Files {
		rels = append(rels, rel)
	}
	sort.Strings(rels)
	for _, rel := range rels {
		b.AddFile(t, rel, layout.Files[rel])
	}
	return b
}

// Init scans the base with profile and writes its manifest
func (b *TestBase) Init(t *testing.T, profile base.Profile) *base.Manifest {
	t.Helper()

	m, err := base.Scan(context.Background(), b.FS, b.Dir, profile, 2)
	require.NoError(t, err)
	require.NoError(t, base.WriteManifest(b.FS, m, b.Dir))
	return m
}

// Layout is a declarative set of files and directories
type Layout struct {
	Files map[string]string
	Dirs  []string
}

// ChromieLayout is a minimal 3.3.5a client with some user data
func ChromieLayout() Layout {
	return Layout{
		Files: map[string]string{
			"Wow.exe":                                 "mock executable",
			"Data/common.MPQ":                         "mock data file",
			"Data/patch.MPQ":                          "mock patch file",
			"Data/lichking.MPQ":                       "mock expansion data",
			"Screenshots/WoWScrnShot_001.jpg":         "mock screenshot",
			"WTF/Config.wtf":                          "mock config",
			"Interface/AddOns/SomeAddon/SomeAddon.toc": "mock addon",
		},
		Dirs: []string{"Cache"},
	}
}

// VanillaLayout is a minimal 1.12 client with some user data
func VanillaLayout() Layout {
	return Layout{
		Files: map[string]string{
			"WoW.exe":                                 "mock executable",
			"realmlist.wtf":                           "mock realmlist",
			"Data/base.MPQ":                           "mock data file",
			"Data/dbc.MPQ":                            "mock data file",
			"Data/interface.MPQ":                      "mock data file",
			"Data/patch.MPQ":                          "mock patch file",
			"Data/patch-2.MPQ":                        "mock patch file",
			"WTF/Config.wtf":                          "mock config",
			"Interface/AddOns/SomeAddon/SomeAddon.toc": "mock addon",
		},
		Dirs: []string{"Screenshots", "WTF/Account", "Logs", "WDB"},
	}
}
