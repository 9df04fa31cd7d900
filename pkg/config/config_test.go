// TEST TYPE: Unit Tests
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test games config loading, defaults, lookup and validation

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/realmctl/pkg/config"
	"github.com/arthur-debert/realmctl/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
[wotlk]
directory = "~/Games/wotlk"
realmlist_rel_path = "Data/enUS/realmlist.wtf"
realmlist = "logon.chromiecraft.com"
username = "arthas"
password = "frostmourne"
clear_cache = true

["3.3.5a"]
directory = "/opt/wow"
executable = "WoW.exe"
launch_cmd = "lutris lutris:rungameid/3"
`)

	games, err := config.Load(path)
	require.NoError(t, err)
	require.Len(t, games, 2)

	wotlk := games["wotlk"]
	assert.Equal(t, filepath.Join(home, "Games/wotlk"), wotlk.Directory)
	assert.Equal(t, "Wow.exe", wotlk.Executable, "executable should default")
	assert.Equal(t, "Data/enUS/realmlist.wtf", wotlk.RealmlistRelPath)
	assert.Equal(t, "logon.chromiecraft.com", wotlk.Realmlist)
	assert.Equal(t, "arthas", wotlk.Username)
	assert.Equal(t, "frostmourne", wotlk.Password)
	assert.True(t, wotlk.ClearCache)
	assert.True(t, wotlk.HasRealmlist())

	dotted, ok := games["3.3.5a"]
	require.True(t, ok, "dotted game names must stay a single key")
	assert.Equal(t, "/opt/wow", dotted.Directory)
	assert.Equal(t, "WoW.exe", dotted.Executable)
	assert.Equal(t, "lutris lutris:rungameid/3", dotted.LaunchCmd)
	assert.False(t, dotted.ClearCache)
	assert.False(t, dotted.HasRealmlist())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) string
		wantCode errors.ErrorCode
	}{
		{
			name: "missing file",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.toml")
			},
			wantCode: errors.ErrConfigLoad,
		},
		{
			name: "invalid toml",
			setup: func(t *testing.T) string {
				return writeConfig(t, "[wotlk\ndirectory = ")
			},
			wantCode: errors.ErrConfigParse,
		},
		{
			name: "wrong field type",
			setup: func(t *testing.T) string {
				return writeConfig(t, "[wotlk]\ndirectory = [1, 2]\n")
			},
			wantCode: errors.ErrConfigParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(tt.setup(t))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestLoad_MissingFileNamesPath(t *testing.T) {
	_, err := config.Load("/does/not/exist.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/does/not/exist.toml")
}

func TestLoad_CleansDirectory(t *testing.T) {
	path := writeConfig(t, "[wotlk]\ndirectory = \"/opt/games//wotlk/\"\n")

	games, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/games/wotlk", games["wotlk"].Directory)
}

func TestLoad_WeakTyping(t *testing.T) {
	path := writeConfig(t, "[wotlk]\ndirectory = \"/opt/wow\"\nclear_cache = \"true\"\n")

	games, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, games["wotlk"].ClearCache)
}

func TestLookup(t *testing.T) {
	games := config.File{
		"WotLK":   {Directory: "/a"},
		"wotlk":   {Directory: "/b"},
		"Vanilla": {Directory: "/c"},
	}

	tests := []struct {
		name    string
		key     string
		wantDir string
	}{
		{"exact match wins", "wotlk", "/b"},
		{"exact match wins upper", "WotLK", "/a"},
		{"case-insensitive picks sorted first", "WOTLK", "/a"},
		{"case-insensitive single", "vanilla", "/c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game, err := games.Lookup(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDir, game.Directory)
		})
	}

	_, err := games.Lookup("tbc")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileNotFound))
	assert.Contains(t, err.Error(), "case-insensitive")
}

func TestNames(t *testing.T) {
	games := config.File{"b": {}, "a": {}, "C": {}}
	assert.Equal(t, []string{"C", "a", "b"}, games.Names())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		game    config.Game
		wantErr bool
	}{
		{"minimal", config.Game{Directory: "/opt/wow"}, false},
		{"no directory", config.Game{}, true},
		{"realmlist without path", config.Game{Directory: "/d", Realmlist: "x"}, true},
		{"path without realmlist", config.Game{Directory: "/d", RealmlistRelPath: "realmlist.wtf"}, true},
		{"realmlist pair", config.Game{Directory: "/d", Realmlist: "x", RealmlistRelPath: "realmlist.wtf"}, false},
		{"quoted launch cmd", config.Game{Directory: "/d", LaunchCmd: `wine "/opt/my wow/Wow.exe"`}, false},
		{"unterminated quote", config.Game{Directory: "/d", LaunchCmd: `wine "/opt/wow`}, true},
		{"blank launch cmd", config.Game{Directory: "/d", LaunchCmd: "   "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.game.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
				return
			}
			assert.NoError(t, err)
		})
	}
}
