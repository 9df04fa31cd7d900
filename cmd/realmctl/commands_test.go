package realmctl

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/realmctl/pkg/base"
	"github.com/arthur-debert/realmctl/pkg/errors"
	"github.com/arthur-debert/realmctl/pkg/filesystem"
	"github.com/arthur-debert/realmctl/pkg/launcher"
	"github.com/arthur-debert/realmctl/pkg/testutil"
	"github.com/arthur-debert/realmctl/pkg/workspace"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv points every realmctl directory into a temp dir and returns the
// config.toml path
func setupEnv(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()

	t.Setenv("REALMCTL_CONFIG_DIR", filepath.Join(tmp, "config"))
	t.Setenv("REALMCTL_DATA_DIR", filepath.Join(tmp, "data"))
	t.Setenv("REALMCTL_STATE_DIR", filepath.Join(tmp, "state"))
	t.Setenv("REALMCTL_CONFIG", "")
	t.Setenv("REALMCTL_CLIPBOARD", "false")
	t.Setenv("NO_COLOR", "1")

	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "config"), 0755))
	return filepath.Join(tmp, "config", "config.toml")
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	if args == nil {
		// nil makes cobra fall back to os.Args
		args = []string{}
	}
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// gameDir creates a minimal client directory with an executable
func gameDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "wow")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Data", "enUS"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Wow.exe"), []byte("exe"), 0755))
	return dir
}

func launchConfig(dir string, extra string) string {
	return fmt.Sprintf(`
[wotlk]
directory = '%s'
realmlist_rel_path = "Data/enUS/realmlist.wtf"
realmlist = "logon.example.org"
launch_cmd = "echo start"
username = "player"
password = "secret"
%s
`, dir, extra)
}

func TestLaunch_DryRun(t *testing.T) {
	cfgPath := setupEnv(t)
	dir := gameDir(t)
	writeConfig(t, cfgPath, launchConfig(dir, "clear_cache = true"))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Cache"), 0755))

	out, err := run(t, "launch", "wotlk", "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, "Loading configuration for:\n\twotlk\n")
	assert.Contains(t, out, "Would set realmlist to:\n\tset realmlist to logon.example.org\n")
	assert.Contains(t, out, "Would clear cache in:")
	assert.Contains(t, out, "Account Name:\n\tplayer\n")
	assert.Contains(t, out, "Password:\n\tsecret\n")
	assert.Contains(t, out, "Would launch with command:\n\techo start\n")

	testutil.AssertNotExists(t, filepath.Join(dir, "Data", "enUS", "realmlist.wtf"))
	testutil.AssertRealDir(t, filepath.Join(dir, "Cache"))
}

func TestLaunch_Starts(t *testing.T) {
	cfgPath := setupEnv(t)
	dir := gameDir(t)
	writeConfig(t, cfgPath, launchConfig(dir, "clear_cache = true"))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Cache", "WDB"), 0755))

	var started []launcher.Command
	startProcess = func(c launcher.Command) (int, error) {
		started = append(started, c)
		return 4242, nil
	}
	t.Cleanup(func() { startProcess = nil })

	out, err := run(t, "--config", cfgPath, "launch", "WOTLK")
	require.NoError(t, err)

	require.Len(t, started, 1)
	assert.Equal(t, "echo start", started[0].String())
	assert.Equal(t, dir, started[0].Dir)

	testutil.AssertFileContent(t, filepath.Join(dir, "Data", "enUS", "realmlist.wtf"), "set realmlist to logon.example.org")
	testutil.AssertNotExists(t, filepath.Join(dir, "Cache"))
	assert.Contains(t, out, "Realmlist set to:\n\tset realmlist to logon.example.org\n")
	assert.Contains(t, out, "Launching with command:\n\techo start\n")
	assert.Contains(t, out, "Cache cleared in:")
}

func TestLaunch_Errors(t *testing.T) {
	tests := []struct {
		name   string
		config func(dir string) string
		game   string
		code   errors.ErrorCode
	}{
		{
			name:   "unknown game",
			config: func(dir string) string { return launchConfig(dir, "") },
			game:   "classic",
			code:   errors.ErrProfileNotFound,
		},
		{
			name: "realmlist without path",
			config: func(dir string) string {
				return fmt.Sprintf("[wotlk]\ndirectory = '%s'\nrealmlist = \"logon.example.org\"\n", dir)
			},
			game: "wotlk",
			code: errors.ErrConfigValid,
		},
		{
			name: "missing executable",
			config: func(dir string) string {
				return launchConfig(dir, `executable = "Missing.exe"`)
			},
			game: "wotlk",
			code: errors.ErrExecutableNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath := setupEnv(t)
			writeConfig(t, cfgPath, tt.config(gameDir(t)))

			_, err := run(t, "launch", tt.game, "--dry-run")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestLaunch_MissingConfig(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "launch", "wotlk")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestList(t *testing.T) {
	cfgPath := setupEnv(t)
	writeConfig(t, cfgPath, `
[vanilla]
directory = "/games/vanilla"

["3.3.5a"]
directory = "/games/wotlk"
realmlist = "logon.example.org"
realmlist_rel_path = "realmlist.wtf"
`)

	out, err := run(t, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "/games/vanilla")
	assert.Contains(t, out, "logon.example.org")
	assert.Less(t, strings.Index(out, "3.3.5a"), strings.Index(out, "vanilla"), "games are sorted")
}

func TestList_Empty(t *testing.T) {
	cfgPath := setupEnv(t)
	writeConfig(t, cfgPath, "")

	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, MsgNoGames)
}

func TestProfiles(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "profiles")
	require.NoError(t, err)
	assert.Contains(t, out, base.ProfileChromie)
	assert.Contains(t, out, base.ProfileVanilla)
	assert.Contains(t, out, "335a")
}

func TestInitBaseAndVerify(t *testing.T) {
	setupEnv(t)
	b := testutil.SetupTestBase(t).AddLayout(t, testutil.ChromieLayout())

	out, err := run(t, "init-base", b.Dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Using profile: "+base.ProfileChromie)
	assert.Contains(t, out, MsgRequirementsOK)
	assert.Contains(t, out, "Computed 2 checksums")
	assert.Contains(t, out, base.ManifestPath(b.Dir))

	_, err = os.Stat(base.ManifestPath(b.Dir))
	require.NoError(t, err)

	out, err = run(t, "verify", b.Dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 files verified")

	b.AddFile(t, "Data/common.MPQ", "tampered")
	require.NoError(t, os.Remove(b.Path("Data/lichking.MPQ")))

	out, err = run(t, "verify", b.Dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrChecksumMismatch))
	assert.Contains(t, out, "Data/lichking.MPQ: missing")
	assert.Contains(t, out, "Data/common.MPQ: expected")
}

func TestInitBase_Errors(t *testing.T) {
	setupEnv(t)
	b := testutil.SetupTestBase(t).AddLayout(t, testutil.ChromieLayout())

	_, err := run(t, "init-base", b.Dir, "--profile", "tbc")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownProfile))

	_, err = run(t, "init-base", b.Dir, "--profile", "1.12")
	assert.True(t, errors.IsErrorCode(err, errors.ErrRequirementMissing))

	_, err = run(t, "init-base", filepath.Join(b.Dir, "missing"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestWorkspaceLifecycle(t *testing.T) {
	cfgPath := setupEnv(t)
	b := testutil.SetupTestBase(t).AddLayout(t, testutil.ChromieLayout())
	b.Init(t, base.Chromie())
	root := filepath.Join(t.TempDir(), "workspaces")

	// create
	out, err := run(t, "create", "alt", "--base", b.Dir, "--workspace-root", root, "--share", "wtf=base")
	require.NoError(t, err)

	ws := filepath.Join(root, "alt")
	assert.Contains(t, out, "Creating workspace: alt")
	assert.Contains(t, out, "wtf = base")
	assert.Contains(t, out, "screenshots = global")
	assert.Contains(t, out, "[alt]")
	assert.Contains(t, out, ws)
	testutil.AssertSameFile(t, b.Path("Data/common.MPQ"), filepath.Join(ws, "Data", "common.MPQ"))
	testutil.AssertSymlink(t, filepath.Join(ws, "Screenshots"))

	writeConfig(t, cfgPath, fmt.Sprintf("[alt]\ndirectory = '%s'\n", ws))

	// status
	out, err = run(t, "status", "alt")
	require.NoError(t, err)
	assert.Contains(t, out, "Workspace")
	assert.Contains(t, out, base.ProfileChromie)
	assert.Contains(t, out, "wtf = base")
	assert.Contains(t, out, "Apparent size")
	assert.Contains(t, out, "Hard linked")

	// fix
	require.NoError(t, os.Remove(filepath.Join(ws, "Screenshots")))
	out, err = run(t, "fix", "alt")
	require.NoError(t, err)
	assert.Contains(t, out, "Created shared link")
	testutil.AssertSymlink(t, filepath.Join(ws, "Screenshots"))

	out, err = run(t, "fix", "alt")
	require.NoError(t, err)
	assert.Contains(t, out, MsgFixNothing)

	// clean
	require.NoError(t, os.MkdirAll(filepath.Join(ws, "Cache", "WDB"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(ws, "Logs"), 0755))
	out, err = run(t, "clean", "alt")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed Cache")
	assert.Contains(t, out, "Removed Logs")
	testutil.AssertNotExists(t, filepath.Join(ws, "Cache"))

	out, err = run(t, "clean", "alt")
	require.NoError(t, err)
	assert.Contains(t, out, MsgAlreadyClean)

	// a second create with the same name fails
	_, err = run(t, "create", "alt", "--base", b.Dir, "--workspace-root", root)
	assert.True(t, errors.IsErrorCode(err, errors.ErrWorkspaceExists))
}

func TestCreate_DefaultRootFromSettings(t *testing.T) {
	setupEnv(t)
	b := testutil.SetupTestBase(t).AddLayout(t, testutil.ChromieLayout())
	b.Init(t, base.Chromie())
	root := filepath.Join(t.TempDir(), "from-env")
	t.Setenv("REALMCTL_WORKSPACE_ROOT", root)

	_, err := run(t, "create", "main", "--base", b.Dir)
	require.NoError(t, err)

	_, err = workspace.LoadConfig(filesystem.NewOS(), filepath.Join(root, "main"))
	require.NoError(t, err)
}

func TestCreate_InvalidShare(t *testing.T) {
	setupEnv(t)
	b := testutil.SetupTestBase(t).AddLayout(t, testutil.ChromieLayout())
	b.Init(t, base.Chromie())

	_, err := run(t, "create", "alt", "--base", b.Dir, "--share", "wtf")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = run(t, "create", "alt", "--base", b.Dir, "--share", "wtf=everywhere")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidStrategy))

	_, err = run(t, "create", "alt")
	assert.Error(t, err, "--base is required")
}

func TestStatus_NotAWorkspace(t *testing.T) {
	cfgPath := setupEnv(t)
	dir := gameDir(t)
	writeConfig(t, cfgPath, fmt.Sprintf("[plain]\ndirectory = '%s'\n", dir))

	out, err := run(t, "status", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "is not a realmctl workspace")
	assert.Contains(t, out, "Files")
}

func TestClean_WDB(t *testing.T) {
	cfgPath := setupEnv(t)
	dir := gameDir(t)
	writeConfig(t, cfgPath, fmt.Sprintf("[wotlk]\ndirectory = '%s'\n", dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Data", "enUS", "creaturecache.wdb"), nil, 0644))

	out, err := run(t, "clean", "wotlk", "--wdb")
	require.NoError(t, err)
	assert.Contains(t, out, "creaturecache.wdb")
	testutil.AssertNotExists(t, filepath.Join(dir, "Data", "enUS", "creaturecache.wdb"))
}

func TestDryRun(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		cfgPath := setupEnv(t)
		dir := gameDir(t)
		writeConfig(t, cfgPath, fmt.Sprintf("[wotlk]\ndirectory = '%s'\n", dir))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "Cache", "WDB"), 0755))
		wdb := filepath.Join(dir, "Data", "enUS", "creaturecache.wdb")
		require.NoError(t, os.WriteFile(wdb, nil, 0644))

		out, err := run(t, "clean", "wotlk", "--wdb", "--dry-run")
		require.NoError(t, err)
		assert.Contains(t, out, MsgDryRunBanner)
		assert.Contains(t, out, "Would remove Cache")
		assert.Contains(t, out, "Would remove Data/enUS/creaturecache.wdb")
		assert.NotContains(t, out, "Removed")
		testutil.AssertRealDir(t, filepath.Join(dir, "Cache"))
		_, err = os.Stat(wdb)
		assert.NoError(t, err)
	})

	t.Run("init-base", func(t *testing.T) {
		setupEnv(t)
		b := testutil.SetupTestBase(t).AddLayout(t, testutil.ChromieLayout())

		out, err := run(t, "init-base", b.Dir, "--dry-run")
		require.NoError(t, err)
		assert.Contains(t, out, "Computed 2 checksums")
		assert.Contains(t, out, "Would write manifest to")
		testutil.AssertNotExists(t, base.ManifestPath(b.Dir))
	})

	t.Run("create and fix", func(t *testing.T) {
		cfgPath := setupEnv(t)
		b := testutil.SetupTestBase(t).AddLayout(t, testutil.ChromieLayout())
		b.Init(t, base.Chromie())
		root := filepath.Join(t.TempDir(), "workspaces")

		out, err := run(t, "create", "alt", "--base", b.Dir, "--workspace-root", root, "--dry-run")
		require.NoError(t, err)
		assert.Contains(t, out, "Would create workspace at: "+filepath.Join(root, "alt"))
		testutil.AssertNotExists(t, root)

		_, err = run(t, "create", "alt", "--base", b.Dir, "--workspace-root", root)
		require.NoError(t, err)
		ws := filepath.Join(root, "alt")
		writeConfig(t, cfgPath, fmt.Sprintf("[alt]\ndirectory = '%s'\n", ws))
		require.NoError(t, os.Remove(filepath.Join(ws, "Screenshots")))

		out, err = run(t, "fix", "alt", "--dry-run")
		require.NoError(t, err)
		assert.Contains(t, out, "[dry run] Created shared link")
		assert.NotContains(t, out, MsgFixDone)
		testutil.AssertNotExists(t, filepath.Join(ws, "Screenshots"))
	})
}

func TestStyledLinesAreNotPadded(t *testing.T) {
	cfgPath := setupEnv(t)
	dir := gameDir(t)
	writeConfig(t, cfgPath, fmt.Sprintf("[wotlk]\ndirectory = '%s'\n", dir))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Cache"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Logs"), 0755))

	out, err := run(t, "clean", "wotlk")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Removed Cache\n✓ Removed Logs\n")
	assert.NotRegexp(t, `(?m)^ +✓`, out)
}

func TestGameNamesCompletion(t *testing.T) {
	cfgPath := setupEnv(t)
	writeConfig(t, cfgPath, "[b]\ndirectory = \"/b\"\n[a]\ndirectory = \"/a\"\n")

	complete := gameNamesCompletion(&app{configFile: cfgPath})

	names, directive := complete(&cobra.Command{}, nil, "")
	assert.Equal(t, []string{"a", "b"}, names)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	names, _ = complete(&cobra.Command{}, []string{"a"}, "")
	assert.Empty(t, names)
}

func TestHelpTopics(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "Available help topics:")
	assert.Contains(t, out, "workspaces")
	assert.Contains(t, out, "--dry-run")

	out, err = run(t, "help", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "realmlist_rel_path")
}

func TestVersionAndCompletion(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "realmctl version")

	out, err = run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "realmctl")

	_, err = run(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestRoot_NoCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t)
	assert.Error(t, err)
	assert.Contains(t, out, "COMMANDS:")
	assert.Contains(t, out, "BASES AND WORKSPACES:")
}
