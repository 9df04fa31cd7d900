package realmctl

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Launch and manage World of Warcraft clients and workspaces"
	MsgLaunchShort     = "Launch a configured game"
	MsgInitBaseShort   = "Initialize a client installation as a base"
	MsgVerifyShort     = "Verify the game data checksums of a base"
	MsgCreateShort     = "Create a workspace from a base"
	MsgFixShort        = "Repair the shared links and directories of a workspace"
	MsgCleanShort      = "Remove cache and log directories from a game"
	MsgStatusShort     = "Show a workspace's configuration and disk usage"
	MsgListShort       = "List the games defined in config.toml"
	MsgProfilesShort   = "List the base profiles"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Launch
	MsgLoadingConfig    = "Loading configuration for:\n\t%s\n"
	MsgRealmlistSet     = "Realmlist set to:\n\t%s\n"
	MsgRealmlistWouldBe = "Would set realmlist to:\n\t%s\n"
	MsgCacheCleared     = "Cache cleared in:\n\t%s\n"
	MsgPasswordCopied   = "(password copied to clipboard)"
	MsgDryRunBanner     = "DRY RUN"

	// Bases
	MsgInitializingBase = "Initializing base at: %s\n"
	MsgUsingProfile     = "Using profile: %s\n"
	MsgRequirementsOK   = "✓ All required files and directories present"
	MsgWarningsHeader   = "⚠ Warnings:"
	MsgWarningItem      = "  - %s\n"
	MsgFoundEntries     = "Found %d files/directories\n"
	MsgComputedSums     = "Computed %d checksums for immutable files\n"
	MsgManifestWritten  = "✓ Manifest written to %s\n"
	MsgManifestWouldBe  = "Would write manifest to %s\n"
	MsgVerifyOK         = "✓ %d files verified\n"
	MsgVerifyMissing    = "✗ %s: missing\n"
	MsgVerifyChanged    = "✗ %s: expected %s, got %s\n"

	// Workspaces
	MsgCreatingWorkspace = "Creating workspace: %s\n"
	MsgBaseLine          = "Base: %s\n"
	MsgSharingRules      = "Sharing rules:"
	MsgRuleItem          = "  %s = %s\n"
	MsgWorkspaceCreated  = "✓ Workspace created at: %s\n"
	MsgWorkspaceWouldBe  = "Would create workspace at: %s\n"
	MsgConfigSnippet     = "You can now launch this workspace by updating your config.toml:"
	MsgFixingWorkspace   = "Fixing workspace: %s\n"
	MsgFixAction         = "  -> %s: %s\n"
	MsgFixWouldAction    = "  [dry run] %s: %s\n"
	MsgFixNothing        = "Nothing to fix"
	MsgFixDone           = "✓ Fix operations completed (no user data was overridden)"
	MsgCleaningWorkspace = "Cleaning workspace: %s\n"
	MsgRemovedItem       = "✓ Removed %s\n"
	MsgWouldRemoveItem   = "Would remove %s\n"
	MsgFailedItem        = "✗ Failed to remove %s: %v\n"
	MsgAlreadyClean      = "Workspace is already clean"
	MsgNotAWorkspace     = "%s is not a realmctl workspace\n"
	MsgNoGames           = "No games configured."

	// Error messages
	MsgErrInitPaths     = "failed to initialize paths: %w"
	MsgErrLoadSettings  = "failed to load settings: %w"
	MsgErrVerifyFailed  = "%d of %d files failed verification"
	MsgErrCleanFailures = "failed to remove %d item(s)"

	// Flag descriptions
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun        = "Preview changes without executing them"
	MsgFlagConfig        = "Path to config.toml (env REALMCTL_CONFIG)"
	MsgFlagProfile       = "Base profile (see 'realmctl profiles')"
	MsgFlagBase          = "Path to an initialized base installation"
	MsgFlagShare         = "Sharing rule KEY=STRATEGY, repeatable"
	MsgFlagWorkspaceRoot = "Directory to create the workspace in"
	MsgFlagWDB           = "Also remove *.wdb cache files"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/launch-long.txt
	msgLaunchLongRaw string
	MsgLaunchLong    = strings.TrimSpace(msgLaunchLongRaw)

	//go:embed msgs/launch-example.txt
	msgLaunchExampleRaw string
	MsgLaunchExample    = strings.TrimRight(msgLaunchExampleRaw, "\n")

	//go:embed msgs/init-base-long.txt
	msgInitBaseLongRaw string
	MsgInitBaseLong    = strings.TrimSpace(msgInitBaseLongRaw)

	//go:embed msgs/init-base-example.txt
	msgInitBaseExampleRaw string
	MsgInitBaseExample    = strings.TrimRight(msgInitBaseExampleRaw, "\n")

	//go:embed msgs/verify-long.txt
	msgVerifyLongRaw string
	MsgVerifyLong    = strings.TrimSpace(msgVerifyLongRaw)

	//go:embed msgs/create-long.txt
	msgCreateLongRaw string
	MsgCreateLong    = strings.TrimSpace(msgCreateLongRaw)

	//go:embed msgs/create-example.txt
	msgCreateExampleRaw string
	MsgCreateExample    = strings.TrimRight(msgCreateExampleRaw, "\n")

	//go:embed msgs/fix-long.txt
	msgFixLongRaw string
	MsgFixLong    = strings.TrimSpace(msgFixLongRaw)

	//go:embed msgs/clean-long.txt
	msgCleanLongRaw string
	MsgCleanLong    = strings.TrimSpace(msgCleanLongRaw)

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
