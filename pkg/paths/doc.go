// Package paths provides centralized path handling for realmctl.
//
// This package implements the XDG Base Directory specification and provides
// a consistent API for the locations realmctl reads and writes:
//
//   - The games config file (config.toml)
//   - The optional settings file (settings.toml)
//   - The default workspace root
//   - The log file
//
// # Environment Variables
//
// The package respects the following environment variables:
//
//   - REALMCTL_CONFIG: Games config file (default: $XDG_CONFIG_HOME/realmctl/config.toml)
//   - REALMCTL_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/realmctl)
//   - REALMCTL_DATA_DIR: Override XDG data directory (default: $XDG_DATA_HOME/realmctl)
//   - REALMCTL_STATE_DIR: Override XDG state directory (default: $XDG_STATE_HOME/realmctl)
//
// Only a leading ~ is expanded. Variables such as $HOME inside configured
// paths are kept verbatim.
package paths
