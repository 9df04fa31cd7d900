// Package workspace materializes lightweight game directories from a base.
//
// A workspace lives at <root>/<name>. Immutable data is hard linked from the
// base (falling back to a symlink across devices), mutable data is copied and
// user directories are either local to the workspace or symlinked into a
// shared root:
//
//	<root>/.shared/global      shared by every workspace
//	<root>/.shared/<profile>   shared by workspaces of the same base profile
//
// Which user directories are shared is decided by sharing rules, a map of
// case-insensitive path keys to a SharingStrategy. The rules and the base
// location are stored in workspace.toml so Fix can repair the layout later.
package workspace
