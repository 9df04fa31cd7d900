// Package base prepares a game installation to act as the source of
// workspaces.
//
// A base is a plain client directory plus a manifest.toml written by Init.
// The manifest records the role of every file and directory (executable,
// immutable data, patches, user media, user config, ephemeral) as decided by
// a Profile, and a CRC-32 checksum for each immutable data file. Workspaces
// read the manifest to decide what to hard link, what to copy and what to
// share.
package base
