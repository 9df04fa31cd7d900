// Package launcher prepares a game directory and starts the client.
//
// Launching rewrites the realmlist file, optionally clears the Cache
// directory, prints the account credentials (copying the password to the
// clipboard) and spawns the client detached from realmctl. On linux the
// client runs through a shell command, wine by default, wrapped in setsid.
package launcher
