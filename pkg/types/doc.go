// Package types holds the small set of interfaces shared across realmctl
// packages. Keeping them here lets the launcher and workspace packages accept
// a filesystem without importing a concrete implementation.
package types
