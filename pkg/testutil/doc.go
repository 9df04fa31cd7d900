// Package testutil provides helpers for testing realmctl components.
//
// Key components:
//   - TestBase: declarative builder for mock client installations, on the
//     real filesystem or on an in-memory one
//   - ChromieLayout / VanillaLayout: the minimal file sets the builtin
//     profiles accept
//   - Assertions for links, which workspace tests lean on heavily
//
// Workspace tests need hard links and real symlinks, so they build bases on
// disk under t.TempDir. Everything else should prefer filesystem.NewMemory.
package testutil
