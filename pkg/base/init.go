package base

import (
	"context"

	"github.com/arthur-debert/realmctl/pkg/errors"
	"github.com/arthur-debert/realmctl/pkg/logging"
	"github.com/arthur-debert/realmctl/pkg/types"
)

// InitResult summarizes a base initialization
type InitResult struct {
	Profile      string
	ManifestPath string
	Warnings     []string
	Entries      int
	Checksums    int
	Manifest     *Manifest
}

// Init verifies dir against profile, scans it and writes its manifest
func Init(ctx context.Context, fsys types.FS, dir string, profile Profile, workers int) (*InitResult, error) {
	return initBase(ctx, fsys, dir, profile, workers, true)
}

// Preview runs the checks and the scan of Init without writing the manifest
func Preview(ctx context.Context, fsys types.FS, dir string, profile Profile, workers int) (*InitResult, error) {
	return initBase(ctx, fsys, dir, profile, workers, false)
}

func initBase(ctx context.Context, fsys types.FS, dir string, profile Profile, workers int, write bool) (*InitResult, error) {
	log := logging.GetLogger("base.init")

	info, err := fsys.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrNotFound, "Directory does not exist: %s", dir).
			WithDetail("path", dir)
	}

	if err := profile.VerifyRequirements(fsys, dir); err != nil {
		return nil, err
	}

	warnings := profile.CheckWarnings(fsys, dir)
	for _, w := range warnings {
		log.Warn().Str("base", dir).Msg(w)
	}

	m, err := Scan(ctx, fsys, dir, profile, workers)
	if err != nil {
		return nil, err
	}

	if !write {
		log.Info().Str("base", dir).Int("entries", len(m.FileRoles)).Msg("Dry run, manifest not written")
		return newInitResult(profile, dir, warnings, m), nil
	}
	if err := WriteManifest(fsys, m, dir); err != nil {
		return nil, err
	}

	log.Info().
		Str("base", dir).
		Str("profile", profile.Name).
		Int("entries", len(m.FileRoles)).
		Int("checksums", len(m.Checksums)).
		Msg("Base initialized")

	return newInitResult(profile, dir, warnings, m), nil
}

func newInitResult(profile Profile, dir string, warnings []string, m *Manifest) *InitResult {
	return &InitResult{
		Profile:      profile.Name,
		ManifestPath: ManifestPath(dir),
		Warnings:     warnings,
		Entries:      len(m.FileRoles),
		Checksums:    len(m.Checksums),
		Manifest:     m,
	}
}
