package workspace

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arthur-debert/realmctl/pkg/errors"
	"github.com/arthur-debert/realmctl/pkg/logging"
	"github.com/arthur-debert/realmctl/pkg/types"
)

// EphemeralDirs are removed by every Clean
var EphemeralDirs = []string{"Cache", "Logs", "Errors"}

// CleanOptions selects what Clean removes besides EphemeralDirs
type CleanOptions struct {
	// WDB also removes *.wdb files in Data/ and its locale directories
	WDB bool
	// DryRun lists what would be removed in Removed and removes nothing
	DryRun bool
}

// CleanFailure is an item Clean could not remove
type CleanFailure struct {
	Path string
	Err  error
}

// CleanReport lists removed items relative to the workspace
type CleanReport struct {
	Removed  []string
	Failures []CleanFailure
}

// Empty reports whether nothing needed cleaning
func (r *CleanReport) Empty() bool {
	return len(r.Removed) == 0 && len(r.Failures) == 0
}

// Clean removes disposable runtime output from the game directory dir.
// Individual failures are recorded and do not stop the clean.
func Clean(fsys types.FS, dir string, opts CleanOptions) (*CleanReport, error) {
	log := logging.GetLogger("workspace.clean")

	info, err := fsys.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrNotFound, "Directory does not exist: %s", dir).
			WithDetail("path", dir)
	}

	report := &CleanReport{}
	remove := func(rel string, all bool) {
		target := filepath.Join(dir, filepath.FromSlash(rel))
		if opts.DryRun {
			log.Debug().Str("path", target).Msg("Would remove")
			report.Removed = append(report.Removed, rel)
			return
		}
		var err error
		if all {
			err = fsys.RemoveAll(target)
		} else {
			err = fsys.Remove(target)
		}
		if err != nil {
			log.Warn().Err(err).Str("path", target).Msg("Failed to remove")
			report.Failures = append(report.Failures, CleanFailure{Path: rel, Err: err})
			return
		}
		log.Info().Str("path", target).Msg("Removed")
		report.Removed = append(report.Removed, rel)
	}

	for _, name := range EphemeralDirs {
		if _, err := fsys.Lstat(filepath.Join(dir, name)); err == nil {
			remove(name, true)
		}
	}

	if !opts.WDB {
		return report, nil
	}

	dataDir := filepath.Join(dir, "Data")
	entries, err := fsys.ReadDir(dataDir)
	if err != nil {
		return report, nil
	}

	for _, entry := range entries {
		if isWDB(entry.Name()) && !entry.IsDir() {
			remove("Data/"+entry.Name(), false)
		}
	}

	for _, entry := range entries {
		if !entry.IsDir() || !isLocale(entry.Name()) {
			continue
		}
		localeEntries, err := fsys.ReadDir(filepath.Join(dataDir, entry.Name()))
		if err != nil {
			continue
		}
		for _, le := range localeEntries {
			if isWDB(le.Name()) && !le.IsDir() {
				remove("Data/"+entry.Name()+"/"+le.Name(), false)
			}
		}
	}

	return report, nil
}

func isWDB(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".wdb")
}

// isLocale matches locale directory names such as enUS or frFR
func isLocale(name string) bool {
	if utf8.RuneCountInString(name) != 4 {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
