package base

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/realmctl/pkg/types"
)

// ChecksumProblem describes one BaseData file that failed verification
type ChecksumProblem struct {
	Path     string
	Expected string
	Actual   string
	Missing  bool
}

// VerifyReport is the outcome of VerifyChecksums
type VerifyReport struct {
	Checked  int
	Problems []ChecksumProblem
}

// OK reports whether every checksum matched
func (r *VerifyReport) OK() bool {
	return len(r.Problems) == 0
}

// VerifyChecksums recomputes the checksum of every file recorded in the
// manifest of the base at dir and reports missing or changed files.
func VerifyChecksums(ctx context.Context, fsys types.FS, dir string, workers int) (*VerifyReport, error) {
	m, err := LoadManifest(fsys, dir)
	if err != nil {
		return nil, err
	}

	rels := make([]string, 0, len(m.Checksums))
	for rel := range m.Checksums {
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	actual, err := checksumAll(ctx, fsys, dir, rels, workers)
	if err != nil {
		return nil, err
	}

	report := &VerifyReport{Checked: len(rels)}
	for _, rel := range rels {
		expected := m.Checksums[rel]
		got, ok := actual[rel]
		switch {
		case !ok:
			if _, statErr := fsys.Stat(filepath.Join(dir, filepath.FromSlash(rel))); statErr != nil {
				report.Problems = append(report.Problems, ChecksumProblem{Path: rel, Expected: expected, Missing: true})
			} else {
				report.Problems = append(report.Problems, ChecksumProblem{Path: rel, Expected: expected})
			}
		case got != expected:
			report.Problems = append(report.Problems, ChecksumProblem{Path: rel, Expected: expected, Actual: got})
		}
	}

	return report, nil
}
