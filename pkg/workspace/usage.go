package workspace

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/realmctl/pkg/errors"
)

// UsageReport describes how much space a workspace really takes
type UsageReport struct {
	Files      int
	Dirs       int
	Symlinks   int
	HardLinked int
	// ApparentBytes is the sum of file sizes as seen inside the workspace
	ApparentBytes int64
	// UniqueBytes counts every inode once, so data hard linked within the
	// workspace is not counted twice
	UniqueBytes int64
	// OwnedBytes counts files with a single link, the space only this
	// workspace holds
	OwnedBytes int64
	// DiskBytes is the allocated size of the unique inodes; zero where the
	// platform does not report blocks
	DiskBytes int64
}

// SharedBytes is the part of the apparent size held through hard links
func (r *UsageReport) SharedBytes() int64 {
	return r.ApparentBytes - r.OwnedBytes
}

type inodeKey struct {
	dev uint64
	ino uint64
}

// Usage walks the workspace at dir without following symlinks
func Usage(dir string) (*UsageReport, error) {
	report := &UsageReport{}
	seen := make(map[inodeKey]struct{})

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			report.Symlinks++
			return nil
		case d.IsDir():
			if path != dir {
				report.Dirs++
			}
			return nil
		case !d.Type().IsRegular():
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		report.Files++
		report.ApparentBytes += info.Size()

		id, err := identify(path)
		if err != nil {
			return err
		}
		if id.nlink > 1 {
			report.HardLinked++
		} else {
			report.OwnedBytes += info.Size()
		}
		if id.ok {
			if _, dup := seen[id.key]; dup {
				return nil
			}
			seen[id.key] = struct{}{}
		}
		report.UniqueBytes += info.Size()
		report.DiskBytes += id.blocks * 512
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to measure %s", dir).
			WithDetail("path", dir)
	}

	return report, nil
}

// fileIdentity is what the platform knows about a file's inode
type fileIdentity struct {
	key    inodeKey
	nlink  uint64
	blocks int64
	ok     bool
}
