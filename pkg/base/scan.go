package base

import (
	"context"
	"fmt"
	"hash/crc32"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/arthur-debert/realmctl/pkg/errors"
	"github.com/arthur-debert/realmctl/pkg/logging"
	"github.com/arthur-debert/realmctl/pkg/types"
	"golang.org/x/sync/errgroup"
)

// Scan walks dir and classifies every file and directory with profile.
// Ephemeral directories are recorded but not descended into. BaseData files
// get a CRC-32 checksum, computed by up to workers goroutines.
func Scan(ctx context.Context, fsys types.FS, dir string, profile Profile, workers int) (*Manifest, error) {
	log := logging.GetLogger("base.scan")
	done := logging.LogOperationStart(log, "scan")
	defer done()

	m := &Manifest{
		Profile:   profile.Name,
		BasePath:  dir,
		CreatedAt: strconv.FormatInt(time.Now().Unix(), 10),
		FileRoles: make(map[string]FileRole),
		Checksums: make(map[string]string),
		Version:   profile.Version,
	}

	var ancestors []fs.FileInfo
	if info, err := fsys.Stat(dir); err == nil {
		ancestors = append(ancestors, info)
	}

	var toHash []string
	if err := scanDir(ctx, fsys, dir, "", profile, m.FileRoles, &toHash, ancestors); err != nil {
		return nil, err
	}

	log.Debug().Int("entries", len(m.FileRoles)).Int("baseData", len(toHash)).Msg("Walk complete")

	sums, err := checksumAll(ctx, fsys, dir, toHash, workers)
	if err != nil {
		return nil, err
	}
	m.Checksums = sums

	return m, nil
}

// ancestors holds the directories from root down to rel. A linked directory
// that resolves to one of them is recorded but not walked again.
func scanDir(ctx context.Context, fsys types.FS, root, rel string, profile Profile, roles map[string]FileRole, toHash *[]string, ancestors []fs.FileInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	current := filepath.Join(root, filepath.FromSlash(rel))
	entries, err := fsys.ReadDir(current)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", current).
			WithDetail("path", current)
	}

	for _, entry := range entries {
		childRel := entry.Name()
		if rel != "" {
			childRel = path.Join(rel, entry.Name())
		}
		if childRel == ManifestFileName {
			continue
		}

		// Stat follows symlinks, so linked directories are walked too
		info, err := fsys.Stat(filepath.Join(current, entry.Name()))
		if err != nil {
			continue
		}

		switch {
		case info.IsDir():
			role := profile.Classify(childRel)
			roles[childRel] = role
			if role == RoleEphemeral {
				continue
			}
			if loops(info, ancestors) {
				log := logging.GetLogger("base.scan")
				log.Warn().Str("path", childRel).Msg("Directory link points back to a parent, not descending")
				continue
			}
			if err := scanDir(ctx, fsys, root, childRel, profile, roles, toHash, append(ancestors, info)); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			role := profile.Classify(childRel)
			roles[childRel] = role
			if role == RoleBaseData {
				*toHash = append(*toHash, childRel)
			}
		}
	}

	return nil
}

func loops(info fs.FileInfo, ancestors []fs.FileInfo) bool {
	for _, a := range ancestors {
		if os.SameFile(info, a) {
			return true
		}
	}
	return false
}

// checksumAll hashes rels in parallel. Files that cannot be read are left out.
func checksumAll(ctx context.Context, fsys types.FS, root string, rels []string, workers int) (map[string]string, error) {
	log := logging.GetLogger("base.scan")
	if workers < 1 {
		workers = 1
	}

	var (
		mu   sync.Mutex
		sums = make(map[string]string, len(rels))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, rel := range rels {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sum, err := Checksum(fsys, filepath.Join(root, filepath.FromSlash(rel)))
			if err != nil {
				log.Warn().Err(err).Str("path", rel).Msg("Skipping checksum")
				return nil
			}
			mu.Lock()
			sums[rel] = sum
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sums, nil
}

// Checksum returns the CRC-32 (IEEE) of the file as 8 lowercase hex digits
func Checksum(fsys types.FS, name string) (string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := crc32.NewIEEE()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%08x", h.Sum32()), nil
}
