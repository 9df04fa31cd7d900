package workspace

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/realmctl/pkg/base"
	"github.com/arthur-debert/realmctl/pkg/errors"
	"github.com/arthur-debert/realmctl/pkg/logging"
	"github.com/arthur-debert/realmctl/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Stats counts what Create did to each manifest entry
type Stats struct {
	HardLinked int
	Symlinked  int
	Copied     int
	Seeded     int
	SharedDirs int
	LocalDirs  int
}

// Create builds the workspace name under root from the base at basePath
func Create(ctx context.Context, fsys types.FS, name, basePath, root string, rules Rules) (*Config, error) {
	log := logging.GetLogger("workspace.create")
	done := logging.LogOperationStart(log, "create")
	defer done()

	wsPath, manifest, err := check(fsys, name, basePath, root)
	if err != nil {
		return nil, err
	}

	if err := fsys.MkdirAll(wsPath, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", wsPath).
			WithDetail("path", wsPath)
	}
	// A workspace without workspace.toml cannot be fixed, so a failed create
	// removes what it built. Shared roots stay.
	committed := false
	defer func() {
		if committed {
			return
		}
		if err := fsys.RemoveAll(wsPath); err != nil {
			log.Warn().Err(err).Str("workspace", wsPath).Msg("Failed to remove partial workspace")
			return
		}
		log.Debug().Str("workspace", wsPath).Msg("Removed partial workspace")
	}()

	global, perBase := SharedRoots(root, manifest.Profile)
	for _, dir := range []string{global, perBase} {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir).
				WithDetail("path", dir)
		}
	}

	if rules == nil {
		rules = DefaultSharingRules()
	}

	m := &materializer{
		fs:       fsys,
		log:      log,
		basePath: basePath,
		wsPath:   wsPath,
		global:   global,
		perBase:  perBase,
		manifest: manifest,
		rules:    rules,
	}
	if err := m.run(ctx); err != nil {
		return nil, err
	}

	cfg := &Config{
		ID:            uuid.NewString(),
		Name:          name,
		BaseName:      manifest.Profile,
		BasePath:      basePath,
		WorkspacePath: wsPath,
		CreatedAt:     strconv.FormatInt(time.Now().Unix(), 10),
		SharingRules:  rules,
	}
	if err := writeConfig(fsys, cfg); err != nil {
		return nil, err
	}
	committed = true

	log.Info().
		Str("workspace", wsPath).
		Int("hardLinked", m.stats.HardLinked).
		Int("symlinked", m.stats.Symlinked).
		Int("copied", m.stats.Copied).
		Int("seeded", m.stats.Seeded).
		Int("sharedDirs", m.stats.SharedDirs).
		Msg("Workspace created")

	return cfg, nil
}

// PlanCreate runs the checks of Create and returns the workspace path it
// would build, without touching the filesystem.
func PlanCreate(fsys types.FS, name, basePath, root string) (string, error) {
	wsPath, _, err := check(fsys, name, basePath, root)
	return wsPath, err
}

func check(fsys types.FS, name, basePath, root string) (string, *base.Manifest, error) {
	if name == "" || strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) || name == "." || name == ".." {
		return "", nil, errors.Newf(errors.ErrInvalidInput, "Invalid workspace name: %q", name)
	}

	manifest, err := base.LoadManifest(fsys, basePath)
	if err != nil {
		return "", nil, err
	}

	wsPath := filepath.Join(root, name)
	if _, err := fsys.Lstat(wsPath); err == nil {
		return "", nil, errors.Newf(errors.ErrWorkspaceExists, "Workspace already exists: %s", wsPath).
			WithDetail("path", wsPath)
	}
	return wsPath, manifest, nil
}

type materializer struct {
	fs       types.FS
	log      zerolog.Logger
	basePath string
	wsPath   string
	global   string
	perBase  string
	manifest *base.Manifest
	rules    Rules
	stats    Stats
}

func (m *materializer) basePathOf(rel string) string {
	return filepath.Join(m.basePath, filepath.FromSlash(rel))
}

func (m *materializer) wsPathOf(rel string) string {
	return filepath.Join(m.wsPath, filepath.FromSlash(rel))
}

func (m *materializer) sharedRoot(strategy SharingStrategy) string {
	if strategy == StrategyGlobal {
		return m.global
	}
	return m.perBase
}

func (m *materializer) run(ctx context.Context) error {
	if err := m.linkUserDirs(ctx); err != nil {
		return err
	}
	return m.placeEntries(ctx)
}

// userDirs returns the user media/config directories of the base, shallowest first
func userDirs(fsys types.FS, basePath string, manifest *base.Manifest) []string {
	var dirs []string
	for rel, role := range manifest.FileRoles {
		if !role.IsUser() {
			continue
		}
		info, err := fsys.Stat(filepath.Join(basePath, filepath.FromSlash(rel)))
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, rel)
	}
	sort.Slice(dirs, func(i, j int) bool {
		di, dj := strings.Count(dirs[i], "/"), strings.Count(dirs[j], "/")
		if di != dj {
			return di < dj
		}
		return dirs[i] < dirs[j]
	})
	return dirs
}

func underAny(rel string, dirs []string) bool {
	for _, dir := range dirs {
		if strings.HasPrefix(rel, dir+"/") {
			return true
		}
	}
	return false
}

// linkUserDirs creates user directories, either locally or as symlinks into
// the shared roots. Directories below a shared one are reached through the
// link and skipped.
func (m *materializer) linkUserDirs(ctx context.Context) error {
	var shared []string
	for _, rel := range userDirs(m.fs, m.basePath, m.manifest) {
		if err := ctx.Err(); err != nil {
			return err
		}

		if underAny(rel, shared) {
			continue
		}

		strategy := DetermineStrategy(rel, m.rules, defaultStrategy(m.manifest.FileRoles[rel]))
		if err := m.placeUserDir(rel, strategy); err != nil {
			return err
		}
		if strategy.Shared() {
			shared = append(shared, rel)
		}
	}
	return nil
}

func (m *materializer) placeUserDir(rel string, strategy SharingStrategy) error {
	wsFile := m.wsPathOf(rel)
	if _, err := m.fs.Lstat(wsFile); err == nil {
		return nil
	}

	if !strategy.Shared() {
		if err := m.fs.MkdirAll(wsFile, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", wsFile).
				WithDetail("path", wsFile)
		}
		m.stats.LocalDirs++
		return nil
	}

	target := filepath.Join(m.sharedRoot(strategy), filepath.FromSlash(rel))
	if err := m.fs.MkdirAll(target, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create shared directory %s", target).
			WithDetail("path", target)
	}
	if err := m.fs.MkdirAll(filepath.Dir(wsFile), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(wsFile))
	}
	if err := m.fs.Symlink(target, wsFile); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "Failed to create symlink for %s", rel).
			WithDetail("path", wsFile)
	}

	m.log.Debug().Str("path", rel).Str("target", target).Str("strategy", string(strategy)).Msg("Linked shared directory")
	m.stats.SharedDirs++
	return nil
}

// placeEntries links, copies or creates every manifest entry not placed yet.
// User directories below a shared link are created inside the shared target.
func (m *materializer) placeEntries(ctx context.Context) error {
	for _, rel := range m.manifest.Paths() {
		if err := ctx.Err(); err != nil {
			return err
		}

		role := m.manifest.FileRoles[rel]
		baseFile := m.basePathOf(rel)
		wsFile := m.wsPathOf(rel)

		info, err := m.fs.Stat(baseFile)
		if err != nil {
			m.log.Debug().Str("path", rel).Msg("Entry vanished from base, skipping")
			continue
		}
		if err := m.ensureParent(rel); err != nil {
			return err
		}
		if _, err := m.fs.Lstat(wsFile); err == nil {
			continue
		}
		if _, err := m.fs.Stat(filepath.Dir(wsFile)); err != nil {
			m.log.Debug().Str("path", rel).Msg("Parent not materialized, skipping")
			continue
		}

		if info.IsDir() {
			if err := m.fs.MkdirAll(wsFile, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", wsFile).
					WithDetail("path", wsFile)
			}
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		switch role {
		case base.RoleExecutable, base.RoleBaseData:
			if err := m.link(rel, baseFile, wsFile); err != nil {
				return err
			}
		case base.RoleMutableData, base.RoleOther:
			if err := copyFile(m.fs, baseFile, wsFile, info.Mode().Perm()); err != nil {
				return errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s", rel).
					WithDetail("path", wsFile)
			}
			m.stats.Copied++
		case base.RoleUserMedia, base.RoleUserConfig:
			// Seed user files once; existing files were skipped above
			if err := copyFile(m.fs, baseFile, wsFile, info.Mode().Perm()); err != nil {
				return errors.Wrapf(err, errors.ErrFileCopy, "failed to seed %s", rel).
					WithDetail("path", wsFile)
			}
			m.stats.Seeded++
		}
	}
	return nil
}

// ensureParent creates the parent of rel in the workspace unless an ancestor
// is a symlink or belongs to a shared directory.
func (m *materializer) ensureParent(rel string) error {
	parentRel := filepath.ToSlash(filepath.Dir(filepath.FromSlash(rel)))
	if parentRel == "." {
		return nil
	}

	for current := parentRel; current != "." && current != "/"; current = filepath.ToSlash(filepath.Dir(filepath.FromSlash(current))) {
		info, err := m.fs.Lstat(m.wsPathOf(current))
		if err == nil && info.Mode()&fs.ModeSymlink != 0 {
			return nil
		}
		if key, ok := matchRule(current, m.rules); ok && m.rules[key].Shared() {
			return nil
		}
	}

	parent := m.wsPathOf(parentRel)
	if _, err := m.fs.Stat(parent); err == nil {
		return nil
	}
	if err := m.fs.MkdirAll(parent, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", parent).
			WithDetail("path", parent)
	}
	return nil
}

// link hard links baseFile into the workspace, falling back to a symlink
// when the two live on different devices.
func (m *materializer) link(rel, baseFile, wsFile string) error {
	linkErr := m.fs.Link(baseFile, wsFile)
	if linkErr == nil {
		m.stats.HardLinked++
		return nil
	}

	if err := m.fs.Symlink(baseFile, wsFile); err != nil {
		return errors.Wrapf(err, errors.ErrLinkCreate, "Failed to link %s", rel).
			WithDetail("path", wsFile).
			WithDetail("hardlinkError", linkErr.Error())
	}
	m.log.Debug().Err(linkErr).Str("path", rel).Msg("Hard link failed, used symlink")
	m.stats.Symlinked++
	return nil
}

// copyFile copies src to a new file dst; dst must not exist
func copyFile(fsys types.FS, src, dst string, perm os.FileMode) error {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := fsys.Create(dst, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
