package workspace

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/realmctl/pkg/base"
	"github.com/arthur-debert/realmctl/pkg/errors"
	"github.com/arthur-debert/realmctl/pkg/logging"
	"github.com/arthur-debert/realmctl/pkg/types"
)

// FixKind classifies a repair step
type FixKind string

const (
	FixCreatedRoot     FixKind = "created-root"
	FixCreatedDir      FixKind = "created-dir"
	FixCreatedTarget   FixKind = "created-target"
	FixRecreatedTarget FixKind = "recreated-target"
	FixCreatedLink     FixKind = "created-link"
	FixWarning         FixKind = "warning"
)

// FixAction is one thing Fix did or refused to do
type FixAction struct {
	Kind    FixKind
	Path    string
	Message string
}

// FixReport lists every action taken by Fix
type FixReport struct {
	Workspace string
	Actions   []FixAction
}

// Warnings returns the actions that need user attention
func (r *FixReport) Warnings() []FixAction {
	var out []FixAction
	for _, a := range r.Actions {
		if a.Kind == FixWarning {
			out = append(out, a)
		}
	}
	return out
}

// Reporter receives fix actions as they happen
type Reporter func(FixAction)

type fixer struct {
	fs       types.FS
	report   *FixReport
	reporter Reporter
	dryRun   bool
}

func (f *fixer) record(kind FixKind, path, message string) {
	log := logging.GetLogger("workspace.fix")
	action := FixAction{Kind: kind, Path: path, Message: message}
	f.report.Actions = append(f.report.Actions, action)

	if kind == FixWarning {
		log.Warn().Str("path", path).Msg(message)
	} else {
		log.Info().Str("path", path).Str("kind", string(kind)).Bool("dryRun", f.dryRun).Msg(message)
	}
	if f.reporter != nil {
		f.reporter(action)
	}
}

func (f *fixer) mkdir(kind FixKind, dir, message string) error {
	if f.dryRun {
		f.record(kind, dir, message)
		return nil
	}
	if err := f.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir).
			WithDetail("path", dir)
	}
	f.record(kind, dir, message)
	return nil
}

// Fix repairs the shared roots, shared links and local user directories of
// the workspace at wsPath. It never removes or replaces user data: anything
// unexpected in place of a link or directory is reported as a warning.
func Fix(ctx context.Context, fsys types.FS, wsPath string, reporter Reporter) (*FixReport, error) {
	return fix(ctx, &fixer{fs: fsys, reporter: reporter}, wsPath)
}

// PlanFix reports the actions Fix would take without changing anything.
// Steps that depend on an earlier repair are reported as if it had happened.
func PlanFix(ctx context.Context, fsys types.FS, wsPath string, reporter Reporter) (*FixReport, error) {
	return fix(ctx, &fixer{fs: fsys, reporter: reporter, dryRun: true}, wsPath)
}

func fix(ctx context.Context, f *fixer, wsPath string) (*FixReport, error) {
	fsys := f.fs
	wsPath = filepath.Clean(wsPath)
	cfg, err := LoadConfig(fsys, wsPath)
	if err != nil {
		return nil, err
	}
	f.report = &FixReport{Workspace: wsPath}

	global, perBase := SharedRoots(filepath.Dir(wsPath), cfg.BaseName)
	for _, root := range []string{global, perBase} {
		if _, err := fsys.Stat(root); err == nil {
			continue
		}
		if err := f.mkdir(FixCreatedRoot, root, "Created missing shared root"); err != nil {
			return nil, err
		}
	}

	manifest, err := base.LoadManifest(fsys, cfg.BasePath)
	if err != nil {
		return nil, err
	}

	// Shared user directories, mapped to the root their link points into
	shared := map[string]string{}
	for _, rel := range userDirs(fsys, cfg.BasePath, manifest) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Below a shared link the directory lives inside the ancestor's target
		if root, ok := sharedAncestorRoot(rel, shared); ok {
			if err := f.fixNested(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
				return nil, err
			}
			continue
		}

		strategy := DetermineStrategy(rel, cfg.SharingRules, defaultStrategy(manifest.FileRoles[rel]))
		wsFile := filepath.Join(wsPath, filepath.FromSlash(rel))

		if !strategy.Shared() {
			err = f.fixLocal(wsFile)
		} else {
			root := global
			if strategy == StrategyBase {
				root = perBase
			}
			shared[rel] = root
			err = f.fixShared(wsFile, filepath.Join(root, filepath.FromSlash(rel)))
		}
		if err != nil {
			return nil, err
		}
	}

	return f.report, nil
}

func sharedAncestorRoot(rel string, shared map[string]string) (string, bool) {
	for dir, root := range shared {
		if strings.HasPrefix(rel, dir+"/") {
			return root, true
		}
	}
	return "", false
}

func (f *fixer) fixNested(target string) error {
	if _, err := f.fs.Stat(target); err == nil {
		return nil
	}
	return f.mkdir(FixCreatedTarget, target, "Created missing shared directory")
}

func (f *fixer) fixLocal(wsFile string) error {
	info, err := f.fs.Lstat(wsFile)
	switch {
	case err != nil:
		return f.mkdir(FixCreatedDir, wsFile, "Created missing workspace directory")
	case info.Mode()&fs.ModeSymlink != 0:
		f.record(FixWarning, wsFile, "Expected directory but found a symlink. Leaving as-is.")
	case !info.IsDir():
		f.record(FixWarning, wsFile, "Expected directory but found a file. Leaving as-is.")
	}
	return nil
}

func (f *fixer) fixShared(wsFile, target string) error {
	info, err := f.fs.Lstat(wsFile)
	if err == nil {
		if info.Mode()&fs.ModeSymlink == 0 {
			f.record(FixWarning, wsFile, "Found a real file or directory where a shared link was expected. User data was not touched.")
			return nil
		}

		resolved, err := f.fs.Readlink(wsFile)
		if err == nil && !filepath.IsAbs(resolved) {
			resolved = filepath.Join(filepath.Dir(wsFile), resolved)
		}
		if err == nil {
			if _, statErr := f.fs.Stat(resolved); statErr == nil {
				return nil
			}
		}
		return f.mkdir(FixRecreatedTarget, target, "Recreated missing target of shared link "+wsFile)
	}

	if _, err := f.fs.Stat(target); err != nil {
		if err := f.mkdir(FixCreatedTarget, target, "Created missing shared directory"); err != nil {
			return err
		}
	}

	parent := filepath.Dir(wsFile)
	if _, err := f.fs.Stat(parent); err != nil {
		if err := f.mkdir(FixCreatedDir, parent, "Created missing parent directory"); err != nil {
			return err
		}
	}

	// Creating the target may have made the path visible through a parent link
	if _, err := f.fs.Lstat(wsFile); err == nil {
		return nil
	}

	if f.dryRun {
		f.record(FixCreatedLink, wsFile, "Created shared link to "+target)
		return nil
	}
	if err := f.fs.Symlink(target, wsFile); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %s", wsFile).
			WithDetail("path", wsFile)
	}
	f.record(FixCreatedLink, wsFile, "Created shared link to "+target)
	return nil
}
