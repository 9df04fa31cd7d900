package workspace

import (
	"path/filepath"

	"github.com/arthur-debert/realmctl/pkg/errors"
	"github.com/arthur-debert/realmctl/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the file Create writes at the root of a workspace
const ConfigFileName = "workspace.toml"

// Shared root layout under the workspace root
const (
	SharedDirName = ".shared"
	GlobalDirName = "global"
)

// Config describes a workspace and how it was built
type Config struct {
	ID            string `toml:"id"`
	Name          string `toml:"name"`
	BaseName      string `toml:"base_name"`
	BasePath      string `toml:"base_path"`
	WorkspacePath string `toml:"workspace_path"`
	CreatedAt     string `toml:"created_at"`
	SharingRules  Rules  `toml:"sharing_rules"`
}

// SharedRoots returns the global and per-base shared roots under root
func SharedRoots(root, profile string) (global, perBase string) {
	shared := filepath.Join(root, SharedDirName)
	return filepath.Join(shared, GlobalDirName), filepath.Join(shared, profile)
}

// ConfigPath returns where the config of the workspace at dir lives
func ConfigPath(dir string) string {
	return filepath.Join(dir, ConfigFileName)
}

func writeConfig(fsys types.FS, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode workspace config")
	}
	target := ConfigPath(cfg.WorkspacePath)
	if err := fsys.WriteFile(target, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", target).
			WithDetail("path", target)
	}
	return nil
}

// LoadConfig reads workspace.toml from the workspace at dir
func LoadConfig(fsys types.FS, dir string) (*Config, error) {
	target := ConfigPath(dir)
	data, err := fsys.ReadFile(target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrWorkspaceInvalid, "no workspace config in %s", dir).
			WithDetail("path", target)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrWorkspaceInvalid, "failed to parse %s", target).
			WithDetail("path", target)
	}

	for key, strategy := range cfg.SharingRules {
		parsed, err := ParseStrategy(string(strategy))
		if err != nil {
			return nil, err
		}
		cfg.SharingRules[key] = parsed
	}
	if cfg.SharingRules == nil {
		cfg.SharingRules = make(Rules)
	}

	return &cfg, nil
}
