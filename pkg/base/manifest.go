package base

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/realmctl/pkg/errors"
	"github.com/arthur-debert/realmctl/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
)

// ManifestFileName is the manifest written at the root of a base
const ManifestFileName = "manifest.toml"

// Manifest describes a scanned base installation
type Manifest struct {
	Profile   string              `toml:"profile"`
	BasePath  string              `toml:"base_path"`
	CreatedAt string              `toml:"created_at"`
	FileRoles map[string]FileRole `toml:"file_roles"`
	Checksums map[string]string   `toml:"checksums"`
	Version   string              `toml:"version,omitempty"`
}

// Paths returns the manifest entries sorted lexicographically
func (m *Manifest) Paths() []string {
	out := make([]string, 0, len(m.FileRoles))
	for rel := range m.FileRoles {
		out = append(out, rel)
	}
	sort.Strings(out)
	return out
}

// CountByRole returns how many entries carry each role
func (m *Manifest) CountByRole() map[FileRole]int {
	counts := make(map[FileRole]int)
	for _, role := range m.FileRoles {
		counts[role]++
	}
	return counts
}

// ManifestPath returns where the manifest of the base at dir lives
func ManifestPath(dir string) string {
	return filepath.Join(dir, ManifestFileName)
}

// WriteManifest stores m as manifest.toml inside dir
func WriteManifest(fsys types.FS, m *Manifest, dir string) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode manifest")
	}

	target := ManifestPath(dir)
	if err := fsys.WriteFile(target, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write manifest %s", target).
			WithDetail("path", target)
	}
	return nil
}

// LoadManifest reads manifest.toml from dir
func LoadManifest(fsys types.FS, dir string) (*Manifest, error) {
	target := ManifestPath(dir)
	data, err := fsys.ReadFile(target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrBaseInvalid, "no manifest found in base %s (run init-base first)", dir).
			WithDetail("path", target)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrBaseInvalid, "failed to parse manifest %s", target).
			WithDetail("path", target)
	}

	for rel, role := range m.FileRoles {
		if !role.Valid() {
			return nil, errors.Newf(errors.ErrBaseInvalid, "manifest %s has unknown role %q for %s", target, role, rel).
				WithDetail("path", target)
		}
	}
	if m.FileRoles == nil {
		m.FileRoles = make(map[string]FileRole)
	}
	if m.Checksums == nil {
		m.Checksums = make(map[string]string)
	}

	return &m, nil
}
