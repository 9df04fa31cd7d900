package launcher

import (
	"path/filepath"

	"github.com/arthur-debert/realmctl/pkg/errors"
	"github.com/arthur-debert/realmctl/pkg/logging"
	"github.com/arthur-debert/realmctl/pkg/types"
)

// CacheDirName is the client cache removed by ClearCache
const CacheDirName = "Cache"

// RealmlistLine returns the realmlist file content for realm
func RealmlistLine(realm string) string {
	return "set realmlist to " + realm
}

// WriteRealmlist overwrites gameDir/relPath so the client connects to realm.
// It returns the line written.
func WriteRealmlist(fsys types.FS, gameDir, relPath, realm string) (string, error) {
	target := filepath.Join(gameDir, filepath.FromSlash(relPath))
	line := RealmlistLine(realm)

	if err := fsys.WriteFile(target, []byte(line), 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "Realmlist not writable, check path: %s", target).
			WithDetail("path", target)
	}

	log := logging.GetLogger("launcher")
	log.Info().Str("path", target).Str("realmlist", realm).Msg("Realmlist written")
	return line, nil
}

// ClearCache removes gameDir/Cache and reports whether it existed
func ClearCache(fsys types.FS, gameDir string) (bool, error) {
	log := logging.GetLogger("launcher")
	cacheDir := filepath.Join(gameDir, CacheDirName)

	if _, err := fsys.Lstat(cacheDir); err != nil {
		log.Debug().Str("path", cacheDir).Msg("Cache directory does not exist, nothing to remove")
		return false, nil
	}

	if err := fsys.RemoveAll(cacheDir); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", cacheDir).
			WithDetail("path", cacheDir)
	}

	log.Info().Str("path", cacheDir).Msg("Cache cleared")
	return true, nil
}
