package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/realmctl/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override settings
const EnvPrefix = "REALMCTL_"

// Settings are process-wide knobs, independent of any single game
type Settings struct {
	WorkspaceRoot   string `koanf:"workspace_root"`
	Clipboard       bool   `koanf:"clipboard"`
	Setsid          bool   `koanf:"setsid"`
	ChecksumWorkers int    `koanf:"checksum_workers"`
}

// LoadSettings layers the embedded defaults, the optional settings file and
// REALMCTL_* environment variables, in that order.
func LoadSettings(settingsFile string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load default settings")
	}

	if settingsFile != "" {
		if _, err := os.Stat(settingsFile); err == nil {
			if err := k.Load(file.Provider(settingsFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load settings from %s", settingsFile)
			}
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	var settings Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &settings,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &settings, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal settings")
	}

	if settings.ChecksumWorkers < 1 {
		settings.ChecksumWorkers = 1
	}

	return &settings, nil
}
