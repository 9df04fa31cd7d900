package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/realmctl/pkg/errors"
	"github.com/arthur-debert/realmctl/pkg/logging"
	"github.com/arthur-debert/realmctl/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/google/shlex"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// keyDelim separates koanf key paths. Game names such as "3.3.5a" contain
// dots, so the usual "." would split them into nested tables.
const keyDelim = "::"

// Game describes one installation that can be launched
type Game struct {
	Directory        string `koanf:"directory"`
	Executable       string `koanf:"executable"`
	RealmlistRelPath string `koanf:"realmlist_rel_path"`
	Realmlist        string `koanf:"realmlist"`
	LaunchCmd        string `koanf:"launch_cmd"`
	Username         string `koanf:"username"`
	Password         string `koanf:"password"`
	ClearCache       bool   `koanf:"clear_cache"`
}

// File is the parsed config.toml: game name to game
type File map[string]Game

// HasRealmlist reports whether the game asks for its realmlist to be rewritten
func (g Game) HasRealmlist() bool {
	return g.Realmlist != "" && g.RealmlistRelPath != ""
}

// Validate checks the fields that would otherwise fail late, at launch time
func (g Game) Validate() error {
	if strings.TrimSpace(g.Directory) == "" {
		return errors.New(errors.ErrConfigValid, "directory is required")
	}
	if (g.Realmlist == "") != (g.RealmlistRelPath == "") {
		return errors.New(errors.ErrConfigValid, "realmlist and realmlist_rel_path must be set together")
	}
	if g.LaunchCmd != "" {
		tokens, err := shlex.Split(g.LaunchCmd)
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "launch_cmd is not a valid shell command")
		}
		if len(tokens) == 0 {
			return errors.New(errors.ErrConfigValid, "launch_cmd is empty")
		}
	}
	return nil
}

// Load reads the games config file at path
func Load(path string) (File, error) {
	log := logging.GetLogger("config")
	configPath := paths.ExpandHome(path)

	if _, err := os.Stat(configPath); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "Config file not found: %s", path).
			WithDetail("path", configPath)
	}

	raw := koanf.New(keyDelim)
	if err := raw.Load(file.Provider(configPath), toml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "Failed to parse config file %s", configPath)
	}

	defaults := koanf.New(keyDelim)
	if err := defaults.Load(&rawBytesProvider{bytes: gameDefaults}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load game defaults")
	}

	// Seed every game table with the defaults, then let the file win
	k := koanf.New(keyDelim)
	for _, name := range raw.MapKeys("") {
		seed := make(map[string]interface{})
		for key, value := range defaults.All() {
			seed[name+keyDelim+key] = value
		}
		if err := k.Load(confmap.Provider(seed, keyDelim), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to seed game defaults")
		}
	}
	if err := k.Merge(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to merge config file")
	}

	games := make(File)
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &games,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &games, unmarshalConf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "Failed to parse config file %s", configPath)
	}

	for name, game := range games {
		if game.Directory != "" {
			game.Directory = filepath.Clean(paths.ExpandHome(game.Directory))
		}
		games[name] = game
	}

	log.Debug().Str("path", configPath).Int("games", len(games)).Msg("Config loaded")
	return games, nil
}

// Names returns the game names in sorted order
func (f File) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds a game by name, ignoring case. An exact match wins over a
// case-insensitive one; among several case-insensitive matches the first in
// sorted order wins.
func (f File) Lookup(name string) (Game, error) {
	if game, ok := f[name]; ok {
		return game, nil
	}
	for _, key := range f.Names() {
		if strings.EqualFold(key, name) {
			return f[key], nil
		}
	}
	return Game{}, errors.Newf(errors.ErrProfileNotFound, "Config with key '%s' not found (case-insensitive)", name)
}
