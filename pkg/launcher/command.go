package launcher

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/realmctl/pkg/config"
	"github.com/arthur-debert/realmctl/pkg/errors"
	"github.com/arthur-debert/realmctl/pkg/types"
)

// Command is a resolved process to start
type Command struct {
	Path string
	Args []string
	// Shell is the shell command line when the process runs through sh -c
	Shell string
	Dir   string
}

// String renders the command the way a user would type it
func (c Command) String() string {
	if c.Shell != "" {
		return c.Shell
	}
	if len(c.Args) == 0 {
		return c.Path
	}
	return c.Path + " " + strings.Join(c.Args, " ")
}

// ExecutablePath returns the absolute path of the game's executable
func ExecutablePath(game config.Game) string {
	return filepath.Join(game.Directory, filepath.FromSlash(game.Executable))
}

// WineCommand is the default linux launch command for a game
func WineCommand(game config.Game) string {
	return fmt.Sprintf(`WINEPREFIX="%s" wine "%s"`, filepath.Join(game.Directory, ".wine"), ExecutablePath(game))
}

// BuildCommand resolves how game is started on goos
func BuildCommand(fsys types.FS, game config.Game, goos string, setsid bool) (Command, error) {
	exe := ExecutablePath(game)
	if _, err := fsys.Stat(exe); err != nil {
		return Command{}, errors.Newf(errors.ErrExecutableNotFound, "Executable not found: %s", exe).
			WithDetail("path", exe)
	}

	shell := func(line string, detach bool) Command {
		if detach {
			return Command{Path: "setsid", Args: []string{"sh", "-c", line}, Shell: line, Dir: game.Directory}
		}
		return Command{Path: "sh", Args: []string{"-c", line}, Shell: line, Dir: game.Directory}
	}

	switch goos {
	case "linux":
		line := game.LaunchCmd
		if line == "" {
			line = WineCommand(game)
		}
		return shell(line, setsid), nil
	case "windows":
		return Command{Path: exe, Dir: game.Directory}, nil
	case "darwin":
		if game.LaunchCmd != "" {
			return shell(game.LaunchCmd, false), nil
		}
		return Command{}, errors.New(errors.ErrUnsupportedPlatform, "Unsupported platform: darwin requires launch_cmd")
	}

	return Command{}, errors.Newf(errors.ErrUnsupportedPlatform, "Unsupported platform: %s", goos).
		WithDetail("goos", goos)
}
