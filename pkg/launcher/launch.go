package launcher

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"

	"github.com/arthur-debert/realmctl/pkg/config"
	"github.com/arthur-debert/realmctl/pkg/errors"
	"github.com/arthur-debert/realmctl/pkg/logging"
	"github.com/arthur-debert/realmctl/pkg/types"
	"github.com/atotto/clipboard"
)

// Options control a launch
type Options struct {
	GOOS      string
	Setsid    bool
	Clipboard bool
	DryRun    bool
	// Out receives the user-facing lines; nil discards them
	Out io.Writer
	// CopyToClipboard defaults to the system clipboard
	CopyToClipboard func(string) error
	// Start defaults to starting the process without waiting for it
	Start func(Command) (int, error)
}

// DefaultOptions launches on the running platform
func DefaultOptions() Options {
	return Options{
		GOOS:      runtime.GOOS,
		Setsid:    true,
		Clipboard: true,
	}
}

// Credentials are the account details shown before the client starts
type Credentials struct {
	Username string
	Password string
	Copied   bool
}

// Result describes what Launch did
type Result struct {
	CacheCleared bool
	Command      Command
	Credentials  Credentials
	Started      bool
	PID          int
}

// ShowCredentials prints the account details and copies the password to
// the clipboard when enabled. A clipboard failure is only logged.
func ShowCredentials(game config.Game, opts Options) Credentials {
	log := logging.GetLogger("launcher")
	out := writerOrDiscard(opts.Out)
	creds := Credentials{Username: game.Username, Password: game.Password}

	if game.Username != "" {
		_, _ = fmt.Fprintf(out, "Account Name:\n\t%s\n", game.Username)
	}
	if game.Password == "" {
		return creds
	}
	_, _ = fmt.Fprintf(out, "Password:\n\t%s\n", game.Password)

	if !opts.Clipboard {
		return creds
	}
	copyFn := opts.CopyToClipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	if err := copyFn(game.Password); err != nil {
		log.Warn().Err(err).Msg("Failed to copy password to clipboard")
		return creds
	}
	creds.Copied = true
	log.Debug().Msg("Password copied to clipboard")
	return creds
}

// Launch clears the cache when configured, resolves the command, shows the
// credentials and starts the client without waiting for it.
func Launch(ctx context.Context, fsys types.FS, game config.Game, opts Options) (*Result, error) {
	log := logging.GetLogger("launcher")
	out := writerOrDiscard(opts.Out)
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	result := &Result{}

	if game.ClearCache {
		if opts.DryRun {
			_, _ = fmt.Fprintf(out, "Would clear cache in:\n\t%s\n", game.Directory)
		} else {
			cleared, err := ClearCache(fsys, game.Directory)
			if err != nil {
				return nil, err
			}
			result.CacheCleared = cleared
		}
	}

	cmd, err := BuildCommand(fsys, game, opts.GOOS, opts.Setsid)
	if err != nil {
		return nil, err
	}
	result.Command = cmd

	result.Credentials = ShowCredentials(game, opts)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.DryRun {
		_, _ = fmt.Fprintf(out, "Would launch with command:\n\t%s\n", cmd)
		return result, nil
	}

	_, _ = fmt.Fprintf(out, "Launching with command:\n\t%s\n", cmd)
	start := opts.Start
	if start == nil {
		start = startDetached
	}
	pid, err := start(cmd)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLaunch, "failed to launch %s", cmd).
			WithDetail("command", cmd.String())
	}

	result.Started = true
	result.PID = pid
	logging.LogCommand(cmd.Path, cmd.Args)
	log.Info().Int("pid", pid).Str("command", cmd.String()).Msg("Game launched")
	return result, nil
}

// startDetached starts cmd and releases it so it outlives realmctl
func startDetached(cmd Command) (int, error) {
	c := exec.Command(cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	if err := c.Start(); err != nil {
		return 0, err
	}
	pid := c.Process.Pid
	if err := c.Process.Release(); err != nil {
		return pid, err
	}
	return pid, nil
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
