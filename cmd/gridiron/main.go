package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/okian/gridiron/internal/config"
	"github.com/okian/gridiron/pkg/logger"
)

const usage = `usage: gridiron <command> [flags]

commands:
  season     play one season and print the standings
  calibrate  play a batch of seasons and report realism bands
  game       play a single game and print its drives
  serve      run the HTTP API

Configuration is read from $GRIDIRON_CONFIG (YAML) and GRIDIRON_* variables.
Run "gridiron <command> --help" for command flags.
`

// errUsage marks a bad command line; the process exits with status 2.
var errUsage = errors.New("usage")

type command func(ctx context.Context, env *environment, args []string) error

var commands = map[string]command{ //nolint:gochecknoglobals // command table
	"season":    runSeason,
	"calibrate": runCalibrate,
	"game":      runGame,
	"serve":     runServe,
}

// environment is what every command gets.
type environment struct {
	cfg    *config.Config
	log    logger.Logger
	stdout io.Writer
	stderr io.Writer
}

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	switch {
	case err == nil:
	case errors.Is(err, errUsage), errors.Is(err, pflag.ErrHelp):
		os.Exit(2)
	default:
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		_, _ = io.WriteString(stderr, usage)
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return errUsage
	}

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return err
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithWriter(stderr)); err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to initialize logging: %v\n", err)
		return err
	}
	log := logger.Get()
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	env := &environment{cfg: cfg, log: log, stdout: stdout, stderr: stderr}
	if err := cmd(ctx, env, args[1:]); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			log.Error(ctx, "command failed", logger.String("command", args[0]), logger.Error(err))
		}
		return err
	}
	return nil
}
