package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/regform/internal/commands"
	"github.com/colonyops/regform/internal/core/config"
	"github.com/colonyops/regform/internal/core/logging"
	"github.com/colonyops/regform/internal/core/styles"
	"github.com/colonyops/regform/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() falls back
	// to runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	// A .env next to the binary's working directory seeds REGFORM_* variables.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	var logCloser func()

	flags := &commands.Flags{}
	tuiCmd := commands.NewTuiCmd(flags)

	app := &cli.Command{
		Name:      "regform",
		Usage:     "Register a team and submit its abstract",
		UsageText: "regform [global options] command [command options]",
		Description: `regform collects a team registration: team details, one field group per
member and an abstract file, validated as you type.

Run 'regform' with no arguments to open the interactive form.
Run 'regform submit -f registration.json' to submit without the form.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("REGFORM_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (the interactive form always logs to a file)",
				Sources:     cli.EnvVars("REGFORM_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("REGFORM_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "endpoint",
				Usage:       "submission URL (overrides the config file)",
				Sources:     cli.EnvVars("REGFORM_ENDPOINT"),
				Destination: &flags.Endpoint,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// The form owns the screen, so it never logs to the terminal.
			logFile := flags.LogFile
			if logFile == "" && c.Args().Len() == 0 {
				logFile = commands.DefaultLogFile()
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.Endpoint != "" {
				cfg.Endpoint = flags.Endpoint
			}
			flags.Config = cfg

			// Apply configured theme; an unknown name keeps the default and
			// is reported by 'config validate'.
			if palette, ok := styles.GetPalette(cfg.TUI.Theme); ok {
				styles.SetTheme(palette)
			}

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewSubmitCmd(flags).Register(app)
	app = commands.NewCheckFileCmd(flags).Register(app)
	app = commands.NewRosterCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'regform --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		var ec cli.ExitCoder
		if errors.As(err, &ec) {
			exitCode = ec.ExitCode()
		} else {
			fmt.Fprintln(os.Stderr, err.Error())
			exitCode = 1
		}
	}

	os.Exit(exitCode)
}
