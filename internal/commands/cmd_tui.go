package commands

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/regform/internal/core/logging"
	"github.com/colonyops/regform/internal/core/submit"
	"github.com/colonyops/regform/internal/tui"
)

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config
	if cfg.Endpoint == "" {
		return errNoEndpoint
	}

	client := submit.New(cfg.Endpoint, cfg.Submit.Timeout, logging.Component("submit"))

	m := tui.New(tui.Options{
		Settings: cfg.FormSettings(),
		Domains:  cfg.Domains,
		Sender:   client,
		Endpoint: client.Endpoint(),
		Logger:   logging.Component("tui"),
	})

	log.Info().Str("endpoint", client.Endpoint()).Msg("starting registration form")

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
