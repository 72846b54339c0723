package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/regform/internal/core/config"
	"github.com/colonyops/regform/internal/core/styles"
	"github.com/colonyops/regform/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "regform config validate [options]",
				Description: "Validates the configuration file, checking the endpoint URL, team sizes, abstract rules, domains and theme.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type configReportJSON struct {
	Valid    bool                       `json:"valid"`
	Error    string                     `json:"error,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	return cmd.report(c.Root().Writer, cmd.flags.Config, cmd.flags.ConfigPath)
}

func (cmd *ConfigValidateCmd) report(w io.Writer, cfg *config.Config, path string) error {
	verr := cfg.ValidateDeep(path)
	warnings := cfg.Warnings()

	if cmd.format == "json" {
		out := configReportJSON{Valid: verr == nil, Warnings: warnings}
		if verr != nil {
			out.Error = verr.Error()
		}
		if err := iojson.WriteWith(w, os.Stderr, out); err != nil {
			return err
		}
	} else {
		for _, warn := range warnings {
			_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.ConfirmMessageStyle.Render("!"), warn.Category, warn.Message)
			if warn.Item != "" {
				_, _ = fmt.Fprintf(w, "  Item: %s\n", warn.Item)
			}
		}

		if verr == nil {
			_, _ = fmt.Fprintln(w, styles.SuccessStyle.Render(styles.IconCheck+" Configuration is valid"))
		} else {
			_, _ = fmt.Fprintln(w, styles.ErrorStyle.Render(styles.IconCross+" "+verr.Error()))
		}
	}

	if verr != nil {
		return cli.Exit("", 1)
	}
	return nil
}
