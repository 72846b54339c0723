package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/regform/internal/core/attachment"
	"github.com/colonyops/regform/internal/core/logging"
	"github.com/colonyops/regform/internal/core/registration"
	"github.com/colonyops/regform/internal/core/submit"
	"github.com/colonyops/regform/pkg/iojson"
)

var errNoEndpoint = errors.New("no endpoint configured; pass --endpoint or set endpoint in the config file")

type SubmitCmd struct {
	flags    *Flags
	reader   iojson.FileReader[registration.Draft]
	abstract string
	json     bool

	// sender overrides the HTTP client in tests.
	sender registration.Sender
}

// NewSubmitCmd creates a new submit command.
func NewSubmitCmd(flags *Flags) *SubmitCmd {
	return &SubmitCmd{
		flags:  flags,
		reader: iojson.FileReader[registration.Draft]{Strict: true},
	}
}

// Register adds the submit command to the application.
func (cmd *SubmitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "submit",
		Usage:     "Validate and submit a registration without the form",
		UsageText: "regform submit [-f registration.json] [--abstract path]",
		Description: `Reads a registration as JSON from a file or stdin, applies the same
rules as the interactive form and submits it.

Example input:

  {
    "teamName": "Null Pointers",
    "teamSize": 2,
    "problemId": "PS-07",
    "domain": "AI/ML",
    "members": [
      {"name": "Ada", "email": "ada@example.org", "phone": "5551234567", "college": "MIT"},
      {"name": "Alan", "email": "alan@example.org", "phone": "5557654321", "college": "Cambridge"}
    ],
    "abstract": "./abstract.pdf"
  }`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
			&cli.StringFlag{
				Name:        "abstract",
				Aliases:     []string{"a"},
				Usage:       "path to the abstract file (overrides the document's abstract)",
				Destination: &cmd.abstract,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the receipt as JSON",
				Destination: &cmd.json,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SubmitCmd) run(ctx context.Context, c *cli.Command) error {
	draft, err := cmd.reader.Read()
	if err != nil {
		return fmt.Errorf("read registration: %w", err)
	}
	return cmd.submit(ctx, c.Root().Writer, draft)
}

func (cmd *SubmitCmd) submit(ctx context.Context, w io.Writer, draft registration.Draft) error {
	cfg := cmd.flags.Config
	settings := cfg.FormSettings()

	if draft.TeamSize != 0 {
		if _, err := settings.Sizes.Resolve(draft.TeamSize); err != nil {
			return fmt.Errorf("team size %d: %w", draft.TeamSize, err)
		}
	}

	domain, err := registration.ResolveOption(draft.Domain, cfg.Domains)
	if err != nil {
		return fmt.Errorf("resolve domain: %w", err)
	}
	draft.Domain = domain

	path := draft.Abstract
	if cmd.abstract != "" {
		path = cmd.abstract
	}

	sender := cmd.sender
	if sender == nil {
		if cfg.Endpoint == "" {
			return errNoEndpoint
		}
		sender = submit.New(cfg.Endpoint, cfg.Submit.Timeout, logging.Component("submit"))
	}

	session := registration.NewSession(settings, sender, textPublisher{w: w}, log.Logger)

	size := settings.Sizes.Default
	if draft.TeamSize != 0 {
		size = draft.TeamSize
	}
	if extra := len(draft.Members) - size; extra > 0 {
		log.Warn().Int("extra", extra).Int("team_size", size).Msg("ignoring members beyond the team size")
	}

	for _, ev := range draft.Events() {
		if err := session.Dispatch(ctx, ev); err != nil {
			return err
		}
	}

	if path != "" {
		file, err := attachment.Load(path)
		if err != nil {
			return fmt.Errorf("load abstract: %w", err)
		}
		if err := session.Dispatch(ctx, registration.FileSelected{File: file, Source: registration.SourcePicker}); err != nil {
			return err
		}
	}

	state := session.State()
	if !state.Valid() {
		printProblems(w, state)
		return cli.Exit("", 1)
	}

	receipt, err := session.Submit(ctx)
	if err != nil {
		// The failure was already published.
		log.Debug().Err(err).Msg("submit")
		return cli.Exit("", 1)
	}

	if cmd.json {
		out := receiptJSON{ID: receipt.ID, Status: receipt.StatusCode}
		if len(receipt.Body) > 0 {
			out.Response = json.RawMessage(receipt.Body)
		}
		return iojson.WriteWith(w, os.Stderr, out)
	}
	_, _ = fmt.Fprintf(w, "submission id: %s (HTTP %d)\n", receipt.ID, receipt.StatusCode)
	return nil
}

type receiptJSON struct {
	ID       string          `json:"id"`
	Status   int             `json:"status"`
	Response json.RawMessage `json:"response,omitempty"`
}

// printProblems lists every failing field in form order, then the file.
func printProblems(w io.Writer, s registration.FormState) {
	printHeader(w, "Registration is incomplete")
	for _, c := range s.Constraints() {
		if msg := s.Result.Error(c.ID); msg != "" {
			_, _ = fmt.Fprintf(w, "  %-10s %s\n", c.ID, msg)
		}
	}
	if msg := s.Result.File.Error; msg != "" {
		_, _ = fmt.Fprintf(w, "  %-10s %s\n", "abstract", msg)
	}
}
