package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/regform/internal/core/registration"
	"github.com/colonyops/regform/internal/core/styles"
	"github.com/colonyops/regform/pkg/iojson"
)

type RosterCmd struct {
	flags *Flags
	json  bool
}

// NewRosterCmd creates a new roster command.
func NewRosterCmd(flags *Flags) *RosterCmd {
	return &RosterCmd{flags: flags}
}

// Register adds the roster command to the application.
func (cmd *RosterCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "roster",
		Usage:       "Show the fields a team of the given size fills in",
		UsageText:   "regform roster [--json] [size]",
		Description: "Prints the team fields and one field group per member, with the rules each field must pass. The size defaults to the configured default.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the roster as JSON",
				Destination: &cmd.json,
			},
		},
		Action: cmd.run,
	})

	return app
}

type fieldJSON struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Kind      string `json:"kind"`
	Required  bool   `json:"required"`
	MinLength int    `json:"min_length,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
}

type groupJSON struct {
	Label  string      `json:"label"`
	Fields []fieldJSON `json:"fields"`
}

type rosterJSON struct {
	TeamSize int         `json:"team_size"`
	Team     []fieldJSON `json:"team"`
	Members  []groupJSON `json:"members"`
}

func (cmd *RosterCmd) run(_ context.Context, c *cli.Command) error {
	sizes := cmd.flags.Config.FormSettings().Sizes

	size := sizes.Default
	if c.Args().Present() {
		n, err := strconv.Atoi(c.Args().First())
		if err != nil {
			return fmt.Errorf("parse team size %q: %w", c.Args().First(), err)
		}
		size = n
	}

	if _, err := sizes.Resolve(size); err != nil {
		return fmt.Errorf("team size %d: %w (allowed: %s)", size, err, strings.Join(sizes.Labels(), ", "))
	}

	return cmd.print(c.Root().Writer, size)
}

func (cmd *RosterCmd) print(w io.Writer, size int) error {
	roster := registration.BuildRoster(size)

	if cmd.json {
		out := rosterJSON{TeamSize: size, Team: toFieldJSON(registration.TeamConstraints())}
		for _, g := range roster {
			out.Members = append(out.Members, groupJSON{Label: g.Label, Fields: toFieldJSON(g.Constraints())})
		}
		return iojson.WriteWith(w, os.Stderr, out)
	}

	printHeader(w, "Team")
	printFields(w, registration.TeamConstraints())
	for _, g := range roster {
		_, _ = fmt.Fprintln(w)
		printHeader(w, g.Label)
		printFields(w, g.Constraints())
	}
	return nil
}

func toFieldJSON(cs []registration.FieldConstraint) []fieldJSON {
	out := make([]fieldJSON, 0, len(cs))
	for _, c := range cs {
		f := fieldJSON{
			ID:        c.ID,
			Label:     c.Label,
			Kind:      string(c.Kind),
			Required:  c.Required,
			MinLength: c.MinLength,
		}
		if c.Pattern != nil {
			f.Pattern = c.Pattern.String()
		}
		out = append(out, f)
	}
	return out
}

func printFields(w io.Writer, cs []registration.FieldConstraint) {
	for _, c := range cs {
		_, _ = fmt.Fprintf(w, "  %-10s %-20s %s\n", c.ID, c.Label, styles.TextMutedStyle.Render(describeRules(c)))
	}
}

func describeRules(c registration.FieldConstraint) string {
	var rules []string
	if c.Required {
		rules = append(rules, "required")
	}
	if c.MinLength > 0 {
		rules = append(rules, fmt.Sprintf("min %d chars", c.MinLength))
	}
	switch c.Kind {
	case registration.KindEmail:
		rules = append(rules, "email address")
	case registration.KindPhone:
		rules = append(rules, "10 digits")
	}
	return strings.Join(rules, ", ")
}
