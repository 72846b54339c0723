package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/regform/internal/core/attachment"
	"github.com/colonyops/regform/internal/core/registration"
	"github.com/colonyops/regform/internal/core/styles"
	"github.com/colonyops/regform/pkg/iojson"
)

type CheckFileCmd struct {
	flags *Flags
	json  bool
}

// NewCheckFileCmd creates a new check-file command.
func NewCheckFileCmd(flags *Flags) *CheckFileCmd {
	return &CheckFileCmd{flags: flags}
}

// Register adds the check-file command to the application.
func (cmd *CheckFileCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "check-file",
		Usage:       "Check whether a file is accepted as the abstract",
		UsageText:   "regform check-file [--json] <path>",
		Description: "Sniffs the file type from its content and applies the configured type and size rules.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the result as JSON",
				Destination: &cmd.json,
			},
		},
		Action: cmd.run,
	})

	return app
}

type fileCheckJSON struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
}

func (cmd *CheckFileCmd) run(_ context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one path, got %d", c.Args().Len())
	}
	return cmd.check(c.Root().Writer, c.Args().First())
}

func (cmd *CheckFileCmd) check(w io.Writer, path string) error {
	file, err := attachment.Load(path)
	if err != nil {
		return fmt.Errorf("load file: %w", err)
	}

	status := registration.CheckFile(&file, cmd.flags.Config.FormSettings().File)

	if cmd.json {
		err := iojson.WriteWith(w, os.Stderr, fileCheckJSON{
			Name:     file.Name,
			MimeType: file.MimeType,
			Size:     file.Size,
			OK:       status.OK,
			Error:    status.Error,
		})
		if err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(w, attachment.Describe(file))
		if status.OK {
			_, _ = fmt.Fprintln(w, styles.SuccessStyle.Render(styles.IconCheck+" accepted"))
		} else {
			_, _ = fmt.Fprintln(w, styles.ErrorStyle.Render(styles.IconCross+" "+status.Error))
		}
	}

	if !status.OK {
		return cli.Exit("", 1)
	}
	return nil
}
