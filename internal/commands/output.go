package commands

import (
	"fmt"
	"io"

	"github.com/colonyops/regform/internal/core/notify"
	"github.com/colonyops/regform/internal/core/styles"
)

// textPublisher prints notifications as styled lines.
type textPublisher struct {
	w io.Writer
}

func (p textPublisher) Publish(n notify.Notification) {
	switch n.Level {
	case notify.LevelError:
		_, _ = fmt.Fprintln(p.w, styles.ErrorStyle.Render(styles.IconCross+" "+n.Message))
	case notify.LevelWarning:
		_, _ = fmt.Fprintln(p.w, styles.ConfirmMessageStyle.Render("! "+n.Message))
	default:
		_, _ = fmt.Fprintln(p.w, styles.SuccessStyle.Render(styles.IconCheck+" "+n.Message))
	}
}

func printHeader(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, styles.CommandHeaderStyle.Render(title))
	_, _ = fmt.Fprintln(w, styles.DividerStyle.Render("────────────────────────────────────────"))
}
