package system

import (
	"context"
	"errors"
	"time"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/notifier"
)

// NotifyCmd sends a test message to the tray app.
type NotifyCmd struct {
	Text  string `arg:"" optional:"" help:"Message text." default:"Notifications are working."`
	Title string `help:"Message title." default:"tally"`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	nctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := ctx.Notifier.Notify(nctx, c.Title, c.Text); err != nil {
		if errors.Is(err, notifier.ErrTrayUnavailable) {
			ctx.Println(cli.WarningStyle.Render("Tray app is not running; messages will be printed instead."))
			return nil
		}
		return err
	}
	ctx.Println("✓ Notification sent")
	return nil
}
