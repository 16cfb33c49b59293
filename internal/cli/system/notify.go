package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/nudge/internal/cli"
	"github.com/julianstephens/nudge/internal/constants"
	"github.com/julianstephens/nudge/internal/notifier"
)

// sendFunc delivers a notification; tests replace it.
var sendFunc = func(ctx context.Context, text string) error {
	return notifier.NewTray().Send(ctx, text)
}

type NotifyCmd struct {
	Message string `short:"m" help:"Notification text." default:"nudge is running"`
	DryRun  bool   `help:"Print the notification to stdout instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	if !settings.NotificationsEnabled {
		fmt.Println("Notifications are disabled in settings.")
		return nil
	}

	if c.DryRun {
		fmt.Println("[DryRun] " + c.Message)
		return nil
	}

	sendCtx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()
	if err := sendFunc(sendCtx, c.Message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	fmt.Println("✓ Notification sent")
	return nil
}
