package responses

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/nudge/internal/cli"
	"github.com/julianstephens/nudge/internal/models"
	"github.com/julianstephens/nudge/internal/recorder"
	"github.com/julianstephens/nudge/internal/stats"
	"github.com/julianstephens/nudge/internal/utils"
)

type RespondCmd struct {
	Kind string `arg:"" help:"Response to record (done|not_done)."`
}

func (c *RespondCmd) Validate() error {
	_, err := models.ParseResponseKind(strings.ToLower(c.Kind))
	return err
}

func (c *RespondCmd) Run(ctx *cli.Context) error {
	kind, err := models.ParseResponseKind(strings.ToLower(c.Kind))
	if err != nil {
		return err
	}
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	clock, err := ctx.Clock(settings)
	if err != nil {
		return err
	}

	now := clock.Now()
	if err := recorder.New(ctx.Store).Record(kind, now); err != nil {
		return fmt.Errorf("failed to record response: %w", err)
	}

	s := stats.Load(ctx.Store, now)
	fmt.Printf("Recorded %s. This month: %d done, %d not done.\n", kind, s.DoneCount, s.NotDoneCount)
	return nil
}

type StatsCmd struct {
	Month string `short:"m" help:"Month to show (YYYY-MM). Defaults to the current month."`
	Daily bool   `help:"Also show a per-day breakdown."`
	Width int    `help:"Width of the bars." default:"40"`
}

func (c *StatsCmd) Validate() error {
	if c.Month == "" {
		return nil
	}
	if _, err := utils.ParseMonthInLocation(c.Month, time.UTC); err != nil {
		return err
	}
	return nil
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	clock, err := ctx.Clock(settings)
	if err != nil {
		return err
	}

	month := clock.Now()
	if c.Month != "" {
		month, err = utils.ParseMonthInLocation(c.Month, month.Location())
		if err != nil {
			return err
		}
	}

	log := recorder.New(ctx.Store).Load()
	fmt.Println(stats.Render(stats.Monthly(log, month), month, c.Width))
	if c.Daily {
		fmt.Println()
		fmt.Println(stats.RenderDaily(stats.Daily(log, month)))
	}
	return nil
}
