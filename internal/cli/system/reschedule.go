package system

import (
	"fmt"
	"sort"

	"github.com/jstrand/remind/internal/cli"
)

// RescheduleCmd runs the boot-recovery pass once: every persisted
// reminder is rescheduled under the current rule set. The daemon runs
// the same pass automatically; this command exists for diagnostics and
// scripted recovery.
type RescheduleCmd struct {
	Show bool `help:"Print the resulting trigger schedule."`
}

func (c *RescheduleCmd) Run(ctx *cli.Context) error {
	coord, err := ctx.Coord()
	if err != nil {
		return err
	}

	n, err := coord.RescheduleAll()
	if err != nil {
		return err
	}

	timers := ctx.Scheduler.Registry().Snapshot()
	fmt.Printf("Rescheduled %d reminder(s); %d future trigger(s).\n", n, len(timers))

	if c.Show {
		sort.Slice(timers, func(i, j int) bool { return timers[i].At.Before(timers[j].At) })
		for _, t := range timers {
			fmt.Printf("  %s  reminder=%s key=%d\n", t.At.Format("2006-01-02 15:04"), t.ReminderID, t.Key)
		}
	}

	return nil
}
