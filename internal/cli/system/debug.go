package system

import (
	"fmt"
	"sort"
	"time"

	"github.com/jstrand/remind/internal/cli"
	"github.com/jstrand/remind/internal/scheduler"
)

// DebugCmd prints the trigger instants the current data implies,
// without registering any timers. Useful for checking why a
// notification did or did not fire.
type DebugCmd struct{}

type plannedTrigger struct {
	at       time.Time
	reminder string
	rule     string
	past     bool
}

func (c *DebugCmd) Run(ctx *cli.Context) error {
	coord, err := ctx.Coord()
	if err != nil {
		return err
	}

	now := time.Now()
	var planned []plannedTrigger

	for _, r := range coord.Reminders() {
		for _, rule := range coord.Rules() {
			if !rule.Enabled {
				continue
			}
			at, err := scheduler.TriggerAt(r.Date, rule, time.Local)
			if err != nil {
				fmt.Printf("  %s / %s: %v\n", r.Name, rule.ID, err)
				continue
			}
			planned = append(planned, plannedTrigger{
				at:       at,
				reminder: r.Name,
				rule:     rule.ID,
				past:     !at.After(now),
			})
		}
	}

	if len(planned) == 0 {
		fmt.Println("No triggers implied by current reminders and rules.")
		return nil
	}

	sort.Slice(planned, func(i, j int) bool { return planned[i].at.Before(planned[j].at) })

	fmt.Printf("Now: %s\n\n", now.Format("2006-01-02 15:04"))
	for _, p := range planned {
		marker := " "
		if p.past {
			marker = "x" // past instant, would be skipped
		}
		fmt.Printf("  [%s] %s  %-30s rule=%s\n", marker, p.at.Format("2006-01-02 15:04"), p.reminder, p.rule)
	}

	return nil
}
