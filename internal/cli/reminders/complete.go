package reminders

import (
	"fmt"

	"github.com/jstrand/remind/internal/cli"
)

type CompleteCmd struct {
	ID   string `arg:"" help:"Reminder id."`
	Undo bool   `help:"Mark the reminder as not completed."`
}

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	coord, err := ctx.Coord()
	if err != nil {
		return err
	}

	reminder, err := ctx.Store.GetReminder(c.ID)
	if err != nil {
		return err
	}

	if !reminder.Trackable {
		fmt.Printf("Reminder %q does not track completion.\n", reminder.Name)
		return nil
	}

	if err := coord.SetReminderCompleted(reminder, !c.Undo); err != nil {
		return err
	}

	if c.Undo {
		fmt.Printf("Reopened %q.\n", reminder.Name)
	} else {
		fmt.Printf("Completed %q.\n", reminder.Name)
	}
	return nil
}
