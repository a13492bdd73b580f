package reminders

import (
	"fmt"

	"github.com/jstrand/remind/internal/cli"
)

type DeleteCmd struct {
	ID string `arg:"" help:"Reminder id."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	coord, err := ctx.Coord()
	if err != nil {
		return err
	}

	reminder, err := ctx.Store.GetReminder(c.ID)
	if err != nil {
		return err
	}

	if err := coord.DeleteReminder(reminder); err != nil {
		return err
	}

	fmt.Printf("Deleted reminder %q.\n", reminder.Name)
	return nil
}
