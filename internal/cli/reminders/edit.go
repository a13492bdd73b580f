package reminders

import (
	"fmt"
	"time"

	"github.com/jstrand/remind/internal/cli"
	"github.com/jstrand/remind/internal/constants"
)

type EditCmd struct {
	ID        string  `arg:"" help:"Reminder id."`
	Name      *string `help:"New reminder name."`
	Class     *string `help:"New school class name."`
	Date      *string `help:"New due date (YYYY-MM-DD)."`
	Trackable *bool   `help:"Whether completion is tracked."`
}

func (c *EditCmd) Validate() error {
	if c.Date != nil {
		if _, err := time.Parse(constants.DateFormat, *c.Date); err != nil {
			return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
		}
	}
	return nil
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	coord, err := ctx.Coord()
	if err != nil {
		return err
	}

	reminder, err := ctx.Store.GetReminder(c.ID)
	if err != nil {
		return err
	}

	if c.Name != nil {
		reminder.Name = *c.Name
	}
	if c.Class != nil {
		reminder.Class = *c.Class
	}
	if c.Date != nil {
		reminder.Date = *c.Date
	}
	if c.Trackable != nil {
		reminder.Trackable = *c.Trackable
		if !reminder.Trackable {
			reminder.Completed = false
		}
	}

	if err := coord.UpdateReminder(reminder); err != nil {
		return err
	}

	fmt.Printf("Updated reminder %q.\n", reminder.Name)
	return nil
}
