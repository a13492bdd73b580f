package reminders

import (
	"fmt"
	"time"

	"github.com/jstrand/remind/internal/cli"
	"github.com/jstrand/remind/internal/constants"
)

type ListCmd struct {
	Date string `short:"d" help:"Only show reminders due on this date (YYYY-MM-DD)."`
}

func (c *ListCmd) Validate() error {
	if c.Date != "" {
		if _, err := time.Parse(constants.DateFormat, c.Date); err != nil {
			return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
		}
	}
	return nil
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	coord, err := ctx.Coord()
	if err != nil {
		return err
	}

	reminders := coord.Reminders()
	if c.Date != "" {
		reminders = coord.RemindersForDate(c.Date)
	}

	cli.PrintReminders(reminders, coord.Classes())
	return nil
}

// DayCmd selects a calendar date (persisted so the view is restored on
// the next start) and shows its reminders.
type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to select (YYYY-MM-DD). Defaults to today."`
}

func (c *DayCmd) Validate() error {
	if c.Date != "" {
		if _, err := time.Parse(constants.DateFormat, c.Date); err != nil {
			return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
		}
	}
	return nil
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	coord, err := ctx.Coord()
	if err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = time.Now().Format(constants.DateFormat)
	}

	if err := coord.SelectDate(date); err != nil {
		return err
	}

	fmt.Printf("Reminders for %s:\n", date)
	cli.PrintReminders(coord.RemindersForSelectedDate(), coord.Classes())
	return nil
}
