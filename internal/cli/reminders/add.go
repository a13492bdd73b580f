package reminders

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/jstrand/remind/internal/cli"
	"github.com/jstrand/remind/internal/constants"
	"github.com/jstrand/remind/internal/models"
)

type AddCmd struct {
	Name      string `arg:"" optional:"" help:"Reminder name. Omit to use the interactive form."`
	Class     string `short:"c" help:"School class name."`
	Date      string `short:"d" help:"Due date (YYYY-MM-DD). Defaults to today."`
	Trackable bool   `short:"t" help:"Track completion for this reminder."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	coord, err := ctx.Coord()
	if err != nil {
		return err
	}

	if c.Date == "" {
		c.Date = time.Now().Format(constants.DateFormat)
	}

	if c.Name == "" {
		if err := c.runForm(coord.Classes()); err != nil {
			return err
		}
	}

	reminder := models.Reminder{
		ID:        models.NewReminderID(),
		Name:      c.Name,
		Class:     c.Class,
		Date:      c.Date,
		Trackable: c.Trackable,
	}

	if err := coord.AddReminder(reminder); err != nil {
		return err
	}

	fmt.Printf("Added reminder %q due %s.\n", reminder.Name, reminder.Date)
	return nil
}

func (c *AddCmd) runForm(classes []models.SchoolClass) error {
	classOptions := make([]huh.Option[string], 0, len(classes)+1)
	classOptions = append(classOptions, huh.NewOption("(none)", ""))
	for _, sc := range classes {
		classOptions = append(classOptions, huh.NewOption(sc.Name, sc.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&c.Name).
				Validate(func(s string) error {
					r := models.Reminder{Name: s, Date: c.Date}
					if err := r.Validate(); err == models.ErrNameRequired {
						return err
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Class").
				Options(classOptions...).
				Value(&c.Class),
			huh.NewInput().
				Title("Due date (YYYY-MM-DD)").
				Value(&c.Date).
				Validate(func(s string) error {
					_, err := time.Parse(constants.DateFormat, s)
					return err
				}),
			huh.NewConfirm().
				Title("Track completion?").
				Value(&c.Trackable),
		),
	)

	return form.Run()
}
