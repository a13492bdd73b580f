package settings

import (
	"fmt"

	"github.com/jstrand/remind/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	DarkMode *bool `help:"Enable or disable the dark theme."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	coord, err := ctx.Coord()
	if err != nil {
		return err
	}

	if c.DarkMode != nil {
		if err := coord.SetDarkMode(*c.DarkMode); err != nil {
			return err
		}
		fmt.Println("Settings updated successfully.")
		return nil
	}

	if !c.List {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	fmt.Println("Current Settings:")
	fmt.Printf("  Dark Mode:     %v\n", coord.DarkMode())
	fmt.Printf("  Selected Date: %s\n", coord.SelectedDate())
	fmt.Printf("  Classes:       %d configured\n", len(coord.Classes()))

	fmt.Println("\nNotification Rules:")
	for _, rule := range coord.Rules() {
		enabled := "enabled"
		if !rule.Enabled {
			enabled = "disabled"
		}
		fmt.Printf("  %-16s %d day(s) before at %s (%s)\n", rule.Name, rule.DaysBefore, rule.Time, enabled)
	}

	return nil
}
