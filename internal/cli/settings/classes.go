package settings

import (
	"fmt"

	"github.com/jstrand/remind/internal/cli"
	"github.com/jstrand/remind/internal/models"
)

type ClassesCmd struct {
	List   ClassListCmd   `cmd:"" default:"1" help:"List configured classes."`
	Add    ClassAddCmd    `cmd:"" help:"Add a class."`
	Remove ClassRemoveCmd `cmd:"" help:"Remove a class."`
}

type ClassListCmd struct{}

func (c *ClassListCmd) Run(ctx *cli.Context) error {
	coord, err := ctx.Coord()
	if err != nil {
		return err
	}

	classes := coord.Classes()
	if len(classes) == 0 {
		fmt.Println("No classes configured.")
		return nil
	}

	for _, sc := range classes {
		fmt.Printf("  %s (%s)\n", cli.RenderClass(sc.Name, classes), sc.Color)
	}
	return nil
}

type ClassAddCmd struct {
	Name  string `arg:"" help:"Class name."`
	Color string `help:"Display color (#RRGGBB)." default:"#9E9E9E"`
}

func (c *ClassAddCmd) Run(ctx *cli.Context) error {
	coord, err := ctx.Coord()
	if err != nil {
		return err
	}

	class := models.SchoolClass{Name: c.Name, Color: c.Color}
	if err := class.Validate(); err != nil {
		return err
	}

	classes := coord.Classes()
	for _, sc := range classes {
		if sc.Name == c.Name {
			return fmt.Errorf("class %q already exists", c.Name)
		}
	}

	if err := coord.UpdateClasses(append(classes, class)); err != nil {
		return err
	}

	fmt.Printf("Added class %q.\n", c.Name)
	return nil
}

type ClassRemoveCmd struct {
	Name string `arg:"" help:"Class name."`
}

func (c *ClassRemoveCmd) Run(ctx *cli.Context) error {
	coord, err := ctx.Coord()
	if err != nil {
		return err
	}

	classes := coord.Classes()
	kept := classes[:0:0]
	found := false
	for _, sc := range classes {
		if sc.Name == c.Name {
			found = true
			continue
		}
		kept = append(kept, sc)
	}
	if !found {
		return fmt.Errorf("class %q not found", c.Name)
	}

	// Reminders referencing the class keep their label; they just
	// render with the default color from now on.
	if err := coord.UpdateClasses(kept); err != nil {
		return err
	}

	fmt.Printf("Removed class %q.\n", c.Name)
	return nil
}
