package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jstrand/remind/internal/constants"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// SchoolClass is a reminder category with a display color. Classes are
// matched by name equality; reminders hold the name, not a reference, so
// deleting a class does not cascade.
type SchoolClass struct {
	Name  string `json:"name"`
	Color string `json:"color"` // hex RGB, e.g. "#FF6B6B"
}

func (c *SchoolClass) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("class name is required")
	}

	if !hexColorRe.MatchString(c.Color) {
		return fmt.Errorf("invalid class color %q (expected #RRGGBB)", c.Color)
	}

	return nil
}

// ClassColor returns the configured color for the named class, falling
// back to a neutral default when no class matches.
func ClassColor(name string, classes []SchoolClass) string {
	for _, c := range classes {
		if c.Name == name {
			return c.Color
		}
	}
	return constants.DefaultClassColor
}

// DefaultClasses returns the built-in class list used when no user
// configuration exists yet.
func DefaultClasses() []SchoolClass {
	return []SchoolClass{
		{Name: "Physics", Color: "#FF6B6B"},
		{Name: "Web App Dev", Color: "#4ECDC4"},
		{Name: "Mobile App Dev", Color: "#45B7D1"},
		{Name: "Computer Vision", Color: "#FFA07A"},
		{Name: "Artificial Intelligence", Color: "#98D8C8"},
		{Name: "US History", Color: "#F7DC6F"},
		{Name: "Calculus", Color: "#BB8FCE"},
		{Name: "Extracurricular", Color: "#85C1E9"},
	}
}
