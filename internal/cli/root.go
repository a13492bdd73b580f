package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jstrand/remind/internal/coordinator"
	"github.com/jstrand/remind/internal/models"
	"github.com/jstrand/remind/internal/scheduler"
	"github.com/jstrand/remind/internal/storage"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler

	coord *coordinator.Coordinator
}

// Coord loads the store and builds the coordinator on first use.
// Commands that only touch the raw store (init, keyring) never call it.
func (c *Context) Coord() (*coordinator.Coordinator, error) {
	if c.coord != nil {
		return c.coord, nil
	}

	if err := c.Store.Load(); err != nil {
		return nil, err
	}

	coord, err := coordinator.New(c.Store, c.Scheduler)
	if err != nil {
		return nil, err
	}
	c.coord = coord
	return coord, nil
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
	}
	return path
}

// RenderClass returns the class name tinted with its configured color,
// falling back to the neutral default for unknown classes.
func RenderClass(name string, classes []models.SchoolClass) string {
	if name == "" {
		return ""
	}
	color := models.ClassColor(name, classes)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(name)
}

// ReminderStatus formats the completion column for listings
func ReminderStatus(r models.Reminder) string {
	if !r.Trackable {
		return "-"
	}
	if r.Completed {
		return "done"
	}
	return "open"
}

// PrintReminders prints a reminder listing with colored class labels
func PrintReminders(reminders []models.Reminder, classes []models.SchoolClass) {
	if len(reminders) == 0 {
		fmt.Println("No reminders.")
		return
	}

	fmt.Printf("%-36s %-12s %-30s %-7s %s\n", "ID", "Date", "Name", "Status", "Class")
	fmt.Println(strings.Repeat("-", 100))

	for _, r := range reminders {
		name := r.Name
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		// Class goes last, unpadded: the ANSI color codes would throw
		// off column alignment.
		fmt.Printf("%-36s %-12s %-30s %-7s %s\n",
			r.ID, r.Date, name, ReminderStatus(r), RenderClass(r.Class, classes))
	}
}
