package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jstrand/remind/internal/constants"
)

var (
	// ErrNameRequired is returned when a reminder has a blank name
	ErrNameRequired = errors.New("reminder name is required")
)

// Reminder is a single dated reminder, optionally tied to a school class.
// Completion is only meaningful when Trackable is set.
type Reminder struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Class     string `json:"class"`
	Date      string `json:"date"` // YYYY-MM-DD
	Trackable bool   `json:"trackable"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"created_at"` // unix milliseconds, used only for stable ordering
}

// NewReminderID returns a fresh opaque reminder id
func NewReminderID() string {
	return uuid.New().String()
}

func (r *Reminder) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}

	if _, err := time.Parse(constants.DateFormat, r.Date); err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}

	if r.Completed && !r.Trackable {
		return fmt.Errorf("reminder cannot be completed when it is not trackable")
	}

	return nil
}

// DueDate parses the reminder's date in the given location
func (r *Reminder) DueDate(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(constants.DateFormat, r.Date, loc)
}
