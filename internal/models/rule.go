package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/jstrand/remind/internal/constants"
)

// NotificationRule maps a reminder's due date to a trigger instant:
// DaysBefore days ahead of the due date, at Time.
type NotificationRule struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DaysBefore int    `json:"days_before"`
	Time       string `json:"time"` // HH:MM
	Enabled    bool   `json:"enabled"`
}

func (n *NotificationRule) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return fmt.Errorf("notification rule id is required")
	}

	if n.DaysBefore < 0 {
		return fmt.Errorf("days before due date must be >= 0")
	}

	if _, err := time.Parse(constants.TimeFormat, n.Time); err != nil {
		return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}

	return nil
}

// DefaultNotificationRules returns the built-in rule set used when no
// user configuration exists yet.
func DefaultNotificationRules() []NotificationRule {
	return []NotificationRule{
		{
			ID:         "two_days_before",
			Name:       "2 Days Before",
			DaysBefore: 2,
			Time:       "17:30",
			Enabled:    true,
		},
		{
			ID:         "one_day_before",
			Name:       "1 Day Before",
			DaysBefore: 1,
			Time:       "17:30",
			Enabled:    true,
		},
		{
			ID:         "day_of",
			Name:       "Day Of",
			DaysBefore: 0,
			Time:       "07:30",
			Enabled:    true,
		},
	}
}
