// Package scheduler translates (reminder, rule) pairs into one-shot
// wall-clock timers that fire desktop notifications. The schedule is
// never persisted: it is recomputed from the stores, so repeating a
// scheduling pass is always safe.
package scheduler

import (
	"fmt"
	"hash/fnv"
	"io"
	"time"

	"github.com/jstrand/remind/internal/constants"
	"github.com/jstrand/remind/internal/logger"
	"github.com/jstrand/remind/internal/models"
	"github.com/jstrand/remind/internal/notify"
)

// Payload is the self-contained data attached to a timer at schedule
// time. Firing reconstructs the notification from it alone, with no
// store read.
type Payload struct {
	ReminderID string
	Name       string
	Class      string
	Date       string // YYYY-MM-DD
	RuleID     string
	RuleName   string
	DaysBefore int
}

type Scheduler struct {
	registry *Registry
	notifier notify.Notifier
	now      func() time.Time
	loc      *time.Location
}

func New(n notify.Notifier) *Scheduler {
	return NewWithClock(n, time.Now)
}

func NewWithClock(n notify.Notifier, now func() time.Time) *Scheduler {
	return &Scheduler{
		registry: NewRegistry(now),
		notifier: n,
		now:      now,
		loc:      time.Local,
	}
}

// Key derives the stable integer identifier for a (reminder, rule)
// pair. Schedule, cancel, and the displayed notification all use the
// same formula, so the three always agree on identity.
func Key(reminderID, ruleID string) int {
	h := fnv.New32a()
	io.WriteString(h, reminderID)
	io.WriteString(h, ruleID)
	return int(h.Sum32())
}

// TriggerAt computes the trigger instant for a reminder date under a
// rule: DaysBefore days ahead of the due date, at the rule's
// time-of-day, in loc.
func TriggerAt(date string, rule models.NotificationRule, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(constants.DateFormat, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reminder date %q: %w", date, err)
	}

	tod, err := time.Parse(constants.TimeFormat, rule.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid rule time %q: %w", rule.Time, err)
	}

	day = day.AddDate(0, 0, -rule.DaysBefore)
	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, loc), nil
}

// ScheduleForReminder registers one timer per enabled rule whose
// trigger instant is strictly in the future. Past instants are skipped;
// the system never catches up missed notifications. Per-rule failures
// are logged and do not abort the remaining rules.
func (s *Scheduler) ScheduleForReminder(r models.Reminder, rules []models.NotificationRule) {
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}

		at, err := TriggerAt(r.Date, rule, s.loc)
		if err != nil {
			logger.Warn("Skipping notification with invalid trigger", "reminder", r.ID, "rule", rule.ID, "error", err)
			continue
		}

		if !at.After(s.now()) {
			continue
		}

		payload := Payload{
			ReminderID: r.ID,
			Name:       r.Name,
			Class:      r.Class,
			Date:       r.Date,
			RuleID:     rule.ID,
			RuleName:   rule.Name,
			DaysBefore: rule.DaysBefore,
		}

		key := Key(r.ID, rule.ID)
		s.registry.Schedule(key, r.ID, at, func() {
			s.fire(key, payload)
		})
		logger.Debug("Scheduled notification", "reminder", r.Name, "rule", rule.ID, "at", at)
	}
}

// CancelForReminder cancels every timer for the reminder. Keys are
// recomputed from the given rule set, and the registry's reminder index
// catches timers whose rule has since been deleted or renamed.
// Cancelling a pair with no live timer is a silent no-op.
func (s *Scheduler) CancelForReminder(reminderID string, rules []models.NotificationRule) {
	for _, rule := range rules {
		s.registry.Cancel(Key(reminderID, rule.ID))
	}
	s.registry.CancelReminder(reminderID)
}

// Registry exposes the live timer set for the daemon and diagnostics.
func (s *Scheduler) Registry() *Registry {
	return s.registry
}

// Stop cancels all live timers.
func (s *Scheduler) Stop() {
	s.registry.Stop()
}

func (s *Scheduler) fire(key int, p Payload) {
	if err := s.notifier.Notify(key, Title(p), Body(p)); err != nil {
		logger.Error("Failed to display notification", "reminder", p.ReminderID, "rule", p.RuleID, "error", err)
	}
}

// Title formats the notification title from the rule's days-before value.
func Title(p Payload) string {
	switch p.DaysBefore {
	case 0:
		return "Today: " + p.Name
	case 1:
		return "Tomorrow: " + p.Name
	default:
		return fmt.Sprintf("In %d days: %s", p.DaysBefore, p.Name)
	}
}

// Body formats the notification body as "{class} • {date}". A payload
// date that no longer parses is shown raw rather than dropping the
// notification.
func Body(p Payload) string {
	d, err := time.Parse(constants.DateFormat, p.Date)
	if err != nil {
		logger.Warn("Malformed date in notification payload", "reminder", p.ReminderID, "date", p.Date)
		return fmt.Sprintf("%s • %s", p.Class, p.Date)
	}
	return fmt.Sprintf("%s • %s", p.Class, d.Format(constants.DisplayDateFormat))
}
