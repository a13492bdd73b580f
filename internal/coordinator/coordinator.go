// Package coordinator sequences store writes with scheduler calls so
// the two stay consistent, and exposes the derived views the
// presentation layer renders. Persistence always happens before
// scheduling, so a scheduling failure can leave a reminder without
// notifications (logged, repaired by the next reschedule pass) but
// never the reverse.
package coordinator

import (
	"fmt"
	"sync"
	"time"

	"github.com/jstrand/remind/internal/constants"
	"github.com/jstrand/remind/internal/logger"
	"github.com/jstrand/remind/internal/models"
	"github.com/jstrand/remind/internal/scheduler"
	"github.com/jstrand/remind/internal/storage"
)

// Snapshot is the state published to subscribers after every committed
// mutation.
type Snapshot struct {
	Reminders    []models.Reminder
	SelectedDate string
	Classes      []models.SchoolClass
	Rules        []models.NotificationRule
	DarkMode     bool
}

type Coordinator struct {
	store storage.Provider
	sched *scheduler.Scheduler
	now   func() time.Time

	mu           sync.RWMutex
	reminders    []models.Reminder
	classes      []models.SchoolClass
	rules        []models.NotificationRule
	darkMode     bool
	selectedDate string
	subs         map[int]chan Snapshot
	nextSubID    int
}

func New(store storage.Provider, sched *scheduler.Scheduler) (*Coordinator, error) {
	return NewWithClock(store, sched, time.Now)
}

func NewWithClock(store storage.Provider, sched *scheduler.Scheduler, now func() time.Time) (*Coordinator, error) {
	c := &Coordinator{
		store: store,
		sched: sched,
		now:   now,
		subs:  make(map[int]chan Snapshot),
	}

	settings, err := store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	c.darkMode = settings.DarkMode
	c.selectedDate = c.normalizeDate(settings.SelectedDate)

	if c.classes, err = store.GetClasses(); err != nil {
		return nil, fmt.Errorf("failed to load classes: %w", err)
	}
	if c.rules, err = store.GetNotificationRules(); err != nil {
		return nil, fmt.Errorf("failed to load notification rules: %w", err)
	}
	if c.reminders, err = store.GetAllReminders(); err != nil {
		return nil, fmt.Errorf("failed to load reminders: %w", err)
	}

	return c, nil
}

// normalizeDate falls back to today when the persisted date is missing
// or no longer parses.
func (c *Coordinator) normalizeDate(date string) string {
	if date != "" {
		if _, err := time.Parse(constants.DateFormat, date); err == nil {
			return date
		}
		logger.Warn("Malformed persisted date, falling back to today", "date", date)
	}
	return c.now().Format(constants.DateFormat)
}

// AddReminder validates and persists the reminder, then schedules its
// notifications under the current rule set.
func (c *Coordinator) AddReminder(r models.Reminder) error {
	if err := r.Validate(); err != nil {
		logger.Warn("Rejected reminder", "name", r.Name, "error", err)
		return err
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = c.now().UnixMilli()
	}

	if err := c.store.AddReminder(r); err != nil {
		return fmt.Errorf("failed to save reminder: %w", err)
	}

	rules := c.refresh()
	c.sched.ScheduleForReminder(r, rules)
	logger.Info("Added reminder", "id", r.ID, "name", r.Name)
	return nil
}

// UpdateReminder cancels the reminder's existing notifications,
// persists the replacement record, and re-derives the full schedule
// from it. No diffing against the previous state.
func (c *Coordinator) UpdateReminder(r models.Reminder) error {
	if err := r.Validate(); err != nil {
		logger.Warn("Rejected reminder update", "name", r.Name, "error", err)
		return err
	}

	c.mu.RLock()
	rules := c.rules
	c.mu.RUnlock()

	c.sched.CancelForReminder(r.ID, rules)

	if err := c.store.UpdateReminder(r); err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}

	rules = c.refresh()
	c.sched.ScheduleForReminder(r, rules)
	logger.Info("Updated reminder", "id", r.ID, "name", r.Name)
	return nil
}

// DeleteReminder cancels notifications first, then deletes the record.
func (c *Coordinator) DeleteReminder(r models.Reminder) error {
	c.mu.RLock()
	rules := c.rules
	c.mu.RUnlock()

	c.sched.CancelForReminder(r.ID, rules)

	if err := c.store.DeleteReminder(r.ID); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	c.refresh()
	logger.Info("Deleted reminder", "id", r.ID, "name", r.Name)
	return nil
}

// SetReminderCompleted flips the completion flag. A no-op for
// non-trackable reminders. Delegates to UpdateReminder, so the schedule
// is fully re-derived even though its content does not depend on
// completion; an accepted inefficiency.
func (c *Coordinator) SetReminderCompleted(r models.Reminder, completed bool) error {
	if !r.Trackable {
		return nil
	}
	r.Completed = completed
	return c.UpdateReminder(r)
}

// UpdateNotificationRules persists the new rule set and performs a full
// reschedule pass over every known reminder. O(reminders x rules) on
// every settings change.
func (c *Coordinator) UpdateNotificationRules(newRules []models.NotificationRule) error {
	for i := range newRules {
		if err := newRules[i].Validate(); err != nil {
			return err
		}
	}

	c.mu.RLock()
	oldRules := c.rules
	c.mu.RUnlock()

	if err := c.store.SaveNotificationRules(newRules); err != nil {
		return fmt.Errorf("failed to save notification rules: %w", err)
	}

	c.refresh()

	c.mu.RLock()
	current := append([]models.Reminder(nil), c.reminders...)
	c.mu.RUnlock()

	for _, r := range current {
		c.sched.CancelForReminder(r.ID, oldRules)
		c.sched.ScheduleForReminder(r, newRules)
	}

	logger.Info("Updated notification rules", "count", len(newRules))
	return nil
}

// UpdateClasses persists the class list. Reminders referencing a
// removed class keep their label and render with the default color.
func (c *Coordinator) UpdateClasses(classes []models.SchoolClass) error {
	for i := range classes {
		if err := classes[i].Validate(); err != nil {
			return err
		}
	}

	if err := c.store.SaveClasses(classes); err != nil {
		return fmt.Errorf("failed to save classes: %w", err)
	}

	c.refresh()
	return nil
}

// SetDarkMode persists the theme preference.
func (c *Coordinator) SetDarkMode(enabled bool) error {
	c.mu.RLock()
	settings := models.Settings{DarkMode: enabled, SelectedDate: c.selectedDate}
	c.mu.RUnlock()

	if err := c.store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	c.refresh()
	return nil
}

// SelectDate persists the selected calendar date so the view can be
// restored after restart, and updates the derived reminder view.
func (c *Coordinator) SelectDate(date string) error {
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}

	c.mu.RLock()
	settings := models.Settings{DarkMode: c.darkMode, SelectedDate: date}
	c.mu.RUnlock()

	if err := c.store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	c.refresh()
	return nil
}

// RescheduleAll re-derives the notification schedule for every
// persisted reminder under the current rule set. Idempotent:
// re-registering a (reminder, rule) pair replaces its timer. Used at
// daemon start and by the nightly reconcile.
func (c *Coordinator) RescheduleAll() (int, error) {
	reminders, err := c.store.GetAllReminders()
	if err != nil {
		return 0, fmt.Errorf("failed to load reminders: %w", err)
	}

	// Rules are re-read alongside the reminders: another process may
	// have edited them since this coordinator loaded its cache.
	rules, err := c.store.GetNotificationRules()
	if err != nil {
		return 0, fmt.Errorf("failed to load notification rules: %w", err)
	}

	c.mu.Lock()
	c.reminders = reminders
	c.rules = rules
	c.mu.Unlock()

	for _, r := range reminders {
		c.sched.ScheduleForReminder(r, rules)
	}

	logger.Info("Rescheduled notifications", "reminders", len(reminders))
	return len(reminders), nil
}

// Reminders returns the latest committed reminder set, ordered by due
// date then creation time.
func (c *Coordinator) Reminders() []models.Reminder {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Reminder(nil), c.reminders...)
}

// SelectedDate returns the active calendar date (YYYY-MM-DD).
func (c *Coordinator) SelectedDate() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selectedDate
}

// RemindersForSelectedDate is the derived view: a pure filter of the
// full reminder set by the selected date.
func (c *Coordinator) RemindersForSelectedDate() []models.Reminder {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return filterByDate(c.reminders, c.selectedDate)
}

// RemindersForDate filters the full reminder set by an arbitrary date.
func (c *Coordinator) RemindersForDate(date string) []models.Reminder {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return filterByDate(c.reminders, date)
}

// Classes returns the configured class list.
func (c *Coordinator) Classes() []models.SchoolClass {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.SchoolClass(nil), c.classes...)
}

// Rules returns the active notification rule set.
func (c *Coordinator) Rules() []models.NotificationRule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.NotificationRule(nil), c.rules...)
}

// DarkMode returns the active theme preference.
func (c *Coordinator) DarkMode() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.darkMode
}

// Subscribe registers a state observer. The channel receives a snapshot
// after every committed mutation; a slow subscriber only ever misses
// intermediate states, never the latest. The returned func unsubscribes.
func (c *Coordinator) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	ch := make(chan Snapshot, 1)
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// refresh re-reads derived state from the store, publishes a snapshot,
// and returns the active rule set for the caller's scheduling step.
func (c *Coordinator) refresh() []models.NotificationRule {
	reminders, remErr := c.store.GetAllReminders()
	if remErr != nil {
		logger.Error("Failed to refresh reminders", "error", remErr)
	}
	classes, clsErr := c.store.GetClasses()
	if clsErr != nil {
		logger.Error("Failed to refresh classes", "error", clsErr)
	}
	rules, rulErr := c.store.GetNotificationRules()
	if rulErr != nil {
		logger.Error("Failed to refresh notification rules", "error", rulErr)
	}
	settings, setErr := c.store.GetSettings()
	if setErr != nil {
		logger.Error("Failed to refresh settings", "error", setErr)
	}

	c.mu.Lock()
	if remErr == nil {
		c.reminders = reminders
	}
	if clsErr == nil {
		c.classes = classes
	}
	if rulErr == nil {
		c.rules = rules
	}
	if setErr == nil {
		c.darkMode = settings.DarkMode
		c.selectedDate = c.normalizeDate(settings.SelectedDate)
	}

	snap := Snapshot{
		Reminders:    append([]models.Reminder(nil), c.reminders...),
		SelectedDate: c.selectedDate,
		Classes:      append([]models.SchoolClass(nil), c.classes...),
		Rules:        append([]models.NotificationRule(nil), c.rules...),
		DarkMode:     c.darkMode,
	}
	activeRules := c.rules

	for _, ch := range c.subs {
		select {
		case ch <- snap:
		default:
			// Drop the stale snapshot so the latest always lands
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
	c.mu.Unlock()

	return activeRules
}

func filterByDate(reminders []models.Reminder, date string) []models.Reminder {
	var out []models.Reminder
	for _, r := range reminders {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}
