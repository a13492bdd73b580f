package coordinator

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jstrand/remind/internal/models"
	"github.com/jstrand/remind/internal/scheduler"
	"github.com/jstrand/remind/internal/storage"
)

type nullNotifier struct {
	mu    sync.Mutex
	calls int
}

func (n *nullNotifier) Notify(id int, title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	return nil
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)

func newTestCoordinator(t *testing.T) (*Coordinator, storage.Provider, *scheduler.Scheduler) {
	t.Helper()

	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "remind.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clock := func() time.Time { return testNow }
	sched := scheduler.NewWithClock(&nullNotifier{}, clock)
	t.Cleanup(sched.Stop)

	coord, err := NewWithClock(store, sched, clock)
	if err != nil {
		t.Fatalf("failed to build coordinator: %v", err)
	}
	return coord, store, sched
}

func TestNewLoadsDefaults(t *testing.T) {
	coord, _, _ := newTestCoordinator(t)

	if got := coord.SelectedDate(); got != "2026-03-01" {
		t.Errorf("fresh store should select today, got %q", got)
	}
	if got := len(coord.Rules()); got != 3 {
		t.Errorf("expected 3 default rules, got %d", got)
	}
	if got := len(coord.Classes()); got != len(models.DefaultClasses()) {
		t.Errorf("expected default classes, got %d", got)
	}
	if coord.DarkMode() {
		t.Error("dark mode should default to off")
	}
	if got := len(coord.Reminders()); got != 0 {
		t.Errorf("expected no reminders, got %d", got)
	}
}

func TestAddReminderPersistsAndSchedules(t *testing.T) {
	coord, store, sched := newTestCoordinator(t)

	r := models.Reminder{ID: "rem-1", Name: "Physics HW", Class: "Physics", Date: "2026-03-11"}
	if err := coord.AddReminder(r); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}

	stored, err := store.GetReminder("rem-1")
	if err != nil {
		t.Fatalf("reminder not persisted: %v", err)
	}
	if stored.CreatedAt != testNow.UnixMilli() {
		t.Errorf("CreatedAt = %d, want %d", stored.CreatedAt, testNow.UnixMilli())
	}

	if got := sched.Registry().Len(); got != 3 {
		t.Errorf("expected 3 timers under default rules, got %d", got)
	}
	if got := len(coord.Reminders()); got != 1 {
		t.Errorf("derived view not refreshed: %d reminders", got)
	}
}

func TestAddReminderRejectsInvalid(t *testing.T) {
	coord, store, sched := newTestCoordinator(t)

	err := coord.AddReminder(models.Reminder{ID: "rem-1", Name: "", Date: "2026-03-11"})
	if !errors.Is(err, models.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}

	if _, err := store.GetReminder("rem-1"); err == nil {
		t.Error("rejected reminder must not be persisted")
	}
	if got := sched.Registry().Len(); got != 0 {
		t.Errorf("rejected reminder must not be scheduled, got %d timers", got)
	}
}

func TestUpdateReminderMovesTriggers(t *testing.T) {
	coord, _, sched := newTestCoordinator(t)

	r := models.Reminder{ID: "rem-1", Name: "Quiz", Date: "2026-03-11"}
	if err := coord.AddReminder(r); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}

	r.Date = "2026-03-20"
	if err := coord.UpdateReminder(r); err != nil {
		t.Fatalf("UpdateReminder: %v", err)
	}

	timers := sched.Registry().Snapshot()
	if len(timers) != 3 {
		t.Fatalf("expected 3 timers after update, got %d", len(timers))
	}
	dayOf := time.Date(2026, 3, 20, 7, 30, 0, 0, time.Local)
	found := false
	for _, timer := range timers {
		if timer.At.Equal(dayOf) {
			found = true
		}
		if timer.At.Before(time.Date(2026, 3, 18, 0, 0, 0, 0, time.Local)) {
			t.Errorf("stale trigger survived the update: %v", timer.At)
		}
	}
	if !found {
		t.Errorf("expected a day-of trigger at %v", dayOf)
	}
}

func TestUpdateReminderSameDateKeepsTriggerSet(t *testing.T) {
	coord, _, sched := newTestCoordinator(t)

	r := models.Reminder{ID: "rem-1", Name: "Quiz", Date: "2026-03-11"}
	if err := coord.AddReminder(r); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}
	before := sched.Registry().Snapshot()

	r.Name = "Quiz (revised)"
	if err := coord.UpdateReminder(r); err != nil {
		t.Fatalf("UpdateReminder: %v", err)
	}
	after := sched.Registry().Snapshot()

	if len(before) != len(after) {
		t.Fatalf("timer count changed: %d -> %d", len(before), len(after))
	}
	beforeKeys := make(map[int]time.Time, len(before))
	for _, timer := range before {
		beforeKeys[timer.Key] = timer.At
	}
	for _, timer := range after {
		at, ok := beforeKeys[timer.Key]
		if !ok || !at.Equal(timer.At) {
			t.Errorf("trigger set changed for key %d", timer.Key)
		}
	}
}

func TestDeleteReminderCancelsAllTriggers(t *testing.T) {
	coord, store, sched := newTestCoordinator(t)

	r := models.Reminder{ID: "rem-1", Name: "Essay", Date: "2026-03-11"}
	if err := coord.AddReminder(r); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}
	if err := coord.DeleteReminder(r); err != nil {
		t.Fatalf("DeleteReminder: %v", err)
	}

	if got := sched.Registry().Len(); got != 0 {
		t.Errorf("expected 0 timers after delete, got %d", got)
	}
	if _, err := store.GetReminder("rem-1"); err == nil {
		t.Error("reminder still in store after delete")
	}
	if got := len(coord.Reminders()); got != 0 {
		t.Errorf("derived view still holds %d reminders", got)
	}
}

func TestSetReminderCompleted(t *testing.T) {
	coord, store, _ := newTestCoordinator(t)

	tracked := models.Reminder{ID: "rem-1", Name: "Essay", Date: "2026-03-11", Trackable: true}
	untracked := models.Reminder{ID: "rem-2", Name: "Field trip", Date: "2026-03-11"}
	for _, r := range []models.Reminder{tracked, untracked} {
		if err := coord.AddReminder(r); err != nil {
			t.Fatalf("AddReminder(%s): %v", r.ID, err)
		}
	}

	if err := coord.SetReminderCompleted(tracked, true); err != nil {
		t.Fatalf("SetReminderCompleted: %v", err)
	}
	got, err := store.GetReminder("rem-1")
	if err != nil {
		t.Fatalf("GetReminder: %v", err)
	}
	if !got.Completed {
		t.Error("completion not persisted")
	}

	// Non-trackable reminders silently ignore completion
	if err := coord.SetReminderCompleted(untracked, true); err != nil {
		t.Fatalf("SetReminderCompleted (untracked): %v", err)
	}
	got, err = store.GetReminder("rem-2")
	if err != nil {
		t.Fatalf("GetReminder: %v", err)
	}
	if got.Completed {
		t.Error("non-trackable reminder must not record completion")
	}
}

func TestUpdateNotificationRulesReschedulesEverything(t *testing.T) {
	coord, _, sched := newTestCoordinator(t)

	for _, r := range []models.Reminder{
		{ID: "rem-1", Name: "A", Date: "2026-03-11"},
		{ID: "rem-2", Name: "B", Date: "2026-03-12"},
	} {
		if err := coord.AddReminder(r); err != nil {
			t.Fatalf("AddReminder(%s): %v", r.ID, err)
		}
	}
	if got := sched.Registry().Len(); got != 6 {
		t.Fatalf("expected 6 timers before rule change, got %d", got)
	}

	// Replace the defaults with a single rule: old timers must go
	newRules := []models.NotificationRule{
		{ID: "week_before", Name: "Week Before", DaysBefore: 7, Time: "09:00", Enabled: true},
	}
	if err := coord.UpdateNotificationRules(newRules); err != nil {
		t.Fatalf("UpdateNotificationRules: %v", err)
	}

	timers := sched.Registry().Snapshot()
	if len(timers) != 2 {
		t.Fatalf("expected 2 timers under the new rule, got %d", len(timers))
	}
	for _, timer := range timers {
		if timer.At.Hour() != 9 {
			t.Errorf("timer at %v does not match the new rule", timer.At)
		}
	}

	if got := len(coord.Rules()); got != 1 {
		t.Errorf("derived rule view not refreshed: %d rules", got)
	}
}

func TestUpdateNotificationRulesDisableAll(t *testing.T) {
	coord, _, sched := newTestCoordinator(t)

	if err := coord.AddReminder(models.Reminder{ID: "rem-1", Name: "A", Date: "2026-03-11"}); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}

	rules := coord.Rules()
	for i := range rules {
		rules[i].Enabled = false
	}
	if err := coord.UpdateNotificationRules(rules); err != nil {
		t.Fatalf("UpdateNotificationRules: %v", err)
	}

	if got := sched.Registry().Len(); got != 0 {
		t.Errorf("expected 0 timers with all rules disabled, got %d", got)
	}
}

func TestUpdateNotificationRulesRejectsInvalid(t *testing.T) {
	coord, _, _ := newTestCoordinator(t)

	bad := []models.NotificationRule{{ID: "", DaysBefore: 1, Time: "09:00"}}
	if err := coord.UpdateNotificationRules(bad); err == nil {
		t.Fatal("expected validation error")
	}
	if got := len(coord.Rules()); got != 3 {
		t.Errorf("rejected rule set must not replace the active one, got %d rules", got)
	}
}

func TestUpdateClassesKeepsOrphanedLabels(t *testing.T) {
	coord, _, _ := newTestCoordinator(t)

	if err := coord.AddReminder(models.Reminder{ID: "rem-1", Name: "Lab", Class: "Physics", Date: "2026-03-11"}); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}

	if err := coord.UpdateClasses([]models.SchoolClass{{Name: "Chemistry", Color: "#123ABC"}}); err != nil {
		t.Fatalf("UpdateClasses: %v", err)
	}

	reminders := coord.Reminders()
	if len(reminders) != 1 || reminders[0].Class != "Physics" {
		t.Errorf("removing a class must not touch reminders: %+v", reminders)
	}
}

func TestSelectDateFiltersView(t *testing.T) {
	coord, _, _ := newTestCoordinator(t)

	for _, r := range []models.Reminder{
		{ID: "rem-1", Name: "A", Date: "2026-03-11"},
		{ID: "rem-2", Name: "B", Date: "2026-03-12"},
		{ID: "rem-3", Name: "C", Date: "2026-03-11"},
	} {
		if err := coord.AddReminder(r); err != nil {
			t.Fatalf("AddReminder(%s): %v", r.ID, err)
		}
	}

	if err := coord.SelectDate("2026-03-11"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}

	got := coord.RemindersForSelectedDate()
	if len(got) != 2 {
		t.Fatalf("expected 2 reminders on 2026-03-11, got %d", len(got))
	}
	for _, r := range got {
		if r.Date != "2026-03-11" {
			t.Errorf("filter leaked reminder dated %s", r.Date)
		}
	}

	if err := coord.SelectDate("11/03/2026"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestSelectedDateSurvivesRestart(t *testing.T) {
	coord, store, sched := newTestCoordinator(t)

	if err := coord.SelectDate("2026-03-11"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}

	reloaded, err := NewWithClock(store, sched, func() time.Time { return testNow })
	if err != nil {
		t.Fatalf("rebuild coordinator: %v", err)
	}
	if got := reloaded.SelectedDate(); got != "2026-03-11" {
		t.Errorf("selected date not restored: %q", got)
	}
}

func TestSetDarkMode(t *testing.T) {
	coord, store, sched := newTestCoordinator(t)

	if err := coord.SetDarkMode(true); err != nil {
		t.Fatalf("SetDarkMode: %v", err)
	}
	if !coord.DarkMode() {
		t.Error("dark mode view not updated")
	}

	reloaded, err := NewWithClock(store, sched, func() time.Time { return testNow })
	if err != nil {
		t.Fatalf("rebuild coordinator: %v", err)
	}
	if !reloaded.DarkMode() {
		t.Error("dark mode not persisted")
	}
}

func TestRescheduleAllIsIdempotent(t *testing.T) {
	coord, _, sched := newTestCoordinator(t)

	for _, r := range []models.Reminder{
		{ID: "rem-1", Name: "A", Date: "2026-03-11"},
		{ID: "rem-2", Name: "B", Date: "2026-03-12"},
	} {
		if err := coord.AddReminder(r); err != nil {
			t.Fatalf("AddReminder(%s): %v", r.ID, err)
		}
	}

	n, err := coord.RescheduleAll()
	if err != nil {
		t.Fatalf("RescheduleAll: %v", err)
	}
	if n != 2 {
		t.Errorf("RescheduleAll = %d, want 2", n)
	}
	if got := sched.Registry().Len(); got != 6 {
		t.Errorf("expected 6 timers after reschedule, got %d", got)
	}

	// Simulate the boot-recovery path: a fresh scheduler repopulated
	// purely from persisted data.
	sched.Stop()
	if got := sched.Registry().Len(); got != 0 {
		t.Fatalf("Stop left %d timers", got)
	}
	if _, err := coord.RescheduleAll(); err != nil {
		t.Fatalf("RescheduleAll after stop: %v", err)
	}
	if got := sched.Registry().Len(); got != 6 {
		t.Errorf("expected 6 timers after recovery, got %d", got)
	}
}

func TestRescheduleAllPicksUpExternalRuleEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remind.db")
	store := storage.NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clock := func() time.Time { return testNow }
	sched := scheduler.NewWithClock(&nullNotifier{}, clock)
	t.Cleanup(sched.Stop)

	coord, err := NewWithClock(store, sched, clock)
	if err != nil {
		t.Fatalf("failed to build coordinator: %v", err)
	}
	if err := coord.AddReminder(models.Reminder{ID: "rem-1", Name: "A", Date: "2026-03-11"}); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}

	// A second process edits the rules through its own store handle; the
	// coordinator's cached rule set knows nothing about it.
	other := storage.NewSQLiteStore(path)
	if err := other.Load(); err != nil {
		t.Fatalf("failed to load second store handle: %v", err)
	}
	defer other.Close()
	newRules := []models.NotificationRule{
		{ID: "week_before", Name: "Week Before", DaysBefore: 7, Time: "09:00", Enabled: true},
	}
	if err := other.SaveNotificationRules(newRules); err != nil {
		t.Fatalf("SaveNotificationRules: %v", err)
	}

	// Fresh pass, as after a daemon restart or timer loss
	sched.Stop()
	n, err := coord.RescheduleAll()
	if err != nil {
		t.Fatalf("RescheduleAll: %v", err)
	}
	if n != 1 {
		t.Errorf("RescheduleAll = %d, want 1", n)
	}

	timers := sched.Registry().Snapshot()
	if len(timers) != 1 {
		t.Fatalf("expected 1 timer under the externally edited rule, got %d", len(timers))
	}
	want := time.Date(2026, 3, 4, 9, 0, 0, 0, time.Local)
	if !timers[0].At.Equal(want) {
		t.Errorf("timer at %v, want %v", timers[0].At, want)
	}
	if got := len(coord.Rules()); got != 1 {
		t.Errorf("rule view not refreshed from the store: %d rules", got)
	}
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	coord, _, _ := newTestCoordinator(t)

	ch, cancel := coord.Subscribe()
	defer cancel()

	if err := coord.AddReminder(models.Reminder{ID: "rem-1", Name: "A", Date: "2026-03-11"}); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}

	select {
	case snap := <-ch:
		if len(snap.Reminders) != 1 || snap.Reminders[0].ID != "rem-1" {
			t.Errorf("unexpected snapshot: %+v", snap.Reminders)
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot received")
	}
}

func TestSubscribeSlowConsumerGetsLatest(t *testing.T) {
	coord, _, _ := newTestCoordinator(t)

	ch, cancel := coord.Subscribe()
	defer cancel()

	// Two mutations without a read in between: the buffered snapshot is
	// replaced, never blocked on.
	if err := coord.AddReminder(models.Reminder{ID: "rem-1", Name: "A", Date: "2026-03-11"}); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}
	if err := coord.AddReminder(models.Reminder{ID: "rem-2", Name: "B", Date: "2026-03-12"}); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}

	select {
	case snap := <-ch:
		if len(snap.Reminders) != 2 {
			t.Errorf("expected the latest snapshot with 2 reminders, got %d", len(snap.Reminders))
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot received")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	coord, _, _ := newTestCoordinator(t)

	ch, cancel := coord.Subscribe()
	cancel()

	if err := coord.AddReminder(models.Reminder{ID: "rem-1", Name: "A", Date: "2026-03-11"}); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("received snapshot after unsubscribe")
		}
	default:
	}
}
