package scheduler

import (
	"sync"
	"time"
)

// ScheduledTimer describes one live timer in the registry.
type ScheduledTimer struct {
	Key        int
	ReminderID string
	At         time.Time
}

type entry struct {
	timer      *time.Timer
	reminderID string
	at         time.Time
	fire       func()
}

// Registry holds the set of live one-shot timers, keyed by the
// deterministic (reminder, rule) key. Scheduling an existing key
// replaces its timer; cancelling an absent key is a no-op. Timers are
// additionally indexed by reminder id so every timer for a reminder is
// reachable even when the rule that produced it no longer exists.
type Registry struct {
	mu         sync.Mutex
	now        func() time.Time
	items      map[int]*entry
	byReminder map[string]map[int]struct{}
}

func NewRegistry(now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{
		now:        now,
		items:      make(map[int]*entry),
		byReminder: make(map[string]map[int]struct{}),
	}
}

// Schedule registers a one-shot timer firing at the given instant,
// replacing any existing timer under the same key.
func (g *Registry) Schedule(key int, reminderID string, at time.Time, fire func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// Stop the replaced timer; a detached entry must never reach consume,
	// where it would fire the replacement's payload at the old instant.
	if e, ok := g.items[key]; ok {
		e.timer.Stop()
	}
	g.removeLocked(key)

	e := &entry{reminderID: reminderID, at: at, fire: fire}
	e.timer = time.AfterFunc(at.Sub(g.now()), func() {
		g.consume(key)
	})

	g.items[key] = e
	if g.byReminder[reminderID] == nil {
		g.byReminder[reminderID] = make(map[int]struct{})
	}
	g.byReminder[reminderID][key] = struct{}{}
}

// Cancel stops and removes the timer under key, if any.
func (g *Registry) Cancel(key int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if e, ok := g.items[key]; ok {
		e.timer.Stop()
		g.removeLocked(key)
	}
}

// CancelReminder stops and removes every timer registered for the
// reminder, regardless of which rule produced it.
func (g *Registry) CancelReminder(reminderID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for key := range g.byReminder[reminderID] {
		if e, ok := g.items[key]; ok {
			e.timer.Stop()
		}
		g.removeLocked(key)
	}
}

// Fire runs the callback for key immediately and removes the entry.
// Returns false if no timer is registered under key.
func (g *Registry) Fire(key int) bool {
	g.mu.Lock()
	e, ok := g.items[key]
	if ok {
		e.timer.Stop()
		g.removeLocked(key)
	}
	g.mu.Unlock()

	if !ok {
		return false
	}
	e.fire()
	return true
}

// Snapshot returns the current set of live timers.
func (g *Registry) Snapshot() []ScheduledTimer {
	g.mu.Lock()
	defer g.mu.Unlock()

	timers := make([]ScheduledTimer, 0, len(g.items))
	for key, e := range g.items {
		timers = append(timers, ScheduledTimer{Key: key, ReminderID: e.reminderID, At: e.at})
	}
	return timers
}

// Len returns the number of live timers.
func (g *Registry) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.items)
}

// Stop cancels every live timer.
func (g *Registry) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for key, e := range g.items {
		e.timer.Stop()
		delete(g.byReminder[e.reminderID], key)
	}
	g.items = make(map[int]*entry)
	g.byReminder = make(map[string]map[int]struct{})
}

// consume is the timer callback path: detach the entry, then fire.
func (g *Registry) consume(key int) {
	g.mu.Lock()
	e, ok := g.items[key]
	if ok {
		g.removeLocked(key)
	}
	g.mu.Unlock()

	if ok {
		e.fire()
	}
}

func (g *Registry) removeLocked(key int) {
	e, ok := g.items[key]
	if !ok {
		return
	}
	delete(g.items, key)
	if set, ok := g.byReminder[e.reminderID]; ok {
		delete(set, key)
		if len(set) == 0 {
			delete(g.byReminder, e.reminderID)
		}
	}
}
