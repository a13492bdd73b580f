// Package daemon runs the resident scheduler process. Timers only fire
// while a process is alive, so the daemon performs the recovery pass at
// start (restoring timers lost with the previous process) and re-runs
// it nightly to pick up the date rollover. The pass is a fresh
// idempotent recomputation; partial completion is repaired by the next
// run.
package daemon

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/jstrand/remind/internal/coordinator"
	"github.com/jstrand/remind/internal/logger"
)

type Daemon struct {
	coord *coordinator.Coordinator
}

func New(coord *coordinator.Coordinator) *Daemon {
	return &Daemon{coord: coord}
}

// Run performs the boot reschedule, starts the nightly reconcile, and
// blocks until the context is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	n, err := d.coord.RescheduleAll()
	if err != nil {
		return err
	}
	logger.Info("Daemon started", "reminders", n)

	c := cron.New()
	if _, err := c.AddFunc("@midnight", func() {
		if _, err := d.coord.RescheduleAll(); err != nil {
			logger.Error("Nightly reschedule failed", "error", err)
		}
	}); err != nil {
		return err
	}
	c.Start()
	defer c.Stop()

	<-ctx.Done()
	logger.Info("Daemon stopping")
	return nil
}
