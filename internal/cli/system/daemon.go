package system

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/jstrand/remind/internal/cli"
	"github.com/jstrand/remind/internal/daemon"
)

// DaemonCmd runs the resident scheduler process. Notification timers
// live in this process; the boot reconcile runs at start and nightly.
type DaemonCmd struct{}

func (c *DaemonCmd) Run(ctx *cli.Context) error {
	coord, err := ctx.Coord()
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defer ctx.Scheduler.Stop()
	return daemon.New(coord).Run(runCtx)
}
