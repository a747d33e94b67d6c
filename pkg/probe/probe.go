// Package probe runs the track service's startup checks: everything
// the server must have before it can accept upload streams.
package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// checkTimeout bounds each individual check so a hung dependency can't
// stall startup indefinitely.
const checkTimeout = 5 * time.Second

// Check verifies one startup dependency of the track service.
type Check struct {
	Name  string
	Fatal bool // a failure here prevents the server from starting
	Run   func(ctx context.Context) error
}

// RunAll executes every check in order, logging one line per check with
// its outcome and duration. It returns the joined errors of the failed
// fatal checks; non-fatal failures are logged and ignored.
func RunAll(ctx context.Context, checks []Check) error {
	var fatal []error
	for _, c := range checks {
		cctx, cancel := context.WithTimeout(ctx, checkTimeout)
		start := time.Now()
		err := c.Run(cctx)
		cancel()
		elapsed := time.Since(start).Round(time.Millisecond)

		if err != nil {
			slog.Error("startup check failed", "check", c.Name, "elapsed", elapsed, "error", err)
			if c.Fatal {
				fatal = append(fatal, fmt.Errorf("%s: %w", c.Name, err))
			}
			continue
		}
		slog.Info("startup check passed", "check", c.Name, "elapsed", elapsed)
	}
	return errors.Join(fatal...)
}
