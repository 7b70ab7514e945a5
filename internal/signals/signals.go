// Package signals ties a context to SIGINT/SIGTERM.
package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/thellimist/docstrap/internal/logger"
)

// InterruptError is the cancel cause of a context stopped by a signal.
type InterruptError struct {
	Signal os.Signal
}

func (e *InterruptError) Error() string {
	return "interrupted by " + e.Signal.String()
}

// Context returns a context cancelled on the first SIGINT or SIGTERM, with an
// *InterruptError as its cause. In-flight downloads abort and delegated
// processes are killed through it.
func Context(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			logger.Debug().Str("signal", sig.String()).Msg("stopping on signal")
			cancel(&InterruptError{Signal: sig})
		case <-ctx.Done():
		}
	}()

	return ctx, func() { cancel(context.Canceled) }
}
