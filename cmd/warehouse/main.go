// Command warehouse seeds the demo warehouse database with deterministic synthetic data
// and serves the health-check endpoints next to it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)

		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
