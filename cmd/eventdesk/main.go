// Command eventdesk is the event dashboard console.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/roboco-io/eventdesk/internal/cli"
)

// Version information (set at build time)
var version = "dev"

func main() {
	cli.SetVersion(version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
