package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/vijay-prabhu/leetboost/internal/cli"
)

// Version information (set by build script)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli.SetVersionInfo(Version, Commit, BuildTime)
	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
