package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/agpdev/cueview/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to config file (default ~/.config/cueview/config.toml)")
	feedURL := flag.String("url", "", "tournament feed URL (overrides config)")
	poll := flag.Duration("poll", 0, "poll interval, e.g. 30s (overrides config)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := app.Options{
		ConfigPath: *configPath,
		FeedURL:    *feedURL,
		Poll:       *poll,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "cueview: %v\n", err)
		return 1
	}
	return 0
}
