// Command itemcache reads and writes envelope-encoded items in Redis.
//
//	itemcache put greeting hello --expire-in 1h
//	itemcache put avatar aGVsbG8= --type binary
//	itemcache get greeting
//	itemcache list --prefix user: --limit 20
//	itemcache delete greeting
//
// Connection settings come from ITEMCACHE_* environment variables or a
// .env file in the working directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/unkn0wn-root/itemcache/internal/config"
	"github.com/unkn0wn-root/itemcache/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintln(os.Stderr, "itemcache:", err)
		os.Exit(2)
	}

	log, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "itemcache: logger:", err)
		os.Exit(2)
	}
	defer log.Sync()

	err = run(ctx, cfg, log, os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, errNotFound):
		os.Exit(1)
	default:
		log.Debug("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "itemcache:", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
