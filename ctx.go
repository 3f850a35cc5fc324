package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// жёсткий таймаут + отмена по Ctrl-C / SIGTERM
func withTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	sigCtx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	if d <= 0 {
		return sigCtx, stop
	}
	ctx, cancel := context.WithTimeout(sigCtx, d)
	return ctx, func() {
		cancel()
		stop()
	}
}
