// Package main runs the gwtrack command line.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	gwtrackcmd "github.com/louisbranch/gwtrack/internal/cmd/gwtrack"
	"github.com/louisbranch/gwtrack/internal/platform/config"
)

func main() {
	cfg, err := gwtrackcmd.ParseConfig()
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = gwtrackcmd.Run(ctx, cfg, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		config.ExitCodef(gwtrackcmd.ExitCode(err), "Error: %v", err)
	}
}
