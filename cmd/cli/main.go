package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/forkvault/internal/client/cli"
	"github.com/dmitrijs2005/forkvault/internal/client/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	if err := cli.NewRootCmd(cfg).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
