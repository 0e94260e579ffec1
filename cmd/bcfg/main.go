package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"buildcfg.dev/cli/internal/interfaces/cli"
	"buildcfg.dev/cli/internal/interfaces/di"
)

func main() {
	container, err := di.NewContainer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cli.Execute(ctx, container.GetCLIContainer())
}
