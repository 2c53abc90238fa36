// The server command runs the AppyDaveApp catalog API.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/appydave/appydaveapp/internal/app/runtime"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := runtime.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	app, err := runtime.NewApplication(ctx, cfg)
	if err != nil {
		log.Fatalf("initialise application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}

	if err := app.Shutdown(context.Background()); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
