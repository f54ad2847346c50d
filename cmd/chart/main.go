package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/muhammadchandra19/chart-data/app/chart"
	"github.com/muhammadchandra19/chart-data/pkg/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	app, err := chart.InitApp(ctx, *cfg)
	if err != nil {
		log.Fatalf("Failed to init chart service: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("Chart service stopped with error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	app.Stop(shutdownCtx)
}
