package main

import (
	"context"
	"flag"
	"log"

	"github.com/muhammadchandra19/chart-data/migrations"
	"github.com/muhammadchandra19/chart-data/pkg/config"
	"github.com/muhammadchandra19/chart-data/pkg/logger"
	"github.com/muhammadchandra19/chart-data/pkg/migration"
	"github.com/muhammadchandra19/chart-data/pkg/questdb"
)

func main() {
	var (
		direction = flag.String("direction", "up", "Migration direction: up, down or status")
		steps     = flag.Int("steps", 0, "Number of migrations to run, 0 applies all pending up migrations")
	)
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer l.Sync()

	client, err := questdb.NewClient(ctx, cfg.QuestDB)
	if err != nil {
		log.Fatalf("Failed to initialize QuestDB client: %v", err)
	}
	defer client.Close()

	runner := migration.NewRunner(client, l, migrations.FS)
	if err := runner.EnsureMigrationTable(ctx); err != nil {
		log.Fatalf("Failed to create migration table: %v", err)
	}

	switch *direction {
	case "up":
		err = runner.MigrateUp(ctx, *steps)
	case "down":
		err = runner.MigrateDown(ctx, *steps)
	case "status":
		err = printStatus(ctx, runner, l)
	default:
		log.Fatalf("Unknown direction %q", *direction)
	}
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	l.Info("migrations completed", logger.NewField("direction", *direction))
}

func printStatus(ctx context.Context, runner *migration.Runner, l logger.Interface) error {
	all, err := runner.LoadMigrations()
	if err != nil {
		return err
	}
	applied, err := runner.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}
	for _, m := range all {
		l.Info("migration",
			logger.NewField("id", m.ID),
			logger.NewField("name", m.Name),
			logger.NewField("applied", applied[m.ID]),
		)
	}
	return nil
}
