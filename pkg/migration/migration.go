package migration

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/muhammadchandra19/chart-data/pkg/logger"
	"github.com/muhammadchandra19/chart-data/pkg/questdb"
)

// Migration represents a database migration
type Migration struct {
	ID        string
	Name      string
	Timestamp time.Time
	UpSQL     string
	DownSQL   string
}

// Runner handles migration execution. QuestDB has no DELETE, so the state of every
// migration is the latest row recorded for its id.
type Runner struct {
	client     questdb.QuestDBClient
	logger     logger.Interface
	migrations fs.FS
}

// NewRunner creates a new migration runner reading *.up.sql and *.down.sql files from migrations.
func NewRunner(client questdb.QuestDBClient, logger logger.Interface, migrations fs.FS) *Runner {
	return &Runner{
		client:     client,
		logger:     logger,
		migrations: migrations,
	}
}

// EnsureMigrationTable creates the schema_migrations table if it doesn't exist
func (r *Runner) EnsureMigrationTable(ctx context.Context) error {
	return r.client.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SYMBOL,
			name STRING,
			applied BOOLEAN,
			recorded_at TIMESTAMP
		) TIMESTAMP(recorded_at) PARTITION BY YEAR;
	`)
}

// GetAppliedMigrations returns the ids of the migrations currently applied.
func (r *Runner) GetAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := r.client.Query(ctx, "SELECT id, applied FROM schema_migrations LATEST ON recorded_at PARTITION BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var (
			id string
			ok bool
		)
		if err := rows.Scan(&id, &ok); err != nil {
			return nil, err
		}
		if ok {
			applied[id] = true
		}
	}

	return applied, rows.Err()
}

// LoadMigrations loads every migration ordered by id.
func (r *Runner) LoadMigrations() ([]Migration, error) {
	upFiles, err := fs.Glob(r.migrations, "*.up.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(upFiles)

	migrations := make([]Migration, 0, len(upFiles))
	for _, upFile := range upFiles {
		migration, err := r.parseMigrationFiles(upFile)
		if err != nil {
			return nil, fmt.Errorf("failed to parse migration %s: %w", upFile, err)
		}
		migrations = append(migrations, migration)
	}

	return migrations, nil
}

// parseMigrationFiles reads an up file and its optional down file. Ids look like
// 20240301000000_create_ohlcv; ids without a timestamp get the zero epoch.
func (r *Runner) parseMigrationFiles(upFile string) (Migration, error) {
	upContent, err := fs.ReadFile(r.migrations, upFile)
	if err != nil {
		return Migration{}, err
	}

	id := strings.TrimSuffix(path.Base(upFile), ".up.sql")
	stamp, name, found := strings.Cut(id, "_")
	if !found {
		name = id
	}

	timestamp, err := time.Parse("20060102150405", stamp)
	if err != nil {
		timestamp = time.Unix(0, 0).UTC()
	}

	var downSQL string
	if downContent, err := fs.ReadFile(r.migrations, strings.TrimSuffix(upFile, ".up.sql")+".down.sql"); err == nil {
		downSQL = strings.TrimSpace(string(downContent))
	}

	return Migration{
		ID:        id,
		Name:      name,
		Timestamp: timestamp,
		UpSQL:     strings.TrimSpace(string(upContent)),
		DownSQL:   downSQL,
	}, nil
}

// MigrateUp applies pending migrations. steps <= 0 applies all of them.
func (r *Runner) MigrateUp(ctx context.Context, steps int) error {
	migrations, err := r.LoadMigrations()
	if err != nil {
		return err
	}

	applied, err := r.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}

	var toApply []Migration
	for _, migration := range migrations {
		if !applied[migration.ID] {
			toApply = append(toApply, migration)
		}
	}

	if steps > 0 && len(toApply) > steps {
		toApply = toApply[:steps]
	}

	for _, migration := range toApply {
		if migration.UpSQL == "" {
			r.logger.WarnContext(ctx, "migration has no up sql", logger.NewField("migration", migration.ID))
			continue
		}

		for _, stmt := range statements(migration.UpSQL) {
			if err := r.client.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply migration %s: %w", migration.ID, err)
			}
		}
		if err := r.record(ctx, migration, true); err != nil {
			return err
		}

		r.logger.InfoContext(ctx, "applied migration", logger.NewField("migration", migration.ID))
	}

	return nil
}

// MigrateDown reverts the last steps applied migrations.
func (r *Runner) MigrateDown(ctx context.Context, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be greater than 0 for down migrations")
	}

	migrations, err := r.LoadMigrations()
	if err != nil {
		return err
	}

	applied, err := r.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}

	var toRevert []Migration
	for i := len(migrations) - 1; i >= 0 && len(toRevert) < steps; i-- {
		if applied[migrations[i].ID] {
			toRevert = append(toRevert, migrations[i])
		}
	}

	for _, migration := range toRevert {
		if migration.DownSQL == "" {
			return fmt.Errorf("no down sql found for migration %s", migration.ID)
		}

		for _, stmt := range statements(migration.DownSQL) {
			if err := r.client.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to revert migration %s: %w", migration.ID, err)
			}
		}
		if err := r.record(ctx, migration, false); err != nil {
			return err
		}

		r.logger.InfoContext(ctx, "reverted migration", logger.NewField("migration", migration.ID))
	}

	return nil
}

func (r *Runner) record(ctx context.Context, migration Migration, applied bool) error {
	err := r.client.Exec(ctx,
		"INSERT INTO schema_migrations (id, name, applied, recorded_at) VALUES ($1, $2, $3, now())",
		migration.ID, migration.Name, applied,
	)
	if err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.ID, err)
	}
	return nil
}

// statements splits a migration file on semicolons. The wire protocol runs one statement per Exec.
func statements(sql string) []string {
	var out []string
	for _, stmt := range strings.Split(sql, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
