// Package questdbtest starts a disposable QuestDB for integration tests.
package questdbtest

import (
	"context"
	"fmt"
	"io/fs"
	"strconv"
	"testing"
	"time"

	"github.com/muhammadchandra19/chart-data/pkg/logger"
	"github.com/muhammadchandra19/chart-data/pkg/migration"
	"github.com/muhammadchandra19/chart-data/pkg/questdb"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const pgWirePort = "8812/tcp"

// ContainerConfig holds configuration for the test container
type ContainerConfig struct {
	Image          string
	StartupTimeout time.Duration
	// Migrations, when set, is applied with the migration runner after start.
	Migrations fs.FS
}

// DefaultContainerConfig returns a default configuration
func DefaultContainerConfig() ContainerConfig {
	return ContainerConfig{
		Image:          "questdb/questdb:8.3.3",
		StartupTimeout: 2 * time.Minute,
	}
}

// Container wraps a QuestDB testcontainer and a connected client.
type Container struct {
	Container testcontainers.Container
	Client    *questdb.Client
	Config    questdb.Config
}

// NewContainer starts QuestDB and connects a client over the PostgreSQL wire port.
func NewContainer(ctx context.Context, cfg ContainerConfig) (*Container, error) {
	ctr, err := testcontainers.Run(ctx, cfg.Image,
		testcontainers.WithExposedPorts(pgWirePort),
		testcontainers.WithEnv(map[string]string{"QDB_TELEMETRY_ENABLED": "false"}),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort(pgWirePort).WithStartupTimeout(cfg.StartupTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start questdb container: %w", err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		_ = testcontainers.TerminateContainer(ctr)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := ctr.MappedPort(ctx, pgWirePort)
	if err != nil {
		_ = testcontainers.TerminateContainer(ctr)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}
	portNum, err := strconv.Atoi(port.Port())
	if err != nil {
		_ = testcontainers.TerminateContainer(ctr)
		return nil, fmt.Errorf("invalid mapped port %q: %w", port.Port(), err)
	}

	qcfg := questdb.Config{
		Host:            host,
		Port:            portNum,
		Database:        "qdb",
		Username:        "admin",
		Password:        "quest",
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
		ConnectTimeout:  10 * time.Second,
	}
	client, err := questdb.NewClient(ctx, qcfg)
	if err != nil {
		_ = testcontainers.TerminateContainer(ctr)
		return nil, err
	}

	c := &Container{Container: ctr, Client: client, Config: qcfg}

	if cfg.Migrations != nil {
		runner := migration.NewRunner(client, logger.NewNop(), cfg.Migrations)
		if err := runner.EnsureMigrationTable(ctx); err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to create migration table: %w", err)
		}
		if err := runner.MigrateUp(ctx, 0); err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return c, nil
}

// Close closes the client and terminates the container.
func (c *Container) Close() error {
	if c.Client != nil {
		c.Client.Close()
	}
	if c.Container != nil {
		return testcontainers.TerminateContainer(c.Container)
	}
	return nil
}

// New starts a container for t and terminates it on cleanup. It skips in short mode.
func New(t *testing.T, cfg ContainerConfig) *Container {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	c, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Logf("Failed to close test container: %v", err)
		}
	})

	return c
}

// WaitForWAL blocks until QuestDB has applied every pending WAL transaction of table.
func (c *Container) WaitForWAL(t *testing.T, table string) {
	t.Helper()
	require.Eventually(t, func() bool {
		var suspended bool
		var writer, sequencer int64
		err := c.Client.QueryRow(context.Background(),
			"SELECT suspended, writerTxn, sequencerTxn FROM wal_tables() WHERE name = $1", table).
			Scan(&suspended, &writer, &sequencer)
		return err == nil && !suspended && writer == sequencer
	}, 30*time.Second, 200*time.Millisecond)
}
