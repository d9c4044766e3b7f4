//go:build integration

package containers

import (
	"context"
	"embed"
	"strings"
	"testing"
	"time"

	"github.com/Astemirdum/curator-library/pkg/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

type PostgresContainer struct {
	Container testcontainers.Container
	DB        *sqlx.DB
}

// NewPostgresContainer starts Postgres and applies the given goose migrations.
// The container is terminated when the test ends.
func NewPostgresContainer(t *testing.T, migrations embed.FS) *PostgresContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("library"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get postgres host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get postgres port: %v", err)
	}

	db, err := postgres.NewPostgresDB(ctx, &postgres.DB{
		Host:            host,
		Port:            port.Int(),
		Username:        "postgres",
		Password:        "postgres",
		NameDB:          "library",
		SSLMode:         "disable",
		MaxOpenConns:    40,
		ConnMaxLifetime: time.Minute,
	}, migrations)
	if err != nil {
		t.Fatalf("failed to open postgres: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return &PostgresContainer{Container: container, DB: db}
}

// TruncateTables empties the given tables between tests.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	_, err := p.DB.ExecContext(ctx, "TRUNCATE "+strings.Join(tables, ", ")+" CASCADE")
	return err
}
