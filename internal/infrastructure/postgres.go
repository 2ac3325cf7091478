package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresClient struct {
	Pool *pgxpool.Pool
}

func NewPostgresClient(connString string) (*PostgresClient, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	// Pool configuration
	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	client := &PostgresClient{Pool: pool}

	if err := client.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return client, nil
}

func (p *PostgresClient) Migrate() error {
	_, err := p.Pool.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS profiles (
			user_id         VARCHAR(32) PRIMARY KEY,
			authorized      BOOLEAN NOT NULL DEFAULT FALSE,
			unlocks         JSONB NOT NULL DEFAULT '{}',
			rep_names       JSONB NOT NULL DEFAULT '[]',
			generated_count INTEGER NOT NULL DEFAULT 0,
			created_at      TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	return err
}

func (p *PostgresClient) Close() {
	p.Pool.Close()
}
