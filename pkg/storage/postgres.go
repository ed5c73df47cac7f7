package storage

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/levenlabs/go-lflag"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/log"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Pool wraps pgxpool.Pool for dependency injection.
type Pool struct {
	*pgxpool.Pool
}

// NewPool creates a new Postgres connection pool.
func NewPool(ctx context.Context, dsn string) (*Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// Migrate applies every embedded migration in name order. Migrations are
// written to be idempotent.
func (p *Pool) Migrate(ctx context.Context) error {
	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		sql, err := migrations.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := p.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		log.Ctx(ctx).DebugContext(ctx, "applied migration", slog.String("name", name))
	}
	return nil
}

// isNotFoundError checks if error indicates no rows found.
func isNotFoundError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// PostgresProvider implements Database on a single scenarios table with the
// config stored as JSONB.
type PostgresProvider struct {
	dsn  string
	pool *Pool
}

// configuredPostgres sets up the Postgres provider.
// It registers flags for configuration.
func configuredPostgres() *PostgresProvider {
	dsn := lflag.String("postgres-dsn", "", "Postgres connection string")

	p := &PostgresProvider{}

	lflag.Do(func() {
		p.dsn = *dsn
	})

	return p
}

// NewPostgresProvider returns a provider on an already connected pool.
func NewPostgresProvider(pool *Pool) *PostgresProvider {
	return &PostgresProvider{pool: pool}
}

// Validate checks if the provider is properly configured.
func (p *PostgresProvider) Validate() error {
	if p.dsn == "" {
		return errors.New("postgres-dsn is required")
	}
	return nil
}

// Init connects to the database and applies migrations.
func (p *PostgresProvider) Init(ctx context.Context) error {
	pool, err := NewPool(ctx, p.dsn)
	if err != nil {
		return err
	}
	if err := pool.Migrate(ctx); err != nil {
		pool.Close()
		return err
	}
	p.pool = pool
	return nil
}

// Close closes the connection pool.
func (p *PostgresProvider) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func scanScenario(row pgx.Row) (StoredScenario, error) {
	var (
		id      string
		version int
		body    []byte
	)
	if err := row.Scan(&id, &version, &body); err != nil {
		return StoredScenario{}, err
	}
	var sc types.ScenarioConfig
	if err := json.Unmarshal(body, &sc); err != nil {
		return StoredScenario{}, fmt.Errorf("failed to unmarshal scenario (id=%s): %w", id, err)
	}
	sc.ID = id
	return StoredScenario{Config: sc, Version: version}, nil
}

// ListScenarios implements Database.
func (p *PostgresProvider) ListScenarios(ctx context.Context) ([]StoredScenario, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, version, config
		FROM scenarios
		ORDER BY updated_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query scenarios: %w", err)
	}
	defer rows.Close()

	scenarios := []StoredScenario{}
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		scenarios = append(scenarios, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenarios: %w", err)
	}
	return scenarios, nil
}

// GetScenario implements Database.
func (p *PostgresProvider) GetScenario(ctx context.Context, id string) (StoredScenario, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT id, version, config
		FROM scenarios
		WHERE id = $1
	`, id)
	s, err := scanScenario(row)
	if err != nil {
		if isNotFoundError(err) {
			return StoredScenario{}, ErrScenarioNotFound
		}
		return StoredScenario{}, fmt.Errorf("get scenario: %w", err)
	}
	return s, nil
}

// SaveScenario implements Database.
func (p *PostgresProvider) SaveScenario(ctx context.Context, sc types.ScenarioConfig, version int) error {
	if sc.ID == "" {
		return fmt.Errorf("scenario id cannot be empty")
	}
	body, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}
	_, err = p.pool.Exec(ctx, `
		INSERT INTO scenarios (id, name, version, config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			version = EXCLUDED.version,
			config = EXCLUDED.config,
			updated_at = EXCLUDED.updated_at
	`, sc.ID, sc.Name, version, body, sc.CreatedAt, sc.UpdatedAt)
	if err != nil {
		log.Ctx(ctx).WarnContext(ctx, "failed to save scenario", slog.String("scenarioID", sc.ID), slog.Any("error", err))
		return fmt.Errorf("save scenario: %w", err)
	}
	return nil
}

// DeleteScenario implements Database.
func (p *PostgresProvider) DeleteScenario(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM scenarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete scenario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrScenarioNotFound
	}
	return nil
}
