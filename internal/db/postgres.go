package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zhouzirui/mindcare/backend/internal/config"
	"github.com/zhouzirui/mindcare/backend/internal/model/profile"
)

// Postgres serves profile lookups from the user_profiles table.
type Postgres struct {
	Pool *pgxpool.Pool
}

// NewPostgres opens a pool against cfg.DatabaseURL.
func NewPostgres(ctx context.Context, cfg config.ProfileConfig) (*Postgres, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, fmt.Errorf("postgres: database url is required")
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeoutOrDefault(cfg.ConnectTimeout))
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	return &Postgres{Pool: pool}, nil
}

func (p *Postgres) Close() {
	if p == nil || p.Pool == nil {
		return
	}
	p.Pool.Close()
}

func (p *Postgres) Ping(ctx context.Context) error {
	if p == nil || p.Pool == nil {
		return fmt.Errorf("postgres: pool not initialised")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.Pool.Ping(ctx)
}

// EnsureSchema creates the user_profiles table when missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if p == nil || p.Pool == nil {
		return fmt.Errorf("postgres: pool not initialised")
	}

	stmt := strings.Join([]string{
		"CREATE TABLE IF NOT EXISTS user_profiles (",
		"    id TEXT PRIMARY KEY,",
		"    display_name TEXT NOT NULL DEFAULT '',",
		"    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()",
		")",
	}, "\n")

	if _, err := p.Pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("postgres: ensure schema: %w", err)
	}
	return nil
}

// UpsertProfile stores a display name; used by seeding and tests.
func (p *Postgres) UpsertProfile(ctx context.Context, prof profile.Profile) error {
	const query = `INSERT INTO user_profiles (id, display_name) VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE SET display_name = EXCLUDED.display_name`
	if _, err := p.Pool.Exec(ctx, query, prof.UserID, strings.TrimSpace(prof.DisplayName)); err != nil {
		return fmt.Errorf("postgres: upsert profile: %w", err)
	}
	return nil
}

// DisplayName implements profile.Directory.
func (p *Postgres) DisplayName(ctx context.Context, userID string) (string, error) {
	if p == nil || p.Pool == nil {
		return "", fmt.Errorf("postgres: pool not initialised")
	}

	var name string
	const query = `SELECT display_name FROM user_profiles WHERE id = $1`
	if err := p.Pool.QueryRow(ctx, query, userID).Scan(&name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", profile.ErrProfileNotFound
		}
		return "", fmt.Errorf("postgres: query profile: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", profile.ErrProfileNotFound
	}
	return name, nil
}

func timeoutOrDefault(value time.Duration) time.Duration {
	if value > 0 {
		return value
	}
	return 10 * time.Second
}
