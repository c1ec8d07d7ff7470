// Package postgres keeps creature reference data in PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/battlesim/internal/config"
)

// DefaultHealthTimeout bounds the startup check made before serving lookups.
const DefaultHealthTimeout = 5 * time.Second

// ErrSchemaMissing is returned by Health when the creatures table has not been
// migrated.
var ErrSchemaMissing = errors.New("creatures table missing: run cmd/migrate")

// Pool owns the connection pool behind the creature store.
type Pool struct {
	db *pgxpool.Pool
}

// NewPool opens a pool sized from cfg and pings the server.
//
// Precondition: cfg must pass DatabaseConfig.Validate.
// Postcondition: Returns a connected Pool or a non-nil error; the schema is not
// checked, so migrations may run against the returned pool.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	db, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging creature database %q on %s: %w", cfg.Name, cfg.Host, err)
	}
	return &Pool{db: db}, nil
}

// Health checks, within timeout, that the database answers and that the
// creatures table exists.
//
// Postcondition: Returns nil, ErrSchemaMissing, or a connectivity error.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var migrated bool
	err := p.db.QueryRow(ctx, `SELECT to_regclass('public.creatures') IS NOT NULL`).Scan(&migrated)
	if err != nil {
		return fmt.Errorf("checking creature schema: %w", err)
	}
	if !migrated {
		return ErrSchemaMissing
	}
	return nil
}

// Creatures returns a CreatureRepository sharing this pool.
func (p *Pool) Creatures() *CreatureRepository {
	return NewCreatureRepository(p.db)
}

// Close releases all pool resources.
func (p *Pool) Close() {
	p.db.Close()
}

// DB returns the underlying pgxpool.Pool.
func (p *Pool) DB() *pgxpool.Pool {
	return p.db
}
