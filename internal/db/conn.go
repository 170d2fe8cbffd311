package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"

	"github.com/hurou927/marygen/internal/config"
	"github.com/hurou927/marygen/internal/schema"
)

// NewPool creates a new pgx connection pool from a DSN.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// OpenSQL opens a database/sql handle and verifies the connection.
func OpenSQL(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// NewIntrospector connects to the configured database and returns the
// introspector for its driver. The caller must Close it.
func NewIntrospector(ctx context.Context, cfg *config.Config) (schema.Introspector, error) {
	if err := cfg.ValidateDatabase(); err != nil {
		return nil, err
	}

	switch cfg.Database.Driver {
	case "pgsql":
		pool, err := NewPool(ctx, cfg.DSN())
		if err != nil {
			return nil, err
		}
		return schema.NewPostgres(pool, cfg.Database.Schemas), nil
	case "mysql", "mariadb":
		db, err := OpenSQL(ctx, "mysql", cfg.DSN())
		if err != nil {
			return nil, err
		}
		return schema.NewMySQL(db), nil
	case "sqlite":
		db, err := OpenSQL(ctx, "sqlite", cfg.DSN())
		if err != nil {
			return nil, err
		}
		return schema.NewSQLite(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}
