package schema

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres introspects tables through the PostgreSQL catalogs.
type Postgres struct {
	pool    *pgxpool.Pool
	schemas []string
}

// NewPostgres creates a Postgres introspector searching the given schemas in order.
func NewPostgres(pool *pgxpool.Pool, schemas []string) *Postgres {
	return &Postgres{pool: pool, schemas: schemas}
}

// Introspect returns the columns and PK of the first table named name found in the search schemas.
func (p *Postgres) Introspect(ctx context.Context, name string) (*Table, error) {
	tbl, err := p.queryColumns(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}
	if tbl == nil {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}

	if err := p.queryPrimaryKey(ctx, tbl); err != nil {
		return nil, fmt.Errorf("querying primary key: %w", err)
	}

	return tbl, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func (p *Postgres) queryColumns(ctx context.Context, name string) (*Table, error) {
	query := `
		SELECT
			n.nspname AS schema_name,
			a.attname AS column_name,
			t.typname AS data_type,
			NOT a.attnotnull AS is_nullable,
			a.attnum AS ordinal_position
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		JOIN pg_attribute a ON a.attrelid = c.oid
		JOIN pg_type t ON t.oid = a.atttypid
		WHERE c.relkind IN ('r', 'p')
			AND a.attnum > 0
			AND NOT a.attisdropped
			AND n.nspname::text = ANY($1::text[])
			AND c.relname = $2
		ORDER BY array_position($1::text[], n.nspname::text), a.attnum
	`

	rows, err := p.pool.Query(ctx, query, p.schemas, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tbl *Table
	for rows.Next() {
		var schemaName, colName, dataType string
		var nullable bool
		var ordPos int
		if err := rows.Scan(&schemaName, &colName, &dataType, &nullable, &ordPos); err != nil {
			return nil, err
		}

		if tbl == nil {
			tbl = &Table{Schema: schemaName, Name: name}
		}
		// Same table name in a later search schema is shadowed.
		if schemaName != tbl.Schema {
			continue
		}
		tbl.Columns = append(tbl.Columns, Column{
			Name:     colName,
			DataType: CanonicalType(dataType),
			Nullable: nullable,
			OrdPos:   ordPos,
		})
	}

	return tbl, rows.Err()
}

func (p *Postgres) queryPrimaryKey(ctx context.Context, tbl *Table) error {
	query := `
		SELECT
			a.attname AS column_name,
			u.ord AS key_position
		FROM pg_constraint con
		JOIN pg_class c ON c.oid = con.conrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		CROSS JOIN LATERAL unnest(con.conkey) WITH ORDINALITY AS u(attnum, ord)
		JOIN pg_attribute a ON a.attrelid = c.oid AND a.attnum = u.attnum
		WHERE con.contype = 'p'
			AND n.nspname = $1
			AND c.relname = $2
		ORDER BY u.ord
	`

	rows, err := p.pool.Query(ctx, query, tbl.Schema, tbl.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var colName string
		var keyPos int
		if err := rows.Scan(&colName, &keyPos); err != nil {
			return err
		}
		if tbl.PrimaryKey == nil {
			tbl.PrimaryKey = &PrimaryKey{}
		}
		tbl.PrimaryKey.Columns = append(tbl.PrimaryKey.Columns, colName)
	}

	return rows.Err()
}
