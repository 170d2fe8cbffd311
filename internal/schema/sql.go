package schema

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
)

// MySQL introspects tables of the connected MySQL or MariaDB database.
type MySQL struct {
	db *sql.DB
}

// NewMySQL creates a MySQL introspector.
func NewMySQL(db *sql.DB) *MySQL {
	return &MySQL{db: db}
}

// Introspect returns the columns and PK of a table in the current database.
func (m *MySQL) Introspect(ctx context.Context, name string) (*Table, error) {
	query := `
		SELECT
			COLUMN_NAME,
			IS_NULLABLE = 'YES',
			COLUMN_TYPE,
			DATA_TYPE,
			COLUMN_KEY = 'PRI',
			ORDINAL_POSITION
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = DATABASE()
			AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`

	rows, err := m.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}
	defer rows.Close()

	tbl := &Table{Name: name}
	for rows.Next() {
		var colName, colType, dataType string
		var nullable, primary bool
		var ordPos int
		if err := rows.Scan(&colName, &nullable, &colType, &dataType, &primary, &ordPos); err != nil {
			return nil, fmt.Errorf("querying columns: %w", err)
		}

		typ := CanonicalType(dataType)
		if CanonicalType(colType) == "bool" {
			typ = "bool"
		}
		tbl.Columns = append(tbl.Columns, Column{
			Name:     colName,
			DataType: typ,
			Nullable: nullable,
			OrdPos:   ordPos,
		})
		if primary {
			if tbl.PrimaryKey == nil {
				tbl.PrimaryKey = &PrimaryKey{}
			}
			tbl.PrimaryKey.Columns = append(tbl.PrimaryKey.Columns, colName)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}

	if len(tbl.Columns) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	return tbl, nil
}

// Close closes the underlying database handle.
func (m *MySQL) Close() error {
	return m.db.Close()
}

// SQLite introspects tables of an SQLite database file.
type SQLite struct {
	db *sql.DB
}

// NewSQLite creates an SQLite introspector.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// Introspect returns the columns and PK of a table using pragma_table_info.
func (s *SQLite) Introspect(ctx context.Context, name string) (*Table, error) {
	query := `SELECT cid, name, type, "notnull", pk FROM pragma_table_info(?) ORDER BY cid`

	rows, err := s.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}
	defer rows.Close()

	type pkCol struct {
		name string
		pos  int
	}
	var pks []pkCol

	tbl := &Table{Schema: "main", Name: name}
	for rows.Next() {
		var cid, pk int
		var colName, colType string
		var notNull bool
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &pk); err != nil {
			return nil, fmt.Errorf("querying columns: %w", err)
		}
		tbl.Columns = append(tbl.Columns, Column{
			Name:     colName,
			DataType: CanonicalType(colType),
			Nullable: !notNull,
			OrdPos:   cid + 1,
		})
		if pk > 0 {
			pks = append(pks, pkCol{name: colName, pos: pk})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}

	if len(tbl.Columns) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}

	if len(pks) > 0 {
		sort.Slice(pks, func(i, j int) bool { return pks[i].pos < pks[j].pos })
		tbl.PrimaryKey = &PrimaryKey{}
		for _, p := range pks {
			tbl.PrimaryKey.Columns = append(tbl.PrimaryKey.Columns, p.name)
		}
	}
	return tbl, nil
}

// Close closes the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
