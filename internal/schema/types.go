package schema

import (
	"context"
	"errors"
)

// ErrTableNotFound is returned when the introspected table has no columns.
var ErrTableNotFound = errors.New("table not found")

// Column represents a database column.
type Column struct {
	Name     string
	DataType string // canonical storage type (e.g. "integer", "varchar", "bool")
	Nullable bool
	OrdPos   int // ordinal position (1-based)
}

// PrimaryKey represents a table's primary key.
type PrimaryKey struct {
	Columns []string
}

// Table represents a database table with its columns and PK.
type Table struct {
	Schema     string
	Name       string
	Columns    []Column
	PrimaryKey *PrimaryKey
}

// Introspector reads the column layout of a single table.
type Introspector interface {
	Introspect(ctx context.Context, table string) (*Table, error)
	Close() error
}

// FullName returns schema-qualified table name.
func (t *Table) FullName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// ColumnNames returns all column names in ordinal order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// PKColumnNames returns the primary key column names, or nil if no PK.
func (t *Table) PKColumnNames() []string {
	if t.PrimaryKey == nil {
		return nil
	}
	return t.PrimaryKey.Columns
}

// Column looks up a column by name.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}
