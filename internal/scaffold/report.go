package scaffold

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hurou927/marygen/internal/fields"
)

// Report describes how a model's columns map to page fields.
type Report struct {
	Model      string        `yaml:"model"`
	Table      string        `yaml:"table"`
	PrimaryKey string        `yaml:"primary_key"`
	UniqueIDs  bool          `yaml:"unique_ids"`
	HasPK      bool          `yaml:"-"`
	Fields     []FieldReport `yaml:"fields"`
}

// FieldReport is one mapped column.
type FieldReport struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Nullable bool   `yaml:"nullable"`
	Widget   string `yaml:"widget"`
	Scalar   string `yaml:"scalar"`
	Icon     string `yaml:"icon,omitempty"`
	Label    string `yaml:"label"`
}

// Columns builds the field mapping report for model without rendering anything.
func (g *Generator) Columns(ctx context.Context, model string) (*Report, error) {
	tbl, pk, mapped, err := g.Inspect(ctx, model)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Model:      model,
		Table:      tbl.FullName(),
		PrimaryKey: pk,
		UniqueIDs:  usesUniqueIDs(tbl, pk),
		HasPK:      tbl.PrimaryKey != nil,
	}
	for _, m := range mapped {
		col, _ := tbl.Column(m.Name)
		r.Fields = append(r.Fields, FieldReport{
			Name:     m.Name,
			Type:     col.DataType,
			Nullable: col.Nullable,
			Widget:   string(m.Widget),
			Scalar:   string(m.Scalar),
			Icon:     m.Icon,
			Label:    fields.Humanize(m.Name),
		})
	}
	return r, nil
}

// WriteText writes a human-readable summary of the report to w.
func WriteText(w io.Writer, r *Report) error {
	fmt.Fprintf(w, "Model: %s\n", r.Model)
	fmt.Fprintf(w, "Table: %s\n", r.Table)
	fmt.Fprintf(w, "Primary key: %s\n", r.PrimaryKey)
	if r.UniqueIDs {
		fmt.Fprintf(w, "Unique IDs: yes\n")
	}
	if !r.HasPK {
		fmt.Fprintf(w, "WARNING: table has no primary key, assuming %q\n", r.PrimaryKey)
	}
	fmt.Fprintf(w, "Fields: %d\n\n", len(r.Fields))

	nameWidth := len("COLUMN")
	for _, f := range r.Fields {
		nameWidth = max(nameWidth, len(f.Name))
	}
	row := func(cols ...any) {
		line := fmt.Sprintf("  %-*s  %-10s  %-10s  %-6s  %-8s  %s", append([]any{nameWidth}, cols...)...)
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	row("COLUMN", "TYPE", "WIDGET", "SCALAR", "REQUIRED", "ICON")
	for _, f := range r.Fields {
		required := "yes"
		if f.Nullable {
			required = "no"
		}
		row(f.Name, f.Type, f.Widget, f.Scalar, required, f.Icon)
	}
	return nil
}

// WriteYAML writes the report as a YAML document to w.
func WriteYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}
