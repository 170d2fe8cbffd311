// Package scaffold generates a Livewire Volt CRUD page for an Eloquent model.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hurou927/marygen/internal/config"
	"github.com/hurou927/marygen/internal/fields"
	"github.com/hurou927/marygen/internal/manifest"
	"github.com/hurou927/marygen/internal/output"
	"github.com/hurou927/marygen/internal/render"
	"github.com/hurou927/marygen/internal/schema"
	"github.com/hurou927/marygen/internal/translate"
)

var (
	// ErrModelNotFound is returned when the model class cannot be autoloaded.
	ErrModelNotFound = errors.New("model not found")
	// ErrLanguageOptions is returned when a source language is given without a destination.
	ErrLanguageOptions = errors.New("inconsistent language options")
)

// Packages the generated page depends on, with install hints.
var requiredPackages = []struct {
	name string
	hint string
}{
	{"robsontenorio/mary", "MaryUI package not found! Please install using: `composer req robsontenorio/mary`"},
	{"livewire/volt", "Livewire Volt package not found! Please run: `composer require livewire/livewire livewire/volt && php artisan volt:install`"},
}

// Options are the per-run inputs of the make command.
type Options struct {
	Model      string
	ViewName   string
	SourceLang string
	DestLang   string
	NoRoute    bool
	DryRun     bool
}

// Validate checks option combinations that do not need any I/O.
func (o Options) Validate() error {
	if o.Model == "" {
		return fmt.Errorf("model name is required")
	}
	if o.SourceLang != "" && o.DestLang == "" {
		return fmt.Errorf("%w: --source-lang requires --dest-lang", ErrLanguageOptions)
	}
	return nil
}

// Result describes what a run produced.
type Result struct {
	Model      string
	Table      string
	ViewPath   string
	Content    string
	RouteSlug  string
	RouteAdded bool
	URL        string
}

// Opener connects to the database. The generator calls it only after every
// precondition has passed and closes the introspector it returns.
type Opener func(ctx context.Context) (schema.Introspector, error)

// Generator orchestrates the page generation.
type Generator struct {
	cfg        *config.Config
	open       Opener
	translator translate.Translator
	log        *slog.Logger
}

// New creates a Generator. A nil translator disables translation.
func New(cfg *config.Config, open Opener, translator translate.Translator, log *slog.Logger) *Generator {
	if translator == nil {
		translator = translate.Noop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Generator{
		cfg:        cfg,
		open:       open,
		translator: translator,
		log:        log,
	}
}

// Target is a page whose preconditions have been checked.
type Target struct {
	Model     string
	ModelFQCN string
	ViewName  string
	ViewPath  string
}

// Prepare runs every check that needs no database: option consistency,
// required packages, model class and an existing view file.
func (g *Generator) Prepare(opts Options) (*Target, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	m, err := g.CheckDependencies()
	if err != nil {
		return nil, err
	}

	fqcn, err := g.ResolveModel(m, opts.Model)
	if err != nil {
		return nil, err
	}

	viewName := opts.ViewName
	if viewName == "" {
		viewName = opts.Model
	}
	viewName = strings.ToLower(viewName)
	viewPath := output.ViewPath(g.cfg.Path(g.cfg.ViewPath), viewName)

	exists, err := output.ViewExists(viewPath)
	if err != nil {
		return nil, fmt.Errorf("checking view file: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: file %s.blade.php already exists", output.ErrViewExists, viewName)
	}

	return &Target{
		Model:     opts.Model,
		ModelFQCN: fqcn,
		ViewName:  viewName,
		ViewPath:  viewPath,
	}, nil
}

// CheckDependencies verifies the project declares every package the page uses.
func (g *Generator) CheckDependencies() (*manifest.Manifest, error) {
	m, err := manifest.Load(g.cfg.Path(g.cfg.Manifest))
	if err != nil {
		return nil, err
	}
	for _, pkg := range requiredPackages {
		if err := m.RequirePackage(pkg.name); err != nil {
			return nil, fmt.Errorf("%w\n%s", err, pkg.hint)
		}
	}
	return m, nil
}

// ResolveModel checks the model class exists and returns its fully qualified name.
func (g *Generator) ResolveModel(m *manifest.Manifest, model string) (string, error) {
	fqcn := strings.TrimSuffix(g.cfg.ModelNamespace, `\`) + `\` + model
	path, ok := m.ClassPath(g.cfg.ProjectDir, fqcn)
	if !ok {
		return "", fmt.Errorf("%w: model %s does not exist", ErrModelNotFound, model)
	}
	g.log.Debug("resolved model", "class", fqcn, "path", path)
	return fqcn, nil
}

// TableFor returns the table backing model.
func (g *Generator) TableFor(model string) string {
	if t := g.cfg.ModelFor(model).Table; t != "" {
		return t
	}
	return fields.TableName(model)
}

// Inspect introspects the model's table and maps its non-key columns.
func (g *Generator) Inspect(ctx context.Context, model string) (*schema.Table, string, []fields.Mapping, error) {
	in, err := g.open(ctx)
	if err != nil {
		return nil, "", nil, fmt.Errorf("connecting to database: %w", err)
	}
	defer in.Close()

	tableName := g.TableFor(model)
	tbl, err := in.Introspect(ctx, tableName)
	if err != nil {
		return nil, "", nil, fmt.Errorf("introspecting table %s: %w", tableName, err)
	}
	pk := primaryKey(tbl, g.cfg.ModelFor(model).PrimaryKey)
	g.log.Debug("introspected table", "table", tbl.FullName(), "columns", len(tbl.Columns), "primary_key", pk)
	return tbl, pk, fields.MapColumns(tbl.Columns, pk), nil
}

// primaryKey prefers the configured key, then the first introspected PK column, then "id".
func primaryKey(tbl *schema.Table, override string) string {
	if override != "" {
		return override
	}
	if pks := tbl.PKColumnNames(); len(pks) > 0 {
		return pks[0]
	}
	return "id"
}

// Generate checks the project, renders the page and writes it with its route.
func (g *Generator) Generate(ctx context.Context, opts Options) (*Result, error) {
	target, err := g.Prepare(opts)
	if err != nil {
		return nil, err
	}

	tbl, pk, mapped, err := g.Inspect(ctx, opts.Model)
	if err != nil {
		return nil, err
	}

	page := render.Page{
		Model:          opts.Model,
		ModelNamespace: strings.TrimSuffix(target.ModelFQCN, `\`+opts.Model),
		PrimaryKey:     pk,
		UniqueIDs:      usesUniqueIDs(tbl, pk),
		SortColumn:     pk,
		SearchFilter:   g.cfg.SearchFilter,
		Columns:        tbl.ColumnNames(),
		Fields:         mapped,
	}
	if tbl.HasColumn("created_at") {
		page.SortColumn = "created_at"
	}

	renderer, err := render.New(g.cfg.ComponentPrefix, g.translator)
	if err != nil {
		return nil, err
	}
	content, err := renderer.Render(ctx, page)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Model:    opts.Model,
		Table:    tbl.Name,
		ViewPath: target.ViewPath,
		Content:  content,
	}
	if opts.DryRun {
		return res, nil
	}

	if err := output.WriteView(target.ViewPath, content); err != nil {
		return nil, err
	}
	g.log.Debug("wrote view", "path", target.ViewPath, "bytes", len(content))

	if opts.NoRoute {
		return res, nil
	}

	res.RouteSlug, res.RouteAdded, err = output.AppendRoute(g.cfg.Path(g.cfg.RoutesFile), tbl.Name, target.ViewName)
	if err != nil {
		// the view stays on disk; nothing is rolled back
		return res, fmt.Errorf("updating routes: %w", err)
	}
	res.URL = strings.TrimSuffix(g.cfg.AppURL, "/") + "/" + res.RouteSlug
	if !res.RouteAdded {
		g.log.Debug("route already present", "slug", res.RouteSlug)
	}

	return res, nil
}

// usesUniqueIDs reports whether primary key values are non-integer identifiers.
func usesUniqueIDs(tbl *schema.Table, pk string) bool {
	col, ok := tbl.Column(pk)
	if !ok {
		return false
	}
	return fields.ScalarFor(col.DataType) != fields.ScalarInt
}
