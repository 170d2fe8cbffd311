// Package render turns field mappings into the blocks of a Livewire Volt page.
package render

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"
	"text/template"

	"github.com/hurou927/marygen/internal/fields"
	"github.com/hurou927/marygen/internal/templates"
	"github.com/hurou927/marygen/internal/translate"
)

// Page describes the model a page is generated for.
type Page struct {
	Model          string // "User"
	ModelNamespace string // `App\Models`
	PrimaryKey     string
	UniqueIDs      bool // primary key values are quoted when true
	SortColumn     string
	SearchFilter   bool
	Columns        []string // every table column, primary key included
	Fields         []fields.Mapping
}

// Renderer renders page blocks for one MaryUI component prefix.
type Renderer struct {
	prefix     string
	translator translate.Translator
	tmpl       *template.Template
}

// New creates a Renderer. A nil translator leaves every string untranslated.
func New(prefix string, translator translate.Translator) (*Renderer, error) {
	if translator == nil {
		translator = translate.Noop{}
	}

	content, err := templates.GetPageTemplate()
	if err != nil {
		return nil, fmt.Errorf("loading page template: %w", err)
	}

	tmpl, err := template.New("page").
		Delims(templates.LeftDelim, templates.RightDelim).
		Funcs(templates.TemplateFuncs()).
		Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	return &Renderer{prefix: prefix, translator: translator, tmpl: tmpl}, nil
}

// translate passes one string through the translator.
func (r *Renderer) translate(ctx context.Context, s string) (string, error) {
	out, err := r.translator.Translate(ctx, s)
	if err != nil {
		return "", fmt.Errorf("translating %q: %w", s, err)
	}
	return out, nil
}

// FormFields renders one MaryUI widget per field, in field order.
func (r *Renderer) FormFields(ctx context.Context, mapped []fields.Mapping) (string, error) {
	var b strings.Builder
	for _, f := range mapped {
		label, err := r.translate(ctx, fields.Humanize(f.Name))
		if err != nil {
			return "", err
		}

		widget := f.Widget
		attrs := make([]string, 0, 5)
		if f.Name == "password" {
			widget = fields.WidgetInput
			attrs = append(attrs, `type="password"`)
		}
		attrs = append(attrs, fmt.Sprintf(`wire:model="%s"`, f.Name))
		if f.Icon != "" {
			attrs = append(attrs, fmt.Sprintf(`icon="%s"`, f.Icon))
		}
		if f.Required {
			attrs = append(attrs, "required")
		}
		attrs = append(attrs, fmt.Sprintf(`label="%s"`, html.EscapeString(label)))

		fmt.Fprintf(&b, "<x-%s%s %s />\n", r.prefix, widget, strings.Join(attrs, " "))
	}
	return b.String(), nil
}

// Properties renders one validated public property per field.
func (r *Renderer) Properties(mapped []fields.Mapping) string {
	var b strings.Builder
	for i, f := range mapped {
		if i > 0 {
			b.WriteString("\n")
		}
		if f.Required {
			fmt.Fprintf(&b, "#[Validate('required')]\npublic %s $%s;\n", f.Scalar, f.Name)
		} else {
			fmt.Fprintf(&b, "#[Validate('nullable')]\npublic ?%s $%s = null;\n", f.Scalar, f.Name)
		}
	}
	return b.String()
}

// TableColumns renders the table header descriptors, ending with the actions column.
func (r *Renderer) TableColumns(ctx context.Context, mapped []fields.Mapping) (string, error) {
	var b strings.Builder
	for _, f := range mapped {
		label, err := r.translate(ctx, fields.Humanize(f.Name))
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "['key' => '%s', 'label' => '%s', 'sortable' => true],\n",
			templates.PHPString(f.Name), templates.PHPString(label))
	}

	actions, err := r.translate(ctx, "Actions")
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "['key' => 'actions', 'label' => '%s', 'sortable' => false],\n", templates.PHPString(actions))

	return b.String(), nil
}

// SearchClause renders the optional mgLike query filter over every column.
func SearchClause(columns []string) string {
	return fmt.Sprintf("->when($this->search, fn(Builder $q) => $q->mgLike(%s, $this->search))",
		templates.PHPList(columns))
}

// pageData is the value the page template executes against.
type pageData struct {
	Page
	ModelFQCN      string
	ModelVariable  string
	PluralVariable string
	Prefix         string
	Quote          string
	FieldNames     []string
	FormFields     string
	Properties     string
	TableColumns   string
	SearchClause   string
	Text           uiText
}

// Render assembles the complete page.
func (r *Renderer) Render(ctx context.Context, p Page) (string, error) {
	modelVar := fields.Camel(p.Model)
	data := pageData{
		Page:           p,
		ModelFQCN:      strings.TrimSuffix(p.ModelNamespace, `\`) + `\` + p.Model,
		ModelVariable:  modelVar,
		PluralVariable: fields.Plural(modelVar),
		Prefix:         r.prefix,
		Properties:     r.Properties(p.Fields),
	}

	if p.UniqueIDs {
		data.Quote = "'"
	}
	for _, f := range p.Fields {
		data.FieldNames = append(data.FieldNames, f.Name)
	}
	if p.SearchFilter {
		data.SearchClause = SearchClause(p.Columns)
	}

	var err error
	if data.FormFields, err = r.FormFields(ctx, p.Fields); err != nil {
		return "", err
	}
	if data.TableColumns, err = r.TableColumns(ctx, p.Fields); err != nil {
		return "", err
	}
	if data.Text, err = r.uiText(ctx, p.Model, fields.Title(data.PluralVariable)); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	return buf.String(), nil
}
