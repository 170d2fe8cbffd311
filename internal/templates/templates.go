// Package templates embeds the page templates marygen renders.
package templates

import (
	"embed"
	"html"
	"strings"
	"text/template"
)

//go:embed volt/*.tmpl
var voltTemplates embed.FS

// Delimiters used by every template; Blade already claims {{ }}.
const (
	LeftDelim  = "[["
	RightDelim = "]]"
)

// GetPageTemplate returns the Livewire Volt page template content.
func GetPageTemplate() (string, error) {
	content, err := voltTemplates.ReadFile("volt/page.blade.php.tmpl")
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// TemplateFuncs returns the function map available to the templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"attr":    html.EscapeString,
		"php":     PHPString,
		"phpList": PHPList,
		"indent":  Indent,
	}
}

// Indent prefixes every non-empty line of s with n spaces.
func Indent(n int, s string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}
