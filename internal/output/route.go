package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/hurou927/marygen/internal/fields"
)

// RouteLine returns the Volt route declaration for a table and view.
func RouteLine(slug, view string) string {
	return fmt.Sprintf("Volt::route('/%s', '%s');", slug, strings.ReplaceAll(view, "/", "."))
}

// AppendRoute appends the Volt route for table to routesFile unless the exact
// line is already present. It returns the URL slug and whether the file changed.
func AppendRoute(routesFile, table, view string) (string, bool, error) {
	slug := fields.Kebab(table)

	content, err := os.ReadFile(routesFile)
	if err != nil {
		return "", false, fmt.Errorf("reading routes file: %w", err)
	}

	route := RouteLine(slug, view)
	if strings.Contains(string(content), route) {
		return slug, false, nil
	}

	var b strings.Builder
	b.Write(content)
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		b.WriteString("\n")
	}
	b.WriteString(route)
	b.WriteString("\n")

	if err := os.WriteFile(routesFile, []byte(b.String()), 0644); err != nil {
		return "", false, fmt.Errorf("writing routes file: %w", err)
	}
	return slug, true, nil
}
