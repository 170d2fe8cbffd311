package templates

import "strings"

// PHPString escapes s for use inside a single-quoted PHP string literal.
func PHPString(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

// PHPList renders names as a PHP array literal: ['a', 'b'].
func PHPList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + PHPString(n) + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
