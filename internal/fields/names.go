package fields

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// splitWords splits an identifier into words (handles camelCase, PascalCase, snake_case, kebab-case).
func splitWords(s string) []string {
	s = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(s)

	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			// "userID" splits before I, "HTTPServer" splits before S
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}

	return strings.Fields(b.String())
}

// Humanize turns an identifier into a title-cased phrase: "first_name" -> "First Name".
func Humanize(s string) string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return Title(strings.Join(words, " "))
}

// Title upper-cases the first letter of every word and lower-cases the rest.
func Title(s string) string {
	return cases.Title(language.English).String(s)
}

// Snake converts an identifier to snake_case.
func Snake(s string) string {
	return joinLower(splitWords(s), "_")
}

// Kebab converts an identifier to kebab-case.
func Kebab(s string) string {
	return joinLower(splitWords(s), "-")
}

// Camel converts an identifier to camelCase.
func Camel(s string) string {
	words := splitWords(s)
	for i, w := range words {
		w = strings.ToLower(w)
		if i > 0 {
			w = capitalize(w)
		}
		words[i] = w
	}
	return strings.Join(words, "")
}

// Plural returns the English plural of a word, preserving a camelCase prefix.
func Plural(s string) string {
	return inflection.Plural(s)
}

// TableName returns the conventional table of a model: "BlogPost" -> "blog_posts".
func TableName(model string) string {
	words := splitWords(model)
	if len(words) == 0 {
		return ""
	}
	words[len(words)-1] = Plural(strings.ToLower(words[len(words)-1]))
	return joinLower(words, "_")
}

func joinLower(words []string, sep string) string {
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, sep)
}

// capitalize returns the string with the first letter uppercased.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
