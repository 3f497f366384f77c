package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// RemoveAccents converts accented characters to their base forms.
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// SplitWords splits a string into words, handling camelCase, PascalCase,
// snake_case, kebab-case and arbitrary punctuation.
func SplitWords(s string) []string {
	s = strings.TrimSpace(RemoveAccents(s))
	if s == "" {
		return nil
	}
	var words []string
	for _, part := range nonAlnum.Split(s, -1) {
		if part == "" {
			continue
		}
		words = append(words, splitCamelCase(part)...)
	}
	return words
}

// splitCamelCase splits a camelCase or PascalCase run into words. Acronym
// runs break before their last capital, so "XMLHttp" yields "XML", "Http".
func splitCamelCase(s string) []string {
	var parts []string
	var current strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		boundary := false
		if i > 0 && isUpper(r) {
			if !isUpper(runes[i-1]) {
				boundary = true
			} else if i < len(runes)-1 && !isUpper(runes[i+1]) {
				boundary = true
			}
		}
		if boundary && current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// ToPascalCase converts a string to PascalCase.
func ToPascalCase(s string) string {
	words := SplitWords(s)
	if len(words) == 0 {
		return ""
	}
	b := strings.Builder{}
	for _, w := range words {
		b.WriteString(strings.ToUpper(w[:1]))
		if len(w) > 1 {
			b.WriteString(strings.ToLower(w[1:]))
		}
	}
	return b.String()
}

// ToCamelCase converts a string to camelCase.
func ToCamelCase(s string) string {
	p := ToPascalCase(s)
	if p == "" {
		return ""
	}
	return strings.ToLower(p[:1]) + p[1:]
}

// ToSnakeCase converts a string to snake_case.
func ToSnakeCase(s string) string {
	words := SplitWords(s)
	if len(words) == 0 {
		return ""
	}
	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	return strings.Join(words, "_")
}

// IsIdentifier reports whether s is a plain identifier: a letter or
// underscore followed by letters, digits and underscores.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
