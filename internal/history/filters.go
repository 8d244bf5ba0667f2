package history

import (
	"sort"
	"strings"
)

const (
	andSeparator = " AND "
	orSeparator  = " OR "
)

// EncodeFacetsFilters builds the filter expression facet1:(v1 OR v2) AND facet2:(v3).
// Facets are emitted in the given order, followed by any remaining facet in
// alphabetical order. Facets without terms are skipped.
func EncodeFacetsFilters(terms map[string][]string, order []string) string {
	if len(terms) == 0 {
		return ""
	}

	seen := make(map[string]bool, len(terms))
	names := make([]string, 0, len(terms))
	for _, name := range order {
		if _, ok := terms[name]; ok && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	var rest []string
	for name := range terms {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	names = append(names, rest...)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		if part := EncodeFacet(name, terms[name]); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, andSeparator)
}

// EncodeFacet builds the expression of a single facet, or "" when there are no terms
func EncodeFacet(name string, values []string) string {
	if len(values) == 0 {
		return ""
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quoteTerm(v)
	}
	return name + ":(" + strings.Join(quoted, orSeparator) + ")"
}

// DecodeFacetsFilters reverses EncodeFacetsFilters. Term order within a facet
// follows the expression; a facet named twice accumulates its terms.
func DecodeFacetsFilters(expr string) map[string][]string {
	result := make(map[string][]string)
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return result
	}

	for _, part := range SplitOutsideQuotes(expr, andSeparator) {
		name, rawTerms, found := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			continue
		}
		rawTerms = strings.TrimSpace(rawTerms)
		if strings.HasPrefix(rawTerms, "(") && strings.HasSuffix(rawTerms, ")") {
			rawTerms = rawTerms[1 : len(rawTerms)-1]
		}
		for _, term := range SplitOutsideQuotes(rawTerms, orSeparator) {
			term = unquoteTerm(strings.TrimSpace(term))
			if term == "" {
				continue
			}
			result[name] = append(result[name], term)
		}
	}
	return result
}

// SplitOutsideQuotes splits s around each sep that is not inside a double
// quoted term. A backslash escapes the next character within quotes.
func SplitOutsideQuotes(s, sep string) []string {
	var parts []string
	quoted, escaped := false, false
	start := 0
	for i := 0; i < len(s); i++ {
		switch {
		case escaped:
			escaped = false
		case quoted && s[i] == '\\':
			escaped = true
		case s[i] == '"':
			quoted = !quoted
		case !quoted && strings.HasPrefix(s[i:], sep):
			parts = append(parts, s[start:i])
			start = i + len(sep)
			i = start - 1
		}
	}
	return append(parts, s[start:])
}

// quoteTerm wraps terms containing whitespace or quotes in double quotes
func quoteTerm(term string) string {
	if !strings.ContainsAny(term, " \t\"") {
		return term
	}
	return `"` + termEscaper.Replace(term) + `"`
}

func unquoteTerm(term string) string {
	if len(term) >= 2 && strings.HasPrefix(term, `"`) && strings.HasSuffix(term, `"`) {
		return termUnescaper.Replace(term[1 : len(term)-1])
	}
	return term
}

var (
	termEscaper   = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	termUnescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`)
)
