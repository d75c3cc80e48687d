// Package ignore applies a repository's .gitignore to its root listing.
//
// Matching is literal: a rule hides an entry only when it equals the entry
// name, or "/"+name for non-hidden directories. Globs, negation and nested
// paths are not interpreted.
package ignore

import (
	"slices"
	"strings"

	"github.com/kevinmichaelchen/readme-gpt/internal/models"
)

// Rules is the ordered list of effective lines from an ignore file.
type Rules []string

// Parse drops blank lines and "#" comments. Remaining lines are kept
// verbatim, in order.
func Parse(raw string) Rules {
	var rules Rules
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	return rules
}

// Excludes reports whether e is hidden by the rules.
func (r Rules) Excludes(e models.Entry) bool {
	if e.IsDir() && !strings.HasPrefix(e.Name, ".") {
		return slices.Contains(r, "/"+e.Name)
	}
	return slices.Contains(r, e.Name)
}

// Filter returns the entries not excluded by rules, order preserved.
func Filter(entries []models.Entry, rules Rules) []models.Entry {
	out := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if !rules.Excludes(e) {
			out = append(out, e)
		}
	}
	return out
}
