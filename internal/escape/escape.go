// Package escape rewrites LaTeX bracket delimiters into the dollar-sign
// delimiters understood by most Markdown math renderers.
package escape

import "strings"

// Rule is a single literal substitution.
type Rule struct {
	Old string
	New string
}

var rules = []Rule{
	{Old: `\[`, New: "$$"},
	{Old: `\]`, New: "$$"},
	{Old: `\(`, New: "$"},
	{Old: `\)`, New: "$"},
}

// Rules returns the substitutions in the order Transform applies them.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Transform applies every rule to text, one full pass per rule, in order.
// Nothing else is touched: existing dollar signs stay as they are and
// unbalanced delimiters are converted just the same.
func Transform(text string) string {
	for _, r := range rules {
		text = strings.ReplaceAll(text, r.Old, r.New)
	}
	return text
}

// Count reports how many substitutions Transform would make on text.
func Count(text string) int {
	n := 0
	for _, r := range rules {
		n += strings.Count(text, r.Old)
		text = strings.ReplaceAll(text, r.Old, r.New)
	}
	return n
}
