package refactor

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	numberClass = `([1-9][0-9]*)`
	slugClass   = `([a-z][a-z0-9-]*)`
)

// Values maps placeholders to the text they captured or will render.
type Values map[Placeholder]string

// Matcher extracts placeholder values from filenames shaped like a pattern.
//
// Matching uses Go's leftmost-first regexp semantics with greedy classes: when
// a literal separator can also occur inside a slug (for example "-"), the
// earlier placeholder takes the longest run that still lets the whole name
// match. "{a}-{b}" against "x-y-z" yields a="x-y", b="z".
type Matcher struct {
	re    *regexp.Regexp
	order []Placeholder
}

// NewMatcher compiles the pattern into an anchored extraction rule.
func NewMatcher(p *Pattern) (*Matcher, error) {
	var b strings.Builder
	var order []Placeholder

	b.WriteString("^")
	for _, tok := range p.Tokens {
		if !tok.IsPlaceholder() {
			b.WriteString(regexp.QuoteMeta(tok.Literal))
			continue
		}
		order = append(order, tok.Placeholder)
		if tok.Placeholder.IsNumber() {
			b.WriteString(numberClass)
		} else {
			b.WriteString(slugClass)
		}
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("compile matcher for %q: %w", p.Normalized, err)
	}
	return &Matcher{re: re, order: order}, nil
}

// Capture returns the placeholder values in name, or false when name does
// not have the pattern's shape.
func (m *Matcher) Capture(name string) (Values, bool) {
	groups := m.re.FindStringSubmatch(name)
	if groups == nil {
		return nil, false
	}
	values := make(Values, len(m.order))
	for i, ph := range m.order {
		values[ph] = groups[i+1]
	}
	return values, true
}
