package refactor

import "strings"

// Render writes values through the pattern. Placeholders without a value
// render as empty text.
func Render(p *Pattern, values Values) string {
	var b strings.Builder
	for _, tok := range p.Tokens {
		if tok.IsPlaceholder() {
			b.WriteString(values[tok.Placeholder])
			continue
		}
		b.WriteString(tok.Literal)
	}
	return b.String()
}
