// Package refactor implements templated filename patterns and journaled bulk renames.
//
// A pattern such as "{repo}.feat.{feature}.v{N}" compiles into literal and
// placeholder tokens. A Matcher extracts placeholder values from an existing
// filename, Render writes them back through another pattern, the Planner
// turns a directory listing into a conflict-free batch, and the Executor
// applies that batch while keeping rollback and retry journals.
package refactor

import (
	"sort"
	"strings"
)

// NumberPlaceholder is the reserved placeholder matched against [1-9][0-9]*.
const NumberPlaceholder Placeholder = "N"

const markdownExt = ".md"

// Placeholder is the name of a field in a pattern, compared case-sensitively.
type Placeholder string

// IsNumber reports whether p is the reserved numeric placeholder.
func (p Placeholder) IsNumber() bool {
	return p == NumberPlaceholder
}

func (p Placeholder) String() string {
	return "{" + string(p) + "}"
}

// Token is either a literal fragment or a placeholder reference.
type Token struct {
	Literal     string
	Placeholder Placeholder
}

// IsPlaceholder reports whether the token refers to a placeholder.
func (t Token) IsPlaceholder() bool {
	return t.Placeholder != ""
}

// Pattern is a compiled template. It is immutable once compiled.
type Pattern struct {
	Raw        string
	Normalized string
	Tokens     []Token

	set map[Placeholder]struct{}
}

// Normalize appends ".md" unless the raw pattern already mentions it.
func Normalize(raw string) string {
	if strings.Contains(raw, markdownExt) {
		return raw
	}
	return raw + markdownExt
}

// Compile parses raw into a Pattern. Errors are always *SyntaxError.
func Compile(raw string) (*Pattern, error) {
	normalized := Normalize(raw)
	tokens, synErr := tokenize(normalized)
	if synErr != nil {
		synErr.Pattern = raw
		return nil, synErr
	}

	set := make(map[Placeholder]struct{})
	for _, tok := range tokens {
		if !tok.IsPlaceholder() {
			continue
		}
		if _, dup := set[tok.Placeholder]; dup {
			return nil, &SyntaxError{Pattern: raw, Reason: ReasonDuplicate, Pos: -1, Name: string(tok.Placeholder)}
		}
		set[tok.Placeholder] = struct{}{}
	}

	return &Pattern{
		Raw:        raw,
		Normalized: normalized,
		Tokens:     tokens,
		set:        set,
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(raw string) *Pattern {
	p, err := Compile(raw)
	if err != nil {
		panic("refactor: Compile(" + raw + "): " + err.Error())
	}
	return p
}

// tokenize splits pattern into tokens. Normalization only appends, so error
// positions are valid offsets into the raw pattern too.
func tokenize(pattern string) ([]Token, *SyntaxError) {
	var tokens []Token
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, Token{Literal: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '{':
			flush()
			end := i + 1
			for end < len(pattern) && pattern[end] != '}' {
				if pattern[end] == '{' {
					return nil, &SyntaxError{Reason: ReasonNestedPlaceholder, Pos: end}
				}
				end++
			}
			if end == len(pattern) {
				return nil, &SyntaxError{Reason: ReasonUnclosedPlaceholder, Pos: i}
			}
			name := pattern[i+1 : end]
			if name == "" {
				return nil, &SyntaxError{Reason: ReasonEmptyPlaceholder, Pos: i}
			}
			tokens = append(tokens, Token{Placeholder: Placeholder(name)})
			i = end
		case '}':
			return nil, &SyntaxError{Reason: ReasonUnopenedPlaceholder, Pos: i}
		case '[':
			return nil, &SyntaxError{Reason: ReasonUnclosedBracket, Pos: i}
		case ']':
			return nil, &SyntaxError{Reason: ReasonUnopenedBracket, Pos: i}
		default:
			literal.WriteByte(c)
		}
	}
	flush()

	return tokens, nil
}

// Placeholders returns the pattern's placeholder set, sorted by name.
func (p *Pattern) Placeholders() []Placeholder {
	out := make([]Placeholder, 0, len(p.set))
	for ph := range p.set {
		out = append(out, ph)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Has reports whether the pattern references ph.
func (p *Pattern) Has(ph Placeholder) bool {
	_, ok := p.set[ph]
	return ok
}

func (p *Pattern) String() string {
	return p.Normalized
}

// CheckPlaceholders returns a *ConsistencyError unless source and target
// reference the same placeholder set.
func CheckPlaceholders(source, target *Pattern) error {
	var missingInTarget, missingInSource []Placeholder
	for _, ph := range source.Placeholders() {
		if !target.Has(ph) {
			missingInTarget = append(missingInTarget, ph)
		}
	}
	for _, ph := range target.Placeholders() {
		if !source.Has(ph) {
			missingInSource = append(missingInSource, ph)
		}
	}
	if len(missingInTarget) == 0 && len(missingInSource) == 0 {
		return nil
	}
	return &ConsistencyError{
		Source:          source.Placeholders(),
		Target:          target.Placeholders(),
		MissingInTarget: missingInTarget,
		MissingInSource: missingInSource,
	}
}
