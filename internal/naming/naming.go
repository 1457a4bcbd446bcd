// Package naming holds the two canonical document filename grammars and the
// list of files exempt from them.
package naming

import (
	"fmt"
	"regexp"
	"strconv"
)

// Canonical patterns, in refactor template syntax.
const (
	FeatPattern  = "{repo}.feat.{feature}.{type}.{variant}.v{N}.md"
	SopPattern   = "{repo}.sop.{name}.v{N}.md"
	ShortPattern = "{repo}.feat.{feature}.{type}.{variant}.v{N}"
)

// Category is the document family encoded in the filename.
type Category string

const (
	CategoryFeat Category = "feat"
	CategorySop  Category = "sop"
)

var (
	featRe = regexp.MustCompile(`^([a-z][a-z0-9-]*)\.feat\.([a-z][a-z0-9-]*)\.([a-z][a-z0-9-]*)\.([a-z][a-z0-9-]*)\.v([1-9][0-9]*)\.md$`)
	sopRe  = regexp.MustCompile(`^([a-z][a-z0-9-]*)\.sop\.([a-z][a-z0-9-]*)\.v([1-9][0-9]*)\.md$`)
)

// Parsed is a filename decomposed by one of the canonical grammars.
// Feature, Type and Variant are set for feat documents, Name for sop documents.
type Parsed struct {
	Category Category `json:"category"`
	Repo     string   `json:"repo"`
	Feature  string   `json:"feature,omitempty"`
	Type     string   `json:"type,omitempty"`
	Variant  string   `json:"variant,omitempty"`
	Name     string   `json:"name,omitempty"`
	Version  int      `json:"version"`
}

// InvalidError is returned by Parse for names matching neither grammar.
type InvalidError struct {
	Filename string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("Invalid: does not match pattern\n  feat: %s\n  sop:  %s", FeatPattern, SopPattern)
}

// Parse decomposes name using the feat grammar, then the sop grammar.
func Parse(name string) (*Parsed, error) {
	if m := featRe.FindStringSubmatch(name); m != nil {
		v, err := strconv.Atoi(m[5])
		if err != nil {
			return nil, fmt.Errorf("invalid version %q: %w", m[5], err)
		}
		return &Parsed{
			Category: CategoryFeat,
			Repo:     m[1],
			Feature:  m[2],
			Type:     m[3],
			Variant:  m[4],
			Version:  v,
		}, nil
	}
	if m := sopRe.FindStringSubmatch(name); m != nil {
		v, err := strconv.Atoi(m[3])
		if err != nil {
			return nil, fmt.Errorf("invalid version %q: %w", m[3], err)
		}
		return &Parsed{
			Category: CategorySop,
			Repo:     m[1],
			Name:     m[2],
			Version:  v,
		}, nil
	}
	return nil, &InvalidError{Filename: name}
}

// IsValid reports whether name matches either canonical grammar.
func IsValid(name string) bool {
	return featRe.MatchString(name) || sopRe.MatchString(name)
}

// ExemptReason returns why name is exempt from the grammars, or "".
func ExemptReason(name string) string {
	switch name {
	case "README.md", "prompts.md":
		return "documentation"
	case ".gitignore", ".DS_Store":
		return "system"
	}
	return ""
}
