package refactor

import "sort"

// RenamePlan is one proposed rename. Both names are bare filenames.
type RenamePlan struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// IsNoop reports whether the rename leaves the name unchanged.
func (p RenamePlan) IsNoop() bool {
	return p.From == p.To
}

// Inverse swaps From and To.
func (p RenamePlan) Inverse() RenamePlan {
	return RenamePlan{From: p.To, To: p.From}
}

// Planner turns a listing into a vetted rename batch.
type Planner struct {
	// Exists reports whether a filename is already present on disk.
	// A nil Exists treats every name as absent.
	Exists func(name string) bool

	// Force skips the pre-existing target check.
	Force bool
}

// Plan matches every filename against source, renders matches through target
// and validates the whole batch. Non-matching names are skipped. The returned
// batch may contain no-op entries; use Pending before executing.
//
// Callers are expected to have run CheckPlaceholders on the two patterns.
func (pl *Planner) Plan(files []string, source, target *Pattern) ([]RenamePlan, error) {
	m, err := NewMatcher(source)
	if err != nil {
		return nil, err
	}

	plans := make([]RenamePlan, 0, len(files))
	for _, name := range files {
		values, ok := m.Capture(name)
		if !ok {
			continue
		}
		plans = append(plans, RenamePlan{From: name, To: Render(target, values)})
	}

	if err := CheckDuplicates(plans); err != nil {
		return nil, err
	}
	if !pl.Force {
		if err := CheckExisting(plans, pl.Exists); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

// CheckDuplicates returns a *ConflictError naming every destination produced
// by more than one source. Groups are ordered by destination; sources keep
// their batch order.
func CheckDuplicates(plans []RenamePlan) error {
	bySource := make(map[string][]string)
	for _, p := range plans {
		bySource[p.To] = append(bySource[p.To], p.From)
	}

	var dups []DuplicateTarget
	for target, sources := range bySource {
		if len(sources) > 1 {
			dups = append(dups, DuplicateTarget{Target: target, Sources: sources})
		}
	}
	if len(dups) == 0 {
		return nil
	}
	sort.Slice(dups, func(i, j int) bool { return dups[i].Target < dups[j].Target })
	return &ConflictError{Kind: ConflictDuplicateTarget, Duplicates: dups}
}

// CheckExisting returns a *ConflictError naming every non-no-op entry whose
// destination already exists.
func CheckExisting(plans []RenamePlan, exists func(string) bool) error {
	if exists == nil {
		return nil
	}
	var existing []RenamePlan
	for _, p := range plans {
		if p.IsNoop() {
			continue
		}
		if exists(p.To) {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return &ConflictError{Kind: ConflictTargetExists, Existing: existing}
}

// Pending drops no-op entries, keeping order.
func Pending(plans []RenamePlan) []RenamePlan {
	out := make([]RenamePlan, 0, len(plans))
	for _, p := range plans {
		if !p.IsNoop() {
			out = append(out, p)
		}
	}
	return out
}

// Invert returns the batch that undoes plans: reversed order, each entry swapped.
func Invert(plans []RenamePlan) []RenamePlan {
	out := make([]RenamePlan, 0, len(plans))
	for i := len(plans) - 1; i >= 0; i-- {
		out = append(out, plans[i].Inverse())
	}
	return out
}
