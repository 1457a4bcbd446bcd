package refactor

import "sync"

// MemoryJournal is an in-process JournalStore.
type MemoryJournal struct {
	mu       sync.Mutex
	journals map[JournalKind][]RenamePlan
}

// NewMemoryJournal returns an empty store.
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{journals: make(map[JournalKind][]RenamePlan)}
}

func (m *MemoryJournal) Load(kind JournalKind) ([]RenamePlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	plans, ok := m.journals[kind]
	if !ok {
		return nil, ErrJournalNotFound
	}
	return append([]RenamePlan(nil), plans...), nil
}

func (m *MemoryJournal) Save(kind JournalKind, plans []RenamePlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.journals[kind] = append([]RenamePlan{}, plans...)
	return nil
}

func (m *MemoryJournal) Clear(kind JournalKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.journals, kind)
	return nil
}

// Has reports whether a journal of the given kind is stored.
func (m *MemoryJournal) Has(kind JournalKind) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.journals[kind]
	return ok
}
