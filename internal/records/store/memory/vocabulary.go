package memory

import (
	"context"
	"sort"

	"geodocs/internal/records/store"
)

// VocabularyStore implements store.VocabularyStore over the shared memory
// state.
type VocabularyStore struct {
	s *Store
}

func (v *VocabularyStore) Exists(_ context.Context, vocab store.Vocab, key string) (bool, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	_, ok := v.s.vocab[vocab][key]
	return ok, nil
}

func (v *VocabularyStore) Ensure(_ context.Context, vocab store.Vocab, key string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	v.s.vocab[vocab][key] = struct{}{}
	return nil
}

func (v *VocabularyStore) List(_ context.Context, vocab store.Vocab) ([]string, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	labels := make([]string, 0, len(v.s.vocab[vocab]))
	for label := range v.s.vocab[vocab] {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels, nil
}

func (v *VocabularyStore) LanguageExists(_ context.Context, id string) (bool, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	_, ok := v.s.languages[id]
	return ok, nil
}

func (v *VocabularyStore) EnsureLanguage(_ context.Context, id, name string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	if _, ok := v.s.languages[id]; !ok {
		v.s.languages[id] = name
	}
	return nil
}
