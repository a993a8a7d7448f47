// Package memory implements the records stores in process memory. It backs
// unit tests and mirrors the Postgres stores' contract, including sentinel
// errors and transactional rollback via state snapshots.
package memory

import (
	"context"
	"maps"
	"sync"

	"geodocs/internal/records/models"
	"geodocs/internal/records/store"
)

// Store holds all records state behind one lock. The same instance backs the
// area, vocabulary, document, and link store interfaces.
type Store struct {
	mu sync.RWMutex

	nextAreaID int64
	nextDocID  int64

	areas        map[int64]models.Area
	docs         map[int64]models.Document
	stakeholders map[int64][]string
	links        []models.Link
	vocab        map[store.Vocab]map[string]struct{}
	languages    map[string]string
}

func New() *Store {
	return &Store{
		nextAreaID:   1,
		nextDocID:    1,
		areas:        make(map[int64]models.Area),
		docs:         make(map[int64]models.Document),
		stakeholders: make(map[int64][]string),
		vocab: map[store.Vocab]map[string]struct{}{
			store.VocabScale:       {},
			store.VocabDocType:     {},
			store.VocabStakeholder: {},
		},
		languages: make(map[string]string),
	}
}

// Stores returns the store bundle backed by this instance.
func (s *Store) Stores() store.Stores {
	return store.Stores{
		Areas:      &AreaStore{s: s},
		Vocabulary: &VocabularyStore{s: s},
		Documents:  &DocumentStore{s: s},
		Links:      &LinkStore{s: s},
	}
}

// snapshot captures a deep enough copy of the mutable state to restore after
// a failed transaction. Geometries are never mutated in place, so sharing
// them between snapshots is safe.
type snapshot struct {
	nextAreaID   int64
	nextDocID    int64
	areas        map[int64]models.Area
	docs         map[int64]models.Document
	stakeholders map[int64][]string
	links        []models.Link
	vocab        map[store.Vocab]map[string]struct{}
	languages    map[string]string
}

func (s *Store) capture() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		nextAreaID:   s.nextAreaID,
		nextDocID:    s.nextDocID,
		areas:        maps.Clone(s.areas),
		docs:         maps.Clone(s.docs),
		stakeholders: make(map[int64][]string, len(s.stakeholders)),
		links:        append([]models.Link(nil), s.links...),
		vocab:        make(map[store.Vocab]map[string]struct{}, len(s.vocab)),
		languages:    maps.Clone(s.languages),
	}
	for id, labels := range s.stakeholders {
		snap.stakeholders[id] = append([]string(nil), labels...)
	}
	for v, keys := range s.vocab {
		snap.vocab[v] = maps.Clone(keys)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextAreaID = snap.nextAreaID
	s.nextDocID = snap.nextDocID
	s.areas = snap.areas
	s.docs = snap.docs
	s.stakeholders = snap.stakeholders
	s.links = snap.links
	s.vocab = snap.vocab
	s.languages = snap.languages
}

// Tx approximates a database transaction over the memory store: on failure
// the pre-transaction snapshot is restored. Good enough for tests, which run
// one transaction at a time.
type Tx struct {
	s *Store
}

func NewTx(s *Store) *Tx {
	return &Tx{s: s}
}

func (t *Tx) RunInTx(_ context.Context, fn func(s store.Stores) error) error {
	snap := t.s.capture()
	if err := fn(t.s.Stores()); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}
