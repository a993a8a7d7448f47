package memory

import (
	"context"

	"geodocs/internal/records/models"
)

// LinkStore implements store.LinkStore over the shared memory state.
type LinkStore struct {
	s *Store
}

func (l *LinkStore) Exists(_ context.Context, a, b int64, linkType string) (bool, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()

	for _, link := range l.s.links {
		if link.Type == linkType && sameEndpoints(link, a, b) {
			return true, nil
		}
	}
	return false, nil
}

func (l *LinkStore) Insert(_ context.Context, doc1, doc2 int64, linkType string) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	l.s.links = append(l.s.links, models.Link{Doc1: doc1, Doc2: doc2, Type: linkType})
	return nil
}

func (l *LinkStore) Delete(_ context.Context, a, b int64, linkType string) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	kept := make([]models.Link, 0, len(l.s.links))
	for _, link := range l.s.links {
		if link.Type == linkType && sameEndpoints(link, a, b) {
			continue
		}
		kept = append(kept, link)
	}
	l.s.links = kept
	return nil
}

func (l *LinkStore) ListForDocument(_ context.Context, id int64) ([]models.Link, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()

	var out []models.Link
	for _, link := range l.s.links {
		if link.Doc1 == id || link.Doc2 == id {
			out = append(out, link)
		}
	}
	return out, nil
}

// sameEndpoints matches a stored row against a document pair regardless of
// which side is doc1.
func sameEndpoints(l models.Link, a, b int64) bool {
	return (l.Doc1 == a && l.Doc2 == b) || (l.Doc1 == b && l.Doc2 == a)
}
