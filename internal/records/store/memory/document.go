package memory

import (
	"context"
	"fmt"
	"sort"

	"geodocs/internal/records/models"
	"geodocs/internal/records/store"
	"geodocs/pkg/platform/sentinel"
)

// DocumentStore implements store.DocumentStore over the shared memory state.
type DocumentStore struct {
	s *Store
}

func (d *DocumentStore) Insert(_ context.Context, doc models.Document) (int64, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	id := d.s.nextDocID
	d.s.nextDocID++
	doc.ID = id
	d.s.docs[id] = doc
	return id, nil
}

func (d *DocumentStore) Update(_ context.Context, doc models.Document) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	if _, ok := d.s.docs[doc.ID]; !ok {
		return fmt.Errorf("document %d: %w", doc.ID, sentinel.ErrNotFound)
	}
	d.s.docs[doc.ID] = doc
	return nil
}

func (d *DocumentStore) Delete(_ context.Context, id int64) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	if _, ok := d.s.docs[id]; !ok {
		return fmt.Errorf("document %d: %w", id, sentinel.ErrNotFound)
	}
	delete(d.s.docs, id)
	delete(d.s.stakeholders, id)

	kept := d.s.links[:0]
	for _, l := range d.s.links {
		if l.Doc1 != id && l.Doc2 != id {
			kept = append(kept, l)
		}
	}
	d.s.links = kept
	return nil
}

func (d *DocumentStore) UpdateDescription(_ context.Context, id int64, description string) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	doc, ok := d.s.docs[id]
	if !ok {
		return fmt.Errorf("document %d: %w", id, sentinel.ErrNotFound)
	}
	doc.Description = description
	d.s.docs[id] = doc
	return nil
}

func (d *DocumentStore) Get(_ context.Context, id int64) (models.Document, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	doc, ok := d.s.docs[id]
	if !ok {
		return models.Document{}, fmt.Errorf("document %d: %w", id, sentinel.ErrNotFound)
	}
	return doc, nil
}

func (d *DocumentStore) Exists(_ context.Context, id int64) (bool, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	_, ok := d.s.docs[id]
	return ok, nil
}

func (d *DocumentStore) InsertStakeholder(_ context.Context, docID int64, stakeholder string) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	d.s.stakeholders[docID] = append(d.s.stakeholders[docID], stakeholder)
	return nil
}

func (d *DocumentStore) DeleteStakeholders(_ context.Context, docID int64) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	delete(d.s.stakeholders, docID)
	return nil
}

func (d *DocumentStore) Stakeholders(_ context.Context, docID int64) ([]string, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	return append([]string(nil), d.s.stakeholders[docID]...), nil
}

func (d *DocumentStore) ListGeoreferenced(_ context.Context) ([]store.GeoreferencedRow, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	var out []store.GeoreferencedRow
	for _, doc := range d.s.docs {
		if doc.AreaID == nil {
			continue
		}
		area, ok := d.s.areas[*doc.AreaID]
		if !ok {
			continue
		}
		raw, err := area.Geom.GeoJSON()
		if err != nil {
			return nil, fmt.Errorf("encode area %d: %w", area.ID, err)
		}
		out = append(out, store.GeoreferencedRow{
			ID:      doc.ID,
			Title:   doc.Title,
			DocType: doc.DocType,
			GeoJSON: raw,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
