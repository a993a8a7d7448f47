package memory

import (
	"context"
	"fmt"

	"geodocs/internal/geo"
	"geodocs/internal/records/models"
	"geodocs/pkg/platform/sentinel"
)

// AreaStore implements store.AreaStore over the shared memory state.
type AreaStore struct {
	s *Store
}

func (a *AreaStore) FindEquivalent(_ context.Context, g geo.Geometry) (int64, bool, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	for id, area := range a.s.areas {
		if area.Geom.Equal(g) {
			return id, true, nil
		}
	}
	return 0, false, nil
}

func (a *AreaStore) Insert(_ context.Context, name string, g geo.Geometry) (int64, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	id := a.s.nextAreaID
	a.s.nextAreaID++
	a.s.areas[id] = models.Area{ID: id, Name: name, Geom: g}
	return id, nil
}

func (a *AreaStore) Geometry(_ context.Context, id int64) (geo.Geometry, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	area, ok := a.s.areas[id]
	if !ok {
		return geo.Geometry{}, fmt.Errorf("area %d: %w", id, sentinel.ErrNotFound)
	}
	return area.Geom, nil
}
