// Package area resolves caller-supplied coordinate lists into canonical
// stored geometries, reusing an equivalent area instead of inserting a
// duplicate row.
package area

import (
	"context"
	"log/slog"

	"geodocs/internal/geo"
	"geodocs/internal/records/metrics"
	"geodocs/internal/records/store"
	dErrors "geodocs/pkg/domain-errors"
	"geodocs/pkg/platform/sentinel"
)

// Resolver normalizes and deduplicates geometries. Construct it over the
// pool-bound area store for direct use, or over a transaction-bound store to
// resolve areas inside a document write.
type Resolver struct {
	areas   store.AreaStore
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Resolver)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

func New(areas store.AreaStore, opts ...Option) *Resolver {
	r := &Resolver{areas: areas}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveOrCreate converts coordinates into a canonical geometry (point for
// fewer than three coordinates, closed polygon ring otherwise), returns the id
// of a spatially equal existing area when one exists, and inserts a new row
// otherwise. At most one write per call; a dedup hit writes nothing.
func (r *Resolver) ResolveOrCreate(ctx context.Context, coords []geo.Coordinate, name string) (int64, error) {
	g, err := geo.FromCoordinates(coords)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeValidation, "cannot build geometry")
	}

	id, found, err := r.areas.FindEquivalent(ctx, g)
	if err != nil {
		return 0, translate(err, "area lookup failed")
	}
	if found {
		r.metrics.RecordAreaDedupHit()
		if r.logger != nil {
			r.logger.Debug("area dedup hit", "area_id", id)
		}
		return id, nil
	}

	id, err = r.areas.Insert(ctx, name, g)
	if err != nil {
		return 0, translate(err, "area insert failed")
	}
	r.metrics.RecordAreaInsert()
	return id, nil
}

// Coordinates inverts the stored geometry of an area back into ordered
// coordinate rings: a point becomes a single one-element ring, a polygon its
// outer ring, a multipolygon one ring per member.
func (r *Resolver) Coordinates(ctx context.Context, areaID int64) ([][]geo.Coordinate, error) {
	g, err := r.areas.Geometry(ctx, areaID)
	if err != nil {
		return nil, translate(err, "area geometry lookup failed")
	}
	return g.Rings(), nil
}

// translate maps sentinel store errors onto coded domain errors.
func translate(err error, msg string) error {
	switch {
	case dErrors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, msg)
	case dErrors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, msg)
	case dErrors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
