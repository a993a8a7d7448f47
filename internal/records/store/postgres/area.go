package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"geodocs/internal/geo"
	"geodocs/pkg/platform/sentinel"
)

// AreaStore persists named geometries in the areas table.
type AreaStore struct {
	q querier
}

func (s *AreaStore) FindEquivalent(ctx context.Context, g geo.Geometry) (int64, bool, error) {
	var id int64
	err := s.q.QueryRowContext(ctx,
		`SELECT id FROM areas WHERE ST_Equals(geom, ST_GeomFromText($1, 4326)) LIMIT 1`,
		g.WKT(),
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, mapError(fmt.Errorf("find equivalent area: %w", err))
	}
	return id, true, nil
}

func (s *AreaStore) Insert(ctx context.Context, name string, g geo.Geometry) (int64, error) {
	var id int64
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO areas (name, geom) VALUES ($1, ST_GeomFromText($2, 4326)) RETURNING id`,
		name, g.WKT(),
	).Scan(&id)
	if err != nil {
		return 0, mapError(fmt.Errorf("insert area: %w", err))
	}
	return id, nil
}

func (s *AreaStore) Geometry(ctx context.Context, id int64) (geo.Geometry, error) {
	var raw []byte
	err := s.q.QueryRowContext(ctx,
		`SELECT ST_AsGeoJSON(geom) FROM areas WHERE id = $1`,
		id,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return geo.Geometry{}, fmt.Errorf("area %d: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return geo.Geometry{}, mapError(fmt.Errorf("load area geometry: %w", err))
	}
	g, err := geo.DecodeGeoJSON(raw)
	if err != nil {
		return geo.Geometry{}, fmt.Errorf("area %d: %w", id, err)
	}
	return g, nil
}
