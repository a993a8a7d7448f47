package area_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geodocs/internal/geo"
	"geodocs/internal/records/area"
	"geodocs/internal/records/store/memory"
	dErrors "geodocs/pkg/domain-errors"
)

func newResolver(t *testing.T) *area.Resolver {
	t.Helper()
	return area.New(memory.New().Stores().Areas)
}

func TestResolveOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("single coordinate resolves to a point area", func(t *testing.T) {
		r := newResolver(t)
		id, err := r.ResolveOrCreate(ctx, []geo.Coordinate{{Lon: 12.49, Lat: 41.89}}, "Rome")
		require.NoError(t, err)

		coords, err := r.Coordinates(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, [][]geo.Coordinate{{{Lon: 12.49, Lat: 41.89}}}, coords)
	})

	t.Run("resolving the same geometry twice returns the same id", func(t *testing.T) {
		r := newResolver(t)
		ring := []geo.Coordinate{{Lon: 0, Lat: 0}, {Lon: 4, Lat: 0}, {Lon: 4, Lat: 4}, {Lon: 0, Lat: 4}}

		first, err := r.ResolveOrCreate(ctx, ring, "district")
		require.NoError(t, err)
		second, err := r.ResolveOrCreate(ctx, ring, "district again")
		require.NoError(t, err)
		assert.Equal(t, first, second)

		// No second row was written: the next distinct geometry takes the
		// immediately following id.
		next, err := r.ResolveOrCreate(ctx, []geo.Coordinate{{Lon: 9, Lat: 9}}, "elsewhere")
		require.NoError(t, err)
		assert.Equal(t, first+1, next)
	})

	t.Run("rotated ring deduplicates against the stored one", func(t *testing.T) {
		r := newResolver(t)
		first, err := r.ResolveOrCreate(ctx, []geo.Coordinate{{Lon: 0, Lat: 0}, {Lon: 4, Lat: 0}, {Lon: 4, Lat: 4}, {Lon: 0, Lat: 4}}, "a")
		require.NoError(t, err)
		second, err := r.ResolveOrCreate(ctx, []geo.Coordinate{{Lon: 4, Lat: 0}, {Lon: 4, Lat: 4}, {Lon: 0, Lat: 4}, {Lon: 0, Lat: 0}}, "b")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("polygon round trips through storage", func(t *testing.T) {
		r := newResolver(t)
		ring := []geo.Coordinate{{Lon: 20.2, Lat: 67.85}, {Lon: 20.3, Lat: 67.85}, {Lon: 20.3, Lat: 67.9}, {Lon: 20.2, Lat: 67.9}}

		id, err := r.ResolveOrCreate(ctx, ring, "Kiruna")
		require.NoError(t, err)

		coords, err := r.Coordinates(ctx, id)
		require.NoError(t, err)
		require.Len(t, coords, 1)

		stored := geo.Ring(coords[0])
		assert.True(t, stored.Equal(geo.Ring(ring)))
	})

	t.Run("empty coordinate list is a validation error", func(t *testing.T) {
		r := newResolver(t)
		_, err := r.ResolveOrCreate(ctx, nil, "nowhere")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestCoordinatesNotFound(t *testing.T) {
	r := newResolver(t)
	_, err := r.Coordinates(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
