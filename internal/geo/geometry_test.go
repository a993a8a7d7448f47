package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCoordinates(t *testing.T) {
	t.Run("single coordinate becomes point", func(t *testing.T) {
		g, err := FromCoordinates([]Coordinate{{Lon: 12.49, Lat: 41.89}})
		require.NoError(t, err)
		assert.Equal(t, KindPoint, g.Kind())
		assert.Equal(t, "POINT(12.49 41.89)", g.WKT())
	})

	t.Run("two coordinates still resolve to point at the first", func(t *testing.T) {
		g, err := FromCoordinates([]Coordinate{{Lon: 1, Lat: 2}, {Lon: 3, Lat: 4}})
		require.NoError(t, err)
		assert.Equal(t, KindPoint, g.Kind())
		assert.Equal(t, "POINT(1 2)", g.WKT())
	})

	t.Run("three or more coordinates become a closed ring", func(t *testing.T) {
		g, err := FromCoordinates([]Coordinate{{0, 0}, {1, 0}, {1, 1}})
		require.NoError(t, err)
		assert.Equal(t, KindRing, g.Kind())
		assert.Equal(t, "POLYGON((0 0,1 0,1 1,0 0))", g.WKT())
	})

	t.Run("already closed ring is not double closed", func(t *testing.T) {
		g, err := FromCoordinates([]Coordinate{{0, 0}, {1, 0}, {1, 1}, {0, 0}})
		require.NoError(t, err)
		assert.Equal(t, "POLYGON((0 0,1 0,1 1,0 0))", g.WKT())
	})

	t.Run("empty input is an error", func(t *testing.T) {
		_, err := FromCoordinates(nil)
		assert.Error(t, err)
	})
}

func TestDecodeGeoJSON(t *testing.T) {
	t.Run("point", func(t *testing.T) {
		g, err := DecodeGeoJSON([]byte(`{"type":"Point","coordinates":[12.49,41.89]}`))
		require.NoError(t, err)
		assert.Equal(t, [][]Coordinate{{{Lon: 12.49, Lat: 41.89}}}, g.Rings())
	})

	t.Run("polygon keeps outer ring order", func(t *testing.T) {
		g, err := DecodeGeoJSON([]byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`))
		require.NoError(t, err)
		require.Equal(t, KindRing, g.Kind())
		assert.Equal(t, []Coordinate{{0, 0}, {1, 0}, {1, 1}, {0, 0}}, g.Rings()[0])
	})

	t.Run("multipolygon yields one ring per member", func(t *testing.T) {
		g, err := DecodeGeoJSON([]byte(`{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]],[[[5,5],[6,5],[6,6],[5,5]]]]}`))
		require.NoError(t, err)
		require.Equal(t, KindMultiRing, g.Kind())
		rings := g.Rings()
		require.Len(t, rings, 2)
		assert.Equal(t, Coordinate{5, 5}, rings[1][0])
	})

	t.Run("unexpected type is a hard error", func(t *testing.T) {
		_, err := DecodeGeoJSON([]byte(`{"type":"LineString","coordinates":[[0,0],[1,1]]}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LineString")
	})

	t.Run("garbage payload is a hard error", func(t *testing.T) {
		_, err := DecodeGeoJSON([]byte(`{"type":"Polygon","coordinates":"nope"}`))
		assert.Error(t, err)
	})
}

func TestGeometryEqual(t *testing.T) {
	square := []Coordinate{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	t.Run("identical rings", func(t *testing.T) {
		assert.True(t, Ring(square).Equal(Ring(square)))
	})

	t.Run("rotated ring", func(t *testing.T) {
		rotated := []Coordinate{{1, 0}, {1, 1}, {0, 1}, {0, 0}}
		assert.True(t, Ring(square).Equal(Ring(rotated)))
	})

	t.Run("reversed winding", func(t *testing.T) {
		reversed := []Coordinate{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
		assert.True(t, Ring(square).Equal(Ring(reversed)))
	})

	t.Run("different vertex sets differ", func(t *testing.T) {
		other := []Coordinate{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
		assert.False(t, Ring(square).Equal(Ring(other)))
	})

	t.Run("point never equals ring", func(t *testing.T) {
		assert.False(t, Point(Coordinate{0, 0}).Equal(Ring(square)))
	})
}
