// Package geo models the geometry shapes this core exchanges with the spatial
// store. Geometry is a tagged variant (Point | Ring | MultiRing) so every
// consumption site switches exhaustively on the kind instead of branching on
// raw type strings; adding a geometry kind then becomes a compile-visible
// change at each switch.
//
// WKT is the write format (ST_GeomFromText) and GeoJSON the read format
// (ST_AsGeoJSON), matching how the store round-trips geometry.
package geo

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Coordinate is a lon/lat pair in WGS84.
type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Kind tags the geometry variant.
type Kind int

const (
	KindPoint Kind = iota
	KindRing
	KindMultiRing
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindRing:
		return "ring"
	case KindMultiRing:
		return "multiring"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Geometry is one of: a single point, a closed polygon ring, or a list of
// rings (one per polygon member of a multipolygon). The zero value is not a
// valid geometry; use the constructors.
type Geometry struct {
	kind  Kind
	point Coordinate
	ring  []Coordinate
	rings [][]Coordinate
}

// Point builds a point geometry.
func Point(c Coordinate) Geometry {
	return Geometry{kind: KindPoint, point: c}
}

// Ring builds a polygon ring geometry from coordinates in input order. The
// ring is closed if the caller did not repeat the first coordinate.
func Ring(coords []Coordinate) Geometry {
	return Geometry{kind: KindRing, ring: closeRing(coords)}
}

// MultiRing builds a multipolygon geometry, one closed outer ring per member.
func MultiRing(rings [][]Coordinate) Geometry {
	closed := make([][]Coordinate, len(rings))
	for i, r := range rings {
		closed[i] = closeRing(r)
	}
	return Geometry{kind: KindMultiRing, rings: closed}
}

// FromCoordinates applies the dispatch rule for caller-supplied shapes: fewer
// than three coordinates resolve to a point at the first coordinate, anything
// else to a closed polygon ring using all coordinates in order.
func FromCoordinates(coords []Coordinate) (Geometry, error) {
	if len(coords) == 0 {
		return Geometry{}, fmt.Errorf("no coordinates given")
	}
	if len(coords) < 3 {
		return Point(coords[0]), nil
	}
	return Ring(coords), nil
}

// Kind reports which variant this geometry is.
func (g Geometry) Kind() Kind { return g.kind }

// Rings returns the coordinate representation as a list of rings: a point
// becomes a single one-element ring, a polygon its outer ring, a multipolygon
// one ring per member.
func (g Geometry) Rings() [][]Coordinate {
	switch g.kind {
	case KindPoint:
		return [][]Coordinate{{g.point}}
	case KindRing:
		return [][]Coordinate{g.ring}
	case KindMultiRing:
		return g.rings
	}
	return nil
}

// WKT serializes the geometry for ST_GeomFromText.
func (g Geometry) WKT() string {
	switch g.kind {
	case KindPoint:
		return fmt.Sprintf("POINT(%s %s)", fmtFloat(g.point.Lon), fmtFloat(g.point.Lat))
	case KindRing:
		return fmt.Sprintf("POLYGON((%s))", wktCoords(g.ring))
	case KindMultiRing:
		parts := make([]string, len(g.rings))
		for i, r := range g.rings {
			parts[i] = "((" + wktCoords(r) + "))"
		}
		return "MULTIPOLYGON(" + strings.Join(parts, ",") + ")"
	}
	return ""
}

// Equal reports geometric equality: same kind and, for rings, the same cycle
// of vertices regardless of starting point or winding direction. This mirrors
// ST_Equals closely enough for in-memory dedup.
func (g Geometry) Equal(other Geometry) bool {
	if g.kind != other.kind {
		return false
	}
	switch g.kind {
	case KindPoint:
		return g.point == other.point
	case KindRing:
		return ringsEqual(g.ring, other.ring)
	case KindMultiRing:
		if len(g.rings) != len(other.rings) {
			return false
		}
		for i := range g.rings {
			if !ringsEqual(g.rings[i], other.rings[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// GeoJSON serializes the geometry the way ST_AsGeoJSON renders it, so the
// in-memory store emits the same wire shape as PostGIS.
func (g Geometry) GeoJSON() ([]byte, error) {
	switch g.kind {
	case KindPoint:
		return json.Marshal(map[string]any{
			"type":        "Point",
			"coordinates": []float64{g.point.Lon, g.point.Lat},
		})
	case KindRing:
		return json.Marshal(map[string]any{
			"type":        "Polygon",
			"coordinates": [][][2]float64{toPairs(g.ring)},
		})
	case KindMultiRing:
		polys := make([][][][2]float64, len(g.rings))
		for i, r := range g.rings {
			polys[i] = [][][2]float64{toPairs(r)}
		}
		return json.Marshal(map[string]any{
			"type":        "MultiPolygon",
			"coordinates": polys,
		})
	}
	return nil, fmt.Errorf("cannot encode geometry kind %s", g.kind)
}

func toPairs(coords []Coordinate) [][2]float64 {
	pairs := make([][2]float64, len(coords))
	for i, c := range coords {
		pairs[i] = [2]float64{c.Lon, c.Lat}
	}
	return pairs
}

// DecodeGeoJSON parses the geometry shapes the store can emit. Anything other
// than Point, Polygon, or MultiPolygon is a hard error; a malformed payload
// must never degrade into an empty geometry.
func DecodeGeoJSON(data []byte) (Geometry, error) {
	var raw struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Geometry{}, fmt.Errorf("decode geojson: %w", err)
	}

	switch raw.Type {
	case "Point":
		var pos []float64
		if err := json.Unmarshal(raw.Coordinates, &pos); err != nil {
			return Geometry{}, fmt.Errorf("decode point coordinates: %w", err)
		}
		if len(pos) < 2 {
			return Geometry{}, fmt.Errorf("point has %d ordinates, need 2", len(pos))
		}
		return Point(Coordinate{Lon: pos[0], Lat: pos[1]}), nil

	case "Polygon":
		var rings [][][2]float64
		if err := json.Unmarshal(raw.Coordinates, &rings); err != nil {
			return Geometry{}, fmt.Errorf("decode polygon coordinates: %w", err)
		}
		if len(rings) == 0 {
			return Geometry{}, fmt.Errorf("polygon has no rings")
		}
		// Only the outer ring is meaningful to this core.
		return Ring(toCoords(rings[0])), nil

	case "MultiPolygon":
		var polys [][][][2]float64
		if err := json.Unmarshal(raw.Coordinates, &polys); err != nil {
			return Geometry{}, fmt.Errorf("decode multipolygon coordinates: %w", err)
		}
		if len(polys) == 0 {
			return Geometry{}, fmt.Errorf("multipolygon has no members")
		}
		rings := make([][]Coordinate, 0, len(polys))
		for i, p := range polys {
			if len(p) == 0 {
				return Geometry{}, fmt.Errorf("multipolygon member %d has no rings", i)
			}
			rings = append(rings, toCoords(p[0]))
		}
		return MultiRing(rings), nil
	}

	return Geometry{}, fmt.Errorf("unsupported geometry type %q", raw.Type)
}

func toCoords(pairs [][2]float64) []Coordinate {
	coords := make([]Coordinate, len(pairs))
	for i, p := range pairs {
		coords[i] = Coordinate{Lon: p[0], Lat: p[1]}
	}
	return coords
}

func closeRing(coords []Coordinate) []Coordinate {
	if len(coords) == 0 {
		return coords
	}
	if coords[0] == coords[len(coords)-1] {
		return coords
	}
	closed := make([]Coordinate, 0, len(coords)+1)
	closed = append(closed, coords...)
	return append(closed, coords[0])
}

// ringsEqual compares two closed rings as vertex cycles: equal if one is a
// rotation of the other, in either direction.
func ringsEqual(a, b []Coordinate) bool {
	av, bv := openRing(a), openRing(b)
	if len(av) != len(bv) {
		return false
	}
	if len(av) == 0 {
		return true
	}
	for offset := range bv {
		if cycleMatch(av, bv, offset, 1) || cycleMatch(av, bv, offset, -1) {
			return true
		}
	}
	return false
}

// openRing drops the redundant closing vertex.
func openRing(r []Coordinate) []Coordinate {
	if len(r) > 1 && r[0] == r[len(r)-1] {
		return r[:len(r)-1]
	}
	return r
}

func cycleMatch(a, b []Coordinate, offset, dir int) bool {
	n := len(a)
	for i := 0; i < n; i++ {
		j := ((offset+dir*i)%n + n) % n
		if a[i] != b[j] {
			return false
		}
	}
	return true
}

func wktCoords(coords []Coordinate) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = fmtFloat(c.Lon) + " " + fmtFloat(c.Lat)
	}
	return strings.Join(parts, ",")
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
