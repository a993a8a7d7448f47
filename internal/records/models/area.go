package models

import "geodocs/internal/geo"

// Area is a named stored geometry. Areas are immutable: equivalent geometry is
// reused, never re-inserted, and rows are never updated.
type Area struct {
	ID   int64
	Name string
	Geom geo.Geometry
}
