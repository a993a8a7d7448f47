package models

import "geodocs/internal/geo"

// Georeference is the assembled read view of a document: the row joined with
// its area coordinates, deduplicated stakeholders, and direction-normalized
// links.
type Georeference struct {
	Document     Document
	Coordinates  [][]geo.Coordinate
	Stakeholders []string
	Links        []LinkedDocument
}

// DocumentCoordinates is one row of the bulk map listing: every document that
// has an area, with its normalized coordinates.
type DocumentCoordinates struct {
	ID          int64
	Title       string
	DocType     string
	Coordinates [][]geo.Coordinate
}
