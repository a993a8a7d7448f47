// Package records bundles the document/area/link consistency core behind one
// constructor. The embedding routing layer calls these services directly;
// nothing in here knows about transports.
package records

import (
	"database/sql"
	"fmt"
	"log/slog"

	"geodocs/internal/records/area"
	"geodocs/internal/records/document"
	"geodocs/internal/records/georef"
	"geodocs/internal/records/link"
	"geodocs/internal/records/metrics"
	"geodocs/internal/records/store"
	pgstore "geodocs/internal/records/store/postgres"
	"geodocs/internal/records/vocabulary"
)

// Core exposes the write and read services of the records layer.
type Core struct {
	Documents  *document.Service
	Links      *link.Engine
	Areas      *area.Resolver
	Vocabulary *vocabulary.Guard
	Reads      *georef.Service
}

// New wires the core against a Postgres pool.
func New(db *sql.DB, logger *slog.Logger, m *metrics.Metrics) (*Core, error) {
	return NewWithStores(pgstore.NewStores(db), pgstore.NewTx(db), logger, m)
}

// NewWithStores wires the core against explicit stores and transaction
// boundary; tests use it with the in-memory implementations.
func NewWithStores(stores store.Stores, tx store.Tx, logger *slog.Logger, m *metrics.Metrics) (*Core, error) {
	links, err := link.New(tx, stores, link.WithLogger(logger), link.WithMetrics(m))
	if err != nil {
		return nil, fmt.Errorf("link engine: %w", err)
	}
	documents, err := document.New(tx, stores, document.WithLogger(logger), document.WithMetrics(m))
	if err != nil {
		return nil, fmt.Errorf("document service: %w", err)
	}
	return &Core{
		Documents:  documents,
		Links:      links,
		Areas:      area.New(stores.Areas, area.WithLogger(logger), area.WithMetrics(m)),
		Vocabulary: vocabulary.New(stores.Vocabulary),
		Reads:      georef.New(stores, links, georef.WithLogger(logger)),
	}, nil
}
