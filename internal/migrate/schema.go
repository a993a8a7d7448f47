// Package migrate bootstraps the relational schema on startup. Statements use
// IF NOT EXISTS so reruns against an existing database are no-ops.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSchema creates the tables and indexes the records core relies on,
// including the PostGIS extension backing the areas geometry column.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS postgis`,
		`CREATE TABLE IF NOT EXISTS scales (
			label TEXT PRIMARY KEY
		)`,
		`CREATE TABLE IF NOT EXISTS document_types (
			label TEXT PRIMARY KEY
		)`,
		`CREATE TABLE IF NOT EXISTS languages (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS stakeholders (
			label TEXT PRIMARY KEY
		)`,
		`CREATE TABLE IF NOT EXISTS areas (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			geom geometry(Geometry, 4326) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			scale TEXT NOT NULL REFERENCES scales(label),
			doc_type TEXT NOT NULL REFERENCES document_types(label),
			language TEXT REFERENCES languages(id),
			issuance_year INT NOT NULL,
			issuance_month TEXT,
			issuance_day TEXT,
			area_id INT REFERENCES areas(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_area ON documents(area_id)`,
		`CREATE TABLE IF NOT EXISTS document_stakeholders (
			document_id INT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			stakeholder TEXT NOT NULL REFERENCES stakeholders(label)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_document_stakeholders_doc ON document_stakeholders(document_id)`,
		`CREATE TABLE IF NOT EXISTS document_links (
			doc1 INT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			doc2 INT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			link_type TEXT NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_document_links ON document_links(doc1, doc2, link_type)`,
	}

	for i, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
