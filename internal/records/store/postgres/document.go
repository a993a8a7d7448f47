package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"geodocs/internal/records/models"
	"geodocs/internal/records/store"
	"geodocs/pkg/platform/sentinel"
)

// DocumentStore persists document rows and stakeholder associations.
type DocumentStore struct {
	q querier
}

func (s *DocumentStore) Insert(ctx context.Context, doc models.Document) (int64, error) {
	var id int64
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO documents
			(title, description, scale, doc_type, language, issuance_year, issuance_month, issuance_day, area_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		doc.Title, doc.Description, doc.Scale, doc.DocType, doc.Language,
		doc.Issued.Year, nullIfEmpty(doc.Issued.Month), nullIfEmpty(doc.Issued.Day), doc.AreaID,
	).Scan(&id)
	if err != nil {
		return 0, mapError(fmt.Errorf("insert document: %w", err))
	}
	return id, nil
}

func (s *DocumentStore) Update(ctx context.Context, doc models.Document) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE documents SET
			title = $1, description = $2, scale = $3, doc_type = $4, language = $5,
			issuance_year = $6, issuance_month = $7, issuance_day = $8, area_id = $9
		 WHERE id = $10`,
		doc.Title, doc.Description, doc.Scale, doc.DocType, doc.Language,
		doc.Issued.Year, nullIfEmpty(doc.Issued.Month), nullIfEmpty(doc.Issued.Day), doc.AreaID,
		doc.ID,
	)
	if err != nil {
		return mapError(fmt.Errorf("update document: %w", err))
	}
	return requireRow(res, doc.ID)
}

func (s *DocumentStore) Delete(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return mapError(fmt.Errorf("delete document: %w", err))
	}
	return requireRow(res, id)
}

func (s *DocumentStore) UpdateDescription(ctx context.Context, id int64, description string) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE documents SET description = $1 WHERE id = $2`, description, id)
	if err != nil {
		return mapError(fmt.Errorf("update description: %w", err))
	}
	return requireRow(res, id)
}

func (s *DocumentStore) Get(ctx context.Context, id int64) (models.Document, error) {
	var (
		doc      models.Document
		language sql.NullString
		month    sql.NullString
		day      sql.NullString
		areaID   sql.NullInt64
	)
	err := s.q.QueryRowContext(ctx,
		`SELECT id, title, description, scale, doc_type, language,
			issuance_year, issuance_month, issuance_day, area_id
		 FROM documents WHERE id = $1`, id,
	).Scan(&doc.ID, &doc.Title, &doc.Description, &doc.Scale, &doc.DocType,
		&language, &doc.Issued.Year, &month, &day, &areaID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Document{}, fmt.Errorf("document %d: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return models.Document{}, mapError(fmt.Errorf("get document: %w", err))
	}

	if language.Valid {
		doc.Language = &language.String
	}
	doc.Issued.Month = month.String
	doc.Issued.Day = day.String
	if areaID.Valid {
		doc.AreaID = &areaID.Int64
	}
	return doc, nil
}

func (s *DocumentStore) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM documents WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, mapError(fmt.Errorf("document exists: %w", err))
	}
	return exists, nil
}

func (s *DocumentStore) InsertStakeholder(ctx context.Context, docID int64, stakeholder string) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO document_stakeholders (document_id, stakeholder) VALUES ($1, $2)`,
		docID, stakeholder,
	)
	if err != nil {
		return mapError(fmt.Errorf("insert stakeholder association: %w", err))
	}
	return nil
}

func (s *DocumentStore) DeleteStakeholders(ctx context.Context, docID int64) error {
	_, err := s.q.ExecContext(ctx,
		`DELETE FROM document_stakeholders WHERE document_id = $1`, docID)
	if err != nil {
		return mapError(fmt.Errorf("delete stakeholder associations: %w", err))
	}
	return nil
}

func (s *DocumentStore) Stakeholders(ctx context.Context, docID int64) ([]string, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT stakeholder FROM document_stakeholders WHERE document_id = $1`, docID)
	if err != nil {
		return nil, mapError(fmt.Errorf("list stakeholders: %w", err))
	}
	defer rows.Close()

	var stakeholders []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan stakeholder: %w", err)
		}
		stakeholders = append(stakeholders, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(fmt.Errorf("list stakeholders: %w", err))
	}
	return stakeholders, nil
}

func (s *DocumentStore) ListGeoreferenced(ctx context.Context) ([]store.GeoreferencedRow, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT d.id, d.title, d.doc_type, ST_AsGeoJSON(a.geom)
		 FROM documents d
		 JOIN areas a ON a.id = d.area_id
		 ORDER BY d.id`)
	if err != nil {
		return nil, mapError(fmt.Errorf("list georeferenced documents: %w", err))
	}
	defer rows.Close()

	var out []store.GeoreferencedRow
	for rows.Next() {
		var r store.GeoreferencedRow
		if err := rows.Scan(&r.ID, &r.Title, &r.DocType, &r.GeoJSON); err != nil {
			return nil, fmt.Errorf("scan georeferenced document: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(fmt.Errorf("list georeferenced documents: %w", err))
	}
	return out, nil
}

// requireRow converts a zero rows-affected result into a not-found sentinel.
func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("document %d: %w", id, sentinel.ErrNotFound)
	}
	return nil
}

// nullIfEmpty maps an absent date component onto NULL.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
