package postgres

import (
	"context"
	"fmt"

	"geodocs/internal/records/models"
)

// LinkStore persists directed link rows in document_links.
type LinkStore struct {
	q querier
}

func (s *LinkStore) Exists(ctx context.Context, a, b int64, linkType string) (bool, error) {
	var exists bool
	err := s.q.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM document_links
			WHERE link_type = $3
			  AND ((doc1 = $1 AND doc2 = $2) OR (doc1 = $2 AND doc2 = $1))
		)`,
		a, b, linkType,
	).Scan(&exists)
	if err != nil {
		return false, mapError(fmt.Errorf("link exists: %w", err))
	}
	return exists, nil
}

func (s *LinkStore) Insert(ctx context.Context, doc1, doc2 int64, linkType string) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO document_links (doc1, doc2, link_type) VALUES ($1, $2, $3)`,
		doc1, doc2, linkType,
	)
	if err != nil {
		return mapError(fmt.Errorf("insert link: %w", err))
	}
	return nil
}

func (s *LinkStore) Delete(ctx context.Context, a, b int64, linkType string) error {
	_, err := s.q.ExecContext(ctx,
		`DELETE FROM document_links
		 WHERE link_type = $3
		   AND ((doc1 = $1 AND doc2 = $2) OR (doc1 = $2 AND doc2 = $1))`,
		a, b, linkType,
	)
	if err != nil {
		return mapError(fmt.Errorf("delete link: %w", err))
	}
	return nil
}

func (s *LinkStore) ListForDocument(ctx context.Context, id int64) ([]models.Link, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT doc1, doc2, link_type FROM document_links
		 WHERE doc1 = $1 OR doc2 = $1
		 ORDER BY doc1, doc2, link_type`, id)
	if err != nil {
		return nil, mapError(fmt.Errorf("list links: %w", err))
	}
	defer rows.Close()

	var links []models.Link
	for rows.Next() {
		var l models.Link
		if err := rows.Scan(&l.Doc1, &l.Doc2, &l.Type); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(fmt.Errorf("list links: %w", err))
	}
	return links, nil
}
