package postgres

import (
	"context"
	"fmt"

	"geodocs/internal/records/store"
)

// VocabularyStore persists the shared reference vocabularies. The table name
// comes from the store.Vocab constants, never from caller input.
type VocabularyStore struct {
	q querier
}

func (s *VocabularyStore) Exists(ctx context.Context, v store.Vocab, key string) (bool, error) {
	var exists bool
	err := s.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+string(v)+` WHERE label = $1)`,
		key,
	).Scan(&exists)
	if err != nil {
		return false, mapError(fmt.Errorf("vocabulary %s exists: %w", v, err))
	}
	return exists, nil
}

func (s *VocabularyStore) Ensure(ctx context.Context, v store.Vocab, key string) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO `+string(v)+` (label) VALUES ($1) ON CONFLICT (label) DO NOTHING`,
		key,
	)
	if err != nil {
		return mapError(fmt.Errorf("ensure vocabulary %s: %w", v, err))
	}
	return nil
}

func (s *VocabularyStore) List(ctx context.Context, v store.Vocab) ([]string, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT label FROM `+string(v)+` ORDER BY label`)
	if err != nil {
		return nil, mapError(fmt.Errorf("list vocabulary %s: %w", v, err))
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("scan vocabulary %s: %w", v, err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(fmt.Errorf("list vocabulary %s: %w", v, err))
	}
	return labels, nil
}

func (s *VocabularyStore) LanguageExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM languages WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		return false, mapError(fmt.Errorf("language exists: %w", err))
	}
	return exists, nil
}

func (s *VocabularyStore) EnsureLanguage(ctx context.Context, id, name string) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO languages (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
		id, name,
	)
	if err != nil {
		return mapError(fmt.Errorf("ensure language: %w", err))
	}
	return nil
}
