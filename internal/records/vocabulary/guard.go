// Package vocabulary guards the shared reference vocabularies (scale,
// document type, language, stakeholder): look up by key, insert when absent,
// never update or delete.
package vocabulary

import (
	"context"

	"geodocs/internal/records/store"
	dErrors "geodocs/pkg/domain-errors"
	"geodocs/pkg/platform/sentinel"
)

// Guard exposes idempotent ensure-exists operations per vocabulary.
type Guard struct {
	vocab store.VocabularyStore
}

func New(vocab store.VocabularyStore) *Guard {
	return &Guard{vocab: vocab}
}

func (g *Guard) ScaleExists(ctx context.Context, label string) (bool, error) {
	return g.exists(ctx, store.VocabScale, label)
}

// EnsureScale inserts the scale when absent; calling it for an existing label
// is a no-op, not an error.
func (g *Guard) EnsureScale(ctx context.Context, label string) error {
	return g.ensure(ctx, store.VocabScale, label)
}

func (g *Guard) DocTypeExists(ctx context.Context, label string) (bool, error) {
	return g.exists(ctx, store.VocabDocType, label)
}

func (g *Guard) EnsureDocType(ctx context.Context, label string) error {
	return g.ensure(ctx, store.VocabDocType, label)
}

func (g *Guard) StakeholderExists(ctx context.Context, label string) (bool, error) {
	return g.exists(ctx, store.VocabStakeholder, label)
}

func (g *Guard) EnsureStakeholder(ctx context.Context, label string) error {
	return g.ensure(ctx, store.VocabStakeholder, label)
}

func (g *Guard) LanguageExists(ctx context.Context, id string) (bool, error) {
	exists, err := g.vocab.LanguageExists(ctx, id)
	if err != nil {
		return false, translate(err, "language lookup failed")
	}
	return exists, nil
}

// EnsureLanguage inserts the language with its display name when absent.
func (g *Guard) EnsureLanguage(ctx context.Context, id, name string) error {
	if err := g.vocab.EnsureLanguage(ctx, id, name); err != nil {
		return translate(err, "ensure language failed")
	}
	return nil
}

// List returns all labels of one label-only vocabulary, sorted.
func (g *Guard) List(ctx context.Context, v store.Vocab) ([]string, error) {
	labels, err := g.vocab.List(ctx, v)
	if err != nil {
		return nil, translate(err, "vocabulary listing failed")
	}
	return labels, nil
}

func (g *Guard) exists(ctx context.Context, v store.Vocab, label string) (bool, error) {
	exists, err := g.vocab.Exists(ctx, v, label)
	if err != nil {
		return false, translate(err, "vocabulary lookup failed")
	}
	return exists, nil
}

func (g *Guard) ensure(ctx context.Context, v store.Vocab, label string) error {
	if err := g.vocab.Ensure(ctx, v, label); err != nil {
		return translate(err, "ensure vocabulary failed")
	}
	return nil
}

func translate(err error, msg string) error {
	switch {
	case dErrors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, msg)
	case dErrors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, msg)
	case dErrors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
