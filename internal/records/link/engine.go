// Package link is the single source of truth for link direction between
// documents. Canonical storage order puts the earlier-issued document first;
// every existence check and removal matches rows regardless of which side was
// stored first.
package link

import (
	"context"
	"fmt"
	"log/slog"

	"geodocs/internal/records/metrics"
	"geodocs/internal/records/models"
	"geodocs/internal/records/store"
	dErrors "geodocs/pkg/domain-errors"
	"geodocs/pkg/platform/sentinel"
)

// Engine computes canonical link direction and reconciles desired link sets
// against storage.
type Engine struct {
	tx      store.Tx
	stores  store.Stores
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func New(tx store.Tx, stores store.Stores, opts ...Option) (*Engine, error) {
	if tx == nil {
		return nil, fmt.Errorf("link engine requires a transaction boundary")
	}
	e := &Engine{tx: tx, stores: stores}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// OrderByIssuance returns the two document ids sorted by issuance date, year
// first, then month, then day, absent components smallest. Equal dates keep
// the input order.
func (e *Engine) OrderByIssuance(ctx context.Context, a, b int64) (earlier, later int64, err error) {
	return orderByIssuance(ctx, e.stores.Documents, a, b)
}

// Exists reports whether a link row for the pair and type exists in either
// stored direction.
func (e *Engine) Exists(ctx context.Context, a, b int64, linkType string) (bool, error) {
	exists, err := e.stores.Links.Exists(ctx, a, b, linkType)
	if err != nil {
		return false, translate(err, "link lookup failed")
	}
	return exists, nil
}

// Reconcile brings the stored link set for a document pair in line with the
// desired set, in one transaction: a valid entry without a stored row is
// created in canonical order, an invalid entry with a stored row is removed,
// and entries already in the right state are untouched. Both documents must
// exist before any write; any failure rolls back every change of the call.
func (e *Engine) Reconcile(ctx context.Context, a, b int64, desired []models.DesiredLink) error {
	err := e.tx.RunInTx(ctx, func(s store.Stores) error {
		for _, id := range []int64{a, b} {
			exists, err := s.Documents.Exists(ctx, id)
			if err != nil {
				return translate(err, "document lookup failed")
			}
			if !exists {
				return dErrors.Newf(dErrors.CodeNotFound, "document %d does not exist", id)
			}
		}

		for _, want := range desired {
			stored, err := s.Links.Exists(ctx, a, b, want.Type)
			if err != nil {
				return translate(err, "link lookup failed")
			}

			switch {
			case want.Valid && !stored:
				earlier, later, err := orderByIssuance(ctx, s.Documents, a, b)
				if err != nil {
					return err
				}
				if err := s.Links.Insert(ctx, earlier, later, want.Type); err != nil {
					return translate(err, "link insert failed")
				}
				e.metrics.RecordLinkChange("create")
			case !want.Valid && stored:
				if err := s.Links.Delete(ctx, a, b, want.Type); err != nil {
					return translate(err, "link delete failed")
				}
				e.metrics.RecordLinkChange("remove")
			}
		}
		return nil
	})
	if err != nil {
		e.metrics.RecordRollback()
		if e.logger != nil {
			e.logger.Error("link reconciliation rolled back", "doc_a", a, "doc_b", b, "error", err)
		}
		return err
	}
	return nil
}

// ListForDocument returns the links touching a document, normalized so the
// returned id is always the other side.
func (e *Engine) ListForDocument(ctx context.Context, id int64) ([]models.LinkedDocument, error) {
	return listForDocument(ctx, e.stores.Links, id)
}

func listForDocument(ctx context.Context, links store.LinkStore, id int64) ([]models.LinkedDocument, error) {
	rows, err := links.ListForDocument(ctx, id)
	if err != nil {
		return nil, translate(err, "link listing failed")
	}
	out := make([]models.LinkedDocument, 0, len(rows))
	for _, l := range rows {
		other := l.Doc1
		if other == id {
			other = l.Doc2
		}
		out = append(out, models.LinkedDocument{DocumentID: other, Type: l.Type})
	}
	return out, nil
}

func orderByIssuance(ctx context.Context, docs store.DocumentStore, a, b int64) (int64, int64, error) {
	docA, err := docs.Get(ctx, a)
	if err != nil {
		return 0, 0, translate(err, "document lookup failed")
	}
	docB, err := docs.Get(ctx, b)
	if err != nil {
		return 0, 0, translate(err, "document lookup failed")
	}
	if docB.Issued.Compare(docA.Issued) < 0 {
		return b, a, nil
	}
	return a, b, nil
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
