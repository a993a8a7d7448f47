// Package document orchestrates document writes. Every multi-row mutation
// runs as one transaction: area resolution, vocabulary guarantees, the
// document row, and its stakeholder associations commit together or not at
// all.
package document

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"geodocs/internal/geo"
	"geodocs/internal/records/area"
	"geodocs/internal/records/metrics"
	"geodocs/internal/records/models"
	"geodocs/internal/records/store"
	"geodocs/internal/records/vocabulary"
	dErrors "geodocs/pkg/domain-errors"
	"geodocs/pkg/platform/sentinel"
	pkgstrings "geodocs/pkg/platform/strings"
)

// WriteInput carries the caller-validated fields of a document write. AreaID
// takes precedence over Coordinates; when only Coordinates are given the area
// is resolved or created inside the write transaction.
type WriteInput struct {
	Title        string
	Description  string
	Scale        string
	DocType      string
	Language     *string
	Issued       models.IssuanceDate
	AreaID       *int64
	Coordinates  []geo.Coordinate
	AreaName     string
	Stakeholders []string
}

// Service is the write side of the records core.
type Service struct {
	tx      store.Tx
	stores  store.Stores
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(tx store.Tx, stores store.Stores, opts ...Option) (*Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("document service requires a transaction boundary")
	}
	svc := &Service{tx: tx, stores: stores}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Create inserts a document with its stakeholder associations as one
// transaction and returns the new id. The issuance date is validated before
// any write; any failing step rolls the whole transaction back.
func (s *Service) Create(ctx context.Context, in WriteInput) (int64, error) {
	if err := in.Issued.Validate(); err != nil {
		return 0, err
	}

	start := time.Now()
	var id int64
	err := s.tx.RunInTx(ctx, func(tx store.Stores) error {
		doc, stakeholders, err := s.prepare(ctx, tx, in)
		if err != nil {
			return err
		}

		id, err = tx.Documents.Insert(ctx, doc)
		if err != nil {
			return translate(err, "document insert failed")
		}
		for _, label := range stakeholders {
			if err := tx.Documents.InsertStakeholder(ctx, id, label); err != nil {
				return translate(err, "stakeholder association failed")
			}
		}
		return nil
	})
	s.metrics.ObserveWriteTxDuration(time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecordRollback()
		if s.logger != nil {
			s.logger.Error("document create rolled back", "title", in.Title, "error", err)
		}
		return 0, err
	}
	s.metrics.RecordWrite("create")
	return id, nil
}

// Update replaces every mutable field and the stakeholder set of an existing
// document in one transaction. An unknown id is a not-found failure and
// leaves storage unchanged.
func (s *Service) Update(ctx context.Context, id int64, in WriteInput) error {
	if err := in.Issued.Validate(); err != nil {
		return err
	}

	start := time.Now()
	err := s.tx.RunInTx(ctx, func(tx store.Stores) error {
		doc, stakeholders, err := s.prepare(ctx, tx, in)
		if err != nil {
			return err
		}
		doc.ID = id

		if err := tx.Documents.Update(ctx, doc); err != nil {
			return translate(err, "document update failed")
		}
		if err := tx.Documents.DeleteStakeholders(ctx, id); err != nil {
			return translate(err, "stakeholder rewrite failed")
		}
		for _, label := range stakeholders {
			if err := tx.Documents.InsertStakeholder(ctx, id, label); err != nil {
				return translate(err, "stakeholder association failed")
			}
		}
		return nil
	})
	s.metrics.ObserveWriteTxDuration(time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecordRollback()
		if s.logger != nil {
			s.logger.Error("document update rolled back", "id", id, "error", err)
		}
		return err
	}
	s.metrics.RecordWrite("update")
	return nil
}

// Delete removes the document row; associations go with it. Unknown ids are
// a not-found failure.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.stores.Documents.Delete(ctx, id); err != nil {
		return translate(err, "document delete failed")
	}
	s.metrics.RecordWrite("delete")
	return nil
}

// UpdateDescription is the partial update path: description only.
func (s *Service) UpdateDescription(ctx context.Context, id int64, description string) error {
	if err := s.stores.Documents.UpdateDescription(ctx, id, description); err != nil {
		return translate(err, "description update failed")
	}
	s.metrics.RecordWrite("update_description")
	return nil
}

// Get returns the bare document row.
func (s *Service) Get(ctx context.Context, id int64) (models.Document, error) {
	doc, err := s.stores.Documents.Get(ctx, id)
	if err != nil {
		return models.Document{}, translate(err, "document lookup failed")
	}
	return doc, nil
}

// prepare resolves the area, guarantees the reference vocabulary rows, and
// assembles the row to write. Runs inside the caller's transaction.
func (s *Service) prepare(ctx context.Context, tx store.Stores, in WriteInput) (models.Document, []string, error) {
	areaID := in.AreaID
	switch {
	case areaID != nil:
		if _, err := tx.Areas.Geometry(ctx, *areaID); err != nil {
			if dErrors.Is(err, sentinel.ErrNotFound) {
				return models.Document{}, nil, dErrors.Newf(dErrors.CodeNotFound, "area %d does not exist", *areaID)
			}
			return models.Document{}, nil, translate(err, "area lookup failed")
		}
	case len(in.Coordinates) > 0:
		resolver := area.New(tx.Areas, area.WithMetrics(s.metrics))
		id, err := resolver.ResolveOrCreate(ctx, in.Coordinates, in.AreaName)
		if err != nil {
			return models.Document{}, nil, err
		}
		areaID = &id
	}

	guard := vocabulary.New(tx.Vocabulary)
	if err := guard.EnsureScale(ctx, in.Scale); err != nil {
		return models.Document{}, nil, err
	}
	if err := guard.EnsureDocType(ctx, in.DocType); err != nil {
		return models.Document{}, nil, err
	}
	if in.Language != nil {
		exists, err := guard.LanguageExists(ctx, *in.Language)
		if err != nil {
			return models.Document{}, nil, err
		}
		if !exists {
			return models.Document{}, nil, dErrors.Newf(dErrors.CodeNotFound, "language %q does not exist", *in.Language)
		}
	}

	stakeholders := pkgstrings.DedupeAndTrim(in.Stakeholders)
	for _, label := range stakeholders {
		if err := guard.EnsureStakeholder(ctx, label); err != nil {
			return models.Document{}, nil, err
		}
	}

	doc := models.Document{
		Title:       in.Title,
		Description: in.Description,
		Scale:       in.Scale,
		DocType:     in.DocType,
		Language:    in.Language,
		Issued:      in.Issued.Normalized(),
		AreaID:      areaID,
	}
	return doc, stakeholders, nil
}

func translate(err error, msg string) error {
	if dErrors.HasCode(err, dErrors.CodeNotFound) || dErrors.HasCode(err, dErrors.CodeValidation) ||
		dErrors.HasCode(err, dErrors.CodeConflict) || dErrors.HasCode(err, dErrors.CodeUnavailable) {
		return err
	}
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
