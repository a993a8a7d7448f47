// Package georef assembles the denormalized read view of a document: the row
// joined with its area coordinates, deduplicated stakeholders, and
// direction-normalized links.
package georef

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"geodocs/internal/geo"
	"geodocs/internal/records/area"
	"geodocs/internal/records/link"
	"geodocs/internal/records/models"
	"geodocs/internal/records/store"
	dErrors "geodocs/pkg/domain-errors"
	"geodocs/pkg/platform/sentinel"
	pkgstrings "geodocs/pkg/platform/strings"
)

// Service is the read side of the records core. Reads run outside explicit
// transactions; the latest committed state is good enough.
type Service struct {
	stores store.Stores
	links  *link.Engine
	areas  *area.Resolver
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(stores store.Stores, links *link.Engine, opts ...Option) *Service {
	svc := &Service{
		stores: stores,
		links:  links,
		areas:  area.New(stores.Areas),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Georeference returns the assembled view for one document. An absent
// document is a not-found failure, never an empty view. The area, stakeholder,
// and link reads fan out concurrently; the first failure cancels the rest.
func (s *Service) Georeference(ctx context.Context, docID int64) (models.Georeference, error) {
	doc, err := s.stores.Documents.Get(ctx, docID)
	if err != nil {
		if dErrors.Is(err, sentinel.ErrNotFound) {
			return models.Georeference{}, dErrors.Wrap(err, dErrors.CodeNotFound, "document not found")
		}
		return models.Georeference{}, dErrors.Wrap(err, dErrors.CodeInternal, "document lookup failed")
	}

	view := models.Georeference{Document: doc}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if doc.AreaID == nil {
			return nil
		}
		coords, err := s.areas.Coordinates(ctx, *doc.AreaID)
		if err != nil {
			return err
		}
		view.Coordinates = coords
		return nil
	})
	g.Go(func() error {
		stakeholders, err := s.stores.Documents.Stakeholders(ctx, docID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "stakeholder lookup failed")
		}
		// The association join can repeat labels.
		view.Stakeholders = pkgstrings.DedupeAndTrim(stakeholders)
		return nil
	})
	g.Go(func() error {
		links, err := s.links.ListForDocument(ctx, docID)
		if err != nil {
			return err
		}
		view.Links = links
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.Georeference{}, err
	}

	if view.Stakeholders == nil {
		view.Stakeholders = []string{}
	}
	if view.Links == nil {
		view.Links = []models.LinkedDocument{}
	}
	return view, nil
}

// ListCoordinates returns id, title, type, and normalized coordinates for
// every document that has an area. A row whose stored geometry fails to parse
// degrades to an empty coordinate list instead of aborting the listing.
func (s *Service) ListCoordinates(ctx context.Context) ([]models.DocumentCoordinates, error) {
	rows, err := s.stores.Documents.ListGeoreferenced(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "coordinate listing failed")
	}

	out := make([]models.DocumentCoordinates, 0, len(rows))
	for _, r := range rows {
		entry := models.DocumentCoordinates{
			ID:          r.ID,
			Title:       r.Title,
			DocType:     r.DocType,
			Coordinates: [][]geo.Coordinate{},
		}
		g, err := geo.DecodeGeoJSON(r.GeoJSON)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("skipping unparseable area geometry", "document_id", r.ID, "error", err)
			}
		} else {
			entry.Coordinates = g.Rings()
		}
		out = append(out, entry)
	}
	return out, nil
}
