// Package store defines the persistence boundary of the records core. Each
// interface is implemented by a Postgres store and an in-memory store; stores
// return sentinel errors (pkg/platform/sentinel) and services translate those
// into coded domain errors.
package store

import (
	"context"

	"geodocs/internal/geo"
	"geodocs/internal/records/models"
)

// Vocab selects one of the label-only reference vocabularies. Languages carry
// a display name and have dedicated methods.
type Vocab string

const (
	VocabScale       Vocab = "scales"
	VocabDocType     Vocab = "document_types"
	VocabStakeholder Vocab = "stakeholders"
)

// AreaStore persists named geometries. Areas are append-only.
type AreaStore interface {
	// FindEquivalent returns the id of an area whose geometry is spatially
	// equal to g, or found=false when none exists.
	FindEquivalent(ctx context.Context, g geo.Geometry) (id int64, found bool, err error)
	Insert(ctx context.Context, name string, g geo.Geometry) (int64, error)
	// Geometry returns the stored geometry; sentinel.ErrNotFound when the
	// area does not exist.
	Geometry(ctx context.Context, id int64) (geo.Geometry, error)
}

// VocabularyStore holds the shared reference vocabularies. Ensure operations
// are idempotent.
type VocabularyStore interface {
	Exists(ctx context.Context, v Vocab, key string) (bool, error)
	Ensure(ctx context.Context, v Vocab, key string) error
	List(ctx context.Context, v Vocab) ([]string, error)
	LanguageExists(ctx context.Context, id string) (bool, error)
	EnsureLanguage(ctx context.Context, id, name string) error
}

// DocumentStore persists document rows and their stakeholder associations.
// Mutations of an absent document return sentinel.ErrNotFound.
type DocumentStore interface {
	Insert(ctx context.Context, doc models.Document) (int64, error)
	Update(ctx context.Context, doc models.Document) error
	Delete(ctx context.Context, id int64) error
	UpdateDescription(ctx context.Context, id int64, description string) error
	Get(ctx context.Context, id int64) (models.Document, error)
	Exists(ctx context.Context, id int64) (bool, error)

	InsertStakeholder(ctx context.Context, docID int64, stakeholder string) error
	DeleteStakeholders(ctx context.Context, docID int64) error
	Stakeholders(ctx context.Context, docID int64) ([]string, error)

	// ListGeoreferenced returns every document that has an area, with the
	// area geometry exported as GeoJSON. Parsing is the caller's concern so
	// a malformed row can degrade instead of aborting the listing.
	ListGeoreferenced(ctx context.Context) ([]GeoreferencedRow, error)
}

// GeoreferencedRow is one row of the bulk coordinate listing.
type GeoreferencedRow struct {
	ID      int64
	Title   string
	DocType string
	GeoJSON []byte
}

// LinkStore persists directed link rows. Lookups and deletes match either
// stored direction; inserts are expected in canonical order.
type LinkStore interface {
	Exists(ctx context.Context, a, b int64, linkType string) (bool, error)
	Insert(ctx context.Context, doc1, doc2 int64, linkType string) error
	Delete(ctx context.Context, a, b int64, linkType string) error
	ListForDocument(ctx context.Context, id int64) ([]models.Link, error)
}

// Stores bundles every store bound to one storage handle, either the shared
// pool or a single transaction.
type Stores struct {
	Areas      AreaStore
	Vocabulary VocabularyStore
	Documents  DocumentStore
	Links      LinkStore
}

// Tx provides the transactional boundary for multi-row writes. The stores
// passed to fn are bound to one transaction; fn returning an error rolls the
// whole transaction back before the error propagates.
type Tx interface {
	RunInTx(ctx context.Context, fn func(s Stores) error) error
}
