package georef_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geodocs/internal/geo"
	"geodocs/internal/records/document"
	"geodocs/internal/records/georef"
	"geodocs/internal/records/link"
	"geodocs/internal/records/models"
	"geodocs/internal/records/store"
	"geodocs/internal/records/store/memory"
	dErrors "geodocs/pkg/domain-errors"
)

type fixture struct {
	stores  store.Stores
	writes  *document.Service
	links   *link.Engine
	reads   *georef.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := memory.New()
	stores := mem.Stores()
	tx := memory.NewTx(mem)

	writes, err := document.New(tx, stores)
	require.NoError(t, err)
	links, err := link.New(tx, stores)
	require.NoError(t, err)

	return &fixture{
		stores: stores,
		writes: writes,
		links:  links,
		reads:  georef.New(stores, links),
	}
}

func TestGeoreference(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles document with point area and stakeholders", func(t *testing.T) {
		f := newFixture(t)
		id, err := f.writes.Create(ctx, document.WriteInput{
			Title:        "Zoning Plan",
			Description:  "city plan",
			Scale:        "1:5000",
			DocType:      "Prescriptive",
			Issued:       models.IssuanceDate{Year: "2021"},
			Coordinates:  []geo.Coordinate{{Lon: 12.49, Lat: 41.89}},
			AreaName:     "city",
			Stakeholders: []string{"Municipality"},
		})
		require.NoError(t, err)

		view, err := f.reads.Georeference(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Zoning Plan", view.Document.Title)
		assert.Equal(t, [][]geo.Coordinate{{{Lon: 12.49, Lat: 41.89}}}, view.Coordinates)
		assert.Equal(t, []string{"Municipality"}, view.Stakeholders)
		assert.Empty(t, view.Links)
	})

	t.Run("document without area has no coordinates", func(t *testing.T) {
		f := newFixture(t)
		id, err := f.writes.Create(ctx, document.WriteInput{
			Title: "Memo", Description: "m", Scale: "text", DocType: "Informative",
			Issued: models.IssuanceDate{Year: "2020"},
		})
		require.NoError(t, err)

		view, err := f.reads.Georeference(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, view.Coordinates)
		assert.Empty(t, view.Stakeholders)
	})

	t.Run("stakeholders are deduplicated", func(t *testing.T) {
		f := newFixture(t)
		id, err := f.writes.Create(ctx, document.WriteInput{
			Title: "Plan", Description: "p", Scale: "text", DocType: "Design",
			Issued: models.IssuanceDate{Year: "2020"},
		})
		require.NoError(t, err)

		// Force duplicate association rows past the service layer.
		require.NoError(t, f.stores.Documents.InsertStakeholder(ctx, id, "Municipality"))
		require.NoError(t, f.stores.Documents.InsertStakeholder(ctx, id, "Municipality"))

		view, err := f.reads.Georeference(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"Municipality"}, view.Stakeholders)
	})

	t.Run("links always name the other document", func(t *testing.T) {
		f := newFixture(t)
		older, err := f.writes.Create(ctx, document.WriteInput{
			Title: "Old", Description: "o", Scale: "text", DocType: "Design",
			Issued: models.IssuanceDate{Year: "2019"},
		})
		require.NoError(t, err)
		newer, err := f.writes.Create(ctx, document.WriteInput{
			Title: "New", Description: "n", Scale: "text", DocType: "Design",
			Issued: models.IssuanceDate{Year: "2022"},
		})
		require.NoError(t, err)

		require.NoError(t, f.links.Reconcile(ctx, older, newer, []models.DesiredLink{
			{Type: "direct", Valid: true},
		}))

		// The older document is stored as doc1; both views still name the
		// other side.
		view, err := f.reads.Georeference(ctx, older)
		require.NoError(t, err)
		require.Len(t, view.Links, 1)
		assert.Equal(t, newer, view.Links[0].DocumentID)

		view, err = f.reads.Georeference(ctx, newer)
		require.NoError(t, err)
		require.Len(t, view.Links, 1)
		assert.Equal(t, older, view.Links[0].DocumentID)
	})

	t.Run("absent document is not found, not an empty view", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.reads.Georeference(ctx, 404)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

// badGeometryDocs serves one row with unparseable geometry alongside the real
// rows.
type badGeometryDocs struct {
	store.DocumentStore
}

func (b badGeometryDocs) ListGeoreferenced(ctx context.Context) ([]store.GeoreferencedRow, error) {
	rows, err := b.DocumentStore.ListGeoreferenced(ctx)
	if err != nil {
		return nil, err
	}
	return append(rows, store.GeoreferencedRow{
		ID: 9000, Title: "corrupt", DocType: "Design", GeoJSON: []byte(`{"type":"Blob"}`),
	}), nil
}

func TestListCoordinates(t *testing.T) {
	ctx := context.Background()

	t.Run("returns coordinates for every document with an area", func(t *testing.T) {
		f := newFixture(t)
		withArea, err := f.writes.Create(ctx, document.WriteInput{
			Title: "Mapped", Description: "m", Scale: "text", DocType: "Design",
			Issued:      models.IssuanceDate{Year: "2020"},
			Coordinates: []geo.Coordinate{{Lon: 20.2, Lat: 67.85}},
			AreaName:    "site",
		})
		require.NoError(t, err)
		_, err = f.writes.Create(ctx, document.WriteInput{
			Title: "Unmapped", Description: "u", Scale: "text", DocType: "Design",
			Issued: models.IssuanceDate{Year: "2020"},
		})
		require.NoError(t, err)

		list, err := f.reads.ListCoordinates(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, withArea, list[0].ID)
		assert.Equal(t, "Mapped", list[0].Title)
		assert.Equal(t, [][]geo.Coordinate{{{Lon: 20.2, Lat: 67.85}}}, list[0].Coordinates)
	})

	t.Run("unparseable row degrades to empty coordinates", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.writes.Create(ctx, document.WriteInput{
			Title: "Mapped", Description: "m", Scale: "text", DocType: "Design",
			Issued:      models.IssuanceDate{Year: "2020"},
			Coordinates: []geo.Coordinate{{Lon: 1, Lat: 2}},
			AreaName:    "site",
		})
		require.NoError(t, err)

		stores := f.stores
		stores.Documents = badGeometryDocs{DocumentStore: stores.Documents}
		reads := georef.New(stores, f.links)

		list, err := reads.ListCoordinates(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.NotEmpty(t, list[0].Coordinates)
		assert.Equal(t, int64(9000), list[1].ID)
		assert.Empty(t, list[1].Coordinates)
	})
}
