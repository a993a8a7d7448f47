package vocabulary_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geodocs/internal/records/store"
	"geodocs/internal/records/store/memory"
	"geodocs/internal/records/vocabulary"
)

func TestGuardEnsureIsIdempotent(t *testing.T) {
	ctx := context.Background()
	g := vocabulary.New(memory.New().Stores().Vocabulary)

	t.Run("scale", func(t *testing.T) {
		require.NoError(t, g.EnsureScale(ctx, "1:5000"))
		require.NoError(t, g.EnsureScale(ctx, "1:5000"))

		exists, err := g.ScaleExists(ctx, "1:5000")
		require.NoError(t, err)
		assert.True(t, exists)

		labels, err := g.List(ctx, store.VocabScale)
		require.NoError(t, err)
		assert.Equal(t, []string{"1:5000"}, labels)
	})

	t.Run("document type", func(t *testing.T) {
		require.NoError(t, g.EnsureDocType(ctx, "Prescriptive"))
		require.NoError(t, g.EnsureDocType(ctx, "Prescriptive"))

		exists, err := g.DocTypeExists(ctx, "Prescriptive")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("stakeholder", func(t *testing.T) {
		require.NoError(t, g.EnsureStakeholder(ctx, "Municipality"))
		require.NoError(t, g.EnsureStakeholder(ctx, "Municipality"))

		labels, err := g.List(ctx, store.VocabStakeholder)
		require.NoError(t, err)
		assert.Equal(t, []string{"Municipality"}, labels)
	})

	t.Run("language keeps first display name", func(t *testing.T) {
		require.NoError(t, g.EnsureLanguage(ctx, "sv", "Swedish"))
		require.NoError(t, g.EnsureLanguage(ctx, "sv", "Svenska"))

		exists, err := g.LanguageExists(ctx, "sv")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("missing keys report absent", func(t *testing.T) {
		exists, err := g.ScaleExists(ctx, "1:1")
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = g.LanguageExists(ctx, "xx")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestSeedDefaults(t *testing.T) {
	ctx := context.Background()
	g := vocabulary.New(memory.New().Stores().Vocabulary)

	require.NoError(t, vocabulary.SeedDefaults(ctx, g))
	first, err := g.List(ctx, store.VocabScale)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// Reseeding adds nothing.
	require.NoError(t, vocabulary.SeedDefaults(ctx, g))
	second, err := g.List(ctx, store.VocabScale)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
