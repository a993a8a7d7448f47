package vocabulary

import (
	"context"
)

// SeedDefaults ensures the baseline vocabulary a fresh deployment starts
// with. Ensure is idempotent, so reseeding an existing database changes
// nothing.
func SeedDefaults(ctx context.Context, g *Guard) error {
	for _, scale := range []string{"blueprints/effects", "1:1000", "1:5000", "1:10000", "1:100000", "concept", "text"} {
		if err := g.EnsureScale(ctx, scale); err != nil {
			return err
		}
	}
	for _, docType := range []string{"Design", "Informative", "Prescriptive", "Technical", "Agreement", "Conflict", "Consultation", "Material effect"} {
		if err := g.EnsureDocType(ctx, docType); err != nil {
			return err
		}
	}
	for id, name := range map[string]string{"en": "English", "sv": "Swedish", "it": "Italian"} {
		if err := g.EnsureLanguage(ctx, id, name); err != nil {
			return err
		}
	}
	return nil
}
