package script

import (
	"context"
	"fmt"
	"log/slog"

	"vidpilot/internal/sheet"
)

// Fallbacks when a record arrives with derived fields blanked out.
const (
	fallbackProduct    = "our organic product"
	fallbackBenefits   = "amazing benefits for your plants"
	fallbackIngredient = "natural ingredients"
)

// TemplateSynthesizer produces a fixed three-scene script from templates.
// It is deterministic and never fails.
type TemplateSynthesizer struct{}

func NewTemplateSynthesizer() *TemplateSynthesizer {
	return &TemplateSynthesizer{}
}

func (s *TemplateSynthesizer) Synthesize(_ context.Context, record *sheet.Record) (*Document, error) {
	product := orDefault(record.ProductName, fallbackProduct)
	benefits := orDefault(record.Benefits, fallbackBenefits)
	ingredient := orDefault(record.KeyIngredient, fallbackIngredient)

	hook := hookTemplates[0]
	education := fmt.Sprintf(educationTemplates[0], product, ingredient, benefits)

	doc := assemble(hook, education, callToAction, product)
	slog.Info("Synthesized script", "product", product, "scenes", len(doc.Scenes))
	return doc, nil
}

func assemble(hook, education, cta, product string) *Document {
	return &Document{
		Hook:       hook,
		Education:  education,
		CTA:        cta,
		FullScript: fmt.Sprintf("%s %s %s", hook, education, cta),
		Scenes: []Scene{
			{
				Number:            1,
				Duration:          hookDuration,
				Text:              hook,
				VisualDescription: hookVisual,
				BackgroundMusic:   hookMusic,
			},
			{
				Number:            2,
				Duration:          educationDuration,
				Text:              education,
				VisualDescription: educationVisual,
				BackgroundMusic:   educationMusic,
			},
			{
				Number:            3,
				Duration:          ctaDuration,
				Text:              cta,
				VisualDescription: ctaVisual,
				BackgroundMusic:   ctaMusic,
			},
		},
		TotalDuration: nominalDuration,
		ProductName:   product,
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
