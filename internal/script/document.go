package script

import (
	"context"
	"fmt"
	"strings"

	"vidpilot/internal/sheet"
)

// Synthesizer turns a product record into a ready-to-shoot script.
type Synthesizer interface {
	Synthesize(ctx context.Context, record *sheet.Record) (*Document, error)
}

// Scene is one timed segment: narration text plus visual direction.
type Scene struct {
	Number            int    `json:"scene_number"`
	Duration          int    `json:"duration"`
	Text              string `json:"text"`
	VisualDescription string `json:"visual_description"`
	BackgroundMusic   string `json:"background_music"`
}

// Document is a complete short-form video script. TotalDuration is the
// nominal target; individual scene durations need not sum to it exactly.
type Document struct {
	Hook          string  `json:"hook"`
	Education     string  `json:"education"`
	CTA           string  `json:"cta"`
	FullScript    string  `json:"full_script"`
	Scenes        []Scene `json:"scenes"`
	TotalDuration int     `json:"total_duration"`
	ProductName   string  `json:"product_name"`
}

var captionHashtags = []string{
	"#NaturesWay", "#OrganicGardening", "#PlantCare", "#GreenThumb", "#HealthyPlants",
}

// Caption composes the social post text: hook, product name, call to action
// and the fixed hashtag set.
func (d *Document) Caption() string {
	return fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s",
		d.Hook, d.ProductName, d.CTA, strings.Join(captionHashtags, " "))
}
