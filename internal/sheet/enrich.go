package sheet

import "strings"

// Placeholders used when the title is empty or nothing matches.
const (
	DefaultProductName       = "Nature's Way Soil Product"
	defaultBenefitsNoTitle   = "provides excellent nutrition for your plants"
	defaultBenefitsNoMatch   = "provides excellent nutrition and support for healthy plant growth"
	defaultIngredientNoTitle = "organic nutrients"
	defaultIngredientNoMatch = "organic nutrients and beneficial compounds"
)

const (
	maxBenefitFragments = 2
	maxIngredients      = 2
	minBenefitLen       = 20
	maxBenefitLen       = 150
)

var benefitKeywords = []string{
	"enhance", "improve", "boost", "promote", "support", "strengthen",
	"healthy", "organic", "natural", "nutrient", "growth", "root",
	"soil", "plant", "garden", "lawn",
}

// ingredientVocabulary is scanned in order; the first two hits win.
var ingredientVocabulary = []string{
	"kelp", "seaweed", "humic acid", "fulvic acid", "biochar", "compost",
	"worm castings", "bone meal", "aloe vera", "vitamin b-1", "mycorrhizae",
	"enzymes", "microbes", "bacteria", "charcoal", "coco coir", "perlite",
}

// ExtractProductName takes the text before the first en-dash or hyphen,
// then before the first slash.
func ExtractProductName(title string) string {
	if title == "" {
		return DefaultProductName
	}

	name := strings.SplitN(title, "–", 2)[0]
	name = strings.SplitN(name, "-", 2)[0]
	name = strings.TrimSpace(name)
	if idx := strings.Index(name, "/"); idx >= 0 {
		name = strings.TrimSpace(name[:idx])
	}

	return name
}

// ExtractBenefits picks up to two pipe-separated title fragments of sensible
// length that mention a benefit keyword.
func ExtractBenefits(title string) string {
	if title == "" {
		return defaultBenefitsNoTitle
	}

	flattened := strings.NewReplacer("/", " ", "–", " ", "-", " ").Replace(title)

	var matches []string
	for _, fragment := range strings.Split(flattened, "|") {
		fragment = strings.TrimSpace(fragment)
		if len(fragment) <= minBenefitLen || len(fragment) >= maxBenefitLen {
			continue
		}
		if containsAnyKeyword(fragment, benefitKeywords) {
			matches = append(matches, fragment)
			if len(matches) == maxBenefitFragments {
				break
			}
		}
	}

	if len(matches) == 0 {
		return defaultBenefitsNoMatch
	}
	return strings.Join(matches, ". ")
}

// ExtractKeyIngredient scans the ingredient vocabulary against the title and
// joins the first two hits.
func ExtractKeyIngredient(title string) string {
	if title == "" {
		return defaultIngredientNoTitle
	}

	lower := strings.ToLower(title)
	var found []string
	for _, ingredient := range ingredientVocabulary {
		if strings.Contains(lower, ingredient) {
			found = append(found, ingredient)
			if len(found) == maxIngredients {
				break
			}
		}
	}

	if len(found) == 0 {
		return defaultIngredientNoMatch
	}
	return strings.Join(found, ", ")
}

func containsAnyKeyword(fragment string, keywords []string) bool {
	lower := strings.ToLower(fragment)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
