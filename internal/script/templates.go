package script

// Scene timing. The three scenes target a nominal 30-second short.
const (
	hookDuration      = 7
	educationDuration = 18
	ctaDuration       = 5
	nominalDuration   = 30
)

const (
	hookMusic      = "upbeat_gardening"
	educationMusic = "educational_calm"
	ctaMusic       = "upbeat_conclusion"
)

const (
	hookVisual      = "Close-up of struggling plant with yellowing leaves, then transition to healthy green plants"
	educationVisual = "Hands working with rich, dark soil, plants growing in healthy soil, root system close-up"
	ctaVisual       = "Beautiful thriving garden, Nature's Way logo, website text overlay"
)

const callToAction = "For more organic gardening tips and premium soil solutions, visit natureswaysoil.com"

// The first entry of each list is the one used; the rest are kept for when
// rotation is wanted.
var hookTemplates = []string{
	"Why are your plants struggling to thrive?",
	"What if I told you there's a secret to healthier soil?",
	"Are your plants getting the nutrition they really need?",
	"Want to know the difference between surviving and thriving plants?",
	"Ever wonder why some gardens flourish while others struggle?",
}

var educationTemplates = []string{
	"%[1]s contains %[2]s that naturally improves soil structure and nutrient availability. %[3]s. This means stronger root systems, better water retention, and healthier plants that can resist pests and diseases naturally.",
	"The science is simple: %[1]s with %[2]s creates the perfect soil environment. %[3]s. Your plants get consistent nutrition, improved drainage, and the biological activity they need to thrive.",
	"%[1]s works by introducing %[2]s that feeds beneficial soil microbes. %[3]s. This creates a living soil ecosystem that supports plant health from the ground up.",
}
