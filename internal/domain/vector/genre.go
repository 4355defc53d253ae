package vector

import (
	"math"

	"github.com/shopmorph/morph/internal/domain/address"
)

// VisualDimensions is the length of the genre visual-property space. This
// is a separate space from the 12-dimension preference schema; the two are
// never compared directly.
const VisualDimensions = 11

// Indices into the genre visual-property space. Index 0 is the normalized
// genre index itself.
const (
	VisGenreIndex = iota
	VisCurvature
	VisContrast
	VisWarmth
	VisSaturation
	VisMotion
	VisDensity
	VisBorderWeight
	VisFontWeight
	VisAnimationDuration
	VisShadowDepth
)

// visualProfile is one genre's hand-specified visual fingerprint, derived
// from its design tokens. Values are bounded to [0, 1].
type visualProfile struct {
	curvature         float64
	contrast          float64
	warmth            float64
	saturation        float64
	motion            float64
	density           float64
	borderWeight      float64
	fontWeight        float64
	animationDuration float64
	shadowDepth       float64
}

// genreVisuals holds the static profile per genre. Hand-specified, not
// derived from user data.
var genreVisuals = map[address.Genre]visualProfile{
	// Clean, professional dark UI.
	address.GenreBase: {
		curvature: 0.5, contrast: 0.6, warmth: 0.4, saturation: 0.4,
		motion: 0.1, density: 0.5, borderWeight: 0.2, fontWeight: 0.5,
		animationDuration: 0.3, shadowDepth: 0.3,
	},
	// Stark, high contrast, Swiss-inspired.
	address.GenreMinimalist: {
		curvature: 0.0, contrast: 1.0, warmth: 0.3, saturation: 0.0,
		motion: 0.0, density: 0.2, borderWeight: 0.2, fontWeight: 0.4,
		animationDuration: 0.0, shadowDepth: 0.0,
	},
	// Bold, raw, thick borders and hard shadows.
	address.GenreNeobrutalist: {
		curvature: 0.0, contrast: 0.9, warmth: 0.7, saturation: 1.0,
		motion: 0.2, density: 0.7, borderWeight: 1.0, fontWeight: 0.9,
		animationDuration: 0.2, shadowDepth: 0.8,
	},
	// Translucent, rounded, soft glow.
	address.GenreGlassmorphism: {
		curvature: 1.0, contrast: 0.4, warmth: 0.5, saturation: 0.5,
		motion: 0.4, density: 0.4, borderWeight: 0.1, fontWeight: 0.4,
		animationDuration: 0.6, shadowDepth: 0.5,
	},
	// Attention-grabbing gradients, warm and energetic.
	address.GenreLoud: {
		curvature: 0.9, contrast: 0.7, warmth: 1.0, saturation: 0.9,
		motion: 0.5, density: 0.6, borderWeight: 0.0, fontWeight: 0.8,
		animationDuration: 0.5, shadowDepth: 0.7,
	},
	// Terminal aesthetic, neon green on black.
	address.GenreCyber: {
		curvature: 0.1, contrast: 0.8, warmth: 0.0, saturation: 0.7,
		motion: 0.8, density: 0.5, borderWeight: 0.3, fontWeight: 0.5,
		animationDuration: 0.9, shadowDepth: 0.4,
	},
}

// GenreVector returns the 11-dimension visual-property vector for a genre.
// Unknown genres fall back to the base profile.
func GenreVector(g address.Genre) []float64 {
	p, ok := genreVisuals[g]
	if !ok {
		g = address.GenreBase
		p = genreVisuals[g]
	}
	return []float64{
		float64(g) / float64(address.GenreCount-1),
		p.curvature,
		p.contrast,
		p.warmth,
		p.saturation,
		p.motion,
		p.density,
		p.borderWeight,
		p.fontWeight,
		p.animationDuration,
		p.shadowDepth,
	}
}

// MostSimilarGenre linearly scans the genre vectors and returns the highest
// cosine match for an 11-dimension preference vector. It always returns some
// genre: a query that scores nothing (wrong shape, zero magnitude) falls
// back to the base genre.
func MostSimilarGenre(preference []float64) address.Genre {
	best := address.GenreBase
	bestScore := math.Inf(-1)
	for g := 0; g < address.GenreCount; g++ {
		genre := address.Genre(g)
		score, err := CosineSimilarity(preference, GenreVector(genre))
		if err != nil {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = genre
		}
	}
	return best
}
