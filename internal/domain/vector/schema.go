// Package vector implements the feature-vector similarity engine.
//
// Two vector spaces coexist and are not interchangeable: the 12-dimension
// preference space shared by user profiles and catalog modules, and the
// 11-dimension visual-property space describing genres. Similarity across
// mismatched spaces is a programming error and fails fast.
package vector

import "math"

// Dimensions is the length of the shared preference feature space.
const Dimensions = 12

// Indices into the preference feature space.
const (
	DimDarkness = iota
	DimVibrancy
	DimCornerRoundness
	DimDensity
	DimTypographyWeight
	DimButtonSize
	DimMinimalism
	DimBrutalism
	DimGlassEffect
	DimLoudness
	DimInteractivity
	DimExploration
)

// neutral is the encoding for unknown categorical values.
const neutral = 0.5

// encodings maps each trait vocabulary to its float encoding.
var encodings = map[string]map[string]float64{
	"corner_radius": {
		"sharp":   0.0,
		"rounded": 0.5,
		"pill":    1.0,
	},
	"density": {
		"low":    0.0,
		"medium": 0.5,
		"high":   1.0,
	},
	"typography_weight": {
		"light":   0.0,
		"regular": 0.5,
		"bold":    1.0,
	},
	"button_size": {
		"small":  0.0,
		"medium": 0.5,
		"large":  1.0,
	},
	// Confident users explore less.
	"decision_confidence": {
		"high":   0.2,
		"medium": 0.5,
		"low":    0.8,
	},
	"exploration_tolerance": {
		"low":    0.2,
		"medium": 0.5,
		"high":   0.8,
	},
	"engagement_depth": {
		"shallow":  0.2,
		"moderate": 0.5,
		"deep":     0.8,
	},
}

// EncodeTrait maps a categorical trait value to a float in [0, 1].
// Unknown categories and values encode to the neutral 0.5 rather than
// erroring, so partial profiles still produce a usable vector.
func EncodeTrait(category, value string) float64 {
	if vocab, ok := encodings[category]; ok {
		if v, ok := vocab[value]; ok {
			return v
		}
	}
	return neutral
}

// Normalize returns the L2-normalized copy of v. A zero vector is returned
// unchanged.
func Normalize(v []float64) []float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		out := make([]float64, len(v))
		copy(out, v)
		return out
	}
	norm := math.Sqrt(sum)
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// clamp01 bounds x to [0, 1].
func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
