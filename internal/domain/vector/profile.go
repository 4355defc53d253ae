package vector

import (
	"github.com/shopmorph/morph/internal/domain/model"
)

// FromProfile converts a user profile to an L2-normalized vector in the
// 12-dimension preference space.
//
// The six direct visual dimensions come from the categorical encoder. The
// four genre-affinity dimensions are derived from the direct dimensions via
// weighted combinations (weights sum to 1.0 within each), so a profile
// expressed purely in visual and behavioral language still carries an
// implicit genre preference.
func FromProfile(p model.UserProfile) []float64 {
	v := make([]float64, Dimensions)

	// Color scheme splits into darkness and vibrancy. This is a fixed 2x3
	// table, not a single-axis lookup: vibrant palettes are mid-dark, dark
	// palettes retain some vibrancy.
	switch p.Visual.ColorScheme {
	case "dark":
		v[DimDarkness] = 1.0
		v[DimVibrancy] = 0.4
	case "vibrant":
		v[DimDarkness] = 0.3
		v[DimVibrancy] = 1.0
	default: // light
		v[DimDarkness] = 0.0
		v[DimVibrancy] = 0.3
	}

	v[DimCornerRoundness] = EncodeTrait("corner_radius", p.Visual.CornerRadius)
	v[DimDensity] = EncodeTrait("density", p.Visual.Density)
	v[DimTypographyWeight] = EncodeTrait("typography_weight", p.Visual.TypographyWeight)
	v[DimButtonSize] = EncodeTrait("button_size", p.Visual.ButtonSize)

	exploration := EncodeTrait("exploration_tolerance", p.Interaction.ExplorationTolerance)

	// Sparse, light, sharp leans minimalist.
	minimalism := (1.0-v[DimDensity])*0.5 +
		(1.0-v[DimTypographyWeight])*0.3 +
		(1.0-v[DimCornerRoundness])*0.2

	// Vibrant, bold, sharp leans brutalist.
	brutalism := v[DimVibrancy]*0.4 +
		v[DimTypographyWeight]*0.4 +
		(1.0-v[DimCornerRoundness])*0.2

	// Rounded with mid density leans glass; the density term peaks at 0.5.
	glass := v[DimCornerRoundness]*0.5 +
		max0(1.0-abs(v[DimDensity]-0.5)*2)*0.3 +
		v[DimDarkness]*0.2

	// Vibrant, chunky, exploratory leans loud.
	loudness := v[DimVibrancy]*0.4 +
		v[DimButtonSize]*0.3 +
		exploration*0.3

	v[DimMinimalism] = clamp01(minimalism)
	v[DimBrutalism] = clamp01(brutalism)
	v[DimGlassEffect] = clamp01(glass)
	v[DimLoudness] = clamp01(loudness)

	v[DimInteractivity] = EncodeTrait("engagement_depth", p.Behavioral.EngagementDepth)
	v[DimExploration] = exploration

	return Normalize(v)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func max0(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}
