package vector

import (
	"github.com/shopmorph/morph/internal/domain/address"
)

// genreAffinity holds the four genre-affinity components
// (minimalism, brutalism, glass, loudness) of a genre's modules.
var genreAffinity = map[address.Genre][4]float64{
	address.GenreBase:          {0.0, 0.0, 0.0, 0.2},
	address.GenreMinimalist:    {1.0, 0.0, 0.0, 0.0},
	address.GenreNeobrutalist:  {0.0, 1.0, 0.0, 0.3},
	address.GenreGlassmorphism: {0.3, 0.0, 1.0, 0.0},
	address.GenreLoud:          {0.0, 0.2, 0.0, 1.0},
	address.GenreCyber:         {0.2, 0.3, 0.2, 0.5},
}

// modulePrefs maps each genre's visual fingerprint into the preference
// space's six direct dimensions plus interactivity. Separate from the
// 11-dimension visual table: these describe what a user who likes the genre
// would pick, not the genre's CSS.
var modulePrefs = map[address.Genre][7]float64{
	// darkness, vibrancy, roundness, density, typography, buttonSize, interactivity
	address.GenreBase:          {0.3, 0.4, 0.5, 0.5, 0.5, 0.5, 0.4},
	address.GenreMinimalist:    {0.0, 0.1, 0.0, 0.2, 0.3, 0.4, 0.2},
	address.GenreNeobrutalist:  {0.1, 0.9, 0.0, 0.8, 1.0, 0.8, 0.6},
	address.GenreGlassmorphism: {0.3, 0.5, 0.8, 0.4, 0.4, 0.5, 0.5},
	address.GenreLoud:          {0.2, 1.0, 0.9, 0.6, 0.8, 0.9, 0.8},
	address.GenreCyber:         {0.9, 0.7, 0.1, 0.5, 0.5, 0.5, 0.7},
}

// ModuleVector builds the 12-dimension preference-space vector for a module
// id. The exploration dimension reuses the loudness affinity: loud modules
// are the exploratory ones.
func ModuleVector(id int) []float64 {
	tag := address.Decode(id)
	prefs := modulePrefs[tag.Genre]
	affinity := genreAffinity[tag.Genre]

	v := make([]float64, Dimensions)
	v[DimDarkness] = prefs[0]
	v[DimVibrancy] = prefs[1]
	v[DimCornerRoundness] = prefs[2]
	v[DimDensity] = prefs[3]
	v[DimTypographyWeight] = prefs[4]
	v[DimButtonSize] = prefs[5]
	v[DimMinimalism] = affinity[0]
	v[DimBrutalism] = affinity[1]
	v[DimGlassEffect] = affinity[2]
	v[DimLoudness] = affinity[3]
	v[DimInteractivity] = prefs[6]
	v[DimExploration] = affinity[3]
	return v
}

// NewCatalog builds a store holding one vector per addressable module, in
// enumeration order.
func NewCatalog() *Store {
	s := NewStore()
	for _, id := range address.AllModuleIDs() {
		s.Add(id, ModuleVector(id))
	}
	return s
}
