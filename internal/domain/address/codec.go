// Package address implements the combinatorial module-addressing codec.
//
// Two fixed-radix schemes coexist: the 2-factor module scheme
// (id = genre*6 + layout, 36 ids) which is the system of record, and the
// 3-factor template scheme (id = genre*18 + type*3 + variation, 108 ids).
// They share the genre axis but have different radii and are never merged.
//
// Decode is total over the integer domain: out-of-range ids alias into a
// valid tag via modulo wraparound instead of failing. Callers may not assume
// ids are bounds-checked.
package address

// Genre indexes the six visual genres.
type Genre int

// Genres, in radix order.
const (
	GenreBase Genre = iota
	GenreMinimalist
	GenreNeobrutalist
	GenreGlassmorphism
	GenreLoud
	GenreCyber
)

// Layout indexes the six module layouts of the 2-factor scheme.
type Layout int

// Layouts, in radix order.
const (
	LayoutStandard Layout = iota
	LayoutCompact
	LayoutFeatured
	LayoutGallery
	LayoutTechnical
	LayoutBold
)

// Radix constants for the 2-factor scheme.
const (
	GenreCount  = 6
	LayoutCount = 6
	ModuleCount = GenreCount * LayoutCount // 36
)

// loudGenre is the genre whose modules render with attention-grabbing
// styling; IsLoud is derived from it, never stored.
const loudGenre = GenreLoud

var genreNames = [GenreCount]string{
	"base", "minimalist", "neobrutalist", "glassmorphism", "loud", "cyber",
}

var layoutNames = [LayoutCount]string{
	"standard", "compact", "featured", "gallery", "technical", "bold",
}

// String returns the lowercase genre name.
func (g Genre) String() string {
	if g < 0 || int(g) >= GenreCount {
		return genreNames[GenreBase]
	}
	return genreNames[g]
}

// String returns the lowercase layout name.
func (l Layout) String() string {
	if l < 0 || int(l) >= LayoutCount {
		return layoutNames[LayoutStandard]
	}
	return layoutNames[l]
}

// ParseGenre resolves a genre name to its index. Unknown names resolve to
// the base genre, mirroring decode totality.
func ParseGenre(name string) Genre {
	for i, n := range genreNames {
		if n == name {
			return Genre(i)
		}
	}
	return GenreBase
}

// ParseLayout resolves a layout name to its index, defaulting to standard.
func ParseLayout(name string) Layout {
	for i, n := range layoutNames {
		if n == name {
			return Layout(i)
		}
	}
	return LayoutStandard
}

// Tag is the decoded form of a 2-factor module id.
type Tag struct {
	Genre  Genre  `json:"genre"`
	Layout Layout `json:"layout"`
	IsLoud bool   `json:"is_loud"`
}

// Encode packs a genre and layout into a module id.
// Out-of-range factors are wrapped into their radix first, so the result is
// always a valid id in [0, ModuleCount).
func Encode(genre Genre, layout Layout) int {
	g := mod(int(genre), GenreCount)
	l := mod(int(layout), LayoutCount)
	return g*LayoutCount + l
}

// Decode unpacks a module id. Defined for every integer: the id is wrapped
// into the addressable space, which wraps genre via mod 6.
func Decode(id int) Tag {
	id = mod(id, ModuleCount)
	g := Genre(id / LayoutCount)
	l := Layout(id % LayoutCount)
	return Tag{Genre: g, Layout: l, IsLoud: g == loudGenre}
}

// AllModuleIDs enumerates every module id exactly once, genre-major then
// layout, so golden-output tests are reproducible.
func AllModuleIDs() []int {
	ids := make([]int, 0, ModuleCount)
	for g := 0; g < GenreCount; g++ {
		for l := 0; l < LayoutCount; l++ {
			ids = append(ids, g*LayoutCount+l)
		}
	}
	return ids
}

// mod is the floored modulo, non-negative for any input.
func mod(a, n int) int {
	return ((a % n) + n) % n
}
