package address

// ModuleType indexes the page-section types of the 3-factor template scheme.
type ModuleType int

// Module types, in radix order.
const (
	TypeHero ModuleType = iota
	TypeProductGrid
	TypeProductCard
	TypeBanner
	TypeTestimonial
	TypeCTA
)

// Radix constants for the 3-factor scheme.
const (
	TypeCount      = 6
	VariationCount = 3
	TemplateCount  = GenreCount * TypeCount * VariationCount // 108
)

var typeNames = [TypeCount]string{
	"hero", "product-grid", "product-card", "banner", "testimonial", "cta",
}

// String returns the lowercase module type name.
func (t ModuleType) String() string {
	if t < 0 || int(t) >= TypeCount {
		return typeNames[TypeHero]
	}
	return typeNames[t]
}

// ParseModuleType resolves a type name to its index, defaulting to hero.
func ParseModuleType(name string) ModuleType {
	for i, n := range typeNames {
		if n == name {
			return ModuleType(i)
		}
	}
	return TypeHero
}

// TemplateTag is the decoded form of a 3-factor template id.
type TemplateTag struct {
	Genre     Genre      `json:"genre"`
	Type      ModuleType `json:"type"`
	Variation int        `json:"variation"`
	IsLoud    bool       `json:"is_loud"`
}

// EncodeTemplate packs genre, type and variation into a template id,
// wrapping each factor into its radix.
func EncodeTemplate(genre Genre, typ ModuleType, variation int) int {
	g := mod(int(genre), GenreCount)
	t := mod(int(typ), TypeCount)
	v := mod(variation, VariationCount)
	return g*(TypeCount*VariationCount) + t*VariationCount + v
}

// DecodeTemplate unpacks a template id. Total over the integer domain via
// modulo wraparound; genre wraps mod 6.
func DecodeTemplate(id int) TemplateTag {
	id = mod(id, TemplateCount)
	g := Genre(id / (TypeCount * VariationCount))
	rem := id % (TypeCount * VariationCount)
	t := ModuleType(rem / VariationCount)
	v := rem % VariationCount
	return TemplateTag{Genre: g, Type: t, Variation: v, IsLoud: g == loudGenre}
}

// AllTemplateIDs enumerates every template id exactly once, genre-major,
// then type, then variation.
func AllTemplateIDs() []int {
	ids := make([]int, 0, TemplateCount)
	for g := 0; g < GenreCount; g++ {
		for t := 0; t < TypeCount; t++ {
			for v := 0; v < VariationCount; v++ {
				ids = append(ids, g*(TypeCount*VariationCount)+t*VariationCount+v)
			}
		}
	}
	return ids
}
