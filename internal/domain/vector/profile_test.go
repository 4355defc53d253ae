package vector_test

import (
	"math"
	"testing"

	"github.com/shopmorph/morph/internal/domain/address"
	"github.com/shopmorph/morph/internal/domain/model"
	"github.com/shopmorph/morph/internal/domain/vector"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEncodeTrait(t *testing.T) {
	Convey("Given the categorical encoder", t, func() {
		Convey("Then known vocabularies map to their fixed floats", func() {
			So(vector.EncodeTrait("corner_radius", "sharp"), ShouldEqual, 0.0)
			So(vector.EncodeTrait("corner_radius", "rounded"), ShouldEqual, 0.5)
			So(vector.EncodeTrait("corner_radius", "pill"), ShouldEqual, 1.0)
			So(vector.EncodeTrait("engagement_depth", "deep"), ShouldEqual, 0.8)
			So(vector.EncodeTrait("decision_confidence", "high"), ShouldEqual, 0.2)
		})

		Convey("Then unknown values default to neutral instead of erroring", func() {
			So(vector.EncodeTrait("corner_radius", "bevelled"), ShouldEqual, 0.5)
			So(vector.EncodeTrait("no_such_category", "x"), ShouldEqual, 0.5)
		})
	})
}

func TestFromProfile(t *testing.T) {
	Convey("Given the profile encoder", t, func() {
		Convey("When encoding the neutral default profile", func() {
			v := vector.FromProfile(model.DefaultProfile())

			Convey("Then the vector has twelve dimensions and unit length", func() {
				So(len(v), ShouldEqual, vector.Dimensions)
				var sum float64
				for _, x := range v {
					sum += x * x
				}
				So(math.Sqrt(sum), ShouldAlmostEqual, 1.0, 1e-9)
			})
		})

		Convey("When the profile asks for a dark scheme", func() {
			p := model.DefaultProfile()
			p.Visual.ColorScheme = "dark"
			v := vector.FromProfile(p)

			Convey("Then darkness dominates vibrancy", func() {
				So(v[vector.DimDarkness], ShouldBeGreaterThan, v[vector.DimVibrancy])
			})
		})

		Convey("When the profile is sparse, light and sharp", func() {
			p := model.DefaultProfile()
			p.Visual.Density = "low"
			p.Visual.TypographyWeight = "light"
			p.Visual.CornerRadius = "sharp"
			v := vector.FromProfile(p)

			Convey("Then the minimalism affinity beats the other genre affinities", func() {
				So(v[vector.DimMinimalism], ShouldBeGreaterThan, v[vector.DimBrutalism])
				So(v[vector.DimMinimalism], ShouldBeGreaterThan, v[vector.DimGlassEffect])
				So(v[vector.DimMinimalism], ShouldBeGreaterThan, v[vector.DimLoudness])
			})

			Convey("Then the catalog's best match is a minimalist module", func() {
				catalog := vector.NewCatalog()
				results, err := catalog.Search(v, 1, nil)
				So(err, ShouldBeNil)
				So(len(results), ShouldEqual, 1)
				So(address.Decode(results[0].ID).Genre, ShouldEqual, address.GenreMinimalist)
			})
		})

		Convey("When the profile is vibrant with large buttons and high exploration", func() {
			p := model.DefaultProfile()
			p.Visual.ColorScheme = "vibrant"
			p.Visual.ButtonSize = "large"
			p.Interaction.ExplorationTolerance = "high"
			v := vector.FromProfile(p)

			Convey("Then the loudness affinity is strong", func() {
				So(v[vector.DimLoudness], ShouldBeGreaterThan, v[vector.DimMinimalism])
				So(v[vector.DimLoudness], ShouldBeGreaterThan, v[vector.DimGlassEffect])
			})
		})

		Convey("Then behavioral dimensions track their traits before normalization", func() {
			deep := model.DefaultProfile()
			deep.Behavioral.EngagementDepth = "deep"
			shallow := model.DefaultProfile()
			shallow.Behavioral.EngagementDepth = "shallow"
			vd := vector.FromProfile(deep)
			vs := vector.FromProfile(shallow)
			So(vd[vector.DimInteractivity], ShouldBeGreaterThan, vs[vector.DimInteractivity])
		})
	})
}
