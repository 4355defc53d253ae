package vector_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopmorph/morph/internal/domain/address"
	"github.com/shopmorph/morph/internal/domain/vector"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStore(t *testing.T) {
	Convey("Given an empty store", t, func() {
		s := vector.NewStore()

		Convey("Then it reports zero length and misses", func() {
			So(s.Len(), ShouldEqual, 0)
			So(s.Get(7), ShouldBeNil)
		})

		Convey("When vectors are added", func() {
			s.Add(1, []float64{1, 0})
			s.Add(2, []float64{0, 1})
			s.Add(3, []float64{1, 1})

			Convey("Then vectors are normalized at insert", func() {
				v := s.Get(1)
				So(v, ShouldResemble, []float64{1, 0})
				diag := s.Get(3)
				So(diag[0], ShouldAlmostEqual, diag[1], 1e-9)
			})

			Convey("Then search returns descending scores capped at k", func() {
				results, err := s.Search([]float64{1, 0.1}, 2, nil)
				So(err, ShouldBeNil)
				So(len(results), ShouldEqual, 2)
				So(results[0].ID, ShouldEqual, 1)
				So(results[0].Score, ShouldBeGreaterThanOrEqualTo, results[1].Score)
			})

			Convey("Then the filter drops entries before scoring", func() {
				results, err := s.Search([]float64{1, 0}, 3, func(id int) bool { return id != 1 })
				So(err, ShouldBeNil)
				So(len(results), ShouldEqual, 2)
				for _, r := range results {
					So(r.ID, ShouldNotEqual, 1)
				}
			})

			Convey("Then tied scores keep insertion order", func() {
				s.Add(4, []float64{2, 0}) // same direction as id 1
				results, err := s.Search([]float64{1, 0}, 2, nil)
				So(err, ShouldBeNil)
				So(results[0].ID, ShouldEqual, 1)
				So(results[1].ID, ShouldEqual, 4)
			})

			Convey("When an entry is removed", func() {
				s.Remove(2)
				So(s.Len(), ShouldEqual, 2)
				So(s.Get(2), ShouldBeNil)

				Convey("Then removing it again is a no-op", func() {
					s.Remove(2)
					So(s.Len(), ShouldEqual, 2)
				})
			})

			Convey("Then a mismatched query fails fast", func() {
				_, err := s.Search([]float64{1, 0, 0}, 1, nil)
				So(err, ShouldWrap, vector.ErrDimensionMismatch)
			})
		})
	})
}

func TestCatalog(t *testing.T) {
	Convey("Given the module catalog", t, func() {
		catalog := vector.NewCatalog()

		Convey("Then it holds one vector per addressable module", func() {
			So(catalog.Len(), ShouldEqual, address.ModuleCount)
			for _, id := range address.AllModuleIDs() {
				So(catalog.Get(id), ShouldNotBeNil)
			}
		})

		Convey("Then modules of one genre share the genre components", func() {
			a := vector.ModuleVector(address.Encode(address.GenreLoud, address.LayoutStandard))
			b := vector.ModuleVector(address.Encode(address.GenreLoud, address.LayoutBold))
			So(cmp.Diff(a, b), ShouldBeEmpty)
		})

		Convey("Then module vectors live in the preference space", func() {
			v := vector.ModuleVector(0)
			So(len(v), ShouldEqual, vector.Dimensions)
		})

		Convey("Then loud modules carry maximal loudness affinity", func() {
			v := vector.ModuleVector(address.Encode(address.GenreLoud, address.LayoutStandard))
			So(v[vector.DimLoudness], ShouldEqual, 1.0)
			So(v[vector.DimExploration], ShouldEqual, 1.0)
		})
	})
}

func TestGenreSpace(t *testing.T) {
	Convey("Given the genre visual-property space", t, func() {
		Convey("Then every genre vector has eleven dimensions", func() {
			for g := 0; g < address.GenreCount; g++ {
				So(len(vector.GenreVector(address.Genre(g))), ShouldEqual, vector.VisualDimensions)
			}
		})

		Convey("Then the genre-index dimension is normalized", func() {
			So(vector.GenreVector(address.GenreBase)[vector.VisGenreIndex], ShouldEqual, 0.0)
			So(vector.GenreVector(address.GenreCyber)[vector.VisGenreIndex], ShouldEqual, 1.0)
		})

		Convey("Then a genre's own vector is its best match", func() {
			for g := 0; g < address.GenreCount; g++ {
				genre := address.Genre(g)
				So(vector.MostSimilarGenre(vector.GenreVector(genre)), ShouldEqual, genre)
			}
		})

		Convey("Then an unusable query falls back to the base genre", func() {
			So(vector.MostSimilarGenre(nil), ShouldEqual, address.GenreBase)
			So(vector.MostSimilarGenre([]float64{1, 2}), ShouldEqual, address.GenreBase)
		})

		Convey("Then the two spaces do not mix", func() {
			_, err := vector.CosineSimilarity(
				vector.ModuleVector(0),
				vector.GenreVector(address.GenreBase),
			)
			So(err, ShouldWrap, vector.ErrDimensionMismatch)
		})
	})
}
