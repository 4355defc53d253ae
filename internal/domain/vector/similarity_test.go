package vector_test

import (
	"math"
	"testing"

	"github.com/shopmorph/morph/internal/domain/vector"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCosineSimilarity(t *testing.T) {
	Convey("Given the cosine similarity primitive", t, func() {
		Convey("Then any non-zero vector is identical to itself", func() {
			for _, v := range [][]float64{
				{1, 0, 0},
				{0.2, 0.5, 0.9, 0.1},
				{3, 4},
			} {
				score, err := vector.CosineSimilarity(v, v)
				So(err, ShouldBeNil)
				So(score, ShouldAlmostEqual, 1.0, 1e-9)
			}
		})

		Convey("Then orthogonal vectors score zero", func() {
			score, err := vector.CosineSimilarity([]float64{1, 0}, []float64{0, 1})
			So(err, ShouldBeNil)
			So(score, ShouldAlmostEqual, 0.0, 1e-9)
		})

		Convey("Then opposite vectors score negative one", func() {
			score, err := vector.CosineSimilarity([]float64{1, 2}, []float64{-1, -2})
			So(err, ShouldBeNil)
			So(score, ShouldAlmostEqual, -1.0, 1e-9)
		})

		Convey("Then unequal lengths fail fast", func() {
			_, err := vector.CosineSimilarity([]float64{1, 2, 3}, []float64{1, 2})
			So(err, ShouldNotBeNil)
			So(err, ShouldWrap, vector.ErrDimensionMismatch)
		})

		Convey("Then a zero-magnitude operand scores zero without error", func() {
			score, err := vector.CosineSimilarity([]float64{0, 0}, []float64{1, 1})
			So(err, ShouldBeNil)
			So(score, ShouldEqual, 0)
		})
	})
}

func TestEuclideanDistance(t *testing.T) {
	Convey("Given the distance primitive", t, func() {
		Convey("Then it matches the 3-4-5 triangle", func() {
			d, err := vector.EuclideanDistance([]float64{0, 0}, []float64{3, 4})
			So(err, ShouldBeNil)
			So(d, ShouldAlmostEqual, 5.0, 1e-9)
		})

		Convey("Then unequal lengths fail fast", func() {
			_, err := vector.EuclideanDistance([]float64{1}, []float64{1, 2})
			So(err, ShouldWrap, vector.ErrDimensionMismatch)
		})
	})
}

func TestFindSimilar(t *testing.T) {
	Convey("Given a set of candidates", t, func() {
		query := []float64{1, 0, 0}
		candidates := [][]float64{
			{0, 1, 0},       // orthogonal
			{1, 0.1, 0},     // close
			{1, 0, 0},       // exact
			{0.5, 0.5, 0.5}, // diagonal
		}

		Convey("When searching for the top 2", func() {
			results, err := vector.FindSimilar(query, candidates, 2)
			So(err, ShouldBeNil)

			Convey("Then results are sorted descending and capped at k", func() {
				So(len(results), ShouldEqual, 2)
				So(results[0].Index, ShouldEqual, 2)
				So(results[1].Index, ShouldEqual, 1)
				So(results[0].Score, ShouldBeGreaterThanOrEqualTo, results[1].Score)
			})
		})

		Convey("When candidates tie, original order is preserved", func() {
			tied := [][]float64{
				{0, 2, 0},
				{2, 0, 0},
				{1, 0, 0},
			}
			results, err := vector.FindSimilar(query, tied, 3)
			So(err, ShouldBeNil)
			// Indices 1 and 2 both normalize to the query direction and tie
			// at 1.0; insertion order decides.
			So(results[0].Index, ShouldEqual, 1)
			So(results[1].Index, ShouldEqual, 2)
			So(results[2].Index, ShouldEqual, 0)
		})

		Convey("When k exceeds the candidate count, everything is returned", func() {
			results, err := vector.FindSimilar(query, candidates, 10)
			So(err, ShouldBeNil)
			So(len(results), ShouldEqual, len(candidates))
		})

		Convey("When a candidate has the wrong shape, the search fails", func() {
			_, err := vector.FindSimilar(query, [][]float64{{1, 2}}, 1)
			So(err, ShouldWrap, vector.ErrDimensionMismatch)
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given the normalizer", t, func() {
		Convey("Then output has unit length for non-zero input", func() {
			v := vector.Normalize([]float64{3, 4})
			So(math.Hypot(v[0], v[1]), ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("Then a zero vector passes through unchanged", func() {
			v := vector.Normalize([]float64{0, 0, 0})
			So(v, ShouldResemble, []float64{0, 0, 0})
		})

		Convey("Then the input slice is not mutated", func() {
			in := []float64{3, 4}
			_ = vector.Normalize(in)
			So(in, ShouldResemble, []float64{3, 4})
		})
	})
}
