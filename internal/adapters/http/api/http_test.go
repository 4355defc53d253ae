package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/shopmorph/morph/internal/domain/address"
	"github.com/shopmorph/morph/internal/domain/model"
	"github.com/shopmorph/morph/internal/domain/vector"
)

// stubDeps is a minimal Dependencies implementation for handler tests.
type stubDeps struct {
	module       address.Tag
	motor        model.MotorState
	applied      []int
	recommendErr error
	results      []vector.SearchResult
}

func (d *stubDeps) MotorState() model.MotorState { return d.motor }
func (d *stubDeps) CurrentModule() address.Tag   { return d.module }
func (d *stubDeps) CurrentModuleID() int {
	return address.Encode(d.module.Genre, d.module.Layout)
}

func (d *stubDeps) ApplySuggestion(templateID int) address.TemplateTag {
	d.applied = append(d.applied, templateID)
	tag := address.DecodeTemplate(templateID)
	d.module = address.Decode(address.Encode(tag.Genre, d.module.Layout))
	return tag
}

func (d *stubDeps) RecommendModules(_ model.UserProfile, k int) ([]vector.SearchResult, error) {
	if d.recommendErr != nil {
		return nil, d.recommendErr
	}
	if k < len(d.results) {
		return d.results[:k], nil
	}
	return d.results, nil
}

func (d *stubDeps) Stats() map[string]any {
	return map[string]any{"started": true, "module_id": d.CurrentModuleID()}
}

func newTestServer(deps Dependencies) *httptest.Server {
	mux := http.NewServeMux()
	NewServer(deps).Register(mux)
	return httptest.NewServer(mux)
}

func decodeBody(resp *http.Response, v any) error {
	return json.NewDecoder(resp.Body).Decode(v)
}

func itoa(n int) string { return strconv.Itoa(n) }

func TestHealthEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		srv := newTestServer(&stubDeps{})
		defer srv.Close()

		Convey("When GET /healthz is requested", func() {
			resp, err := http.Get(srv.URL + "/healthz")

			Convey("Then it reports ok", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("Content-Type"), ShouldStartWith, "application/json")
			})
		})

		Convey("When POST /healthz is requested", func() {
			resp, err := http.Post(srv.URL+"/healthz", "application/json", nil)

			Convey("Then the method is rejected", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestStateEndpoint(t *testing.T) {
	Convey("Given a session rendering the cyber/bold module", t, func() {
		deps := &stubDeps{
			module: address.Tag{Genre: address.GenreCyber, Layout: address.LayoutBold},
			motor:  model.MotorState{Velocity: model.Vec2{X: 120}},
		}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When GET /state is requested", func() {
			resp, err := http.Get(srv.URL + "/state")

			Convey("Then the module id and motor state come back", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var body struct {
					ModuleID int `json:"module_id"`
					Motor    struct {
						Velocity struct {
							X float64 `json:"x"`
						} `json:"velocity"`
					} `json:"motor"`
				}
				So(decodeBody(resp, &body), ShouldBeNil)
				So(body.ModuleID, ShouldEqual, address.Encode(address.GenreCyber, address.LayoutBold))
				So(body.Motor.Velocity.X, ShouldEqual, 120)
			})
		})
	})
}

func TestSuggestEndpoint(t *testing.T) {
	Convey("Given a session rendering the base/featured module", t, func() {
		deps := &stubDeps{
			module: address.Tag{Genre: address.GenreBase, Layout: address.LayoutFeatured},
		}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When a cyber template suggestion is posted", func() {
			templateID := address.EncodeTemplate(address.GenreCyber, address.TypeHero, 0)
			body := strings.NewReader(`{"template_id": ` + itoa(templateID) + `}`)
			resp, err := http.Post(srv.URL+"/suggest", "application/json", body)

			Convey("Then the suggestion is applied and the layout survives", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(deps.applied, ShouldResemble, []int{templateID})

				var out suggestResponse
				So(decodeBody(resp, &out), ShouldBeNil)
				So(out.Template.Genre, ShouldEqual, address.GenreCyber)
				So(out.ModuleID, ShouldEqual, address.Encode(address.GenreCyber, address.LayoutFeatured))
			})
		})

		Convey("When the body has no template_id", func() {
			resp, err := http.Post(srv.URL+"/suggest", "application/json", strings.NewReader(`{}`))

			Convey("Then the request is rejected", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				So(deps.applied, ShouldBeEmpty)
			})
		})

		Convey("When the body is not JSON", func() {
			resp, err := http.Post(srv.URL+"/suggest", "application/json", strings.NewReader("not json"))

			Convey("Then the request is rejected", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestRecommendEndpoint(t *testing.T) {
	Convey("Given a catalog with ranked matches", t, func() {
		deps := &stubDeps{
			results: []vector.SearchResult{
				{ID: address.Encode(address.GenreMinimalist, address.LayoutStandard), Score: 0.94},
				{ID: address.Encode(address.GenreMinimalist, address.LayoutBold), Score: 0.91},
				{ID: address.Encode(address.GenreBase, address.LayoutStandard), Score: 0.72},
			},
		}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When a profile is posted", func() {
			body := strings.NewReader(`{"profile": {"visual": {"color_scheme": "dark"}}, "limit": 2}`)
			resp, err := http.Post(srv.URL+"/recommend", "application/json", body)

			Convey("Then the top matches come back with decoded modules", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var out []recommendation
				So(decodeBody(resp, &out), ShouldBeNil)
				So(out, ShouldHaveLength, 2)
				So(out[0].Module.Genre, ShouldEqual, address.GenreMinimalist)
				So(out[0].Score, ShouldEqual, 0.94)
			})
		})

		Convey("When the limit is omitted", func() {
			resp, err := http.Post(srv.URL+"/recommend", "application/json", strings.NewReader(`{}`))

			Convey("Then the default limit applies", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var out []recommendation
				So(decodeBody(resp, &out), ShouldBeNil)
				So(out, ShouldHaveLength, 3)
			})
		})

		Convey("When GET is used", func() {
			resp, err := http.Get(srv.URL + "/recommend")

			Convey("Then the method is rejected", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := &stubDeps{module: address.Tag{Genre: address.GenreGlassmorphism, Layout: address.LayoutStandard}}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When GET /stats is requested", func() {
			resp, err := http.Get(srv.URL + "/stats")

			Convey("Then the stats map comes back", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var out map[string]any
				So(decodeBody(resp, &out), ShouldBeNil)
				So(out["started"], ShouldEqual, true)
			})
		})
	})
}
