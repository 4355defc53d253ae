package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	service "github.com/shopmorph/morph/internal/app"
	"github.com/shopmorph/morph/internal/config"
	"github.com/shopmorph/morph/internal/domain/address"
	"github.com/shopmorph/morph/internal/domain/model"
	"github.com/shopmorph/morph/internal/telemetry/dom"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSender struct {
	mu      sync.Mutex
	batches []model.TelemetryBatch
}

func (f *fakeSender) Send(_ context.Context, batch model.TelemetryBatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, batch)
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

func newService() (*service.Service, *dom.FakeSource, *fakeSender) {
	clock := dom.NewFakeClock(time.Unix(1_700_000_000, 0))
	source := dom.NewFakeSource()
	sender := &fakeSender{}
	env := dom.FakeEnvironment{UA: "Mozilla/5.0 (X11; Linux x86_64)", Width: 1920}
	svc := service.New(source, dom.NewFakeWatcher(), clock, dom.NewFakeScheduler(clock), env,
		service.WithConfig(config.New()),
		service.WithSender(sender),
	)
	return svc, source, sender
}

func TestService(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc, source, sender := newService()
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("Then it renders the base module until told otherwise", func() {
			So(svc.CurrentModule().Genre, ShouldEqual, address.GenreBase)
			So(svc.CurrentModule().Layout, ShouldEqual, address.LayoutStandard)
			So(svc.CurrentModuleID(), ShouldEqual, 0)
		})

		Convey("Then a second start is a no-op", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
		})

		Convey("When a template suggestion is applied", func() {
			id := address.EncodeTemplate(address.GenreLoud, address.TypeHero, 0)
			tag := svc.ApplySuggestion(id)

			Convey("Then the genre updates and the layout survives", func() {
				So(tag.Genre, ShouldEqual, address.GenreLoud)
				So(tag.IsLoud, ShouldBeTrue)
				current := svc.CurrentModule()
				So(current.Genre, ShouldEqual, address.GenreLoud)
				So(current.Layout, ShouldEqual, address.LayoutStandard)
				So(current.IsLoud, ShouldBeTrue)
				So(svc.CurrentTemplate(), ShouldResemble, tag)
			})

			Convey("And a later module override keeps working", func() {
				svc.SetModule(address.Encode(address.GenreMinimalist, address.LayoutFeatured))
				id := address.EncodeTemplate(address.GenreCyber, address.TypeBanner, 2)
				svc.ApplySuggestion(id)

				current := svc.CurrentModule()
				So(current.Genre, ShouldEqual, address.GenreCyber)
				So(current.Layout, ShouldEqual, address.LayoutFeatured)
			})
		})

		Convey("When an out-of-range suggestion arrives", func() {
			tag := svc.ApplySuggestion(-1)

			Convey("Then it aliases into the template space instead of failing", func() {
				So(tag.Genre, ShouldEqual, address.GenreCyber)
				So(svc.CurrentModule().Genre, ShouldEqual, address.GenreCyber)
			})
		})

		Convey("When a sparse, light profile asks for recommendations", func() {
			p := model.DefaultProfile()
			p.Visual.Density = "low"
			p.Visual.TypographyWeight = "light"
			p.Visual.CornerRadius = "sharp"

			results, err := svc.RecommendModules(p, 5)
			So(err, ShouldBeNil)

			Convey("Then the top modules are minimalist", func() {
				So(results, ShouldHaveLength, 5)
				So(address.Decode(results[0].ID).Genre, ShouldEqual, address.GenreMinimalist)

				genre, err := svc.RecommendGenre(p, 5)
				So(err, ShouldBeNil)
				So(genre, ShouldEqual, address.GenreMinimalist)
			})
		})

		Convey("When the pointer moves", func() {
			source.EmitPointerMove(dom.PointerEvent{X: 0, Y: 0, TS: 1000})
			source.EmitPointerMove(dom.PointerEvent{X: 20, Y: 0, TS: 1100})

			Convey("Then the live motor state is readable through the service", func() {
				So(svc.MotorState().Velocity.X, ShouldAlmostEqual, 200.0, 1e-6)
			})

			Convey("And stopping delivers the final batch", func() {
				svc.Stop()
				So(sender.count(), ShouldEqual, 1)
				So(source.ListenerCount(), ShouldEqual, 0)
			})
		})

		Convey("Then stats expose identity and rendering state", func() {
			stats := svc.Stats()
			So(stats["started"], ShouldBeTrue)
			So(stats["catalog_size"], ShouldEqual, address.ModuleCount)
			So(stats["session_id"], ShouldNotBeEmpty)
			So(stats["device_type"], ShouldEqual, "desktop")
			So(stats["genre"], ShouldEqual, "base")
		})

		Convey("When the service restarts", func() {
			before := svc.Stats()["session_id"]
			So(svc.Restart(context.Background()), ShouldBeNil)

			Convey("Then a fresh session id is minted", func() {
				So(svc.Stats()["session_id"], ShouldNotEqual, before)
			})

			Convey("Then the old session left no listeners behind", func() {
				stats := svc.Stats()
				So(stats["started"], ShouldBeTrue)
				So(source.ListenerCount(), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When the service stops", func() {
			svc.Stop()

			Convey("Then stopping again is a no-op", func() {
				So(svc.Stop, ShouldNotPanic)
			})

			Convey("Then all listeners are gone", func() {
				So(source.ListenerCount(), ShouldEqual, 0)
			})
		})
	})
}
