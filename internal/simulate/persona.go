package simulate

import (
	"math/rand"
	"time"

	"github.com/shopmorph/morph/internal/telemetry/dom"
)

// Trace geometry constants.
const (
	docHeight      = 4200.0
	viewportWidth  = 1280.0
	viewportHeight = 800.0
	moveStepMS     = 16
	settleDelay    = 2 * time.Second
)

// page is the synthetic storefront document a persona interacts with.
type page struct {
	hero    *dom.FakeElement
	gallery *dom.FakeElement
	cta     *dom.FakeElement
	buy     *dom.FakeElement
	banner  *dom.FakeElement
}

// newPage builds the fixed element tree every session runs against.
func newPage() *page {
	hero := &dom.FakeElement{
		TrackAttr: "module-hero",
		TagName:   "section",
		Rect:      dom.Rect{Top: 0, Left: 0, Width: viewportWidth, Height: 600},
	}
	gallery := &dom.FakeElement{
		TrackAttr: "module-gallery",
		TagName:   "section",
		Rect:      dom.Rect{Top: 1400, Left: 0, Width: viewportWidth, Height: 900},
	}
	cta := &dom.FakeElement{
		TrackAttr: "module-cta",
		TagName:   "section",
		Rect:      dom.Rect{Top: 3400, Left: 0, Width: viewportWidth, Height: 400},
	}
	return &page{
		hero:    hero,
		gallery: gallery,
		cta:     cta,
		buy: &dom.FakeElement{
			IDAttr:      "buy-now",
			TagName:     "button",
			TextContent: "Buy now",
			Cursor:      "pointer",
			Rect:        dom.Rect{Top: 3500, Left: 500, Width: 200, Height: 48},
			ParentEl:    cta,
		},
		banner: &dom.FakeElement{
			IDAttr:      "promo-banner",
			TagName:     "div",
			TextContent: "Free shipping",
			Rect:        dom.Rect{Top: 620, Left: 0, Width: viewportWidth, Height: 80},
			ParentEl:    hero,
		},
	}
}

// trace drives one session's fake host. All emitted timestamps come from
// the session clock, which only moves through the scheduler so pending
// debounce and flush timers fire in order.
type trace struct {
	source *dom.FakeSource
	clock  *dom.FakeClock
	sched  *dom.FakeScheduler
	rng    *rand.Rand
	page   *page

	scrollTop float64
}

func (t *trace) now() int64 { return dom.NowMillis(t.clock) }

func (t *trace) advance(d time.Duration) { t.sched.Advance(d) }

// moveTo emits a straight pointer path from the current position in
// fixed-interval steps with a little positional jitter.
func (t *trace) moveTo(fromX, fromY, toX, toY float64, steps int) {
	for i := 1; i <= steps; i++ {
		t.advance(moveStepMS * time.Millisecond)
		frac := float64(i) / float64(steps)
		t.source.EmitPointerMove(dom.PointerEvent{
			X:  fromX + (toX-fromX)*frac + t.rng.Float64()*2,
			Y:  fromY + (toY-fromY)*frac + t.rng.Float64()*2,
			TS: t.now(),
		})
	}
}

func (t *trace) enter(x, y float64) {
	t.source.EmitPointerEnter(dom.PointerEvent{X: x, Y: y, TS: t.now()})
}

func (t *trace) click(el dom.Element, x, y float64) {
	t.source.EmitClick(dom.TargetEvent{Target: el, X: x, Y: y, TS: t.now()})
}

func (t *trace) hover(el dom.Element, x, y float64, dwell time.Duration) {
	t.source.EmitPointerOver(dom.TargetEvent{Target: el, X: x, Y: y, TS: t.now()})
	t.advance(dwell)
	t.source.EmitPointerOut(dom.TargetEvent{Target: el, X: x, Y: y, TS: t.now()})
}

func (t *trace) scrollTo(top float64) {
	t.scrollTop = top
	t.source.EmitScroll(dom.ScrollEvent{
		Top:            top,
		DocHeight:      docHeight,
		ViewportHeight: viewportHeight,
		ViewportWidth:  viewportWidth,
		TS:             t.now(),
	})
}

// settle lets pending debounce, dwell and flush timers fire.
func (t *trace) settle() { t.advance(settleDelay) }

// script returns the trace function for a persona. Mixed rotates by
// session index.
func script(p Persona, index int) func(*trace) {
	switch p {
	case PersonaRage:
		return rageScript
	case PersonaScan:
		return scanScript
	case PersonaMixed:
		scripts := []func(*trace){browseScript, rageScript, scanScript}
		return scripts[index%len(scripts)]
	default:
		return browseScript
	}
}

// browseScript is a calm shopper: wander, hover the gallery, scroll with
// pauses, buy.
func browseScript(t *trace) {
	t.enter(40, 30)
	t.moveTo(40, 30, 640, 300, 24)
	t.hover(t.page.hero, 640, 300, 400*time.Millisecond)

	// Scroll down to the gallery in easy steps, pausing long enough for
	// dwell detection between bursts.
	for _, top := range []float64{300, 700, 1200, 1500} {
		t.advance(time.Duration(80+t.rng.Intn(60)) * time.Millisecond)
		t.scrollTo(top)
	}
	t.settle()

	t.moveTo(640, 300, 500, 450, 18)
	t.hover(t.page.gallery, 500, 450, 600*time.Millisecond)

	for _, top := range []float64{2100, 2800, 3400} {
		t.advance(time.Duration(90+t.rng.Intn(80)) * time.Millisecond)
		t.scrollTo(top)
	}
	t.settle()

	t.moveTo(500, 450, 600, 520, 12)
	t.click(t.page.buy, 600, 520)
	t.settle()
}

// rageScript hammers a non-interactive banner, then hits an error right
// after a click.
func rageScript(t *trace) {
	t.enter(200, 200)
	t.moveTo(200, 200, 640, 660, 10)

	// Dead clicks first, then a burst fast enough for rage detection.
	t.click(t.page.banner, 640, 660)
	t.advance(400 * time.Millisecond)
	for i := 0; i < 4; i++ {
		t.click(t.page.banner, 640+float64(i), 660)
		t.advance(120 * time.Millisecond)
	}

	// A click that blows up in the handler.
	t.click(t.page.buy, 600, 3520-t.scrollTop)
	t.advance(30 * time.Millisecond)
	t.source.EmitError(dom.ErrorEvent{Message: "TypeError: cart is undefined", TS: t.now()})
	t.settle()
}

// scanScript flings through the page at excessive velocity with abrupt
// direction changes.
func scanScript(t *trace) {
	t.enter(640, 100)
	t.moveTo(640, 100, 200, 700, 6)

	for _, top := range []float64{900, 2100, 3300, 2400, 3800} {
		t.advance(time.Duration(60+t.rng.Intn(40)) * time.Millisecond)
		t.scrollTo(top)
	}
	t.settle()

	t.source.EmitVisibility(false)
	t.advance(300 * time.Millisecond)
	t.source.EmitVisibility(true)
	t.settle()
}
