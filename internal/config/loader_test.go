package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopmorph/morph/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		unset := []string{
			"MORPH_CONFIG", "MORPH_ADDR", "MORPH_INGEST_URL",
			"MORPH_FLUSH_INTERVAL_MS", "MORPH_RAGE_THRESHOLD", "MORPH_LOG_LEVEL",
		}
		for _, key := range unset {
			So(os.Unsetenv(key), ShouldBeNil)
		}

		Convey("When nothing overrides the defaults", func() {
			cfg, err := config.Load()

			Convey("Then the defaults come through", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9080")
				So(cfg.FlushIntervalMS, ShouldEqual, 5000)
				So(cfg.MaxBatchEvents, ShouldEqual, 100)
				So(cfg.SampleMinIntervalMS, ShouldEqual, 16)
				So(cfg.MotorBufferCap, ShouldEqual, 60)
				So(cfg.HoverMinMS, ShouldEqual, 200)
				So(cfg.ScrollDebounceMS, ShouldEqual, 150)
				So(cfg.ScrollDwellMS, ShouldEqual, 500)
				So(cfg.ExcessiveScrollVelocity, ShouldEqual, 2500)
				So(cfg.RageWindowMS, ShouldEqual, 1000)
				So(cfg.RageThreshold, ShouldEqual, 3)
				So(cfg.ClickErrorWindowMS, ShouldEqual, 100)
				So(cfg.TabletMinWidth, ShouldEqual, 768)
			})
		})

		Convey("When environment variables override", func() {
			So(os.Setenv("MORPH_ADDR", ":7070"), ShouldBeNil)
			So(os.Setenv("MORPH_FLUSH_INTERVAL_MS", "2000"), ShouldBeNil)
			So(os.Setenv("MORPH_LOG_LEVEL", "debug"), ShouldBeNil)
			defer func() {
				_ = os.Unsetenv("MORPH_ADDR")
				_ = os.Unsetenv("MORPH_FLUSH_INTERVAL_MS")
				_ = os.Unsetenv("MORPH_LOG_LEVEL")
			}()

			cfg, err := config.Load()

			Convey("Then they win over the defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.FlushIntervalMS, ShouldEqual, 2000)
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.RageThreshold, ShouldEqual, 3)
			})
		})

		Convey("When a YAML file is layered under the env", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "morph.yaml")
			yaml := "addr: \":6060\"\nscroll_dwell_ms: 900\n"
			So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
			So(os.Setenv("MORPH_CONFIG", path), ShouldBeNil)
			So(os.Setenv("MORPH_ADDR", ":7070"), ShouldBeNil)
			defer func() {
				_ = os.Unsetenv("MORPH_CONFIG")
				_ = os.Unsetenv("MORPH_ADDR")
			}()

			cfg, err := config.Load()

			Convey("Then file values apply and env still wins", func() {
				So(err, ShouldBeNil)
				So(cfg.ScrollDwellMS, ShouldEqual, 900)
				So(cfg.Addr, ShouldEqual, ":7070")
			})
		})

		Convey("When the config file is missing", func() {
			So(os.Setenv("MORPH_CONFIG", "/does/not/exist.yaml"), ShouldBeNil)
			defer func() { _ = os.Unsetenv("MORPH_CONFIG") }()

			_, err := config.Load()

			Convey("Then loading fails with the load error kind", func() {
				So(err, ShouldWrap, config.ErrLoadConfig)
			})
		})

		Convey("When a value breaks an invariant", func() {
			So(os.Setenv("MORPH_RAGE_THRESHOLD", "0"), ShouldBeNil)
			defer func() { _ = os.Unsetenv("MORPH_RAGE_THRESHOLD") }()

			_, err := config.Load()

			Convey("Then loading fails with the invalid error kind", func() {
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})
}
