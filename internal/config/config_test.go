package config_test

import (
	"errors"
	"math"
	"runtime"
	"testing"

	"github.com/okian/attrition/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.RiskThreshold, convey.ShouldEqual, 0.5)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			convey.So(cfg.QueueSize, convey.ShouldEqual, 1024)
			convey.So(cfg.BatchConcurrency, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.MaxTopLimit, convey.ShouldEqual, 100)
			convey.So(cfg.ReplacementCostFraction, convey.ShouldEqual, 0.5)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one bad field each", t, func() {
		cases := map[string]func(*config.Config){
			"empty addr":         func(c *config.Config) { c.Addr = "" },
			"threshold above 1":  func(c *config.Config) { c.RiskThreshold = 1.2 },
			"negative threshold": func(c *config.Config) { c.RiskThreshold = -0.1 },
			"NaN threshold":      func(c *config.Config) { c.RiskThreshold = math.NaN() },
			"zero workers":       func(c *config.Config) { c.WorkerCount = 0 },
			"zero queue":         func(c *config.Config) { c.QueueSize = 0 },
			"zero dedupe":        func(c *config.Config) { c.DedupeSize = 0 },
			"zero concurrency":   func(c *config.Config) { c.BatchConcurrency = 0 },
			"zero top limit":     func(c *config.Config) { c.MaxTopLimit = 0 },
			"negative fraction":  func(c *config.Config) { c.ReplacementCostFraction = -1 },
		}

		for name, mutate := range cases {
			convey.Convey("When "+name, func() {
				cfg := config.New()
				mutate(cfg)

				convey.Convey("Then validation fails with ErrInvalidConfig", func() {
					err := cfg.Validate()
					convey.So(err, convey.ShouldNotBeNil)
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}

		convey.Convey("When the threshold sits on a boundary", func() {
			cfg := config.New()
			cfg.RiskThreshold = 1

			convey.Convey("Then it is accepted", func() {
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})
	})
}
