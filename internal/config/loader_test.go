package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/attrition/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars(t)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars(t)
			t.Setenv("ATTRITION_ADDR", ":8080")
			t.Setenv("ATTRITION_RISK_THRESHOLD", "0.65")
			t.Setenv("ATTRITION_WORKER_COUNT", "16")
			t.Setenv("ATTRITION_LOG_FORMAT", "json")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.RiskThreshold, convey.ShouldEqual, 0.65)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 1024)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			clearConfigEnvVars(t)
			path := writeConfigFile(t, `
addr: ":9090"
queue_size: 64
max_top_limit: 25
replacement_cost_fraction: 0.75
`)
			t.Setenv("ATTRITION_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 64)
				convey.So(cfg.MaxTopLimit, convey.ShouldEqual, 25)
				convey.So(cfg.ReplacementCostFraction, convey.ShouldEqual, 0.75)
			})

			convey.Convey("And env vars take precedence over the file", func() {
				t.Setenv("ATTRITION_QUEUE_SIZE", "128")

				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.QueueSize, convey.ShouldEqual, 128)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			clearConfigEnvVars(t)
			t.Setenv("ATTRITION_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(ctx)

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the loaded values are invalid", func() {
			clearConfigEnvVars(t)
			t.Setenv("ATTRITION_RISK_THRESHOLD", "1.5")

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects them", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := config.Load(cancelled)

			convey.Convey("Then loading is refused", func() {
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
			})
		})
	})
}

var configEnvVars = []string{
	"ATTRITION_CONFIG",
	"ATTRITION_ADDR",
	"ATTRITION_LOG_LEVEL",
	"ATTRITION_LOG_FORMAT",
	"ATTRITION_RISK_THRESHOLD",
	"ATTRITION_WORKER_COUNT",
	"ATTRITION_QUEUE_SIZE",
	"ATTRITION_DEDUPE_SIZE",
	"ATTRITION_BATCH_CONCURRENCY",
	"ATTRITION_MAX_TOP_LIMIT",
	"ATTRITION_REPLACEMENT_COST_FRACTION",
}

func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	for _, name := range configEnvVars {
		t.Setenv(name, "")
		_ = os.Unsetenv(name)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
