package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/attrition/internal/config"
	"github.com/okian/attrition/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestServerWiring(t *testing.T) {
	convey.Convey("Given the default configuration", t, func() {
		convey.So(logger.Init(), convey.ShouldBeNil)
		ctx := context.Background()
		cfg := config.New()

		svc, err := newService(cfg, logger.Get())
		convey.So(err, convey.ShouldBeNil)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()

		handler := newHandler(ctx, svc, cfg)

		convey.Convey("When the docs and API routes are requested", func() {
			for _, path := range []string{"/api-docs", "/openapi.yaml", "/model", "/threshold", "/stats", "/healthz"} {
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, http.NoBody))

				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("When the configured threshold is read back", func() {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/threshold", http.NoBody))

			convey.Convey("Then it matches the configuration", func() {
				convey.So(strings.TrimSpace(rec.Body.String()), convey.ShouldEqual, `{"risk_threshold":0.5}`)
			})
		})

		convey.Convey("When system metrics are refreshed", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})
	})
}
