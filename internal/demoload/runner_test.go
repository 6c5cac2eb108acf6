package demoload_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/attrition/internal/adapters/http/api"
	service "github.com/okian/attrition/internal/app"
	"github.com/okian/attrition/internal/demoload"
	"github.com/okian/attrition/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRun(t *testing.T) {
	Convey("Given a running attrition service", t, func() {
		So(logger.Init(), ShouldBeNil)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		svc, err := service.New(service.WithWorkerCount(2))
		So(err, ShouldBeNil)
		So(svc.Start(ctx), ShouldBeNil)
		defer func() { _ = svc.Stop(context.Background()) }()

		mux := http.NewServeMux()
		api.NewServer(svc, 100).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("When the demo runs against it", func() {
			out := filepath.Join(t.TempDir(), "workforce.json")
			stats, err := demoload.Run(ctx, demoload.Config{
				BaseURL:      srv.URL,
				Employees:    35,
				BatchSize:    10,
				TopN:         20,
				Workers:      2,
				Timeout:      5 * time.Second,
				PollInterval: 10 * time.Millisecond,
				Seed:         99,
				OutputFile:   out,
			})

			Convey("Then every check passes and all jobs finish", func() {
				So(err, ShouldBeNil)
				So(stats.EmployeesGenerated, ShouldEqual, 35)
				So(stats.BatchScored, ShouldEqual, 10)
				So(stats.JobsSubmitted, ShouldEqual, 3)
				So(stats.JobsAccepted, ShouldEqual, 3)
				So(stats.JobsDuplicate, ShouldEqual, 1)
				So(stats.JobsDone, ShouldEqual, 3)
				So(stats.JobsFailed, ShouldEqual, 0)
				So(stats.TopEntries, ShouldEqual, 20)
				_, statErr := os.Stat(out)
				So(statErr, ShouldBeNil)
			})

			Convey("Then the service stored every employee", func() {
				So(svc.GetStats()["storedPredictions"], ShouldEqual, 35)
			})
		})

		Convey("When the service is unreachable", func() {
			_, err := demoload.Run(ctx, demoload.Config{BaseURL: "http://127.0.0.1:1", Employees: 5, Timeout: time.Second})

			Convey("Then the health check fails", func() {
				So(err, ShouldWrap, demoload.ErrUnhealthy)
			})
		})
	})
}
