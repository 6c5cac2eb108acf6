package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	worker "github.com/okian/attrition/internal/adapters/mq/worker"
	model "github.com/okian/attrition/internal/domain/model"
	logging "github.com/okian/attrition/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

type mockQueue struct {
	jobs     chan model.Job
	closeMu  sync.Mutex
	isClosed bool
}

func newMockQueue() *mockQueue {
	return &mockQueue{jobs: make(chan model.Job, 10)}
}

func (mq *mockQueue) Dequeue(context.Context) <-chan model.Job {
	return mq.jobs
}

func (mq *mockQueue) Close() error {
	mq.closeMu.Lock()
	defer mq.closeMu.Unlock()
	if !mq.isClosed {
		close(mq.jobs)
		mq.isClosed = true
	}
	return nil
}

func (mq *mockQueue) add(j model.Job) { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	mq.jobs <- j
}

// mockPredictor returns one prediction per employee with a fixed score.
type mockPredictor struct {
	err error
}

func (mp *mockPredictor) BatchPredict(_ context.Context, in model.BatchInput) ([]model.ChurnPrediction, error) {
	if mp.err != nil {
		return nil, mp.err
	}
	out := make([]model.ChurnPrediction, len(in.Employees))
	for i, e := range in.Employees {
		out[i] = model.ChurnPrediction{EmployeeID: e.ID, RiskScore: 0.5, RiskLevel: model.RiskMedium}
	}
	return out, nil
}

type mockSaver struct {
	mu    sync.Mutex
	saved map[string]model.ChurnPrediction
	err   error
}

func newMockSaver() *mockSaver {
	return &mockSaver{saved: make(map[string]model.ChurnPrediction)}
}

func (ms *mockSaver) Save(_ context.Context, p model.ChurnPrediction) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.err != nil {
		return ms.err
	}
	ms.saved[p.EmployeeID] = p
	return nil
}

func (ms *mockSaver) count() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.saved)
}

type finished struct {
	predictions int
	err         error
}

type mockReporter struct {
	mu       sync.Mutex
	started  map[string]bool
	finished map[string]finished
}

func newMockReporter() *mockReporter {
	return &mockReporter{started: map[string]bool{}, finished: map[string]finished{}}
}

func (mr *mockReporter) JobStarted(_ context.Context, id string) {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	mr.started[id] = true
}

func (mr *mockReporter) JobFinished(_ context.Context, id string, n int, err error) {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	mr.finished[id] = finished{predictions: n, err: err}
}

func (mr *mockReporter) result(id string) (finished, bool) {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	f, ok := mr.finished[id]
	return f, ok
}

func jobOf(id string, employees ...string) model.Job {
	in := model.BatchInput{}
	for _, e := range employees {
		in.Employees = append(in.Employees, model.Employee{ID: e})
	}
	return model.Job{ID: id, Input: in, SubmittedAt: time.Now()}
}

func waitFor(reporter *mockReporter, id string) (finished, bool) {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if f, ok := reporter.result(id); ok {
			return f, true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return finished{}, false
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a new InMemoryWorker", t, func() {
		convey.So(logging.Init(), convey.ShouldBeNil)

		q := newMockQueue()
		predictor := &mockPredictor{}
		saver := newMockSaver()
		reporter := newMockReporter()

		convey.Convey("When running a worker", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			w := worker.NewInMemoryWorker(q, predictor, saver,
				worker.WithName("w-test"),
				worker.WithReporter(reporter),
			)
			go w.Run(ctx)

			convey.Convey("And when processing a job", func() {
				q.add(jobOf("job-1", "e1", "e2", "e3"))
				f, ok := waitFor(reporter, "job-1")

				convey.Convey("Then every prediction is saved and reported", func() {
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(f.err, convey.ShouldBeNil)
					convey.So(f.predictions, convey.ShouldEqual, 3)
					convey.So(saver.count(), convey.ShouldEqual, 3)
				})
			})

			convey.Convey("And when scoring fails", func() {
				predictor.err = errors.New("bad input")
				q.add(jobOf("job-2", "e1"))
				f, ok := waitFor(reporter, "job-2")

				convey.Convey("Then nothing is saved and the failure is reported", func() {
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(f.err, convey.ShouldNotBeNil)
					convey.So(f.predictions, convey.ShouldEqual, 0)
					convey.So(saver.count(), convey.ShouldEqual, 0)
				})
			})

			convey.Convey("And when saving fails", func() {
				saver.err = errors.New("store down")
				q.add(jobOf("job-3", "e1", "e2"))
				f, ok := waitFor(reporter, "job-3")

				convey.Convey("Then the job is reported as failed", func() {
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(f.err, convey.ShouldNotBeNil)
				})
			})

			convey.Convey("And when shutting down", func() {
				sctx, scancel := context.WithTimeout(context.Background(), time.Second)
				defer scancel()

				convey.Convey("Then it should shutdown gracefully", func() {
					convey.So(w.Shutdown(sctx), convey.ShouldBeNil)
					convey.So(w.Shutdown(sctx), convey.ShouldBeNil)
				})
			})
		})

		convey.Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			w := worker.NewInMemoryWorker(q, predictor, saver)
			done := make(chan struct{})
			go func() {
				w.Run(ctx)
				close(done)
			}()
			cancel()

			convey.Convey("Then the worker stops", func() {
				select {
				case <-done:
				case <-time.After(time.Second):
					convey.So("worker did not stop", convey.ShouldBeEmpty)
				}
			})
		})
	})
}

func TestWorkerPool(t *testing.T) {
	convey.Convey("Given a worker pool", t, func() {
		convey.So(logging.Init(), convey.ShouldBeNil)

		q := newMockQueue()
		saver := newMockSaver()
		reporter := newMockReporter()

		convey.Convey("When created with a non-positive count", func() {
			pool := worker.NewPool(0, q, &mockPredictor{}, saver)

			convey.Convey("Then the default size is used", func() {
				convey.So(pool.Size(), convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When processing several jobs", func() {
			pool := worker.NewPool(3, q, &mockPredictor{}, saver, worker.WithReporter(reporter))
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			pool.Start(ctx)

			for i := 0; i < 5; i++ {
				q.add(jobOf(fmt.Sprintf("job-%d", i), fmt.Sprintf("emp-%d-a", i), fmt.Sprintf("emp-%d-b", i)))
			}

			convey.Convey("Then shutdown drains every queued job", func() {
				sctx, scancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer scancel()

				convey.So(pool.Shutdown(sctx), convey.ShouldBeNil)
				convey.So(saver.count(), convey.ShouldEqual, 10)
				for i := 0; i < 5; i++ {
					_, ok := reporter.result(fmt.Sprintf("job-%d", i))
					convey.So(ok, convey.ShouldBeTrue)
				}
			})
		})
	})
}
