package churn_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/attrition/internal/domain/churn"
	"github.com/okian/attrition/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScorer_BatchPredict(t *testing.T) {
	Convey("Given a scorer and a shared workforce dataset", t, func() {
		scorer := churn.New(churn.WithClock(clock), churn.WithIDGenerator(sequentialIDs()), churn.WithConcurrency(4))
		ctx := context.Background()

		in := model.BatchInput{
			Employees: []model.Employee{
				{ID: "steady", HireDate: hiredMonthsAgo(40), Salary: model.Float64(150_000), Department: "Ops"},
				{ID: "struggling", HireDate: hiredMonthsAgo(3), Salary: model.Float64(20_000), Department: "Sales"},
				{ID: "veteran", HireDate: hiredMonthsAgo(72), Salary: model.Float64(60_000), Department: "Eng"},
			},
			Departments: map[string]model.DepartmentContext{
				"Ops":   {TurnoverRate: 0},
				"Sales": {TurnoverRate: 0.5},
				"Eng":   {TurnoverRate: 0.10},
			},
		}
		in.Performance = append(in.Performance, ratings("veteran", 4.5, 4.0, 3.5)...)
		in.Performance = append(in.Performance, ratings("steady", 5, 5, 5, 5)...)
		in.Performance = append(in.Performance, ratings("struggling", 3, 2, 1)...)
		in.Engagement = append(in.Engagement, surveys("struggling", model.Float64(0), 3, 1.5, 0)...)
		in.Engagement = append(in.Engagement, surveys("veteran", nil, 8, 7, 6)...)
		in.Engagement = append(in.Engagement, surveys("steady", model.Float64(10), 10, 10, 10)...)

		Convey("When predicting the batch", func() {
			preds, err := scorer.BatchPredict(ctx, in)

			Convey("Then each employee should be scored from its own records, highest risk first", func() {
				So(err, ShouldBeNil)
				So(len(preds), ShouldEqual, 3)
				So(preds[0].EmployeeID, ShouldEqual, "struggling")
				So(preds[0].RiskScore, ShouldEqual, 0.818)
				So(preds[1].EmployeeID, ShouldEqual, "veteran")
				So(preds[1].RiskScore, ShouldEqual, 0.614)
				So(preds[2].EmployeeID, ShouldEqual, "steady")
				So(preds[2].RiskScore, ShouldEqual, 0.394)
			})

			Convey("And every prediction id should be unique", func() {
				seen := map[string]bool{}
				for _, p := range preds {
					So(seen[p.ID], ShouldBeFalse)
					seen[p.ID] = true
				}
			})
		})

		Convey("When several employees tie on score", func() {
			tied := model.BatchInput{Employees: []model.Employee{
				{ID: "a", HireDate: hiredMonthsAgo(12)},
				{ID: "high", HireDate: hiredMonthsAgo(3), Salary: model.Float64(10_000)},
				{ID: "b", HireDate: hiredMonthsAgo(12)},
				{ID: "c", HireDate: hiredMonthsAgo(12)},
			}}
			preds, err := scorer.BatchPredict(ctx, tied)

			Convey("Then ties should keep input order", func() {
				So(err, ShouldBeNil)
				ids := []string{preds[0].EmployeeID, preds[1].EmployeeID, preds[2].EmployeeID, preds[3].EmployeeID}
				So(ids, ShouldResemble, []string{"high", "a", "b", "c"})
			})
		})

		Convey("When one employee cannot be scored", func() {
			in.Employees = append(in.Employees, model.Employee{ID: "broken"})
			preds, err := scorer.BatchPredict(ctx, in)

			Convey("Then the whole batch should fail", func() {
				So(preds, ShouldBeNil)
				So(errors.Is(err, churn.ErrPrediction), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "broken")
			})
		})

		Convey("When the batch is empty", func() {
			preds, err := scorer.BatchPredict(ctx, model.BatchInput{})

			Convey("Then it should return an empty result", func() {
				So(err, ShouldBeNil)
				So(len(preds), ShouldEqual, 0)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := scorer.BatchPredict(cctx, in)

			Convey("Then it should report the cancellation", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}
