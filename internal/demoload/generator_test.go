package demoload

import (
	"testing"
	"time"

	"github.com/okian/attrition/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var genNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func TestGenerator(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		in, err := NewGenerator(42, genNow).Workforce(200)
		So(err, ShouldBeNil)

		Convey("Then every employee is unique and dated in the past", func() {
			So(len(in.Employees), ShouldEqual, 200)
			ids := make(map[string]bool)
			for _, e := range in.Employees {
				So(ids[e.ID], ShouldBeFalse)
				ids[e.ID] = true
				So(e.HireDate.IsZero(), ShouldBeFalse)
				So(e.HireDate.After(genNow), ShouldBeFalse)
				So(in.Departments, ShouldContainKey, e.Department)
			}

			Convey("And every record belongs to a generated employee and is in range", func() {
				for _, r := range in.Performance {
					So(ids[r.EmployeeID], ShouldBeTrue)
					So(r.Rating, ShouldBeBetweenOrEqual, 1, 5)
					So(r.ReviewDate.After(genNow), ShouldBeFalse)
				}
				for _, r := range in.Engagement {
					So(ids[r.EmployeeID], ShouldBeTrue)
					So(r.OverallScore, ShouldBeBetweenOrEqual, 0, 10)
				}
			})
		})

		Convey("Then the same seed reproduces the same workforce", func() {
			again, err := NewGenerator(42, genNow).Workforce(200)
			So(err, ShouldBeNil)
			So(again, ShouldResemble, in)
		})

		Convey("Then a different seed produces different employees", func() {
			other, err := NewGenerator(7, genNow).Workforce(200)
			So(err, ShouldBeNil)
			So(other.Employees[0].ID, ShouldNotEqual, in.Employees[0].ID)
		})
	})
}

func TestSplit(t *testing.T) {
	Convey("Given a generated workforce", t, func() {
		in, err := NewGenerator(1, genNow).Workforce(25)
		So(err, ShouldBeNil)

		Convey("When it is split into batches of ten", func() {
			parts := Split(in, 10)

			Convey("Then sizes are 10, 10 and 5", func() {
				So(len(parts), ShouldEqual, 3)
				So(len(parts[0].Employees), ShouldEqual, 10)
				So(len(parts[2].Employees), ShouldEqual, 5)
			})

			Convey("Then no record is lost or moved to another batch", func() {
				var perf, eng int
				for _, p := range parts {
					ids := make(map[string]bool)
					for _, e := range p.Employees {
						ids[e.ID] = true
					}
					for _, r := range p.Performance {
						So(ids[r.EmployeeID], ShouldBeTrue)
					}
					for _, r := range p.Engagement {
						So(ids[r.EmployeeID], ShouldBeTrue)
					}
					perf += len(p.Performance)
					eng += len(p.Engagement)
					So(p.Departments, ShouldResemble, in.Departments)
				}
				So(perf, ShouldEqual, len(in.Performance))
				So(eng, ShouldEqual, len(in.Engagement))
			})
		})

		Convey("When the size is not positive", func() {
			parts := Split(in, 0)
			So(len(parts), ShouldEqual, 1)
			So(len(parts[0].Employees), ShouldEqual, 25)
		})
	})
}

func TestVerification(t *testing.T) {
	Convey("Given scored predictions", t, func() {
		high := model.ChurnPrediction{EmployeeID: "a", RiskScore: 0.7, RiskLevel: model.RiskHigh, RiskFactors: []string{"x"}, Confidence: 0.8}
		low := model.ChurnPrediction{EmployeeID: "b", RiskScore: 0.2, RiskLevel: model.RiskLow, RiskFactors: []string{"y"}, Confidence: 0.8}

		Convey("Then descending order passes and ascending fails", func() {
			So(verifyOrdered([]model.ChurnPrediction{high, low}), ShouldBeNil)
			So(IsVerificationError(verifyOrdered([]model.ChurnPrediction{low, high})), ShouldBeTrue)
		})

		Convey("Then a level that does not match its score fails", func() {
			bad := high
			bad.RiskLevel = model.RiskCritical
			So(IsVerificationError(verifyPrediction(bad)), ShouldBeTrue)
		})

		Convey("Then interventions reject LOW predictions", func() {
			So(verifyInterventions([]model.ChurnPrediction{high}), ShouldBeNil)
			So(IsVerificationError(verifyInterventions([]model.ChurnPrediction{high, low})), ShouldBeTrue)
		})

		Convey("Then a batch missing an employee fails", func() {
			batch := model.BatchInput{Employees: []model.Employee{{ID: "a"}, {ID: "b"}}}
			res := model.BatchResult{Predictions: []model.ChurnPrediction{high}, AboveThreshold: []string{"a"}}
			So(IsVerificationError(verifyBatch(batch, res)), ShouldBeTrue)

			res.Predictions = append(res.Predictions, low)
			res.BelowThreshold = []string{"b"}
			So(verifyBatch(batch, res), ShouldBeNil)
		})
	})
}
