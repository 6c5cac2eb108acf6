package model_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	model "github.com/okian/attrition/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestDate(t *testing.T) {
	convey.Convey("Given a calendar date", t, func() {
		d := model.NewDate(2024, time.March, 5)

		convey.Convey("When marshalling to JSON", func() {
			b, err := json.Marshal(d)

			convey.Convey("Then it should use the YYYY-MM-DD layout", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(b), convey.ShouldEqual, `"2024-03-05"`)
			})
		})

		convey.Convey("When the date is zero", func() {
			b, err := json.Marshal(model.Date{})

			convey.Convey("Then it should encode as null", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(b), convey.ShouldEqual, "null")
			})
		})
	})

	convey.Convey("Given JSON date inputs", t, func() {
		convey.Convey("When decoding an RFC3339 timestamp", func() {
			var d model.Date
			err := json.Unmarshal([]byte(`"2023-11-02T18:30:00Z"`), &d)

			convey.Convey("Then it should truncate to the calendar date", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(d.String(), convey.ShouldEqual, "2023-11-02")
				convey.So(d.Hour(), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When decoding a malformed date", func() {
			var d model.Date
			err := json.Unmarshal([]byte(`"02/11/2023"`), &d)

			convey.Convey("Then it should report an invalid date", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, model.ErrInvalidDate), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When decoding a non-string value", func() {
			var d model.Date
			err := json.Unmarshal([]byte(`20231102`), &d)

			convey.Convey("Then it should report an invalid date", func() {
				convey.So(errors.Is(err, model.ErrInvalidDate), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When decoding an employee with optional salary omitted", func() {
			var e model.Employee
			err := json.Unmarshal([]byte(`{"id":"e1","hire_date":"2020-01-15","department":"Sales"}`), &e)

			convey.Convey("Then salary should stay nil", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(e.Salary, convey.ShouldBeNil)
				convey.So(e.HireDate.Equal(model.NewDate(2020, time.January, 15).Time), convey.ShouldBeTrue)
			})
		})
	})
}

func TestRiskLevelOrdinal(t *testing.T) {
	convey.Convey("Given the risk tiers", t, func() {
		convey.Convey("Then ordinals should increase with severity", func() {
			convey.So(model.RiskLow.Ordinal(), convey.ShouldBeLessThan, model.RiskMedium.Ordinal())
			convey.So(model.RiskMedium.Ordinal(), convey.ShouldBeLessThan, model.RiskHigh.Ordinal())
			convey.So(model.RiskHigh.Ordinal(), convey.ShouldBeLessThan, model.RiskCritical.Ordinal())
			convey.So(model.RiskLevel("UNKNOWN").Ordinal(), convey.ShouldEqual, -1)
		})
	})
}

func TestChurnPredictionClone(t *testing.T) {
	convey.Convey("Given a prediction with risk factors", t, func() {
		p := model.ChurnPrediction{ID: "p1", RiskFactors: []string{"a", "b"}}

		convey.Convey("When cloning and mutating the clone", func() {
			c := p.Clone()
			c.RiskFactors[0] = "changed"

			convey.Convey("Then the original should be untouched", func() {
				convey.So(p.RiskFactors[0], convey.ShouldEqual, "a")
				convey.So(c.ID, convey.ShouldEqual, "p1")
			})
		})
	})
}

func TestFeatureVectorValues(t *testing.T) {
	convey.Convey("Given a feature vector", t, func() {
		fv := model.FeatureVector{TenureMonths: 1, WorkLifeBalanceScore: 10}

		convey.Convey("Then values should follow the canonical name order", func() {
			v := fv.Values()
			convey.So(len(v), convey.ShouldEqual, len(model.FeatureNames))
			convey.So(v[0], convey.ShouldEqual, 1)
			convey.So(v[9], convey.ShouldEqual, 10)
			convey.So(model.FeatureNames[9], convey.ShouldEqual, model.FeatureWorkLifeBalanceScore)
		})
	})
}
