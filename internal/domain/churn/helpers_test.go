package churn_test

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/okian/attrition/internal/domain/model"
)

// fixedNow is noon so that midnight hire dates give whole-month tenures.
var fixedNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func sequentialIDs() func() string {
	var n atomic.Int64
	return func() string { return "pred-" + strconv.FormatInt(n.Add(1), 10) }
}

// hiredMonthsAgo returns a hire date exactly months*30 days before fixedNow.
func hiredMonthsAgo(months int) model.Date {
	return model.DateOf(fixedNow.AddDate(0, 0, -30*months))
}

func monthsAgo(months int) model.Date {
	return model.DateOf(fixedNow.AddDate(0, -months, 0))
}

func ratings(id string, vs ...float64) []model.PerformanceRecord {
	out := make([]model.PerformanceRecord, len(vs))
	for i, v := range vs {
		out[i] = model.PerformanceRecord{EmployeeID: id, ReviewDate: monthsAgo(len(vs) - i), Rating: v}
	}
	return out
}

func surveys(id string, balance *float64, vs ...float64) []model.EngagementRecord {
	out := make([]model.EngagementRecord, len(vs))
	for i, v := range vs {
		out[i] = model.EngagementRecord{EmployeeID: id, SurveyDate: monthsAgo(len(vs) - i), OverallScore: v, WorkLifeBalance: balance}
	}
	return out
}
