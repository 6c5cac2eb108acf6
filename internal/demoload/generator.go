package demoload

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/okian/attrition/internal/domain/model"
)

// Workforce profile weights out of 100.
const (
	steadyWeight   = 45
	driftingWeight = 30
	newHireWeight  = 15
)

// Review and survey cadence in months.
const (
	reviewEveryMonths = 6
	surveyEveryMonths = 3
	maxReviews        = 6
	maxSurveys        = 8
)

var departments = []struct {
	name     string
	turnover float64
}{
	{"Engineering", 0.12},
	{"Sales", 0.28},
	{"Support", 0.22},
	{"Finance", 0.09},
	{"Operations", 0.17},
}

var firstNames = []string{"Ada", "Bola", "Chen", "Dana", "Eli", "Farah", "Goran", "Hana", "Ivo", "Jun"}

type profile int

const (
	steady   profile = iota // long tenure, good stable ratings
	drifting                // declining ratings and engagement
	newHire                 // a few months in, little history
	sparse                  // no reviews or surveys at all
)

// Generator builds synthetic workforces. The same seed and clock always
// produce the same workforce.
type Generator struct {
	src *rand.ChaCha8
	rng *rand.Rand
	now time.Time
}

// NewGenerator creates a generator. A zero seed picks a random one.
func NewGenerator(seed uint64, now time.Time) *Generator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	src := rand.NewChaCha8(key)
	return &Generator{src: src, rng: rand.New(src), now: now.UTC()}
}

// Workforce generates n employees with their review and survey histories
// plus the department contexts they belong to.
func (g *Generator) Workforce(n int) (model.BatchInput, error) {
	in := model.BatchInput{
		Employees:   make([]model.Employee, 0, n),
		Departments: make(map[string]model.DepartmentContext, len(departments)),
	}
	for _, d := range departments {
		in.Departments[d.name] = model.DepartmentContext{TurnoverRate: d.turnover}
	}

	for i := 0; i < n; i++ {
		id, err := uuid.NewRandomFromReader(g.src)
		if err != nil {
			return model.BatchInput{}, fmt.Errorf("employee id: %w", err)
		}
		g.addEmployee(&in, id.String(), i)
	}
	return in, nil
}

func (g *Generator) pickProfile() profile {
	switch r := g.rng.IntN(100); {
	case r < steadyWeight:
		return steady
	case r < steadyWeight+driftingWeight:
		return drifting
	case r < steadyWeight+driftingWeight+newHireWeight:
		return newHire
	default:
		return sparse
	}
}

func (g *Generator) addEmployee(in *model.BatchInput, id string, index int) {
	p := g.pickProfile()
	dept := departments[g.rng.IntN(len(departments))]

	var tenure int
	var salary float64
	switch p {
	case steady:
		tenure = g.between(24, 96)
		salary = float64(g.between(110, 170)) * 1000
	case drifting:
		tenure = g.between(12, 60)
		salary = float64(g.between(55, 100)) * 1000
	case newHire:
		tenure = g.between(1, 6)
		salary = float64(g.between(60, 120)) * 1000
	default:
		tenure = g.between(6, 48)
		salary = float64(g.between(70, 130)) * 1000
	}

	emp := model.Employee{
		ID:         id,
		Name:       fmt.Sprintf("%s %03d", firstNames[index%len(firstNames)], index),
		HireDate:   model.DateOf(g.now.AddDate(0, -tenure, 0)),
		Department: dept.name,
	}
	// Some records omit salary entirely.
	if g.rng.IntN(10) > 0 {
		emp.Salary = model.Float64(salary)
	}
	in.Employees = append(in.Employees, emp)

	if p == sparse {
		return
	}

	reviews := min(maxReviews, tenure/reviewEveryMonths)
	if p == newHire {
		reviews = 1
	}
	for k := reviews - 1; k >= 0; k-- {
		// k counts back from the most recent review; drift lowers ratings over time.
		var rating float64
		if p == drifting {
			rating = 2.3 + 0.35*float64(k) + g.jitter(0.3)
		} else {
			rating = 3.6 + g.jitter(0.8)
		}
		in.Performance = append(in.Performance, model.PerformanceRecord{
			EmployeeID: id,
			ReviewDate: model.DateOf(g.now.AddDate(0, -k*reviewEveryMonths, -g.rng.IntN(14))),
			Rating:     round1(clamp(rating, 1, 5)),
		})
	}

	surveys := max(1, min(maxSurveys, tenure/surveyEveryMonths))
	for k := surveys - 1; k >= 0; k-- {
		var score, wlb float64
		switch p {
		case drifting:
			score = 3.2 + 0.5*float64(k) + g.jitter(0.6)
			wlb = 3.5 + g.jitter(1.5)
		case newHire:
			score = 6 + g.jitter(1)
			wlb = 6.5 + g.jitter(1)
		default:
			score = 7.6 + g.jitter(1)
			wlb = 7.5 + g.jitter(1)
		}
		rec := model.EngagementRecord{
			EmployeeID:   id,
			SurveyDate:   model.DateOf(g.now.AddDate(0, -k*surveyEveryMonths, -g.rng.IntN(14))),
			OverallScore: round1(clamp(score, 0, 10)),
		}
		if g.rng.IntN(4) > 0 {
			rec.WorkLifeBalance = model.Float64(round1(clamp(wlb, 0, 10)))
		}
		in.Engagement = append(in.Engagement, rec)
	}
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

// jitter returns a uniform value in [-spread, spread].
func (g *Generator) jitter(spread float64) float64 {
	return (g.rng.Float64()*2 - 1) * spread
}

// Split cuts in into batches of at most size employees, each carrying only
// the records of its own employees.
func Split(in model.BatchInput, size int) []model.BatchInput {
	if size <= 0 {
		size = len(in.Employees)
	}
	var out []model.BatchInput
	for start := 0; start < len(in.Employees); start += size {
		end := min(start+size, len(in.Employees))
		part := model.BatchInput{
			Employees:   in.Employees[start:end],
			Departments: in.Departments,
		}
		ids := make(map[string]struct{}, end-start)
		for _, e := range part.Employees {
			ids[e.ID] = struct{}{}
		}
		for _, r := range in.Performance {
			if _, ok := ids[r.EmployeeID]; ok {
				part.Performance = append(part.Performance, r)
			}
		}
		for _, r := range in.Engagement {
			if _, ok := ids[r.EmployeeID]; ok {
				part.Engagement = append(part.Engagement, r)
			}
		}
		out = append(out, part)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
