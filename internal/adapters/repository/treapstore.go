package repository

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/okian/attrition/internal/domain/model"
	"github.com/okian/attrition/pkg/metrics"
)

// TreapStore is an in-memory Store backed by a size-augmented treap, giving
// O(log n) expected Save and Get and O(log n + k) TopN.
type TreapStore struct {
	mu   sync.RWMutex
	root *node
	byID map[string]model.ChurnPrediction
	rng  *rand.Rand
	seed uint64
}

var _ Store = (*TreapStore)(nil)

// NewTreapStore constructs an empty store.
func NewTreapStore(opts ...Option) *TreapStore {
	s := &TreapStore{
		byID: make(map[string]model.ChurnPrediction),
		seed: uint64(time.Now().UnixNano()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rng = rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))
	return s
}

// Save implements Store.Save.
func (s *TreapStore) Save(ctx context.Context, p model.ChurnPrediction) error {
	if p.EmployeeID == "" {
		metrics.RecordError("repository", "invalid_prediction")
		return fmt.Errorf("%w: empty employee id", ErrInvalidPrediction)
	}
	if p.RiskScore < 0 || p.RiskScore > 1 {
		metrics.RecordError("repository", "invalid_prediction")
		return fmt.Errorf("%w: risk score %v outside [0,1]", ErrInvalidPrediction, p.RiskScore)
	}

	s.mu.Lock()
	if old, ok := s.byID[p.EmployeeID]; ok {
		s.root = deleteNode(s.root, old.EmployeeID, toFixedPoint(old.RiskScore))
	}
	s.byID[p.EmployeeID] = p.Clone()
	s.root = insert(s.root, p.EmployeeID, toFixedPoint(p.RiskScore), s.rng.Uint64())
	count := len(s.byID)
	s.mu.Unlock()

	metrics.UpdateStoredPredictions(count)
	return nil
}

// Get implements Store.Get. Employees sharing a score share a rank.
func (s *TreapStore) Get(ctx context.Context, employeeID string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[employeeID]
	if !ok {
		metrics.RecordError("repository", "not_found")
		return Entry{}, fmt.Errorf("%w: employee %q", ErrNotFound, employeeID)
	}
	return Entry{
		Rank:       countAbove(s.root, toFixedPoint(p.RiskScore)) + 1,
		Prediction: p.Clone(),
	}, nil
}

// TopN implements Store.TopN.
func (s *TreapStore) TopN(ctx context.Context, n int) ([]Entry, error) {
	if n < 1 {
		metrics.RecordError("repository", "invalid_limit")
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, min(n, len(s.byID)))
	collect(s.root, n, &ids)

	out := make([]Entry, len(ids))
	for i, id := range ids {
		p := s.byID[id]
		rank := i + 1
		if i > 0 && toFixedPoint(out[i-1].Prediction.RiskScore) == toFixedPoint(p.RiskScore) {
			rank = out[i-1].Rank
		}
		out[i] = Entry{Rank: rank, Prediction: p.Clone()}
	}
	return out, nil
}

// All implements Store.All.
func (s *TreapStore) All(ctx context.Context) []model.ChurnPrediction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.byID))
	collect(s.root, len(s.byID), &ids)

	out := make([]model.ChurnPrediction, len(ids))
	for i, id := range ids {
		out[i] = s.byID[id].Clone()
	}
	return out
}

// Count implements Store.Count.
func (s *TreapStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
