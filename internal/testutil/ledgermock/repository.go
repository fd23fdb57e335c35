package ledgermock

import (
	"context"
	"sync"

	domain "gadai-core/internal/domain/ledger"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies ledger.Repository.
type Repo struct {
	AppendFn                  func(ctx context.Context, m *domain.CashMutation) error
	LatestForStoreFn          func(ctx context.Context, storeID string) (*domain.CashMutation, error)
	LatestForStoreForUpdateFn func(ctx context.Context, storeID string) (*domain.CashMutation, error)
	ListFn                    func(ctx context.Context, f domain.ListFilter) ([]domain.CashMutation, error)
}

func (m *Repo) Append(ctx context.Context, mu *domain.CashMutation) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, mu)
	}
	return nil
}

func (m *Repo) LatestForStore(ctx context.Context, storeID string) (*domain.CashMutation, error) {
	if m.LatestForStoreFn != nil {
		return m.LatestForStoreFn(ctx, storeID)
	}
	return nil, nil
}

func (m *Repo) LatestForStoreForUpdate(ctx context.Context, storeID string) (*domain.CashMutation, error) {
	if m.LatestForStoreForUpdateFn != nil {
		return m.LatestForStoreForUpdateFn(ctx, storeID)
	}
	return nil, nil
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.CashMutation, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

// InMemory is a stateful in-memory ledger for tests that need real
// append/latest behavior (chaining assertions) without a database.
type InMemory struct {
	mu   sync.Mutex
	rows []domain.CashMutation
}

func NewInMemory() *InMemory { return &InMemory{} }

func (s *InMemory) Append(_ context.Context, m *domain.CashMutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = uint64(len(s.rows) + 1)
	s.rows = append(s.rows, *m)
	return nil
}

func (s *InMemory) LatestForStore(_ context.Context, storeID string) (*domain.CashMutation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.rows) - 1; i >= 0; i-- {
		if s.rows[i].StoreID == storeID {
			row := s.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (s *InMemory) LatestForStoreForUpdate(ctx context.Context, storeID string) (*domain.CashMutation, error) {
	return s.LatestForStore(ctx, storeID)
}

func (s *InMemory) List(_ context.Context, f domain.ListFilter) ([]domain.CashMutation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.CashMutation
	for i := len(s.rows) - 1; i >= 0; i-- {
		r := s.rows[i]
		if r.StoreID != f.StoreID {
			continue
		}
		if f.Direction != "" && r.Direction != f.Direction {
			continue
		}
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Rows returns a copy of everything appended, in insertion order.
func (s *InMemory) Rows() []domain.CashMutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CashMutation, len(s.rows))
	copy(out, s.rows)
	return out
}
