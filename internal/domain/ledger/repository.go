package ledger

import (
	"context"
	"time"
)

type ListFilter struct {
	StoreID   string
	DateFrom  *time.Time
	DateTo    *time.Time
	Direction Direction
	Category  Category
	Limit     int
	Offset    int
}

// Repository is append-only: no Save, no Delete. Latest lookups order by
// (mutation_date, id) descending; (nil, nil) means the store has no
// ledger history yet.
type Repository interface {
	Append(ctx context.Context, m *CashMutation) error
	LatestForStore(ctx context.Context, storeID string) (*CashMutation, error)
	// LatestForStoreForUpdate locks the latest row (SELECT ... FOR UPDATE)
	// so concurrent appends against the same store serialize.
	LatestForStoreForUpdate(ctx context.Context, storeID string) (*CashMutation, error)
	List(ctx context.Context, f ListFilter) ([]CashMutation, error)
}
