package mysql

import (
	"context"
	"errors"

	ledgerDomain "gadai-core/internal/domain/ledger"

	"gorm.io/gorm"
)

// LedgerRepository is append-only: there is deliberately no Save or
// Delete. Balance lookups read the latest row per store ordered by
// (mutation_date, id) descending.
type LedgerRepository struct{ db *gorm.DB }

func NewLedgerRepository(db *gorm.DB) *LedgerRepository { return &LedgerRepository{db: db} }

func (r *LedgerRepository) Append(ctx context.Context, m *ledgerDomain.CashMutation) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *LedgerRepository) LatestForStore(ctx context.Context, storeID string) (*ledgerDomain.CashMutation, error) {
	return r.latest(ctx, r.db, storeID)
}

func (r *LedgerRepository) LatestForStoreForUpdate(ctx context.Context, storeID string) (*ledgerDomain.CashMutation, error) {
	return r.latest(ctx, withLock(r.db), storeID)
}

func (r *LedgerRepository) latest(ctx context.Context, tx *gorm.DB, storeID string) (*ledgerDomain.CashMutation, error) {
	var out ledgerDomain.CashMutation
	res := tx.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("mutation_date DESC, id DESC").
		First(&out)
	if res.Error != nil {
		// no history is a valid state, not an error
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}
	return &out, nil
}

func (r *LedgerRepository) List(ctx context.Context, f ledgerDomain.ListFilter) ([]ledgerDomain.CashMutation, error) {
	q := r.db.WithContext(ctx).Where("store_id = ?", f.StoreID)
	if f.DateFrom != nil {
		q = q.Where("mutation_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("mutation_date <= ?", *f.DateTo)
	}
	if f.Direction != "" {
		q = q.Where("direction = ?", f.Direction)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	q = q.Order("mutation_date DESC, id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	var out []ledgerDomain.CashMutation
	return out, q.Find(&out).Error
}
