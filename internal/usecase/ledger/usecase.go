package ledger

import (
	"context"
	"errors"
	"time"

	"gadai-core/internal/domain/ledger"
	"gadai-core/internal/domain/uow"

	"github.com/shopspring/decimal"
)

var errUnknownDirection = errors.New("unknown mutation direction")

// Usecase is the cash ledger service: the single writer of per-store
// cash balances. Balance is always derived from the latest committed
// row, never cached in-process.
type Usecase struct {
	repo ledger.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(r ledger.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: tx}
}

// GetBalance reads the latest balance_after for the store; zero when
// the store has no ledger history.
func (u *Usecase) GetBalance(ctx context.Context, storeID string) (decimal.Decimal, error) {
	latest, err := u.repo.LatestForStore(ctx, storeID)
	if err != nil {
		return decimal.Zero, err
	}
	if latest == nil {
		return decimal.Zero, nil
	}
	return latest.BalanceAfter, nil
}

// Record appends one signed mutation in its own transaction. A debit
// that would drive the balance negative fails with
// ledger.ErrInsufficientBalance and writes nothing.
func (u *Usecase) Record(ctx context.Context, in RecordInput) (*MutationDTO, error) {
	var dto *MutationDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		m, err := Apply(ctx, r, in)
		if err != nil {
			return err
		}
		dto = toDTO(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) List(ctx context.Context, q ListQuery) ([]MutationDTO, error) {
	rows, err := u.repo.List(ctx, ledger.ListFilter{
		StoreID:   q.StoreID,
		DateFrom:  q.DateFrom,
		DateTo:    q.DateTo,
		Direction: q.Direction,
		Category:  q.Category,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]MutationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out, nil
}

// Apply performs the read-compute-append span against repos already
// bound to a transaction. It is the only code path that writes
// cash_mutations: Record uses it directly, and the loan/payment
// usecases call it inside their own transactions for disbursement and
// repayment cash flows. The latest-row read takes a row lock so
// concurrent appends against the same store serialize and the
// before/after chain cannot fork.
func Apply(ctx context.Context, r uow.Repos, in RecordInput) (*ledger.CashMutation, error) {
	if !in.Amount.IsPositive() {
		return nil, ledger.ErrInvalidAmount
	}

	latest, err := r.Ledger.LatestForStoreForUpdate(ctx, in.StoreID)
	if err != nil {
		return nil, err
	}
	before := decimal.Zero
	if latest != nil {
		before = latest.BalanceAfter
	}

	var after decimal.Decimal
	switch in.Direction {
	case ledger.DirectionCredit:
		after = before.Add(in.Amount)
	case ledger.DirectionDebit:
		after = before.Sub(in.Amount)
		if after.IsNegative() {
			return nil, ledger.ErrInsufficientBalance
		}
	default:
		return nil, errUnknownDirection
	}

	date := in.MutationDate
	if date.IsZero() {
		now := time.Now().UTC()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	m := &ledger.CashMutation{
		StoreID:       in.StoreID,
		MutationDate:  date,
		Direction:     in.Direction,
		Category:      in.Category,
		Amount:        in.Amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Description:   in.Description,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		CreatedBy:     in.CreatedBy,
	}
	if err := r.Ledger.Append(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
