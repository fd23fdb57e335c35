package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	Save(ctx context.Context, p *Payment) error
	GetByPaymentID(ctx context.Context, paymentID string) (*Payment, error)
	// GetByPaymentIDForUpdate locks the row; the pending guard must be
	// re-checked under this lock so a confirm race has exactly one winner.
	GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*Payment, error)
	ListByLoanRef(ctx context.Context, loanRef uint64) ([]Payment, error)
}
