package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row (SELECT ... FOR UPDATE); only
	// meaningful inside a unit-of-work transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	// GetByIDForUpdate locks by numeric PK; used when following the
	// payment -> loan FK inside a transaction.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
}
