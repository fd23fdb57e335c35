package uow

import (
	"context"

	"gadai-core/internal/domain/ledger"
	"gadai-core/internal/domain/loan"
	"gadai-core/internal/domain/payment"
)

type Repos struct {
	Loans    loan.Repository
	Payments payment.Repository
	Ledger   ledger.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
