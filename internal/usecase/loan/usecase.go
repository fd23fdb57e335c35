package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gadai-core/internal/domain/actor"
	ledgerDomain "gadai-core/internal/domain/ledger"
	"gadai-core/internal/domain/loan"
	"gadai-core/internal/domain/payment"
	"gadai-core/internal/domain/uow"
	ledgeruc "gadai-core/internal/usecase/ledger"
	"gadai-core/pkg/docnum"
	"gadai-core/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxNumberAttempts = 100

// Usecase is the loan settlement service: it owns every transition of
// Loan.Status and RemainingBalance. Ledger bookkeeping for derived cash
// flows goes through ledgeruc.Apply inside the same transaction.
type Usecase struct {
	repo     loan.Repository
	payments payment.Repository
	uow      uow.UnitOfWork
}

func NewUsecase(r loan.Repository, payments payment.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, payments: payments, uow: tx}
}

// Create registers a draft SPK. Nothing is disbursed yet; the remaining
// balance starts at the principal so Disburse only flips state.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput, act actor.Actor) (*LoanDTO, error) {
	if len(in.StoreID) != 32 || len(in.CustomerID) != 32 || !in.PrincipalAmount.IsPositive() {
		return nil, errors.New("invalid input")
	}

	l := &loan.Loan{
		LoanID:           id.NewID32(),
		StoreID:          in.StoreID,
		CustomerID:       in.CustomerID,
		PrincipalAmount:  in.PrincipalAmount,
		RemainingBalance: in.PrincipalAmount,
		Status:           loan.StatusDraft,
		DueDate:          in.DueDate,
	}

	// SPK numbers are random per day; the unique index arbitrates, we
	// just regenerate on collision.
	var err error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		l.SpkNumber = docnum.SPK(time.Now())
		err = u.repo.Create(ctx, l)
		if err == nil {
			return toDTO(l), nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("spk number generation: %w", payment.ErrNumberExhausted)
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

// ListPayments returns the NKB history for one loan, newest first.
func (u *Usecase) ListPayments(ctx context.Context, loanID string) ([]PaymentSummary, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	rows, err := u.payments.ListByLoanRef(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentSummary, 0, len(rows))
	for i := range rows {
		out = append(out, toPaymentSummary(&rows[i]))
	}
	return out, nil
}

// Disburse activates a draft loan and debits the store's cash for the
// disbursed amount in one transaction, loan row locked up-front. A zero
// amount means the full principal. Insufficient store cash rolls the
// whole disbursement back.
func (u *Usecase) Disburse(ctx context.Context, loanID string, amount decimal.Decimal, act actor.Actor) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if !loan.CanTransition(l.Status, loan.StatusActive) {
			return loan.ErrInvalidState
		}
		if amount.IsZero() {
			amount = l.PrincipalAmount
		}
		if !amount.IsPositive() {
			return ledgerDomain.ErrInvalidAmount
		}

		// cash first: a drawer that cannot cover the payout fails the
		// disbursement before the loan row is touched
		desc := "SPK disbursement " + l.SpkNumber
		refType := "spk_record"
		refID := l.LoanID
		_, err := ledgeruc.Apply(ctx, r, ledgeruc.RecordInput{
			StoreID:       l.StoreID,
			Direction:     ledgerDomain.DirectionDebit,
			Category:      ledgerDomain.CategorySpkDisbursement,
			Amount:        amount,
			Description:   &desc,
			ReferenceType: &refType,
			ReferenceID:   &refID,
			CreatedBy:     act.ID,
		})
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		l.RemainingBalance = l.PrincipalAmount
		l.Status = loan.StatusActive
		l.DisbursedAt = &now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ApplyConfirmedPayment reduces the loan's remaining balance for one
// confirmed payment and flips status per the transition table. It must
// run inside the same transaction that confirmed the payment, with the
// loan row already locked, and must be invoked exactly once per
// payment; it does not re-derive "already applied" from loan state.
func (u *Usecase) ApplyConfirmedPayment(ctx context.Context, r uow.Repos, l *loan.Loan, p *payment.Payment) error {
	if !l.Status.Settleable() {
		return loan.ErrInvalidState
	}

	remaining := l.RemainingBalance.Sub(p.AmountPaid)
	if remaining.IsNegative() {
		// overpayment clamps to zero; the surplus is not refunded here
		remaining = decimal.Zero
	}
	l.RemainingBalance = remaining

	switch {
	case remaining.IsZero():
		if !loan.CanTransition(l.Status, loan.StatusRedeemed) {
			return loan.ErrInvalidState
		}
		l.Status = loan.StatusRedeemed
	case p.PaymentType == payment.TypeRenewal:
		if loan.CanTransition(l.Status, loan.StatusExtended) {
			l.Status = loan.StatusExtended
		}
	}

	return r.Loans.Save(ctx, l)
}
