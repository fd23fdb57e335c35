package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gadai-core/internal/domain/actor"
	ledgerDomain "gadai-core/internal/domain/ledger"
	loanDomain "gadai-core/internal/domain/loan"
	"gadai-core/internal/domain/payment"
	"gadai-core/internal/domain/uow"
	ledgeruc "gadai-core/internal/usecase/ledger"
	loanuc "gadai-core/internal/usecase/loan"
	"gadai-core/pkg/docnum"
	"gadai-core/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxNumberAttempts = 100

// Usecase owns the NKB lifecycle (pending -> confirmed|rejected) and
// orchestrates loan settlement and ledger bookkeeping atomically per
// payment.
type Usecase struct {
	repo       payment.Repository
	loans      loanDomain.Repository
	settlement *loanuc.Usecase
	uow        uow.UnitOfWork
}

func NewUsecase(r payment.Repository, loans loanDomain.Repository, settlement *loanuc.Usecase, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, loans: loans, settlement: settlement, uow: tx}
}

// Create opens a pending NKB against an active or extended loan. A nil
// actor marks the payment as customer-initiated. The NKB number is
// random per day; the storage unique index arbitrates collisions and we
// regenerate up to the retry budget.
func (u *Usecase) Create(ctx context.Context, in CreatePaymentInput, act *actor.Actor) (*PaymentDTO, error) {
	if !in.AmountPaid.IsPositive() {
		return nil, errors.New("amount_paid must be positive")
	}
	if !in.PaymentType.Valid() {
		return nil, errors.New("unknown payment_type")
	}
	if !in.PaymentMethod.Valid() {
		return nil, errors.New("unknown payment_method")
	}

	l, err := u.loans.GetByLoanID(ctx, in.LoanID)
	if err != nil {
		return nil, err
	}
	if !l.Status.Settleable() {
		return nil, loanDomain.ErrInvalidState
	}

	p := &payment.Payment{
		PaymentID:           id.NewID32(),
		LoanRef:             l.ID,
		LoanID:              l.LoanID,
		AmountPaid:          in.AmountPaid,
		PaymentType:         in.PaymentType,
		PaymentMethod:       in.PaymentMethod,
		Status:              payment.StatusPending,
		Notes:               in.Notes,
		IsCustomerInitiated: act == nil,
	}
	if act != nil {
		createdBy := act.ID
		p.CreatedBy = &createdBy
	}

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		p.Number = docnum.NKB(time.Now())
		err = u.repo.Create(ctx, p)
		if err == nil {
			return toDTO(p), nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	// 100 straight collisions means the code space or the unique index
	// is misbehaving; alertable, the whole call may be retried.
	return nil, payment.ErrNumberExhausted
}

func (u *Usecase) Get(ctx context.Context, paymentID string) (*PaymentDTO, error) {
	p, err := u.repo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return toDTO(p), nil
}

// Confirm settles a pending payment: payment status, loan balance and
// the repayment cash credit commit as one transaction or not at all.
// The pending guard is re-checked under the payment row lock, so a
// confirm race has exactly one winner.
func (u *Usecase) Confirm(ctx context.Context, paymentID string, act actor.Actor) (*PaymentDTO, error) {
	var dto *PaymentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Payments.GetByPaymentIDForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		next, err := payment.Next(p.Status, payment.EventConfirm)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		confirmedBy := act.ID
		p.Status = next
		p.ConfirmedBy = &confirmedBy
		p.ConfirmedAt = &now
		if err := r.Payments.Save(ctx, p); err != nil {
			return err
		}

		l, err := r.Loans.GetByIDForUpdate(ctx, p.LoanRef)
		if err != nil {
			// a confirmed payment without its loan is a storage
			// integrity failure, not a caller error
			return fmt.Errorf("load loan for payment %s: %w", p.PaymentID, err)
		}
		if err := u.settlement.ApplyConfirmedPayment(ctx, r, l, p); err != nil {
			return err
		}

		desc := "NKB payment " + p.Number
		refType := "nkb_record"
		refID := p.PaymentID
		if _, err := ledgeruc.Apply(ctx, r, ledgeruc.RecordInput{
			StoreID:       l.StoreID,
			Direction:     ledgerDomain.DirectionCredit,
			Category:      ledgerDomain.CategoryNkbPayment,
			Amount:        p.AmountPaid,
			Description:   &desc,
			ReferenceType: &refType,
			ReferenceID:   &refID,
			CreatedBy:     act.ID,
		}); err != nil {
			return err
		}

		dto = toDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Reject terminates a pending payment with no financial side effect.
func (u *Usecase) Reject(ctx context.Context, paymentID string, reason *string, act actor.Actor) (*PaymentDTO, error) {
	var dto *PaymentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Payments.GetByPaymentIDForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		next, err := payment.Next(p.Status, payment.EventReject)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		rejectedBy := act.ID
		p.Status = next
		p.RejectionReason = reason
		p.ConfirmedBy = &rejectedBy
		p.ConfirmedAt = &now
		if err := r.Payments.Save(ctx, p); err != nil {
			return err
		}
		dto = toDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// RequestExtension opens a pending renewal NKB for the loan.
func (u *Usecase) RequestExtension(ctx context.Context, loanID string, amount decimal.Decimal, act *actor.Actor) (*PaymentDTO, error) {
	return u.Create(ctx, CreatePaymentInput{
		LoanID:        loanID,
		AmountPaid:    amount,
		PaymentType:   payment.TypeRenewal,
		PaymentMethod: payment.MethodCash,
	}, act)
}

// RequestRedemption opens a pending redemption NKB; a nil amount means
// the full remaining balance.
func (u *Usecase) RequestRedemption(ctx context.Context, loanID string, amount *decimal.Decimal, act *actor.Actor) (*PaymentDTO, error) {
	amt := decimal.Zero
	if amount != nil {
		amt = *amount
	} else {
		l, err := u.loans.GetByLoanID(ctx, loanID)
		if err != nil {
			return nil, err
		}
		amt = l.RemainingBalance
	}
	return u.Create(ctx, CreatePaymentInput{
		LoanID:        loanID,
		AmountPaid:    amt,
		PaymentType:   payment.TypeRedemption,
		PaymentMethod: payment.MethodCash,
	}, act)
}
