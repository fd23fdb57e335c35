package paymentmock

import (
	"context"
	"errors"

	domain "gadai-core/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("paymentmock: method not implemented")

// Repo is a function-backed mock that satisfies payment.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, p *domain.Payment) error
	SaveFn                    func(ctx context.Context, p *domain.Payment) error
	GetByPaymentIDFn          func(ctx context.Context, paymentID string) (*domain.Payment, error)
	GetByPaymentIDForUpdateFn func(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListByLoanRefFn           func(ctx context.Context, loanRef uint64) ([]domain.Payment, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, p *domain.Payment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if m.GetByPaymentIDFn != nil {
		return m.GetByPaymentIDFn(ctx, paymentID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if m.GetByPaymentIDForUpdateFn != nil {
		return m.GetByPaymentIDForUpdateFn(ctx, paymentID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByLoanRef(ctx context.Context, loanRef uint64) ([]domain.Payment, error) {
	if m.ListByLoanRefFn != nil {
		return m.ListByLoanRefFn(ctx, loanRef)
	}
	return nil, nil
}
