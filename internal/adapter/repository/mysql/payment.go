package mysql

import (
	"context"
	"errors"

	paymentDomain "gadai-core/internal/domain/payment"

	"gorm.io/gorm"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) Save(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PaymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*paymentDomain.Payment, error) {
	var out paymentDomain.Payment
	res := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&out)
	if res.Error != nil {
		return nil, translatePaymentErr(res.Error)
	}
	return &out, nil
}

func (r *PaymentRepository) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*paymentDomain.Payment, error) {
	var out paymentDomain.Payment
	res := withLock(r.db.WithContext(ctx)).
		Where("payment_id = ?", paymentID).
		First(&out)
	if res.Error != nil {
		return nil, translatePaymentErr(res.Error)
	}
	return &out, nil
}

func (r *PaymentRepository) ListByLoanRef(ctx context.Context, loanRef uint64) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	res := r.db.WithContext(ctx).
		Where("loan_ref = ?", loanRef).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func translatePaymentErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return paymentDomain.ErrNotFound
	}
	return err
}
