package mysql

import (
	"context"
	"errors"

	loanDomain "gadai-core/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	if res.Error != nil {
		return nil, translateLoanErr(res.Error)
	}
	return &out, nil
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := withLock(r.db.WithContext(ctx)).
		Where("loan_id = ?", loanID).
		First(&out)
	if res.Error != nil {
		return nil, translateLoanErr(res.Error)
	}
	return &out, nil
}

func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := withLock(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&out)
	if res.Error != nil {
		return nil, translateLoanErr(res.Error)
	}
	return &out, nil
}

// record-not-found becomes the domain sentinel; everything else is a
// storage failure and propagates as-is.
func translateLoanErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loanDomain.ErrNotFound
	}
	return err
}
