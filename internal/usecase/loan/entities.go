package loan

import (
	"time"

	"gadai-core/internal/domain/loan"
	"gadai-core/internal/domain/payment"

	"github.com/shopspring/decimal"
)

type CreateLoanInput struct {
	StoreID         string          `json:"store_id"`
	CustomerID      string          `json:"customer_id"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	DueDate         time.Time       `json:"due_date"`
}

type LoanDTO struct {
	LoanID           string          `json:"loan_id"`
	SpkNumber        string          `json:"spk_number"`
	StoreID          string          `json:"store_id"`
	CustomerID       string          `json:"customer_id"`
	PrincipalAmount  decimal.Decimal `json:"principal_amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	Status           string          `json:"status"`
	DueDate          time.Time       `json:"due_date"`
	DisbursedAt      *time.Time      `json:"disbursed_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

func toDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:           l.LoanID,
		SpkNumber:        l.SpkNumber,
		StoreID:          l.StoreID,
		CustomerID:       l.CustomerID,
		PrincipalAmount:  l.PrincipalAmount,
		RemainingBalance: l.RemainingBalance,
		Status:           string(l.Status),
		DueDate:          l.DueDate,
		DisbursedAt:      l.DisbursedAt,
		CreatedAt:        l.CreatedAt,
	}
}

// PaymentSummary is the per-loan NKB listing row.
type PaymentSummary struct {
	PaymentID   string          `json:"payment_id"`
	Number      string          `json:"number"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	PaymentType string          `json:"payment_type"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toPaymentSummary(p *payment.Payment) PaymentSummary {
	return PaymentSummary{
		PaymentID:   p.PaymentID,
		Number:      p.Number,
		AmountPaid:  p.AmountPaid,
		PaymentType: string(p.PaymentType),
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}
