package payment

import (
	"time"

	"gadai-core/internal/domain/payment"

	"github.com/shopspring/decimal"
)

type CreatePaymentInput struct {
	LoanID        string          `json:"loan_id"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	PaymentType   payment.Type    `json:"payment_type"`
	PaymentMethod payment.Method  `json:"payment_method"`
	Notes         *string         `json:"notes,omitempty"`
}

type PaymentDTO struct {
	PaymentID           string          `json:"payment_id"`
	Number              string          `json:"number"`
	LoanID              string          `json:"loan_id"`
	AmountPaid          decimal.Decimal `json:"amount_paid"`
	PaymentType         string          `json:"payment_type"`
	PaymentMethod       string          `json:"payment_method"`
	Status              string          `json:"status"`
	ConfirmedBy         *string         `json:"confirmed_by,omitempty"`
	ConfirmedAt         *time.Time      `json:"confirmed_at,omitempty"`
	RejectionReason     *string         `json:"rejection_reason,omitempty"`
	IsCustomerInitiated bool            `json:"is_customer_initiated"`
	CreatedAt           time.Time       `json:"created_at"`
}

func toDTO(p *payment.Payment) *PaymentDTO {
	return &PaymentDTO{
		PaymentID:           p.PaymentID,
		Number:              p.Number,
		LoanID:              p.LoanID,
		AmountPaid:          p.AmountPaid,
		PaymentType:         string(p.PaymentType),
		PaymentMethod:       string(p.PaymentMethod),
		Status:              string(p.Status),
		ConfirmedBy:         p.ConfirmedBy,
		ConfirmedAt:         p.ConfirmedAt,
		RejectionReason:     p.RejectionReason,
		IsCustomerInitiated: p.IsCustomerInitiated,
		CreatedAt:           p.CreatedAt,
	}
}
