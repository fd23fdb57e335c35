package ledger

import (
	"time"

	"gadai-core/internal/domain/ledger"

	"github.com/shopspring/decimal"
)

type RecordInput struct {
	StoreID       string
	Direction     ledger.Direction
	Category      ledger.Category
	Amount        decimal.Decimal
	Description   *string
	ReferenceType *string
	ReferenceID   *string
	CreatedBy     string
	// MutationDate defaults to today (UTC) when zero.
	MutationDate time.Time
}

type ListQuery struct {
	StoreID   string
	DateFrom  *time.Time
	DateTo    *time.Time
	Direction ledger.Direction
	Category  ledger.Category
	Limit     int
	Offset    int
}

type MutationDTO struct {
	StoreID       string          `json:"store_id"`
	MutationDate  string          `json:"mutation_date"` // YYYY-MM-DD
	Direction     string          `json:"direction"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Description   *string         `json:"description,omitempty"`
	ReferenceType *string         `json:"reference_type,omitempty"`
	ReferenceID   *string         `json:"reference_id,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toDTO(m *ledger.CashMutation) *MutationDTO {
	return &MutationDTO{
		StoreID:       m.StoreID,
		MutationDate:  m.MutationDate.Format("2006-01-02"),
		Direction:     string(m.Direction),
		Category:      string(m.Category),
		Amount:        m.Amount,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Description:   m.Description,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}
