package ledger

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount       = errors.New("mutation amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient store balance")
)

type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

func (d Direction) Valid() bool {
	return d == DirectionCredit || d == DirectionDebit
}

type Category string

const (
	CategorySpkDisbursement Category = "spk_disbursement"
	CategoryNkbPayment      Category = "nkb_payment"
	CategoryCashDeposit     Category = "cash_deposit"
	CategoryCapitalTopup    Category = "capital_topup"
	CategoryAdjustment      Category = "adjustment"
	CategoryExpense         Category = "expense"
)

func (c Category) Valid() bool {
	switch c {
	case CategorySpkDisbursement, CategoryNkbPayment, CategoryCashDeposit,
		CategoryCapitalTopup, CategoryAdjustment, CategoryExpense:
		return true
	}
	return false
}

// CashMutation is one immutable ledger entry. The numeric PK doubles as
// the ledger order within a mutation date; balance_before/balance_after
// are snapshots computed at insert time so any row proves the running
// total without replaying history.
type CashMutation struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	StoreID       string          `gorm:"size:32;column:store_id;index:idx_cash_mutations_store" json:"store_id"`
	MutationDate  time.Time       `gorm:"type:date;column:mutation_date;index" json:"mutation_date"`
	Direction     Direction       `gorm:"type:enum('credit','debit');column:direction" json:"direction"`
	Category      Category        `gorm:"type:enum('spk_disbursement','nkb_payment','cash_deposit','capital_topup','adjustment','expense');column:category;index" json:"category"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);column:amount" json:"amount"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(15,2);column:balance_before" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(15,2);column:balance_after" json:"balance_after"`
	Description   *string         `gorm:"type:text;column:description" json:"description,omitempty"`
	ReferenceType *string         `gorm:"size:50;column:reference_type" json:"reference_type,omitempty"`
	ReferenceID   *string         `gorm:"size:32;column:reference_id" json:"reference_id,omitempty"`
	CreatedBy     string          `gorm:"size:32;column:created_by" json:"created_by"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (CashMutation) TableName() string { return "cash_mutations" }
