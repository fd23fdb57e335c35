package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("loan not found")
	ErrInvalidState = errors.New("loan state does not allow this operation")
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusExtended  Status = "extended"
	StatusRedeemed  Status = "redeemed"
	StatusOverdue   Status = "overdue"
	StatusAuctioned Status = "auctioned"
	StatusClosed    Status = "closed"
)

// transitions is the explicit state machine for SPK records. Guards in
// the usecases go through CanTransition, never ad hoc comparisons, so a
// new status cannot silently skip a guard.
var transitions = map[Status]map[Status]bool{
	StatusDraft: {StatusActive: true},
	StatusActive: {
		StatusExtended:  true,
		StatusRedeemed:  true,
		StatusOverdue:   true,
		StatusAuctioned: true,
	},
	StatusExtended: {
		StatusExtended:  true, // repeated renewals
		StatusRedeemed:  true,
		StatusOverdue:   true,
		StatusAuctioned: true,
	},
	StatusOverdue: {
		StatusRedeemed:  true,
		StatusAuctioned: true,
		StatusClosed:    true,
	},
	StatusAuctioned: {StatusClosed: true},
}

func CanTransition(from, to Status) bool { return transitions[from][to] }

// Settleable reports whether payments may be created against a loan in
// this status.
func (s Status) Settleable() bool { return s == StatusActive || s == StatusExtended }

// Loan is the SPK (Surat Perjanjian Kredit) aggregate: one pawned-item
// contract with a mutable remaining balance and status.
type Loan struct {
	ID               uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID           string          `gorm:"size:32;column:loan_id;uniqueIndex:ux_spk_records_loan_id" json:"loan_id"`
	SpkNumber        string          `gorm:"size:50;column:spk_number;uniqueIndex:ux_spk_records_number" json:"spk_number"`
	StoreID          string          `gorm:"size:32;column:store_id;index:idx_spk_records_store_status" json:"store_id"`
	CustomerID       string          `gorm:"size:32;column:customer_id;index" json:"customer_id"`
	PrincipalAmount  decimal.Decimal `gorm:"type:decimal(15,2);column:principal_amount" json:"principal_amount"`
	RemainingBalance decimal.Decimal `gorm:"type:decimal(15,2);column:remaining_balance" json:"remaining_balance"`
	Status           Status          `gorm:"type:enum('draft','active','extended','redeemed','overdue','auctioned','closed');default:'draft';column:status;index:idx_spk_records_store_status" json:"status"`
	DueDate          time.Time       `gorm:"type:date;column:due_date" json:"due_date"`
	DisbursedAt      *time.Time      `gorm:"column:disbursed_at" json:"disbursed_at,omitempty"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"column:deleted_at;index" json:"-"`
}

func (Loan) TableName() string { return "spk_records" }
