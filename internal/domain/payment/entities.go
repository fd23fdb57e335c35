package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("payment not found")
	ErrInvalidState    = errors.New("payment state does not allow this operation")
	ErrNumberExhausted = errors.New("nkb number generation exhausted retry budget")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

type Event string

const (
	EventConfirm Event = "confirm"
	EventReject  Event = "reject"
)

// transitions: pending is the only non-terminal status; both events are
// one-shot. Next is the single guard used by the workflow usecase.
var transitions = map[Status]map[Event]Status{
	StatusPending: {
		EventConfirm: StatusConfirmed,
		EventReject:  StatusRejected,
	},
}

func Next(current Status, ev Event) (Status, error) {
	next, ok := transitions[current][ev]
	if !ok {
		return "", ErrInvalidState
	}
	return next, nil
}

type Type string

const (
	TypeRenewal        Type = "renewal"
	TypePartialPayment Type = "partial_payment"
	TypeRedemption     Type = "redemption"
)

func (t Type) Valid() bool {
	return t == TypeRenewal || t == TypePartialPayment || t == TypeRedemption
}

// Method is opaque to this core; it is recorded, never interpreted.
type Method string

const (
	MethodCash     Method = "cash"
	MethodTransfer Method = "transfer"
	MethodQris     Method = "qris"
)

func (m Method) Valid() bool {
	return m == MethodCash || m == MethodTransfer || m == MethodQris
}

// Payment is the NKB (Nota Kredit Barang): one settlement attempt
// against an SPK. LoanRef is the numeric FK; LoanID is the public id
// denormalized for API payloads.
type Payment struct {
	ID                  uint64          `gorm:"primaryKey;column:id" json:"-"`
	PaymentID           string          `gorm:"size:32;column:payment_id;uniqueIndex:ux_nkb_records_payment_id" json:"payment_id"`
	Number              string          `gorm:"size:50;column:nkb_number;uniqueIndex:ux_nkb_records_number" json:"number"`
	LoanRef             uint64          `gorm:"column:loan_ref;index" json:"-"`
	LoanID              string          `gorm:"size:32;column:loan_id;index" json:"loan_id"`
	AmountPaid          decimal.Decimal `gorm:"type:decimal(15,2);column:amount_paid" json:"amount_paid"`
	PaymentType         Type            `gorm:"type:enum('renewal','partial_payment','redemption');column:payment_type;index" json:"payment_type"`
	PaymentMethod       Method          `gorm:"type:enum('cash','transfer','qris');column:payment_method" json:"payment_method"`
	Status              Status          `gorm:"type:enum('pending','confirmed','rejected');default:'pending';column:status;index" json:"status"`
	Notes               *string         `gorm:"type:text;column:notes" json:"notes,omitempty"`
	CreatedBy           *string         `gorm:"size:32;column:created_by" json:"created_by,omitempty"`
	ConfirmedBy         *string         `gorm:"size:32;column:confirmed_by" json:"confirmed_by,omitempty"`
	ConfirmedAt         *time.Time      `gorm:"column:confirmed_at" json:"confirmed_at,omitempty"`
	RejectionReason     *string         `gorm:"type:text;column:rejection_reason" json:"rejection_reason,omitempty"`
	IsCustomerInitiated bool            `gorm:"column:is_customer_initiated;default:false" json:"is_customer_initiated"`
	CreatedAt           time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt           gorm.DeletedAt  `gorm:"column:deleted_at;index" json:"-"`
}

func (Payment) TableName() string { return "nkb_records" }
