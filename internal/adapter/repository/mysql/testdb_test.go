package mysql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no MySQL ENUM) ---

type loanSQLite struct {
	ID               uint64          `gorm:"primaryKey;column:id"`
	LoanID           string          `gorm:"size:32;column:loan_id;uniqueIndex"`
	SpkNumber        string          `gorm:"size:50;column:spk_number;uniqueIndex"`
	StoreID          string          `gorm:"size:32;column:store_id"`
	CustomerID       string          `gorm:"size:32;column:customer_id"`
	PrincipalAmount  decimal.Decimal `gorm:"type:text;column:principal_amount"`
	RemainingBalance decimal.Decimal `gorm:"type:text;column:remaining_balance"`
	Status           string          `gorm:"type:text;column:status"` // ← no enum
	DueDate          time.Time       `gorm:"column:due_date"`
	DisbursedAt      *time.Time      `gorm:"column:disbursed_at"`
	CreatedAt        time.Time       `gorm:"column:created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (loanSQLite) TableName() string { return "spk_records" }

type paymentSQLite struct {
	ID                  uint64          `gorm:"primaryKey;column:id"`
	PaymentID           string          `gorm:"size:32;column:payment_id;uniqueIndex"`
	Number              string          `gorm:"size:50;column:nkb_number;uniqueIndex"`
	LoanRef             uint64          `gorm:"column:loan_ref"`
	LoanID              string          `gorm:"size:32;column:loan_id"`
	AmountPaid          decimal.Decimal `gorm:"type:text;column:amount_paid"`
	PaymentType         string          `gorm:"type:text;column:payment_type"`
	PaymentMethod       string          `gorm:"type:text;column:payment_method"`
	Status              string          `gorm:"type:text;column:status"`
	Notes               *string         `gorm:"column:notes"`
	CreatedBy           *string         `gorm:"size:32;column:created_by"`
	ConfirmedBy         *string         `gorm:"size:32;column:confirmed_by"`
	ConfirmedAt         *time.Time      `gorm:"column:confirmed_at"`
	RejectionReason     *string         `gorm:"column:rejection_reason"`
	IsCustomerInitiated bool            `gorm:"column:is_customer_initiated"`
	CreatedAt           time.Time       `gorm:"column:created_at"`
	UpdatedAt           time.Time       `gorm:"column:updated_at"`
	DeletedAt           gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (paymentSQLite) TableName() string { return "nkb_records" }

type cashMutationSQLite struct {
	ID            uint64          `gorm:"primaryKey;column:id"`
	StoreID       string          `gorm:"size:32;column:store_id"`
	MutationDate  time.Time       `gorm:"column:mutation_date"`
	Direction     string          `gorm:"type:text;column:direction"`
	Category      string          `gorm:"type:text;column:category"`
	Amount        decimal.Decimal `gorm:"type:text;column:amount"`
	BalanceBefore decimal.Decimal `gorm:"type:text;column:balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:text;column:balance_after"`
	Description   *string         `gorm:"column:description"`
	ReferenceType *string         `gorm:"size:50;column:reference_type"`
	ReferenceID   *string         `gorm:"size:32;column:reference_id"`
	CreatedBy     string          `gorm:"size:32;column:created_by"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
}

func (cashMutationSQLite) TableName() string { return "cash_mutations" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas. TranslateError keeps duplicate-key detection
// (gorm.ErrDuplicatedKey) working like the MySQL driver.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&loanSQLite{}, &paymentSQLite{}, &cashMutationSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
