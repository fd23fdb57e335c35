package http

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestHex32Validation(t *testing.T) {
	type P struct {
		StoreID string `validate:"hex32"`
	}
	cv := NewValidator()

	// valid: 32-char lowercase hex
	ok := P{StoreID: strings.Repeat("a", 32)}
	if err := cv.Validate(ok); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	// invalid samples
	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",   // 31 chars
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		bad := P{StoreID: s}
		err := cv.Validate(bad)
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		fe := ToFieldErrors(err)
		if !containsFieldMsg(fe, "StoreID", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, fe)
		}
	}
}

func TestRequiredDatetimeOneofMapping(t *testing.T) {
	type P struct {
		Name      string `validate:"required"`
		DueDate   string `validate:"datetime=2006-01-02"`
		Direction string `validate:"oneof=credit debit"`
	}
	cv := NewValidator()

	err := cv.Validate(P{
		Name:      "",
		DueDate:   "28-08-2026",
		Direction: "sideways",
	})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)

	if !containsFieldMsg(fe, "Name", "is required") {
		t.Fatalf("missing 'is required' for Name: %+v", fe)
	}
	if !containsFieldMsg(fe, "DueDate", "2006-01-02") {
		t.Fatalf("missing datetime message for DueDate: %+v", fe)
	}
	if !containsFieldMsg(fe, "Direction", "credit debit") {
		t.Fatalf("missing oneof message for Direction: %+v", fe)
	}
}

func TestValidMoney(t *testing.T) {
	for _, s := range []string{"1", "0.01", "5000000", "725000.50", "999999999999.99"} {
		if !validMoney(mustDec(t, s)) {
			t.Fatalf("expected %s to be valid money", s)
		}
	}
	for _, s := range []string{"0", "-1", "-0.01", "1.234", "0.001"} {
		if validMoney(mustDec(t, s)) {
			t.Fatalf("expected %s to be rejected", s)
		}
	}
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	err := errors.New("boom")
	fe := ToFieldErrors(err)
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
