package http

import (
	"net/http"
	"time"

	loanuc "gadai-core/internal/usecase/loan"
	paymentuc "gadai-core/internal/usecase/payment"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct {
	loans    *loanuc.Usecase
	payments *paymentuc.Usecase
	cv       *CustomValidator
}

func NewLoanHandler(loans *loanuc.Usecase, payments *paymentuc.Usecase, cv *CustomValidator) *LoanHandler {
	return &LoanHandler{loans: loans, payments: payments, cv: cv}
}

type createLoanReq struct {
	StoreID         string          `json:"store_id" validate:"required,hex32"`
	CustomerID      string          `json:"customer_id" validate:"required,hex32"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	DueDate         string          `json:"due_date" validate:"required,datetime=2006-01-02"`
}

// POST /loans
func (h *LoanHandler) Create(c echo.Context) error {
	act := actorFromHeaders(c)
	if act == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing X-Actor-Id"})
	}

	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := h.cv.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if !validMoney(req.PrincipalAmount) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "principal_amount", Message: "must be positive with at most 2 decimal places"}},
		})
	}
	dueDate, _ := time.Parse("2006-01-02", req.DueDate)

	dto, err := h.loans.Create(c.Request().Context(), loanuc.CreateLoanInput{
		StoreID:         req.StoreID,
		CustomerID:      req.CustomerID,
		PrincipalAmount: req.PrincipalAmount,
		DueDate:         dueDate,
	}, *act)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// GET /loans/:loan_id
func (h *LoanHandler) Get(c echo.Context) error {
	dto, err := h.loans.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// GET /loans/:loan_id/payments
func (h *LoanHandler) ListPayments(c echo.Context) error {
	rows, err := h.loans.ListPayments(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"payments": rows})
}

type disburseReq struct {
	// Zero means disburse the full principal.
	Amount decimal.Decimal `json:"amount"`
}

// POST /loans/:loan_id/disburse
func (h *LoanHandler) Disburse(c echo.Context) error {
	act := actorFromHeaders(c)
	if act == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing X-Actor-Id"})
	}

	var req disburseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if !req.Amount.IsZero() && !validMoney(req.Amount) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "amount", Message: "must be positive with at most 2 decimal places"}},
		})
	}

	dto, err := h.loans.Disburse(c.Request().Context(), c.Param("loan_id"), req.Amount, *act)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type extendReq struct {
	Amount decimal.Decimal `json:"amount"`
}

// POST /loans/:loan_id/extend
//
// Convenience route: creates a pending renewal payment for the loan.
func (h *LoanHandler) Extend(c echo.Context) error {
	var req extendReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if !validMoney(req.Amount) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "amount", Message: "must be positive with at most 2 decimal places"}},
		})
	}

	dto, err := h.payments.RequestExtension(c.Request().Context(), c.Param("loan_id"), req.Amount, actorFromHeaders(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type redeemReq struct {
	// Nil means redeem the full remaining balance.
	Amount *decimal.Decimal `json:"amount"`
}

// POST /loans/:loan_id/redeem
func (h *LoanHandler) Redeem(c echo.Context) error {
	var req redeemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.Amount != nil && !validMoney(*req.Amount) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "amount", Message: "must be positive with at most 2 decimal places"}},
		})
	}

	dto, err := h.payments.RequestRedemption(c.Request().Context(), c.Param("loan_id"), req.Amount, actorFromHeaders(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
