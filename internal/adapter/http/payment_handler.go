package http

import (
	"net/http"

	"gadai-core/internal/domain/payment"
	paymentuc "gadai-core/internal/usecase/payment"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	uc *paymentuc.Usecase
	cv *CustomValidator
}

func NewPaymentHandler(uc *paymentuc.Usecase, cv *CustomValidator) *PaymentHandler {
	return &PaymentHandler{uc: uc, cv: cv}
}

type createPaymentReq struct {
	LoanID        string          `json:"loan_id" validate:"required,hex32"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	PaymentType   string          `json:"payment_type" validate:"required,oneof=renewal partial_payment redemption"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash transfer qris"`
	Notes         *string         `json:"notes"`
}

// POST /payments
//
// No X-Actor-Id means the payment came in through the customer channel
// and is flagged for manual review before confirmation.
func (h *PaymentHandler) Create(c echo.Context) error {
	var req createPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := h.cv.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if !validMoney(req.AmountPaid) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "amount_paid", Message: "must be positive with at most 2 decimal places"}},
		})
	}

	dto, err := h.uc.Create(c.Request().Context(), paymentuc.CreatePaymentInput{
		LoanID:        req.LoanID,
		AmountPaid:    req.AmountPaid,
		PaymentType:   payment.Type(req.PaymentType),
		PaymentMethod: payment.Method(req.PaymentMethod),
		Notes:         req.Notes,
	}, actorFromHeaders(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// GET /payments/:payment_id
func (h *PaymentHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("payment_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// POST /payments/:payment_id/confirm
func (h *PaymentHandler) Confirm(c echo.Context) error {
	act := actorFromHeaders(c)
	if act == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing X-Actor-Id"})
	}
	dto, err := h.uc.Confirm(c.Request().Context(), c.Param("payment_id"), *act)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type rejectReq struct {
	Reason *string `json:"reason"`
}

// POST /payments/:payment_id/reject
func (h *PaymentHandler) Reject(c echo.Context) error {
	act := actorFromHeaders(c)
	if act == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing X-Actor-Id"})
	}
	var req rejectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("payment_id"), req.Reason, *act)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
