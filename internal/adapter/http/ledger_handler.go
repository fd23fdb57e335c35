package http

import (
	"net/http"
	"strconv"
	"time"

	"gadai-core/internal/domain/ledger"
	ledgeruc "gadai-core/internal/usecase/ledger"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LedgerHandler struct {
	uc *ledgeruc.Usecase
	cv *CustomValidator
}

func NewLedgerHandler(uc *ledgeruc.Usecase, cv *CustomValidator) *LedgerHandler {
	return &LedgerHandler{uc: uc, cv: cv}
}

// GET /stores/:store_id/balance
func (h *LedgerHandler) GetBalance(c echo.Context) error {
	storeID := c.Param("store_id")
	if !reHex32.MatchString(storeID) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "store_id", Message: "must be 32-char lowercase hex"}},
		})
	}
	bal, err := h.uc.GetBalance(c.Request().Context(), storeID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"store_id": storeID,
		"balance":  bal,
	})
}

// GET /stores/:store_id/mutations
func (h *LedgerHandler) ListMutations(c echo.Context) error {
	q := ledgeruc.ListQuery{StoreID: c.Param("store_id")}

	if v := c.QueryParam("date_from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "validation failed",
				Details: []FieldError{{Field: "date_from", Message: "must be a date formatted 2006-01-02"}},
			})
		}
		q.DateFrom = &t
	}
	if v := c.QueryParam("date_to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "validation failed",
				Details: []FieldError{{Field: "date_to", Message: "must be a date formatted 2006-01-02"}},
			})
		}
		q.DateTo = &t
	}
	q.Direction = ledger.Direction(c.QueryParam("direction"))
	q.Category = ledger.Category(c.QueryParam("category"))

	q.Limit = 50
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q.Limit = n
		}
	}
	if q.Limit > 200 {
		q.Limit = 200
	}
	if v := c.QueryParam("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			q.Offset = n
		}
	}

	rows, err := h.uc.List(c.Request().Context(), q)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"mutations": rows})
}

type createMutationReq struct {
	Direction    string          `json:"direction" validate:"required,oneof=credit debit"`
	Category     string          `json:"category" validate:"required,oneof=cash_deposit capital_topup adjustment expense"`
	Amount       decimal.Decimal `json:"amount"`
	Description  *string         `json:"description"`
	MutationDate string          `json:"mutation_date" validate:"omitempty,datetime=2006-01-02"`
}

// POST /stores/:store_id/mutations
//
// Manual entries only. Disbursement and repayment cash flows are written
// by the loan and payment services inside their own transactions, so the
// system categories are not accepted here.
func (h *LedgerHandler) CreateMutation(c echo.Context) error {
	act := actorFromHeaders(c)
	if act == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing X-Actor-Id"})
	}

	var req createMutationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := h.cv.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if !validMoney(req.Amount) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "amount", Message: "must be positive with at most 2 decimal places"}},
		})
	}

	in := ledgeruc.RecordInput{
		StoreID:     c.Param("store_id"),
		Direction:   ledger.Direction(req.Direction),
		Category:    ledger.Category(req.Category),
		Amount:      req.Amount,
		Description: req.Description,
		CreatedBy:   act.ID,
	}
	if req.MutationDate != "" {
		t, _ := time.Parse("2006-01-02", req.MutationDate)
		in.MutationDate = t
	}

	dto, err := h.uc.Record(c.Request().Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
