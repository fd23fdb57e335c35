package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// RegisterRoutes wires every handler onto the echo instance. Kept in one
// place so the server and the handler tests agree on the surface.
func RegisterRoutes(e *echo.Echo, h *Handler, ledger *LedgerHandler, loans *LoanHandler, payments *PaymentHandler) {
	e.GET("/health", h.Health)

	e.GET("/stores/:store_id/balance", ledger.GetBalance)
	e.GET("/stores/:store_id/mutations", ledger.ListMutations)
	e.POST("/stores/:store_id/mutations", ledger.CreateMutation)

	e.POST("/loans", loans.Create)
	e.GET("/loans/:loan_id", loans.Get)
	e.GET("/loans/:loan_id/payments", loans.ListPayments)
	e.POST("/loans/:loan_id/disburse", loans.Disburse)
	e.POST("/loans/:loan_id/extend", loans.Extend)
	e.POST("/loans/:loan_id/redeem", loans.Redeem)

	e.POST("/payments", payments.Create)
	e.GET("/payments/:payment_id", payments.Get)
	e.POST("/payments/:payment_id/confirm", payments.Confirm)
	e.POST("/payments/:payment_id/reject", payments.Reject)
}
