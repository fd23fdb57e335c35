package http

import (
	"errors"
	"net/http"
	"strings"

	"gadai-core/internal/domain/actor"
	ledgerDomain "gadai-core/internal/domain/ledger"
	loanDomain "gadai-core/internal/domain/loan"
	paymentDomain "gadai-core/internal/domain/payment"

	"github.com/labstack/echo/v4"
)

// actorFromHeaders resolves the acting user once at the boundary. A
// missing X-Actor-Id means the request is customer-initiated.
func actorFromHeaders(c echo.Context) *actor.Actor {
	id := strings.TrimSpace(c.Request().Header.Get("X-Actor-Id"))
	if id == "" {
		return nil
	}
	return &actor.Actor{
		ID:        id,
		StoreID:   strings.TrimSpace(c.Request().Header.Get("X-Store-Id")),
		CompanyID: strings.TrimSpace(c.Request().Header.Get("X-Company-Id")),
	}
}

// writeDomainError maps domain sentinels to HTTP codes; anything else
// is an opaque storage failure and must not leak details.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, loanDomain.ErrNotFound), errors.Is(err, paymentDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loanDomain.ErrInvalidState), errors.Is(err, paymentDomain.ErrInvalidState):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, ledgerDomain.ErrInsufficientBalance), errors.Is(err, ledgerDomain.ErrInvalidAmount):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, paymentDomain.ErrNumberExhausted):
		// alertable: the number space or unique index is misbehaving
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
