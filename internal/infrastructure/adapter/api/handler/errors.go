package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/dto"
)

// statusFor maps domain errors to HTTP status codes and client messages
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domainerr.ErrInsufficientFunds):
		return http.StatusBadRequest, "Insufficient funds"
	case errors.Is(err, domainerr.ErrUnknownOperationKind):
		return http.StatusBadRequest, "operationType must be one of DEPOSIT, WITHDRAW"
	case errors.Is(err, domainerr.ErrNegativeAmount):
		return http.StatusBadRequest, "amount must be non-negative"
	case errors.Is(err, domainerr.ErrAmountOverflow):
		return http.StatusBadRequest, "amount would overflow the balance"
	case errors.Is(err, domainerr.ErrInvalidWalletID):
		return http.StatusBadRequest, "Wallet uuid is not valid"
	case errors.Is(err, domainerr.ErrInvalidRequest):
		return http.StatusBadRequest, "Invalid request format"
	case errors.Is(err, domainerr.ErrWalletNotFound):
		return http.StatusNotFound, "Wallet not found"
	case errors.Is(err, domainerr.ErrDuplicateRequest):
		return http.StatusConflict, "Duplicate request currently processing"
	case domainerr.IsRetryable(err):
		return http.StatusServiceUnavailable, "Wallet store unavailable, retry later"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// writeError renders err as an ErrorResponse
func writeError(c *gin.Context, err error, input string) {
	status, message := statusFor(err)
	if status == http.StatusServiceUnavailable {
		c.Header("Retry-After", "1")
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
		Input:   input,
	})
}
