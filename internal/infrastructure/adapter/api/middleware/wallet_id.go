package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerr "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/dto"
)

// WalletIDParam is the path parameter holding the wallet id
const WalletIDParam = "walletId"

const walletIDKey = "wallet_id"

// WalletID parses the wallet id path parameter as a UUID and stores it on the
// context. Malformed ids are rejected before any handler runs.
func WalletID(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(WalletIDParam)

		walletID, err := uuid.Parse(raw)
		if err != nil {
			logger.Warn("Wallet uuid is not valid", map[string]any{
				"input": raw,
			})
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidWalletID),
				Message: "Wallet uuid is not valid",
				Input:   raw,
			})
			return
		}

		c.Set(walletIDKey, walletID)
		c.Next()
	}
}

// WalletIDFromContext returns the wallet id stored by WalletID
func WalletIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(walletIDKey)
	if !ok {
		return uuid.Nil, false
	}
	walletID, ok := value.(uuid.UUID)
	return walletID, ok
}
