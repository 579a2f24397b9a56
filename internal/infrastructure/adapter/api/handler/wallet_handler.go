package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/middleware"
)

// WalletHandler handles wallet-related HTTP requests
type WalletHandler struct {
	walletUseCase usecase.WalletUseCase
	logger        coreport.Logger
}

// NewWalletHandler creates a new wallet handler instance
func NewWalletHandler(walletUseCase usecase.WalletUseCase, logger coreport.Logger) *WalletHandler {
	return &WalletHandler{
		walletUseCase: walletUseCase,
		logger:        logger,
	}
}

// ApplyOperation handles the POST /api/v1/wallets/{walletId}/operation endpoint
func (h *WalletHandler) ApplyOperation(c *gin.Context) {
	walletID, ok := middleware.WalletIDFromContext(c)
	if !ok {
		writeError(c, domainerr.ErrInvalidWalletID, c.Param(middleware.WalletIDParam))
		return
	}

	var req dto.OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid operation request format", map[string]any{
			"wallet_id": walletID.String(),
			"error":     err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	kind, err := entity.ParseOperationKind(req.OperationType)
	if err != nil {
		writeError(c, err, req.OperationType)
		return
	}

	result, err := h.walletUseCase.ApplyOperation(c.Request.Context(), walletID, kind, *req.Amount)
	if err != nil {
		_ = c.Error(err)
		writeError(c, err, "")
		return
	}

	status := http.StatusOK
	if !result.WasPreexisting {
		status = http.StatusCreated
	}

	c.JSON(status, dto.OperationResponse{
		Msg:      "OK",
		WalletID: result.WalletID.String(),
		Balance:  result.Balance,
	})
}

// GetWallet handles the GET /api/v1/wallets/{walletId} endpoint
func (h *WalletHandler) GetWallet(c *gin.Context) {
	walletID, ok := middleware.WalletIDFromContext(c)
	if !ok {
		writeError(c, domainerr.ErrInvalidWalletID, c.Param(middleware.WalletIDParam))
		return
	}

	result, err := h.walletUseCase.GetBalance(c.Request.Context(), walletID)
	if err != nil {
		_ = c.Error(err)
		writeError(c, err, walletID.String())
		return
	}

	c.JSON(http.StatusOK, dto.WalletResponse{
		WalletID: result.WalletID.String(),
		Balance:  result.Balance,
	})
}
