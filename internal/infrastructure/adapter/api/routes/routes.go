package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API.
// idempotency may be nil when Idempotency-Key replay is disabled.
func SetupRoutes(
	router *gin.Engine,
	walletHandler *handler.WalletHandler,
	healthHandler *handler.HealthHandler,
	idempotency gin.HandlerFunc,
	logger coreport.Logger,
) {
	router.GET("/health", healthHandler.Health)

	walletRoutes := router.Group("/api/v1/wallets/:" + middleware.WalletIDParam)
	walletRoutes.Use(middleware.WalletID(logger))
	{
		// GET /api/v1/wallets/:walletId
		walletRoutes.GET("", walletHandler.GetWallet)

		// POST /api/v1/wallets/:walletId/operation
		operation := []gin.HandlerFunc{walletHandler.ApplyOperation}
		if idempotency != nil {
			operation = append([]gin.HandlerFunc{idempotency}, operation...)
		}
		walletRoutes.POST("/operation", operation...)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, timeProvider))
}
