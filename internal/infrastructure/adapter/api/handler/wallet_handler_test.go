package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/logger"
	usecasemocks "github.com/amirhossein-jamali/wallet-ledger/mocks/port/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(uc usecase.WalletUseCase) *gin.Engine {
	log := logger.NewNoopLogger()
	h := NewWalletHandler(uc, log)

	router := gin.New()
	group := router.Group("/api/v1/wallets/:" + middleware.WalletIDParam)
	group.Use(middleware.WalletID(log))
	group.GET("", h.GetWallet)
	group.POST("/operation", h.ApplyOperation)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWalletHandlerApplyOperation(t *testing.T) {
	walletID := uuid.MustParse("9b2f6f0e-1c3d-4e5f-8a7b-6c5d4e3f2a1b")
	path := "/api/v1/wallets/" + walletID.String() + "/operation"

	t.Run("Existing wallet returns 200", func(t *testing.T) {
		uc := usecasemocks.NewMockWalletUseCase(t)
		uc.EXPECT().ApplyOperation(mock.Anything, walletID, entity.OperationDeposit, int64(500)).
			Return(&usecase.OperationResult{WalletID: walletID, Balance: 1500, WasPreexisting: true}, nil).Once()

		w := doRequest(setupRouter(uc), http.MethodPost, path, `{"operationType":"DEPOSIT","amount":500}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.OperationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "OK", resp.Msg)
		assert.Equal(t, walletID.String(), resp.WalletID)
		assert.Equal(t, int64(1500), resp.Balance)
	})

	t.Run("New wallet returns 201", func(t *testing.T) {
		uc := usecasemocks.NewMockWalletUseCase(t)
		uc.EXPECT().ApplyOperation(mock.Anything, walletID, entity.OperationDeposit, int64(0)).
			Return(&usecase.OperationResult{WalletID: walletID, Balance: 0}, nil).Once()

		w := doRequest(setupRouter(uc), http.MethodPost, path, `{"operationType":"DEPOSIT","amount":0}`)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Insufficient funds returns 400", func(t *testing.T) {
		uc := usecasemocks.NewMockWalletUseCase(t)
		uc.EXPECT().ApplyOperation(mock.Anything, walletID, entity.OperationWithdraw, int64(10)).
			Return(nil, domainerr.NewInsufficientFundsError(walletID.String(), 10, 5)).Once()

		w := doRequest(setupRouter(uc), http.MethodPost, path, `{"operationType":"WITHDRAW","amount":10}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, domainerr.CodeInsufficientFunds, decodeError(t, w).Code)
	})

	t.Run("Unknown operation type returns 400 without calling the use case", func(t *testing.T) {
		uc := usecasemocks.NewMockWalletUseCase(t)

		w := doRequest(setupRouter(uc), http.MethodPost, path, `{"operationType":"TRANSFER","amount":10}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, domainerr.CodeUnknownOperationKind, resp.Code)
		assert.Equal(t, "TRANSFER", resp.Input)
	})

	t.Run("Lowercase operation type is rejected", func(t *testing.T) {
		uc := usecasemocks.NewMockWalletUseCase(t)

		w := doRequest(setupRouter(uc), http.MethodPost, path, `{"operationType":"deposit","amount":10}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Malformed bodies return 400", func(t *testing.T) {
		bodies := []string{
			`{"operationType":"DEPOSIT"}`,
			`{"operationType":"DEPOSIT","amount":-1}`,
			`{"operationType":"DEPOSIT","amount":"ten"}`,
			`{"amount":5}`,
			`not json`,
		}
		for _, body := range bodies {
			uc := usecasemocks.NewMockWalletUseCase(t)
			w := doRequest(setupRouter(uc), http.MethodPost, path, body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
		}
	})

	t.Run("Malformed wallet id returns 400", func(t *testing.T) {
		uc := usecasemocks.NewMockWalletUseCase(t)

		w := doRequest(setupRouter(uc), http.MethodPost, "/api/v1/wallets/not-a-uuid/operation", `{"operationType":"DEPOSIT","amount":1}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, domainerr.CodeInvalidWalletID, resp.Code)
		assert.Equal(t, "not-a-uuid", resp.Input)
	})

	t.Run("Store unavailable returns 503", func(t *testing.T) {
		uc := usecasemocks.NewMockWalletUseCase(t)
		uc.EXPECT().ApplyOperation(mock.Anything, walletID, entity.OperationDeposit, int64(1)).
			Return(nil, domainerr.NewStoreError("upsert", walletID.String(), context.DeadlineExceeded)).Once()

		w := doRequest(setupRouter(uc), http.MethodPost, path, `{"operationType":"DEPOSIT","amount":1}`)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "1", w.Header().Get("Retry-After"))
		assert.Equal(t, domainerr.CodeStoreUnavailable, decodeError(t, w).Code)
	})

	t.Run("Unexpected error returns 500", func(t *testing.T) {
		uc := usecasemocks.NewMockWalletUseCase(t)
		uc.EXPECT().ApplyOperation(mock.Anything, walletID, entity.OperationDeposit, int64(1)).
			Return(nil, errors.New("boom")).Once()

		w := doRequest(setupRouter(uc), http.MethodPost, path, `{"operationType":"DEPOSIT","amount":1}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestWalletHandlerGetWallet(t *testing.T) {
	walletID := uuid.MustParse("9b2f6f0e-1c3d-4e5f-8a7b-6c5d4e3f2a1b")
	path := "/api/v1/wallets/" + walletID.String()

	t.Run("Returns the balance", func(t *testing.T) {
		uc := usecasemocks.NewMockWalletUseCase(t)
		uc.EXPECT().GetBalance(mock.Anything, walletID).
			Return(&usecase.BalanceResult{WalletID: walletID, Balance: 300}, nil).Once()

		w := doRequest(setupRouter(uc), http.MethodGet, path, "")

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.WalletResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, walletID.String(), resp.WalletID)
		assert.Equal(t, int64(300), resp.Balance)
	})

	t.Run("Unknown wallet returns 404", func(t *testing.T) {
		uc := usecasemocks.NewMockWalletUseCase(t)
		uc.EXPECT().GetBalance(mock.Anything, walletID).Return(nil, domainerr.ErrWalletNotFound).Once()

		w := doRequest(setupRouter(uc), http.MethodGet, path, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, domainerr.CodeWalletNotFound, resp.Code)
		assert.Equal(t, "Wallet not found", resp.Message)
	})

	t.Run("Malformed id returns 400", func(t *testing.T) {
		uc := usecasemocks.NewMockWalletUseCase(t)

		w := doRequest(setupRouter(uc), http.MethodGet, "/api/v1/wallets/12345", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Store unavailable returns 503", func(t *testing.T) {
		uc := usecasemocks.NewMockWalletUseCase(t)
		uc.EXPECT().GetBalance(mock.Anything, walletID).
			Return(nil, domainerr.NewStoreError("read", walletID.String(), errors.New("connection refused"))).Once()

		w := doRequest(setupRouter(uc), http.MethodGet, path, "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		err    error
		status int
	}{
		{domainerr.ErrInsufficientFunds, http.StatusBadRequest},
		{domainerr.ErrUnknownOperationKind, http.StatusBadRequest},
		{domainerr.ErrNegativeAmount, http.StatusBadRequest},
		{domainerr.ErrAmountOverflow, http.StatusBadRequest},
		{domainerr.ErrInvalidWalletID, http.StatusBadRequest},
		{domainerr.ErrWalletNotFound, http.StatusNotFound},
		{domainerr.ErrDuplicateRequest, http.StatusConflict},
		{domainerr.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusServiceUnavailable},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		status, _ := statusFor(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
	}
}
