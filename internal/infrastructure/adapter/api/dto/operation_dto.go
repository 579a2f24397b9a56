package dto

// OperationRequest represents the API request for a wallet operation.
// Amount is a pointer so a missing amount is told apart from zero.
type OperationRequest struct {
	OperationType string `json:"operationType" binding:"required"`
	Amount        *int64 `json:"amount" binding:"required,min=0"`
}

// OperationResponse represents the API response for an applied operation
type OperationResponse struct {
	Msg      string `json:"msg"`
	WalletID string `json:"walletId"`
	Balance  int64  `json:"balance"`
}
