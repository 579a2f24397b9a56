package dto

// WalletResponse represents the API response for a wallet's balance
type WalletResponse struct {
	WalletID string `json:"walletId"`
	Balance  int64  `json:"balance"`
}

// HealthResponse reports the status of the service and its dependencies
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
