package dto

import "time"

// TokenResponse describes a live token
type TokenResponse struct {
	TokenID        uint64    `json:"token_id"`
	Owner          string    `json:"owner"`
	StartTimestamp time.Time `json:"start_timestamp"`
	URI            string    `json:"uri"`
	Loaned         bool      `json:"loaned"`
	Lender         string    `json:"lender,omitempty"`
	CurrentLevel   uint64    `json:"current_level"`
	TotalLevel     uint64    `json:"total_level"`
}

// SupplyResponse reports issuance totals
type SupplyResponse struct {
	TotalSupply uint64 `json:"total_supply"`
	MaxSupply   uint64 `json:"max_supply"`
}

// SaleResponse reports the sale state machine
type SaleResponse struct {
	Stage         string `json:"stage"`
	Paused        bool   `json:"paused"`
	Revealed      bool   `json:"revealed"`
	AllowlistRoot string `json:"allowlist_root"`
}

// BalanceResponse reports an account's live holdings
type BalanceResponse struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

// MintResponse reports the id range assigned by a mint
type MintResponse struct {
	FirstTokenID uint64 `json:"first_token_id"`
	LastTokenID  uint64 `json:"last_token_id"`
	Quantity     uint64 `json:"quantity"`
}

// RoyaltyResponse reports the royalty split for a hypothetical sale price
type RoyaltyResponse struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"` // decimal wei
}

// WithdrawResponse reports the swept vault balance
type WithdrawResponse struct {
	Amount string `json:"amount"` // decimal wei
}

// StatusResponse acknowledges a state change with no other payload
type StatusResponse struct {
	Status string `json:"status"`
}

// OK is the canonical success acknowledgement
func OK() StatusResponse {
	return StatusResponse{Status: "ok"}
}
