package dto

// CallFields carries the identity and payment of a state-changing request.
// Callers are trusted at this layer; signature verification happens upstream.
type CallFields struct {
	Caller string `json:"caller" binding:"required"`
	Value  string `json:"value,omitempty"` // decimal wei, defaults to 0
}

// MintRequest requests a mint of Amount tokens for the caller
type MintRequest struct {
	CallFields
	Amount uint64   `json:"amount" binding:"required"`
	Proof  []string `json:"proof,omitempty"` // allowlist Merkle proof, stage 2 only
}

// TransferRequest moves a token between addresses. Safe requests receiver
// acknowledgement for registered contract receivers.
type TransferRequest struct {
	CallFields
	From    string `json:"from" binding:"required"`
	To      string `json:"to" binding:"required"`
	TokenID uint64 `json:"token_id" binding:"required"`
	Safe    bool   `json:"safe,omitempty"`
}

// LeveledTransferRequest moves a leveling token, banking its accumulated level
type LeveledTransferRequest struct {
	CallFields
	From    string `json:"from" binding:"required"`
	To      string `json:"to" binding:"required"`
	TokenID uint64 `json:"token_id" binding:"required"`
}

// ApproveRequest grants a single-token approval
type ApproveRequest struct {
	CallFields
	To      string `json:"to" binding:"required"`
	TokenID uint64 `json:"token_id" binding:"required"`
}

// ApprovalForAllRequest grants or revokes an operator approval
type ApprovalForAllRequest struct {
	CallFields
	Operator string `json:"operator" binding:"required"`
	Approved *bool  `json:"approved" binding:"required"`
}

// BurnRequest destroys a token
type BurnRequest struct {
	CallFields
	TokenID uint64 `json:"token_id" binding:"required"`
}

// LoanRequest lends a token to a borrower
type LoanRequest struct {
	CallFields
	TokenID  uint64 `json:"token_id" binding:"required"`
	Receiver string `json:"receiver" binding:"required"`
}

// RetrieveLoanRequest pulls a loaned token back to the lender
type RetrieveLoanRequest struct {
	CallFields
	TokenID uint64 `json:"token_id" binding:"required"`
}

// RootRequest updates the allowlist Merkle root
type RootRequest struct {
	CallFields
	Root string `json:"root" binding:"required"`
}

// FlagRequest toggles a boolean contract flag
type FlagRequest struct {
	CallFields
	Enabled *bool `json:"enabled" binding:"required"`
}

// WithdrawRequest sweeps the vault to the contract owner
type WithdrawRequest struct {
	CallFields
}

// RoyaltyRecipientRequest updates the royalty recipient
type RoyaltyRecipientRequest struct {
	CallFields
	Recipient string `json:"recipient" binding:"required"`
}

// RoyaltyPercentageRequest updates the royalty percentage
type RoyaltyPercentageRequest struct {
	CallFields
	Percentage *uint64 `json:"percentage" binding:"required"`
}
