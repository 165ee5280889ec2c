package domain

import (
	"time"
)

// EventType represents the type of ledger event
type EventType string

const (
	EventTypeMint            EventType = "mint"
	EventTypeTransfer        EventType = "transfer"
	EventTypeBurn            EventType = "burn"
	EventTypeLoan            EventType = "loan"
	EventTypeLoanRetrieval   EventType = "loan_retrieval"
	EventTypeLeveledTransfer EventType = "leveled_transfer"
)

// LedgerEvent represents a normalized ledger event.
// This is the standard format published to NATS.
type LedgerEvent struct {
	EventID     string    `json:"event_id"`               // unique event identifier
	EventType   EventType `json:"event_type"`             // mint, transfer, burn, loan, loan_retrieval, leveled_transfer
	TokenID     uint64    `json:"token_id"`               // token id (or first id of the range for mint)
	ToTokenID   uint64    `json:"to_token_id,omitempty"`  // last id of the range (only for batch mint)
	FromAddress *string   `json:"from_address"`           // sender address (nil for mint)
	ToAddress   *string   `json:"to_address"`             // recipient address (nil for burn)
	Quantity    uint64    `json:"quantity"`               // number of tokens affected
	Caller      string    `json:"caller"`                 // account that initiated the call
	Timestamp   time.Time `json:"timestamp"`              // ledger clock time of the call
}

// Valid checks structural consistency of the event
func (e *LedgerEvent) Valid() bool {
	if e.EventID == "" || e.TokenID == 0 || e.Quantity == 0 {
		return false
	}

	switch e.EventType {
	case EventTypeMint:
		if e.ToAddress == nil || *e.ToAddress == "" {
			return false
		}
	case EventTypeBurn:
		if e.FromAddress == nil || *e.FromAddress == "" {
			return false
		}
	case EventTypeTransfer, EventTypeLoan, EventTypeLoanRetrieval, EventTypeLeveledTransfer:
		if e.FromAddress == nil || *e.FromAddress == "" {
			return false
		}
		if e.ToAddress == nil || *e.ToAddress == "" {
			return false
		}
	default:
		return false
	}

	return true
}
