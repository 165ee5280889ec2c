package store

import (
	"context"

	"github.com/feral-file/genesis-ledger/internal/store/schema"
)

// Store defines the interface for journal persistence
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// AppendJournalEntry persists a committed operation record
	AppendJournalEntry(ctx context.Context, entry *schema.JournalEntry) error
	// ListJournalEntries returns entries with sequence greater than afterSequence,
	// in commit order, up to limit rows
	ListJournalEntries(ctx context.Context, afterSequence int64, limit int) ([]schema.JournalEntry, error)
	// CountJournalEntries returns the total number of persisted entries
	CountJournalEntries(ctx context.Context) (int64, error)
	// LatestJournalEntry returns the most recently committed entry, or nil if
	// the journal is empty
	LatestJournalEntry(ctx context.Context) (*schema.JournalEntry, error)
}
