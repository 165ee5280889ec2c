package schema

import (
	"time"

	"gorm.io/datatypes"
)

// JournalEntry represents the journal_entries table - the append-only record of
// every committed state-changing operation. Replaying the table in sequence
// order rebuilds the full in-memory ledger state.
type JournalEntry struct {
	// Sequence is an auto-incrementing number establishing total commit order
	Sequence int64 `gorm:"column:sequence;primaryKey;autoIncrement"`
	// EntryID is a ULID assigned at commit time, unique per entry
	EntryID string `gorm:"column:entry_id;not null;uniqueIndex;type:text"`
	// Operation is the operation name (mint, transfer_from, loan, ...)
	Operation string `gorm:"column:operation;not null;type:text"`
	// Caller is the checksummed address of the immediate caller
	Caller string `gorm:"column:caller;not null;type:text"`
	// Origin is the checksummed address that initiated the call chain
	Origin string `gorm:"column:origin;not null;type:text"`
	// Value is the attached payment in wei, as a decimal string
	Value string `gorm:"column:value;not null;default:'0';type:text"`
	// Params holds the operation parameters as JSON
	Params datatypes.JSON `gorm:"column:params;type:jsonb"`
	// Checksum is the hex Keccak-256 of the canonicalized entry envelope
	Checksum string `gorm:"column:checksum;not null;type:text"`
	// OccurredAt is the clock reading the operation executed under
	OccurredAt time.Time `gorm:"column:occurred_at;not null;type:timestamptz"`
	// CreatedAt is when the row was persisted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the JournalEntry model
func (JournalEntry) TableName() string {
	return "journal_entries"
}
