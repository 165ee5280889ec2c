package leveling

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/genesis-ledger/internal/adapter"
	"github.com/feral-file/genesis-ledger/internal/domain"
	"github.com/feral-file/genesis-ledger/internal/journal"
	"github.com/feral-file/genesis-ledger/internal/ledger"
)

// Record tracks the leveling state of one token. CurrentLevel is derived from
// the elapsed time since the birthday; the accumulated level is banked on
// every leveling transfer.
type Record struct {
	Birthday         time.Time
	AccumulatedLevel uint64
}

// Clock is the per-token elapsed-time accounting. A token with a recorded
// birthday may only move through a leveling transfer; the in-progress marker
// is threaded through the transfer options, never stored.
type Clock struct {
	clock adapter.Clock
	jrnl  *journal.Journal
	unit  time.Duration

	records map[uint64]Record
}

// New creates a leveling clock. Unit is the duration of one level; zero
// defaults to one hour.
func New(clock adapter.Clock, jrnl *journal.Journal, unit time.Duration) *Clock {
	if unit == 0 {
		unit = time.Hour
	}
	return &Clock{
		clock:   clock,
		jrnl:    jrnl,
		unit:    unit,
		records: make(map[uint64]Record),
	}
}

// Guard returns the transfer veto hook: a token with a birthday only moves
// while a leveling transfer is in progress.
func (c *Clock) Guard() ledger.TransferGuard {
	return func(tokenID uint64, from, to common.Address, opts ledger.TransferOptions) error {
		if opts.Leveling {
			return nil
		}
		if _, ok := c.records[tokenID]; ok {
			return domain.ErrLevelingStateViolation
		}
		return nil
	}
}

// RecordBirth starts the leveling clock for a token
func (c *Clock) RecordBirth(tokenID uint64) {
	c.setRecord(tokenID, Record{Birthday: c.clock.Now()})
}

// HasBirthday reports whether the token has a recorded birthday
func (c *Clock) HasBirthday(tokenID uint64) bool {
	_, ok := c.records[tokenID]
	return ok
}

// LevelInfo returns the current and total level of a token. A token without a
// birthday has no elapsed time and reports zero for both.
func (c *Clock) LevelInfo(tokenID uint64) (current, total uint64) {
	rec, ok := c.records[tokenID]
	if !ok {
		return 0, 0
	}
	current = c.currentLevel(rec)
	return current, current + rec.AccumulatedLevel
}

// Bank commits the elapsed level into the accumulated total and restarts the
// clock. Called once the leveling transfer has gone through.
func (c *Clock) Bank(tokenID uint64) {
	rec, ok := c.records[tokenID]
	if !ok {
		return
	}
	rec.AccumulatedLevel += c.currentLevel(rec)
	rec.Birthday = c.clock.Now()
	c.setRecord(tokenID, rec)
}

func (c *Clock) currentLevel(rec Record) uint64 {
	elapsed := c.clock.Now().Sub(rec.Birthday)
	if elapsed <= 0 {
		return 0
	}
	return uint64(elapsed / c.unit)
}

func (c *Clock) setRecord(tokenID uint64, rec Record) {
	prev, existed := c.records[tokenID]
	c.jrnl.Record(func() {
		if existed {
			c.records[tokenID] = prev
		} else {
			delete(c.records, tokenID)
		}
	})
	c.records[tokenID] = rec
}
