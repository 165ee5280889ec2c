// Package recorder persists committed ledger operations to the journal store
// and fans their events out to the messaging layer. It runs synchronously
// inside the commit path: a persistence failure aborts the operation.
package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/oklog/ulid/v2"
	"gorm.io/datatypes"

	"github.com/feral-file/genesis-ledger/internal/adapter"
	"github.com/feral-file/genesis-ledger/internal/events"
	"github.com/feral-file/genesis-ledger/internal/genesis"
	"github.com/feral-file/genesis-ledger/internal/store"
	"github.com/feral-file/genesis-ledger/internal/store/schema"
)

// Recorder implements genesis.CommitSink backed by a journal store and an
// optional event dispatcher.
type Recorder struct {
	store      store.Store
	dispatcher *events.Dispatcher
	json       adapter.JSON
	jcs        adapter.JCS
	timeout    time.Duration
	entropy    *rand.Rand
}

// New creates a recorder. dispatcher may be nil when event publishing is
// disabled.
func New(s store.Store, dispatcher *events.Dispatcher, json adapter.JSON, jcs adapter.JCS, timeout time.Duration) *Recorder {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Recorder{
		store:      s,
		dispatcher: dispatcher,
		json:       json,
		jcs:        jcs,
		timeout:    timeout,
		entropy:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec,G404
	}
}

// Committed persists the operation and dispatches its events. Returning an
// error causes the in-memory state change to be rolled back.
func (r *Recorder) Committed(op genesis.Operation) error {
	entry, err := r.buildEntry(op)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.store.AppendJournalEntry(ctx, entry); err != nil {
		return fmt.Errorf("failed to record operation %s: %w", op.Name, err)
	}

	if r.dispatcher != nil && len(op.Events) > 0 {
		r.dispatcher.Dispatch(op.Events)
	}

	return nil
}

func (r *Recorder) buildEntry(op genesis.Operation) (*schema.JournalEntry, error) {
	params := op.Params
	if params == nil {
		params = struct{}{}
	}
	paramsJSON, err := r.json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params for %s: %w", op.Name, err)
	}

	value := "0"
	if op.Value != nil {
		value = op.Value.Dec()
	}

	caller := op.Caller.Hex()
	origin := op.Origin.Hex()

	checksum, err := EntryChecksum(r.json, r.jcs, op.Name, caller, origin, value, paramsJSON, op.Timestamp)
	if err != nil {
		return nil, err
	}

	id, err := ulid.New(ulid.Timestamp(op.Timestamp), r.entropy)
	if err != nil {
		return nil, fmt.Errorf("failed to generate entry id: %w", err)
	}

	return &schema.JournalEntry{
		EntryID:    id.String(),
		Operation:  op.Name,
		Caller:     caller,
		Origin:     origin,
		Value:      value,
		Params:     datatypes.JSON(paramsJSON),
		Checksum:   checksum,
		OccurredAt: op.Timestamp.UTC(),
	}, nil
}

// checksumEnvelope is the canonical form hashed into an entry checksum.
type checksumEnvelope struct {
	Operation string          `json:"operation"`
	Caller    string          `json:"caller"`
	Origin    string          `json:"origin"`
	Value     string          `json:"value"`
	Params    json.RawMessage `json:"params"`
	Timestamp int64           `json:"timestamp"`
}

// EntryChecksum computes the hex Keccak-256 of the JCS-canonicalized entry
// envelope. Replay recomputes it to detect journal tampering or drift.
func EntryChecksum(jsonCodec adapter.JSON, jcsCodec adapter.JCS, operation, caller, origin, value string, params []byte, occurredAt time.Time) (string, error) {
	envelope := checksumEnvelope{
		Operation: operation,
		Caller:    caller,
		Origin:    origin,
		Value:     value,
		Params:    params,
		Timestamp: occurredAt.UTC().Unix(),
	}
	raw, err := jsonCodec.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("failed to marshal checksum envelope: %w", err)
	}
	canonical, err := jcsCodec.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize checksum envelope: %w", err)
	}
	return crypto.Keccak256Hash(canonical).Hex(), nil
}
