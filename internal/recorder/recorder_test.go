package recorder_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/genesis-ledger/internal/adapter"
	"github.com/feral-file/genesis-ledger/internal/genesis"
	"github.com/feral-file/genesis-ledger/internal/mocks"
	"github.com/feral-file/genesis-ledger/internal/recorder"
	"github.com/feral-file/genesis-ledger/internal/store/schema"
)

var (
	caller = common.HexToAddress("0x1111111111111111111111111111111111111111")
	origin = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func makeOperation() genesis.Operation {
	return genesis.Operation{
		Name:      genesis.OpMint,
		Caller:    caller,
		Origin:    origin,
		Value:     uint256.NewInt(12345),
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Params:    genesis.MintParams{Amount: 2},
	}
}

func TestCommitted_PersistsEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	dataStore := mocks.NewMockStore(ctrl)
	jsonCodec := adapter.NewJSON()
	jcsCodec := adapter.NewJCS()

	var captured *schema.JournalEntry
	dataStore.EXPECT().
		AppendJournalEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *schema.JournalEntry) error {
			captured = entry
			return nil
		})

	r := recorder.New(dataStore, nil, jsonCodec, jcsCodec, 0)
	op := makeOperation()
	require.NoError(t, r.Committed(op))

	require.NotNil(t, captured)
	assert.Equal(t, genesis.OpMint, captured.Operation)
	assert.Equal(t, caller.Hex(), captured.Caller)
	assert.Equal(t, origin.Hex(), captured.Origin)
	assert.Equal(t, "12345", captured.Value)
	assert.JSONEq(t, `{"amount":2}`, string(captured.Params))
	assert.Equal(t, op.Timestamp, captured.OccurredAt)

	// The entry id is a valid ULID carrying the operation timestamp.
	id, err := ulid.Parse(captured.EntryID)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(op.Timestamp), id.Time())

	// The stored checksum matches an independent recomputation.
	checksum, err := recorder.EntryChecksum(jsonCodec, jcsCodec,
		captured.Operation, captured.Caller, captured.Origin, captured.Value,
		captured.Params, captured.OccurredAt)
	require.NoError(t, err)
	assert.Equal(t, checksum, captured.Checksum)
}

func TestCommitted_NilValueAndParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	dataStore := mocks.NewMockStore(ctrl)

	var captured *schema.JournalEntry
	dataStore.EXPECT().
		AppendJournalEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *schema.JournalEntry) error {
			captured = entry
			return nil
		})

	r := recorder.New(dataStore, nil, adapter.NewJSON(), adapter.NewJCS(), 0)
	op := genesis.Operation{
		Name:      genesis.OpStartStage1,
		Caller:    caller,
		Origin:    caller,
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, r.Committed(op))

	require.NotNil(t, captured)
	assert.Equal(t, "0", captured.Value)
	assert.JSONEq(t, `{}`, string(captured.Params))
}

func TestCommitted_StoreFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	dataStore := mocks.NewMockStore(ctrl)

	storeErr := errors.New("connection refused")
	dataStore.EXPECT().
		AppendJournalEntry(gomock.Any(), gomock.Any()).
		Return(storeErr)

	r := recorder.New(dataStore, nil, adapter.NewJSON(), adapter.NewJCS(), 0)
	err := r.Committed(makeOperation())
	assert.ErrorIs(t, err, storeErr)
	assert.Contains(t, err.Error(), genesis.OpMint)
}

func TestEntryChecksum_SensitiveToEveryField(t *testing.T) {
	jsonCodec := adapter.NewJSON()
	jcsCodec := adapter.NewJCS()
	occurredAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	params := []byte(`{"amount":2}`)

	base, err := recorder.EntryChecksum(jsonCodec, jcsCodec, "mint", caller.Hex(), origin.Hex(), "100", params, occurredAt)
	require.NoError(t, err)

	same, err := recorder.EntryChecksum(jsonCodec, jcsCodec, "mint", caller.Hex(), origin.Hex(), "100", params, occurredAt)
	require.NoError(t, err)
	assert.Equal(t, base, same)

	mutations := []struct {
		name     string
		checksum func() (string, error)
	}{
		{"operation", func() (string, error) {
			return recorder.EntryChecksum(jsonCodec, jcsCodec, "burn", caller.Hex(), origin.Hex(), "100", params, occurredAt)
		}},
		{"value", func() (string, error) {
			return recorder.EntryChecksum(jsonCodec, jcsCodec, "mint", caller.Hex(), origin.Hex(), "101", params, occurredAt)
		}},
		{"params", func() (string, error) {
			return recorder.EntryChecksum(jsonCodec, jcsCodec, "mint", caller.Hex(), origin.Hex(), "100", []byte(`{"amount":3}`), occurredAt)
		}},
		{"timestamp", func() (string, error) {
			return recorder.EntryChecksum(jsonCodec, jcsCodec, "mint", caller.Hex(), origin.Hex(), "100", params, occurredAt.Add(time.Second))
		}},
	}
	for _, m := range mutations {
		mutated, err := m.checksum()
		require.NoError(t, err)
		assert.NotEqual(t, base, mutated, m.name)
	}

	// Key order inside params does not matter after canonicalization.
	reordered, err := recorder.EntryChecksum(jsonCodec, jcsCodec, "mint", caller.Hex(), origin.Hex(), "100", []byte(`{ "amount": 2 }`), occurredAt)
	require.NoError(t, err)
	assert.Equal(t, base, reordered)
}
