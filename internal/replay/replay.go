// Package replay rebuilds in-memory contract state from the persisted
// journal. Entries are applied in commit order with the clock pinned to each
// entry's recorded timestamp, so time-sensitive rules (stage windows,
// cooldowns, leveling) resolve exactly as they did when first executed.
package replay

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/feral-file/genesis-ledger/internal/adapter"
	"github.com/feral-file/genesis-ledger/internal/domain"
	"github.com/feral-file/genesis-ledger/internal/genesis"
	"github.com/feral-file/genesis-ledger/internal/logger"
	"github.com/feral-file/genesis-ledger/internal/recorder"
	"github.com/feral-file/genesis-ledger/internal/store"
	"github.com/feral-file/genesis-ledger/internal/store/schema"
)

const defaultBatchSize = 500

// Engine replays journal entries against a freshly constructed contract.
// The contract must have no commit sink attached while replay runs; the
// caller attaches the live sink afterwards.
type Engine struct {
	store     store.Store
	contract  *genesis.Contract
	clock     *Clock
	json      adapter.JSON
	jcs       adapter.JCS
	batchSize int
}

// NewEngine creates a replay engine.
func NewEngine(s store.Store, contract *genesis.Contract, clock *Clock, json adapter.JSON, jcs adapter.JCS) *Engine {
	return &Engine{
		store:     s,
		contract:  contract,
		clock:     clock,
		json:      json,
		jcs:       jcs,
		batchSize: defaultBatchSize,
	}
}

// Run applies every journal entry in sequence order and returns the number of
// entries applied. Any decode, checksum, or execution failure aborts replay:
// a journal that no longer replays cleanly means the persisted history and
// the code disagree, and serving from a half-rebuilt state would be worse
// than refusing to start.
func (e *Engine) Run(ctx context.Context) (int, error) {
	defer e.clock.Unpin()

	applied := 0
	cursor := int64(0)
	for {
		entries, err := e.store.ListJournalEntries(ctx, cursor, e.batchSize)
		if err != nil {
			return applied, err
		}
		if len(entries) == 0 {
			break
		}

		for i := range entries {
			entry := &entries[i]
			if err := e.apply(entry); err != nil {
				return applied, fmt.Errorf("replay halted at entry %s (seq %d, op %s): %w",
					entry.EntryID, entry.Sequence, entry.Operation, err)
			}
			applied++
			cursor = entry.Sequence
		}
	}

	if applied > 0 {
		logger.Info("journal replay complete",
			zap.Int("entries", applied),
			zap.Uint64("total_supply", e.contract.TotalSupply()))
	}

	return applied, nil
}

func (e *Engine) apply(entry *schema.JournalEntry) error {
	if err := e.verifyChecksum(entry); err != nil {
		return err
	}

	call, err := buildCall(entry)
	if err != nil {
		return err
	}

	e.clock.Pin(entry.OccurredAt)

	switch entry.Operation {
	case genesis.OpMint:
		var p genesis.MintParams
		if err := e.json.Unmarshal(entry.Params, &p); err != nil {
			return fmt.Errorf("failed to decode params: %w", err)
		}
		proof := make([]common.Hash, len(p.Proof))
		for i, h := range p.Proof {
			proof[i] = common.HexToHash(h)
		}
		_, _, err := e.contract.Mint(call, proof, p.Amount)
		return err

	case genesis.OpStartStage1:
		return e.contract.StartStage1(call)
	case genesis.OpStartStage2:
		return e.contract.StartStage2(call)
	case genesis.OpStartStage3:
		return e.contract.StartStage3(call)

	case genesis.OpSetAllowlistRoot:
		var p genesis.RootParams
		if err := e.json.Unmarshal(entry.Params, &p); err != nil {
			return fmt.Errorf("failed to decode params: %w", err)
		}
		return e.contract.SetAllowlistRoot(call, common.HexToHash(p.Root))

	case genesis.OpSetPaused:
		var p genesis.FlagParams
		if err := e.json.Unmarshal(entry.Params, &p); err != nil {
			return fmt.Errorf("failed to decode params: %w", err)
		}
		return e.contract.SetPaused(call, p.Enabled)

	case genesis.OpReveal:
		var p genesis.FlagParams
		if err := e.json.Unmarshal(entry.Params, &p); err != nil {
			return fmt.Errorf("failed to decode params: %w", err)
		}
		return e.contract.Reveal(call, p.Enabled)

	case genesis.OpApprove:
		var p genesis.ApproveParams
		if err := e.json.Unmarshal(entry.Params, &p); err != nil {
			return fmt.Errorf("failed to decode params: %w", err)
		}
		return e.contract.Approve(call, common.HexToAddress(p.To), p.TokenID)

	case genesis.OpSetApprovalForAll:
		var p genesis.ApprovalForAllParams
		if err := e.json.Unmarshal(entry.Params, &p); err != nil {
			return fmt.Errorf("failed to decode params: %w", err)
		}
		return e.contract.SetApprovalForAll(call, common.HexToAddress(p.Operator), p.Approved)

	case genesis.OpTransferFrom:
		var p genesis.TransferParams
		if err := e.json.Unmarshal(entry.Params, &p); err != nil {
			return fmt.Errorf("failed to decode params: %w", err)
		}
		return e.contract.TransferFrom(call, common.HexToAddress(p.From), common.HexToAddress(p.To), p.TokenID)

	case genesis.OpSafeTransferFrom:
		var p genesis.TransferParams
		if err := e.json.Unmarshal(entry.Params, &p); err != nil {
			return fmt.Errorf("failed to decode params: %w", err)
		}
		return e.contract.SafeTransferFrom(call, common.HexToAddress(p.From), common.HexToAddress(p.To), p.TokenID)

	case genesis.OpBurn:
		var p genesis.TokenParams
		if err := e.json.Unmarshal(entry.Params, &p); err != nil {
			return fmt.Errorf("failed to decode params: %w", err)
		}
		return e.contract.Burn(call, p.TokenID)

	case genesis.OpLoan:
		var p genesis.LoanParams
		if err := e.json.Unmarshal(entry.Params, &p); err != nil {
			return fmt.Errorf("failed to decode params: %w", err)
		}
		return e.contract.Loan(call, p.TokenID, common.HexToAddress(p.Receiver))

	case genesis.OpRetrieveLoan:
		var p genesis.TokenParams
		if err := e.json.Unmarshal(entry.Params, &p); err != nil {
			return fmt.Errorf("failed to decode params: %w", err)
		}
		return e.contract.RetrieveLoan(call, p.TokenID)

	case genesis.OpLeveledTransfer:
		var p genesis.TransferParams
		if err := e.json.Unmarshal(entry.Params, &p); err != nil {
			return fmt.Errorf("failed to decode params: %w", err)
		}
		return e.contract.LeveledTransfer(call, common.HexToAddress(p.From), common.HexToAddress(p.To), p.TokenID)

	case genesis.OpWithdraw:
		_, err := e.contract.Withdraw(call)
		return err

	case genesis.OpChangeRoyaltyRecipient:
		var p genesis.RoyaltyRecipientParams
		if err := e.json.Unmarshal(entry.Params, &p); err != nil {
			return fmt.Errorf("failed to decode params: %w", err)
		}
		return e.contract.ChangeRoyaltyRecipient(call, common.HexToAddress(p.Recipient))

	case genesis.OpChangeRoyaltyPercentage:
		var p genesis.RoyaltyPercentageParams
		if err := e.json.Unmarshal(entry.Params, &p); err != nil {
			return fmt.Errorf("failed to decode params: %w", err)
		}
		return e.contract.ChangeRoyaltyPercentage(call, p.Percentage)

	default:
		return fmt.Errorf("unknown operation %q", entry.Operation)
	}
}

func (e *Engine) verifyChecksum(entry *schema.JournalEntry) error {
	want, err := recorder.EntryChecksum(e.json, e.jcs,
		entry.Operation, entry.Caller, entry.Origin, entry.Value, entry.Params, entry.OccurredAt)
	if err != nil {
		return err
	}
	if want != entry.Checksum {
		return fmt.Errorf("checksum mismatch: stored %s, computed %s", entry.Checksum, want)
	}
	return nil
}

func buildCall(entry *schema.JournalEntry) (domain.Call, error) {
	value, err := uint256.FromDecimal(entry.Value)
	if err != nil {
		return domain.Call{}, fmt.Errorf("invalid value %q: %w", entry.Value, err)
	}
	return domain.Call{
		Caller: common.HexToAddress(entry.Caller),
		Origin: common.HexToAddress(entry.Origin),
		Value:  value,
	}, nil
}
