package genesis

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"github.com/feral-file/genesis-ledger/internal/domain"
	"github.com/feral-file/genesis-ledger/internal/ledger"
)

// Operation names, as recorded in the persisted journal
const (
	OpMint                    = "mint"
	OpStartStage1             = "start_stage1"
	OpStartStage2             = "start_stage2"
	OpStartStage3             = "start_stage3"
	OpSetAllowlistRoot        = "set_allowlist_root"
	OpSetPaused               = "set_paused"
	OpReveal                  = "reveal"
	OpApprove                 = "approve"
	OpSetApprovalForAll       = "set_approval_for_all"
	OpTransferFrom            = "transfer_from"
	OpSafeTransferFrom        = "safe_transfer_from"
	OpBurn                    = "burn"
	OpLoan                    = "loan"
	OpRetrieveLoan            = "retrieve_loan"
	OpLeveledTransfer         = "leveled_transfer"
	OpWithdraw                = "withdraw"
	OpChangeRoyaltyRecipient  = "change_royalty_recipient"
	OpChangeRoyaltyPercentage = "change_royalty_percentage"
)

// Operation payloads. These are the exact parameters needed to re-execute the
// call during journal replay.

type MintParams struct {
	Proof  []string `json:"proof,omitempty"`
	Amount uint64   `json:"amount"`
}

type TransferParams struct {
	From    string `json:"from"`
	To      string `json:"to"`
	TokenID uint64 `json:"token_id"`
}

type ApproveParams struct {
	To      string `json:"to"`
	TokenID uint64 `json:"token_id"`
}

type ApprovalForAllParams struct {
	Operator string `json:"operator"`
	Approved bool   `json:"approved"`
}

type RootParams struct {
	Root string `json:"root"`
}

type FlagParams struct {
	Enabled bool `json:"enabled"`
}

type TokenParams struct {
	TokenID uint64 `json:"token_id"`
}

type LoanParams struct {
	TokenID  uint64 `json:"token_id"`
	Receiver string `json:"receiver"`
}

type RoyaltyRecipientParams struct {
	Recipient string `json:"recipient"`
}

type RoyaltyPercentageParams struct {
	Percentage uint64 `json:"percentage"`
}

// Mint is the public, payable mint entry point. Authorization is delegated to
// the sale controller; the attached value is credited to the vault once the
// mint goes through.
func (c *Contract) Mint(call domain.Call, proof []common.Hash, amount uint64) (first, last uint64, err error) {
	proofHex := make([]string, len(proof))
	for i, p := range proof {
		proofHex[i] = p.Hex()
	}

	err = c.run(call, OpMint, MintParams{Proof: proofHex, Amount: amount}, func() ([]domain.LedgerEvent, error) {
		first, last, err = c.sales.Mint(call, proof, amount)
		if err != nil {
			return nil, err
		}
		c.creditVault(call.AttachedValue())

		return []domain.LedgerEvent{{
			EventID:   uuid.NewString(),
			EventType: domain.EventTypeMint,
			TokenID:   first,
			ToTokenID: last,
			ToAddress: addressString(call.Caller),
			Quantity:  amount,
			Caller:    call.Caller.Hex(),
			Timestamp: c.clock.Now(),
		}}, nil
	})
	if err != nil {
		return 0, 0, err
	}
	return first, last, nil
}

// StartStage1 opens the first sale stage
func (c *Contract) StartStage1(call domain.Call) error {
	return c.run(call, OpStartStage1, nil, func() ([]domain.LedgerEvent, error) {
		if err := c.requireOwner(call); err != nil {
			return nil, err
		}
		return nil, c.sales.StartStage1()
	})
}

// StartStage2 opens the allowlist stage
func (c *Contract) StartStage2(call domain.Call) error {
	return c.run(call, OpStartStage2, nil, func() ([]domain.LedgerEvent, error) {
		if err := c.requireOwner(call); err != nil {
			return nil, err
		}
		return nil, c.sales.StartStage2()
	})
}

// StartStage3 opens the open stage
func (c *Contract) StartStage3(call domain.Call) error {
	return c.run(call, OpStartStage3, nil, func() ([]domain.LedgerEvent, error) {
		if err := c.requireOwner(call); err != nil {
			return nil, err
		}
		return nil, c.sales.StartStage3()
	})
}

// SetAllowlistRoot replaces the committed Stage2 Merkle root
func (c *Contract) SetAllowlistRoot(call domain.Call, root common.Hash) error {
	return c.run(call, OpSetAllowlistRoot, RootParams{Root: root.Hex()}, func() ([]domain.LedgerEvent, error) {
		if err := c.requireOwner(call); err != nil {
			return nil, err
		}
		c.sales.SetAllowlistRoot(root)
		return nil, nil
	})
}

// SetPaused toggles the mint pause switch
func (c *Contract) SetPaused(call domain.Call, paused bool) error {
	return c.run(call, OpSetPaused, FlagParams{Enabled: paused}, func() ([]domain.LedgerEvent, error) {
		if err := c.requireOwner(call); err != nil {
			return nil, err
		}
		c.sales.SetPaused(paused)
		return nil, nil
	})
}

// Reveal toggles whether token URIs resolve to tier URIs
func (c *Contract) Reveal(call domain.Call, revealed bool) error {
	return c.run(call, OpReveal, FlagParams{Enabled: revealed}, func() ([]domain.LedgerEvent, error) {
		if err := c.requireOwner(call); err != nil {
			return nil, err
		}
		prev := c.revealed
		c.jrnl.Record(func() { c.revealed = prev })
		c.revealed = revealed
		return nil, nil
	})
}

// Approve grants a single-token approval
func (c *Contract) Approve(call domain.Call, to common.Address, tokenID uint64) error {
	return c.run(call, OpApprove, ApproveParams{To: to.Hex(), TokenID: tokenID}, func() ([]domain.LedgerEvent, error) {
		return nil, c.ledger.Approve(call.Caller, to, tokenID)
	})
}

// SetApprovalForAll grants or revokes an operator over all the caller's tokens
func (c *Contract) SetApprovalForAll(call domain.Call, operator common.Address, approved bool) error {
	params := ApprovalForAllParams{Operator: operator.Hex(), Approved: approved}
	return c.run(call, OpSetApprovalForAll, params, func() ([]domain.LedgerEvent, error) {
		return nil, c.ledger.SetApprovalForAll(call.Caller, operator, approved)
	})
}

// TransferFrom moves a token without the receiver acknowledgement callback
func (c *Contract) TransferFrom(call domain.Call, from, to common.Address, tokenID uint64) error {
	return c.transfer(call, OpTransferFrom, from, to, tokenID)
}

// SafeTransferFrom moves a token and invokes the recipient's acknowledgement
// callback when the recipient carries the capability.
func (c *Contract) SafeTransferFrom(call domain.Call, from, to common.Address, tokenID uint64) error {
	return c.transfer(call, OpSafeTransferFrom, from, to, tokenID, ledger.Acknowledge())
}

func (c *Contract) transfer(call domain.Call, name string, from, to common.Address, tokenID uint64, opts ...ledger.TransferOption) error {
	params := TransferParams{From: from.Hex(), To: to.Hex(), TokenID: tokenID}
	return c.run(call, name, params, func() ([]domain.LedgerEvent, error) {
		if err := c.ledger.Transfer(call.Caller, from, to, tokenID, opts...); err != nil {
			return nil, err
		}
		return []domain.LedgerEvent{{
			EventID:     uuid.NewString(),
			EventType:   domain.EventTypeTransfer,
			TokenID:     tokenID,
			FromAddress: addressString(from),
			ToAddress:   addressString(to),
			Quantity:    1,
			Caller:      call.Caller.Hex(),
			Timestamp:   c.clock.Now(),
		}}, nil
	})
}

// Burn retires a token owned or approved to the caller
func (c *Contract) Burn(call domain.Call, tokenID uint64) error {
	return c.run(call, OpBurn, TokenParams{TokenID: tokenID}, func() ([]domain.LedgerEvent, error) {
		from, err := c.ledger.OwnerOf(tokenID)
		if err != nil {
			return nil, err
		}
		if err := c.ledger.Burn(call.Caller, tokenID); err != nil {
			return nil, err
		}
		return []domain.LedgerEvent{{
			EventID:     uuid.NewString(),
			EventType:   domain.EventTypeBurn,
			TokenID:     tokenID,
			FromAddress: addressString(from),
			Quantity:    1,
			Caller:      call.Caller.Hex(),
			Timestamp:   c.clock.Now(),
		}}, nil
	})
}

// Loan escrows a token with a receiver while recording the caller as lender
func (c *Contract) Loan(call domain.Call, tokenID uint64, receiver common.Address) error {
	params := LoanParams{TokenID: tokenID, Receiver: receiver.Hex()}
	return c.run(call, OpLoan, params, func() ([]domain.LedgerEvent, error) {
		if err := c.loans.Loan(call.Caller, tokenID, receiver); err != nil {
			return nil, err
		}
		return []domain.LedgerEvent{{
			EventID:     uuid.NewString(),
			EventType:   domain.EventTypeLoan,
			TokenID:     tokenID,
			FromAddress: addressString(call.Caller),
			ToAddress:   addressString(receiver),
			Quantity:    1,
			Caller:      call.Caller.Hex(),
			Timestamp:   c.clock.Now(),
		}}, nil
	})
}

// RetrieveLoan returns a loaned token to the calling lender
func (c *Contract) RetrieveLoan(call domain.Call, tokenID uint64) error {
	return c.run(call, OpRetrieveLoan, TokenParams{TokenID: tokenID}, func() ([]domain.LedgerEvent, error) {
		borrower, err := c.ledger.OwnerOf(tokenID)
		if err != nil {
			return nil, err
		}
		if err := c.loans.Retrieve(call.Caller, tokenID); err != nil {
			return nil, err
		}
		return []domain.LedgerEvent{{
			EventID:     uuid.NewString(),
			EventType:   domain.EventTypeLoanRetrieval,
			TokenID:     tokenID,
			FromAddress: addressString(borrower),
			ToAddress:   addressString(call.Caller),
			Quantity:    1,
			Caller:      call.Caller.Hex(),
			Timestamp:   c.clock.Now(),
		}}, nil
	})
}

// LeveledTransfer moves a token while banking its elapsed level and restarting
// its clock under the new owner. The leveling marker is threaded through the
// transfer options for this call only and every other guard still applies.
func (c *Contract) LeveledTransfer(call domain.Call, from, to common.Address, tokenID uint64) error {
	params := TransferParams{From: from.Hex(), To: to.Hex(), TokenID: tokenID}
	return c.run(call, OpLeveledTransfer, params, func() ([]domain.LedgerEvent, error) {
		owner, err := c.ledger.OwnerOf(tokenID)
		if err != nil {
			return nil, err
		}
		if call.Caller != owner {
			return nil, domain.ErrNotOwnerOrApproved
		}
		if err := c.ledger.Transfer(call.Caller, from, to, tokenID, ledger.Leveling()); err != nil {
			return nil, err
		}
		c.levels.Bank(tokenID)

		return []domain.LedgerEvent{{
			EventID:     uuid.NewString(),
			EventType:   domain.EventTypeLeveledTransfer,
			TokenID:     tokenID,
			FromAddress: addressString(from),
			ToAddress:   addressString(to),
			Quantity:    1,
			Caller:      call.Caller.Hex(),
			Timestamp:   c.clock.Now(),
		}}, nil
	})
}

// Withdraw sweeps the accumulated payment balance to the owner
func (c *Contract) Withdraw(call domain.Call) (*uint256.Int, error) {
	var swept *uint256.Int
	err := c.run(call, OpWithdraw, nil, func() ([]domain.LedgerEvent, error) {
		if err := c.requireOwner(call); err != nil {
			return nil, err
		}
		swept = c.sweepVault()
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return swept, nil
}

// ChangeRoyaltyRecipient replaces the royalty recipient
func (c *Contract) ChangeRoyaltyRecipient(call domain.Call, recipient common.Address) error {
	params := RoyaltyRecipientParams{Recipient: recipient.Hex()}
	return c.run(call, OpChangeRoyaltyRecipient, params, func() ([]domain.LedgerEvent, error) {
		if err := c.requireOwner(call); err != nil {
			return nil, err
		}
		prev := c.royalty.Recipient()
		c.jrnl.Record(func() { c.royalty.SetRecipient(prev) })
		c.royalty.SetRecipient(recipient)
		return nil, nil
	})
}

// ChangeRoyaltyPercentage replaces the royalty percentage
func (c *Contract) ChangeRoyaltyPercentage(call domain.Call, percentage uint64) error {
	params := RoyaltyPercentageParams{Percentage: percentage}
	return c.run(call, OpChangeRoyaltyPercentage, params, func() ([]domain.LedgerEvent, error) {
		if err := c.requireOwner(call); err != nil {
			return nil, err
		}
		prev := c.royalty.Percentage()
		c.jrnl.Record(func() {
			_ = c.royalty.SetPercentage(prev)
		})
		return nil, c.royalty.SetPercentage(percentage)
	})
}
