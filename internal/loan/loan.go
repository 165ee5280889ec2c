package loan

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/genesis-ledger/internal/domain"
	"github.com/feral-file/genesis-ledger/internal/journal"
	"github.com/feral-file/genesis-ledger/internal/ledger"
)

// Overlay is the loan escrow bookkeeping. The presence of a record is itself
// the loaned flag: while it exists only the privileged retrieval path may move
// the token.
type Overlay struct {
	jrnl   *journal.Journal
	ledger *ledger.Ledger

	lenders map[uint64]common.Address
}

// New creates an empty loan overlay on top of a ledger
func New(l *ledger.Ledger, jrnl *journal.Journal) *Overlay {
	return &Overlay{
		jrnl:    jrnl,
		ledger:  l,
		lenders: make(map[uint64]common.Address),
	}
}

// Guard returns the transfer veto hook: any movement of a loaned token fails.
// The retrieval path deletes the record before transferring, so it never trips
// its own guard; a failed retrieval restores the record on rollback.
func (o *Overlay) Guard() ledger.TransferGuard {
	return func(tokenID uint64, from, to common.Address, opts ledger.TransferOptions) error {
		if _, loaned := o.lenders[tokenID]; loaned {
			return domain.ErrLoanStateViolation
		}
		return nil
	}
}

// Loaned reports whether the token is currently out on loan
func (o *Overlay) Loaned(tokenID uint64) bool {
	_, ok := o.lenders[tokenID]
	return ok
}

// Lender returns the recorded lender for a loaned token
func (o *Overlay) Lender(tokenID uint64) (common.Address, bool) {
	lender, ok := o.lenders[tokenID]
	return lender, ok
}

// Loan transfers the token to the receiver and records the caller as lender.
// The caller must be the current resolved owner; the receiver must be a
// different, non-zero account; the token must not already be on loan.
func (o *Overlay) Loan(caller common.Address, tokenID uint64, receiver common.Address) (err error) {
	frame := o.jrnl.Begin()
	defer func() {
		if err != nil {
			o.jrnl.Revert(frame)
		} else {
			o.jrnl.Commit(frame)
		}
	}()

	owner, err := o.ledger.OwnerOf(tokenID)
	if err != nil {
		return err
	}
	if caller != owner {
		return domain.ErrNotOwnerOrApproved
	}
	if domain.IsZeroAddress(receiver) {
		return domain.ErrZeroAddressTarget
	}
	if receiver == caller {
		return domain.ErrLoanStateViolation
	}
	if _, loaned := o.lenders[tokenID]; loaned {
		return domain.ErrLoanStateViolation
	}

	if err := o.ledger.Transfer(caller, caller, receiver, tokenID); err != nil {
		return err
	}

	o.setLender(tokenID, caller)
	return nil
}

// Retrieve returns a loaned token to its lender through the privileged
// transfer path, bypassing the owner/approval check that the lender would
// otherwise fail.
func (o *Overlay) Retrieve(caller common.Address, tokenID uint64) (err error) {
	frame := o.jrnl.Begin()
	defer func() {
		if err != nil {
			o.jrnl.Revert(frame)
		} else {
			o.jrnl.Commit(frame)
		}
	}()

	lender, loaned := o.lenders[tokenID]
	if !loaned {
		return domain.ErrLoanStateViolation
	}
	if caller != lender {
		return domain.ErrLoanStateViolation
	}

	borrower, err := o.ledger.OwnerOf(tokenID)
	if err != nil {
		return err
	}
	if borrower == caller {
		return domain.ErrLoanStateViolation
	}

	o.deleteLender(tokenID)

	return o.ledger.Transfer(caller, borrower, lender, tokenID, ledger.Privileged())
}

func (o *Overlay) setLender(tokenID uint64, lender common.Address) {
	prev, existed := o.lenders[tokenID]
	o.jrnl.Record(func() {
		if existed {
			o.lenders[tokenID] = prev
		} else {
			delete(o.lenders, tokenID)
		}
	})
	o.lenders[tokenID] = lender
}

func (o *Overlay) deleteLender(tokenID uint64) {
	prev, existed := o.lenders[tokenID]
	o.jrnl.Record(func() {
		if existed {
			o.lenders[tokenID] = prev
		}
	})
	delete(o.lenders, tokenID)
}
