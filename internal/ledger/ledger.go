package ledger

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/genesis-ledger/internal/adapter"
	"github.com/feral-file/genesis-ledger/internal/domain"
	"github.com/feral-file/genesis-ledger/internal/journal"
)

// Slot is an explicitly written ownership record. The slot table is sparse:
// within a run of ids minted to the same account only the first id carries a
// slot, and every id whose predecessor was transferred or burned carries one.
// All other ids resolve through the backward scan in OwnerOf.
type Slot struct {
	Owner          common.Address
	StartTimestamp time.Time
	Burned         bool
}

// Account aggregates per-address counters. Balance counts currently owned,
// non-burned tokens and must always equal the number of ids resolving to the
// address.
type Account struct {
	Balance      uint64
	NumberMinted uint64
	NumberBurned uint64
}

// approvalKey identifies an operator-for-all grant
type approvalKey struct {
	owner    common.Address
	operator common.Address
}

// TransferGuard vetoes ordinary transfers and burns. Overlays register guards
// at construction; a burn is presented as a transfer to the zero address.
type TransferGuard func(tokenID uint64, from, to common.Address, opts TransferOptions) error

// Config holds ledger configuration
type Config struct {
	// MaxSupply is the fixed total-supply ceiling. Token ids run [1, MaxSupply].
	MaxSupply uint64
}

// Ledger is the storage-compacted sequential ownership ledger. All mutating
// operations record compensating closures in the shared journal, so a failed
// call (at any nesting depth) leaves the ledger untouched.
type Ledger struct {
	cfg   Config
	clock adapter.Clock
	jrnl  *journal.Journal

	cursor uint64 // next unassigned token id, starts at 1, only increases
	burned uint64

	slots             map[uint64]Slot
	accounts          map[common.Address]Account
	tokenApprovals    map[uint64]common.Address
	operatorApprovals map[approvalKey]bool

	receivers map[common.Address]Receiver
	guards    []TransferGuard
}

// New creates an empty ledger sharing the given journal
func New(cfg Config, clock adapter.Clock, jrnl *journal.Journal) *Ledger {
	return &Ledger{
		cfg:               cfg,
		clock:             clock,
		jrnl:              jrnl,
		cursor:            1,
		slots:             make(map[uint64]Slot),
		accounts:          make(map[common.Address]Account),
		tokenApprovals:    make(map[uint64]common.Address),
		operatorApprovals: make(map[approvalKey]bool),
		receivers:         make(map[common.Address]Receiver),
	}
}

// SetReceiver registers the acknowledgement capability for an address.
// Passing nil removes the capability. The capability is decided here, at the
// registration site, never by runtime inspection of the recipient.
func (l *Ledger) SetReceiver(addr common.Address, r Receiver) {
	if r == nil {
		delete(l.receivers, addr)
		return
	}
	l.receivers[addr] = r
}

// AddTransferGuard registers a veto hook run before every transfer and burn
func (l *Ledger) AddTransferGuard(g TransferGuard) {
	l.guards = append(l.guards, g)
}

// Cursor returns the next unassigned token id
func (l *Ledger) Cursor() uint64 {
	return l.cursor
}

// MaxSupply returns the fixed supply ceiling
func (l *Ledger) MaxSupply() uint64 {
	return l.cfg.MaxSupply
}

// TotalMinted returns the number of ids ever assigned
func (l *Ledger) TotalMinted() uint64 {
	return l.cursor - 1
}

// TotalSupply returns the number of live (minted, non-burned) tokens
func (l *Ledger) TotalSupply() uint64 {
	return l.cursor - 1 - l.burned
}

// BalanceOf returns the number of tokens currently owned by an address
func (l *Ledger) BalanceOf(addr common.Address) (uint64, error) {
	if domain.IsZeroAddress(addr) {
		return 0, domain.ErrZeroAddressTarget
	}
	return l.accounts[addr].Balance, nil
}

// NumberMinted returns how many tokens an address has ever minted
func (l *Ledger) NumberMinted(addr common.Address) uint64 {
	return l.accounts[addr].NumberMinted
}

// NumberBurned returns how many tokens an address has burned
func (l *Ledger) NumberBurned(addr common.Address) uint64 {
	return l.accounts[addr].NumberBurned
}

// Exists reports whether a token id resolves to a live owner
func (l *Ledger) Exists(tokenID uint64) bool {
	_, err := l.OwnerOf(tokenID)
	return err == nil
}

// OwnerOf resolves the current owner of a token by backward-scan compaction:
// starting at tokenID, walk back to the nearest explicitly written slot. The
// forward-propagation writes in transfer and burn guarantee the scan never
// crosses an ownership boundary, so its cost is bounded by the size of the
// batch the token was minted in.
func (l *Ledger) OwnerOf(tokenID uint64) (common.Address, error) {
	slot, err := l.resolve(tokenID)
	if err != nil {
		return common.Address{}, err
	}
	return slot.Owner, nil
}

// StartTimestamp returns the timestamp of the token's current ownership segment
func (l *Ledger) StartTimestamp(tokenID uint64) (time.Time, error) {
	slot, err := l.resolve(tokenID)
	if err != nil {
		return time.Time{}, err
	}
	return slot.StartTimestamp, nil
}

func (l *Ledger) resolve(tokenID uint64) (Slot, error) {
	if tokenID == 0 || tokenID >= l.cursor {
		return Slot{}, domain.ErrNonexistentToken
	}
	for cur := tokenID; cur >= 1; cur-- {
		slot, ok := l.slots[cur]
		if !ok {
			continue
		}
		if slot.Burned {
			return Slot{}, domain.ErrNonexistentToken
		}
		return slot, nil
	}
	// Unreachable while the mint invariant holds: every assigned range starts
	// with an explicit slot.
	return Slot{}, domain.ErrNonexistentToken
}

// Mint reserves the contiguous id range [cursor, cursor+quantity) for the
// recipient, writing one explicit slot at the first id only. If the recipient
// carries the acknowledgement capability, the callback is invoked for every id
// in increasing order; any refusal or reentrant cursor mutation fails the whole
// call with every effect rolled back. The cursor advances only after all
// acknowledgements succeed.
func (l *Ledger) Mint(operator, to common.Address, quantity uint64) (first, last uint64, err error) {
	frame := l.jrnl.Begin()
	defer func() {
		if err != nil {
			l.jrnl.Revert(frame)
		} else {
			l.jrnl.Commit(frame)
		}
	}()

	if domain.IsZeroAddress(to) {
		return 0, 0, domain.ErrZeroAddressTarget
	}
	if quantity == 0 {
		return 0, 0, domain.ErrQuantityZero
	}
	if l.cursor-1+quantity > l.cfg.MaxSupply {
		return 0, 0, domain.ErrSupplyExceeded
	}

	first = l.cursor
	last = first + quantity - 1

	l.setSlot(first, Slot{Owner: to, StartTimestamp: l.clock.Now()})

	acct := l.accounts[to]
	acct.Balance += quantity
	acct.NumberMinted += quantity
	l.setAccount(to, acct)

	if receiver, ok := l.receivers[to]; ok {
		snapshot := l.cursor
		for id := first; id <= last; id++ {
			if ackErr := receiver.OnTokenReceived(operator, domain.ZeroAddress, id); ackErr != nil {
				return 0, 0, fmt.Errorf("%w: token %d: %v", domain.ErrReceiverRefused, id, ackErr)
			}
			// The callback had full access to the public operations; a moved
			// cursor means it re-entered mint.
			if l.cursor != snapshot {
				return 0, 0, domain.ErrReentrancyDetected
			}
		}
	}

	l.setCursor(first + quantity)
	return first, last, nil
}

// Transfer moves a single token. The caller must be the resolved owner, an
// operator-for-all, or the token's approved address, unless the call is the
// privileged loan-return path. Registered guards may veto the move before any
// state changes.
func (l *Ledger) Transfer(caller, from, to common.Address, tokenID uint64, opts ...TransferOption) (err error) {
	frame := l.jrnl.Begin()
	defer func() {
		if err != nil {
			l.jrnl.Revert(frame)
		} else {
			l.jrnl.Commit(frame)
		}
	}()

	o := applyOptions(opts)

	slot, err := l.resolve(tokenID)
	if err != nil {
		return err
	}
	if slot.Owner != from {
		return domain.ErrNotOwnerOrApproved
	}
	if domain.IsZeroAddress(to) {
		return domain.ErrZeroAddressTarget
	}
	if !o.Privileged && !l.mayMove(caller, slot.Owner, tokenID) {
		return domain.ErrNotOwnerOrApproved
	}

	for _, guard := range l.guards {
		if err := guard(tokenID, from, to, o); err != nil {
			return err
		}
	}

	l.clearTokenApproval(tokenID)
	l.moveBalance(from, to)
	l.setSlot(tokenID, Slot{Owner: to, StartTimestamp: l.clock.Now()})
	l.propagateForward(tokenID, slot)

	if o.Acknowledge {
		if receiver, ok := l.receivers[to]; ok {
			if ackErr := receiver.OnTokenReceived(caller, from, tokenID); ackErr != nil {
				return fmt.Errorf("%w: token %d: %v", domain.ErrReceiverRefused, tokenID, ackErr)
			}
		}
	}

	return nil
}

// Burn retires a token. The slot keeps the previous owner so it still serves
// the forward-propagation chain, with the burned flag marking it dead.
func (l *Ledger) Burn(caller common.Address, tokenID uint64, opts ...TransferOption) (err error) {
	frame := l.jrnl.Begin()
	defer func() {
		if err != nil {
			l.jrnl.Revert(frame)
		} else {
			l.jrnl.Commit(frame)
		}
	}()

	o := applyOptions(opts)

	slot, err := l.resolve(tokenID)
	if err != nil {
		return err
	}
	from := slot.Owner
	if !o.Privileged && !l.mayMove(caller, from, tokenID) {
		return domain.ErrNotOwnerOrApproved
	}

	for _, guard := range l.guards {
		if err := guard(tokenID, from, domain.ZeroAddress, o); err != nil {
			return err
		}
	}

	l.clearTokenApproval(tokenID)

	acct := l.accounts[from]
	acct.Balance--
	acct.NumberBurned++
	l.setAccount(from, acct)
	l.setBurnedCounter(l.burned + 1)

	l.setSlot(tokenID, Slot{Owner: from, StartTimestamp: l.clock.Now(), Burned: true})
	l.propagateForward(tokenID, slot)

	return nil
}

// Approve grants a single-operator approval for one token. The approval is
// cleared on every ownership change. Approving the zero address clears it.
func (l *Ledger) Approve(caller, to common.Address, tokenID uint64) (err error) {
	frame := l.jrnl.Begin()
	defer func() {
		if err != nil {
			l.jrnl.Revert(frame)
		} else {
			l.jrnl.Commit(frame)
		}
	}()

	owner, err := l.OwnerOf(tokenID)
	if err != nil {
		return err
	}
	if caller != owner && !l.operatorApprovals[approvalKey{owner: owner, operator: caller}] {
		return domain.ErrNotOwnerOrApproved
	}

	l.setTokenApproval(tokenID, to)
	return nil
}

// GetApproved returns the approved address for a token, or the zero address
func (l *Ledger) GetApproved(tokenID uint64) (common.Address, error) {
	if _, err := l.resolve(tokenID); err != nil {
		return common.Address{}, err
	}
	return l.tokenApprovals[tokenID], nil
}

// SetApprovalForAll grants or revokes an operator over all of the caller's tokens
func (l *Ledger) SetApprovalForAll(caller, operator common.Address, approved bool) (err error) {
	frame := l.jrnl.Begin()
	defer func() {
		if err != nil {
			l.jrnl.Revert(frame)
		} else {
			l.jrnl.Commit(frame)
		}
	}()

	if caller == operator {
		return domain.ErrNotOwnerOrApproved
	}

	key := approvalKey{owner: caller, operator: operator}
	prev, existed := l.operatorApprovals[key]
	l.jrnl.Record(func() {
		if existed {
			l.operatorApprovals[key] = prev
		} else {
			delete(l.operatorApprovals, key)
		}
	})
	if approved {
		l.operatorApprovals[key] = true
	} else {
		delete(l.operatorApprovals, key)
	}
	return nil
}

// IsApprovedForAll reports whether the operator may move all of owner's tokens
func (l *Ledger) IsApprovedForAll(owner, operator common.Address) bool {
	return l.operatorApprovals[approvalKey{owner: owner, operator: operator}]
}

func (l *Ledger) mayMove(caller, owner common.Address, tokenID uint64) bool {
	if caller == owner {
		return true
	}
	if l.operatorApprovals[approvalKey{owner: owner, operator: caller}] {
		return true
	}
	return l.tokenApprovals[tokenID] == caller
}

// propagateForward writes an explicit slot for tokenID+1 when it is still
// implicit, preserving the previous ownership segment for the backward scan.
// This write is load-bearing: without it the next id would resolve to the new
// owner of tokenID.
func (l *Ledger) propagateForward(tokenID uint64, prev Slot) {
	next := tokenID + 1
	if next >= l.cursor {
		return
	}
	if _, ok := l.slots[next]; ok {
		return
	}
	l.setSlot(next, Slot{Owner: prev.Owner, StartTimestamp: prev.StartTimestamp})
}

func (l *Ledger) moveBalance(from, to common.Address) {
	fromAcct := l.accounts[from]
	fromAcct.Balance--
	l.setAccount(from, fromAcct)

	toAcct := l.accounts[to]
	toAcct.Balance++
	l.setAccount(to, toAcct)
}

// Journaled setters. Every mutation goes through one of these so a revert of
// the enclosing frame restores the exact prior state.

func (l *Ledger) setSlot(id uint64, s Slot) {
	prev, existed := l.slots[id]
	l.jrnl.Record(func() {
		if existed {
			l.slots[id] = prev
		} else {
			delete(l.slots, id)
		}
	})
	l.slots[id] = s
}

func (l *Ledger) setAccount(addr common.Address, a Account) {
	prev, existed := l.accounts[addr]
	l.jrnl.Record(func() {
		if existed {
			l.accounts[addr] = prev
		} else {
			delete(l.accounts, addr)
		}
	})
	l.accounts[addr] = a
}

func (l *Ledger) setCursor(c uint64) {
	prev := l.cursor
	l.jrnl.Record(func() { l.cursor = prev })
	l.cursor = c
}

func (l *Ledger) setBurnedCounter(b uint64) {
	prev := l.burned
	l.jrnl.Record(func() { l.burned = prev })
	l.burned = b
}

func (l *Ledger) setTokenApproval(id uint64, to common.Address) {
	prev, existed := l.tokenApprovals[id]
	l.jrnl.Record(func() {
		if existed {
			l.tokenApprovals[id] = prev
		} else {
			delete(l.tokenApprovals, id)
		}
	})
	if domain.IsZeroAddress(to) {
		delete(l.tokenApprovals, id)
	} else {
		l.tokenApprovals[id] = to
	}
}

func (l *Ledger) clearTokenApproval(id uint64) {
	if _, ok := l.tokenApprovals[id]; ok {
		l.setTokenApproval(id, domain.ZeroAddress)
	}
}
