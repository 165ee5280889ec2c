package genesis

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/feral-file/genesis-ledger/internal/adapter"
	"github.com/feral-file/genesis-ledger/internal/domain"
	"github.com/feral-file/genesis-ledger/internal/journal"
	"github.com/feral-file/genesis-ledger/internal/ledger"
	"github.com/feral-file/genesis-ledger/internal/leveling"
	"github.com/feral-file/genesis-ledger/internal/loan"
	"github.com/feral-file/genesis-ledger/internal/royalty"
	"github.com/feral-file/genesis-ledger/internal/sale"
)

// Tier maps a minimum total level to a metadata URI. Tiers are sorted by
// MinLevel; a token resolves to the highest tier it has reached.
type Tier struct {
	MinLevel uint64 `json:"min_level" mapstructure:"min_level"`
	URI      string `json:"uri" mapstructure:"uri"`
}

// Config holds the contract construction parameters
type Config struct {
	Owner     common.Address
	MaxSupply uint64

	Sale sale.Config

	// LevelUnit is the duration of one level; zero defaults to one hour
	LevelUnit time.Duration

	PlaceholderURI string
	TierURIs       []Tier

	RoyaltyRecipient  common.Address
	RoyaltyPercentage uint64
}

// Operation describes one committed mutating call, handed to the commit sink
// for journaling and event publication before the call's effects become final.
type Operation struct {
	Name      string
	Caller    common.Address
	Origin    common.Address
	Value     *uint256.Int
	Timestamp time.Time
	Params    any
	Events    []domain.LedgerEvent
}

// CommitSink observes committed operations. It runs inside the call, before
// the journal frame commits; returning an error aborts the call and rolls all
// of its effects back.
type CommitSink interface {
	Committed(op Operation) error
}

// Contract composes the ownership ledger, the mint access controller and the
// loan and leveling overlays behind the public operation set. All mutating
// operations are serialized by a single mutex, matching the one-call-at-a-time
// execution model the components assume.
type Contract struct {
	mu    sync.Mutex
	cfg   Config
	clock adapter.Clock
	jrnl  *journal.Journal

	ledger  *ledger.Ledger
	sales   *sale.Controller
	loans   *loan.Overlay
	levels  *leveling.Clock
	royalty *royalty.Info

	revealed bool
	vault    *uint256.Int
	tiers    []Tier

	sink CommitSink
}

// New wires the components together around a shared journal
func New(cfg Config, clock adapter.Clock) (*Contract, error) {
	if domain.IsZeroAddress(cfg.Owner) {
		return nil, fmt.Errorf("contract owner must not be the zero address")
	}
	if cfg.MaxSupply == 0 {
		return nil, fmt.Errorf("max supply must be positive")
	}

	roy, err := royalty.New(cfg.RoyaltyRecipient, cfg.RoyaltyPercentage)
	if err != nil {
		return nil, err
	}

	jrnl := journal.New()
	led := ledger.New(ledger.Config{MaxSupply: cfg.MaxSupply}, clock, jrnl)
	levels := leveling.New(clock, jrnl, cfg.LevelUnit)
	loans := loan.New(led, jrnl)
	sales := sale.New(cfg.Sale, clock, jrnl, led, levels)

	led.AddTransferGuard(loans.Guard())
	led.AddTransferGuard(levels.Guard())

	tiers := make([]Tier, len(cfg.TierURIs))
	copy(tiers, cfg.TierURIs)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinLevel < tiers[j].MinLevel })

	return &Contract{
		cfg:     cfg,
		clock:   clock,
		jrnl:    jrnl,
		ledger:  led,
		sales:   sales,
		loans:   loans,
		levels:  levels,
		royalty: roy,
		vault:   uint256.NewInt(0),
		tiers:   tiers,
	}, nil
}

// SetCommitSink installs the persistence/event sink. Pass nil to detach it,
// e.g. while replaying a journal.
func (c *Contract) SetCommitSink(sink CommitSink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sink = sink
}

// SetReceiver registers an acknowledgement capability with the ledger
func (c *Contract) SetReceiver(addr common.Address, r ledger.Receiver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ledger.SetReceiver(addr, r)
}

// Owner returns the contract owner address
func (c *Contract) Owner() common.Address {
	return c.cfg.Owner
}

// OwnerOf resolves the current owner of a token
func (c *Contract) OwnerOf(tokenID uint64) (common.Address, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.OwnerOf(tokenID)
}

// StartTimestamp returns when the token's current ownership range began
func (c *Contract) StartTimestamp(tokenID uint64) (time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.StartTimestamp(tokenID)
}

// BalanceOf returns the number of tokens owned by an address
func (c *Contract) BalanceOf(addr common.Address) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.BalanceOf(addr)
}

// GetApproved returns the approved address for a token
func (c *Contract) GetApproved(tokenID uint64) (common.Address, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.GetApproved(tokenID)
}

// IsApprovedForAll reports whether operator may move all of owner's tokens
func (c *Contract) IsApprovedForAll(owner, operator common.Address) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.IsApprovedForAll(owner, operator)
}

// TotalSupply returns the number of live tokens
func (c *Contract) TotalSupply() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.TotalSupply()
}

// MaxSupply returns the fixed supply ceiling
func (c *Contract) MaxSupply() uint64 {
	return c.cfg.MaxSupply
}

// Stage returns the current sale stage
func (c *Contract) Stage() domain.SaleStage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sales.Stage()
}

// Paused reports whether minting is paused
func (c *Contract) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sales.Paused()
}

// Revealed reports whether token URIs resolve to tier URIs
func (c *Contract) Revealed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revealed
}

// AllowlistRoot returns the committed Stage2 Merkle root
func (c *Contract) AllowlistRoot() common.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sales.AllowlistRoot()
}

// VaultBalance returns the accumulated, unswept payment balance
func (c *Contract) VaultBalance() *uint256.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return new(uint256.Int).Set(c.vault)
}

// Loaned reports whether a token is out on loan
func (c *Contract) Loaned(tokenID uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loans.Loaned(tokenID)
}

// Lender returns the recorded lender for a loaned token
func (c *Contract) Lender(tokenID uint64) (common.Address, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loans.Lender(tokenID)
}

// GetLevelInfo returns the current and total level of a token
func (c *Contract) GetLevelInfo(tokenID uint64) (current, total uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.ledger.OwnerOf(tokenID); err != nil {
		return 0, 0, err
	}
	current, total = c.levels.LevelInfo(tokenID)
	return current, total, nil
}

// RoyaltyInfo computes the royalty due on a sale price
func (c *Contract) RoyaltyInfo(salePrice *uint256.Int) (common.Address, *uint256.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.royalty.RoyaltyInfo(salePrice)
}

// TokenURI returns the placeholder URI until reveal, afterwards the URI of the
// highest tier the token's total level has reached.
func (c *Contract) TokenURI(tokenID uint64) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.ledger.OwnerOf(tokenID); err != nil {
		return "", err
	}
	if !c.revealed {
		return c.cfg.PlaceholderURI, nil
	}

	_, total := c.levels.LevelInfo(tokenID)
	uri := c.cfg.PlaceholderURI
	for _, tier := range c.tiers {
		if total >= tier.MinLevel {
			uri = tier.URI
		}
	}
	return uri, nil
}

func (c *Contract) requireOwner(call domain.Call) error {
	if call.Caller != c.cfg.Owner {
		return domain.ErrNotContractOwner
	}
	return nil
}

// run executes a mutating operation under the contract lock with whole-call
// rollback. The commit sink runs before the frame commits so a persistence
// failure also rolls the call back.
func (c *Contract) run(call domain.Call, name string, params any, fn func() ([]domain.LedgerEvent, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	frame := c.jrnl.Begin()
	events, err := fn()
	if err != nil {
		c.jrnl.Revert(frame)
		return err
	}

	if c.sink != nil {
		op := Operation{
			Name:      name,
			Caller:    call.Caller,
			Origin:    call.Origin,
			Value:     call.AttachedValue(),
			Timestamp: c.clock.Now(),
			Params:    params,
			Events:    events,
		}
		if sinkErr := c.sink.Committed(op); sinkErr != nil {
			c.jrnl.Revert(frame)
			return fmt.Errorf("commit sink: %w", sinkErr)
		}
	}

	c.jrnl.Commit(frame)
	return nil
}

func (c *Contract) creditVault(value *uint256.Int) {
	prev := new(uint256.Int).Set(c.vault)
	c.jrnl.Record(func() { c.vault = prev })
	c.vault = new(uint256.Int).Add(c.vault, value)
}

func (c *Contract) sweepVault() *uint256.Int {
	prev := new(uint256.Int).Set(c.vault)
	c.jrnl.Record(func() { c.vault = prev })
	swept := c.vault
	c.vault = uint256.NewInt(0)
	return swept
}

func addressString(addr common.Address) *string {
	s := addr.Hex()
	return &s
}
