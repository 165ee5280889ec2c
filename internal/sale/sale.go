package sale

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/feral-file/genesis-ledger/internal/adapter"
	"github.com/feral-file/genesis-ledger/internal/domain"
	"github.com/feral-file/genesis-ledger/internal/journal"
	"github.com/feral-file/genesis-ledger/internal/ledger"
	"github.com/feral-file/genesis-ledger/internal/leveling"
	"github.com/feral-file/genesis-ledger/internal/merkle"
)

// Config holds the sale parameters fixed at construction
type Config struct {
	// Stage1Window is how long Stage1 minting stays open after it starts
	Stage1Window time.Duration
	// Stage2Window is how long Stage2 minting stays open after it starts
	Stage2Window time.Duration
	// StageCooldown is the minimum separation between stage starts
	StageCooldown time.Duration

	Stage1Cost *uint256.Int
	Stage2Cost *uint256.Int
	Stage3Cost *uint256.Int

	// MintRights are the per-address Stage1 allotments, fixed at construction
	MintRights map[common.Address]uint64

	// AllowlistRoot is the initial Stage2 Merkle root; replaceable later
	AllowlistRoot common.Hash
}

// Controller is the monotonic, time- and proof-gated minting state machine.
// Stage transitions only move forward; each stage applies its own quota,
// window and payment rules before authorizing a ledger mint.
type Controller struct {
	cfg    Config
	clock  adapter.Clock
	jrnl   *journal.Journal
	ledger *ledger.Ledger
	levels *leveling.Clock

	stage       domain.SaleStage
	stage1Start time.Time
	stage2Start time.Time
	paused      bool
	root        common.Hash

	stage1Minted map[common.Address]uint64
	stage2Minted map[common.Address]bool
	stage3Minted map[common.Address]bool
}

// New creates a controller in the StageNone state
func New(cfg Config, clock adapter.Clock, jrnl *journal.Journal, l *ledger.Ledger, levels *leveling.Clock) *Controller {
	return &Controller{
		cfg:          cfg,
		clock:        clock,
		jrnl:         jrnl,
		ledger:       l,
		levels:       levels,
		stage:        domain.StageNone,
		root:         cfg.AllowlistRoot,
		stage1Minted: make(map[common.Address]uint64),
		stage2Minted: make(map[common.Address]bool),
		stage3Minted: make(map[common.Address]bool),
	}
}

// Stage returns the current sale stage
func (c *Controller) Stage() domain.SaleStage {
	return c.stage
}

// Paused reports whether minting is paused
func (c *Controller) Paused() bool {
	return c.paused
}

// AllowlistRoot returns the committed Stage2 Merkle root
func (c *Controller) AllowlistRoot() common.Hash {
	return c.root
}

// MintRight returns the Stage1 allotment for an address
func (c *Controller) MintRight(addr common.Address) uint64 {
	return c.cfg.MintRights[addr]
}

// Stage1MintedBy returns how many Stage1 units an address has consumed
func (c *Controller) Stage1MintedBy(addr common.Address) uint64 {
	return c.stage1Minted[addr]
}

// StartStage1 opens Stage1 and records its start time
func (c *Controller) StartStage1() (err error) {
	frame := c.jrnl.Begin()
	defer func() {
		if err != nil {
			c.jrnl.Revert(frame)
		} else {
			c.jrnl.Commit(frame)
		}
	}()

	if c.stage != domain.StageNone {
		return domain.ErrStageNotActive
	}
	c.setStage(domain.StageStage1)
	c.setStage1Start(c.clock.Now())
	return nil
}

// StartStage2 opens Stage2. At least the cooldown must have elapsed since
// Stage1 started; once opened, Stage1 can never become active again.
func (c *Controller) StartStage2() (err error) {
	frame := c.jrnl.Begin()
	defer func() {
		if err != nil {
			c.jrnl.Revert(frame)
		} else {
			c.jrnl.Commit(frame)
		}
	}()

	if c.stage != domain.StageStage1 {
		return domain.ErrStageNotActive
	}
	if c.clock.Now().Sub(c.stage1Start) < c.cfg.StageCooldown {
		return domain.ErrStageCooldown
	}
	c.setStage(domain.StageStage2)
	c.setStage2Start(c.clock.Now())
	return nil
}

// StartStage3 opens the final stage
func (c *Controller) StartStage3() (err error) {
	frame := c.jrnl.Begin()
	defer func() {
		if err != nil {
			c.jrnl.Revert(frame)
		} else {
			c.jrnl.Commit(frame)
		}
	}()

	if c.stage != domain.StageStage2 {
		return domain.ErrStageNotActive
	}
	if c.clock.Now().Sub(c.stage2Start) < c.cfg.StageCooldown {
		return domain.ErrStageCooldown
	}
	c.setStage(domain.StageStage3)
	return nil
}

// SetAllowlistRoot replaces the committed Stage2 root
func (c *Controller) SetAllowlistRoot(root common.Hash) {
	prev := c.root
	c.jrnl.Record(func() { c.root = prev })
	c.root = root
}

// SetPaused toggles the pause switch
func (c *Controller) SetPaused(paused bool) {
	prev := c.paused
	c.jrnl.Record(func() { c.paused = prev })
	c.paused = paused
}

// Mint authorizes and executes a public mint for the calling account under the
// current stage's rules, then records a leveling birthday for the last id
// minted in this call.
func (c *Controller) Mint(call domain.Call, proof []common.Hash, amount uint64) (first, last uint64, err error) {
	frame := c.jrnl.Begin()
	defer func() {
		if err != nil {
			c.jrnl.Revert(frame)
		} else {
			c.jrnl.Commit(frame)
		}
	}()

	if c.paused {
		return 0, 0, domain.ErrPaused
	}
	if amount == 0 {
		return 0, 0, domain.ErrQuantityInvalid
	}
	if c.ledger.TotalSupply()+amount > c.ledger.MaxSupply() {
		return 0, 0, domain.ErrSupplyExceeded
	}
	if !call.Direct() {
		return 0, 0, domain.ErrNotDirectCaller
	}

	now := c.clock.Now()
	value := call.AttachedValue()

	switch c.stage {
	case domain.StageStage1:
		if now.Sub(c.stage1Start) > c.cfg.Stage1Window {
			return 0, 0, domain.ErrStageWindowClosed
		}
		if c.stage1Minted[call.Caller]+amount > c.cfg.MintRights[call.Caller] {
			return 0, 0, domain.ErrQuotaExceeded
		}
		required := new(uint256.Int).Mul(c.cfg.Stage1Cost, uint256.NewInt(amount))
		if value.Lt(required) {
			return 0, 0, domain.ErrInsufficientPayment
		}

	case domain.StageStage2:
		if amount != 1 {
			return 0, 0, domain.ErrQuantityInvalid
		}
		if now.Sub(c.stage2Start) > c.cfg.Stage2Window {
			return 0, 0, domain.ErrStageWindowClosed
		}
		if !merkle.Verify(call.Caller, proof, c.root) {
			return 0, 0, domain.ErrAllowlistProofInvalid
		}
		if value.Lt(c.cfg.Stage2Cost) {
			return 0, 0, domain.ErrInsufficientPayment
		}

	case domain.StageStage3:
		if amount != 1 {
			return 0, 0, domain.ErrQuantityInvalid
		}
		if value.Lt(c.cfg.Stage3Cost) {
			return 0, 0, domain.ErrInsufficientPayment
		}

	default:
		return 0, 0, domain.ErrStageNotActive
	}

	first, last, err = c.ledger.Mint(call.Caller, call.Caller, amount)
	if err != nil {
		return 0, 0, err
	}

	switch c.stage {
	case domain.StageStage1:
		c.setStage1Minted(call.Caller, c.stage1Minted[call.Caller]+amount)
	case domain.StageStage2:
		// Recorded but not enforced; a repeat Stage2 mint with a fresh valid
		// proof is not blocked.
		c.setStageFlag(c.stage2Minted, call.Caller)
	case domain.StageStage3:
		c.setStageFlag(c.stage3Minted, call.Caller)
	}

	// Only the last id of a batch gets a birthday; earlier ids stay unleveled.
	c.levels.RecordBirth(last)

	return first, last, nil
}

func (c *Controller) setStage(s domain.SaleStage) {
	prev := c.stage
	c.jrnl.Record(func() { c.stage = prev })
	c.stage = s
}

func (c *Controller) setStage1Start(t time.Time) {
	prev := c.stage1Start
	c.jrnl.Record(func() { c.stage1Start = prev })
	c.stage1Start = t
}

func (c *Controller) setStage2Start(t time.Time) {
	prev := c.stage2Start
	c.jrnl.Record(func() { c.stage2Start = prev })
	c.stage2Start = t
}

func (c *Controller) setStage1Minted(addr common.Address, n uint64) {
	prev, existed := c.stage1Minted[addr]
	c.jrnl.Record(func() {
		if existed {
			c.stage1Minted[addr] = prev
		} else {
			delete(c.stage1Minted, addr)
		}
	})
	c.stage1Minted[addr] = n
}

func (c *Controller) setStageFlag(flags map[common.Address]bool, addr common.Address) {
	prev, existed := flags[addr]
	c.jrnl.Record(func() {
		if existed {
			flags[addr] = prev
		} else {
			delete(flags, addr)
		}
	})
	flags[addr] = true
}
