package genesis_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/genesis-ledger/internal/domain"
	"github.com/feral-file/genesis-ledger/internal/genesis"
	"github.com/feral-file/genesis-ledger/internal/merkle"
	"github.com/feral-file/genesis-ledger/internal/mocks"
	"github.com/feral-file/genesis-ledger/internal/sale"
)

var (
	owner = common.HexToAddress("0xAAaAaAaaAaAaAaaAaAAAAAAAAaaaAaAaAaaAaaAa")
	alice = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob   = common.HexToAddress("0x2222222222222222222222222222222222222222")
	carol = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

type fixture struct {
	contract *genesis.Contract
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().DoAndReturn(func() time.Time { return f.now }).AnyTimes()

	contract, err := genesis.New(genesis.Config{
		Owner:     owner,
		MaxSupply: 100,
		Sale: sale.Config{
			Stage1Window:  72 * time.Hour,
			Stage2Window:  48 * time.Hour,
			StageCooldown: 48 * time.Hour,
			Stage1Cost:    uint256.NewInt(100),
			Stage2Cost:    uint256.NewInt(200),
			Stage3Cost:    uint256.NewInt(300),
			MintRights: map[common.Address]uint64{
				alice: 5,
			},
		},
		LevelUnit:      time.Hour,
		PlaceholderURI: "ipfs://placeholder",
		TierURIs: []genesis.Tier{
			{MinLevel: 10, URI: "ipfs://tier-2"},
			{MinLevel: 0, URI: "ipfs://tier-1"},
			{MinLevel: 100, URI: "ipfs://tier-3"},
		},
		RoyaltyRecipient:  owner,
		RoyaltyPercentage: 10,
	}, clock)
	require.NoError(t, err)
	f.contract = contract
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func call(caller common.Address) domain.Call {
	return domain.Call{Caller: caller, Origin: caller}
}

func paidCall(caller common.Address, value uint64) domain.Call {
	return domain.Call{Caller: caller, Origin: caller, Value: uint256.NewInt(value)}
}

// mint opens Stage1 (when still closed) and mints for alice.
func (f *fixture) mint(t *testing.T, amount uint64) (first, last uint64) {
	t.Helper()
	if f.contract.Stage() == domain.StageNone {
		require.NoError(t, f.contract.StartStage1(call(owner)))
	}
	first, last, err := f.contract.Mint(paidCall(alice, amount*100), nil, amount)
	require.NoError(t, err)
	return first, last
}

func TestNew_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)

	_, err := genesis.New(genesis.Config{MaxSupply: 10}, clock)
	assert.Error(t, err, "zero owner rejected")

	_, err = genesis.New(genesis.Config{Owner: owner}, clock)
	assert.Error(t, err, "zero max supply rejected")

	_, err = genesis.New(genesis.Config{Owner: owner, MaxSupply: 10, RoyaltyPercentage: 101}, clock)
	assert.Error(t, err, "royalty percentage out of range")
}

func TestAdminOperations_RequireOwner(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.contract.StartStage1(call(alice)), domain.ErrNotContractOwner)
	assert.ErrorIs(t, f.contract.SetPaused(call(alice), true), domain.ErrNotContractOwner)
	assert.ErrorIs(t, f.contract.SetAllowlistRoot(call(alice), common.Hash{1}), domain.ErrNotContractOwner)
	assert.ErrorIs(t, f.contract.Reveal(call(alice), true), domain.ErrNotContractOwner)
	assert.ErrorIs(t, f.contract.ChangeRoyaltyRecipient(call(alice), bob), domain.ErrNotContractOwner)
	assert.ErrorIs(t, f.contract.ChangeRoyaltyPercentage(call(alice), 5), domain.ErrNotContractOwner)

	_, err := f.contract.Withdraw(call(alice))
	assert.ErrorIs(t, err, domain.ErrNotContractOwner)
}

func TestMint_CreditsVaultAndWithdrawSweepsIt(t *testing.T) {
	f := newFixture(t)
	f.mint(t, 3)

	assert.Equal(t, uint64(300), f.contract.VaultBalance().Uint64())
	assert.Equal(t, uint64(3), f.contract.TotalSupply())

	swept, err := f.contract.Withdraw(call(owner))
	require.NoError(t, err)
	assert.Equal(t, uint64(300), swept.Uint64())
	assert.Equal(t, uint64(0), f.contract.VaultBalance().Uint64())

	// A second sweep finds nothing.
	swept, err = f.contract.Withdraw(call(owner))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), swept.Uint64())
}

func TestTransferFrom_MovesUnleveledToken(t *testing.T) {
	f := newFixture(t)
	first, last := f.mint(t, 3)

	require.NoError(t, f.contract.TransferFrom(call(alice), alice, bob, first))
	resolved, err := f.contract.OwnerOf(first)
	require.NoError(t, err)
	assert.Equal(t, bob, resolved)

	// The last id of the batch carries a birthday and is frozen for
	// ordinary transfers.
	err = f.contract.TransferFrom(call(alice), alice, bob, last)
	assert.ErrorIs(t, err, domain.ErrLevelingStateViolation)
}

func TestLeveledTransfer_BanksAndMoves(t *testing.T) {
	f := newFixture(t)
	_, last := f.mint(t, 2)

	f.advance(5 * time.Hour)

	// Only the current owner may initiate a leveling transfer, approvals
	// do not extend to it.
	require.NoError(t, f.contract.SetApprovalForAll(call(alice), carol, true))
	err := f.contract.LeveledTransfer(call(carol), alice, bob, last)
	assert.ErrorIs(t, err, domain.ErrNotOwnerOrApproved)

	require.NoError(t, f.contract.LeveledTransfer(call(alice), alice, bob, last))

	resolved, err := f.contract.OwnerOf(last)
	require.NoError(t, err)
	assert.Equal(t, bob, resolved)

	current, total, err := f.contract.GetLevelInfo(last)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), current, "clock restarted under the new owner")
	assert.Equal(t, uint64(5), total)

	f.advance(2 * time.Hour)
	current, total, err = f.contract.GetLevelInfo(last)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), current)
	assert.Equal(t, uint64(7), total)
}

func TestGetLevelInfo_NonexistentToken(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.contract.GetLevelInfo(1)
	assert.ErrorIs(t, err, domain.ErrNonexistentToken)
}

func TestTokenURI(t *testing.T) {
	f := newFixture(t)
	first, last := f.mint(t, 2)

	// Placeholder until reveal, for every token.
	uri, err := f.contract.TokenURI(first)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://placeholder", uri)

	require.NoError(t, f.contract.Reveal(call(owner), true))
	assert.True(t, f.contract.Revealed())

	// Unleveled token resolves to the lowest tier.
	uri, err = f.contract.TokenURI(first)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://tier-1", uri)

	// Leveling past a tier boundary changes the resolved URI.
	f.advance(12 * time.Hour)
	uri, err = f.contract.TokenURI(last)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://tier-2", uri)

	_, err = f.contract.TokenURI(99)
	assert.ErrorIs(t, err, domain.ErrNonexistentToken)

	// Reveal toggles back.
	require.NoError(t, f.contract.Reveal(call(owner), false))
	uri, err = f.contract.TokenURI(last)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://placeholder", uri)
}

func TestLoanAndRetrieve(t *testing.T) {
	f := newFixture(t)
	first, _ := f.mint(t, 2)

	require.NoError(t, f.contract.Loan(call(alice), first, bob))
	assert.True(t, f.contract.Loaned(first))
	lender, ok := f.contract.Lender(first)
	require.True(t, ok)
	assert.Equal(t, alice, lender)

	// The borrower holds a frozen token.
	resolved, err := f.contract.OwnerOf(first)
	require.NoError(t, err)
	assert.Equal(t, bob, resolved)
	err = f.contract.TransferFrom(call(bob), bob, carol, first)
	assert.ErrorIs(t, err, domain.ErrLoanStateViolation)

	require.NoError(t, f.contract.RetrieveLoan(call(alice), first))
	assert.False(t, f.contract.Loaned(first))
	resolved, err = f.contract.OwnerOf(first)
	require.NoError(t, err)
	assert.Equal(t, alice, resolved)
}

func TestBurn_ThroughContract(t *testing.T) {
	f := newFixture(t)
	first, _ := f.mint(t, 2)

	require.NoError(t, f.contract.Burn(call(alice), first))
	_, err := f.contract.OwnerOf(first)
	assert.ErrorIs(t, err, domain.ErrNonexistentToken)
	assert.Equal(t, uint64(1), f.contract.TotalSupply())
}

func TestSafeTransferFrom_ConsultsReceiver(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	receiver := mocks.NewMockReceiver(ctrl)
	f.contract.SetReceiver(bob, receiver)

	first, _ := f.mint(t, 2)

	receiver.EXPECT().OnTokenReceived(alice, alice, first).Return(errors.New("refused"))
	err := f.contract.SafeTransferFrom(call(alice), alice, bob, first)
	assert.ErrorIs(t, err, domain.ErrReceiverRefused)

	resolved, err := f.contract.OwnerOf(first)
	require.NoError(t, err)
	assert.Equal(t, alice, resolved)

	receiver.EXPECT().OnTokenReceived(alice, alice, first).Return(nil)
	require.NoError(t, f.contract.SafeTransferFrom(call(alice), alice, bob, first))
}

func TestStage2Mint_EndToEnd(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.contract.StartStage1(call(owner)))
	f.advance(48 * time.Hour)
	require.NoError(t, f.contract.StartStage2(call(owner)))

	tree, err := merkle.NewTree([]common.Address{bob, carol})
	require.NoError(t, err)
	require.NoError(t, f.contract.SetAllowlistRoot(call(owner), tree.Root()))
	assert.Equal(t, tree.Root(), f.contract.AllowlistRoot())

	proof, err := tree.Proof(bob)
	require.NoError(t, err)

	first, last, err := f.contract.Mint(paidCall(bob, 200), proof, 1)
	require.NoError(t, err)
	assert.Equal(t, first, last)

	_, _, err = f.contract.Mint(paidCall(alice, 200), proof, 1)
	assert.ErrorIs(t, err, domain.ErrAllowlistProofInvalid)
}

func TestRoyalty(t *testing.T) {
	f := newFixture(t)

	recipient, amount := f.contract.RoyaltyInfo(uint256.NewInt(1000))
	assert.Equal(t, owner, recipient)
	assert.Equal(t, uint64(100), amount.Uint64())

	require.NoError(t, f.contract.ChangeRoyaltyRecipient(call(owner), bob))
	require.NoError(t, f.contract.ChangeRoyaltyPercentage(call(owner), 5))

	recipient, amount = f.contract.RoyaltyInfo(uint256.NewInt(1000))
	assert.Equal(t, bob, recipient)
	assert.Equal(t, uint64(50), amount.Uint64())

	assert.Error(t, f.contract.ChangeRoyaltyPercentage(call(owner), 101))
}

// failingSink refuses every commit.
type failingSink struct{ err error }

func (s *failingSink) Committed(genesis.Operation) error { return s.err }

// capturingSink records every committed operation.
type capturingSink struct{ ops []genesis.Operation }

func (s *capturingSink) Committed(op genesis.Operation) error {
	s.ops = append(s.ops, op)
	return nil
}

func TestCommitSinkFailure_RollsBackOperation(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.contract.StartStage1(call(owner)))

	sinkErr := errors.New("store down")
	f.contract.SetCommitSink(&failingSink{err: sinkErr})

	_, _, err := f.contract.Mint(paidCall(alice, 100), nil, 1)
	assert.ErrorIs(t, err, sinkErr)

	// Every effect of the call is gone, including the vault credit.
	f.contract.SetCommitSink(nil)
	assert.Equal(t, uint64(0), f.contract.TotalSupply())
	assert.Equal(t, uint64(0), f.contract.VaultBalance().Uint64())
	balance, err := f.contract.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)
}

func TestCommitSink_ObservesOperationsAndEvents(t *testing.T) {
	f := newFixture(t)
	sink := &capturingSink{}
	f.contract.SetCommitSink(sink)

	require.NoError(t, f.contract.StartStage1(call(owner)))
	first, last, err := f.contract.Mint(paidCall(alice, 200), nil, 2)
	require.NoError(t, err)

	require.Len(t, sink.ops, 2)

	stage := sink.ops[0]
	assert.Equal(t, genesis.OpStartStage1, stage.Name)
	assert.Equal(t, owner, stage.Caller)
	assert.Empty(t, stage.Events)

	mint := sink.ops[1]
	assert.Equal(t, genesis.OpMint, mint.Name)
	assert.Equal(t, alice, mint.Caller)
	assert.Equal(t, uint64(200), mint.Value.Uint64())
	require.Len(t, mint.Events, 1)

	evt := mint.Events[0]
	assert.Equal(t, domain.EventTypeMint, evt.EventType)
	assert.Equal(t, first, evt.TokenID)
	assert.Equal(t, last, evt.ToTokenID)
	assert.Equal(t, uint64(2), evt.Quantity)
	require.NotNil(t, evt.ToAddress)
	assert.Equal(t, alice.Hex(), *evt.ToAddress)
	assert.True(t, evt.Valid())

	// Failed calls never reach the sink.
	_, _, err = f.contract.Mint(paidCall(bob, 100), nil, 1)
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	assert.Len(t, sink.ops, 2)
}
