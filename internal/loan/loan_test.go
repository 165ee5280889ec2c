package loan_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/genesis-ledger/internal/domain"
	"github.com/feral-file/genesis-ledger/internal/journal"
	"github.com/feral-file/genesis-ledger/internal/ledger"
	"github.com/feral-file/genesis-ledger/internal/loan"
	"github.com/feral-file/genesis-ledger/internal/mocks"
)

var (
	lender   = common.HexToAddress("0x1111111111111111111111111111111111111111")
	borrower = common.HexToAddress("0x2222222222222222222222222222222222222222")
	other    = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func newOverlay(t *testing.T) (*loan.Overlay, *ledger.Ledger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)).AnyTimes()

	jrnl := journal.New()
	l := ledger.New(ledger.Config{MaxSupply: 100}, clock, jrnl)
	o := loan.New(l, jrnl)
	l.AddTransferGuard(o.Guard())

	_, _, err := l.Mint(lender, lender, 3)
	require.NoError(t, err)
	return o, l
}

func TestLoan_TransfersAndRecordsLender(t *testing.T) {
	o, l := newOverlay(t)

	require.NoError(t, o.Loan(lender, 1, borrower))

	owner, err := l.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, borrower, owner)
	assert.True(t, o.Loaned(1))

	recorded, ok := o.Lender(1)
	require.True(t, ok)
	assert.Equal(t, lender, recorded)
}

func TestLoan_Validation(t *testing.T) {
	o, _ := newOverlay(t)

	// Only the resolved owner may lend.
	assert.ErrorIs(t, o.Loan(other, 1, borrower), domain.ErrNotOwnerOrApproved)

	// The receiver must be a different, non-zero account.
	assert.ErrorIs(t, o.Loan(lender, 1, domain.ZeroAddress), domain.ErrZeroAddressTarget)
	assert.ErrorIs(t, o.Loan(lender, 1, lender), domain.ErrLoanStateViolation)

	assert.ErrorIs(t, o.Loan(lender, 99, borrower), domain.ErrNonexistentToken)

	// A loaned token cannot be loaned again, not even by the borrower.
	require.NoError(t, o.Loan(lender, 1, borrower))
	assert.ErrorIs(t, o.Loan(borrower, 1, other), domain.ErrLoanStateViolation)
}

func TestLoanedToken_IsFrozen(t *testing.T) {
	o, l := newOverlay(t)
	require.NoError(t, o.Loan(lender, 1, borrower))

	// The borrower owns the token but cannot move or burn it.
	assert.ErrorIs(t, l.Transfer(borrower, borrower, other, 1), domain.ErrLoanStateViolation)
	assert.ErrorIs(t, l.Burn(borrower, 1), domain.ErrLoanStateViolation)

	// Approvals do not help either.
	require.NoError(t, l.SetApprovalForAll(borrower, other, true))
	assert.ErrorIs(t, l.Transfer(other, borrower, other, 1), domain.ErrLoanStateViolation)

	// Unloaned tokens move freely.
	require.NoError(t, l.Transfer(lender, lender, other, 2))
}

func TestRetrieve_ReturnsTokenToLender(t *testing.T) {
	o, l := newOverlay(t)
	require.NoError(t, o.Loan(lender, 1, borrower))

	require.NoError(t, o.Retrieve(lender, 1))

	owner, err := l.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, lender, owner)
	assert.False(t, o.Loaned(1))

	// Once retrieved the token moves normally again.
	require.NoError(t, l.Transfer(lender, lender, other, 1))
}

func TestRetrieve_Authorization(t *testing.T) {
	o, _ := newOverlay(t)

	// Nothing to retrieve.
	assert.ErrorIs(t, o.Retrieve(lender, 1), domain.ErrLoanStateViolation)

	require.NoError(t, o.Loan(lender, 1, borrower))

	// Neither the borrower nor a stranger may retrieve.
	assert.ErrorIs(t, o.Retrieve(borrower, 1), domain.ErrLoanStateViolation)
	assert.ErrorIs(t, o.Retrieve(other, 1), domain.ErrLoanStateViolation)

	assert.True(t, o.Loaned(1))
}

func TestRetrieve_FailureRestoresLoanRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)).AnyTimes()

	jrnl := journal.New()
	l := ledger.New(ledger.Config{MaxSupply: 100}, clock, jrnl)
	o := loan.New(l, jrnl)
	l.AddTransferGuard(o.Guard())

	// A second guard that vetoes the return transfer.
	vetoed := errors.New("vetoed")
	blocking := false
	l.AddTransferGuard(func(tokenID uint64, from, to common.Address, opts ledger.TransferOptions) error {
		if blocking {
			return vetoed
		}
		return nil
	})

	_, _, err := l.Mint(lender, lender, 1)
	require.NoError(t, err)
	require.NoError(t, o.Loan(lender, 1, borrower))

	blocking = true
	assert.ErrorIs(t, o.Retrieve(lender, 1), vetoed)

	// The rollback put the loan record back; retrieval still works later.
	assert.True(t, o.Loaned(1))
	owner, err := l.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, borrower, owner)

	blocking = false
	require.NoError(t, o.Retrieve(lender, 1))
}
