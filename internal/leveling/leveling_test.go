package leveling_test

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/genesis-ledger/internal/domain"
	"github.com/feral-file/genesis-ledger/internal/journal"
	"github.com/feral-file/genesis-ledger/internal/ledger"
	"github.com/feral-file/genesis-ledger/internal/leveling"
	"github.com/feral-file/genesis-ledger/internal/mocks"
)

type fixture struct {
	levels *leveling.Clock
	jrnl   *journal.Journal
	now    time.Time
}

func newFixture(t *testing.T, unit time.Duration) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		jrnl: journal.New(),
		now:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().DoAndReturn(func() time.Time { return f.now }).AnyTimes()
	f.levels = leveling.New(clock, f.jrnl, unit)
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func TestLevelInfo_NoBirthday(t *testing.T) {
	f := newFixture(t, time.Hour)

	assert.False(t, f.levels.HasBirthday(1))
	current, total := f.levels.LevelInfo(1)
	assert.Equal(t, uint64(0), current)
	assert.Equal(t, uint64(0), total)
}

func TestLevelInfo_ElapsedTimeInUnits(t *testing.T) {
	f := newFixture(t, time.Hour)
	f.levels.RecordBirth(1)
	assert.True(t, f.levels.HasBirthday(1))

	current, total := f.levels.LevelInfo(1)
	assert.Equal(t, uint64(0), current)
	assert.Equal(t, uint64(0), total)

	// Partial units do not count.
	f.advance(59 * time.Minute)
	current, _ = f.levels.LevelInfo(1)
	assert.Equal(t, uint64(0), current)

	f.advance(time.Minute)
	current, total = f.levels.LevelInfo(1)
	assert.Equal(t, uint64(1), current)
	assert.Equal(t, uint64(1), total)

	f.advance(10 * time.Hour)
	current, total = f.levels.LevelInfo(1)
	assert.Equal(t, uint64(11), current)
	assert.Equal(t, uint64(11), total)
}

func TestBank_AccumulatesAndRestartsClock(t *testing.T) {
	f := newFixture(t, time.Hour)
	f.levels.RecordBirth(1)

	f.advance(5 * time.Hour)
	f.levels.Bank(1)

	current, total := f.levels.LevelInfo(1)
	assert.Equal(t, uint64(0), current)
	assert.Equal(t, uint64(5), total)

	f.advance(3 * time.Hour)
	current, total = f.levels.LevelInfo(1)
	assert.Equal(t, uint64(3), current)
	assert.Equal(t, uint64(8), total)

	f.levels.Bank(1)
	current, total = f.levels.LevelInfo(1)
	assert.Equal(t, uint64(0), current)
	assert.Equal(t, uint64(8), total)

	// Banking a token without a birthday is a no-op.
	f.levels.Bank(2)
	assert.False(t, f.levels.HasBirthday(2))
}

func TestGuard_FreezesBirthdayTokens(t *testing.T) {
	f := newFixture(t, time.Hour)
	guard := f.levels.Guard()

	a := common.HexToAddress("0x1111111111111111111111111111111111111111")
	b := common.HexToAddress("0x2222222222222222222222222222222222222222")

	f.levels.RecordBirth(1)

	// An ordinary transfer of a birthday token is vetoed; the same move
	// succeeds while a leveling transfer is in progress.
	err := guard(1, a, b, ledger.TransferOptions{})
	assert.ErrorIs(t, err, domain.ErrLevelingStateViolation)
	assert.NoError(t, guard(1, a, b, ledger.TransferOptions{Leveling: true}))

	// Tokens without a birthday pass either way.
	assert.NoError(t, guard(2, a, b, ledger.TransferOptions{}))
}

func TestRecordBirth_RevertsWithFrame(t *testing.T) {
	f := newFixture(t, time.Hour)

	frame := f.jrnl.Begin()
	f.levels.RecordBirth(1)
	assert.True(t, f.levels.HasBirthday(1))
	f.jrnl.Revert(frame)

	assert.False(t, f.levels.HasBirthday(1))
}

func TestNew_ZeroUnitDefaultsToOneHour(t *testing.T) {
	f := newFixture(t, 0)
	f.levels.RecordBirth(1)

	f.advance(2*time.Hour + time.Minute)
	current, _ := f.levels.LevelInfo(1)
	assert.Equal(t, uint64(2), current)
}
