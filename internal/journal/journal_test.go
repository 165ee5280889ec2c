package journal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feral-file/genesis-ledger/internal/journal"
)

func TestJournal_RevertRunsUndosNewestFirst(t *testing.T) {
	j := journal.New()

	var order []int
	f := j.Begin()
	j.Record(func() { order = append(order, 1) })
	j.Record(func() { order = append(order, 2) })
	j.Record(func() { order = append(order, 3) })

	j.Revert(f)

	assert.Equal(t, []int{3, 2, 1}, order)
	assert.Equal(t, 0, j.Depth())
}

func TestJournal_CommitOutermostDiscardsLog(t *testing.T) {
	j := journal.New()

	f := j.Begin()
	j.Record(func() { t.Fatal("undo must not run after commit") })
	j.Commit(f)

	assert.Equal(t, 0, j.Depth())
}

func TestJournal_OuterRevertUnwindsCommittedInnerFrame(t *testing.T) {
	j := journal.New()

	value := 0
	outer := j.Begin()
	value = 1
	j.Record(func() { value = 0 })

	// A reentrant call opens and commits its own frame.
	inner := j.Begin()
	value = 2
	j.Record(func() { value = 1 })
	j.Commit(inner)

	// Committing the inner frame keeps its undos in the log.
	assert.Equal(t, 2, j.Depth())

	j.Revert(outer)
	assert.Equal(t, 0, value)
}

func TestJournal_InnerRevertLeavesOuterIntact(t *testing.T) {
	j := journal.New()

	value := 0
	outer := j.Begin()
	value = 1
	j.Record(func() { value = 0 })

	inner := j.Begin()
	value = 2
	j.Record(func() { value = 1 })
	j.Revert(inner)

	assert.Equal(t, 1, value)
	assert.Equal(t, 1, j.Depth())

	j.Commit(outer)
	assert.Equal(t, 1, value)
}
