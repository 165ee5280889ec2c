package merkle_test

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/genesis-ledger/internal/merkle"
)

func testAddresses(n int) []common.Address {
	addrs := make([]common.Address, n)
	for i := range addrs {
		addrs[i] = common.HexToAddress(fmt.Sprintf("0x%040x", i+1))
	}
	return addrs
}

func TestVerify_AllMembersProve(t *testing.T) {
	for _, size := range []int{1, 2, 3, 5, 8, 17} {
		t.Run(fmt.Sprintf("size_%d", size), func(t *testing.T) {
			addrs := testAddresses(size)
			tree, err := merkle.NewTree(addrs)
			require.NoError(t, err)

			for _, addr := range addrs {
				proof, err := tree.Proof(addr)
				require.NoError(t, err)
				assert.True(t, merkle.Verify(addr, proof, tree.Root()),
					"proof for %s must verify", addr.Hex())
			}
		})
	}
}

func TestVerify_NonMemberFails(t *testing.T) {
	addrs := testAddresses(8)
	tree, err := merkle.NewTree(addrs)
	require.NoError(t, err)

	outsider := common.HexToAddress("0x00000000000000000000000000000000000000ff")
	proof, err := tree.Proof(addrs[0])
	require.NoError(t, err)

	assert.False(t, merkle.Verify(outsider, proof, tree.Root()))
}

func TestVerify_WrongRootFails(t *testing.T) {
	addrs := testAddresses(4)
	tree, err := merkle.NewTree(addrs)
	require.NoError(t, err)

	other, err := merkle.NewTree(testAddresses(5))
	require.NoError(t, err)

	proof, err := tree.Proof(addrs[1])
	require.NoError(t, err)

	assert.False(t, merkle.Verify(addrs[1], proof, other.Root()))
}

func TestVerify_TamperedProofFails(t *testing.T) {
	addrs := testAddresses(6)
	tree, err := merkle.NewTree(addrs)
	require.NoError(t, err)

	proof, err := tree.Proof(addrs[2])
	require.NoError(t, err)
	require.NotEmpty(t, proof)

	proof[0] = common.Hash{0xde, 0xad}
	assert.False(t, merkle.Verify(addrs[2], proof, tree.Root()))
}

func TestNewTree_RejectsEmptyAndDuplicates(t *testing.T) {
	_, err := merkle.NewTree(nil)
	assert.Error(t, err)

	addrs := testAddresses(3)
	addrs = append(addrs, addrs[0])
	_, err = merkle.NewTree(addrs)
	assert.Error(t, err)
}

func TestTree_ProofForUnknownAddress(t *testing.T) {
	tree, err := merkle.NewTree(testAddresses(4))
	require.NoError(t, err)

	_, err = tree.Proof(common.HexToAddress("0x00000000000000000000000000000000000000aa"))
	assert.Error(t, err)
}
