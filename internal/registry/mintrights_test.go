package registry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/genesis-ledger/internal/registry"
)

func writeRightsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mint_rights.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMintRights(t *testing.T) {
	path := writeRightsFile(t, `{
		"0x1111111111111111111111111111111111111111": 3,
		"0x2222222222222222222222222222222222222222": 1,
		"0x3333333333333333333333333333333333333333": 0
	}`)

	rights, err := registry.LoadMintRights(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(3), rights[common.HexToAddress("0x1111111111111111111111111111111111111111")])
	assert.Equal(t, uint64(1), rights[common.HexToAddress("0x2222222222222222222222222222222222222222")])

	// Zero allotments are dropped.
	_, ok := rights[common.HexToAddress("0x3333333333333333333333333333333333333333")]
	assert.False(t, ok)
}

func TestLoadMintRights_NormalizesCase(t *testing.T) {
	path := writeRightsFile(t, `{"0xABCDEF0123456789abcdef0123456789ABCDEF01": 2}`)

	rights, err := registry.LoadMintRights(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(2), rights[common.HexToAddress("0xabcdef0123456789abcdef0123456789abcdef01")])
}

func TestLoadMintRights_InvalidAddress(t *testing.T) {
	path := writeRightsFile(t, `{"not-an-address": 1}`)

	_, err := registry.LoadMintRights(path)
	assert.Error(t, err)
}

func TestLoadMintRights_InvalidJSON(t *testing.T) {
	path := writeRightsFile(t, `{`)

	_, err := registry.LoadMintRights(path)
	assert.Error(t, err)
}

func TestLoadMintRights_MissingFile(t *testing.T) {
	_, err := registry.LoadMintRights(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
