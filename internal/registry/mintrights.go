package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
)

// MintRightsData represents the structure of the mint rights JSON file:
// address -> Stage1 allotment
type MintRightsData map[string]uint64

// LoadMintRights loads the per-address Stage1 allotments from a JSON file.
// Addresses are normalized, so mixed-case entries resolve to the same account.
func LoadMintRights(filePath string) (map[common.Address]uint64, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec,G304 // This should be a trusted file
	if err != nil {
		return nil, fmt.Errorf("failed to read mint rights file: %w", err)
	}

	var rights MintRightsData
	if err := json.Unmarshal(data, &rights); err != nil {
		return nil, fmt.Errorf("failed to parse mint rights JSON: %w", err)
	}

	result := make(map[common.Address]uint64, len(rights))
	for addr, allotment := range rights {
		if !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("invalid address %q in mint rights file", addr)
		}
		if allotment == 0 {
			continue
		}
		normalized := common.HexToAddress(addr)
		if _, ok := result[normalized]; ok {
			return nil, fmt.Errorf("duplicate address %s in mint rights file", normalized.Hex())
		}
		result[normalized] = allotment
	}

	return result, nil
}
