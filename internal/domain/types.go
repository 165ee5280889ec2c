package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// SaleStage represents the public sale stage of the contract
type SaleStage string

const (
	StageNone   SaleStage = "none"
	StageStage1 SaleStage = "stage1"
	StageStage2 SaleStage = "stage2"
	StageStage3 SaleStage = "stage3"
)

// IsValidStage checks if a stage is valid
func IsValidStage(stage SaleStage) bool {
	return stage == StageNone ||
		stage == StageStage1 ||
		stage == StageStage2 ||
		stage == StageStage3
}

// ZeroAddress is the canonical zero address used to reject invalid targets
var ZeroAddress = common.Address{}

// IsZeroAddress checks if an address is the zero address
func IsZeroAddress(addr common.Address) bool {
	return addr == ZeroAddress
}

// Call describes the provenance of a single contract invocation.
// Caller is the account the operation acts on behalf of, Origin is the
// account that initiated the outermost call. A call is direct when the
// two are the same; relayed calls carry a different origin.
type Call struct {
	Caller common.Address
	Origin common.Address
	Value  *uint256.Int
}

// Direct reports whether the call was initiated by the caller itself
func (c Call) Direct() bool {
	return c.Caller == c.Origin
}

// AttachedValue returns the payment attached to the call, never nil
func (c Call) AttachedValue() *uint256.Int {
	if c.Value == nil {
		return uint256.NewInt(0)
	}
	return c.Value
}

// NormalizeAddress normalizes an address to its EIP-55 checksum format
func NormalizeAddress(address string) string {
	if strings.HasPrefix(address, "0x") {
		return common.HexToAddress(address).String()
	}
	return address
}

// IsEthereumAddress checks if a string is a valid hex address
func IsEthereumAddress(s string) bool {
	return common.IsHexAddress(s)
}
