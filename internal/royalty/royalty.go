package royalty

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Info is the read-only royalty collaborator: a pure percentage calculator
// with an owner-settable recipient.
type Info struct {
	recipient  common.Address
	percentage uint64 // whole percent, 0-100
}

// New creates a royalty calculator
func New(recipient common.Address, percentage uint64) (*Info, error) {
	if percentage > 100 {
		return nil, fmt.Errorf("royalty percentage %d out of range", percentage)
	}
	return &Info{recipient: recipient, percentage: percentage}, nil
}

// Recipient returns the current royalty recipient
func (i *Info) Recipient() common.Address {
	return i.recipient
}

// Percentage returns the current royalty percentage
func (i *Info) Percentage() uint64 {
	return i.percentage
}

// SetRecipient replaces the royalty recipient
func (i *Info) SetRecipient(recipient common.Address) {
	i.recipient = recipient
}

// SetPercentage replaces the royalty percentage
func (i *Info) SetPercentage(percentage uint64) error {
	if percentage > 100 {
		return fmt.Errorf("royalty percentage %d out of range", percentage)
	}
	i.percentage = percentage
	return nil
}

// RoyaltyInfo computes the royalty due on a sale price
func (i *Info) RoyaltyInfo(salePrice *uint256.Int) (common.Address, *uint256.Int) {
	amount := new(uint256.Int).Mul(salePrice, uint256.NewInt(i.percentage))
	amount.Div(amount, uint256.NewInt(100))
	return i.recipient, amount
}
