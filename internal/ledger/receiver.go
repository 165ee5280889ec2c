package ledger

import "github.com/ethereum/go-ethereum/common"

// Receiver is the acknowledgement capability of a recipient account. Accounts
// registered with a Receiver are invoked synchronously for every token id they
// receive; refusing the acknowledgement aborts the whole operation. The
// callback runs with full access to the public operations, so the ledger
// guards the mint cursor against reentrant mutation while it is in flight.
//
//go:generate mockgen -source=receiver.go -destination=../mocks/receiver.go -package=mocks -mock_names=Receiver=MockReceiver
type Receiver interface {
	// OnTokenReceived acknowledges receipt of a single token. Operator is the
	// account that triggered the movement, from is the previous owner (the
	// zero address on mint).
	OnTokenReceived(operator common.Address, from common.Address, tokenID uint64) error
}
