package ledger

// TransferOptions carries the call-scoped flags threaded through a single
// transfer or burn. They exist only for the duration of the call; overlays
// inspect them through their registered guards.
type TransferOptions struct {
	// Privileged skips the owner/approval check. Used by the loan retrieval
	// path, where the lender is not the resolved owner.
	Privileged bool
	// Leveling marks a leveling transfer in progress, lifting the leveling
	// guard for this call only.
	Leveling bool
	// Acknowledge invokes the recipient's acknowledgement callback after the
	// transfer, when the recipient carries the capability.
	Acknowledge bool
}

// TransferOption configures a single transfer call
type TransferOption func(*TransferOptions)

// Privileged marks the transfer as a privileged loan-return transfer
func Privileged() TransferOption {
	return func(o *TransferOptions) { o.Privileged = true }
}

// Leveling marks a leveling transfer in progress
func Leveling() TransferOption {
	return func(o *TransferOptions) { o.Leveling = true }
}

// Acknowledge requests the receiver acknowledgement callback on delivery
func Acknowledge() TransferOption {
	return func(o *TransferOptions) { o.Acknowledge = true }
}

func applyOptions(opts []TransferOption) TransferOptions {
	var o TransferOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
