package domain

import "errors"

// Input validation errors
var (
	// ErrZeroAddressTarget is returned when an operation targets the zero address
	ErrZeroAddressTarget = errors.New("zero address target")

	// ErrQuantityZero is returned when a mint is requested with zero quantity
	ErrQuantityZero = errors.New("quantity is zero")

	// ErrQuantityInvalid is returned when a stage only permits minting a single token
	ErrQuantityInvalid = errors.New("quantity invalid for current stage")
)

// Existence errors
var (
	// ErrNonexistentToken is returned when a token id is out of range or burned
	ErrNonexistentToken = errors.New("token does not exist")
)

// Authorization errors
var (
	// ErrNotOwnerOrApproved is returned when the caller may not move the token
	ErrNotOwnerOrApproved = errors.New("caller is not owner nor approved")

	// ErrNotContractOwner is returned when an owner-only operation is called by another account
	ErrNotContractOwner = errors.New("caller is not the contract owner")

	// ErrNotDirectCaller is returned when a mint is relayed rather than initiated by the minter
	ErrNotDirectCaller = errors.New("caller is not the call origin")
)

// Sale state machine errors
var (
	// ErrPaused is returned when minting is paused
	ErrPaused = errors.New("minting is paused")

	// ErrStageNotActive is returned when the requested operation does not match the current stage
	ErrStageNotActive = errors.New("sale stage not active")

	// ErrStageCooldown is returned when a stage transition is attempted before the 48h separation elapsed
	ErrStageCooldown = errors.New("previous stage cooldown not elapsed")

	// ErrStageWindowClosed is returned when the stage mint window has elapsed
	ErrStageWindowClosed = errors.New("stage mint window closed")

	// ErrQuotaExceeded is returned when the caller's stage allotment is exhausted
	ErrQuotaExceeded = errors.New("mint quota exceeded")

	// ErrInsufficientPayment is returned when the attached value does not cover the stage cost
	ErrInsufficientPayment = errors.New("insufficient payment")

	// ErrAllowlistProofInvalid is returned when the Merkle proof does not verify against the committed root
	ErrAllowlistProofInvalid = errors.New("allowlist proof invalid")
)

// Overlay violation errors
var (
	// ErrLoanStateViolation is returned when a loaned token is moved outside the retrieval path
	ErrLoanStateViolation = errors.New("loan state violation")

	// ErrLevelingStateViolation is returned when a leveled token is moved outside a leveling transfer
	ErrLevelingStateViolation = errors.New("leveling state violation")
)

// Integrity errors
var (
	// ErrSupplyExceeded is returned when a mint would pass the total supply ceiling
	ErrSupplyExceeded = errors.New("total supply exceeded")

	// ErrReceiverRefused is returned when a receiving contract refuses the acknowledgement callback
	ErrReceiverRefused = errors.New("receiver acknowledgement refused")

	// ErrReentrancyDetected is returned when a receiver callback mutated the mint cursor
	ErrReentrancyDetected = errors.New("reentrant cursor mutation detected")
)
