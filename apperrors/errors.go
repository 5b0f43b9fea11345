package apperrors

import "errors"

// Standard application errors. These are the only error kinds the core exposes;
// adapters at the wallet and ledger boundaries translate external error shapes
// (JSON-RPC codes, revert data) into them so callers can match with errors.Is.
var (
	// ErrNoWalletInstalled is returned when no signer wallet bridge is reachable.
	ErrNoWalletInstalled = errors.New("no wallet installed")

	// ErrUserRejected is returned when the user dismisses a wallet prompt.
	ErrUserRejected = errors.New("request rejected by user")

	// ErrUnknownChain is returned when the wallet does not know the requested chain.
	ErrUnknownChain = errors.New("chain unknown to wallet")

	// ErrNetworkSwitchFailed is returned when a chain switch could not be completed.
	ErrNetworkSwitchFailed = errors.New("network switch failed")

	// ErrPreconditionFailed is returned when an operation is attempted in the wrong
	// session state, e.g. a duplicate in-flight transaction or the wrong network.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrRegistryReadFailed is returned when a registry refresh could not produce
	// a complete entry list.
	ErrRegistryReadFailed = errors.New("registry read failed")

	// ErrDuplicateName is returned when the contract reverts a creation because
	// the name is already taken.
	ErrDuplicateName = errors.New("name already exists")

	// ErrTransactionReverted is returned when an included transaction ends with a
	// failure status.
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrProviderDisconnected is returned when the wallet bridge connection drops
	// mid-operation.
	ErrProviderDisconnected = errors.New("wallet provider disconnected")
)
