package wallet

import (
	"context"
	"math/big"

	"namespace-tui/chains"
)

// TxRequest is a transaction handed to the wallet for signing and submission.
// The wallet owns the key material; the client never sees a private key.
type TxRequest struct {
	From  string
	To    string
	Value *big.Int
	Data  []byte
}

// Provider is the capability set the client consumes from an external signer
// wallet. The production implementation is Bridge (JSON-RPC to a desktop
// wallet); tests substitute mocks.
type Provider interface {
	// RequestAccounts prompts the user for account access.
	RequestAccounts(ctx context.Context) ([]string, error)
	// Accounts returns already-authorized accounts without prompting.
	Accounts(ctx context.Context) ([]string, error)
	// ChainID returns the wallet's active chain.
	ChainID(ctx context.Context) (uint64, error)
	// SwitchChain asks the wallet to change its active chain.
	SwitchChain(ctx context.Context, chainID uint64) error
	// AddChain registers a chain profile with the wallet.
	AddChain(ctx context.Context, profile chains.ChainProfile) error
	// SendTransaction signs and submits a transaction, returning its hash.
	SendTransaction(ctx context.Context, tx TxRequest) (string, error)
	// OnChainChanged registers a handler for chain-change notifications.
	OnChainChanged(handler func(newChainID uint64))
	// Close releases the underlying connection.
	Close()
}
