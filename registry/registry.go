package registry

import (
	"context"
	"math/big"
)

// TopLevelEntry is one TLD deployed through the factory contract. CreatedIndex
// is the position in the factory's own enumeration, which is stable for
// identical ledger state.
type TopLevelEntry struct {
	TLD          string
	Contract     string
	CreatedIndex int
}

// SubNameEntry is one name minted under a TLD's namespace contract.
type SubNameEntry struct {
	Name      string
	Owner     string
	Record    string
	MintIndex int
}

// Ledger is the read-only contract surface the reader consumes. The eth
// implementation lives in this package; tests substitute mocks.
type Ledger interface {
	// TopLevelDomains enumerates every TLD the factory knows, in contract order.
	TopLevelDomains(ctx context.Context) ([]TopLevelEntry, error)
	// Names enumerates every name minted under a namespace contract.
	Names(ctx context.Context, contract string) ([]string, error)
	// Record fetches the metadata record for a name.
	Record(ctx context.Context, contract, name string) (string, error)
	// Owner fetches the owning address for a name.
	Owner(ctx context.Context, contract, name string) (string, error)
}

// Inclusion is the terminal outcome of an awaited transaction.
type Inclusion struct {
	Hash         string
	Succeeded    bool
	RevertReason string
}

// Submitter is the write-side contract surface, consumed by the transaction
// coordinator. Every submit returns the transaction hash; WaitInclusion blocks
// until the chain includes it.
type Submitter interface {
	SubmitCreate(ctx context.Context, from, tld string, fee *big.Int) (string, error)
	SubmitRegister(ctx context.Context, from, contract, name string) (string, error)
	SubmitWithdraw(ctx context.Context, from string) (string, error)
	WaitInclusion(ctx context.Context, hash string) (Inclusion, error)
}
