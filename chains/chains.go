package chains

import (
	"fmt"
	"strconv"
	"strings"
)

// Currency describes the native currency of a chain.
type Currency struct {
	Name     string
	Symbol   string
	Decimals uint8
}

// ChainProfile describes a network the client knows how to talk to. Profiles
// are immutable and loaded once at process start.
type ChainProfile struct {
	ID           uint64
	Name         string
	RPCURLs      []string
	Currency     Currency
	ExplorerURLs []string
}

// Hex returns the chain id in the 0x-prefixed hex form wallets expect.
func (p ChainProfile) Hex() string {
	return "0x" + strconv.FormatUint(p.ID, 16)
}

// Known reports whether the profile came from the catalog rather than the
// Unknown sentinel.
func (p ChainProfile) Known() bool {
	return p.ID != 0
}

// ExplorerTxURL builds a block explorer link for a transaction hash. Empty if
// the profile has no explorer.
func (p ChainProfile) ExplorerTxURL(hash string) string {
	if len(p.ExplorerURLs) == 0 {
		return ""
	}
	return strings.TrimSuffix(p.ExplorerURLs[0], "/") + "/tx/" + hash
}

// EduChainID is the chain the namespace contracts are deployed on.
const EduChainID uint64 = 656476 // 0xa045c

// Unknown is the sentinel profile returned for chain ids not in the catalog.
// Being on an unrecognized chain is an expected, recoverable condition, so
// Resolve never fails.
var Unknown = ChainProfile{Name: "Unknown Network"}

var catalog = []ChainProfile{
	{
		ID:      EduChainID,
		Name:    "Edu-Chain",
		RPCURLs: []string{"https://rpc.open-campus-codex.gelato.digital"},
		Currency: Currency{
			Name:     "EDU",
			Symbol:   "EDU",
			Decimals: 18,
		},
		ExplorerURLs: []string{"https://opencampus-codex.blockscout.com/"},
	},
	{
		ID:      1,
		Name:    "Ethereum Mainnet",
		RPCURLs: []string{"https://ethereum-rpc.publicnode.com"},
		Currency: Currency{
			Name:     "Ether",
			Symbol:   "ETH",
			Decimals: 18,
		},
		ExplorerURLs: []string{"https://etherscan.io"},
	},
	{
		ID:      137,
		Name:    "Polygon Mainnet",
		RPCURLs: []string{"https://polygon-rpc.com"},
		Currency: Currency{
			Name:     "POL",
			Symbol:   "POL",
			Decimals: 18,
		},
		ExplorerURLs: []string{"https://polygonscan.com"},
	},
	{
		ID:      11155111,
		Name:    "Sepolia",
		RPCURLs: []string{"https://ethereum-sepolia-rpc.publicnode.com"},
		Currency: Currency{
			Name:     "Sepolia Ether",
			Symbol:   "ETH",
			Decimals: 18,
		},
		ExplorerURLs: []string{"https://sepolia.etherscan.io"},
	},
}

// Resolve looks up the profile for a chain id. Unrecognized ids resolve to the
// Unknown sentinel instead of an error.
func Resolve(id uint64) ChainProfile {
	for _, p := range catalog {
		if p.ID == id {
			return p
		}
	}
	return Unknown
}

// All returns the catalog in declaration order.
func All() []ChainProfile {
	out := make([]ChainProfile, len(catalog))
	copy(out, catalog)
	return out
}

// ParseHexID parses a 0x-prefixed hex chain id as reported by eth_chainId.
func ParseHexID(s string) (uint64, error) {
	raw := strings.TrimPrefix(strings.ToLower(s), "0x")
	id, err := strconv.ParseUint(raw, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("parse chain id %q: %w", s, err)
	}
	return id, nil
}
