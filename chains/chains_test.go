package chains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKnownChains(t *testing.T) {
	p := Resolve(EduChainID)
	require.True(t, p.Known())
	assert.Equal(t, "Edu-Chain", p.Name)
	assert.Equal(t, "0xa045c", p.Hex())
	assert.Equal(t, "EDU", p.Currency.Symbol)
}

func TestResolveUnknownChainReturnsSentinel(t *testing.T) {
	for _, id := range []uint64{0, 2, 42, 99999999, 1 << 40} {
		p := Resolve(id)
		assert.False(t, p.Known(), "chain %d should not resolve", id)
		assert.Equal(t, "Unknown Network", p.Name)
	}
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := map[uint64]bool{}
	for _, p := range All() {
		assert.False(t, seen[p.ID], "duplicate chain id %d", p.ID)
		seen[p.ID] = true
	}
}

func TestExplorerTxURL(t *testing.T) {
	p := Resolve(EduChainID)
	url := p.ExplorerTxURL("0xabc")
	assert.Equal(t, "https://opencampus-codex.blockscout.com/tx/0xabc", url)

	assert.Empty(t, Unknown.ExplorerTxURL("0xabc"))
}

func TestParseHexID(t *testing.T) {
	id, err := ParseHexID("0xa045c")
	require.NoError(t, err)
	assert.Equal(t, EduChainID, id)

	_, err = ParseHexID("nope")
	assert.Error(t, err)
}
