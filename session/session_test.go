package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreStartsDisconnected(t *testing.T) {
	s := NewStore()
	cur := s.Current()
	assert.Equal(t, Disconnected, cur.Status)
	assert.Empty(t, cur.Account)
	assert.Zero(t, cur.Epoch)
}

func TestConnectedSnapshot(t *testing.T) {
	s := NewStore()
	s.SetConnecting()
	assert.Equal(t, Connecting, s.Current().Status)

	s.SetConnected("0xabc", 656476)
	cur := s.Current()
	assert.Equal(t, Connected, cur.Status)
	assert.Equal(t, "0xabc", cur.Account)
	assert.Equal(t, uint64(656476), cur.ChainID)
}

func TestResetAdvancesEpochAndDisconnects(t *testing.T) {
	s := NewStore()
	s.SetConnected("0xabc", 1)

	e := s.Reset()
	assert.Equal(t, uint64(1), e)
	assert.Equal(t, e, s.Epoch())

	cur := s.Current()
	assert.Equal(t, Disconnected, cur.Status)
	assert.Empty(t, cur.Account)
	assert.Zero(t, cur.ChainID)

	// every reset keeps advancing
	assert.Equal(t, uint64(2), s.Reset())
}

func TestSetDisconnectedKeepsEpoch(t *testing.T) {
	s := NewStore()
	s.Reset()
	s.SetConnecting()
	s.SetDisconnected()
	assert.Equal(t, uint64(1), s.Epoch())
	assert.Equal(t, Disconnected, s.Current().Status)
}
