package registry

import (
	"context"
	"errors"
	"testing"

	"namespace-tui/apperrors"
	"namespace-tui/chains"
	"namespace-tui/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLedger serves canned enumeration and follow-up data.
type mockLedger struct {
	topLevel    []TopLevelEntry
	topLevelErr error
	names       []string
	namesErr    error
	records     map[string]string
	owners      map[string]string
	recordErrs  map[string]error
}

func (m *mockLedger) TopLevelDomains(ctx context.Context) ([]TopLevelEntry, error) {
	return m.topLevel, m.topLevelErr
}

func (m *mockLedger) Names(ctx context.Context, contract string) ([]string, error) {
	return m.names, m.namesErr
}

func (m *mockLedger) Record(ctx context.Context, contract, name string) (string, error) {
	if err := m.recordErrs[name]; err != nil {
		return "", err
	}
	return m.records[name], nil
}

func (m *mockLedger) Owner(ctx context.Context, contract, name string) (string, error) {
	return m.owners[name], nil
}

func connectedStore() *session.Store {
	s := session.NewStore()
	s.SetConnected("0xabc", chains.EduChainID)
	return s
}

func TestListSubnamesPreservesEnumerationOrder(t *testing.T) {
	ledger := &mockLedger{
		names:   []string{"bravo", "alpha", "charlie"},
		records: map[string]string{"bravo": "r1", "alpha": "r2", "charlie": "r3"},
		owners:  map[string]string{"bravo": "0x1", "alpha": "0x2", "charlie": "0x3"},
	}
	r := NewReader(ledger, connectedStore(), chains.EduChainID)

	entries, err := r.ListSubnames(context.Background(), "0xcontract")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// ledger order, not lexicographic
	assert.Equal(t, "bravo", entries[0].Name)
	assert.Equal(t, "alpha", entries[1].Name)
	assert.Equal(t, "charlie", entries[2].Name)
	for i, e := range entries {
		assert.Equal(t, i, e.MintIndex)
	}
	assert.Equal(t, "0x2", entries[1].Owner)
	assert.Equal(t, "r2", entries[1].Record)
}

func TestListSubnamesEmptyWhenDisconnected(t *testing.T) {
	ledger := &mockLedger{names: []string{"alpha"}}
	r := NewReader(ledger, session.NewStore(), chains.EduChainID)

	entries, err := r.ListSubnames(context.Background(), "0xcontract")
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListSubnamesEmptyOnWrongChain(t *testing.T) {
	store := session.NewStore()
	store.SetConnected("0xabc", 1)
	r := NewReader(&mockLedger{names: []string{"alpha"}}, store, chains.EduChainID)

	entries, err := r.ListSubnames(context.Background(), "0xcontract")
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListSubnamesFollowUpFailureAbortsWholeRead(t *testing.T) {
	ledger := &mockLedger{
		names:      []string{"alpha", "bravo"},
		records:    map[string]string{"alpha": "r1"},
		owners:     map[string]string{"alpha": "0x1", "bravo": "0x2"},
		recordErrs: map[string]error{"bravo": errors.New("rpc timeout")},
	}
	r := NewReader(ledger, connectedStore(), chains.EduChainID)

	entries, err := r.ListSubnames(context.Background(), "0xcontract")
	assert.ErrorIs(t, err, apperrors.ErrRegistryReadFailed)
	assert.Nil(t, entries, "no partial list")
}

func TestFailedRefreshKeepsLastSnapshot(t *testing.T) {
	ledger := &mockLedger{
		names:   []string{"alpha"},
		records: map[string]string{"alpha": "r1"},
		owners:  map[string]string{"alpha": "0x1"},
	}
	r := NewReader(ledger, connectedStore(), chains.EduChainID)

	first, err := r.ListSubnames(context.Background(), "0xcontract")
	require.NoError(t, err)
	require.Len(t, first, 1)

	ledger.recordErrs = map[string]error{"alpha": errors.New("boom")}
	_, err = r.ListSubnames(context.Background(), "0xcontract")
	require.ErrorIs(t, err, apperrors.ErrRegistryReadFailed)

	assert.Equal(t, first, r.LastSubnames("0xcontract"))
}

func TestListTopLevelAssignsCreatedIndex(t *testing.T) {
	ledger := &mockLedger{
		topLevel: []TopLevelEntry{
			{TLD: "zo", Contract: "0x1"},
			{TLD: "edu", Contract: "0x2"},
		},
	}
	r := NewReader(ledger, connectedStore(), chains.EduChainID)

	entries, err := r.ListTopLevel(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].CreatedIndex)
	assert.Equal(t, 1, entries[1].CreatedIndex)
	assert.Equal(t, entries, r.LastTopLevel())
}

func TestListTopLevelReadFailure(t *testing.T) {
	ledger := &mockLedger{topLevelErr: errors.New("connection refused")}
	r := NewReader(ledger, connectedStore(), chains.EduChainID)

	_, err := r.ListTopLevel(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrRegistryReadFailed)
	assert.Nil(t, r.LastTopLevel())
}

func TestListTopLevelEmptyWhenDisconnected(t *testing.T) {
	r := NewReader(&mockLedger{topLevel: []TopLevelEntry{{TLD: "zo"}}}, session.NewStore(), chains.EduChainID)

	entries, err := r.ListTopLevel(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, entries)
}
