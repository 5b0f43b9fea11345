package main

import (
	"testing"

	"namespace-tui/chains"
	"namespace-tui/registry"
	"namespace-tui/session"
	"namespace-tui/txflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestShell builds a minimal model for driving Update directly. The log
// panel stays disabled so handlers run without a logger.
func newTestShell() *model {
	return &model{store: session.NewStore()}
}

// simulateExternalChainChange does what the wallet manager does when the
// wallet reports a new chain: reset the store, then deliver the message.
func simulateExternalChainChange(m *model, newChainID uint64) {
	epoch := m.store.Reset()
	_, _ = m.Update(chainChangedMsg{chainID: newChainID, epoch: epoch})
}

func TestChainChangeDiscardsInFlightListResult(t *testing.T) {
	m := newTestShell()
	m.store.SetConnected("0xabc", chains.EduChainID)
	m.sess = m.store.Current()
	m.loadingTopLevel = true
	issued := m.store.Epoch()

	simulateExternalChainChange(m, 137)
	assert.NotEqual(t, session.Connected, m.sess.Status, "session must not stay connected through a reset")

	// the read launched before the reset resolves now
	_, _ = m.Update(topLevelLoadedMsg{
		entries: []registry.TopLevelEntry{{TLD: "zo", Contract: "0x1"}},
		epoch:   issued,
	})
	assert.Empty(t, m.topLevel, "list read issued before the reset must not land")

	// a read issued under the new epoch still applies
	_, _ = m.Update(topLevelLoadedMsg{
		entries: []registry.TopLevelEntry{{TLD: "edu", Contract: "0x2"}},
		epoch:   m.store.Epoch(),
	})
	require.Len(t, m.topLevel, 1)
	assert.Equal(t, "edu", m.topLevel[0].TLD)
}

func TestChainChangeDiscardsStaleSubmitResult(t *testing.T) {
	m := newTestShell()
	m.store.SetConnected("0xabc", chains.EduChainID)
	m.sess = m.store.Current()

	stale := txflow.Pending{
		Kind:   txflow.CreateTopLevel,
		Target: "0xfactory",
		Hash:   "0xdead",
		Status: txflow.Submitted,
		Epoch:  m.store.Epoch(),
	}

	simulateExternalChainChange(m, 137)

	_, cmd := m.Update(txSubmittedMsg{pending: stale})
	assert.Nil(t, cmd, "no await for a submit from a dead epoch")
	assert.Empty(t, m.pendings)
	assert.False(t, m.project().CreateBusy, "a dead-epoch submit must not pin the busy flag")
}

func TestChainChangeDiscardsStaleTerminalResult(t *testing.T) {
	m := newTestShell()
	m.store.SetConnected("0xabc", chains.EduChainID)
	m.sess = m.store.Current()

	pending := txflow.Pending{
		Kind:   txflow.Withdraw,
		Target: "0xfactory",
		Hash:   "0xbeef",
		Status: txflow.Submitted,
		Epoch:  m.store.Epoch(),
	}
	_, _ = m.Update(txSubmittedMsg{pending: pending})
	require.Len(t, m.pendings, 1)

	simulateExternalChainChange(m, 1)
	assert.Empty(t, m.pendings, "reset clears the pending history")

	done := pending
	done.Status = txflow.Confirmed
	_, cmd := m.Update(txFinishedMsg{pending: done})
	assert.Nil(t, cmd, "a confirmation from a dead epoch must not trigger a refresh")
	assert.False(t, m.showTxResultPanel)
}
