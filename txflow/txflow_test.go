package txflow

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"

	"namespace-tui/apperrors"
	"namespace-tui/chains"
	"namespace-tui/registry"
	"namespace-tui/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSubmitter counts submissions and serves scripted inclusion results.
type mockSubmitter struct {
	mu          sync.Mutex
	createCalls int32
	inclusion   registry.Inclusion
	waitErr     error
	submitErr   error
	gate        chan struct{} // optional: blocks SubmitCreate until closed
}

func (m *mockSubmitter) SubmitCreate(ctx context.Context, from, tld string, fee *big.Int) (string, error) {
	atomic.AddInt32(&m.createCalls, 1)
	if m.gate != nil {
		<-m.gate
	}
	if m.submitErr != nil {
		return "", m.submitErr
	}
	return "0xhash-create", nil
}

func (m *mockSubmitter) SubmitRegister(ctx context.Context, from, contract, name string) (string, error) {
	if m.submitErr != nil {
		return "", m.submitErr
	}
	return "0xhash-register", nil
}

func (m *mockSubmitter) SubmitWithdraw(ctx context.Context, from string) (string, error) {
	if m.submitErr != nil {
		return "", m.submitErr
	}
	return "0xhash-withdraw", nil
}

func (m *mockSubmitter) WaitInclusion(ctx context.Context, hash string) (registry.Inclusion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.waitErr != nil {
		return registry.Inclusion{Hash: hash}, m.waitErr
	}
	inc := m.inclusion
	inc.Hash = hash
	return inc, nil
}

func connectedStore() *session.Store {
	s := session.NewStore()
	s.SetConnected("0xabc", chains.EduChainID)
	return s
}

func newTestCoordinator(ledger registry.Submitter, store *session.Store) *Coordinator {
	return NewCoordinator(ledger, store, chains.EduChainID, "0xfactory")
}

func TestSubmitRequiresConnectedSession(t *testing.T) {
	c := newTestCoordinator(&mockSubmitter{}, session.NewStore())
	_, err := c.Submit(context.Background(), CreateTopLevel, Params{TLD: "zo"})
	assert.ErrorIs(t, err, apperrors.ErrPreconditionFailed)
}

func TestSubmitRequiresExpectedChain(t *testing.T) {
	store := session.NewStore()
	store.SetConnected("0xabc", 1)
	c := newTestCoordinator(&mockSubmitter{}, store)

	_, err := c.Submit(context.Background(), CreateTopLevel, Params{TLD: "zo"})
	assert.ErrorIs(t, err, apperrors.ErrPreconditionFailed)
}

func TestConcurrentDuplicateSubmitReachesLedgerOnce(t *testing.T) {
	ledger := &mockSubmitter{gate: make(chan struct{})}
	c := newTestCoordinator(ledger, connectedStore())

	results := make(chan error, 2)
	for range 2 {
		go func() {
			_, err := c.Submit(context.Background(), CreateTopLevel, Params{TLD: "zo"})
			results <- err
		}()
	}

	// One goroutine is inside the ledger call, the other must already have
	// been rejected by the in-flight slot.
	rejected := <-results
	assert.ErrorIs(t, rejected, apperrors.ErrPreconditionFailed)

	close(ledger.gate)
	accepted := <-results
	assert.NoError(t, accepted)
	assert.Equal(t, int32(1), atomic.LoadInt32(&ledger.createCalls))
}

func TestDifferentKindsMayRunConcurrently(t *testing.T) {
	ledger := &mockSubmitter{}
	c := newTestCoordinator(ledger, connectedStore())

	_, err := c.Submit(context.Background(), CreateTopLevel, Params{TLD: "zo"})
	require.NoError(t, err)
	_, err = c.Submit(context.Background(), Withdraw, Params{})
	require.NoError(t, err)
	_, err = c.Submit(context.Background(), RegisterSubName, Params{Contract: "0xns", Name: "bob"})
	require.NoError(t, err)
}

func TestAwaitConfirms(t *testing.T) {
	ledger := &mockSubmitter{inclusion: registry.Inclusion{Succeeded: true}}
	c := newTestCoordinator(ledger, connectedStore())

	pending, err := c.Submit(context.Background(), CreateTopLevel, Params{TLD: "zo"})
	require.NoError(t, err)
	assert.Equal(t, Submitted, pending.Status)
	assert.True(t, c.InFlight(CreateTopLevel, Params{TLD: "zo"}))

	done := c.Await(context.Background(), pending)
	assert.Equal(t, Confirmed, done.Status)
	assert.NoError(t, done.Cause)
	assert.False(t, c.InFlight(CreateTopLevel, Params{TLD: "zo"}))
}

func TestAwaitRevertedDoesNotConfirm(t *testing.T) {
	ledger := &mockSubmitter{inclusion: registry.Inclusion{Succeeded: false, RevertReason: "out of gas"}}
	c := newTestCoordinator(ledger, connectedStore())

	pending, err := c.Submit(context.Background(), Withdraw, Params{})
	require.NoError(t, err)

	done := c.Await(context.Background(), pending)
	assert.Equal(t, Failed, done.Status)
	assert.ErrorIs(t, done.Cause, apperrors.ErrTransactionReverted)
}

func TestDuplicateNameRevertGetsDistinguishedCause(t *testing.T) {
	ledger := &mockSubmitter{inclusion: registry.Inclusion{Succeeded: false, RevertReason: "TLD already exists"}}
	c := newTestCoordinator(ledger, connectedStore())

	pending, err := c.Submit(context.Background(), CreateTopLevel, Params{TLD: "zo"})
	require.NoError(t, err)

	done := c.Await(context.Background(), pending)
	assert.Equal(t, Failed, done.Status)
	assert.ErrorIs(t, done.Cause, apperrors.ErrDuplicateName)
}

func TestSubmissionErrorIsTerminalAndReleasesSlot(t *testing.T) {
	ledger := &mockSubmitter{submitErr: errors.New("insufficient funds")}
	c := newTestCoordinator(ledger, connectedStore())

	pending, err := c.Submit(context.Background(), CreateTopLevel, Params{TLD: "zo"})
	assert.Error(t, err)
	assert.Equal(t, Failed, pending.Status)
	assert.ErrorContains(t, pending.Cause, "insufficient funds")

	// The slot must be free for an explicit user re-trigger.
	ledger.submitErr = nil
	_, err = c.Submit(context.Background(), CreateTopLevel, Params{TLD: "zo"})
	assert.NoError(t, err)
}

func TestAwaitErrorFailsPending(t *testing.T) {
	ledger := &mockSubmitter{waitErr: errors.New("provider disconnected")}
	c := newTestCoordinator(ledger, connectedStore())

	pending, err := c.Submit(context.Background(), RegisterSubName, Params{Contract: "0xns", Name: "bob"})
	require.NoError(t, err)

	done := c.Await(context.Background(), pending)
	assert.Equal(t, Failed, done.Status)
	assert.ErrorContains(t, done.Cause, "provider disconnected")
}

func TestPendingCarriesSubmissionEpoch(t *testing.T) {
	store := session.NewStore()
	store.Reset()
	store.Reset()
	store.SetConnected("0xabc", chains.EduChainID)
	c := newTestCoordinator(&mockSubmitter{inclusion: registry.Inclusion{Succeeded: true}}, store)

	pending, err := c.Submit(context.Background(), Withdraw, Params{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), pending.Epoch)

	// rejected submits carry the epoch too, so callers can apply their
	// staleness check uniformly
	dup, err := c.Submit(context.Background(), Withdraw, Params{})
	assert.ErrorIs(t, err, apperrors.ErrPreconditionFailed)
	assert.Equal(t, uint64(2), dup.Epoch)
}
