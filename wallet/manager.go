package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"namespace-tui/apperrors"
	"namespace-tui/chains"
	"namespace-tui/session"
)

// Manager orchestrates the wallet session: connect, silent restore, chain
// switching and the chain-change invalidation barrier. It is the only writer
// of the session store.
type Manager struct {
	provider Provider
	store    *session.Store

	subscribeOnce sync.Once

	mu          sync.Mutex
	onChainHook func(newChainID uint64, epoch uint64)
}

func NewManager(p Provider, store *session.Store) *Manager {
	return &Manager{provider: p, store: store}
}

// SetChainChangeHook installs the callback invoked after an external chain
// change has reset the session. The hook receives the new chain and the epoch
// the reset produced.
func (m *Manager) SetChainChangeHook(hook func(newChainID uint64, epoch uint64)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChainHook = hook
}

// Connect prompts the user for account access and, on success, moves the
// session to Connected with the granted account and the wallet's active chain.
func (m *Manager) Connect(ctx context.Context) (session.Session, error) {
	if m.provider == nil {
		return m.store.Current(), apperrors.ErrNoWalletInstalled
	}

	m.store.SetConnecting()

	accounts, err := m.provider.RequestAccounts(ctx)
	if err != nil {
		m.store.SetDisconnected()
		return m.store.Current(), err
	}
	if len(accounts) == 0 {
		m.store.SetDisconnected()
		return m.store.Current(), fmt.Errorf("%w: no account granted", apperrors.ErrUserRejected)
	}

	chainID, err := m.provider.ChainID(ctx)
	if err != nil {
		m.store.SetDisconnected()
		return m.store.Current(), err
	}

	m.store.SetConnected(accounts[0], chainID)
	m.ensureChainListener()
	return m.store.Current(), nil
}

// Restore checks for already-authorized accounts at startup. It never prompts:
// if nothing is authorized the session simply stays Disconnected.
func (m *Manager) Restore(ctx context.Context) (session.Session, error) {
	if m.provider == nil {
		return m.store.Current(), apperrors.ErrNoWalletInstalled
	}

	accounts, err := m.provider.Accounts(ctx)
	if err != nil {
		return m.store.Current(), err
	}
	if len(accounts) == 0 {
		return m.store.Current(), nil
	}

	chainID, err := m.provider.ChainID(ctx)
	if err != nil {
		return m.store.Current(), err
	}

	m.store.SetConnected(accounts[0], chainID)
	m.ensureChainListener()
	return m.store.Current(), nil
}

// SwitchChain asks the wallet to change chains. If the wallet does not know
// the chain, the catalog profile is registered and the switch retried once.
// On any failure the session chain field is left untouched; the eventual
// chain-change notification is the only thing that moves it.
func (m *Manager) SwitchChain(ctx context.Context, chainID uint64) error {
	if m.provider == nil {
		return apperrors.ErrNoWalletInstalled
	}

	err := m.provider.SwitchChain(ctx, chainID)
	if errors.Is(err, apperrors.ErrUnknownChain) {
		profile := chains.Resolve(chainID)
		if !profile.Known() {
			return fmt.Errorf("%w: chain %d not in catalog", apperrors.ErrNetworkSwitchFailed, chainID)
		}
		if addErr := m.provider.AddChain(ctx, profile); addErr != nil {
			return fmt.Errorf("%w: add chain: %v", apperrors.ErrNetworkSwitchFailed, addErr)
		}
		err = m.provider.SwitchChain(ctx, chainID)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrUserRejected) {
			return err
		}
		return fmt.Errorf("%w: %v", apperrors.ErrNetworkSwitchFailed, err)
	}
	return nil
}

// ensureChainListener registers the chain-change subscription exactly once per
// process lifetime. An external chain change invalidates every contract
// binding captured before it, so the only correct reaction is a full session
// reset, not a field update.
func (m *Manager) ensureChainListener() {
	m.subscribeOnce.Do(func() {
		m.provider.OnChainChanged(func(newChainID uint64) {
			epoch := m.store.Reset()
			m.mu.Lock()
			hook := m.onChainHook
			m.mu.Unlock()
			if hook != nil {
				hook(newChainID, epoch)
			}
		})
	})
}
