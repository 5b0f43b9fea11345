package main

import (
	"context"
	"time"

	"namespace-tui/config"
	"namespace-tui/registry"
	"namespace-tui/rpc"
	"namespace-tui/txflow"
	"namespace-tui/wallet"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

// dialBridge connects to the local wallet bridge
func dialBridge(url string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		b, err := wallet.DialBridge(ctx, url)
		return bridgeDialedMsg{bridge: b, err: err}
	}
}

// connectRPC establishes the read-only RPC connection to the chain
func connectRPC(url string) tea.Cmd {
	return func() tea.Msg {
		result := rpc.Connect(url)
		return rpcConnectedMsg{client: result.Client, err: result.Error}
	}
}

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// restoreSession silently restores an already-authorized wallet session.
// It never prompts: a wallet with nothing authorized stays disconnected.
func restoreSession(mgr *wallet.Manager) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		sess, err := mgr.Restore(ctx)
		return sessionRestoredMsg{sess: sess, err: err}
	}
}

// connectWallet prompts the user for account access through the wallet
func connectWallet(mgr *wallet.Manager) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		sess, err := mgr.Connect(ctx)
		return connectResultMsg{sess: sess, err: err}
	}
}

// switchChain asks the wallet to move to the given chain. The session itself
// only changes when the wallet reports the chain change.
func switchChain(mgr *wallet.Manager, chainID uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		err := mgr.SwitchChain(ctx, chainID)
		return switchResultMsg{chainID: chainID, err: err}
	}
}

// loadTopLevel fetches the TLD list from the factory
func loadTopLevel(reader *registry.Reader, epoch uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		entries, err := reader.ListTopLevel(ctx)
		return topLevelLoadedMsg{entries: entries, err: err, epoch: epoch}
	}
}

// loadSubnames fetches the minted names under one namespace contract
func loadSubnames(reader *registry.Reader, contract string, epoch uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		entries, err := reader.ListSubnames(ctx, contract)
		return subnamesLoadedMsg{contract: contract, entries: entries, err: err, epoch: epoch}
	}
}

// submitTx hands a mutating call to the wallet for signing
func submitTx(coord *txflow.Coordinator, kind txflow.Kind, p txflow.Params) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		pending, err := coord.Submit(ctx, kind, p)
		return txSubmittedMsg{pending: pending, err: err}
	}
}

// awaitTx blocks until the submitted transaction reaches a terminal status
func awaitTx(coord *txflow.Coordinator, pending txflow.Pending) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		return txFinishedMsg{pending: coord.Await(ctx, pending)}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(text)
		if err == nil {
			return clipboardCopiedMsg{}
		}
		return nil
	}
}

// clearClipboardFeedback waits 2 seconds then clears the copy feedback
func clearClipboardFeedback() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return clearClipboardMsg{}
	})
}

// -------------------- MODEL HELPER METHODS --------------------

// addLog adds a log entry with timestamp and type
func (m *model) addLog(logType, message string) {
	if !m.logEnabled || !m.logReady || m.logger == nil {
		return
	}

	switch logType {
	case "info":
		m.logger.Info(message)
	case "success":
		m.logger.Info("✓", "msg", message)
	case "error":
		m.logger.Error(message)
	case "warning":
		m.logger.Warn(message)
	case "debug":
		m.logger.Debug(message)
	default:
		m.logger.Print(message)
	}

	m.updateLogViewport()
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if !m.logReady || m.logBuffer == nil {
		return
	}

	content := m.logBuffer.String()
	m.logViewport.SetContent(content)
	m.logViewport.GotoBottom()
}

// refreshActive re-reads whatever entry list the active page shows. Called
// after connect, chain change and every confirmed transaction.
func (m *model) refreshActive() tea.Cmd {
	if m.reader == nil {
		return nil
	}
	epoch := m.store.Epoch()

	if m.activePage == config.PageNamespace && m.openTLD != nil {
		m.loadingSubnames = true
		return loadSubnames(m.reader, m.openTLD.Contract, epoch)
	}
	m.loadingTopLevel = true
	return loadTopLevel(m.reader, epoch)
}
