package main

import (
	"namespace-tui/registry"
	"namespace-tui/rpc"
	"namespace-tui/session"
	"namespace-tui/txflow"
	"namespace-tui/wallet"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture.
// Messages produced by session-scoped reads carry the epoch they were issued
// under; the update loop discards them when the epoch has moved on.

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}

// bridgeDialedMsg contains the result of dialing the wallet bridge
type bridgeDialedMsg struct {
	bridge *wallet.Bridge
	err    error
}

// rpcConnectedMsg contains result of the read RPC connection attempt
type rpcConnectedMsg struct {
	client *rpc.Client
	err    error
}

// sessionRestoredMsg contains the result of the silent session restore
type sessionRestoredMsg struct {
	sess session.Session
	err  error
}

// connectResultMsg contains the result of an explicit connect prompt
type connectResultMsg struct {
	sess session.Session
	err  error
}

// switchResultMsg contains the result of a requested network switch
type switchResultMsg struct {
	chainID uint64
	err     error
}

// chainChangedMsg reports an external chain change observed by the wallet
// manager, after the session has already been reset
type chainChangedMsg struct {
	chainID uint64
	epoch   uint64
}

// topLevelLoadedMsg contains a fresh TLD list from the factory
type topLevelLoadedMsg struct {
	entries []registry.TopLevelEntry
	err     error
	epoch   uint64
}

// subnamesLoadedMsg contains a fresh name list for one namespace contract
type subnamesLoadedMsg struct {
	contract string
	entries  []registry.SubNameEntry
	err      error
	epoch    uint64
}

// txSubmittedMsg contains the result of handing a transaction to the wallet
type txSubmittedMsg struct {
	pending txflow.Pending
	err     error
}

// txFinishedMsg contains a pending transaction that reached a terminal status
type txFinishedMsg struct {
	pending txflow.Pending
}

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct{}

// clearClipboardMsg clears the copy feedback after a short delay
type clearClipboardMsg struct{}
