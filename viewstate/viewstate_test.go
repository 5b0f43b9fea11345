package viewstate

import (
	"testing"

	"namespace-tui/chains"
	"namespace-tui/registry"
	"namespace-tui/session"
	"namespace-tui/txflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nominalInputs() Inputs {
	return Inputs{
		HasProvider: true,
		Session: session.Session{
			Status:  session.Connected,
			Account: "0xabc",
			ChainID: chains.EduChainID,
		},
		Profile:       chains.Resolve(chains.EduChainID),
		ExpectedChain: chains.EduChainID,
		TopLevel: []registry.TopLevelEntry{
			{TLD: "zo", Contract: "0x1", CreatedIndex: 0},
			{TLD: "edu", Contract: "0x2", CreatedIndex: 1},
			{TLD: "zebra", Contract: "0x3", CreatedIndex: 2},
		},
		Subnames: []registry.SubNameEntry{
			{Name: "bob", Owner: "0x4", MintIndex: 0},
			{Name: "alice", Owner: "0x5", MintIndex: 1},
		},
	}
}

func TestBannerPrecedence(t *testing.T) {
	in := nominalInputs()
	assert.Equal(t, BannerNominal, Project(in).Banner)

	in.Session.ChainID = 1
	assert.Equal(t, BannerSwitchNetwork, Project(in).Banner)

	in.Session.Status = session.Disconnected
	assert.Equal(t, BannerConnect, Project(in).Banner)

	// no provider beats everything
	in.HasProvider = false
	assert.Equal(t, BannerNoWallet, Project(in).Banner)
}

func TestFilterIsCaseInsensitiveAndOrderPreserving(t *testing.T) {
	in := nominalInputs()
	in.Query = "Z"

	vm := Project(in)
	require.Len(t, vm.TopLevel, 2)
	assert.Equal(t, "zo", vm.TopLevel[0].TLD)
	assert.Equal(t, "zebra", vm.TopLevel[1].TLD)
}

func TestEmptyQueryKeepsEverything(t *testing.T) {
	vm := Project(nominalInputs())
	assert.Len(t, vm.TopLevel, 3)
	assert.Len(t, vm.Subnames, 2)
}

func TestBusyFlagsFromSubmittedPendings(t *testing.T) {
	in := nominalInputs()
	in.Pending = []txflow.Pending{
		{Kind: txflow.CreateTopLevel, Status: txflow.Submitted},
		{Kind: txflow.Withdraw, Status: txflow.Failed},
	}

	vm := Project(in)
	assert.True(t, vm.CreateBusy)
	assert.False(t, vm.WithdrawBusy, "terminal pendings do not disable controls")
	assert.False(t, vm.RegisterBusy)
}

func TestAccountOnlyWhenConnected(t *testing.T) {
	in := nominalInputs()
	in.Session.Status = session.Connecting
	assert.Empty(t, Project(in).Account)

	in.Session.Status = session.Connected
	assert.Equal(t, "0xabc", Project(in).Account)
}

func TestProjectIsPure(t *testing.T) {
	in := nominalInputs()
	in.Query = "z"
	in.Pending = []txflow.Pending{{Kind: txflow.RegisterSubName, Status: txflow.Submitted}}
	in.Stale = true

	first := Project(in)
	for range 5 {
		assert.Equal(t, first, Project(in))
	}
}
