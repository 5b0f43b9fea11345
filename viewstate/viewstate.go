// Package viewstate derives presentation-ready state from the session and the
// latest registry reads. Project is a pure function: no I/O, and identical
// inputs always produce structurally identical view models.
package viewstate

import (
	"strings"

	"namespace-tui/chains"
	"namespace-tui/registry"
	"namespace-tui/session"
	"namespace-tui/txflow"
)

// Banner is the connection prompt shown above the page content, chosen by
// precedence: no provider > disconnected > wrong network > nominal.
type Banner int

const (
	BannerNominal Banner = iota
	BannerNoWallet
	BannerConnect
	BannerSwitchNetwork
)

func (b Banner) String() string {
	switch b {
	case BannerNoWallet:
		return "no-wallet"
	case BannerConnect:
		return "connect"
	case BannerSwitchNetwork:
		return "switch-network"
	default:
		return "nominal"
	}
}

// Inputs is everything Project needs. Profile is the resolved profile of the
// session's current chain; Stale marks the entry lists as surviving a failed
// refresh.
type Inputs struct {
	HasProvider   bool
	Session       session.Session
	Profile       chains.ChainProfile
	ExpectedChain uint64
	TopLevel      []registry.TopLevelEntry
	Subnames      []registry.SubNameEntry
	Pending       []txflow.Pending
	Query         string
	Stale         bool
}

// ViewModel is what the presentation layer renders.
type ViewModel struct {
	Banner      Banner
	NetworkName string
	Account     string

	TopLevel []registry.TopLevelEntry
	Subnames []registry.SubNameEntry

	CreateBusy   bool
	RegisterBusy bool
	WithdrawBusy bool

	Stale bool
}

// Project derives the view model. Entry filtering is a case-insensitive
// substring match that preserves the original order.
func Project(in Inputs) ViewModel {
	vm := ViewModel{
		NetworkName: in.Profile.Name,
		Stale:       in.Stale,
	}

	switch {
	case !in.HasProvider:
		vm.Banner = BannerNoWallet
	case in.Session.Status != session.Connected:
		vm.Banner = BannerConnect
	case in.Session.ChainID != in.ExpectedChain:
		vm.Banner = BannerSwitchNetwork
	default:
		vm.Banner = BannerNominal
	}

	if in.Session.Status == session.Connected {
		vm.Account = in.Session.Account
	}

	query := strings.ToLower(in.Query)
	for _, e := range in.TopLevel {
		if query == "" || strings.Contains(strings.ToLower(e.TLD), query) {
			vm.TopLevel = append(vm.TopLevel, e)
		}
	}
	for _, e := range in.Subnames {
		if query == "" || strings.Contains(strings.ToLower(e.Name), query) {
			vm.Subnames = append(vm.Subnames, e)
		}
	}

	for _, p := range in.Pending {
		if p.Status != txflow.Submitted {
			continue
		}
		switch p.Kind {
		case txflow.CreateTopLevel:
			vm.CreateBusy = true
		case txflow.RegisterSubName:
			vm.RegisterBusy = true
		case txflow.Withdraw:
			vm.WithdrawBusy = true
		}
	}

	return vm
}
