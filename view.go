package main

import (
	"strings"

	"namespace-tui/chains"
	"namespace-tui/config"
	"namespace-tui/helpers"
	"namespace-tui/registry"
	"namespace-tui/rpc"
	"namespace-tui/session"
	"namespace-tui/viewstate"
	launchpadview "namespace-tui/views/launchpad"
	logview "namespace-tui/views/log"
	namespaceview "namespace-tui/views/namespace"
	networksview "namespace-tui/views/networks"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- PROJECTION HELPERS --------------------

// project derives the pure view model for the current state.
func (m *model) project() viewstate.ViewModel {
	return viewstate.Project(viewstate.Inputs{
		HasProvider:   m.hasProvider,
		Session:       m.sess,
		Profile:       chains.Resolve(m.sess.ChainID),
		ExpectedChain: m.cfg.ChainID,
		TopLevel:      m.topLevel,
		Subnames:      m.subnames,
		Pending:       m.pendings,
		Query:         m.search.Value(),
		Stale:         m.staleTopLevel || m.staleSubnames,
	})
}

func (m *model) visibleTopLevel() []registry.TopLevelEntry {
	return m.project().TopLevel
}

func (m *model) visibleSubnames() []registry.SubNameEntry {
	return m.project().Subnames
}

// canMutate reports whether mutating calls may be offered right now.
func (m *model) canMutate() bool {
	return m.coordinator != nil && m.project().Banner == viewstate.BannerNominal
}

func (m *model) chainName(id uint64) string {
	return chains.Resolve(id).Name
}

func (m *model) currencySymbol() string {
	p := chains.Resolve(m.cfg.ChainID)
	if p.Currency.Symbol == "" {
		return "ETH"
	}
	return p.Currency.Symbol
}

func (m *model) explorerTxURL(hash string) string {
	return chains.Resolve(m.cfg.ChainID).ExplorerTxURL(hash)
}

func (m *model) knownChains() []chains.ChainProfile {
	return chains.All()
}

// -------------------- VIEW --------------------

// banner renders the connection prompt above the page content. Precedence is
// decided by the projection, not here.
func (m *model) banner(vm viewstate.ViewModel) string {
	switch vm.Banner {
	case viewstate.BannerNoWallet:
		return styleWarnBanner.Render("⚠ No wallet bridge found. Start your signer wallet and restart, or set bridge_url in the config.")
	case viewstate.BannerConnect:
		if m.connecting || m.sess.Status == session.Connecting {
			return styleInfoBanner.Render(m.spin.View() + " Waiting for wallet approval…")
		}
		return styleInfoBanner.Render("Press " + key("c") + styleInfoBanner.Render(" to connect your wallet."))
	case viewstate.BannerSwitchNetwork:
		return styleWarnBanner.Render("⚠ Wrong network: on " + vm.NetworkName + ", expected " + m.chainName(m.cfg.ChainID) + ". Press " + key("s") + styleWarnBanner.Render(" to switch."))
	default:
		return ""
	}
}

func (m *model) globalHeader(vm viewstate.ViewModel) string {
	availableWidth := max(0, m.w-8)

	// connected account
	var addrDisplay string
	if vm.Account != "" {
		addrDisplay = lipgloss.NewStyle().
			Foreground(cAccent2).
			Bold(true).
			Render("Account: " + helpers.FadeString(helpers.ShortenAddr(vm.Account), "#F25D94", "#EDFF82"))
	} else {
		addrDisplay = lipgloss.NewStyle().
			Foreground(cMuted).
			Render("Account: not connected")
	}

	// network status with dot
	var statusIcon string
	var statusColor lipgloss.Color
	var statusText string

	switch {
	case !m.hasProvider:
		statusIcon = "○"
		statusColor = lipgloss.Color("#c01c28")
		statusText = "No Wallet"
	case m.rpcConnecting:
		statusIcon = "○"
		statusColor = cMuted
		statusText = "Connecting..."
	case !m.rpcConnected:
		statusIcon = "○"
		statusColor = lipgloss.Color("#c01c28")
		statusText = "RPC Failed"
	case m.sess.Status != session.Connected:
		statusIcon = "○"
		statusColor = cMuted
		statusText = "Disconnected"
	case m.sess.ChainID != m.cfg.ChainID:
		statusIcon = "●"
		statusColor = cWarn
		statusText = vm.NetworkName
	default:
		statusIcon = "●"
		statusColor = cAccent
		statusText = vm.NetworkName
	}

	netDisplay := lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render(statusIcon + " " + statusText)

	titleStyle := lipgloss.NewStyle().
		Foreground(cAccent).
		Bold(true)
	titleText := titleStyle.Render(helpers.FadeString("namespace launchpad", "#7EE787", "#82CFFD"))

	addrWidth := lipgloss.Width(addrDisplay)
	netWidth := lipgloss.Width(netDisplay)
	titleWidth := lipgloss.Width(titleText)
	totalOtherWidth := addrWidth + netWidth + titleWidth

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		headerLine = addrDisplay + "\n" + titleText + "\n" + netDisplay
	} else {
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding

		leftSpacer := strings.Repeat(" ", max(1, leftPadding))
		rightSpacer := strings.Repeat(" ", max(1, rightPadding))

		headerLine = addrDisplay + leftSpacer + titleText + rightSpacer + netDisplay
	}

	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + separator
}

// renderTxResultPanel shows the explorer link for a confirmed transaction as
// both text and a scannable QR code.
func (m *model) renderTxResultPanel() string {
	content := titleStyle.Render(m.txResultTitle) + "\n\n"
	content += rpc.GenerateQRCode(m.txResultLink) + "\n"
	content += lipgloss.NewStyle().Foreground(cAccent).Render(m.txResultLink)
	content += "\n\n" + lipgloss.NewStyle().Foreground(cMuted).Render("Press "+key("y")+lipgloss.NewStyle().Foreground(cMuted).Render(" to copy • Esc to close"))
	if m.copiedMsg != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(cAccent).Bold(true).Render(m.copiedMsg)
	}

	contentWidth := max(0, m.w-8)
	centered := lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center).Render(content)
	panel := panelStyle.Width(max(0, m.w-4)).Render(centered)
	return appStyle.Render(lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		panel,
	))
}

func (m *model) View() string {
	vm := m.project()

	if m.showTxResultPanel {
		return m.renderTxResultPanel()
	}

	globalHdr := m.globalHeader(vm)
	headerPanel := panelStyle.Width(max(0, m.w-2)).Render(globalHdr)

	var pageContent string
	var nav string

	switch m.activePage {

	case config.PageLaunchpad:
		content := launchpadview.Render(launchpadview.Props{
			Entries:      vm.TopLevel,
			SelectedIdx:  m.selectedTLD,
			Loading:      m.loadingTopLevel,
			Stale:        vm.Stale,
			CreateBusy:   vm.CreateBusy,
			WithdrawBusy: vm.WithdrawBusy,
			Query:        m.search.Value(),
			SpinnerView:  m.spin.View(),
			FeeLabel:     helpers.FormatETH(registry.CreateFee, m.currencySymbol()),
		})

		if m.searching {
			content += "\n" + m.search.View()
		}
		if b := m.banner(vm); b != "" {
			content = b + "\n\n" + content
		}
		if m.createForm != nil {
			content = titleStyle.Render("Create Top-Level Domain") + "\n\n" + m.createForm.View()
		}

		pageContent = panelStyle.Width(max(0, m.w-2)).Render(content)
		nav = launchpadview.Nav(m.w-2, m.createForm != nil)

	case config.PageNamespace:
		tld, contract := "", ""
		if m.openTLD != nil {
			tld, contract = m.openTLD.TLD, m.openTLD.Contract
		}
		content := namespaceview.Render(namespaceview.Props{
			TLD:          tld,
			Contract:     contract,
			Entries:      vm.Subnames,
			SelectedIdx:  m.selectedName,
			Loading:      m.loadingSubnames,
			Stale:        vm.Stale,
			RegisterBusy: vm.RegisterBusy,
			Query:        m.search.Value(),
			CopiedMsg:    m.copiedMsg,
			SpinnerView:  m.spin.View(),
		})

		if m.searching {
			content += "\n" + m.search.View()
		}
		if b := m.banner(vm); b != "" {
			content = b + "\n\n" + content
		}
		if m.registerForm != nil {
			content = titleStyle.Render("Register Name") + "\n\n" + m.registerForm.View()
		}

		pageContent = panelStyle.Width(max(0, m.w-2)).Render(content)
		nav = namespaceview.Nav(m.w-2, m.registerForm != nil)

	case config.PageNetworks:
		content := networksview.Render(networksview.Props{
			Catalog:     m.knownChains(),
			CurrentID:   m.sess.ChainID,
			ExpectedID:  m.cfg.ChainID,
			SelectedIdx: m.selectedChainIdx,
			Switching:   m.switching,
			SwitchError: m.switchError,
			SpinnerView: m.spin.View(),
		})
		if b := m.banner(vm); b != "" {
			content = b + "\n\n" + content
		}
		pageContent = panelStyle.Width(max(0, m.w-2)).Render(content)
		nav = networksview.Nav(m.w - 2)
	}

	// Render log panel only if enabled
	if m.logEnabled {
		reservedHeight := 10
		availableHeight := max(5, m.h-reservedHeight)
		maxLogHeight := min(m.h/3, 15)
		logPanelHeight := min(availableHeight, maxLogHeight)
		m.logViewport.Height = logPanelHeight

		logPanel := logview.Render(m.w, m.h, m.logReady, m.logSpinner.View(), m.logViewport)
		content := lipgloss.JoinVertical(lipgloss.Left, headerPanel, pageContent, nav, logPanel)
		return appStyle.Render(content)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, headerPanel, pageContent, nav)
	return appStyle.Render(content)
}

func key(s string) string {
	return hotkeyKeyStyle.Render(s)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
