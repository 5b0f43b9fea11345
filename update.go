package main

import (
	"errors"
	"fmt"
	"strings"

	"namespace-tui/apperrors"
	"namespace-tui/config"
	"namespace-tui/helpers"
	"namespace-tui/registry"
	"namespace-tui/session"
	"namespace-tui/txflow"
	"namespace-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// -------------------- TEMP FORM STORAGE --------------------
// Temporary form field storage (package-level to avoid pointer-to-copy issues)
var (
	tempCreateTLD    string
	tempRegisterName string
)

// program is set by main so the chain-change hook can push messages into the
// running event loop from outside it.
var program *tea.Program

func (m *model) createTLDForm() {
	tempCreateTLD = ""

	m.createForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New Top-Level Domain").
				Description(fmt.Sprintf("Deploys a namespace contract. Fee: %s", helpers.FormatETH(registry.CreateFee, m.currencySymbol()))).
				Value(&tempCreateTLD).
				Placeholder("mytld").
				Validate(func(s string) error {
					if !helpers.IsValidName(s) {
						return fmt.Errorf("lowercase letters, digits and hyphens only")
					}
					for _, e := range m.topLevel {
						if strings.EqualFold(e.TLD, s) {
							return fmt.Errorf("TLD %q already exists", s)
						}
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCatppuccin())

	m.createForm.Init()
}

func (m *model) createRegisterForm() {
	tempRegisterName = ""
	tld := ""
	if m.openTLD != nil {
		tld = m.openTLD.TLD
	}

	m.registerForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Register name under .%s", tld)).
				Description("Mints the name to your connected account").
				Value(&tempRegisterName).
				Placeholder("alice").
				Validate(func(s string) error {
					if !helpers.IsValidName(s) {
						return fmt.Errorf("lowercase letters, digits and hyphens only")
					}
					for _, e := range m.subnames {
						if strings.EqualFold(e.Name, s) {
							return fmt.Errorf("name %q is already taken", s)
						}
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCatppuccin())

	m.registerForm.Init()
}

// ensureWiring builds the ledger, reader and coordinator once both the read
// RPC and the wallet bridge are up.
func (m *model) ensureWiring() {
	if m.ledger != nil || m.ethClient == nil || m.bridge == nil {
		return
	}

	factory := m.cfg.ActiveFactory().Address
	ledger, err := registry.NewEthLedger(m.ethClient, m.bridge, factory)
	if err != nil {
		m.addLog("error", "Contract binding failed: "+err.Error())
		return
	}
	m.ledger = ledger
	m.reader = registry.NewReader(ledger, m.store, m.cfg.ChainID)
	m.coordinator = txflow.NewCoordinator(ledger, m.store, m.cfg.ChainID, factory)
}

// -------------------- UPDATE --------------------

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle the create-TLD form before anything else
	if m.activePage == config.PageLaunchpad && m.createForm != nil {
		// Intercept ESC key to cancel form
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			m.createForm = nil
			return m, nil
		}

		form, cmd := m.createForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.createForm = f

			if m.createForm.State == huh.StateCompleted {
				tld := strings.TrimSpace(tempCreateTLD)
				m.createForm = nil
				m.addLog("info", fmt.Sprintf("Submitting TLD `%s` (fee %s)", tld, helpers.FormatETH(registry.CreateFee, m.currencySymbol())))
				return m, submitTx(m.coordinator, txflow.CreateTopLevel, txflow.Params{TLD: tld})
			}

			if m.createForm.State == huh.StateAborted {
				m.createForm = nil
				return m, nil
			}
		}
		return m, cmd
	}

	// Handle the register-name form
	if m.activePage == config.PageNamespace && m.registerForm != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			m.registerForm = nil
			return m, nil
		}

		form, cmd := m.registerForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.registerForm = f

			if m.registerForm.State == huh.StateCompleted {
				name := strings.TrimSpace(tempRegisterName)
				m.registerForm = nil
				if m.openTLD == nil {
					return m, nil
				}
				m.addLog("info", fmt.Sprintf("Registering `%s.%s`", name, m.openTLD.TLD))
				return m, submitTx(m.coordinator, txflow.RegisterSubName, txflow.Params{Contract: m.openTLD.Contract, Name: name})
			}

			if m.registerForm.State == huh.StateAborted {
				m.registerForm = nil
				return m, nil
			}
		}
		return m, cmd
	}

	switch msg := msg.(type) {

	case logInitMsg:
		if !m.logEnabled {
			return m, nil
		}
		// Create logger that writes to our buffer
		m.logger = log.NewWithOptions(m.logBuffer, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Prefix:          "",
		})
		m.logger.SetLevel(log.DebugLevel)
		m.logger.SetStyles(&log.Styles{
			Timestamp: lipgloss.NewStyle().Foreground(cMuted),
			Caller:    lipgloss.NewStyle().Faint(true),
			Prefix:    lipgloss.NewStyle().Bold(true).Foreground(cAccent2),
			Message:   lipgloss.NewStyle().Foreground(cText),
			Key:       lipgloss.NewStyle().Foreground(cAccent),
			Value:     lipgloss.NewStyle().Foreground(cText),
			Separator: lipgloss.NewStyle().Faint(true),
			Levels: map[log.Level]lipgloss.Style{
				log.DebugLevel: lipgloss.NewStyle().Foreground(cMuted).SetString("DEBUG"),
				log.InfoLevel:  lipgloss.NewStyle().Foreground(cAccent2).SetString("INFO"),
				log.WarnLevel:  lipgloss.NewStyle().Foreground(cWarn).SetString("WARN"),
				log.ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).SetString("ERROR"),
			},
		})
		m.logReady = true
		m.addLog("info", "Logger enabled")
		return m, nil

	case bridgeDialedMsg:
		if msg.err != nil {
			m.hasProvider = false
			m.addLog("warning", "No wallet bridge reachable: "+msg.err.Error())
			return m, nil
		}
		m.hasProvider = true
		m.bridge = msg.bridge
		m.manager = wallet.NewManager(msg.bridge, m.store)
		m.manager.SetChainChangeHook(func(newChainID, epoch uint64) {
			if program != nil {
				program.Send(chainChangedMsg{chainID: newChainID, epoch: epoch})
			}
		})
		m.ensureWiring()
		m.addLog("success", "Wallet bridge connected at "+msg.bridge.URL())
		// silent restore; never prompts
		return m, restoreSession(m.manager)

	case rpcConnectedMsg:
		m.rpcConnecting = false
		if msg.err != nil {
			m.ethClient = nil
			m.rpcConnected = false
			m.addLog("error", fmt.Sprintf("RPC connection failed: `%s`", msg.err.Error()))
			return m, nil
		}
		m.ethClient = msg.client
		m.rpcConnected = true
		m.ensureWiring()
		m.addLog("success", fmt.Sprintf("RPC connected to `%s`", msg.client.URL))
		if m.sess.Status == session.Connected {
			return m, m.refreshActive()
		}
		return m, nil

	case sessionRestoredMsg:
		m.sess = msg.sess
		if msg.err != nil {
			m.addLog("warning", "Session restore failed: "+msg.err.Error())
			return m, nil
		}
		if m.sess.Account != "" {
			m.addLog("success", fmt.Sprintf("Restored session for %s", helpers.ShortenAddr(m.sess.Account)))
			return m, m.refreshActive()
		}
		m.addLog("info", "No authorized account, staying disconnected")
		return m, nil

	case connectResultMsg:
		m.connecting = false
		m.sess = msg.sess
		if msg.err != nil {
			if errors.Is(msg.err, apperrors.ErrUserRejected) {
				m.addLog("info", "Connect request rejected in wallet")
			} else {
				m.addLog("error", "Connect failed: "+msg.err.Error())
			}
			return m, nil
		}
		m.addLog("success", fmt.Sprintf("Connected as %s on %s", helpers.ShortenAddr(m.sess.Account), m.chainName(m.sess.ChainID)))
		if m.sess.ChainID != m.cfg.ChainID {
			m.addLog("warning", fmt.Sprintf("Wallet is on %s, expected %s", m.chainName(m.sess.ChainID), m.chainName(m.cfg.ChainID)))
		}
		return m, m.refreshActive()

	case switchResultMsg:
		m.switching = false
		if msg.err != nil {
			if errors.Is(msg.err, apperrors.ErrUserRejected) {
				m.switchError = "switch rejected in wallet"
			} else {
				m.switchError = msg.err.Error()
			}
			m.addLog("error", "Network switch failed: "+msg.err.Error())
			return m, nil
		}
		m.switchError = ""
		// the session itself moves when the wallet reports the change
		m.addLog("success", fmt.Sprintf("Switch to %s accepted", m.chainName(msg.chainID)))
		return m, nil

	case chainChangedMsg:
		// The manager already reset the session; everything read before the
		// change belongs to a dead epoch.
		m.sess = m.store.Current()
		m.topLevel = nil
		m.subnames = nil
		m.pendings = nil
		m.openTLD = nil
		m.staleTopLevel = false
		m.staleSubnames = false
		m.loadingTopLevel = false
		m.loadingSubnames = false
		m.activePage = config.PageLaunchpad
		m.addLog("warning", fmt.Sprintf("Wallet switched to %s, session reset (epoch %d)", m.chainName(msg.chainID), msg.epoch))
		if m.manager != nil {
			return m, restoreSession(m.manager)
		}
		return m, nil

	case topLevelLoadedMsg:
		if msg.epoch != m.store.Epoch() {
			m.addLog("debug", "Dropped TLD list from a previous epoch")
			return m, nil
		}
		m.loadingTopLevel = false
		if msg.err != nil {
			// keep whatever we showed before, flagged as stale
			m.topLevel = m.reader.LastTopLevel()
			m.staleTopLevel = true
			m.addLog("error", "TLD refresh failed: "+msg.err.Error())
			return m, nil
		}
		m.topLevel = msg.entries
		m.staleTopLevel = false
		if m.selectedTLD >= len(m.topLevel) {
			m.selectedTLD = helpers.Max(0, len(m.topLevel)-1)
		}
		m.addLog("success", fmt.Sprintf("Loaded %d TLDs", len(msg.entries)))
		return m, nil

	case subnamesLoadedMsg:
		if msg.epoch != m.store.Epoch() {
			m.addLog("debug", "Dropped name list from a previous epoch")
			return m, nil
		}
		if m.openTLD == nil || m.openTLD.Contract != msg.contract {
			return m, nil
		}
		m.loadingSubnames = false
		if msg.err != nil {
			m.subnames = m.reader.LastSubnames(msg.contract)
			m.staleSubnames = true
			m.addLog("error", "Name refresh failed: "+msg.err.Error())
			return m, nil
		}
		m.subnames = msg.entries
		m.staleSubnames = false
		if m.selectedName >= len(m.subnames) {
			m.selectedName = helpers.Max(0, len(m.subnames)-1)
		}
		m.addLog("success", fmt.Sprintf("Loaded %d names under .%s", len(msg.entries), m.openTLD.TLD))
		return m, nil

	case txSubmittedMsg:
		// a submit racing an external chain change must not surface in the
		// new epoch; its eventual terminal result is dropped the same way
		if msg.pending.Epoch != m.store.Epoch() {
			m.addLog("debug", "Dropped submit result from a previous epoch")
			return m, nil
		}
		if msg.err != nil {
			switch {
			case errors.Is(msg.err, apperrors.ErrUserRejected):
				m.addLog("info", "Transaction rejected in wallet")
			case errors.Is(msg.err, apperrors.ErrPreconditionFailed):
				m.addLog("warning", "Not submitted: "+msg.err.Error())
			default:
				m.addLog("error", "Submission failed: "+msg.err.Error())
			}
			if msg.pending.Status == txflow.Failed && msg.pending.Hash == "" {
				m.pendings = append(m.pendings, msg.pending)
			}
			return m, nil
		}
		m.pendings = append(m.pendings, msg.pending)
		m.addLog("info", fmt.Sprintf("Submitted %s: %s", msg.pending.Kind, helpers.ShortenAddr(msg.pending.Hash)))
		return m, awaitTx(m.coordinator, msg.pending)

	case txFinishedMsg:
		// a terminal result from a dead epoch must not touch the view or
		// trigger a refresh
		if msg.pending.Epoch != m.store.Epoch() {
			m.addLog("debug", "Dropped transaction result from a previous epoch")
			return m, nil
		}
		for i := range m.pendings {
			if m.pendings[i].Hash == msg.pending.Hash {
				m.pendings[i] = msg.pending
				break
			}
		}
		if msg.pending.Status == txflow.Confirmed {
			link := m.explorerTxURL(msg.pending.Hash)
			if link != "" {
				m.showTxResultPanel = true
				m.txResultTitle = fmt.Sprintf("%s confirmed", msg.pending.Kind)
				m.txResultLink = link
				m.addLog("success", fmt.Sprintf("%s confirmed: %s", msg.pending.Kind, link))
			} else {
				m.addLog("success", fmt.Sprintf("%s confirmed", msg.pending.Kind))
			}
			// exactly one refresh per confirmed transaction
			return m, m.refreshActive()
		}
		if errors.Is(msg.pending.Cause, apperrors.ErrDuplicateName) {
			m.addLog("error", fmt.Sprintf("%s failed: name already taken", msg.pending.Kind))
		} else if msg.pending.Cause != nil {
			m.addLog("error", fmt.Sprintf("%s failed: %s", msg.pending.Kind, msg.pending.Cause.Error()))
		} else {
			m.addLog("error", fmt.Sprintf("%s failed", msg.pending.Kind))
		}
		return m, nil

	case clipboardCopiedMsg:
		m.copiedMsg = "Copied!"
		return m, clearClipboardFeedback()

	case clearClipboardMsg:
		m.copiedMsg = ""
		return m, nil

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height

		if m.logEnabled {
			m.logViewport.Width = helpers.Max(0, msg.Width-6)
			if m.logReady {
				m.updateLogViewport()
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		var cmds []tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes key presses: search input first, then global keys, then
// page-specific behavior.
func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle transaction result panel first
	if m.showTxResultPanel {
		switch msg.String() {
		case "y":
			if m.txResultLink != "" {
				return m, copyToClipboard(m.txResultLink)
			}
		case "esc", "enter", "q":
			m.showTxResultPanel = false
			m.txResultTitle = ""
			m.txResultLink = ""
			m.copiedMsg = ""
		}
		return m, nil
	}

	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.search.SetValue("")
			m.search.Blur()
			return m, nil
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	// global keys
	switch msg.String() {
	case "ctrl+c", "q":
		if m.bridge != nil {
			m.bridge.Close()
		}
		return m, tea.Quit

	case "/":
		m.searching = true
		m.search.Focus()
		return m, nil

	case "l", "L":
		// Toggle logger
		m.logEnabled = !m.logEnabled
		m.cfg.Logger = m.logEnabled
		if m.logEnabled {
			if m.w > 0 {
				m.logViewport.Width = m.w - 6
			}
			m.logReady = false
			config.Save(m.configPath, m.cfg)
			return m, tea.Batch(initLogViewport(), m.logSpinner.Tick)
		}
		if m.logBuffer != nil {
			m.logBuffer.Reset()
		}
		m.logger = nil
		m.logReady = false
		config.Save(m.configPath, m.cfg)
		return m, nil

	case "c":
		// connect prompt, only meaningful while disconnected
		if m.hasProvider && m.sess.Account == "" && !m.connecting {
			m.connecting = true
			m.addLog("info", "Requesting account access…")
			return m, connectWallet(m.manager)
		}
		return m, nil

	case "r":
		return m, m.refreshActive()

	case "pageup", "pagedown":
		if m.logEnabled && m.logReady {
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return m, cmd
		}
	}

	// page-specific behavior
	switch m.activePage {

	case config.PageLaunchpad:
		visible := m.visibleTopLevel()
		switch msg.String() {
		case "up", "k":
			if m.selectedTLD > 0 {
				m.selectedTLD--
			}
		case "down", "j":
			if m.selectedTLD < len(visible)-1 {
				m.selectedTLD++
			}
		case "enter":
			if m.reader != nil && m.selectedTLD >= 0 && m.selectedTLD < len(visible) {
				entry := visible[m.selectedTLD]
				m.openTLD = &entry
				m.subnames = nil
				m.staleSubnames = false
				m.selectedName = 0
				m.activePage = config.PageNamespace
				m.search.SetValue("")
				m.loadingSubnames = true
				m.addLog("info", "Opening namespace ."+entry.TLD)
				return m, loadSubnames(m.reader, entry.Contract, m.store.Epoch())
			}
		case "n":
			if m.canMutate() && !m.coordinator.InFlight(txflow.CreateTopLevel, txflow.Params{}) {
				m.createTLDForm()
			}
		case "w":
			if m.canMutate() && !m.coordinator.InFlight(txflow.Withdraw, txflow.Params{}) {
				m.addLog("info", "Submitting fee withdrawal")
				return m, submitTx(m.coordinator, txflow.Withdraw, txflow.Params{})
			}
		case "s":
			m.activePage = config.PageNetworks
			m.selectedChainIdx = 0
		}
		return m, nil

	case config.PageNamespace:
		visible := m.visibleSubnames()
		switch msg.String() {
		case "up", "k":
			if m.selectedName > 0 {
				m.selectedName--
			}
		case "down", "j":
			if m.selectedName < len(visible)-1 {
				m.selectedName++
			}
		case "m":
			if m.canMutate() && m.openTLD != nil &&
				!m.coordinator.InFlight(txflow.RegisterSubName, txflow.Params{Contract: m.openTLD.Contract}) {
				m.createRegisterForm()
			}
		case "y":
			if m.selectedName >= 0 && m.selectedName < len(visible) {
				return m, copyToClipboard(visible[m.selectedName].Owner)
			}
		case "esc":
			m.activePage = config.PageLaunchpad
			m.openTLD = nil
			m.subnames = nil
			m.search.SetValue("")
		}
		return m, nil

	case config.PageNetworks:
		catalog := m.knownChains()
		switch msg.String() {
		case "up", "k":
			if m.selectedChainIdx > 0 {
				m.selectedChainIdx--
			}
		case "down", "j":
			if m.selectedChainIdx < len(catalog)-1 {
				m.selectedChainIdx++
			}
		case "enter":
			if m.hasProvider && !m.switching && m.selectedChainIdx < len(catalog) {
				target := catalog[m.selectedChainIdx]
				if m.sess.ChainID == target.ID {
					return m, nil
				}
				m.switching = true
				m.switchError = ""
				m.addLog("info", "Requesting switch to "+target.Name)
				return m, switchChain(m.manager, target.ID)
			}
		case "esc":
			m.activePage = config.PageLaunchpad
		}
		return m, nil
	}

	return m, nil
}
