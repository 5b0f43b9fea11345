package main

import (
	"os"
	"path/filepath"
	"strings"

	"namespace-tui/config"
	"namespace-tui/registry"
	"namespace-tui/rpc"
	"namespace-tui/session"
	"namespace-tui/styles"
	"namespace-tui/txflow"
	"namespace-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// -------------------- MODEL --------------------

// model represents the application state following The Elm Architecture
type model struct {
	w, h int

	activePage config.Page

	cfg        config.Config
	configPath string

	// wallet session plumbing. The store is the single source of truth;
	// sess is the snapshot the view renders.
	store       *session.Store
	manager     *wallet.Manager
	bridge      *wallet.Bridge
	sess        session.Session
	hasProvider bool
	connecting  bool

	// read RPC
	ethClient     *rpc.Client
	rpcConnected  bool
	rpcConnecting bool

	// registry plumbing
	ledger      *registry.EthLedger
	reader      *registry.Reader
	coordinator *txflow.Coordinator

	// launchpad state
	topLevel        []registry.TopLevelEntry
	staleTopLevel   bool
	loadingTopLevel bool
	selectedTLD     int

	// namespace state (one TLD opened)
	openTLD         *registry.TopLevelEntry
	subnames        []registry.SubNameEntry
	staleSubnames   bool
	loadingSubnames bool
	selectedName    int

	// search filter
	search    textinput.Model
	searching bool

	// transaction lifecycle
	pendings     []txflow.Pending
	createForm   *huh.Form
	registerForm *huh.Form

	// networks page
	selectedChainIdx int
	switching        bool
	switchError      string

	// confirmed transaction result panel
	showTxResultPanel bool
	txResultTitle     string
	txResultLink      string

	// clipboard feedback
	copiedMsg string

	spin spinner.Model

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *strings.Builder
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// newModel creates and initializes a new model with configuration from disk
func newModel() model {
	// config path
	homeDir, _ := os.UserHomeDir()
	configPath := filepath.Join(homeDir, ".namespace-tui.json")

	cfg := config.LoadOrCreate(configPath)

	// search input
	search := textinput.New()
	search.Placeholder = "filter names…"
	search.Prompt = "/ "
	search.PromptStyle = lipgloss.NewStyle().Foreground(styles.CAccent)
	search.TextStyle = lipgloss.NewStyle().Foreground(styles.CText)
	search.Cursor.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)
	search.CharLimit = 32
	search.Width = 36

	// spinner
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	// log viewport, resized on first WindowSizeMsg
	vp := viewport.New(0, 20)
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	m := model{
		activePage:    config.PageLaunchpad,
		rpcConnecting: cfg.ActiveRPC() != "",
		cfg:           cfg,
		configPath:    configPath,
		store:         session.NewStore(),
		search:        search,
		spin:          sp,
		logEnabled:    cfg.Logger,
		logViewport:   vp,
		logBuffer:     &strings.Builder{},
		logSpinner:    logSpin,
	}

	return m
}

// Init implements tea.Model interface and returns initial commands
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}
	// dial the wallet bridge and the read endpoint in parallel; session
	// restore and the first registry read follow once both are up
	cmds = append(cmds, dialBridge(m.cfg.BridgeURL))
	if url := m.cfg.ActiveRPC(); url != "" {
		cmds = append(cmds, connectRPC(url))
	}
	return tea.Batch(cmds...)
}
