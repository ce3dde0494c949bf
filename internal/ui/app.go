// Package ui provides the Bubble Tea terminal interface for Backdeck.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/backdeck/backdeck/internal/backdrop"
	"github.com/backdeck/backdeck/internal/config"
	"github.com/backdeck/backdeck/internal/prefs"
	"github.com/backdeck/backdeck/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewLogin View = iota
	ViewDashboard
	ViewContent
	ViewLogs
	ViewUsers
	ViewComments
	ViewBlocks
	ViewFiles
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    *backdrop.Client
	Store     *state.Store
	Config    *config.Config
	Logger    *zap.Logger
	ThemeName string
	PageLimit int
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    *backdrop.Client
	store     *state.Store
	config    *config.Config
	logger    *zap.Logger
	prefsPath string
	pageLimit int

	// UI state
	theme    Theme
	view     View
	width    int
	height   int
	ready    bool
	showHelp bool
	spin     spinner.Model

	// One-line status feedback for the last action.
	flash      string
	flashIsErr bool

	// Pending confirmation, nil when none.
	confirm *confirmState

	// Data state
	snapshot state.Snapshot

	// Per-view state
	login       loginState
	showTrace   bool
	content     pagedState[backdrop.ContentItem]
	logs        pagedState[backdrop.LogEntry]
	logSeverity string
	users       pagedState[backdrop.User]
	comments    pagedState[backdrop.Comment]
	files       pagedState[backdrop.File]
	blocks      blocksState
}

// confirmState holds a destructive action awaiting a y/n answer.
type confirmState struct {
	prompt string
	action tea.Cmd
}

// pagedState is the shared shape of every paged listing view.
type pagedState[T any] struct {
	page     backdrop.Page[T]
	loaded   bool
	loading  bool
	selected int
}

func (p *pagedState[T]) clampSelection() {
	if p.selected >= len(p.page.Items) {
		p.selected = len(p.page.Items) - 1
	}
	if p.selected < 0 {
		p.selected = 0
	}
}

type blocksState struct {
	blocks   []backdrop.Block
	loaded   bool
	loading  bool
	selected int
}

// New creates the root Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	pageLimit := opts.PageLimit
	if pageLimit < 1 {
		pageLimit = backdrop.DefaultPageLimit
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:       ctx,
		client:    opts.Client,
		store:     opts.Store,
		config:    opts.Config,
		logger:    logger,
		prefsPath: prefsPath,
		pageLimit: pageLimit,
		theme:     GetTheme(themeName),
		view:      ViewLogin,
		spin:      sp,
	}
	m.login = newLoginState(opts.Config)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(),
		m.spin.Tick,
		m.login.focusCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m, tea.Batch(tickCmd(), fetchSnapshotCmd(m.store))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case actionResultMsg:
		if msg.err != nil {
			m.setFlashError(msg.err)
		} else {
			m.setFlash(msg.message)
		}
		// Mutations usually invalidate the current listing.
		if msg.reload != nil {
			return m, msg.reload
		}
		return m, nil

	case contentLoadedMsg:
		m.content.loading = false
		if msg.err != nil {
			m.setFlashError(msg.err)
			return m, nil
		}
		m.content.page = msg.page
		m.content.loaded = true
		m.content.clampSelection()
		return m, nil

	case logsLoadedMsg:
		m.logs.loading = false
		if msg.err != nil {
			m.setFlashError(msg.err)
			return m, nil
		}
		m.logs.page = msg.page
		m.logs.loaded = true
		m.logs.clampSelection()
		return m, nil

	case usersLoadedMsg:
		m.users.loading = false
		if msg.err != nil {
			m.setFlashError(msg.err)
			return m, nil
		}
		m.users.page = msg.page
		m.users.loaded = true
		m.users.clampSelection()
		return m, nil

	case commentsLoadedMsg:
		m.comments.loading = false
		if msg.err != nil {
			m.setFlashError(msg.err)
			return m, nil
		}
		m.comments.page = msg.page
		m.comments.loaded = true
		m.comments.clampSelection()
		return m, nil

	case filesLoadedMsg:
		m.files.loading = false
		if msg.err != nil {
			m.setFlashError(msg.err)
			return m, nil
		}
		m.files.page = msg.page
		m.files.loaded = true
		m.files.clampSelection()
		return m, nil

	case blocksLoadedMsg:
		m.blocks.loading = false
		if msg.err != nil {
			m.setFlashError(msg.err)
			return m, nil
		}
		m.blocks.blocks = msg.blocks
		m.blocks.loaded = true
		if m.blocks.selected >= len(m.blocks.blocks) {
			m.blocks.selected = max(0, len(m.blocks.blocks)-1)
		}
		return m, nil
	}

	if m.view == ViewLogin {
		var cmd tea.Cmd
		m.login, cmd = m.login.update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.view == ViewLogin {
		return m.renderLogin()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFlash())
	return b.String()
}

func (m Model) renderContent() string {
	if m.confirm != nil {
		return m.renderConfirm()
	}
	switch m.view {
	case ViewDashboard:
		return m.renderDashboard()
	case ViewContent:
		return m.renderContentList()
	case ViewLogs:
		return m.renderLogList()
	case ViewUsers:
		return m.renderUserList()
	case ViewComments:
		return m.renderCommentList()
	case ViewBlocks:
		return m.renderBlockList()
	case ViewFiles:
		return m.renderFileList()
	default:
		return ""
	}
}

func (m *Model) setFlash(message string) {
	m.flash = message
	m.flashIsErr = false
}

func (m *Model) setFlashError(err error) {
	m.flash = humanizeError(err)
	m.flashIsErr = true
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// actionResultMsg reports the outcome of a fire-and-forget admin action.
// reload, when set, refetches whatever listing the action invalidated.
type actionResultMsg struct {
	message string
	err     error
	reload  tea.Cmd
}

type contentLoadedMsg struct {
	page backdrop.Page[backdrop.ContentItem]
	err  error
}

type logsLoadedMsg struct {
	page backdrop.Page[backdrop.LogEntry]
	err  error
}

type usersLoadedMsg struct {
	page backdrop.Page[backdrop.User]
	err  error
}

type commentsLoadedMsg struct {
	page backdrop.Page[backdrop.Comment]
	err  error
}

type filesLoadedMsg struct {
	page backdrop.Page[backdrop.File]
	err  error
}

type blocksLoadedMsg struct {
	blocks []backdrop.Block
	err    error
}

// Commands

const uiTick = time.Second

func tickCmd() tea.Cmd {
	return tea.Tick(uiTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
