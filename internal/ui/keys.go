package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/backdeck/backdeck/internal/backdrop"
	"github.com/backdeck/backdeck/internal/prefs"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	if m.confirm != nil {
		return m.handleConfirmKey(msg)
	}

	if m.view == ViewLogin {
		return m.handleLoginKey(msg)
	}

	// Global keys while authenticated.
	switch msg.String() {
	case "ctrl+c", "e":
		return m, tea.Quit

	case "h", "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, PageLimit: m.pageLimit})
		return m, nil

	case "L":
		return m.handleLogout()

	case "d", "esc":
		m.view = ViewDashboard
		return m, nil

	case "n":
		return m.openContent()
	case "w":
		return m.openLogs()
	case "u":
		return m.openUsers()
	case "m":
		return m.openComments()
	case "b":
		return m.openBlocks()
	case "f":
		return m.openFiles()
	}

	// View-specific keys.
	switch m.view {
	case ViewDashboard:
		return m.handleDashboardKey(msg)
	case ViewContent:
		return m.handleContentKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	case ViewUsers:
		return m.handleUsersKey(msg)
	case ViewComments:
		return m.handleCommentsKey(msg)
	case ViewBlocks:
		return m.handleBlocksKey(msg)
	case ViewFiles:
		return m.handleFilesKey(msg)
	}

	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		action := m.confirm.action
		m.confirm = nil
		return m, action
	case "n", "N", "esc":
		m.confirm = nil
		m.setFlash("cancelled")
		return m, nil
	}
	return m, nil
}

func (m Model) handleLogout() (tea.Model, tea.Cmd) {
	m.client.Logout(m.ctx)
	m.store.Reset()
	m.snapshot = m.store.Snapshot()
	m.view = ViewLogin
	m.login = newLoginState(m.config)
	m.content = pagedState[backdrop.ContentItem]{}
	m.logs = pagedState[backdrop.LogEntry]{}
	m.logSeverity = ""
	m.users = pagedState[backdrop.User]{}
	m.comments = pagedState[backdrop.Comment]{}
	m.files = pagedState[backdrop.File]{}
	m.blocks = blocksState{}
	m.setFlash("logged out")
	return m, m.login.focusCmd()
}

// navigate moves a selection index within a listing of length n.
func navigate(key string, selected, n int) int {
	switch key {
	case "j", "down":
		if selected < n-1 {
			return selected + 1
		}
	case "k", "up":
		if selected > 0 {
			return selected - 1
		}
	case "g", "home":
		return 0
	case "G", "end":
		return n - 1
	}
	return selected
}

// renderCommandBar renders the second header line with key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	hints := []string{
		"d dashboard", "n content", "w logs", "m comments",
		"u users", "b blocks", "f files", "h help", "L logout", "e exit",
	}
	return styles.Footer.Width(m.width).Render(strings.Join(hints, "  "))
}

// renderHelp renders the full-screen help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []struct {
		title string
		keys  []string
	}{
		{"Views", []string{
			"d / esc   dashboard",
			"n         content",
			"w         watchdog logs",
			"m         comments",
			"u         users",
			"b         blocks",
			"f         files",
		}},
		{"Lists", []string{
			"j / k     move selection",
			"g / G     first / last row",
			"[ / ]     previous / next page",
			"R         reload page",
		}},
		{"Actions", []string{
			"c         clear caches (dashboard)",
			"r         run cron (dashboard)",
			"p         publish / unpublish content",
			"a         approve / unapprove comment",
			"B         block / unblock user",
			"x         delete selected (with confirm)",
			"C         clear watchdog log (logs view)",
			"J / K     move block down / up in region",
		}},
		{"Other", []string{
			"T         cycle theme",
			"L         log out",
			"h / ?     this help",
			"e, ctrl+c exit",
		}},
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Render("Backdeck keys"))
	b.WriteString("\n\n")
	for _, section := range sections {
		b.WriteString(styles.MutedText.Render(section.title))
		b.WriteString("\n")
		for _, line := range section.keys {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("press any key to close"))
	return b.String()
}
