package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/backdeck/backdeck/internal/backdrop"
)

// Severity filter cycle for the watchdog view. Empty means all entries.
var logSeverities = []string{"", "error", "warning", "notice"}

func (m Model) openLogs() (tea.Model, tea.Cmd) {
	m.view = ViewLogs
	if m.logs.loaded {
		return m, nil
	}
	m.logs.loading = true
	return m, m.fetchLogsCmd(1)
}

func (m Model) fetchLogsCmd(page int) tea.Cmd {
	client, ctx, limit := m.client, m.ctx, m.pageLimit
	severity := m.logSeverity
	return func() tea.Msg {
		result, err := client.Watchdog(ctx, backdrop.LogQuery{
			Page:     page,
			Limit:    limit,
			Severity: severity,
		})
		return logsLoadedMsg{page: result, err: err}
	}
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "[":
		if m.logs.page.Page > 1 {
			m.logs.loading = true
			return m, m.fetchLogsCmd(m.logs.page.Page - 1)
		}
		return m, nil
	case "]":
		if m.logs.page.HasNext() {
			m.logs.loading = true
			return m, m.fetchLogsCmd(m.logs.page.Page + 1)
		}
		return m, nil
	case "R":
		m.logs.loading = true
		return m, m.fetchLogsCmd(m.logs.page.Page)

	case "s":
		// Cycle the severity filter and refetch from page one.
		for i, s := range logSeverities {
			if s == m.logSeverity {
				m.logSeverity = logSeverities[(i+1)%len(logSeverities)]
				break
			}
		}
		m.logs.loading = true
		return m, m.fetchLogsCmd(1)

	case "C":
		m.confirm = &confirmState{
			prompt: "Clear the entire watchdog log?",
			action: m.clearWatchdogCmd(),
		}
		return m, nil
	}

	m.logs.selected = navigate(key, m.logs.selected, len(m.logs.page.Items))
	return m, nil
}

func (m Model) clearWatchdogCmd() tea.Cmd {
	client, ctx := m.client, m.ctx
	reload := m.fetchLogsCmd(1)
	return func() tea.Msg {
		message, err := client.ClearWatchdog(ctx)
		return actionResultMsg{message: message, err: err, reload: reload}
	}
}

func (m Model) renderLogList() string {
	if m.logs.loading {
		return m.renderLoading("watchdog entries")
	}
	styles := m.theme.Styles()
	page := m.logs.page

	var b strings.Builder
	b.WriteString("\n")
	if m.logSeverity != "" {
		b.WriteString("  ")
		b.WriteString(styles.WarningText.Render("filter: " + m.logSeverity))
		b.WriteString("\n")
	}
	if len(page.Items) == 0 {
		b.WriteString("  ")
		b.WriteString(styles.MutedText.Render("no log entries"))
		b.WriteString("\n")
		return b.String()
	}

	messageWidth := m.width - 40
	if messageWidth < 24 {
		messageWidth = 24
	}
	for i, entry := range page.Items {
		when := ""
		if t := entry.ParsedTime(); !t.IsZero() {
			when = t.Format("01-02 15:04")
		}
		line := fmt.Sprintf("  %s  %s %s  %s",
			padRight(when, 11),
			styles.SeverityStyle(entry.Severity).Render(padRight(entry.Severity, 7)),
			padRight(entry.Type, 10),
			truncate(entry.Message, messageWidth))
		if i == m.logs.selected {
			b.WriteString(styles.Selected.Width(m.width).Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	// Detail pane for the selected entry.
	if m.logs.selected >= 0 && m.logs.selected < len(page.Items) {
		entry := page.Items[m.logs.selected]
		b.WriteString("\n  ")
		b.WriteString(styles.MutedText.Render(truncate(entry.Message, m.width-4)))
		b.WriteString("\n  ")
		detail := entry.Location
		if entry.User != "" {
			detail += " · " + entry.User
		}
		if entry.Hostname != "" {
			detail += " · " + entry.Hostname
		}
		b.WriteString(styles.FaintText.Render(truncate(detail, m.width-4)))
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(renderPageFooter(styles, page))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render("s severity filter · C clear log"))
	b.WriteString("\n")
	return b.String()
}
