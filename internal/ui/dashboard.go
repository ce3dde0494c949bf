package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c":
		m.setFlash("clearing caches...")
		return m, m.clearCacheCmd()
	case "r":
		m.setFlash("running cron...")
		return m, m.runCronCmd()
	}
	return m, nil
}

func (m Model) clearCacheCmd() tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		message, err := client.ClearCache(ctx)
		return actionResultMsg{message: message, err: err}
	}
}

func (m Model) runCronCmd() tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		result, err := client.RunCron(ctx)
		if err != nil {
			return actionResultMsg{err: err}
		}
		if !result.Ran {
			return actionResultMsg{message: "cron did not run (already in progress?)"}
		}
		return actionResultMsg{
			message: fmt.Sprintf("cron finished in %dms", result.DurationMS),
		}
	}
}

func (m Model) renderDashboard() string {
	styles := m.theme.Styles()
	var b strings.Builder

	if !m.snapshot.HasStatus {
		b.WriteString("\n  ")
		b.WriteString(m.spin.View())
		b.WriteString(styles.MutedText.Render(" waiting for the first status report..."))
		b.WriteString("\n")
		if m.snapshot.LastError != nil {
			b.WriteString("  ")
			b.WriteString(styles.DangerText.Render(humanizeError(m.snapshot.LastError)))
			b.WriteString("\n")
		}
		return b.String()
	}

	titleWidth := 28
	for _, item := range m.snapshot.Status {
		if len(item.Title) > titleWidth && len(item.Title) <= 44 {
			titleWidth = len(item.Title)
		}
	}

	b.WriteString("\n")
	for _, item := range m.snapshot.Status {
		marker := styles.SeverityStyle(item.Severity).Render("●")
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			marker,
			styles.Text.Render(padRight(item.Title, titleWidth)),
			styles.MutedText.Render(truncate(item.Value, m.width-titleWidth-8))))
		if item.Severity != "ok" && item.Description != "" {
			b.WriteString("      ")
			b.WriteString(styles.FaintText.Render(truncate(item.Description, m.width-8)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n  ")
	if !m.snapshot.LastUpdated.IsZero() {
		b.WriteString(styles.FaintText.Render(
			"updated " + m.snapshot.LastUpdated.Format("15:04:05")))
	}
	if m.snapshot.LastError != nil {
		b.WriteString("  ")
		b.WriteString(styles.DangerText.Render(humanizeError(m.snapshot.LastError)))
	}
	b.WriteString("\n\n  ")
	b.WriteString(styles.FaintText.Render("c clear caches · r run cron"))
	b.WriteString("\n")
	return b.String()
}
