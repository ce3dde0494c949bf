package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/backdeck/backdeck/internal/backdrop"
)

func (m Model) openFiles() (tea.Model, tea.Cmd) {
	m.view = ViewFiles
	if m.files.loaded {
		return m, nil
	}
	m.files.loading = true
	return m, m.fetchFilesCmd(1)
}

func (m Model) fetchFilesCmd(page int) tea.Cmd {
	client, ctx, limit := m.client, m.ctx, m.pageLimit
	return func() tea.Msg {
		result, err := client.ListFiles(ctx, backdrop.FileQuery{Page: page, Limit: limit})
		return filesLoadedMsg{page: result, err: err}
	}
}

func (m Model) handleFilesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "[":
		if m.files.page.Page > 1 {
			m.files.loading = true
			return m, m.fetchFilesCmd(m.files.page.Page - 1)
		}
		return m, nil
	case "]":
		if m.files.page.HasNext() {
			m.files.loading = true
			return m, m.fetchFilesCmd(m.files.page.Page + 1)
		}
		return m, nil
	case "R":
		m.files.loading = true
		return m, m.fetchFilesCmd(m.files.page.Page)

	case "x":
		file, ok := m.selectedFile()
		if !ok {
			return m, nil
		}
		m.confirm = &confirmState{
			prompt: fmt.Sprintf("Delete file %q (fid %d)?", file.Name, file.ID),
			action: m.deleteFileCmd(file.ID),
		}
		return m, nil
	}

	m.files.selected = navigate(key, m.files.selected, len(m.files.page.Items))
	return m, nil
}

func (m Model) selectedFile() (backdrop.File, bool) {
	items := m.files.page.Items
	if m.files.selected < 0 || m.files.selected >= len(items) {
		return backdrop.File{}, false
	}
	return items[m.files.selected], true
}

func (m Model) deleteFileCmd(id int64) tea.Cmd {
	client, ctx := m.client, m.ctx
	reload := m.fetchFilesCmd(m.files.page.Page)
	return func() tea.Msg {
		message, err := client.DeleteFile(ctx, id)
		return actionResultMsg{message: message, err: err, reload: reload}
	}
}

func (m Model) renderFileList() string {
	if m.files.loading {
		return m.renderLoading("files")
	}
	styles := m.theme.Styles()
	page := m.files.page

	var b strings.Builder
	b.WriteString("\n")
	if len(page.Items) == 0 {
		b.WriteString("  ")
		b.WriteString(styles.MutedText.Render("no files"))
		b.WriteString("\n")
		return b.String()
	}

	nameWidth := m.width - 50
	if nameWidth < 24 {
		nameWidth = 24
	}
	for i, file := range page.Items {
		line := fmt.Sprintf("%6s  %s  %s  %s",
			strconv.FormatInt(file.ID, 10),
			padRight(file.Name, nameWidth),
			padRight(humanizeBytes(file.Size), 10),
			truncate(file.MIME, 24))
		if i == m.files.selected {
			b.WriteString(styles.Selected.Width(m.width).Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		b.WriteString("\n")
	}

	if file, ok := m.selectedFile(); ok && file.URI != "" {
		b.WriteString("\n  ")
		b.WriteString(styles.FaintText.Render(truncate(file.URI, m.width-4)))
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(renderPageFooter(styles, page))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render("x delete"))
	b.WriteString("\n")
	return b.String()
}

func humanizeBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}
