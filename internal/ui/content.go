package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/backdeck/backdeck/internal/backdrop"
)

func (m Model) openContent() (tea.Model, tea.Cmd) {
	m.view = ViewContent
	if m.content.loaded {
		return m, nil
	}
	m.content.loading = true
	return m, m.fetchContentCmd(1)
}

func (m Model) fetchContentCmd(page int) tea.Cmd {
	client, ctx, limit := m.client, m.ctx, m.pageLimit
	return func() tea.Msg {
		result, err := client.ListContent(ctx, backdrop.ContentQuery{Page: page, Limit: limit})
		return contentLoadedMsg{page: result, err: err}
	}
}

func (m Model) handleContentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "[", "]", "R":
		return m, m.flipContentPage(key)
	}

	item, ok := m.selectedContent()
	switch key {
	case "p":
		if !ok {
			return m, nil
		}
		next := "published"
		if item.Status == "published" {
			next = "unpublished"
		}
		return m, m.setContentStatusCmd(item.ID, next)
	case "x":
		if !ok {
			return m, nil
		}
		m.confirm = &confirmState{
			prompt: fmt.Sprintf("Delete %q (node %d)?", item.Title, item.ID),
			action: m.deleteContentCmd(item.ID),
		}
		return m, nil
	}

	m.content.selected = navigate(key, m.content.selected, len(m.content.page.Items))
	return m, nil
}

func (m Model) selectedContent() (backdrop.ContentItem, bool) {
	items := m.content.page.Items
	if m.content.selected < 0 || m.content.selected >= len(items) {
		return backdrop.ContentItem{}, false
	}
	return items[m.content.selected], true
}

func (m *Model) flipContentPage(key string) tea.Cmd {
	page := m.content.page.Page
	switch key {
	case "[":
		if page <= 1 {
			return nil
		}
		page--
	case "]":
		if !m.content.page.HasNext() {
			return nil
		}
		page++
	}
	if page < 1 {
		page = 1
	}
	m.content.loading = true
	return m.fetchContentCmd(page)
}

func (m Model) setContentStatusCmd(id int64, status string) tea.Cmd {
	client, ctx := m.client, m.ctx
	reload := m.fetchContentCmd(m.content.page.Page)
	return func() tea.Msg {
		message, err := client.SetContentStatus(ctx, id, status)
		return actionResultMsg{message: message, err: err, reload: reload}
	}
}

func (m Model) deleteContentCmd(id int64) tea.Cmd {
	client, ctx := m.client, m.ctx
	reload := m.fetchContentCmd(m.content.page.Page)
	return func() tea.Msg {
		message, err := client.DeleteContent(ctx, id)
		return actionResultMsg{message: message, err: err, reload: reload}
	}
}

func (m Model) renderContentList() string {
	if m.content.loading {
		return m.renderLoading("content")
	}
	styles := m.theme.Styles()
	page := m.content.page

	var b strings.Builder
	b.WriteString("\n")
	if len(page.Items) == 0 {
		b.WriteString("  ")
		b.WriteString(styles.MutedText.Render("no content"))
		b.WriteString("\n")
		return b.String()
	}

	titleWidth := m.width - 46
	if titleWidth < 20 {
		titleWidth = 20
	}
	for i, item := range page.Items {
		status := styles.SuccessText.Render("pub")
		if item.Status != "published" {
			status = styles.FaintText.Render("unp")
		}
		updated := item.ParsedUpdated()
		when := ""
		if !updated.IsZero() {
			when = updated.Format("2006-01-02 15:04")
		}
		line := fmt.Sprintf("%6s  %s  %s  %s  %s",
			strconv.FormatInt(item.ID, 10),
			status,
			padRight(item.Title, titleWidth),
			padRight(item.Type, 10),
			when)
		if i == m.content.selected {
			b.WriteString(styles.Selected.Width(m.width).Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(renderPageFooter(styles, page))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render("p publish toggle · x delete"))
	b.WriteString("\n")
	return b.String()
}
