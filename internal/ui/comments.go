package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/backdeck/backdeck/internal/backdrop"
)

func (m Model) openComments() (tea.Model, tea.Cmd) {
	m.view = ViewComments
	if m.comments.loaded {
		return m, nil
	}
	m.comments.loading = true
	return m, m.fetchCommentsCmd(1)
}

func (m Model) fetchCommentsCmd(page int) tea.Cmd {
	client, ctx, limit := m.client, m.ctx, m.pageLimit
	return func() tea.Msg {
		result, err := client.ListComments(ctx, backdrop.CommentQuery{Page: page, Limit: limit})
		return commentsLoadedMsg{page: result, err: err}
	}
}

func (m Model) handleCommentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "[":
		if m.comments.page.Page > 1 {
			m.comments.loading = true
			return m, m.fetchCommentsCmd(m.comments.page.Page - 1)
		}
		return m, nil
	case "]":
		if m.comments.page.HasNext() {
			m.comments.loading = true
			return m, m.fetchCommentsCmd(m.comments.page.Page + 1)
		}
		return m, nil
	case "R":
		m.comments.loading = true
		return m, m.fetchCommentsCmd(m.comments.page.Page)
	}

	comment, ok := m.selectedComment()
	switch key {
	case "a":
		if !ok {
			return m, nil
		}
		next := "published"
		if comment.Status == "published" {
			next = "unapproved"
		}
		return m, m.setCommentStatusCmd(comment.ID, next)
	case "x":
		if !ok {
			return m, nil
		}
		m.confirm = &confirmState{
			prompt: fmt.Sprintf("Delete comment %d on %q?", comment.ID, comment.NodeTitle),
			action: m.deleteCommentCmd(comment.ID),
		}
		return m, nil
	}

	m.comments.selected = navigate(key, m.comments.selected, len(m.comments.page.Items))
	return m, nil
}

func (m Model) selectedComment() (backdrop.Comment, bool) {
	items := m.comments.page.Items
	if m.comments.selected < 0 || m.comments.selected >= len(items) {
		return backdrop.Comment{}, false
	}
	return items[m.comments.selected], true
}

func (m Model) setCommentStatusCmd(id int64, status string) tea.Cmd {
	client, ctx := m.client, m.ctx
	reload := m.fetchCommentsCmd(m.comments.page.Page)
	return func() tea.Msg {
		message, err := client.SetCommentStatus(ctx, id, status)
		return actionResultMsg{message: message, err: err, reload: reload}
	}
}

func (m Model) deleteCommentCmd(id int64) tea.Cmd {
	client, ctx := m.client, m.ctx
	reload := m.fetchCommentsCmd(m.comments.page.Page)
	return func() tea.Msg {
		message, err := client.DeleteComment(ctx, id)
		return actionResultMsg{message: message, err: err, reload: reload}
	}
}

func (m Model) renderCommentList() string {
	if m.comments.loading {
		return m.renderLoading("comments")
	}
	styles := m.theme.Styles()
	page := m.comments.page

	var b strings.Builder
	b.WriteString("\n")
	if len(page.Items) == 0 {
		b.WriteString("  ")
		b.WriteString(styles.MutedText.Render("no comments"))
		b.WriteString("\n")
		return b.String()
	}

	subjectWidth := m.width - 56
	if subjectWidth < 20 {
		subjectWidth = 20
	}
	for i, comment := range page.Items {
		status := styles.SuccessText.Render(padRight("ok", 5))
		if comment.Status != "published" {
			status = styles.WarningText.Render(padRight("queue", 5))
		}
		line := fmt.Sprintf("%6s  %s %s  %s  %s",
			strconv.FormatInt(comment.ID, 10),
			status,
			padRight(comment.Subject, subjectWidth),
			padRight(comment.Author, 16),
			truncate(comment.NodeTitle, 24))
		if i == m.comments.selected {
			b.WriteString(styles.Selected.Width(m.width).Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		b.WriteString("\n")
	}

	// Body preview for the selected comment.
	if comment, ok := m.selectedComment(); ok && comment.Body != "" {
		b.WriteString("\n  ")
		b.WriteString(styles.FaintText.Render(truncate(comment.Body, m.width-4)))
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(renderPageFooter(styles, page))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render("a approve toggle · x delete"))
	b.WriteString("\n")
	return b.String()
}
