package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/backdeck/backdeck/internal/backdrop"
)

func (m Model) openUsers() (tea.Model, tea.Cmd) {
	m.view = ViewUsers
	if m.users.loaded {
		return m, nil
	}
	m.users.loading = true
	return m, m.fetchUsersCmd(1)
}

func (m Model) fetchUsersCmd(page int) tea.Cmd {
	client, ctx, limit := m.client, m.ctx, m.pageLimit
	return func() tea.Msg {
		result, err := client.ListUsers(ctx, backdrop.UserQuery{Page: page, Limit: limit})
		return usersLoadedMsg{page: result, err: err}
	}
}

func (m Model) handleUsersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "[":
		if m.users.page.Page > 1 {
			m.users.loading = true
			return m, m.fetchUsersCmd(m.users.page.Page - 1)
		}
		return m, nil
	case "]":
		if m.users.page.HasNext() {
			m.users.loading = true
			return m, m.fetchUsersCmd(m.users.page.Page + 1)
		}
		return m, nil
	case "R":
		m.users.loading = true
		return m, m.fetchUsersCmd(m.users.page.Page)
	}

	user, ok := m.selectedUser()
	switch key {
	case "B":
		if !ok {
			return m, nil
		}
		next := "blocked"
		if user.Status == "blocked" {
			next = "active"
		}
		return m, m.setUserStatusCmd(user.ID, next)
	case "x":
		if !ok {
			return m, nil
		}
		m.confirm = &confirmState{
			prompt: fmt.Sprintf("Delete account %q (uid %d)?", user.Name, user.ID),
			action: m.deleteUserCmd(user.ID),
		}
		return m, nil
	}

	m.users.selected = navigate(key, m.users.selected, len(m.users.page.Items))
	return m, nil
}

func (m Model) selectedUser() (backdrop.User, bool) {
	items := m.users.page.Items
	if m.users.selected < 0 || m.users.selected >= len(items) {
		return backdrop.User{}, false
	}
	return items[m.users.selected], true
}

func (m Model) setUserStatusCmd(id int64, status string) tea.Cmd {
	client, ctx := m.client, m.ctx
	reload := m.fetchUsersCmd(m.users.page.Page)
	return func() tea.Msg {
		message, err := client.SetUserStatus(ctx, id, status)
		return actionResultMsg{message: message, err: err, reload: reload}
	}
}

func (m Model) deleteUserCmd(id int64) tea.Cmd {
	client, ctx := m.client, m.ctx
	reload := m.fetchUsersCmd(m.users.page.Page)
	return func() tea.Msg {
		message, err := client.DeleteUser(ctx, id)
		return actionResultMsg{message: message, err: err, reload: reload}
	}
}

func (m Model) renderUserList() string {
	if m.users.loading {
		return m.renderLoading("users")
	}
	styles := m.theme.Styles()
	page := m.users.page

	var b strings.Builder
	b.WriteString("\n")
	if len(page.Items) == 0 {
		b.WriteString("  ")
		b.WriteString(styles.MutedText.Render("no users"))
		b.WriteString("\n")
		return b.String()
	}

	for i, user := range page.Items {
		status := styles.SuccessText.Render(padRight("active", 8))
		if user.Status == "blocked" {
			status = styles.DangerText.Render(padRight("blocked", 8))
		}
		line := fmt.Sprintf("%6s  %s %s  %s  %s",
			strconv.FormatInt(user.ID, 10),
			status,
			padRight(user.Name, 20),
			padRight(user.Email, 28),
			truncate(strings.Join(user.Roles, ", "), 30))
		if i == m.users.selected {
			b.WriteString(styles.Selected.Width(m.width).Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(renderPageFooter(styles, page))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render("B block toggle · x delete"))
	b.WriteString("\n")
	return b.String()
}
