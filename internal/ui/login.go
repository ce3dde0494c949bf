package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/backdeck/backdeck/internal/config"
)

const (
	loginFieldSite = iota
	loginFieldUsername
	loginFieldPassword
	loginFieldCount
)

// loginState holds the login form.
type loginState struct {
	inputs  [loginFieldCount]textinput.Model
	focus   int
	busy    bool
	lastErr error
}

type loginResultMsg struct {
	err error
}

func newLoginState(cfg *config.Config) loginState {
	var s loginState

	site := textinput.New()
	site.Placeholder = "site address (example.com or 192.168.30.85)"
	site.CharLimit = 256
	site.Width = 48

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Width = 48

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 48
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	if cfg != nil {
		site.SetValue(cfg.Site)
		username.SetValue(cfg.Username)
	}

	s.inputs[loginFieldSite] = site
	s.inputs[loginFieldUsername] = username
	s.inputs[loginFieldPassword] = password

	// Focus the first empty field so a configured site goes straight to
	// credentials.
	s.focus = loginFieldSite
	if site.Value() != "" {
		s.focus = loginFieldUsername
		if username.Value() != "" {
			s.focus = loginFieldPassword
		}
	}
	return s
}

func (s loginState) focusCmd() tea.Cmd {
	return s.inputs[s.focus].Focus()
}

func (s loginState) update(msg tea.Msg) (loginState, tea.Cmd) {
	var cmds []tea.Cmd
	for i := range s.inputs {
		var cmd tea.Cmd
		s.inputs[i], cmd = s.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return s, tea.Batch(cmds...)
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab", "down":
		return m.moveLoginFocus(1)
	case "shift+tab", "up":
		return m.moveLoginFocus(-1)

	case "ctrl+d":
		m.showTrace = !m.showTrace
		return m, nil

	case "enter":
		if m.login.busy {
			return m, nil
		}
		return m.submitLogin()
	}

	if m.login.busy {
		return m, nil
	}
	var cmd tea.Cmd
	m.login, cmd = m.login.update(msg)
	return m, cmd
}

func (m Model) moveLoginFocus(delta int) (tea.Model, tea.Cmd) {
	m.login.inputs[m.login.focus].Blur()
	m.login.focus = (m.login.focus + delta + loginFieldCount) % loginFieldCount
	return m, m.login.inputs[m.login.focus].Focus()
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	site := strings.TrimSpace(m.login.inputs[loginFieldSite].Value())
	username := strings.TrimSpace(m.login.inputs[loginFieldUsername].Value())
	password := m.login.inputs[loginFieldPassword].Value()

	if site == "" || username == "" || password == "" {
		m.setFlash("site, username and password are all required")
		return m, nil
	}

	m.login.busy = true
	m.setFlash("signing in...")

	client := m.client
	ctx := m.ctx
	return m, func() tea.Msg {
		addr, err := client.NormalizeAddress(site)
		if err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{err: client.Login(ctx, addr, username, password)}
	}
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false
	if msg.err != nil {
		m.login.lastErr = msg.err
		m.setFlashError(msg.err)
		return m, nil
	}
	m.login.lastErr = nil
	m.showTrace = false
	m.view = ViewDashboard
	m.setFlash("signed in to " + m.client.Address().String())
	// Status report lands via the poller/store; fetch once immediately.
	return m, fetchSnapshotCmd(m.store)
}

func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Logo.Render("backdeck"))
	b.WriteString(styles.MutedText.Render("  sign in to your site"))
	b.WriteString("\n\n")

	labels := [loginFieldCount]string{"Site", "Username", "Password"}
	for i, input := range m.login.inputs {
		label := labels[i]
		if i == m.login.focus {
			b.WriteString(styles.AccentText.Render("› " + label))
		} else {
			b.WriteString(styles.MutedText.Render("  " + label))
		}
		b.WriteString("\n  ")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	if m.login.busy {
		b.WriteString(m.spin.View())
		b.WriteString(styles.MutedText.Render(" signing in..."))
		b.WriteString("\n")
	}

	b.WriteString(m.renderFlash())
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter submit · tab next field · ctrl+d diagnostics · ctrl+c quit"))

	if m.showTrace {
		b.WriteString("\n\n")
		b.WriteString(m.renderLoginTrace())
	}
	return b.String()
}

// renderLoginTrace shows what the last login attempt actually did, for
// debugging reverse proxies that eat cookies.
func (m Model) renderLoginTrace() string {
	styles := m.theme.Styles()
	trace := m.client.LastLoginTrace()
	if trace == nil {
		return styles.FaintText.Render("no login attempt yet")
	}

	var b strings.Builder
	b.WriteString(styles.MutedText.Render("last attempt " + trace.ID))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render(trace.URL))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render(statusLabel(trace.Status)))
	b.WriteString("\n")
	for _, header := range trace.Headers {
		b.WriteString(styles.FaintText.Render(truncate(header, m.width-4)))
		b.WriteString("\n")
	}
	if trace.BodyPreview != "" {
		b.WriteString(styles.FaintText.Render(truncate(trace.BodyPreview, 200)))
		b.WriteString("\n")
	}
	return b.String()
}
