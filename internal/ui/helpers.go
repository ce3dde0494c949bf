package ui

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/backdeck/backdeck/internal/backdrop"
)

// humanizeError turns client errors into short messages suitable for the
// flash line.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	var serverErr *backdrop.ServerError
	if errors.As(err, &serverErr) {
		return "server: " + serverErr.Message
	}

	var httpErr *backdrop.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusUnauthorized:
			return "session expired: sign in again"
		case http.StatusForbidden:
			return "permission denied (HTTP 403)"
		case http.StatusNotFound:
			return "not found (HTTP 404)"
		default:
			return fmt.Sprintf("unexpected response (HTTP %d)", httpErr.StatusCode)
		}
	}

	switch {
	case errors.Is(err, backdrop.ErrInvalidAddress):
		return "invalid site address"
	case errors.Is(err, backdrop.ErrLoginFailed):
		return "login failed: check address and credentials"
	case errors.Is(err, backdrop.ErrNotAuthenticated):
		return "not signed in"
	case errors.Is(err, backdrop.ErrInvalidResponse):
		return "the site returned something that is not a Backdrop API response"
	}
	return err.Error()
}

// truncate shortens s to at most width characters, ellipsized.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

// statusLabel formats an HTTP status code with its standard text.
func statusLabel(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return fmt.Sprintf("HTTP %d", code)
	}
	return fmt.Sprintf("HTTP %d %s", code, text)
}

// padRight pads s with spaces to exactly width, truncating when longer.
func padRight(s string, width int) string {
	s = truncate(s, width)
	if len([]rune(s)) < width {
		s += strings.Repeat(" ", width-len([]rune(s)))
	}
	return s
}

var viewTitles = map[View]string{
	ViewDashboard: "Dashboard",
	ViewContent:   "Content",
	ViewLogs:      "Watchdog",
	ViewUsers:     "Users",
	ViewComments:  "Comments",
	ViewBlocks:    "Blocks",
	ViewFiles:     "Files",
}

// renderHeader renders the top status line.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	left := styles.Logo.Render("backdeck")
	title := viewTitles[m.view]

	site := m.client.Address().String()

	health := styles.SuccessText.Render("●")
	if m.snapshot.IsOffline() {
		health = styles.DangerText.Render("● offline")
	} else if n := len(m.snapshot.Problems()); n > 0 {
		health = styles.WarningText.Render(fmt.Sprintf("● %d problems", n))
	}

	activity := ""
	if m.client.InFlight() {
		activity = "  " + m.spin.View()
	}

	line := fmt.Sprintf("%s  %s  %s  %s%s", left, styles.AccentText.Render(title),
		styles.MutedText.Render(site), health, activity)
	return styles.Header.Width(m.width).Render(line)
}

// renderFlash renders the one-line action feedback at the bottom.
func (m Model) renderFlash() string {
	if m.flash == "" {
		return ""
	}
	styles := m.theme.Styles()
	if m.flashIsErr {
		return styles.DangerText.Render(m.flash)
	}
	return styles.MutedText.Render(m.flash)
}

// renderConfirm renders the y/n prompt for a pending destructive action.
func (m Model) renderConfirm() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(styles.WarningText.Render(m.confirm.prompt))
	b.WriteString("\n\n  ")
	b.WriteString(styles.MutedText.Render("y confirm · n cancel"))
	b.WriteString("\n")
	return b.String()
}

// renderPageFooter renders "page X of Y (N total)" for a listing.
func renderPageFooter[T any](styles Styles, page backdrop.Page[T]) string {
	return styles.FaintText.Render(
		fmt.Sprintf("page %d of %d · %d total · [ ] page · R reload", page.Page, page.Pages, page.Total))
}

// renderLoading renders the shared spinner line for a list still fetching.
func (m Model) renderLoading(what string) string {
	styles := m.theme.Styles()
	return "\n  " + m.spin.View() + styles.MutedText.Render(" loading "+what+"...") + "\n"
}
