package ui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/backdeck/backdeck/internal/backdrop"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 5, "hell…"},
		{"hello", 0, ""},
		{"hello", -3, ""},
		{"héllo wörld", 6, "héllo…"},
		{"x", 1, "x"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 5); got != "ab   " {
		t.Errorf("padRight(\"ab\", 5) = %q", got)
	}
	if got := padRight("abcdef", 4); got != "abc…" {
		t.Errorf("padRight(\"abcdef\", 4) = %q", got)
	}
}

func TestStatusLabel(t *testing.T) {
	if got := statusLabel(302); got != "HTTP 302 Found" {
		t.Errorf("statusLabel(302) = %q", got)
	}
	if got := statusLabel(799); got != "HTTP 799" {
		t.Errorf("statusLabel(799) = %q", got)
	}
}

func TestHumanizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"login failed", fmt.Errorf("wrap: %w", backdrop.ErrLoginFailed), "login failed: check address and credentials"},
		{"invalid address", backdrop.ErrInvalidAddress, "invalid site address"},
		{"not authenticated", backdrop.ErrNotAuthenticated, "not signed in"},
		{"invalid response", fmt.Errorf("decode: %w", backdrop.ErrInvalidResponse), "the site returned something that is not a Backdrop API response"},
		{"server error", &backdrop.ServerError{Message: "cron already running"}, "server: cron already running"},
		{"unauthorized", &backdrop.HTTPError{StatusCode: 401}, "session expired: sign in again"},
		{"forbidden", &backdrop.HTTPError{StatusCode: 403}, "permission denied (HTTP 403)"},
		{"not found", &backdrop.HTTPError{StatusCode: 404}, "not found (HTTP 404)"},
		{"teapot", &backdrop.HTTPError{StatusCode: 418}, "unexpected response (HTTP 418)"},
		{"plain", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := humanizeError(tt.err); got != tt.want {
				t.Errorf("humanizeError() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHumanizeBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, tt := range tests {
		if got := humanizeBytes(tt.in); got != tt.want {
			t.Errorf("humanizeBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		key      string
		selected int
		n        int
		want     int
	}{
		{"j", 0, 3, 1},
		{"j", 2, 3, 2},
		{"down", 1, 3, 2},
		{"k", 2, 3, 1},
		{"k", 0, 3, 0},
		{"g", 2, 3, 0},
		{"G", 0, 3, 2},
		{"z", 1, 3, 1},
	}
	for _, tt := range tests {
		if got := navigate(tt.key, tt.selected, tt.n); got != tt.want {
			t.Errorf("navigate(%q, %d, %d) = %d, want %d", tt.key, tt.selected, tt.n, got, tt.want)
		}
	}
}
