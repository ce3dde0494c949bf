package backdrop

import (
	"errors"
	"testing"
)

func TestNormalizeAddress_SchemeSelection(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantBase string
		wantHost string
	}{
		{"bare hostname", "example.com", "https://example.com", ""},
		{"hostname with scheme kept", "http://example.com", "http://example.com", ""},
		{"https hostname kept", "https://example.com", "https://example.com", ""},
		{"bare ipv4", "192.168.30.85", "http://192.168.30.85", DefaultCompatHost},
		{"ipv4 with port", "192.168.30.85:8080", "http://192.168.30.85:8080", DefaultCompatHost},
		{"https ipv4 downgraded", "https://192.168.30.85", "http://192.168.30.85", DefaultCompatHost},
		{"path stripped", "example.com/admin?x=1#frag", "https://example.com", ""},
		{"whitespace trimmed", "  example.com  ", "https://example.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := NormalizeAddress(tt.input)
			if err != nil {
				t.Fatalf("NormalizeAddress(%q) returned error: %v", tt.input, err)
			}
			if got := addr.BaseURL.String(); got != tt.wantBase {
				t.Fatalf("base = %q, want %q", got, tt.wantBase)
			}
			if addr.HostOverride != tt.wantHost {
				t.Fatalf("HostOverride = %q, want %q", addr.HostOverride, tt.wantHost)
			}
		})
	}
}

func TestNormalizeAddress_RecoversVirtualHost(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"userinfo form", "site.example.com@192.168.30.85", "site.example.com"},
		{"path segment form", "192.168.30.85/site.example.com", "site.example.com"},
		{"path segment with trailing path", "192.168.30.85/site.example.com/admin", "site.example.com"},
		{"no recoverable host", "192.168.30.85/admin", DefaultCompatHost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := NormalizeAddress(tt.input)
			if err != nil {
				t.Fatalf("NormalizeAddress(%q) returned error: %v", tt.input, err)
			}
			if addr.HostOverride != tt.want {
				t.Fatalf("HostOverride = %q, want %q", addr.HostOverride, tt.want)
			}
			if addr.BaseURL.Scheme != "http" {
				t.Fatalf("scheme = %q, want http for IP address", addr.BaseURL.Scheme)
			}
		})
	}
}

func TestNormalizeAddressWithHost_CustomFallback(t *testing.T) {
	addr, err := NormalizeAddressWithHost("10.0.0.7", "cms.internal")
	if err != nil {
		t.Fatalf("NormalizeAddressWithHost returned error: %v", err)
	}
	if addr.HostOverride != "cms.internal" {
		t.Fatalf("HostOverride = %q, want cms.internal", addr.HostOverride)
	}
	if !addr.IsIP() {
		t.Fatal("IsIP() = false, want true for literal IP")
	}
}

func TestNormalizeAddress_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "://nope", "ftp://example.com"} {
		_, err := NormalizeAddress(input)
		if !errors.Is(err, ErrInvalidAddress) {
			t.Fatalf("NormalizeAddress(%q) error = %v, want ErrInvalidAddress", input, err)
		}
	}
}

func TestNormalizeAddress_HostnameNeverGetsOverride(t *testing.T) {
	addr, err := NormalizeAddress("admin.example.org")
	if err != nil {
		t.Fatalf("NormalizeAddress returned error: %v", err)
	}
	if addr.IsIP() || addr.HostOverride != "" {
		t.Fatalf("hostname address got override %q, want none", addr.HostOverride)
	}
}
