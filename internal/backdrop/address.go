package backdrop

import (
	"fmt"
	"net/netip"
	"net/url"
	"strings"
)

// DefaultCompatHost is the virtual-host name sent when a site is addressed
// by a bare IP and no real hostname can be recovered from the input.
const DefaultCompatHost = "backdrop.local"

// Address is a normalized site location. HostOverride is non-empty exactly
// when the base host is a literal IPv4 address; it is sent as the request
// Host header so a shared proxy routes to the right virtual host.
type Address struct {
	BaseURL      *url.URL
	HostOverride string
}

// NormalizeAddress turns a free-form site address into an Address using the
// default compatibility hostname.
func NormalizeAddress(raw string) (Address, error) {
	return NormalizeAddressWithHost(raw, DefaultCompatHost)
}

// NormalizeAddressWithHost normalizes raw into a base URL.
//
// Scheme selection: an explicit scheme is kept, except that https against a
// literal IPv4 host is downgraded to http (bare-IP servers present
// self-signed certificates). Without a scheme, literal-IPv4 hosts get http
// and hostnames get https. Path, query, and fragment are stripped so the
// base is always origin-only.
func NormalizeAddressWithHost(raw, compatHost string) (Address, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Address{}, fmt.Errorf("%w: empty input", ErrInvalidAddress)
	}

	hadScheme := strings.Contains(trimmed, "://")
	candidate := trimmed
	if !hadScheme {
		candidate = "https://" + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil || u.Hostname() == "" {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Address{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidAddress, u.Scheme)
	}

	ip := isIPv4(u.Hostname())
	if !hadScheme {
		if ip {
			u.Scheme = "http"
		} else {
			u.Scheme = "https"
		}
	}
	if ip && u.Scheme == "https" {
		u.Scheme = "http"
	}

	addr := Address{}
	if ip {
		addr.HostOverride = recoverHostname(u)
		if addr.HostOverride == "" {
			addr.HostOverride = strings.TrimSpace(compatHost)
		}
		if addr.HostOverride == "" {
			addr.HostOverride = DefaultCompatHost
		}
	}

	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	u.User = nil
	addr.BaseURL = u
	return addr, nil
}

// IsIP reports whether the address points at a literal IPv4 host.
func (a Address) IsIP() bool {
	return a.HostOverride != ""
}

func (a Address) String() string {
	if a.BaseURL == nil {
		return ""
	}
	return a.BaseURL.String()
}

func isIPv4(host string) bool {
	addr, err := netip.ParseAddr(host)
	return err == nil && addr.Is4()
}

// recoverHostname pulls a real virtual-host name out of an IP-addressed
// input. Two forms occur in the field: a hostname smuggled in the userinfo
// part ("site.example.com@192.168.30.85") and a hostname as the first path
// segment ("192.168.30.85/site.example.com").
func recoverHostname(u *url.URL) string {
	if u.User != nil {
		if name := u.User.Username(); looksLikeHostname(name) {
			return name
		}
	}
	seg := strings.Trim(u.Path, "/")
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		seg = seg[:i]
	}
	if looksLikeHostname(seg) {
		return seg
	}
	return ""
}

func looksLikeHostname(s string) bool {
	if s == "" || !strings.Contains(s, ".") || isIPv4(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.' || r == '-':
		default:
			return false
		}
	}
	return true
}
