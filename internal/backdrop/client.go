package backdrop

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	apiPrefix           = "/api/admin/"
	loginPath           = "/api/admin/login"
	logoutPath          = "/api/admin/logout"
	sessionCookiePrefix = "SESS"
	defaultTimeout      = 15 * time.Second
	defaultUserAgent    = "backdeck/0.3"
)

// Options configure a Client.
type Options struct {
	Timeout    time.Duration // zero uses the 15s default
	UserAgent  string
	CompatHost string // fallback virtual host for bare-IP sites
	Logger     *zap.Logger
}

// Client talks to a Backdrop CMS admin API. A zero session is attached at
// Login; until then every call fails with ErrNotAuthenticated. Client is
// safe for concurrent use.
type Client struct {
	http       *http.Client
	userAgent  string
	compatHost string
	logger     *zap.Logger

	mu        sync.RWMutex
	session   session
	lastTrace *LoginTrace

	inflight atomic.Int64
}

// New builds an unauthenticated Client.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	// No cookie jar here: the session cookie is attached explicitly from
	// the stored token, and a jar on the same client would make the
	// transport append its copy to the Cookie header a second time.
	return &Client{
		http: &http.Client{
			Timeout: timeout,
			// The login endpoint answers with a 302 that carries the
			// session cookie; following it would hand us the target page
			// instead of the Set-Cookie headers.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent:  userAgent,
		compatHost: opts.CompatHost,
		logger:     logger,
	}
}

// NormalizeAddress normalizes a free-form site address using the client's
// configured compatibility hostname.
func (c *Client) NormalizeAddress(raw string) (Address, error) {
	compat := c.compatHost
	if strings.TrimSpace(compat) == "" {
		compat = DefaultCompatHost
	}
	return NormalizeAddressWithHost(raw, compat)
}

// Login authenticates against the site's login endpoint. On success the
// client holds the session cookie and attaches it to every later call. The
// attempt's trace is recorded either way and available via LastLoginTrace.
func (c *Client) Login(ctx context.Context, addr Address, username, password string) error {
	if addr.BaseURL == nil {
		return fmt.Errorf("%w: no base URL", ErrInvalidAddress)
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	loginURL := addr.BaseURL.ResolveReference(&url.URL{Path: loginPath})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)
	if addr.HostOverride != "" {
		req.Host = addr.HostOverride
	}

	// A fresh jar per attempt, on a login-scoped client. It exists only
	// to catch a session cookie a proxy folds into the redirect hop, and
	// is discarded afterwards so nothing leaks into API calls or into a
	// later login against a different site.
	jar, _ := cookiejar.New(nil)
	loginClient := &http.Client{
		Timeout: c.http.Timeout,
		Jar:     jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	traceID := uuid.NewString()
	c.begin()
	resp, err := loginClient.Do(req)
	c.end()
	if err != nil {
		c.setTrace(buildTrace(traceID, loginURL.String(), nil, nil))
		return fmt.Errorf("execute login request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, bodyPreviewLimit))
	c.setTrace(buildTrace(traceID, loginURL.String(), resp, body))
	c.logger.Debug("login attempt",
		zap.String("trace", traceID),
		zap.String("url", loginURL.String()),
		zap.Int("status", resp.StatusCode))

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusFound {
		return fmt.Errorf("%w: status %d", ErrLoginFailed, resp.StatusCode)
	}

	token := sessionCookie(resp.Cookies())
	if token == "" {
		// Cookie jar fallback: some proxies fold Set-Cookie into a
		// redirect hop the jar saw but the final response did not.
		token = sessionCookie(jar.Cookies(loginURL))
	}
	if token == "" {
		return fmt.Errorf("%w: no session cookie in response", ErrLoginFailed)
	}

	c.mu.Lock()
	c.session = session{address: addr, token: token, authenticated: true}
	c.mu.Unlock()
	c.logger.Info("session established", zap.String("site", addr.String()))
	return nil
}

// Logout tells the server to end the session, best effort, then clears the
// local session unconditionally.
func (c *Client) Logout(ctx context.Context) {
	c.mu.RLock()
	sess := c.session
	c.mu.RUnlock()

	if sess.authenticated {
		logoutURL := sess.address.BaseURL.ResolveReference(&url.URL{Path: logoutPath})
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, logoutURL.String(), nil)
		if err == nil {
			req.Header.Set("User-Agent", c.userAgent)
			req.Header.Set("Cookie", sess.token)
			if sess.address.HostOverride != "" {
				req.Host = sess.address.HostOverride
			}
			if resp, err := c.http.Do(req); err == nil {
				_ = resp.Body.Close()
			}
		}
	}

	c.mu.Lock()
	c.session = session{}
	c.mu.Unlock()
	c.logger.Info("session cleared")
}

// IsAuthenticated reports whether a session is currently held.
func (c *Client) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.authenticated
}

// Address returns the normalized address of the active session, or a zero
// Address when logged out.
func (c *Client) Address() Address {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.address
}

// InFlight reports whether any request is currently outstanding. A counter
// rather than a flag, so overlapping calls cannot re-enable the UI early.
func (c *Client) InFlight() bool {
	return c.inflight.Load() > 0
}

// LastLoginTrace returns the trace of the most recent login attempt, or nil.
func (c *Client) LastLoginTrace() *LoginTrace {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastTrace
}

// do executes one API call: marshal the optional body to JSON, run the
// pipeline, return the raw response bytes.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	return c.doRaw(ctx, method, path, query, reader, "application/json")
}

// doRaw is the request pipeline shared by JSON and multipart calls. It
// requires an authenticated session, joins the API prefix with the endpoint
// path against the session base, attaches the session cookie and the Host
// override for bare-IP sites, and validates the status code. The raw body
// bytes come back unmodified for the envelope decoder.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	c.mu.RLock()
	sess := c.session
	c.mu.RUnlock()
	if !sess.authenticated {
		return nil, ErrNotAuthenticated
	}

	rel := &url.URL{Path: apiPrefix + strings.TrimPrefix(path, "/")}
	if len(query) > 0 {
		rel.RawQuery = query.Encode()
	}
	reqURL := sess.address.BaseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Cookie", sess.token)
	if sess.address.HostOverride != "" {
		req.Host = sess.address.HostOverride
	}

	c.begin()
	started := time.Now()
	resp, err := c.http.Do(req)
	c.end()
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.logger.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if msg, ok := decodeErrorBody(raw); ok {
			return nil, &ServerError{Message: msg}
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode}
	}
	return raw, nil
}

func (c *Client) begin() { c.inflight.Add(1) }
func (c *Client) end()   { c.inflight.Add(-1) }

func (c *Client) setTrace(trace *LoginTrace) {
	c.mu.Lock()
	c.lastTrace = trace
	c.mu.Unlock()
}

// sessionCookie finds the session cookie among cookies and returns it in
// "name=value" form, or "" when absent.
func sessionCookie(cookies []*http.Cookie) string {
	for _, ck := range cookies {
		if strings.HasPrefix(ck.Name, sessionCookiePrefix) && ck.Value != "" {
			return ck.Name + "=" + ck.Value
		}
	}
	return ""
}
