package backdrop

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

const serverTimestampLayout = "2006-01-02 15:04:05"

// Pagination bounds shared by every list endpoint. The server clamps the
// same way; clamping client-side keeps requests honest.
const (
	DefaultPageLimit = 20
	maxPageLimit     = 100
)

// Page is one page of a server-side listing. Pages is derived server-side
// as ceil(Total/Limit) and re-checked at decode time.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

func (p Page[T]) validate() error {
	if p.Limit < 1 {
		return fmt.Errorf("%w: page limit %d", ErrInvalidResponse, p.Limit)
	}
	if want := ceilDiv(p.Total, p.Limit); p.Pages != want {
		return fmt.Errorf("%w: pages %d with total %d limit %d, want %d", ErrInvalidResponse, p.Pages, p.Total, p.Limit, want)
	}
	if len(p.Items) > p.Limit {
		return fmt.Errorf("%w: %d items exceed limit %d", ErrInvalidResponse, len(p.Items), p.Limit)
	}
	return nil
}

// HasNext reports whether another page follows this one.
func (p Page[T]) HasNext() bool { return p.Page < p.Pages }

func decodePage[T any](raw []byte) (Page[T], error) {
	page, err := decodeEnvelope[Page[T]](raw)
	if err != nil {
		return Page[T]{}, err
	}
	if err := page.validate(); err != nil {
		return Page[T]{}, err
	}
	return page, nil
}

func ceilDiv(total, limit int) int {
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func clampLimit(limit int) int {
	if limit < 1 {
		return DefaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}

func pageValues(page, limit int) url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(clampPage(page)))
	values.Set("limit", strconv.Itoa(clampLimit(limit)))
	return values
}

// StatusItem is one row of the site status report.
type StatusItem struct {
	Title       string `json:"title"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Severity    string `json:"severity"` // ok, warning, error
}

// CronResult mirrors the payload of a manual cron run.
type CronResult struct {
	Ran        bool   `json:"ran"`
	DurationMS int64  `json:"duration_ms"`
	LastRun    string `json:"last_run"`
}

// ContentItem is a node as the admin listing presents it.
type ContentItem struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Type    string `json:"type"`
	Author  string `json:"author"`
	Status  string `json:"status"` // published, unpublished
	Created string `json:"created"`
	Updated string `json:"updated"`
}

// ParsedCreated returns the creation timestamp as time.Time when possible.
func (n ContentItem) ParsedCreated() time.Time { return parseTime(n.Created) }

// ParsedUpdated returns the last-change timestamp as time.Time when possible.
func (n ContentItem) ParsedUpdated() time.Time { return parseTime(n.Updated) }

// ContentDraft carries the writable fields of a node.
type ContentDraft struct {
	Title  string `json:"title"`
	Type   string `json:"type"`
	Body   string `json:"body"`
	Status string `json:"status"`
}

// LogEntry is one watchdog record.
type LogEntry struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Location  string `json:"location"`
	Referer   string `json:"referer"`
	Hostname  string `json:"hostname"`
	User      string `json:"user"`
	Timestamp string `json:"timestamp"`
}

// ParsedTime returns the entry timestamp as time.Time when possible.
func (e LogEntry) ParsedTime() time.Time { return parseTime(e.Timestamp) }

// User mirrors an account record.
type User struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Roles      []string `json:"roles"`
	Status     string   `json:"status"` // active, blocked
	Created    string   `json:"created"`
	LastAccess string   `json:"last_access"`
}

// UserDraft carries the writable fields of a new account.
type UserDraft struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// Comment mirrors a comment record with enough of its node for a listing.
type Comment struct {
	ID        int64  `json:"id"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Author    string `json:"author"`
	NodeID    int64  `json:"node_id"`
	NodeTitle string `json:"node_title"`
	Status    string `json:"status"` // published, unapproved
	Created   string `json:"created"`
}

// Block mirrors a layout block.
type Block struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Module  string `json:"module"`
	Region  string `json:"region"`
	Weight  int    `json:"weight"`
	Enabled bool   `json:"enabled"`
}

// File mirrors a managed file record.
type File struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	URI     string `json:"uri"`
	MIME    string `json:"mime"`
	Size    int64  `json:"size"`
	Created string `json:"created"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(serverTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
