package backdrop

import (
	"context"
	"net/http"
	"strings"
)

// StatusReport fetches the site status report.
func (c *Client) StatusReport(ctx context.Context) ([]StatusItem, error) {
	raw, err := c.do(ctx, http.MethodGet, "reports/status", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[[]StatusItem](raw)
}

// LogQuery configures watchdog listing requests.
type LogQuery struct {
	Page     int
	Limit    int
	Severity string
	Type     string
}

// Watchdog fetches one page of recent log messages.
func (c *Client) Watchdog(ctx context.Context, query LogQuery) (Page[LogEntry], error) {
	values := pageValues(query.Page, query.Limit)
	if severity := strings.TrimSpace(query.Severity); severity != "" {
		values.Set("severity", severity)
	}
	if typ := strings.TrimSpace(query.Type); typ != "" {
		values.Set("type", typ)
	}
	raw, err := c.do(ctx, http.MethodGet, "reports/logs", values, nil)
	if err != nil {
		return Page[LogEntry]{}, err
	}
	return decodePage[LogEntry](raw)
}

// ClearWatchdog empties the log message table.
func (c *Client) ClearWatchdog(ctx context.Context) (string, error) {
	raw, err := c.do(ctx, http.MethodPost, "reports/logs/clear", nil, nil)
	if err != nil {
		return "", err
	}
	return decodeAck(raw)
}
