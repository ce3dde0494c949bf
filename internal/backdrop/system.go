package backdrop

import (
	"context"
	"net/http"
)

// ClearCache flushes all server-side caches. The envelope carries no data;
// the returned message is whatever the server said about it.
func (c *Client) ClearCache(ctx context.Context) (string, error) {
	raw, err := c.do(ctx, http.MethodPost, "cache/clear", nil, nil)
	if err != nil {
		return "", err
	}
	return decodeAck(raw)
}

// RunCron triggers a cron pass and reports what it did. Some sites answer
// with a bare success ack and no run details; that still counts as a run.
func (c *Client) RunCron(ctx context.Context) (CronResult, error) {
	raw, err := c.do(ctx, http.MethodPost, "cron/run", nil, nil)
	if err != nil {
		return CronResult{}, err
	}
	result, ok, err := decodeOptional[CronResult](raw)
	if err != nil {
		return CronResult{}, err
	}
	if !ok {
		return CronResult{Ran: true}, nil
	}
	return result, nil
}
