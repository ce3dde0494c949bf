package backdrop

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContentQuery configures content listing requests.
type ContentQuery struct {
	Page   int
	Limit  int
	Type   string
	Status string
}

// ListContent fetches one page of nodes.
func (c *Client) ListContent(ctx context.Context, query ContentQuery) (Page[ContentItem], error) {
	values := pageValues(query.Page, query.Limit)
	if typ := strings.TrimSpace(query.Type); typ != "" {
		values.Set("type", typ)
	}
	if status := strings.TrimSpace(query.Status); status != "" {
		values.Set("status", status)
	}
	raw, err := c.do(ctx, http.MethodGet, "content/list", values, nil)
	if err != nil {
		return Page[ContentItem]{}, err
	}
	return decodePage[ContentItem](raw)
}

// GetContent fetches a single node.
func (c *Client) GetContent(ctx context.Context, id int64) (ContentItem, error) {
	if id <= 0 {
		return ContentItem{}, fmt.Errorf("content id required")
	}
	raw, err := c.do(ctx, http.MethodGet, fmt.Sprintf("content/%d", id), nil, nil)
	if err != nil {
		return ContentItem{}, err
	}
	return decodeEnvelope[ContentItem](raw)
}

// CreateContent creates a node and returns the stored record.
func (c *Client) CreateContent(ctx context.Context, draft ContentDraft) (ContentItem, error) {
	raw, err := c.do(ctx, http.MethodPost, "content/create", nil, draft)
	if err != nil {
		return ContentItem{}, err
	}
	return decodeEnvelope[ContentItem](raw)
}

// UpdateContent replaces a node's writable fields.
func (c *Client) UpdateContent(ctx context.Context, id int64, draft ContentDraft) (ContentItem, error) {
	if id <= 0 {
		return ContentItem{}, fmt.Errorf("content id required")
	}
	raw, err := c.do(ctx, http.MethodPut, fmt.Sprintf("content/%d", id), nil, draft)
	if err != nil {
		return ContentItem{}, err
	}
	return decodeEnvelope[ContentItem](raw)
}

// SetContentStatus publishes or unpublishes a node.
func (c *Client) SetContentStatus(ctx context.Context, id int64, status string) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("content id required")
	}
	body := struct {
		Status string `json:"status"`
	}{Status: status}
	raw, err := c.do(ctx, http.MethodPost, fmt.Sprintf("content/%d/status", id), nil, body)
	if err != nil {
		return "", err
	}
	return decodeAck(raw)
}

// DeleteContent removes a node.
func (c *Client) DeleteContent(ctx context.Context, id int64) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("content id required")
	}
	raw, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("content/%d", id), nil, nil)
	if err != nil {
		return "", err
	}
	return decodeAck(raw)
}
