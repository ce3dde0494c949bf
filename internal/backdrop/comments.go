package backdrop

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// CommentQuery configures comment listing requests.
type CommentQuery struct {
	Page   int
	Limit  int
	Status string
	NodeID int64
}

// ListComments fetches one page of comments.
func (c *Client) ListComments(ctx context.Context, query CommentQuery) (Page[Comment], error) {
	values := pageValues(query.Page, query.Limit)
	if status := strings.TrimSpace(query.Status); status != "" {
		values.Set("status", status)
	}
	if query.NodeID > 0 {
		values.Set("node", fmt.Sprintf("%d", query.NodeID))
	}
	raw, err := c.do(ctx, http.MethodGet, "comments/list", values, nil)
	if err != nil {
		return Page[Comment]{}, err
	}
	return decodePage[Comment](raw)
}

// SetCommentStatus approves or unapproves a comment.
func (c *Client) SetCommentStatus(ctx context.Context, id int64, status string) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("comment id required")
	}
	body := struct {
		Status string `json:"status"`
	}{Status: status}
	raw, err := c.do(ctx, http.MethodPost, fmt.Sprintf("comments/%d/status", id), nil, body)
	if err != nil {
		return "", err
	}
	return decodeAck(raw)
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, id int64) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("comment id required")
	}
	raw, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("comments/%d", id), nil, nil)
	if err != nil {
		return "", err
	}
	return decodeAck(raw)
}
