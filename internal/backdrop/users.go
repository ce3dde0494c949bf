package backdrop

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// UserQuery configures account listing requests.
type UserQuery struct {
	Page   int
	Limit  int
	Status string
}

// ListUsers fetches one page of accounts.
func (c *Client) ListUsers(ctx context.Context, query UserQuery) (Page[User], error) {
	values := pageValues(query.Page, query.Limit)
	if status := strings.TrimSpace(query.Status); status != "" {
		values.Set("status", status)
	}
	raw, err := c.do(ctx, http.MethodGet, "users/list", values, nil)
	if err != nil {
		return Page[User]{}, err
	}
	return decodePage[User](raw)
}

// GetUser fetches a single account.
func (c *Client) GetUser(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, fmt.Errorf("user id required")
	}
	raw, err := c.do(ctx, http.MethodGet, fmt.Sprintf("users/%d", id), nil, nil)
	if err != nil {
		return User{}, err
	}
	return decodeEnvelope[User](raw)
}

// CreateUser creates an account and returns the stored record.
func (c *Client) CreateUser(ctx context.Context, draft UserDraft) (User, error) {
	raw, err := c.do(ctx, http.MethodPost, "users/create", nil, draft)
	if err != nil {
		return User{}, err
	}
	return decodeEnvelope[User](raw)
}

// SetUserStatus blocks or unblocks an account.
func (c *Client) SetUserStatus(ctx context.Context, id int64, status string) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("user id required")
	}
	body := struct {
		Status string `json:"status"`
	}{Status: status}
	raw, err := c.do(ctx, http.MethodPost, fmt.Sprintf("users/%d/status", id), nil, body)
	if err != nil {
		return "", err
	}
	return decodeAck(raw)
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id int64) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("user id required")
	}
	raw, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("users/%d", id), nil, nil)
	if err != nil {
		return "", err
	}
	return decodeAck(raw)
}
