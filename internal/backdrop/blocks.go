package backdrop

import (
	"context"
	"fmt"
	"net/http"
)

// ListBlocks fetches every layout block. Blocks are a small fixed set, so
// the endpoint is not paged.
func (c *Client) ListBlocks(ctx context.Context) ([]Block, error) {
	raw, err := c.do(ctx, http.MethodGet, "blocks/list", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[[]Block](raw)
}

// SetBlockRegion moves a block to another region.
func (c *Client) SetBlockRegion(ctx context.Context, id, region string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("block id required")
	}
	body := struct {
		Region string `json:"region"`
	}{Region: region}
	raw, err := c.do(ctx, http.MethodPost, "blocks/"+id+"/region", nil, body)
	if err != nil {
		return "", err
	}
	return decodeAck(raw)
}

// ReorderBlocks replaces the weight order of a region's blocks with the
// given id order, first to last.
func (c *Client) ReorderBlocks(ctx context.Context, region string, order []string) (string, error) {
	if len(order) == 0 {
		return "", fmt.Errorf("block order required")
	}
	body := struct {
		Region string   `json:"region"`
		Order  []string `json:"order"`
	}{Region: region, Order: order}
	raw, err := c.do(ctx, http.MethodPost, "blocks/reorder", nil, body)
	if err != nil {
		return "", err
	}
	return decodeAck(raw)
}

// DisableBlock removes a block from its region without deleting it.
func (c *Client) DisableBlock(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("block id required")
	}
	raw, err := c.do(ctx, http.MethodPost, "blocks/"+id+"/disable", nil, nil)
	if err != nil {
		return "", err
	}
	return decodeAck(raw)
}
