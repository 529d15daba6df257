package api

import (
	"context"
	"net/http"
)

// Item is a single clipboard entry as it appears on the wire.
type Item struct {
	Item string `json:"item"`
}

type listPayload struct {
	Items []Item `json:"items"`
}

// ListItems returns every item stored on the server, in server order.
func (c *Client) ListItems(ctx context.Context) ([]string, error) {
	var payload listPayload
	if err := c.doRequest(ctx, http.MethodGet, ListPath, nil, http.StatusOK, &payload); err != nil {
		return nil, err
	}

	items := make([]string, 0, len(payload.Items))
	for _, it := range payload.Items {
		items = append(items, it.Item)
	}

	return items, nil
}

// AddItem stores item on the server. Empty items are rejected without a
// request.
func (c *Client) AddItem(ctx context.Context, item string) error {
	if item == "" {
		return &ValidationError{Field: "item", Message: "missing string to add"}
	}

	return c.doRequest(ctx, http.MethodPost, ItemPath, Item{Item: item}, http.StatusCreated, nil)
}
