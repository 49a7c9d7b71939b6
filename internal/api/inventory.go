package api

import (
	"context"
	"encoding/json"
	"fmt"

	"fishinv/internal/model"
)

const inventoryPath = "/api/inventory"

func rowPath(id int64) string {
	return fmt.Sprintf("%s/%d", inventoryPath, id)
}

func (c *Client) ListInventory(ctx context.Context) ([]model.InventoryRow, error) {
	var rows []model.InventoryRow
	if err := c.Get(ctx, inventoryPath, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.InventoryRow{}
	}
	return rows, nil
}

// CreateRow posts a new row. The backend may answer with the created row or a
// bare acknowledgement; the raw body is returned either way.
func (c *Client) CreateRow(ctx context.Context, row model.NewRow) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.Post(ctx, inventoryPath, row, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateRow(ctx context.Context, row model.RowPayload) error {
	return c.Put(ctx, rowPath(row.ID), row, nil)
}

func (c *Client) DeleteRow(ctx context.Context, id int64) error {
	return c.Delete(ctx, rowPath(id), nil)
}

func (c *Client) BulkUpdate(ctx context.Context, items []model.RowPayload) error {
	if items == nil {
		items = []model.RowPayload{}
	}
	return c.Post(ctx, inventoryPath+"/bulk", model.BulkRequest{Items: items}, nil)
}
