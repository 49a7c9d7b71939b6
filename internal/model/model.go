package model

// InventoryRow is one server-owned inventory line. Amount is authoritative only
// when it comes from the server; clients compute previews with Preview.
type InventoryRow struct {
	ID        int64   `json:"id"`
	Fish      string  `json:"fish"`
	Size      string  `json:"size"`
	Qty       float64 `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
	Amount    float64 `json:"amount"`
}

// NewRow is the body of a creation request (the server assigns the id).
type NewRow struct {
	Fish      string  `json:"fish"`
	Size      string  `json:"size"`
	Qty       float64 `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
}

// RowPayload is a full-row replacement, used both for single updates and as a
// bulk item.
type RowPayload struct {
	ID        int64   `json:"id"`
	Fish      string  `json:"fish"`
	Size      string  `json:"size"`
	Qty       float64 `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
}

type BulkRequest struct {
	Items []RowPayload `json:"items"`
}

func (p RowPayload) Amount() float64 { return Preview(p.Qty, p.UnitPrice) }

func (r InventoryRow) Payload() RowPayload {
	return RowPayload{
		ID:        r.ID,
		Fish:      r.Fish,
		Size:      r.Size,
		Qty:       r.Qty,
		UnitPrice: r.UnitPrice,
	}
}

// Preview is the client-side derived amount.
func Preview(qty, unitPrice float64) float64 {
	return qty * unitPrice
}
