package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fishinv/internal/model"
)

var ErrNotFound = errors.New("not found")

// rowNotFoundError names the missing id; it matches ErrNotFound.
type rowNotFoundError struct {
	id int64
}

func (e rowNotFoundError) Error() string { return fmt.Sprintf("item %d not found", e.id) }

func (e rowNotFoundError) Is(target error) bool { return target == ErrNotFound }

// Repo is the inventory table. Amount is always derived as qty × unit_price.
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

const selectRows = `SELECT id, fish, size, qty, unit_price, qty * unit_price FROM inventory`

func (r *Repo) List(ctx context.Context) ([]model.InventoryRow, error) {
	rows, err := r.db.QueryContext(ctx, selectRows+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	out := []model.InventoryRow{}
	for rows.Next() {
		var row model.InventoryRow
		if err := rows.Scan(&row.ID, &row.Fish, &row.Size, &row.Qty, &row.UnitPrice, &row.Amount); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int64) (model.InventoryRow, error) {
	var row model.InventoryRow
	err := r.db.QueryRowContext(ctx, selectRows+` WHERE id = ?`, id).
		Scan(&row.ID, &row.Fish, &row.Size, &row.Qty, &row.UnitPrice, &row.Amount)
	if errors.Is(err, sql.ErrNoRows) {
		return model.InventoryRow{}, rowNotFoundError{id: id}
	}
	if err != nil {
		return model.InventoryRow{}, fmt.Errorf("get inventory %d: %w", id, err)
	}
	return row, nil
}

func (r *Repo) Create(ctx context.Context, in model.NewRow) (model.InventoryRow, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO inventory(fish, size, qty, unit_price) VALUES(?, ?, ?, ?)`,
		in.Fish, in.Size, in.Qty, in.UnitPrice,
	)
	if err != nil {
		return model.InventoryRow{}, fmt.Errorf("insert inventory: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.InventoryRow{}, err
	}
	return r.Get(ctx, id)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func update(ctx context.Context, db execer, p model.RowPayload) error {
	res, err := db.ExecContext(ctx,
		`UPDATE inventory SET fish = ?, size = ?, qty = ?, unit_price = ? WHERE id = ?`,
		p.Fish, p.Size, p.Qty, p.UnitPrice, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update inventory %d: %w", p.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return rowNotFoundError{id: p.ID}
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, p model.RowPayload) (model.InventoryRow, error) {
	if err := update(ctx, r.db, p); err != nil {
		return model.InventoryRow{}, err
	}
	return r.Get(ctx, p.ID)
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete inventory %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return rowNotFoundError{id: id}
	}
	return nil
}

// BulkUpdate applies every item in one transaction. Any failure (including an
// unknown id) rolls the whole batch back.
func (r *Repo) BulkUpdate(ctx context.Context, items []model.RowPayload) (int, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, it := range items {
		if err := update(ctx, tx, it); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit bulk: %w", err)
	}
	return len(items), nil
}
