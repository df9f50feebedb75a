package picklist

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/putrawijaya/fulfillment/constant"
	"github.com/putrawijaya/fulfillment/model"
	"github.com/putrawijaya/fulfillment/utils/errors"
)

type PicklistRepository interface {
	InsertPicklistTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertPicklist) (uint64, error)
	GetByOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.Picklist, error)
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, picklistID uint64, status constant.PicklistStatus) error
	AddPickedQtyTx(ctx context.Context, tx *sqlx.Tx, picklistID, orderItemID uint64, binCode string, qty int64) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewPicklistRepository(conn *sqlx.DB) PicklistRepository {
	return &SQL{conn: conn}
}

func (r *SQL) InsertPicklistTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertPicklist) (uint64, error) {
	res, err := tx.ExecContext(ctx, "INSERT INTO picklist (picklist_no, order_id, status) VALUES (?, ?, ?)", req.PicklistNo, req.OrderID, constant.PicklistStatusPending)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	picklistID := uint64(id)

	q := "INSERT INTO picklist_line (picklist_id, order_item_id, sku, bin_code, required_qty, picked_qty) VALUES (?, ?, ?, ?, ?, 0)"
	for _, line := range req.Lines {
		if _, err := tx.ExecContext(ctx, q, picklistID, line.OrderItemID, line.SKU, line.BinCode, line.RequiredQty); err != nil {
			return 0, err
		}
	}
	return picklistID, nil
}

func (r *SQL) GetByOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.Picklist, error) {
	var pl model.Picklist
	err := tx.GetContext(ctx, &pl, "SELECT id, picklist_no, order_id, status FROM picklist WHERE order_id = ? ORDER BY id DESC LIMIT 1", orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.SetCustomErrorf(constant.ErrNotFound, "picklist for order %d", orderID)
		}
		return nil, err
	}

	lines := make([]model.PicklistLine, 0)
	err = tx.SelectContext(ctx, &lines, "SELECT id, picklist_id, order_item_id, sku, bin_code, required_qty, picked_qty FROM picklist_line WHERE picklist_id = ? ORDER BY bin_code ASC", pl.ID)
	if err != nil {
		return nil, err
	}
	pl.Lines = lines
	return &pl, nil
}

func (r *SQL) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, picklistID uint64, status constant.PicklistStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE picklist SET status = ? WHERE id = ?", status, picklistID)
	return err
}

func (r *SQL) AddPickedQtyTx(ctx context.Context, tx *sqlx.Tx, picklistID, orderItemID uint64, binCode string, qty int64) error {
	_, err := tx.ExecContext(ctx, "UPDATE picklist_line SET picked_qty = picked_qty + ? WHERE picklist_id = ? AND order_item_id = ? AND bin_code = ?", qty, picklistID, orderItemID, binCode)
	return err
}
