package order

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/putrawijaya/fulfillment/constant"
	"github.com/putrawijaya/fulfillment/model"
	"github.com/putrawijaya/fulfillment/utils/errors"
)

type OrderRepository interface {
	InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error)
	InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.OrderItemRequest) error
	GetOrderForUpdateTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.OrderDetail, error)
	GetItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.OrderItem, error)
	UpdateOrderStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus) error
	AddAllocatedTx(ctx context.Context, tx *sqlx.Tx, itemID uint64, qty int64) error
	AddPickedTx(ctx context.Context, tx *sqlx.Tx, itemID uint64, qty int64) error
	AddPackedTx(ctx context.Context, tx *sqlx.Tx, itemID uint64, qty int64) error
	MarkShippedTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) error
	MarkDeliveredTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) error
	GetOrderDetail(ctx context.Context, orderID uint64) (*model.OrderDetail, error)
	GetItems(ctx context.Context, orderID uint64) ([]model.OrderItem, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

func (r *SQL) InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error) {
	res, err := tx.ExecContext(ctx, "INSERT INTO `order` (order_no, location_code, status, version) VALUES (?, ?, ?, 1)", req.OrderNo, req.Location, req.Status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.OrderItemRequest) error {
	q := "INSERT INTO order_item (order_id, sku, ordered, allocated, picked, packed, shipped, delivered) VALUES (?, ?, ?, 0, 0, 0, 0, 0)"
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, q, orderID, it.SKU, it.Qty); err != nil {
			return err
		}
	}
	return nil
}

// GetOrderForUpdateTx locks the order row; every event application starts
// here, which serializes concurrent events for the same order.
func (r *SQL) GetOrderForUpdateTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.OrderDetail, error) {
	var detail model.OrderDetail
	row := tx.QueryRowxContext(ctx, "SELECT id, order_no, location_code, status, version, created_at FROM `order` WHERE id = ? FOR UPDATE", orderID)
	if err := row.StructScan(&detail); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.SetCustomErrorf(constant.ErrNotFound, "order %d", orderID)
		}
		return nil, err
	}
	return &detail, nil
}

func (r *SQL) GetItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.OrderItem, error) {
	items := make([]model.OrderItem, 0)
	err := tx.SelectContext(ctx, &items, "SELECT id, order_id, sku, ordered, allocated, picked, packed, shipped, delivered FROM order_item WHERE order_id = ? ORDER BY id ASC", orderID)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SQL) UpdateOrderStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE `order` SET status = ?, version = version + 1 WHERE id = ?", status, orderID)
	return err
}

// Counter bumps guard the quantity chain in the UPDATE itself; zero rows
// affected means a caller tried to break the chain.

func (r *SQL) AddAllocatedTx(ctx context.Context, tx *sqlx.Tx, itemID uint64, qty int64) error {
	return r.addCounterTx(ctx, tx, "UPDATE order_item SET allocated = allocated + ? WHERE id = ? AND allocated + ? <= ordered", itemID, qty, "allocated")
}

func (r *SQL) AddPickedTx(ctx context.Context, tx *sqlx.Tx, itemID uint64, qty int64) error {
	return r.addCounterTx(ctx, tx, "UPDATE order_item SET picked = picked + ? WHERE id = ? AND picked + ? <= allocated", itemID, qty, "picked")
}

func (r *SQL) AddPackedTx(ctx context.Context, tx *sqlx.Tx, itemID uint64, qty int64) error {
	return r.addCounterTx(ctx, tx, "UPDATE order_item SET packed = packed + ? WHERE id = ? AND packed + ? <= picked", itemID, qty, "packed")
}

func (r *SQL) addCounterTx(ctx context.Context, tx *sqlx.Tx, q string, itemID uint64, qty int64, counter string) error {
	res, err := tx.ExecContext(ctx, q, qty, itemID, qty)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.SetCustomErrorf(constant.ErrInvariantViolation, "%s + %d would break quantity chain on item %d", counter, qty, itemID)
	}
	return nil
}

func (r *SQL) MarkShippedTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) error {
	_, err := tx.ExecContext(ctx, "UPDATE order_item SET shipped = packed WHERE order_id = ?", orderID)
	return err
}

func (r *SQL) MarkDeliveredTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) error {
	_, err := tx.ExecContext(ctx, "UPDATE order_item SET delivered = shipped WHERE order_id = ?", orderID)
	return err
}

func (r *SQL) GetOrderDetail(ctx context.Context, orderID uint64) (*model.OrderDetail, error) {
	var detail model.OrderDetail
	err := r.conn.GetContext(ctx, &detail, "SELECT id, order_no, location_code, status, version, created_at FROM `order` WHERE id = ?", orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.SetCustomErrorf(constant.ErrNotFound, "order %d", orderID)
		}
		return nil, err
	}
	return &detail, nil
}

func (r *SQL) GetItems(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
	items := make([]model.OrderItem, 0)
	err := r.conn.SelectContext(ctx, &items, "SELECT id, order_id, sku, ordered, allocated, picked, packed, shipped, delivered FROM order_item WHERE order_id = ? ORDER BY id ASC", orderID)
	if err != nil {
		return nil, err
	}
	return items, nil
}
