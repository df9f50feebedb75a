package delivery

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/putrawijaya/fulfillment/constant"
	"github.com/putrawijaya/fulfillment/model"
	"github.com/putrawijaya/fulfillment/utils/errors"
)

type DeliveryRepository interface {
	InsertDeliveryTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertDelivery) (uint64, error)
	GetByOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.Delivery, error)
	UpdateStatusByOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.DeliveryStatus) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewDeliveryRepository(conn *sqlx.DB) DeliveryRepository {
	return &SQL{conn: conn}
}

func (r *SQL) InsertDeliveryTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertDelivery) (uint64, error) {
	res, err := tx.ExecContext(ctx, "INSERT INTO delivery (order_id, manifest_id, carrier, awb, cod_amount, status) VALUES (?, ?, ?, ?, ?, ?)", req.OrderID, req.ManifestID, req.Carrier, req.AWB, req.CODAmount, req.Status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) GetByOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.Delivery, error) {
	var d model.Delivery
	err := tx.GetContext(ctx, &d, "SELECT id, order_id, manifest_id, carrier, awb, cod_amount, status FROM delivery WHERE order_id = ? ORDER BY id DESC LIMIT 1", orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.SetCustomErrorf(constant.ErrNotFound, "delivery for order %d", orderID)
		}
		return nil, err
	}
	return &d, nil
}

func (r *SQL) UpdateStatusByOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.DeliveryStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE delivery SET status = ? WHERE order_id = ?", status, orderID)
	return err
}
