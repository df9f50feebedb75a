package inventory

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/putrawijaya/fulfillment/constant"
	"github.com/putrawijaya/fulfillment/model"
	"github.com/putrawijaya/fulfillment/utils/errors"
)

// InventoryRepository is the only component allowed to change on_hand and
// reserved on an inventory row. Every mutation locks the rows it touches,
// so reserved <= on_hand holds even when reservations race.
type InventoryRepository interface {
	ReserveTx(ctx context.Context, tx *sqlx.Tx, req *model.ReserveRequest) (*model.ReservationResult, error)
	GetReservationsByOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.Reservation, error)
	CommitPickTx(ctx context.Context, tx *sqlx.Tx, orderItemID uint64, qty int64) ([]model.BinQty, error)
	ReleaseByOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, expected int64) error
	ReceiveTx(ctx context.Context, tx *sqlx.Tx, req *model.ReceiveRequest) error
	AdjustTx(ctx context.Context, tx *sqlx.Tx, req *model.AdjustRequest) error
	GetAvailability(ctx context.Context, sku, location string) (*model.Availability, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewInventoryRepository(conn *sqlx.DB) InventoryRepository {
	return &SQL{conn: conn}
}

type inventoryRow struct {
	ID       uint64 `db:"id"`
	BinCode  string `db:"bin_code"`
	OnHand   int64  `db:"on_hand"`
	Reserved int64  `db:"reserved"`
}

func (r *SQL) ReserveTx(ctx context.Context, tx *sqlx.Tx, req *model.ReserveRequest) (*model.ReservationResult, error) {
	// Lock rows for this SKU at the location; bin code order keeps
	// consumption deterministic.
	rows, err := tx.QueryxContext(ctx, "SELECT i.id, b.code AS bin_code, i.on_hand, i.reserved FROM inventory i JOIN bin b ON i.bin_id = b.id JOIN location l ON b.location_id = l.id WHERE i.sku = ? AND l.code = ? ORDER BY b.code ASC FOR UPDATE", req.SKU, req.Location)
	if err != nil {
		return nil, err
	}
	stock := make([]inventoryRow, 0)
	for rows.Next() {
		var inv inventoryRow
		if err := rows.StructScan(&inv); err != nil {
			rows.Close()
			return nil, err
		}
		stock = append(stock, inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slices, shortfall := planReservation(stock, req.Quantity)
	if shortfall > 0 && req.Policy == constant.AllocationPolicyFull {
		return nil, errors.SetCustomErrorf(constant.ErrInsufficientInventory, "sku %s at %s short by %d", req.SKU, req.Location, shortfall)
	}
	for _, s := range slices {
		if _, err := tx.ExecContext(ctx, "UPDATE inventory SET reserved = reserved + ? WHERE id = ?", s.Quantity, s.InventoryID); err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO stock_reservation (order_id, order_item_id, inventory_id, quantity) VALUES (?, ?, ?, ?)", req.OrderID, req.OrderItemID, s.InventoryID, s.Quantity); err != nil {
			return nil, err
		}
	}
	return &model.ReservationResult{Reserved: slices, Shortfall: shortfall}, nil
}

// planReservation walks locked stock rows in the order given and greedily
// consumes on_hand - reserved until the need is met. The second return is
// the uncovered remainder.
func planReservation(stock []inventoryRow, need int64) ([]model.BinQty, int64) {
	slices := make([]model.BinQty, 0, len(stock))
	for _, inv := range stock {
		if need <= 0 {
			break
		}
		avail := inv.OnHand - inv.Reserved
		if avail <= 0 {
			continue
		}
		take := avail
		if take > need {
			take = need
		}
		slices = append(slices, model.BinQty{InventoryID: inv.ID, BinCode: inv.BinCode, Quantity: take})
		need -= take
	}
	return slices, need
}

func (r *SQL) GetReservationsByOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.Reservation, error) {
	rows, err := tx.QueryxContext(ctx, "SELECT sr.id, sr.order_id, sr.order_item_id, sr.inventory_id, sr.quantity, i.sku, b.code AS bin_code FROM stock_reservation sr JOIN inventory i ON sr.inventory_id = i.id JOIN bin b ON i.bin_id = b.id WHERE sr.order_id = ? ORDER BY b.code ASC FOR UPDATE", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]model.Reservation, 0)
	for rows.Next() {
		var rr model.Reservation
		if err := rows.StructScan(&rr); err != nil {
			return nil, err
		}
		res = append(res, rr)
	}
	return res, rows.Err()
}

func (r *SQL) CommitPickTx(ctx context.Context, tx *sqlx.Tx, orderItemID uint64, qty int64) ([]model.BinQty, error) {
	rows, err := tx.QueryxContext(ctx, "SELECT sr.id, sr.order_id, sr.order_item_id, sr.inventory_id, sr.quantity, i.sku, b.code AS bin_code FROM stock_reservation sr JOIN inventory i ON sr.inventory_id = i.id JOIN bin b ON i.bin_id = b.id WHERE sr.order_item_id = ? ORDER BY b.code ASC FOR UPDATE", orderItemID)
	if err != nil {
		return nil, err
	}
	reservations := make([]model.Reservation, 0)
	for rows.Next() {
		var rr model.Reservation
		if err := rows.StructScan(&rr); err != nil {
			rows.Close()
			return nil, err
		}
		reservations = append(reservations, rr)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	plan, err := planPick(reservations, qty, orderItemID)
	if err != nil {
		return nil, err
	}

	// plan[i] draws from reservations[i]; planPick never reorders.
	for i, p := range plan {
		rr := reservations[i]
		// Physical removal: on_hand and reserved drop together.
		res, err := tx.ExecContext(ctx, "UPDATE inventory SET on_hand = on_hand - ?, reserved = reserved - ? WHERE id = ? AND on_hand >= ? AND reserved >= ?", p.Quantity, p.Quantity, rr.InventoryID, p.Quantity, p.Quantity)
		if err != nil {
			return nil, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, errors.SetCustomErrorf(constant.ErrInvariantViolation, "inventory row %d no longer covers pick of %d", rr.InventoryID, p.Quantity)
		}
		if p.Quantity == rr.Quantity {
			if _, err := tx.ExecContext(ctx, "DELETE FROM stock_reservation WHERE id = ?", rr.ID); err != nil {
				return nil, err
			}
		} else {
			if _, err := tx.ExecContext(ctx, "UPDATE stock_reservation SET quantity = quantity - ? WHERE id = ?", p.Quantity, rr.ID); err != nil {
				return nil, err
			}
		}
		if err := r.insertMovementTx(ctx, tx, rr.InventoryID, rr.SKU, -p.Quantity, constant.MovementKindPick, "", ""); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// planPick spreads a pick quantity across the item's reservation slices in
// bin order. Picking more than the item has reserved is an
// InvariantViolation.
func planPick(reservations []model.Reservation, qty int64, orderItemID uint64) ([]model.BinQty, error) {
	var reserved int64
	for _, rr := range reservations {
		reserved += rr.Quantity
	}
	if qty > reserved {
		return nil, errors.SetCustomErrorf(constant.ErrInvariantViolation, "pick of %d exceeds reserved %d for item %d", qty, reserved, orderItemID)
	}

	plan := make([]model.BinQty, 0, len(reservations))
	remaining := qty
	for _, rr := range reservations {
		if remaining <= 0 {
			break
		}
		take := rr.Quantity
		if take > remaining {
			take = remaining
		}
		plan = append(plan, model.BinQty{InventoryID: rr.InventoryID, BinCode: rr.BinCode, Quantity: take})
		remaining -= take
	}
	return plan, nil
}

// ReleaseByOrderTx returns every reserved unit the order holds. The caller
// states how many units it expects outstanding; a mismatch (e.g. a release
// applied twice finding zero rows) is an InvariantViolation, never a no-op.
func (r *SQL) ReleaseByOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, expected int64) error {
	reservations, err := r.GetReservationsByOrderTx(ctx, tx, orderID)
	if err != nil {
		return err
	}
	if err := checkRelease(reservations, expected, orderID); err != nil {
		return err
	}
	for _, rr := range reservations {
		res, err := tx.ExecContext(ctx, "UPDATE inventory SET reserved = reserved - ? WHERE id = ? AND reserved >= ?", rr.Quantity, rr.InventoryID, rr.Quantity)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return errors.SetCustomErrorf(constant.ErrInvariantViolation, "release of %d exceeds reserved on inventory row %d", rr.Quantity, rr.InventoryID)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM stock_reservation WHERE id = ?", rr.ID); err != nil {
			return err
		}
	}
	return nil
}

// checkRelease compares the ledger's reservation rows against the quantity
// the order counters say is outstanding.
func checkRelease(reservations []model.Reservation, expected int64, orderID uint64) error {
	var total int64
	for _, rr := range reservations {
		total += rr.Quantity
	}
	if total != expected {
		return errors.SetCustomErrorf(constant.ErrInvariantViolation, "order %d expects %d reserved units but ledger holds %d", orderID, expected, total)
	}
	return nil
}

func (r *SQL) ReceiveTx(ctx context.Context, tx *sqlx.Tx, req *model.ReceiveRequest) error {
	var locationID uint64
	if err := tx.GetContext(ctx, &locationID, "SELECT id FROM location WHERE code = ?", req.Location); err != nil {
		if err == sql.ErrNoRows {
			return errors.SetCustomErrorf(constant.ErrNotFound, "location %s", req.Location)
		}
		return err
	}

	var binID uint64
	err := tx.GetContext(ctx, &binID, "SELECT id FROM bin WHERE location_id = ? AND code = ?", locationID, req.Bin)
	if err == sql.ErrNoRows {
		res, err := tx.ExecContext(ctx, "INSERT INTO bin (location_id, code) VALUES (?, ?)", locationID, req.Bin)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		binID = uint64(id)
	} else if err != nil {
		return err
	}

	var invID uint64
	err = tx.GetContext(ctx, &invID, "SELECT id FROM inventory WHERE sku = ? AND bin_id = ? FOR UPDATE", req.SKU, binID)
	if err == sql.ErrNoRows {
		res, err := tx.ExecContext(ctx, "INSERT INTO inventory (sku, location_id, bin_id, on_hand, reserved) VALUES (?, ?, ?, ?, 0)", req.SKU, locationID, binID, req.Quantity)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		invID = uint64(id)
	} else if err != nil {
		return err
	} else {
		if _, err := tx.ExecContext(ctx, "UPDATE inventory SET on_hand = on_hand + ? WHERE id = ?", req.Quantity, invID); err != nil {
			return err
		}
	}

	return r.insertMovementTx(ctx, tx, invID, req.SKU, req.Quantity, constant.MovementKindReceive, req.Reason, req.Actor)
}

func (r *SQL) AdjustTx(ctx context.Context, tx *sqlx.Tx, req *model.AdjustRequest) error {
	var inv struct {
		ID       uint64 `db:"id"`
		OnHand   int64  `db:"on_hand"`
		Reserved int64  `db:"reserved"`
	}
	err := tx.GetContext(ctx, &inv, "SELECT i.id, i.on_hand, i.reserved FROM inventory i JOIN bin b ON i.bin_id = b.id JOIN location l ON b.location_id = l.id WHERE i.sku = ? AND l.code = ? AND b.code = ? FOR UPDATE", req.SKU, req.Location, req.Bin)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.SetCustomErrorf(constant.ErrNotFound, "inventory for sku %s at %s/%s", req.SKU, req.Location, req.Bin)
		}
		return err
	}
	if err := checkAdjust(req.NewOnHand, inv.Reserved); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "UPDATE inventory SET on_hand = ? WHERE id = ?", req.NewOnHand, inv.ID); err != nil {
		return err
	}
	return r.insertMovementTx(ctx, tx, inv.ID, req.SKU, req.NewOnHand-inv.OnHand, constant.MovementKindAdjust, req.Reason, req.Actor)
}

// checkAdjust rejects a cycle-count correction below what is already
// promised to orders.
func checkAdjust(newOnHand, reserved int64) error {
	if newOnHand < reserved {
		return errors.SetCustomErrorf(constant.ErrInvariantViolation, "new on-hand %d below reserved %d", newOnHand, reserved)
	}
	return nil
}

func (r *SQL) GetAvailability(ctx context.Context, sku, location string) (*model.Availability, error) {
	var exists int
	if err := r.conn.GetContext(ctx, &exists, "SELECT COUNT(1) FROM location WHERE code = ?", location); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, errors.SetCustomErrorf(constant.ErrNotFound, "location %s", location)
	}

	var row struct {
		OnHand   sql.NullInt64 `db:"on_hand"`
		Reserved sql.NullInt64 `db:"reserved"`
	}
	q := "SELECT COALESCE(SUM(i.on_hand),0) AS on_hand, COALESCE(SUM(i.reserved),0) AS reserved FROM inventory i JOIN location l ON i.location_id = l.id WHERE i.sku = ? AND l.code = ?"
	if err := r.conn.GetContext(ctx, &row, q, sku, location); err != nil {
		return nil, err
	}
	a := &model.Availability{
		SKU:      sku,
		Location: location,
		OnHand:   row.OnHand.Int64,
		Reserved: row.Reserved.Int64,
	}
	a.Available = a.OnHand - a.Reserved
	return a, nil
}

func (r *SQL) insertMovementTx(ctx context.Context, tx *sqlx.Tx, inventoryID uint64, sku string, delta int64, kind constant.MovementKind, reason, actor string) error {
	_, err := tx.ExecContext(ctx, "INSERT INTO inventory_movement (inventory_id, sku, qty_delta, kind, reason, actor) VALUES (?, ?, ?, ?, ?, ?)", inventoryID, sku, delta, string(kind), reason, actor)
	return err
}
