package manifest

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/putrawijaya/fulfillment/constant"
	"github.com/putrawijaya/fulfillment/model"
)

type ManifestRepository interface {
	GetOpenByCarrierTx(ctx context.Context, tx *sqlx.Tx, carrier string) (*model.Manifest, error)
	InsertManifestTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertManifest) (uint64, error)
	CloseIfAllShippedTx(ctx context.Context, tx *sqlx.Tx, manifestID uint64) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewManifestRepository(conn *sqlx.DB) ManifestRepository {
	return &SQL{conn: conn}
}

// GetOpenByCarrierTx returns nil when the carrier has no open manifest.
func (r *SQL) GetOpenByCarrierTx(ctx context.Context, tx *sqlx.Tx, carrier string) (*model.Manifest, error) {
	var m model.Manifest
	err := tx.GetContext(ctx, &m, "SELECT id, manifest_no, carrier, status FROM manifest WHERE carrier = ? AND status = ? ORDER BY id DESC LIMIT 1 FOR UPDATE", carrier, constant.ManifestStatusOpen)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *SQL) InsertManifestTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertManifest) (uint64, error) {
	res, err := tx.ExecContext(ctx, "INSERT INTO manifest (manifest_no, carrier, status) VALUES (?, ?, ?)", req.ManifestNo, req.Carrier, constant.ManifestStatusOpen)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// CloseIfAllShippedTx closes the manifest once none of its deliveries are
// still pending handover.
func (r *SQL) CloseIfAllShippedTx(ctx context.Context, tx *sqlx.Tx, manifestID uint64) error {
	var pending int
	if err := tx.GetContext(ctx, &pending, "SELECT COUNT(1) FROM delivery WHERE manifest_id = ? AND status = ?", manifestID, constant.DeliveryStatusPending); err != nil {
		return err
	}
	if pending > 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx, "UPDATE manifest SET status = ?, closed_at = NOW() WHERE id = ?", constant.ManifestStatusClosed, manifestID)
	return err
}
