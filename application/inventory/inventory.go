package inventory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/putrawijaya/fulfillment/cmd/config"
	"github.com/putrawijaya/fulfillment/constant"
	"github.com/putrawijaya/fulfillment/model"
	inventoryrepo "github.com/putrawijaya/fulfillment/repository/inventory"
	redisrepo "github.com/putrawijaya/fulfillment/repository/redis"
	txrepo "github.com/putrawijaya/fulfillment/repository/tx"
	utilsContext "github.com/putrawijaya/fulfillment/utils/context"
	"github.com/putrawijaya/fulfillment/utils/errors"
	"github.com/putrawijaya/fulfillment/utils/logger"
	"go.uber.org/zap"
)

type InventoryApp interface {
	ReceiveStock(ctx context.Context, req *model.ReceiveStockRequest) error
	AdjustStock(ctx context.Context, req *model.AdjustStockRequest) error
	GetAvailability(ctx context.Context, sku, location string) (*model.Availability, error)
}

type inventoryAppImpl struct {
	config        *config.Config
	txRepo        txrepo.TxRepository
	inventoryRepo inventoryrepo.InventoryRepository
	redisRepo     redisrepo.Repository
}

func NewInventoryApp(config *config.Config, txRepo txrepo.TxRepository, inventoryRepo inventoryrepo.InventoryRepository, redisRepo redisrepo.Repository) InventoryApp {
	return &inventoryAppImpl{
		config:        config,
		txRepo:        txRepo,
		inventoryRepo: inventoryRepo,
		redisRepo:     redisRepo,
	}
}

func (s *inventoryAppImpl) ReceiveStock(ctx context.Context, req *model.ReceiveStockRequest) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ReceiveStock] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	actor, _ := utilsContext.GetActorID(ctx)
	err = s.inventoryRepo.ReceiveTx(ctx, tx, &model.ReceiveRequest{
		SKU:      req.SKU,
		Location: req.Location,
		Bin:      req.Bin,
		Quantity: req.Qty,
		Reason:   req.Reason,
		Actor:    actor,
	})
	if err != nil {
		if ce, ok := errors.FromError(err); ok {
			return ce
		}
		logger.Error("[ReceiveStock] receive", zap.String("sku", req.SKU), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ReceiveStock] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.invalidateAvailability(ctx, req.SKU, req.Location)
	return nil
}

func (s *inventoryAppImpl) AdjustStock(ctx context.Context, req *model.AdjustStockRequest) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[AdjustStock] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	actor, _ := utilsContext.GetActorID(ctx)
	err = s.inventoryRepo.AdjustTx(ctx, tx, &model.AdjustRequest{
		SKU:       req.SKU,
		Location:  req.Location,
		Bin:       req.Bin,
		NewOnHand: req.NewOnHand,
		Reason:    req.Reason,
		Actor:     actor,
	})
	if err != nil {
		if ce, ok := errors.FromError(err); ok {
			return ce
		}
		logger.Error("[AdjustStock] adjust", zap.String("sku", req.SKU), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[AdjustStock] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.invalidateAvailability(ctx, req.SKU, req.Location)
	return nil
}

// GetAvailability reads through the redis cache. Only ReceiveStock and
// AdjustStock invalidate the key eagerly; order events that move inventory
// (allocation, picking, RTO receipt) leave it to expire with its TTL, so a
// cached read may trail those events by up to AvailabilityCacheTTL.
func (s *inventoryAppImpl) GetAvailability(ctx context.Context, sku, location string) (*model.Availability, error) {
	key := availabilityKey(sku, location)
	if cached, err := s.redisRepo.Get(ctx, key); err == nil && cached != "" {
		var a model.Availability
		if err := json.Unmarshal([]byte(cached), &a); err == nil {
			return &a, nil
		}
	}

	a, err := s.inventoryRepo.GetAvailability(ctx, sku, location)
	if err != nil {
		if ce, ok := errors.FromError(err); ok {
			return nil, ce
		}
		logger.Error("[GetAvailability] query", zap.String("sku", sku), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if raw, err := json.Marshal(a); err == nil {
		if err := s.redisRepo.SetWithTTL(ctx, key, string(raw), s.config.Fulfillment.AvailabilityCacheTTL); err != nil {
			logger.Warn("[GetAvailability] cache set", zap.String("error", err.Error()))
		}
	}
	return a, nil
}

func (s *inventoryAppImpl) invalidateAvailability(ctx context.Context, sku, location string) {
	if err := s.redisRepo.Delete(ctx, availabilityKey(sku, location)); err != nil {
		logger.Warn("[invalidateAvailability] cache delete", zap.String("error", err.Error()))
	}
}

func availabilityKey(sku, location string) string {
	return fmt.Sprintf("availability:%s:%s", sku, location)
}
