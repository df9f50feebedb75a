package order

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/putrawijaya/fulfillment/constant"
	"github.com/putrawijaya/fulfillment/model"
	orderrepo "github.com/putrawijaya/fulfillment/repository/order"
	txrepo "github.com/putrawijaya/fulfillment/repository/tx"
	"github.com/putrawijaya/fulfillment/utils/errors"
	"github.com/putrawijaya/fulfillment/utils/logger"
	"go.uber.org/zap"
)

type OrderApp interface {
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)
	GetOrder(ctx context.Context, orderID uint64) (*model.OrderDetailResponse, error)
}

type orderAppImpl struct {
	txRepo    txrepo.TxRepository
	orderRepo orderrepo.OrderRepository
}

func NewOrderApp(txRepo txrepo.TxRepository, orderRepo orderrepo.OrderRepository) OrderApp {
	return &orderAppImpl{txRepo: txRepo, orderRepo: orderRepo}
}

func (s *orderAppImpl) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	// Reject duplicate SKUs up front so allocation stays per-item exact.
	seen := make(map[string]struct{}, len(req.Items))
	for _, item := range req.Items {
		if _, dup := seen[item.SKU]; dup {
			return nil, errors.SetCustomErrorf(constant.ErrInvalidRequest, "duplicate sku %s", item.SKU)
		}
		seen[item.SKU] = struct{}{}
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CreateOrder] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	orderNo := "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	orderID, err := s.orderRepo.InsertOrderTx(ctx, tx, &model.InsertOrderTxItem{
		OrderNo:  orderNo,
		Location: req.Location,
		Status:   constant.OrderStatusCreated,
	})
	if err != nil {
		logger.Error("[CreateOrder] insert order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.orderRepo.InsertOrderItemsTx(ctx, tx, orderID, req.Items); err != nil {
		logger.Error("[CreateOrder] insert items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CreateOrder] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	return &model.OrderResponse{
		OrderID: orderID,
		OrderNo: orderNo,
		Status:  constant.OrderStatusCreated.String(),
	}, nil
}

func (s *orderAppImpl) GetOrder(ctx context.Context, orderID uint64) (*model.OrderDetailResponse, error) {
	detail, err := s.orderRepo.GetOrderDetail(ctx, orderID)
	if err != nil {
		if ce, ok := errors.FromError(err); ok {
			return nil, ce
		}
		logger.Error("[GetOrder] get order", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	items, err := s.orderRepo.GetItems(ctx, orderID)
	if err != nil {
		logger.Error("[GetOrder] get items", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	views := make([]model.OrderItemView, 0, len(items))
	for _, item := range items {
		views = append(views, model.OrderItemView{
			ID:        item.ID,
			SKU:       item.SKU,
			Ordered:   item.Ordered,
			Allocated: item.Allocated,
			Picked:    item.Picked,
			Packed:    item.Packed,
			Shipped:   item.Shipped,
			Delivered: item.Delivered,
			Stage:     item.Stage(),
		})
	}

	return &model.OrderDetailResponse{
		OrderID:  detail.ID,
		OrderNo:  detail.OrderNo,
		Location: detail.Location,
		Status:   detail.Status.String(),
		Items:    views,
	}, nil
}
