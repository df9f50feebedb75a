package fulfillment

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/putrawijaya/fulfillment/cmd/config"
	"github.com/putrawijaya/fulfillment/constant"
	"github.com/putrawijaya/fulfillment/model"
	deliveryrepo "github.com/putrawijaya/fulfillment/repository/delivery"
	inventoryrepo "github.com/putrawijaya/fulfillment/repository/inventory"
	manifestrepo "github.com/putrawijaya/fulfillment/repository/manifest"
	orderrepo "github.com/putrawijaya/fulfillment/repository/order"
	picklistrepo "github.com/putrawijaya/fulfillment/repository/picklist"
	txrepo "github.com/putrawijaya/fulfillment/repository/tx"
	"github.com/putrawijaya/fulfillment/thirdparty/rabbitmq"
	"github.com/putrawijaya/fulfillment/utils/errors"
	"github.com/putrawijaya/fulfillment/utils/logger"
	"go.uber.org/zap"
)

// FulfillmentApp applies one fulfillment event to one order. The order row
// is locked for the duration of the transaction, so events for the same
// order serialize; inventory rows are locked by the ledger itself.
type FulfillmentApp interface {
	ApplyEvent(ctx context.Context, orderID uint64, req *model.EventRequest) (*model.EventResult, error)
}

type fulfillmentAppImpl struct {
	config        *config.Config
	txRepo        txrepo.TxRepository
	orderRepo     orderrepo.OrderRepository
	inventoryRepo inventoryrepo.InventoryRepository
	picklistRepo  picklistrepo.PicklistRepository
	deliveryRepo  deliveryrepo.DeliveryRepository
	manifestRepo  manifestrepo.ManifestRepository
	publisher     *rabbitmq.Publisher
}

func NewFulfillmentApp(
	config *config.Config,
	txRepo txrepo.TxRepository,
	orderRepo orderrepo.OrderRepository,
	inventoryRepo inventoryrepo.InventoryRepository,
	picklistRepo picklistrepo.PicklistRepository,
	deliveryRepo deliveryrepo.DeliveryRepository,
	manifestRepo manifestrepo.ManifestRepository,
	publisher *rabbitmq.Publisher,
) FulfillmentApp {
	return &fulfillmentAppImpl{
		config:        config,
		txRepo:        txRepo,
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		picklistRepo:  picklistRepo,
		deliveryRepo:  deliveryRepo,
		manifestRepo:  manifestRepo,
		publisher:     publisher,
	}
}

func (s *fulfillmentAppImpl) ApplyEvent(ctx context.Context, orderID uint64, req *model.EventRequest) (*model.EventResult, error) {
	event, ok := constant.ParseEventType(req.Event)
	if !ok {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidRequest, "unknown event %q", req.Event)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ApplyEvent] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.GetOrderForUpdateTx(ctx, tx, orderID)
	if err != nil {
		if ce, ok := errors.FromError(err); ok {
			return nil, ce
		}
		logger.Error("[ApplyEvent] get order", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if !CanApply(order.Status, event) {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidTransition, "event %s not allowed from status %s", event, order.Status)
	}

	var next constant.OrderStatus
	switch event {
	case constant.EventAllocate:
		next, err = s.applyAllocate(ctx, tx, order)
	case constant.EventGeneratePicklist:
		next, err = s.applyGeneratePicklist(ctx, tx, order)
	case constant.EventStartPicking:
		next, err = s.applyStartPicking(ctx, tx, order)
	case constant.EventRecordPick:
		next, err = s.applyRecordPick(ctx, tx, order, req.Payload)
	case constant.EventCompletePicking:
		next, err = s.applyCompletePicking(ctx, tx, order)
	case constant.EventStartPacking:
		next = constant.OrderStatusPacking
	case constant.EventRecordPack:
		next, err = s.applyRecordPack(ctx, tx, order, req.Payload)
	case constant.EventCompletePacking:
		next, err = s.applyCompletePacking(ctx, tx, order)
	case constant.EventManifest:
		next, err = s.applyManifest(ctx, tx, order, req.Payload)
	case constant.EventShip:
		next, err = s.applyShip(ctx, tx, order)
	case constant.EventTrackingUpdate:
		next, err = s.applyTrackingUpdate(order, req.Payload)
	case constant.EventDeliver:
		next, err = s.applyDeliver(ctx, tx, order)
	case constant.EventCancel:
		next, err = s.applyCancel(ctx, tx, order)
	case constant.EventInitiateRTO:
		next, err = s.applyInitiateRTO(ctx, tx, order)
	case constant.EventCompleteRTO:
		next, err = s.applyCompleteRTO(ctx, tx, order)
	default:
		return nil, errors.SetCustomErrorf(constant.ErrInvalidRequest, "unknown event %q", req.Event)
	}
	if err != nil {
		if ce, ok := errors.FromError(err); ok {
			return nil, ce
		}
		logger.Error("[ApplyEvent] apply", zap.Uint64("order_id", orderID), zap.String("event", event.String()), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.orderRepo.UpdateOrderStatusTx(ctx, tx, orderID, next); err != nil {
		logger.Error("[ApplyEvent] update status", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ApplyEvent] commit tx", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if s.publisher != nil && next != order.Status {
		msg := rabbitmq.OrderStatusMessage{
			OrderID: order.ID,
			OrderNo: order.OrderNo,
			Status:  next.String(),
		}
		if err := s.publisher.PublishOrderStatus(msg); err != nil {
			logger.Error("[ApplyEvent] publish status", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
		}
	}

	return &model.EventResult{OrderID: order.ID, OrderNo: order.OrderNo, Status: next.String()}, nil
}

func (s *fulfillmentAppImpl) applyAllocate(ctx context.Context, tx *sqlx.Tx, order *model.OrderDetail) (constant.OrderStatus, error) {
	items, err := s.orderRepo.GetItemsTx(ctx, tx, order.ID)
	if err != nil {
		return 0, err
	}

	full := true
	var reservedTotal int64
	for _, item := range items {
		need := item.Ordered - item.Allocated
		if need <= 0 {
			continue
		}
		res, err := s.inventoryRepo.ReserveTx(ctx, tx, &model.ReserveRequest{
			OrderID:     order.ID,
			OrderItemID: item.ID,
			SKU:         item.SKU,
			Location:    order.Location,
			Quantity:    need,
			Policy:      s.config.Fulfillment.AllocationPolicy,
		})
		if err != nil {
			return 0, err
		}
		if res.Shortfall > 0 {
			full = false
		}
		qty := res.ReservedQty()
		reservedTotal += qty
		if qty > 0 {
			if err := s.orderRepo.AddAllocatedTx(ctx, tx, item.ID, qty); err != nil {
				return 0, err
			}
		}
	}

	if full {
		return constant.OrderStatusAllocated, nil
	}
	if reservedTotal == 0 {
		return 0, errors.SetCustomErrorf(constant.ErrInsufficientInventory, "no stock available at %s", order.Location)
	}
	return constant.OrderStatusPartiallyAllocated, nil
}

func (s *fulfillmentAppImpl) applyGeneratePicklist(ctx context.Context, tx *sqlx.Tx, order *model.OrderDetail) (constant.OrderStatus, error) {
	reservations, err := s.inventoryRepo.GetReservationsByOrderTx(ctx, tx, order.ID)
	if err != nil {
		return 0, err
	}
	if len(reservations) == 0 {
		return 0, errors.SetCustomErrorf(constant.ErrInvariantViolation, "order %d has no reservations to pick", order.ID)
	}

	lines := make([]model.InsertPicklistLine, 0, len(reservations))
	for _, rr := range reservations {
		lines = append(lines, model.InsertPicklistLine{
			OrderItemID: rr.OrderItemID,
			SKU:         rr.SKU,
			BinCode:     rr.BinCode,
			RequiredQty: rr.Quantity,
		})
	}
	_, err = s.picklistRepo.InsertPicklistTx(ctx, tx, &model.InsertPicklist{
		PicklistNo: "PL-" + shortRef(),
		OrderID:    order.ID,
		Lines:      lines,
	})
	if err != nil {
		return 0, err
	}
	return constant.OrderStatusPicklistGenerated, nil
}

func (s *fulfillmentAppImpl) applyStartPicking(ctx context.Context, tx *sqlx.Tx, order *model.OrderDetail) (constant.OrderStatus, error) {
	pl, err := s.picklistRepo.GetByOrderTx(ctx, tx, order.ID)
	if err != nil {
		return 0, err
	}
	if err := s.picklistRepo.UpdateStatusTx(ctx, tx, pl.ID, constant.PicklistStatusProcessing); err != nil {
		return 0, err
	}
	return constant.OrderStatusPicking, nil
}

func (s *fulfillmentAppImpl) applyRecordPick(ctx context.Context, tx *sqlx.Tx, order *model.OrderDetail, payload *model.EventPayload) (constant.OrderStatus, error) {
	if payload == nil || payload.ItemID == 0 || payload.Qty <= 0 {
		return 0, errors.SetCustomErrorf(constant.ErrInvalidRequest, "RECORD_PICK requires item_id and positive qty")
	}
	item, err := s.findItem(ctx, tx, order.ID, payload.ItemID)
	if err != nil {
		return 0, err
	}
	if payload.Qty > item.Allocated-item.Picked {
		return 0, errors.SetCustomErrorf(constant.ErrInvalidTransition, "pick of %d exceeds remaining allocation %d on item %d", payload.Qty, item.Allocated-item.Picked, item.ID)
	}

	picked, err := s.inventoryRepo.CommitPickTx(ctx, tx, item.ID, payload.Qty)
	if err != nil {
		return 0, err
	}
	pl, err := s.picklistRepo.GetByOrderTx(ctx, tx, order.ID)
	if err != nil {
		return 0, err
	}
	for _, slice := range picked {
		if err := s.picklistRepo.AddPickedQtyTx(ctx, tx, pl.ID, item.ID, slice.BinCode, slice.Quantity); err != nil {
			return 0, err
		}
	}
	if err := s.orderRepo.AddPickedTx(ctx, tx, item.ID, payload.Qty); err != nil {
		return 0, err
	}
	return constant.OrderStatusPicking, nil
}

func (s *fulfillmentAppImpl) applyCompletePicking(ctx context.Context, tx *sqlx.Tx, order *model.OrderDetail) (constant.OrderStatus, error) {
	items, err := s.orderRepo.GetItemsTx(ctx, tx, order.ID)
	if err != nil {
		return 0, err
	}
	for _, item := range items {
		if item.Picked != item.Allocated {
			return 0, errors.SetCustomErrorf(constant.ErrInvalidTransition, "item %d picked %d of %d allocated", item.ID, item.Picked, item.Allocated)
		}
	}
	pl, err := s.picklistRepo.GetByOrderTx(ctx, tx, order.ID)
	if err != nil {
		return 0, err
	}
	if err := s.picklistRepo.UpdateStatusTx(ctx, tx, pl.ID, constant.PicklistStatusCompleted); err != nil {
		return 0, err
	}
	return constant.OrderStatusPicked, nil
}

func (s *fulfillmentAppImpl) applyRecordPack(ctx context.Context, tx *sqlx.Tx, order *model.OrderDetail, payload *model.EventPayload) (constant.OrderStatus, error) {
	if payload == nil || payload.ItemID == 0 || payload.Qty <= 0 {
		return 0, errors.SetCustomErrorf(constant.ErrInvalidRequest, "RECORD_PACK requires item_id and positive qty")
	}
	item, err := s.findItem(ctx, tx, order.ID, payload.ItemID)
	if err != nil {
		return 0, err
	}
	if payload.Qty > item.Picked-item.Packed {
		return 0, errors.SetCustomErrorf(constant.ErrInvalidTransition, "pack of %d exceeds remaining picked %d on item %d", payload.Qty, item.Picked-item.Packed, item.ID)
	}
	if err := s.orderRepo.AddPackedTx(ctx, tx, item.ID, payload.Qty); err != nil {
		return 0, err
	}
	return constant.OrderStatusPacking, nil
}

func (s *fulfillmentAppImpl) applyCompletePacking(ctx context.Context, tx *sqlx.Tx, order *model.OrderDetail) (constant.OrderStatus, error) {
	items, err := s.orderRepo.GetItemsTx(ctx, tx, order.ID)
	if err != nil {
		return 0, err
	}
	for _, item := range items {
		if item.Packed != item.Picked {
			return 0, errors.SetCustomErrorf(constant.ErrInvalidTransition, "item %d packed %d of %d picked", item.ID, item.Packed, item.Picked)
		}
	}
	return constant.OrderStatusPacked, nil
}

func (s *fulfillmentAppImpl) applyManifest(ctx context.Context, tx *sqlx.Tx, order *model.OrderDetail, payload *model.EventPayload) (constant.OrderStatus, error) {
	if payload == nil || payload.Carrier == "" {
		return 0, errors.SetCustomErrorf(constant.ErrInvalidRequest, "MANIFEST requires carrier")
	}

	manifest, err := s.manifestRepo.GetOpenByCarrierTx(ctx, tx, payload.Carrier)
	if err != nil {
		return 0, err
	}
	var manifestID uint64
	if manifest != nil {
		manifestID = manifest.ID
	} else {
		manifestID, err = s.manifestRepo.InsertManifestTx(ctx, tx, &model.InsertManifest{
			ManifestNo: "MF-" + shortRef(),
			Carrier:    payload.Carrier,
		})
		if err != nil {
			return 0, err
		}
	}

	_, err = s.deliveryRepo.InsertDeliveryTx(ctx, tx, &model.InsertDelivery{
		OrderID:    order.ID,
		ManifestID: manifestID,
		Carrier:    payload.Carrier,
		AWB:        newAWB(),
		CODAmount:  payload.CODAmount,
		Status:     constant.DeliveryStatusPending,
	})
	if err != nil {
		return 0, err
	}
	return constant.OrderStatusManifested, nil
}

func (s *fulfillmentAppImpl) applyShip(ctx context.Context, tx *sqlx.Tx, order *model.OrderDetail) (constant.OrderStatus, error) {
	if err := s.orderRepo.MarkShippedTx(ctx, tx, order.ID); err != nil {
		return 0, err
	}
	if err := s.deliveryRepo.UpdateStatusByOrderTx(ctx, tx, order.ID, constant.DeliveryStatusShipped); err != nil {
		return 0, err
	}
	d, err := s.deliveryRepo.GetByOrderTx(ctx, tx, order.ID)
	if err != nil {
		return 0, err
	}
	if err := s.manifestRepo.CloseIfAllShippedTx(ctx, tx, d.ManifestID); err != nil {
		return 0, err
	}
	return constant.OrderStatusShipped, nil
}

func (s *fulfillmentAppImpl) applyTrackingUpdate(order *model.OrderDetail, payload *model.EventPayload) (constant.OrderStatus, error) {
	if payload == nil || payload.Stage == "" {
		return 0, errors.SetCustomErrorf(constant.ErrInvalidRequest, "TRACKING_UPDATE requires stage")
	}
	stage, ok := ParseTrackingStage(payload.Stage)
	if !ok {
		return 0, errors.SetCustomErrorf(constant.ErrInvalidRequest, "unknown tracking stage %q", payload.Stage)
	}
	return stage, nil
}

func (s *fulfillmentAppImpl) applyDeliver(ctx context.Context, tx *sqlx.Tx, order *model.OrderDetail) (constant.OrderStatus, error) {
	if err := s.orderRepo.MarkDeliveredTx(ctx, tx, order.ID); err != nil {
		return 0, err
	}
	if err := s.deliveryRepo.UpdateStatusByOrderTx(ctx, tx, order.ID, constant.DeliveryStatusDelivered); err != nil {
		return 0, err
	}
	return constant.OrderStatusDelivered, nil
}

// applyCancel returns every unit still reserved. The ledger is told how
// many units the counters say are outstanding, so a release that finds a
// different total (a replay, or drift) fails instead of silently no-opping.
func (s *fulfillmentAppImpl) applyCancel(ctx context.Context, tx *sqlx.Tx, order *model.OrderDetail) (constant.OrderStatus, error) {
	items, err := s.orderRepo.GetItemsTx(ctx, tx, order.ID)
	if err != nil {
		return 0, err
	}
	var outstanding int64
	for _, item := range items {
		outstanding += item.Allocated - item.Picked
	}
	if err := s.inventoryRepo.ReleaseByOrderTx(ctx, tx, order.ID, outstanding); err != nil {
		return 0, err
	}
	return constant.OrderStatusCancelled, nil
}

func (s *fulfillmentAppImpl) applyInitiateRTO(ctx context.Context, tx *sqlx.Tx, order *model.OrderDetail) (constant.OrderStatus, error) {
	if err := s.deliveryRepo.UpdateStatusByOrderTx(ctx, tx, order.ID, constant.DeliveryStatusRTO); err != nil {
		return 0, err
	}
	return constant.OrderStatusRTO, nil
}

// applyCompleteRTO receives the shipped units back into the returns bin at
// the fulfilling location.
func (s *fulfillmentAppImpl) applyCompleteRTO(ctx context.Context, tx *sqlx.Tx, order *model.OrderDetail) (constant.OrderStatus, error) {
	items, err := s.orderRepo.GetItemsTx(ctx, tx, order.ID)
	if err != nil {
		return 0, err
	}
	for _, item := range items {
		if item.Shipped == 0 {
			continue
		}
		err := s.inventoryRepo.ReceiveTx(ctx, tx, &model.ReceiveRequest{
			SKU:      item.SKU,
			Location: order.Location,
			Bin:      s.config.Fulfillment.ReturnsBinCode,
			Quantity: item.Shipped,
			Reason:   "RTO " + order.OrderNo,
		})
		if err != nil {
			return 0, err
		}
	}
	if err := s.deliveryRepo.UpdateStatusByOrderTx(ctx, tx, order.ID, constant.DeliveryStatusReturned); err != nil {
		return 0, err
	}
	return constant.OrderStatusReturned, nil
}

func (s *fulfillmentAppImpl) findItem(ctx context.Context, tx *sqlx.Tx, orderID, itemID uint64) (*model.OrderItem, error) {
	items, err := s.orderRepo.GetItemsTx(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == itemID {
			return &items[i], nil
		}
	}
	return nil, errors.SetCustomErrorf(constant.ErrNotFound, "item %d on order %d", itemID, orderID)
}

func shortRef() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

func newAWB() string {
	return "AWB" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
