package fulfillment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	appfulfillment "github.com/putrawijaya/fulfillment/application/fulfillment"
	"github.com/putrawijaya/fulfillment/cmd/config"
	"github.com/putrawijaya/fulfillment/constant"
	deliverymocks "github.com/putrawijaya/fulfillment/mocks/repository/delivery"
	inventorymocks "github.com/putrawijaya/fulfillment/mocks/repository/inventory"
	manifestmocks "github.com/putrawijaya/fulfillment/mocks/repository/manifest"
	ordermocks "github.com/putrawijaya/fulfillment/mocks/repository/order"
	picklistmocks "github.com/putrawijaya/fulfillment/mocks/repository/picklist"
	txmocks "github.com/putrawijaya/fulfillment/mocks/repository/tx"
	"github.com/putrawijaya/fulfillment/model"
	cerr "github.com/putrawijaya/fulfillment/utils/errors"
	"github.com/stretchr/testify/mock"
)

// Publisher is nil in all tests; ApplyEvent skips publishing when it is.

type fields struct {
	config        *config.Config
	txRepo        *txmocks.TxRepository
	orderRepo     *ordermocks.OrderRepository
	inventoryRepo *inventorymocks.InventoryRepository
	picklistRepo  *picklistmocks.PicklistRepository
	deliveryRepo  *deliverymocks.DeliveryRepository
	manifestRepo  *manifestmocks.ManifestRepository
}

func newFields(t *testing.T, cfg *config.Config) fields {
	if cfg == nil {
		cfg = &config.Config{
			Fulfillment: config.FulfillmentConfig{
				AllocationPolicy: constant.AllocationPolicyFull,
				ReturnsBinCode:   "RETURNS",
			},
		}
	}
	return fields{
		config:        cfg,
		txRepo:        txmocks.NewTxRepository(t),
		orderRepo:     ordermocks.NewOrderRepository(t),
		inventoryRepo: inventorymocks.NewInventoryRepository(t),
		picklistRepo:  picklistmocks.NewPicklistRepository(t),
		deliveryRepo:  deliverymocks.NewDeliveryRepository(t),
		manifestRepo:  manifestmocks.NewManifestRepository(t),
	}
}

func newApp(f fields) appfulfillment.FulfillmentApp {
	return appfulfillment.NewFulfillmentApp(f.config, f.txRepo, f.orderRepo, f.inventoryRepo, f.picklistRepo, f.deliveryRepo, f.manifestRepo, nil)
}

func orderAt(id uint64, status constant.OrderStatus) *model.OrderDetail {
	return &model.OrderDetail{
		ID:       id,
		OrderNo:  "ORD-TEST",
		Location: "JKT01",
		Status:   status,
		Version:  1,
	}
}

func TestFulfillmentApp_ApplyEvent_Allocate(t *testing.T) {
	tests := []struct {
		name       string
		policy     constant.AllocationPolicy
		mockCall   func(f fields, tx *sqlx.Tx)
		wantStatus string
		wantErr    bool
		errCode    constant.ErrorType
	}{
		{
			name:   "success: full allocation across two items",
			policy: constant.AllocationPolicyFull,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return([]model.OrderItem{
					{ID: 10, OrderID: 1, SKU: "SKU-A", Ordered: 5},
					{ID: 11, OrderID: 1, SKU: "SKU-B", Ordered: 3},
				}, nil).Once()
				f.inventoryRepo.On("ReserveTx", mock.Anything, tx, mock.MatchedBy(func(req *model.ReserveRequest) bool {
					return req.OrderItemID == 10 && req.SKU == "SKU-A" && req.Quantity == 5 && req.Location == "JKT01"
				})).Return(&model.ReservationResult{
					Reserved: []model.BinQty{{InventoryID: 100, BinCode: "A-01", Quantity: 5}},
				}, nil).Once()
				f.inventoryRepo.On("ReserveTx", mock.Anything, tx, mock.MatchedBy(func(req *model.ReserveRequest) bool {
					return req.OrderItemID == 11 && req.SKU == "SKU-B" && req.Quantity == 3
				})).Return(&model.ReservationResult{
					Reserved: []model.BinQty{{InventoryID: 101, BinCode: "A-02", Quantity: 2}, {InventoryID: 102, BinCode: "B-01", Quantity: 1}},
				}, nil).Once()
				f.orderRepo.On("AddAllocatedTx", mock.Anything, tx, uint64(10), int64(5)).Return(nil).Once()
				f.orderRepo.On("AddAllocatedTx", mock.Anything, tx, uint64(11), int64(3)).Return(nil).Once()
				f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusAllocated).Return(nil).Once()
			},
			wantStatus: "ALLOCATED",
		},
		{
			name:   "success: partial allocation under partial policy",
			policy: constant.AllocationPolicyPartial,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return([]model.OrderItem{
					{ID: 10, OrderID: 1, SKU: "SKU-A", Ordered: 5},
				}, nil).Once()
				f.inventoryRepo.On("ReserveTx", mock.Anything, tx, mock.Anything).Return(&model.ReservationResult{
					Reserved:  []model.BinQty{{InventoryID: 100, BinCode: "A-01", Quantity: 3}},
					Shortfall: 2,
				}, nil).Once()
				f.orderRepo.On("AddAllocatedTx", mock.Anything, tx, uint64(10), int64(3)).Return(nil).Once()
				f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusPartiallyAllocated).Return(nil).Once()
			},
			wantStatus: "PARTIALLY_ALLOCATED",
		},
		{
			name:   "error: full policy rejects shortfall",
			policy: constant.AllocationPolicyFull,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return([]model.OrderItem{
					{ID: 10, OrderID: 1, SKU: "SKU-A", Ordered: 5},
				}, nil).Once()
				f.inventoryRepo.On("ReserveTx", mock.Anything, tx, mock.Anything).
					Return(nil, cerr.SetCustomErrorf(constant.ErrInsufficientInventory, "sku SKU-A at JKT01 short by 2")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientInventory,
		},
		{
			name:   "error: nothing reservable under partial policy",
			policy: constant.AllocationPolicyPartial,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return([]model.OrderItem{
					{ID: 10, OrderID: 1, SKU: "SKU-A", Ordered: 5},
				}, nil).Once()
				f.inventoryRepo.On("ReserveTx", mock.Anything, tx, mock.Anything).Return(&model.ReservationResult{
					Shortfall: 5,
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientInventory,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Fulfillment: config.FulfillmentConfig{AllocationPolicy: tt.policy, ReturnsBinCode: "RETURNS"},
			}
			f := newFields(t, cfg)
			tx := &sqlx.Tx{}
			f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
			f.orderRepo.On("GetOrderForUpdateTx", mock.Anything, tx, uint64(1)).
				Return(orderAt(1, constant.OrderStatusCreated), nil).Once()
			tt.mockCall(f, tx)

			got, err := newApp(f).ApplyEvent(context.Background(), 1, &model.EventRequest{Event: "ALLOCATE"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEvent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if got.Status != tt.wantStatus {
				t.Fatalf("ApplyEvent() status = %s, want %s", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestFulfillmentApp_ApplyEvent_InvalidTransition(t *testing.T) {
	tests := []struct {
		name   string
		status constant.OrderStatus
		event  string
	}{
		{name: "SHIP before manifest", status: constant.OrderStatusPacked, event: "SHIP"},
		{name: "ALLOCATE twice", status: constant.OrderStatusAllocated, event: "ALLOCATE"},
		{name: "CANCEL after picking started", status: constant.OrderStatusPicking, event: "CANCEL"},
		{name: "any event on delivered order", status: constant.OrderStatusDelivered, event: "CANCEL"},
		{name: "any event on cancelled order", status: constant.OrderStatusCancelled, event: "ALLOCATE"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t, nil)
			tx := &sqlx.Tx{}
			f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
			f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			f.orderRepo.On("GetOrderForUpdateTx", mock.Anything, tx, uint64(1)).
				Return(orderAt(1, tt.status), nil).Once()

			_, err := newApp(f).ApplyEvent(context.Background(), 1, &model.EventRequest{Event: tt.event})
			if err == nil {
				t.Fatal("ApplyEvent() expected error, got nil")
			}
			var ce cerr.CustomError
			if !errors.As(err, &ce) {
				t.Fatalf("error type = %T, want CustomError", err)
			}
			if ce.ErrorCode() != constant.ErrorTypeCode[constant.ErrInvalidTransition] {
				t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[constant.ErrInvalidTransition])
			}
		})
	}
}

func TestFulfillmentApp_ApplyEvent_UnknownEvent(t *testing.T) {
	f := newFields(t, nil)

	_, err := newApp(f).ApplyEvent(context.Background(), 1, &model.EventRequest{Event: "TELEPORT"})
	if err == nil {
		t.Fatal("ApplyEvent() expected error, got nil")
	}
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[constant.ErrInvalidRequest] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[constant.ErrInvalidRequest])
	}
}

func TestFulfillmentApp_ApplyEvent_GeneratePicklist(t *testing.T) {
	tests := []struct {
		name     string
		mockCall func(f fields, tx *sqlx.Tx)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: lines built from reservations",
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.inventoryRepo.On("GetReservationsByOrderTx", mock.Anything, tx, uint64(1)).Return([]model.Reservation{
					{ID: 1, OrderID: 1, OrderItemID: 10, InventoryID: 100, SKU: "SKU-A", BinCode: "A-01", Quantity: 3},
					{ID: 2, OrderID: 1, OrderItemID: 10, InventoryID: 101, SKU: "SKU-A", BinCode: "B-02", Quantity: 2},
				}, nil).Once()
				f.picklistRepo.On("InsertPicklistTx", mock.Anything, tx, mock.MatchedBy(func(req *model.InsertPicklist) bool {
					return req.OrderID == 1 && len(req.Lines) == 2 &&
						req.Lines[0].BinCode == "A-01" && req.Lines[0].RequiredQty == 3 &&
						req.Lines[1].BinCode == "B-02" && req.Lines[1].RequiredQty == 2
				})).Return(uint64(7), nil).Once()
				f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusPicklistGenerated).Return(nil).Once()
			},
		},
		{
			name: "error: no reservations on order",
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.inventoryRepo.On("GetReservationsByOrderTx", mock.Anything, tx, uint64(1)).Return([]model.Reservation{}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvariantViolation,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t, nil)
			tx := &sqlx.Tx{}
			f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
			f.orderRepo.On("GetOrderForUpdateTx", mock.Anything, tx, uint64(1)).
				Return(orderAt(1, constant.OrderStatusAllocated), nil).Once()
			tt.mockCall(f, tx)

			got, err := newApp(f).ApplyEvent(context.Background(), 1, &model.EventRequest{Event: "GENERATE_PICKLIST"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEvent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if got.Status != "PICKLIST_GENERATED" {
				t.Fatalf("ApplyEvent() status = %s, want PICKLIST_GENERATED", got.Status)
			}
		})
	}
}

func TestFulfillmentApp_ApplyEvent_RecordPick(t *testing.T) {
	items := []model.OrderItem{
		{ID: 10, OrderID: 1, SKU: "SKU-A", Ordered: 5, Allocated: 5, Picked: 2},
	}
	tests := []struct {
		name     string
		payload  *model.EventPayload
		mockCall func(f fields, tx *sqlx.Tx)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:    "success: pick within remaining allocation",
			payload: &model.EventPayload{ItemID: 10, Qty: 3},
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return(items, nil).Once()
				f.inventoryRepo.On("CommitPickTx", mock.Anything, tx, uint64(10), int64(3)).Return([]model.BinQty{
					{InventoryID: 100, BinCode: "A-01", Quantity: 2},
					{InventoryID: 101, BinCode: "B-02", Quantity: 1},
				}, nil).Once()
				f.picklistRepo.On("GetByOrderTx", mock.Anything, tx, uint64(1)).Return(&model.Picklist{ID: 7, OrderID: 1}, nil).Once()
				f.picklistRepo.On("AddPickedQtyTx", mock.Anything, tx, uint64(7), uint64(10), "A-01", int64(2)).Return(nil).Once()
				f.picklistRepo.On("AddPickedQtyTx", mock.Anything, tx, uint64(7), uint64(10), "B-02", int64(1)).Return(nil).Once()
				f.orderRepo.On("AddPickedTx", mock.Anything, tx, uint64(10), int64(3)).Return(nil).Once()
				f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusPicking).Return(nil).Once()
			},
		},
		{
			name:    "error: pick exceeds remaining allocation",
			payload: &model.EventPayload{ItemID: 10, Qty: 4},
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return(items, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidTransition,
		},
		{
			name:    "error: missing payload",
			payload: nil,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name:    "error: unknown item",
			payload: &model.EventPayload{ItemID: 99, Qty: 1},
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return(items, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t, nil)
			tx := &sqlx.Tx{}
			f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
			f.orderRepo.On("GetOrderForUpdateTx", mock.Anything, tx, uint64(1)).
				Return(orderAt(1, constant.OrderStatusPicking), nil).Once()
			tt.mockCall(f, tx)

			got, err := newApp(f).ApplyEvent(context.Background(), 1, &model.EventRequest{Event: "RECORD_PICK", Payload: tt.payload})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEvent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if got.Status != "PICKING" {
				t.Fatalf("ApplyEvent() status = %s, want PICKING", got.Status)
			}
		})
	}
}

func TestFulfillmentApp_ApplyEvent_CompletePicking(t *testing.T) {
	tests := []struct {
		name     string
		items    []model.OrderItem
		mockCall func(f fields, tx *sqlx.Tx)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: all allocated units picked",
			items: []model.OrderItem{
				{ID: 10, OrderID: 1, SKU: "SKU-A", Ordered: 5, Allocated: 5, Picked: 5},
			},
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.picklistRepo.On("GetByOrderTx", mock.Anything, tx, uint64(1)).Return(&model.Picklist{ID: 7, OrderID: 1}, nil).Once()
				f.picklistRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(7), constant.PicklistStatusCompleted).Return(nil).Once()
				f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusPicked).Return(nil).Once()
			},
		},
		{
			name: "error: item still short of its allocation",
			items: []model.OrderItem{
				{ID: 10, OrderID: 1, SKU: "SKU-A", Ordered: 5, Allocated: 5, Picked: 3},
			},
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidTransition,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t, nil)
			tx := &sqlx.Tx{}
			f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
			f.orderRepo.On("GetOrderForUpdateTx", mock.Anything, tx, uint64(1)).
				Return(orderAt(1, constant.OrderStatusPicking), nil).Once()
			f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return(tt.items, nil).Once()
			tt.mockCall(f, tx)

			got, err := newApp(f).ApplyEvent(context.Background(), 1, &model.EventRequest{Event: "COMPLETE_PICKING"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEvent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if got.Status != "PICKED" {
				t.Fatalf("ApplyEvent() status = %s, want PICKED", got.Status)
			}
		})
	}
}

func TestFulfillmentApp_ApplyEvent_RecordPack(t *testing.T) {
	items := []model.OrderItem{
		{ID: 10, OrderID: 1, SKU: "SKU-A", Ordered: 5, Allocated: 5, Picked: 5, Packed: 2},
	}
	tests := []struct {
		name     string
		payload  *model.EventPayload
		mockCall func(f fields, tx *sqlx.Tx)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:    "success: pack within remaining picked",
			payload: &model.EventPayload{ItemID: 10, Qty: 3},
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return(items, nil).Once()
				f.orderRepo.On("AddPackedTx", mock.Anything, tx, uint64(10), int64(3)).Return(nil).Once()
				f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusPacking).Return(nil).Once()
			},
		},
		{
			name:    "error: pack exceeds remaining picked",
			payload: &model.EventPayload{ItemID: 10, Qty: 4},
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return(items, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidTransition,
		},
		{
			name:    "error: missing payload",
			payload: nil,
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t, nil)
			tx := &sqlx.Tx{}
			f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
			f.orderRepo.On("GetOrderForUpdateTx", mock.Anything, tx, uint64(1)).
				Return(orderAt(1, constant.OrderStatusPacking), nil).Once()
			tt.mockCall(f, tx)

			got, err := newApp(f).ApplyEvent(context.Background(), 1, &model.EventRequest{Event: "RECORD_PACK", Payload: tt.payload})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEvent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if got.Status != "PACKING" {
				t.Fatalf("ApplyEvent() status = %s, want PACKING", got.Status)
			}
		})
	}
}

func TestFulfillmentApp_ApplyEvent_CompletePacking(t *testing.T) {
	tests := []struct {
		name    string
		items   []model.OrderItem
		wantErr bool
		errCode constant.ErrorType
	}{
		{
			name: "success: every picked unit packed",
			items: []model.OrderItem{
				{ID: 10, OrderID: 1, SKU: "SKU-A", Ordered: 5, Allocated: 5, Picked: 5, Packed: 5},
			},
		},
		{
			name: "error: item still short of its picked count",
			items: []model.OrderItem{
				{ID: 10, OrderID: 1, SKU: "SKU-A", Ordered: 5, Allocated: 5, Picked: 5, Packed: 3},
			},
			wantErr: true,
			errCode: constant.ErrInvalidTransition,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t, nil)
			tx := &sqlx.Tx{}
			f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
			f.orderRepo.On("GetOrderForUpdateTx", mock.Anything, tx, uint64(1)).
				Return(orderAt(1, constant.OrderStatusPacking), nil).Once()
			f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return(tt.items, nil).Once()
			if tt.wantErr {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			} else {
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusPacked).Return(nil).Once()
			}

			got, err := newApp(f).ApplyEvent(context.Background(), 1, &model.EventRequest{Event: "COMPLETE_PACKING"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEvent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if got.Status != "PACKED" {
				t.Fatalf("ApplyEvent() status = %s, want PACKED", got.Status)
			}
		})
	}
}

func TestFulfillmentApp_ApplyEvent_Manifest(t *testing.T) {
	tests := []struct {
		name     string
		payload  *model.EventPayload
		mockCall func(f fields, tx *sqlx.Tx)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:    "success: joins existing open manifest for carrier",
			payload: &model.EventPayload{Carrier: "JNE"},
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.manifestRepo.On("GetOpenByCarrierTx", mock.Anything, tx, "JNE").Return(&model.Manifest{
					ID: 3, ManifestNo: "MF-EXISTING", Carrier: "JNE", Status: constant.ManifestStatusOpen,
				}, nil).Once()
				f.deliveryRepo.On("InsertDeliveryTx", mock.Anything, tx, mock.MatchedBy(func(req *model.InsertDelivery) bool {
					return req.OrderID == 1 && req.ManifestID == 3 && req.Carrier == "JNE" &&
						req.AWB != "" && req.Status == constant.DeliveryStatusPending
				})).Return(uint64(5), nil).Once()
				f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusManifested).Return(nil).Once()
			},
		},
		{
			name:    "success: opens new manifest when none open",
			payload: &model.EventPayload{Carrier: "SICEPAT"},
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.manifestRepo.On("GetOpenByCarrierTx", mock.Anything, tx, "SICEPAT").Return(nil, nil).Once()
				f.manifestRepo.On("InsertManifestTx", mock.Anything, tx, mock.MatchedBy(func(req *model.InsertManifest) bool {
					return req.Carrier == "SICEPAT" && req.ManifestNo != ""
				})).Return(uint64(4), nil).Once()
				f.deliveryRepo.On("InsertDeliveryTx", mock.Anything, tx, mock.MatchedBy(func(req *model.InsertDelivery) bool {
					return req.ManifestID == 4
				})).Return(uint64(5), nil).Once()
				f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusManifested).Return(nil).Once()
			},
		},
		{
			name:    "error: carrier missing",
			payload: &model.EventPayload{},
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t, nil)
			tx := &sqlx.Tx{}
			f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
			f.orderRepo.On("GetOrderForUpdateTx", mock.Anything, tx, uint64(1)).
				Return(orderAt(1, constant.OrderStatusPacked), nil).Once()
			tt.mockCall(f, tx)

			got, err := newApp(f).ApplyEvent(context.Background(), 1, &model.EventRequest{Event: "MANIFEST", Payload: tt.payload})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEvent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if got.Status != "MANIFESTED" {
				t.Fatalf("ApplyEvent() status = %s, want MANIFESTED", got.Status)
			}
		})
	}
}

func TestFulfillmentApp_ApplyEvent_Ship(t *testing.T) {
	f := newFields(t, nil)
	tx := &sqlx.Tx{}
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	f.txRepo.On("CommitTx", tx).Return(nil).Once()
	f.orderRepo.On("GetOrderForUpdateTx", mock.Anything, tx, uint64(1)).
		Return(orderAt(1, constant.OrderStatusManifested), nil).Once()
	f.orderRepo.On("MarkShippedTx", mock.Anything, tx, uint64(1)).Return(nil).Once()
	f.deliveryRepo.On("UpdateStatusByOrderTx", mock.Anything, tx, uint64(1), constant.DeliveryStatusShipped).Return(nil).Once()
	f.deliveryRepo.On("GetByOrderTx", mock.Anything, tx, uint64(1)).Return(&model.Delivery{
		ID: 5, OrderID: 1, ManifestID: 3, Carrier: "JNE", AWB: "AWB123",
	}, nil).Once()
	f.manifestRepo.On("CloseIfAllShippedTx", mock.Anything, tx, uint64(3)).Return(nil).Once()
	f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusShipped).Return(nil).Once()

	got, err := newApp(f).ApplyEvent(context.Background(), 1, &model.EventRequest{Event: "SHIP"})
	if err != nil {
		t.Fatalf("ApplyEvent() error = %v", err)
	}
	if got.Status != "SHIPPED" {
		t.Fatalf("ApplyEvent() status = %s, want SHIPPED", got.Status)
	}
}

func TestFulfillmentApp_ApplyEvent_TrackingUpdate(t *testing.T) {
	tests := []struct {
		name       string
		status     constant.OrderStatus
		payload    *model.EventPayload
		wantStatus string
		wantErr    bool
		errCode    constant.ErrorType
	}{
		{
			name:       "success: shipped moves to in transit",
			status:     constant.OrderStatusShipped,
			payload:    &model.EventPayload{Stage: "IN_TRANSIT"},
			wantStatus: "IN_TRANSIT",
		},
		{
			name:       "success: in transit moves to out for delivery",
			status:     constant.OrderStatusInTransit,
			payload:    &model.EventPayload{Stage: "OUT_FOR_DELIVERY"},
			wantStatus: "OUT_FOR_DELIVERY",
		},
		{
			name:    "error: unknown stage",
			status:  constant.OrderStatusShipped,
			payload: &model.EventPayload{Stage: "ON_THE_MOON"},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name:    "error: missing stage",
			status:  constant.OrderStatusShipped,
			payload: nil,
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t, nil)
			tx := &sqlx.Tx{}
			f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
			f.orderRepo.On("GetOrderForUpdateTx", mock.Anything, tx, uint64(1)).
				Return(orderAt(1, tt.status), nil).Once()
			if tt.wantErr {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			} else {
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(1), mock.Anything).Return(nil).Once()
			}

			got, err := newApp(f).ApplyEvent(context.Background(), 1, &model.EventRequest{Event: "TRACKING_UPDATE", Payload: tt.payload})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEvent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if got.Status != tt.wantStatus {
				t.Fatalf("ApplyEvent() status = %s, want %s", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestFulfillmentApp_ApplyEvent_Cancel(t *testing.T) {
	items := []model.OrderItem{
		{ID: 10, OrderID: 1, SKU: "SKU-A", Ordered: 5, Allocated: 5},
		{ID: 11, OrderID: 1, SKU: "SKU-B", Ordered: 3, Allocated: 2},
	}
	tests := []struct {
		name     string
		mockCall func(f fields, tx *sqlx.Tx)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: releases the outstanding allocation",
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return(items, nil).Once()
				f.inventoryRepo.On("ReleaseByOrderTx", mock.Anything, tx, uint64(1), int64(7)).Return(nil).Once()
				f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusCancelled).Return(nil).Once()
			},
		},
		{
			name: "error: ledger total diverged from counters",
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return(items, nil).Once()
				f.inventoryRepo.On("ReleaseByOrderTx", mock.Anything, tx, uint64(1), int64(7)).
					Return(cerr.SetCustomErrorf(constant.ErrInvariantViolation, "order 1 expects 7 reserved units but ledger holds 0")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvariantViolation,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t, nil)
			tx := &sqlx.Tx{}
			f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
			f.orderRepo.On("GetOrderForUpdateTx", mock.Anything, tx, uint64(1)).
				Return(orderAt(1, constant.OrderStatusAllocated), nil).Once()
			tt.mockCall(f, tx)

			got, err := newApp(f).ApplyEvent(context.Background(), 1, &model.EventRequest{Event: "CANCEL"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEvent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if got.Status != "CANCELLED" {
				t.Fatalf("ApplyEvent() status = %s, want CANCELLED", got.Status)
			}
		})
	}
}

func TestFulfillmentApp_ApplyEvent_CompleteRTO(t *testing.T) {
	f := newFields(t, nil)
	tx := &sqlx.Tx{}
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	f.txRepo.On("CommitTx", tx).Return(nil).Once()
	f.orderRepo.On("GetOrderForUpdateTx", mock.Anything, tx, uint64(1)).
		Return(orderAt(1, constant.OrderStatusRTO), nil).Once()
	f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return([]model.OrderItem{
		{ID: 10, OrderID: 1, SKU: "SKU-A", Ordered: 5, Allocated: 5, Picked: 5, Packed: 5, Shipped: 5},
		{ID: 11, OrderID: 1, SKU: "SKU-B", Ordered: 2, Allocated: 0, Picked: 0, Packed: 0, Shipped: 0},
	}, nil).Once()
	f.inventoryRepo.On("ReceiveTx", mock.Anything, tx, mock.MatchedBy(func(req *model.ReceiveRequest) bool {
		return req.SKU == "SKU-A" && req.Location == "JKT01" && req.Bin == "RETURNS" && req.Quantity == 5
	})).Return(nil).Once()
	f.deliveryRepo.On("UpdateStatusByOrderTx", mock.Anything, tx, uint64(1), constant.DeliveryStatusReturned).Return(nil).Once()
	f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusReturned).Return(nil).Once()

	got, err := newApp(f).ApplyEvent(context.Background(), 1, &model.EventRequest{Event: "COMPLETE_RTO"})
	if err != nil {
		t.Fatalf("ApplyEvent() error = %v", err)
	}
	if got.Status != "RETURNED" {
		t.Fatalf("ApplyEvent() status = %s, want RETURNED", got.Status)
	}
}

func TestFulfillmentApp_ApplyEvent_OrderNotFound(t *testing.T) {
	f := newFields(t, nil)
	tx := &sqlx.Tx{}
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	f.txRepo.On("RollbackTx", tx).Return(nil).Once()
	f.orderRepo.On("GetOrderForUpdateTx", mock.Anything, tx, uint64(999)).
		Return(nil, cerr.SetCustomError(constant.ErrNotFound)).Once()

	_, err := newApp(f).ApplyEvent(context.Background(), 999, &model.EventRequest{Event: "ALLOCATE"})
	if err == nil {
		t.Fatal("ApplyEvent() expected error, got nil")
	}
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[constant.ErrNotFound] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[constant.ErrNotFound])
	}
}

func TestFulfillmentApp_ApplyEvent_BeginTxError(t *testing.T) {
	f := newFields(t, nil)
	f.txRepo.On("BeginTx", mock.Anything).Return(nil, errors.New("tx error")).Once()

	_, err := newApp(f).ApplyEvent(context.Background(), 1, &model.EventRequest{Event: "ALLOCATE"})
	if err == nil {
		t.Fatal("ApplyEvent() expected error, got nil")
	}
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[constant.ErrInternal] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[constant.ErrInternal])
	}
}
