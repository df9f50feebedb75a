package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	fulfillmentapp "github.com/putrawijaya/fulfillment/application/fulfillment"
	inventoryapp "github.com/putrawijaya/fulfillment/application/inventory"
	orderapp "github.com/putrawijaya/fulfillment/application/order"
	"github.com/putrawijaya/fulfillment/cmd/config"
	"github.com/putrawijaya/fulfillment/constant"
	"github.com/putrawijaya/fulfillment/model"
	redisrepo "github.com/putrawijaya/fulfillment/repository/redis"
	"github.com/putrawijaya/fulfillment/utils/errors"
	validatorx "github.com/putrawijaya/fulfillment/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	Config         *config.Config
	OrderApp       orderapp.OrderApp
	FulfillmentApp fulfillmentapp.FulfillmentApp
	InventoryApp   inventoryapp.InventoryApp
	RedisRepo      redisrepo.Repository
}

func NewTransport(cfg *config.Config, orderApp orderapp.OrderApp, fulfillmentApp fulfillmentapp.FulfillmentApp, inventoryApp inventoryapp.InventoryApp, redisRepo redisrepo.Repository) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		Config:         cfg,
		OrderApp:       orderApp,
		FulfillmentApp: fulfillmentApp,
		InventoryApp:   inventoryApp,
		RedisRepo:      redisRepo,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Staff routes
	mux.HandleFunc("/orders", rh.CreateOrder).Methods(http.MethodPost)
	mux.HandleFunc("/orders/{id}", rh.GetOrder).Methods(http.MethodGet)
	mux.HandleFunc("/orders/{id}/events", rh.ApplyEvent).Methods(http.MethodPost)
	mux.HandleFunc("/inventory/{sku}/{location}", rh.GetAvailability).Methods(http.MethodGet)

	// Internal service routes (tracking consumer, warehouse tooling)
	internal := mux.PathPrefix("/internal").Subrouter()
	internal.Use(InternalMiddleware(cfg.Auth.InternalAPIKeyHash))
	internal.HandleFunc("/orders/{id}/events", rh.ApplyEvent).Methods(http.MethodPost)
	internal.HandleFunc("/stock/receive", rh.ReceiveStock).Methods(http.MethodPost)
	internal.HandleFunc("/stock/adjust", rh.AdjustStock).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(cfg.Auth.JWTSecret))

	return mux
}

// CreateOrder handler
// @Summary Create order
// @Description Create a new order in CREATED status
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body model.OrderRequest true "Order Request"
// @Success 200 {object} model.OrderResponse
// @Failure 400 {object} errors.CustomError
// @Router /orders [post]
func (s *RestHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.CreateOrder(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetOrder handler
// @Summary Get order
// @Description Order header, items and derived per-item stage
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} model.OrderDetailResponse
// @Failure 404 {object} errors.CustomError
// @Router /orders/{id} [get]
func (s *RestHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.GetOrder(ctx, orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ApplyEvent handler
// @Summary Apply fulfillment event
// @Description Apply one lifecycle event to an order; 409 on invalid transition
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body model.EventRequest true "Event Request"
// @Success 200 {object} model.EventResult
// @Failure 409 {object} errors.CustomError
// @Router /orders/{id}/events [post]
func (s *RestHandler) ApplyEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	idemKey := r.Header.Get("Idempotency-Key")
	if idemKey != "" {
		fresh, err := s.RedisRepo.ReserveIdempotencyKey(ctx, idemKey, s.Config.Fulfillment.IdempotencyKeyTTL)
		if err != nil {
			writeError(w, errors.SetCustomError(constant.ErrInternal))
			return
		}
		if !fresh {
			writeError(w, errors.SetCustomError(constant.ErrDuplicateEvent))
			return
		}
	}

	res, err := s.FulfillmentApp.ApplyEvent(ctx, orderID, &req)
	if err != nil {
		if idemKey != "" {
			// Free the key so the caller may retry the failed event.
			_ = s.RedisRepo.ReleaseIdempotencyKey(ctx, idemKey)
		}
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetAvailability handler
// @Summary Inventory availability
// @Description On-hand, reserved and available quantity for a SKU at a location
// @Tags Inventory
// @Produce json
// @Param sku path string true "SKU"
// @Param location path string true "Location code"
// @Success 200 {object} model.Availability
// @Failure 404 {object} errors.CustomError
// @Router /inventory/{sku}/{location} [get]
func (s *RestHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vars := mux.Vars(r)
	sku := vars["sku"]
	location := vars["location"]
	if sku == "" || location == "" {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.InventoryApp.GetAvailability(ctx, sku, location)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ReceiveStock handler
// @Summary Receive stock
// @Description Receive inbound stock into a bin
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body model.ReceiveStockRequest true "Receive Request"
// @Success 200 {object} response
// @Failure 400 {object} errors.CustomError
// @Router /internal/stock/receive [post]
func (s *RestHandler) ReceiveStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ReceiveStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.InventoryApp.ReceiveStock(ctx, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// AdjustStock handler
// @Summary Adjust stock
// @Description Cycle-count correction of on-hand quantity; rejected below reserved
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body model.AdjustStockRequest true "Adjust Request"
// @Success 200 {object} response
// @Failure 400 {object} errors.CustomError
// @Router /internal/stock/adjust [post]
func (s *RestHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.InventoryApp.AdjustStock(ctx, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func pathID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
}
