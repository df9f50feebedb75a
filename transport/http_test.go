package transport_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	fulfillmentapp "github.com/putrawijaya/fulfillment/application/fulfillment"
	"github.com/putrawijaya/fulfillment/cmd/config"
	"github.com/putrawijaya/fulfillment/constant"
	deliverymocks "github.com/putrawijaya/fulfillment/mocks/repository/delivery"
	inventorymocks "github.com/putrawijaya/fulfillment/mocks/repository/inventory"
	manifestmocks "github.com/putrawijaya/fulfillment/mocks/repository/manifest"
	ordermocks "github.com/putrawijaya/fulfillment/mocks/repository/order"
	picklistmocks "github.com/putrawijaya/fulfillment/mocks/repository/picklist"
	redismocks "github.com/putrawijaya/fulfillment/mocks/repository/redis"
	txmocks "github.com/putrawijaya/fulfillment/mocks/repository/tx"
	"github.com/putrawijaya/fulfillment/transport"
	"github.com/stretchr/testify/mock"
)

func newEventHandler(t *testing.T, txRepo *txmocks.TxRepository, redisRepo *redismocks.Repository) *transport.RestHandler {
	cfg := &config.Config{
		Fulfillment: config.FulfillmentConfig{
			AllocationPolicy:  constant.AllocationPolicyFull,
			IdempotencyKeyTTL: 24 * time.Hour,
		},
	}
	app := fulfillmentapp.NewFulfillmentApp(
		cfg,
		txRepo,
		ordermocks.NewOrderRepository(t),
		inventorymocks.NewInventoryRepository(t),
		picklistmocks.NewPicklistRepository(t),
		deliverymocks.NewDeliveryRepository(t),
		manifestmocks.NewManifestRepository(t),
		nil,
	)
	return &transport.RestHandler{
		Config:         cfg,
		FulfillmentApp: app,
		RedisRepo:      redisRepo,
	}
}

func applyEventRequest(body string, idemKey string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/orders/1/events", strings.NewReader(body))
	if idemKey != "" {
		r.Header.Set("Idempotency-Key", idemKey)
	}
	return mux.SetURLVars(r, map[string]string{"id": "1"})
}

func TestRestHandler_ApplyEvent_DuplicateIdempotencyKey(t *testing.T) {
	txRepo := txmocks.NewTxRepository(t)
	redisRepo := redismocks.NewRepository(t)
	redisRepo.On("ReserveIdempotencyKey", mock.Anything, "evt-1", 24*time.Hour).Return(false, nil).Once()

	h := newEventHandler(t, txRepo, redisRepo)
	w := httptest.NewRecorder()

	// txRepo has no expectations; a replayed key must never reach the engine.
	h.ApplyEvent(w, applyEventRequest(`{"event":"SHIP"}`, "evt-1"))

	if w.Code != http.StatusConflict {
		t.Fatalf("ApplyEvent status = %d, want %d", w.Code, http.StatusConflict)
	}
	wantCode := constant.ErrorTypeCode[constant.ErrDuplicateEvent]
	if !strings.Contains(w.Body.String(), `"code":"`+wantCode+`"`) {
		t.Fatalf("ApplyEvent body = %s, want code %q", w.Body.String(), wantCode)
	}
}

func TestRestHandler_ApplyEvent_FailureReleasesIdempotencyKey(t *testing.T) {
	txRepo := txmocks.NewTxRepository(t)
	txRepo.On("BeginTx", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	redisRepo := redismocks.NewRepository(t)
	redisRepo.On("ReserveIdempotencyKey", mock.Anything, "evt-2", 24*time.Hour).Return(true, nil).Once()
	redisRepo.On("ReleaseIdempotencyKey", mock.Anything, "evt-2").Return(nil).Once()

	h := newEventHandler(t, txRepo, redisRepo)
	w := httptest.NewRecorder()

	h.ApplyEvent(w, applyEventRequest(`{"event":"SHIP"}`, "evt-2"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("ApplyEvent status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	wantCode := constant.ErrorTypeCode[constant.ErrInternal]
	if !strings.Contains(w.Body.String(), `"code":"`+wantCode+`"`) {
		t.Fatalf("ApplyEvent body = %s, want code %q", w.Body.String(), wantCode)
	}
}
