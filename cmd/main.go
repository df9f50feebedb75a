package main

import (
	"context"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	fulfillmentapp "github.com/putrawijaya/fulfillment/application/fulfillment"
	inventoryapp "github.com/putrawijaya/fulfillment/application/inventory"
	orderapp "github.com/putrawijaya/fulfillment/application/order"
	"github.com/putrawijaya/fulfillment/cmd/config"
	redisclient "github.com/putrawijaya/fulfillment/cmd/redis"
	_ "github.com/putrawijaya/fulfillment/docs"
	deliveryRepo "github.com/putrawijaya/fulfillment/repository/delivery"
	inventoryRepo "github.com/putrawijaya/fulfillment/repository/inventory"
	manifestRepo "github.com/putrawijaya/fulfillment/repository/manifest"
	orderRepo "github.com/putrawijaya/fulfillment/repository/order"
	picklistRepo "github.com/putrawijaya/fulfillment/repository/picklist"
	redisRepo "github.com/putrawijaya/fulfillment/repository/redis"
	txRepo "github.com/putrawijaya/fulfillment/repository/tx"
	"github.com/putrawijaya/fulfillment/thirdparty/rabbitmq"
	"github.com/putrawijaya/fulfillment/transport"
	"github.com/putrawijaya/fulfillment/utils/logger"
	"go.uber.org/zap"
)

// @title FULFILLMENT API
// @version 1.0
// @description Order fulfillment engine: inventory ledger, order aggregate, lifecycle events
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// RabbitMQ publisher for order status changes
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Fatal("err connect rabbitmq", zap.Error(err))
	}
	defer func() {
		_ = publisher.Close()
	}()

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	InventoryRepo := inventoryRepo.NewInventoryRepository(db)
	PicklistRepo := picklistRepo.NewPicklistRepository(db)
	DeliveryRepo := deliveryRepo.NewDeliveryRepository(db)
	ManifestRepo := manifestRepo.NewManifestRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	OrderApp := orderapp.NewOrderApp(TxRepo, OrderRepo)
	FulfillmentApp := fulfillmentapp.NewFulfillmentApp(cfg, TxRepo, OrderRepo, InventoryRepo, PicklistRepo, DeliveryRepo, ManifestRepo, publisher)
	InventoryApp := inventoryapp.NewInventoryApp(cfg, TxRepo, InventoryRepo, RedisRepo)

	httpTransport := transport.NewTransport(cfg, OrderApp, FulfillmentApp, InventoryApp, RedisRepo)

	// Carrier tracking consumer feeds events back through the internal API
	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, "http://localhost:"+cfg.Server.Port, cfg.Auth.InternalAPIKey)
	if err != nil {
		logger.Fatal("err connect rabbitmq consumer", zap.Error(err))
	}
	defer func() {
		_ = consumer.Close()
	}()

	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	defer cancelConsumer()
	if err := consumer.Start(consumerCtx); err != nil {
		logger.Fatal("err start tracking consumer", zap.Error(err))
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
