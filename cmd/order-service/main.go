package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/sajilokart/kicks-order-service/internal/config"
	"github.com/sajilokart/kicks-order-service/internal/delivery/http/handlers"
	"github.com/sajilokart/kicks-order-service/internal/infrastructure/khalti"
	publisher "github.com/sajilokart/kicks-order-service/internal/infrastructure/kafka"
	"github.com/sajilokart/kicks-order-service/internal/infrastructure/metrics"
	"github.com/sajilokart/kicks-order-service/internal/infrastructure/migrate"
	"github.com/sajilokart/kicks-order-service/internal/infrastructure/postgres"
	"github.com/sajilokart/kicks-order-service/internal/infrastructure/postgres/repository"
	"github.com/sajilokart/kicks-order-service/internal/infrastructure/redis"
	orderusecase "github.com/sajilokart/kicks-order-service/internal/usecase/order"
	"github.com/sajilokart/kicks-order-service/internal/usecase/reconciliation"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.OrderDB.MigrationPath != "" {
		if err := migrate.Run(db, cfg.OrderDB.MigrationPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Kafka publisher for the order event stream
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := publisher.NewDefaultKafkaPublisher(brokers)

	// Redis broadcaster feeding the socket gateway
	notifier, err := redis.NewBroadcaster(cfg.RedisService.URL, cfg.RedisService.Channel)
	if err != nil {
		log.Fatalf("failed to init redis broadcaster: %v", err)
	}

	// Khalti gateway client
	gateway := khalti.NewClient(cfg.KhaltiGateway)

	// Metrics
	reconciliationMetrics := metrics.NewReconciliationMetrics()

	// Repositories
	orderRepo := repository.NewDefaultOrderRepository(db)
	paymentRepo := repository.NewDefaultPaymentRepository(db)
	reconcileRepo := repository.NewDefaultReconciliationRepository(db)

	// Reconciliation coordinator: single entry for webhook, verify and
	// admin payment mutations
	reconciler := reconciliation.NewUsecase(
		paymentRepo,
		orderRepo,
		reconcileRepo,
		gateway,
		notifier,
		pub,
		cfg.KafkaService.Topic,
		reconciliationMetrics,
	)

	// Order usecase
	uc := orderusecase.NewDefaultOrderUsecase(
		orderRepo,
		paymentRepo,
		gateway,
		reconciler,
		notifier,
		pub,
		cfg.KafkaService.Topic,
		reconciliationMetrics,
	)

	// HTTP delivery
	orderHandler := handlers.NewOrderHandler(uc)
	paymentHandler := handlers.NewPaymentHandler(reconciler)
	webhookHandler := handlers.NewWebhookHandler(reconciler, cfg.Webhook.Secret)

	router := handlers.NewRouter(orderHandler, paymentHandler, webhookHandler)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("HTTP server started on %s\n", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
