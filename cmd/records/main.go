package main

import (
	authhandler "travelog/internal/auth/handler"
	authrepository "travelog/internal/auth/repository"
	authservice "travelog/internal/auth/service"
	"travelog/internal/auth/token"
	"travelog/internal/records/handler"
	"travelog/internal/records/repository"
	"travelog/internal/records/service"
	"travelog/internal/records/validator"
	"travelog/pkg/app"
	"travelog/pkg/config"
	"travelog/pkg/events"
	"travelog/pkg/middleware"
)

const ServiceName = "records"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	publisher := initPublisher(cfg)
	defer publisher.Close()

	recordHandler, authHandler := initHandlers(cfg, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(recordHandler, authHandler)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Event publishing disabled, no Kafka brokers configured")
		return events.NopPublisher{}
	}

	producer, err := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create event producer", "error", err)
	}

	cfg.Log.Info("Event publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	return producer
}

func initHandlers(cfg *config.Config, publisher events.Publisher) (*handler.RecordHandler, *authhandler.AuthHandler) {
	recordValidator := validator.NewRecordValidator(cfg.Log)
	recordRepo := repository.NewMongoRecordRepository(cfg)
	recordService := service.NewRecordService(recordRepo, recordValidator, publisher, cfg)

	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	users := authrepository.NewInMemoryUserRepository(authrepository.SeedUsers())
	auth := authservice.NewAuthService(users, tokens, cfg)

	requireAuth := handler.Gate(handler.PassThrough)
	requireAdmin := handler.Gate(handler.PassThrough)
	if cfg.AuthRequired {
		requireAuth = handler.Gate(middleware.RequireAuth(tokens, cfg.Log))
		requireAdmin = handler.Gate(middleware.RequireAdmin(tokens, cfg.Log))
	}

	recordHandler := handler.NewRecordHandler(recordService, cfg.PageSize, requireAuth, requireAdmin, cfg.Log)
	authHandler := authhandler.NewAuthHandler(auth, cfg.Log)

	cfg.Log.Info("Record service initialized",
		"database", cfg.MongoDatabaseName,
		"auth_required", cfg.AuthRequired,
	)
	return recordHandler, authHandler
}
