package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fathima-sithara/social-api/internal/api"
	"github.com/fathima-sithara/social-api/internal/cache"
	"github.com/fathima-sithara/social-api/internal/config"
	"github.com/fathima-sithara/social-api/internal/database"
	"github.com/fathima-sithara/social-api/internal/events"
	"github.com/fathima-sithara/social-api/internal/repository"
	"github.com/fathima-sithara/social-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load("config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.App.Env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()
	sugar.Infof("Starting social-api in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, sugar)
	if err != nil {
		sugar.Fatal(err)
	}
	rdb, err := database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	convRepo := repository.NewConversationRepository(db.Collection(cfg.Mongo.ConversationsCollection))
	msgRepo := repository.NewMessageRepository(db.Collection(cfg.Mongo.MessagesCollection))
	notifRepo := repository.NewNotificationRepository(db.Collection(cfg.Mongo.NotificationsCollection))
	userRepo := repository.NewUserRepository(db.Collection(cfg.Mongo.UsersCollection))

	badge := cache.NewUnreadBadge(rdb, logger)
	notifSvc := service.NewNotificationService(notifRepo, userRepo, badge, logger)

	var producer *events.Producer
	var convSvc *service.ConversationService
	if cfg.Kafka.Enabled {
		producer = events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicMessageSent)
		convSvc = service.NewConversationService(convRepo, msgRepo, userRepo, notifSvc, producer, logger)
	} else {
		convSvc = service.NewConversationService(convRepo, msgRepo, userRepo, notifSvc, nil, logger)
	}

	app := api.New(cfg, logger, api.NewChatHandler(convSvc), api.NewNotificationHandler(notifSvc))

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	var consumer *events.Consumer
	if cfg.Kafka.Enabled {
		consumer = events.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicSocial, cfg.Kafka.ConsumerGroup, notifSvc, logger)
		go consumer.Run(consumerCtx)
		sugar.Infof("social.events consumer running (group %s)", cfg.Kafka.ConsumerGroup)
	}

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}
	stopConsumer()
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			sugar.Errorf("Kafka consumer close error: %v", err)
		}
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			sugar.Errorf("Kafka producer close error: %v", err)
		}
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		sugar.Errorf("MongoDB disconnect error: %v", err)
	}
	if err := rdb.Close(); err != nil {
		sugar.Errorf("Redis client close error: %v", err)
	}
	sugar.Info("Graceful shutdown complete")
}
