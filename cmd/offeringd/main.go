package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/terravest/platform/internal/config"
	offeringApp "github.com/terravest/platform/internal/offering/application"
	offeringHttp "github.com/terravest/platform/internal/offering/infra/inbound/http"
	offeringRepo "github.com/terravest/platform/internal/offering/infra/outbound/db/mongodb"
	portfolioGw "github.com/terravest/platform/internal/offering/infra/outbound/portfolio"
	"github.com/terravest/platform/internal/shared/infra/analytics"
	"github.com/terravest/platform/internal/shared/infra/analytics/clickhouse"
	"github.com/terravest/platform/internal/shared/infra/cache"
	"github.com/terravest/platform/internal/shared/infra/clients"
	"github.com/terravest/platform/internal/shared/infra/events"
	"github.com/terravest/platform/internal/shared/infra/middleware"
	"github.com/terravest/platform/internal/shared/infra/validation"
	"github.com/terravest/platform/pkg/logger"
)

func main() {
	logger.Init()
	log := logger.Logger()
	defer log.Sync()

	ctx := context.Background()
	cfg := config.Load("offering")

	// ---------------- DB ----------------
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatal("failed to ping MongoDB", zap.Error(err))
	}

	db := mongoClient.Database(cfg.MongoDB)
	offerings := offeringRepo.NewOfferingRepo(db)
	subscriptions := offeringRepo.NewSubscriptionRepo(db)

	// ---------------- Cache ----------------
	var cacheInstance cache.Cache
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, using in-memory cache", zap.Error(err))
		cacheInstance = cache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
	} else {
		cacheInstance = cache.NewRedisCache(rdb, cfg.CacheTTL)
		log.Info("Redis connected, cache enabled")
	}

	// ---------------- Events ---------------
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
	})
	defer writer.Close()
	publisher := events.NewKafkaPublisher(writer, log)

	// -------------- Analytics --------------
	var recorder analytics.Recorder
	readLog, err := clickhouse.NewReadLog(cfg.ClickHouseAddr, cfg.ClickHouseDB)
	if err != nil {
		log.Warn("ClickHouse unavailable, read analytics disabled", zap.Error(err))
	} else {
		if err := readLog.InitSchema(); err != nil {
			log.Warn("failed to initialize analytics schema", zap.Error(err))
		}
		recorder = readLog
	}

	// --------------- Clients ---------------
	listingClient := clients.NewListingClient(cfg.ListingServiceURL)
	dataRoomClient := clients.NewDataRoomClient(cfg.DataRoomServiceURL)
	portfolioClient := clients.NewPortfolioClient(cfg.PortfolioServiceURL)
	policyClient := clients.NewPolicyClient(cfg.PolicyServiceURL)

	// --------------- Services --------------
	offeringService := offeringApp.NewOfferingService(
		offerings,
		subscriptions,
		listingClient,
		dataRoomClient,
		cacheInstance,
		publisher,
		recorder,
		log,
	)
	subscriptionService := offeringApp.NewSubscriptionService(
		subscriptions,
		offerings,
		portfolioGw.NewGateway(portfolioClient),
		publisher,
		log,
	)

	// ---------------- HTTP ----------------
	offeringHandler := offeringHttp.NewOfferingHandler(offeringService)
	subscriptionHandler := offeringHttp.NewSubscriptionHandler(subscriptionService)
	router := gin.Default()

	authenticated := middleware.Authenticated(cfg.JWTSecret)
	authorize := func(action string) gin.HandlerFunc {
		return middleware.AuthorizeAction(policyClient, action, log)
	}
	validateOffering := validation.Body(validation.MustLoad("offering"))
	validateSubscription := validation.Body(validation.MustLoad("subscription"))

	offeringHttp.RegisterOfferingRoutes(
		router,
		offeringHandler,
		subscriptionHandler,
		authenticated,
		authorize,
		validateOffering,
		validateSubscription,
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	log.Info("offering service running", zap.String("port", cfg.HTTPPort))
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
