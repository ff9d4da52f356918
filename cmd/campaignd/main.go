package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	campaignApp "github.com/terravest/platform/internal/campaign/application"
	campaignHttp "github.com/terravest/platform/internal/campaign/infra/inbound/http"
	campaignRepo "github.com/terravest/platform/internal/campaign/infra/outbound/db/mongodb"
	"github.com/terravest/platform/internal/config"
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
	cfg := config.Load("campaign")

	// ---------------- DB ----------------
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatal("failed to ping MongoDB", zap.Error(err))
	}

	repo := campaignRepo.NewCampaignRepo(mongoClient.Database(cfg.MongoDB))

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
	offeringClient := clients.NewOfferingClient(cfg.OfferingServiceURL)
	listingClient := clients.NewListingClient(cfg.ListingServiceURL)
	dataRoomClient := clients.NewDataRoomClient(cfg.DataRoomServiceURL)
	policyClient := clients.NewPolicyClient(cfg.PolicyServiceURL)

	// --------------- Service ---------------
	service := campaignApp.NewCampaignService(
		repo,
		offeringClient,
		listingClient,
		dataRoomClient,
		cacheInstance,
		publisher,
		recorder,
		log,
	)

	// ---------------- HTTP ----------------
	handler := campaignHttp.NewCampaignHandler(service)
	router := gin.Default()

	authenticated := middleware.Authenticated(cfg.JWTSecret)
	authorize := func(action string) gin.HandlerFunc {
		return middleware.AuthorizeAction(policyClient, action, log)
	}
	validate := validation.Body(validation.MustLoad("campaign"))

	campaignHttp.RegisterCampaignRoutes(router, handler, authenticated, authorize, validate)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	log.Info("campaign service running", zap.String("port", cfg.HTTPPort))
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
