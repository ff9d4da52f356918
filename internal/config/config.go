package config

import (
	"os"
	"strings"
	"time"
)

// Config holds everything a service binary needs at startup. Values come
// from the environment once and are passed into constructors explicitly.
type Config struct {
	MongoURI  string
	MongoDB   string
	HTTPPort  string
	JWTSecret string

	ListingServiceURL   string
	OfferingServiceURL  string
	PortfolioServiceURL string
	DataRoomServiceURL  string
	PolicyServiceURL    string

	RedisAddr string
	CacheTTL  time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	ClickHouseAddr string
	ClickHouseDB   string
}

// Load reads the configuration for one service. The service name selects
// the default database name and Kafka topic.
func Load(service string) *Config {
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	return &Config{
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", service),
		HTTPPort:  getEnv("HTTP_PORT", "8080"),
		JWTSecret: getEnv("JWT_SECRET", "terravest2023"),

		ListingServiceURL:   getEnv("LISTING_SERVICE_URL", "http://listing-service:3002"),
		OfferingServiceURL:  getEnv("OFFERING_SERVICE_URL", "http://offering-service:3003"),
		PortfolioServiceURL: getEnv("PORTFOLIO_SERVICE_URL", "http://portfolio-service:3005"),
		DataRoomServiceURL:  getEnv("DATA_ROOM_SERVICE_URL", "http://data-room-service:3001"),
		PolicyServiceURL:    getEnv("POLICY_SERVICE_URL", "http://policy-service:4000"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:  5 * time.Minute,

		KafkaBrokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		KafkaTopic:   getEnv("KAFKA_TOPIC", service+"-events"),

		ClickHouseAddr: getEnv("CLICKHOUSE_ADDR", "localhost:9000"),
		ClickHouseDB:   getEnv("CLICKHOUSE_DB", "platform_analytics"),
	}
}
