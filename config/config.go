package config

import (
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"menuva/models"
)

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "menuva_super_secret_2024"))

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// OpenDB connects to sqlite and migrates all models.
func OpenDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(getEnv("DB_PATH", "menuva.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.StatusChange{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	return db
}

// RedisClient returns a client for the restaurant-list cache, or nil when
// REDIS_ADDR is unset.
func RedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}

// CacheTTL is how long cached restaurant listings stay fresh.
func CacheTTL() time.Duration {
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return 30 * time.Second
}

// KafkaWriter returns a writer for the order-events topic, or nil when
// KAFKA_BROKER is unset.
func KafkaWriter() *kafka.Writer {
	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		return nil
	}
	return &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Topic:    getEnv("KAFKA_TOPIC", "order-status-events"),
		Balancer: &kafka.LeastBytes{},
	}
}

// Port the HTTP server listens on.
func Port() string {
	return getEnv("PORT", "8080")
}
