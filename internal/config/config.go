package config

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// Config is read from the environment; every field has a workable default
// for local development except the upstream URL in production.
type Config struct {
	APIBaseURL string
	ListenAddr string
	RedisAddr  string
	KafkaAddr  string
	AuditTopic string
	CacheTTL   time.Duration
}

func Load() Config {
	cfg := Config{
		APIBaseURL: getenv("ORDERDESK_API_URL", "http://localhost:9001/api/v1"),
		ListenAddr: getenv("ORDERDESK_LISTEN_ADDR", ":8080"),
		RedisAddr:  os.Getenv("ORDERDESK_REDIS_ADDR"),
		KafkaAddr:  os.Getenv("ORDERDESK_KAFKA_ADDR"),
		AuditTopic: getenv("ORDERDESK_AUDIT_TOPIC", "orderdesk.audit"),
		CacheTTL:   30 * time.Second,
	}
	if raw := os.Getenv("ORDERDESK_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatal("Invalid ORDERDESK_CACHE_TTL:", err)
		}
		cfg.CacheTTL = ttl
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustInitRedis connects to Redis or aborts startup.
func MustInitRedis(addr string) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	return client
}

// NewKafkaWriter builds the audit trail writer.
func NewKafkaWriter(addr, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(addr),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}
