package main

import (
	"log"

	"orderdesk/internal/audit"
	"orderdesk/internal/auth"
	"orderdesk/internal/cache"
	"orderdesk/internal/config"
	"orderdesk/internal/session"
	"orderdesk/internal/upstream"
	"orderdesk/internal/webapp"
	"orderdesk/internal/workflow"
)

func main() {
	cfg := config.Load()

	var sessionStore session.Store
	var queryCache cache.Cache
	if cfg.RedisAddr != "" {
		rdb := config.MustInitRedis(cfg.RedisAddr)
		sessionStore = session.NewRedisStore(rdb)
		queryCache = cache.NewRedis(rdb, cfg.CacheTTL)
		log.Println("Using Redis for sessions and the query cache")
	} else {
		path, err := session.DefaultPath()
		if err != nil {
			log.Fatal("Failed to resolve session path:", err)
		}
		sessionStore = &session.FileStore{Path: path}
		queryCache = cache.NewMemory()
		log.Println("Redis not configured, using file session and in-memory cache")
	}

	var auditor audit.Publisher = audit.Noop{}
	if cfg.KafkaAddr != "" {
		auditor = audit.NewKafkaPublisher(config.NewKafkaWriter(cfg.KafkaAddr, cfg.AuditTopic))
		log.Printf("Audit events go to Kafka topic %s", cfg.AuditTopic)
	}

	sessions := session.NewManager(sessionStore)
	api := upstream.New(cfg.APIBaseURL, sessions)
	authSvc := auth.NewService(api, sessions)
	orders := workflow.NewService(api, queryCache, auditor)

	handler := webapp.NewHandler(api, authSvc, orders, queryCache, auditor, cfg.CacheTTL)
	webapp.StartServer(cfg.ListenAddr, webapp.NewRouter(handler))
}
