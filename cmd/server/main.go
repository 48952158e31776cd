package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	accountservice "notes-service/internal/account/service"
	"notes-service/internal/audit"
	authservice "notes-service/internal/auth/service"
	"notes-service/internal/config"
	"notes-service/internal/db"
	noteservice "notes-service/internal/note/service"
	"notes-service/internal/platform/locks"
	"notes-service/internal/security"
	"notes-service/internal/server"
	"notes-service/internal/server/middleware"
	"notes-service/internal/store"
	"notes-service/internal/telemetry"
	otelsetup "notes-service/internal/telemetry/otel"
	"notes-service/internal/telemetry/producer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	providers, err := otelsetup.NewProviders(context.Background(), cfg.OTLPEndpoint, "notes-api", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()

	var emitter telemetry.EventEmitter
	kafkaProducer, err := producer.NewKafkaProducer(cfg.TelemetryKafkaBrokersList(), cfg.TelemetryKafkaTopic)
	if err != nil {
		log.Fatalf("kafka producer: %v", err)
	}
	if kafkaProducer != nil {
		emitter = kafkaProducer
		defer kafkaProducer.Close()
	}

	stores := store.New(conn)
	auditor := audit.NewLogger(stores.Audit(), middleware.ClientIPFrom)
	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewTokenCodec([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.SessionTTLDuration())
	km := locks.NewKeyedMutex()

	router := server.NewRouter(server.Deps{
		Auth:           authservice.NewAuthService(stores.Accounts(), hasher, tokens, auditor, emitter),
		Accounts:       accountservice.NewAccountService(stores, km, hasher, auditor, emitter),
		Notes:          noteservice.NewNoteService(stores, km, auditor, emitter),
		AuditRepo:      stores.Audit(),
		HealthPinger:   conn,
		RequestTimeout: cfg.RequestTimeoutDuration(),
		CookieSecure:   cfg.CookieSecure,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}

	// let in-flight async telemetry emits finish before tearing down providers
	time.Sleep(telemetry.ShutdownDrainDuration)
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Printf("telemetry shutdown: %v", err)
	}
	log.Println("HTTP server stopped")
}
