package main

import (
	"context"
	"log"
	"os"

	"ai-claims-be/internal/bootstrap"
	"ai-claims-be/internal/config"
	"ai-claims-be/internal/server"
	"ai-claims-be/internal/tracer"
	"ai-claims-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (optional: only the pgvector backend and the
	// ingestion audit trail need it)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	} else {
		log.Println("[WARN] DB_CONNECTION_STRING not set, running without ingestion audit trail")
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()
	go container.RetrievalService.Warmup(context.Background())

	// 5. Initialize Server
	if err := os.MkdirAll(cfg.App.UploadDir, 0o755); err != nil {
		log.Panicf("Unable to create upload directory: %v", err)
	}
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
