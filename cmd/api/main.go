package main

import (
	"log"

	"github.com/univoz/univoz-backend/internal/config"
	"github.com/univoz/univoz-backend/internal/database"
	"github.com/univoz/univoz-backend/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	srv := server.NewServer(cfg, db)

	log.Printf("🚀 Server starting on %s\n", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
