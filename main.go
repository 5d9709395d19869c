// main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/gewnthar/rsfsync/config"
	"github.com/gewnthar/rsfsync/scraper"
	"github.com/gewnthar/rsfsync/services"
)

const fetchTimeout = 15 * time.Second

func main() {
	log.Println("Starting RSF RaceStat sync...")

	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// .env (if present) supplies secrets that should not live in the YAML
	// file, notably RSF_SESSION_ID.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Could not load .env file: %v", err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if sid := os.Getenv("RSF_SESSION_ID"); sid != "" {
		cfg.SessionID = sid
	}
	if cfg.SessionID == "" {
		log.Fatalf("No session id: set session_id in %s or RSF_SESSION_ID in the environment", *configPath)
	}
	log.Printf("Configuration loaded. RBR path: %s, user id: %s, %d groups.",
		cfg.RBRPath, cfg.UserID, len(cfg.Groups))

	ref := services.LoadReferenceData(cfg.ReferenceCarsCSV, cfg.ReferenceModelsCSV)

	svc := services.New(cfg,
		scraper.NewHTTPFetcher(fetchTimeout),
		ref,
		func(line string) { log.Println(line) },
		func(fraction float64) { log.Printf("Progress: %3.0f%%", fraction*100) },
	)

	total := svc.Run()
	fmt.Printf("--- FINISHED. Total records: %d ---\n", total)
}
