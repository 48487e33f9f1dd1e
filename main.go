package main

import (
	"log"
	"net/http"
	"os"

	"marketlens/api"
	"marketlens/cache"
	"marketlens/client"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	store, err := cache.NewFromEnv()
	if err != nil {
		log.Printf("Warning: cache unavailable: %v (caching disabled)", err)
		store = nil
	}
	defer store.Close()

	upstream := client.NewClientFromEnv()

	r := api.NewRouter(api.Deps{News: upstream, Stocks: upstream, Cache: store})
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  GET  /api/news")
	log.Println("  GET  /api/news/:id")
	log.Println("  GET  /api/stocks/:symbol")
	log.Println("  GET  /api/stocks/:symbol/history")
	log.Println("  POST /api/normalize/article")
	log.Println("  POST /api/normalize/stock")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
