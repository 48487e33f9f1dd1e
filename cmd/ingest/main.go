package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"marketlens/cache"
	"marketlens/config"
	"marketlens/kafka"
	"marketlens/storage"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	log.SetOutput(os.Stderr)

	brokers := strings.Split(config.GetEnvOrDefault("KAFKA_BROKERS", "localhost:9092"), ",")
	topic := config.GetEnvOrDefault("KAFKA_TOPIC", "articles.raw")
	groupID := config.GetEnvOrDefault("KAFKA_GROUP_ID", "marketlens-ingest")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := cache.NewFromEnv()
	if err != nil {
		log.Printf("Warning: cache unavailable: %v (caching skipped)", err)
		store = nil
	}
	defer store.Close()

	archive := storage.NewArchiveFromEnv(ctx)
	if archive == nil {
		log.Println("S3 not configured; ingested articles will not be archived")
	}

	consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
		Handler: kafka.NewIngestHandler(store, archive),
	})
	if err != nil {
		log.Fatalf("failed to create consumer: %v", err)
	}
	defer consumer.Close()

	if err := consumer.Start(ctx); err != nil {
		log.Fatalf("failed to start consumer: %v", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	log.Println("Shutting down ingest worker...")
}
