package main

import (
	"context"
	"log"

	"marketlens/orchestrator"
)

func main() {
	if err := orchestrator.RunOnce(context.Background()); err != nil {
		log.Fatalf("harvest failed: %v", err)
	}
}
