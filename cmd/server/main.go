package main

import (
	"context"
	"log"
	"os"

	"github.com/crewscore/crewscore/internal/wiring"
)

func main() {
	ctx := context.Background()

	app, err := wiring.Build(ctx, os.Getenv("CREWSCORE_CONFIG_PATH"))
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
