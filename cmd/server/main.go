package main

import (
	"context"
	"log"

	"github.com/avdeevs/taskkeeper/internal/server"
	"github.com/avdeevs/taskkeeper/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("startup error: %v", err)
	}

	app.Run(ctx)

}
