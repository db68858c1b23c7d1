package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/tnqbao/gau-storage-gateway/config"
	"github.com/tnqbao/gau-storage-gateway/consumer/worker"
	infraPkg "github.com/tnqbao/gau-storage-gateway/infra"
	"github.com/tnqbao/gau-storage-gateway/repository"
)

func main() {
	err := godotenv.Load("../.env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	incidentConsumer := worker.NewIncidentConsumer(infra.RabbitMQ.Channel, infra, repo.IncidentRepo)
	if err := incidentConsumer.Start(ctx); err != nil {
		infra.Logger.ErrorWithContextf(ctx, err, "Failed to start Incident consumer: %v", err)
		log.Fatalf("Failed to start Incident consumer: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infra.Logger.InfoWithContextf(ctx, "Shutting down consumer...")
	cancel()

	infra.Logger.InfoWithContextf(ctx, "Consumer exited properly")
}
