package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/tnqbao/gau-storage-gateway/config"
	"github.com/tnqbao/gau-storage-gateway/gateway"
	"github.com/tnqbao/gau-storage-gateway/http/controller"
	routes "github.com/tnqbao/gau-storage-gateway/http/route"
	infraPkg "github.com/tnqbao/gau-storage-gateway/infra"
	"github.com/tnqbao/gau-storage-gateway/provider"
	"github.com/tnqbao/gau-storage-gateway/repository"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	defer infra.Telemetry.Shutdown(context.Background())

	repo := repository.InitRepository(infra)

	metadata := provider.NewMetadataProvider(repo, infra.Redis)
	blobs := provider.NewBlobStore(cfg.EnvConfig, infra)
	owners := provider.NewOwnerProvider(cfg.EnvConfig)
	incidents := provider.NewIncidentProvider(infra.Produce.IncidentService)

	gw := gateway.New(cfg.EnvConfig, metadata, blobs, owners, incidents, infra.Logger)

	ctrl := controller.NewController(cfg, infra, gw, repo.IncidentRepo)

	router := routes.SetupRouter(ctrl)

	log.Println("HTTP Server started on :8080")
	if err := router.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
