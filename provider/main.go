package provider

import (
	"github.com/tnqbao/gau-storage-gateway/config"
	"github.com/tnqbao/gau-storage-gateway/gateway"
	"github.com/tnqbao/gau-storage-gateway/infra"
)

// NewBlobStore picks the blob backend for the configured driver. Both drivers
// write the same key layout into the one global backing bucket, so switching
// drivers does not move any data.
func NewBlobStore(cfg *config.EnvConfig, clients *infra.Infra) gateway.BlobStore {
	switch cfg.Storage.Driver {
	case "s3":
		return NewS3BlobStore(clients.S3, cfg.Storage.GlobalBucket)
	default:
		return NewMinioBlobStore(clients.Minio, cfg.Storage.GlobalBucket)
	}
}
