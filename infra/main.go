package infra

import (
	"log"

	"github.com/tnqbao/gau-storage-gateway/config"
	"github.com/tnqbao/gau-storage-gateway/infra/produce"
)

type Infra struct {
	Redis     *RedisClient
	Postgres  *PostgresClient
	Logger    *LoggerClient
	Telemetry *Telemetry
	RabbitMQ  *RabbitMQClient
	Produce   *produce.Produce
	Minio     *MinioClient
	S3        *S3Client
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	telemetry, err := InitTelemetry(cfg.EnvConfig)
	if err != nil {
		log.Printf("Warning: telemetry disabled: %v", err)
		telemetry = nil
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	redis := InitRedisClient(cfg.EnvConfig)
	if redis == nil {
		panic("Failed to initialize Redis service")
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	rabbitMQ := InitRabbitMQClient(cfg.EnvConfig)
	if rabbitMQ == nil {
		panic("Failed to initialize RabbitMQ service")
	}

	produceService := produce.InitProduce(rabbitMQ.Channel)
	if produceService == nil {
		panic("Failed to initialize Produce service")
	}

	// Only the configured blob driver is brought up; the other stays nil.
	var minio *MinioClient
	var s3 *S3Client
	switch cfg.EnvConfig.Storage.Driver {
	case "s3":
		s3 = InitS3Client(cfg.EnvConfig)
		if s3 == nil {
			panic("Failed to initialize S3 service")
		}
	default:
		minio = InitMinioClient(cfg.EnvConfig)
		if minio == nil {
			panic("Failed to initialize MinIO service")
		}
	}

	infraInstance = &Infra{
		Redis:     redis,
		Postgres:  postgres,
		Logger:    logger,
		Telemetry: telemetry,
		RabbitMQ:  rabbitMQ,
		Produce:   produceService,
		Minio:     minio,
		S3:        s3,
	}

	return infraInstance
}

func GetClient() *Infra {
	if infraInstance == nil {
		panic("Infra not initialized. Call InitInfra() first.")
	}
	return infraInstance
}
