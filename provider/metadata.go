package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tnqbao/gau-storage-gateway/entity"
	"github.com/tnqbao/gau-storage-gateway/gateway"
	"github.com/tnqbao/gau-storage-gateway/infra"
	"github.com/tnqbao/gau-storage-gateway/repository"
)

const bucketCacheTTL = 5 * time.Minute

// MetadataProvider adapts the gorm repositories to the gateway's metadata
// store contract. Its single responsibility beyond delegation is translating
// database outcomes into store verdicts: record-not-found, duplicate-key and
// policy denials become sentinels, everything else is a wrapped store failure.
type MetadataProvider struct {
	repo  *repository.Repository
	cache *infra.RedisClient
}

func NewMetadataProvider(repo *repository.Repository, cache *infra.RedisClient) *MetadataProvider {
	return &MetadataProvider{repo: repo, cache: cache}
}

// The cache key carries the subject so one caller's resolution never answers
// for another: bucket visibility is itself policy-scoped.
func bucketCacheKey(subject uuid.UUID, name string) string {
	return fmt.Sprintf("bucket:%s:%s", subject, name)
}

func (p *MetadataProvider) ResolveBucket(ctx context.Context, subject uuid.UUID, name string) (uuid.UUID, error) {
	if p.cache != nil {
		var cached string
		if err := p.cache.Get(ctx, bucketCacheKey(subject, name), &cached); err == nil {
			if id, err := uuid.Parse(cached); err == nil {
				return id, nil
			}
			// Corrupt entry; drop it and fall through to the database.
			_ = p.cache.Delete(ctx, bucketCacheKey(subject, name))
		}
	}

	bucket, err := p.repo.BucketRepo.ResolveByName(ctx, subject.String(), name)
	if err != nil {
		return uuid.Nil, translate("resolve bucket", err)
	}

	if p.cache != nil {
		_ = p.cache.Set(ctx, bucketCacheKey(subject, name), bucket.ID.String(), bucketCacheTTL)
	}
	return bucket.ID, nil
}

func (p *MetadataProvider) FindObject(ctx context.Context, subject uuid.UUID, bucketName, objectName string) (*entity.Object, error) {
	object, err := p.repo.ObjectRepo.FindWithBucket(ctx, subject.String(), bucketName, objectName)
	if err != nil {
		return nil, translate("find object", err)
	}
	return object, nil
}

func (p *MetadataProvider) InsertObject(ctx context.Context, subject uuid.UUID, bucketID uuid.UUID, name string, metadata map[string]interface{}) error {
	object := &entity.Object{
		BucketID: bucketID,
		Name:     name,
		Owner:    subject,
		Metadata: datatypes.JSONMap(metadata),
	}
	if err := p.repo.ObjectRepo.Create(ctx, subject.String(), object); err != nil {
		return translate("insert object", err)
	}
	return nil
}

func (p *MetadataProvider) UpdateObject(ctx context.Context, subject uuid.UUID, bucketID uuid.UUID, name string, metadata map[string]interface{}) (int64, error) {
	rows, err := p.repo.ObjectRepo.UpdateByBucketAndName(ctx, subject.String(), bucketID, name, subject, datatypes.JSONMap(metadata))
	if err != nil {
		return 0, translate("update object", err)
	}
	return rows, nil
}

func (p *MetadataProvider) DeleteObject(ctx context.Context, subject uuid.UUID, bucketID uuid.UUID, name string) (int64, error) {
	rows, err := p.repo.ObjectRepo.DeleteByBucketAndName(ctx, subject.String(), bucketID, name)
	if err != nil {
		return 0, translate("delete object", err)
	}
	return rows, nil
}

// translate maps database errors onto the gateway's verdicts. Code 42501 is
// insufficient_privilege, raised when a row policy rejects the statement.
func translate(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return gateway.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return gateway.ErrConflict
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42501" {
		return gateway.ErrForbidden
	}

	return &gateway.MetadataStoreError{Op: op, Err: err}
}
