package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-storage-gateway/entity"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ObjectRepository struct {
	db *gorm.DB
}

func NewObjectRepository(db *gorm.DB) *ObjectRepository {
	return &ObjectRepository{db: db}
}

// FindWithBucket reads an object together with its owning bucket in one joined
// query. A row whose bucket does not resolve by name is treated as absent:
// dangling metadata must never be surfaced.
func (r *ObjectRepository) FindWithBucket(ctx context.Context, subject, bucketName, objectName string) (*entity.Object, error) {
	var object entity.Object
	err := scopedTx(ctx, r.db, subject, func(tx *gorm.DB) error {
		return tx.Joins("Bucket").
			Where(`"Bucket"."name" = ? AND objects.name = ?`, bucketName, objectName).
			First(&object).Error
	})
	if err != nil {
		return nil, err
	}
	if object.Bucket == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &object, nil
}

func (r *ObjectRepository) Create(ctx context.Context, subject string, object *entity.Object) error {
	if object.ID == uuid.Nil {
		object.ID = uuid.New()
	}
	return scopedTx(ctx, r.db, subject, func(tx *gorm.DB) error {
		return tx.Create(object).Error
	})
}

// UpdateByBucketAndName re-stamps the owner, replaces the metadata and
// refreshes last_accessed_at on the matching row. The matched-row count is
// returned alongside the error so callers can tell "nothing matched" apart
// from a store failure.
func (r *ObjectRepository) UpdateByBucketAndName(ctx context.Context, subject string, bucketID uuid.UUID, name string, owner uuid.UUID, metadata datatypes.JSONMap) (int64, error) {
	var rows int64
	err := scopedTx(ctx, r.db, subject, func(tx *gorm.DB) error {
		res := tx.Model(&entity.Object{}).
			Where("bucket_id = ? AND name = ?", bucketID, name).
			Updates(map[string]interface{}{
				"owner":            owner,
				"metadata":         metadata,
				"last_accessed_at": time.Now().UTC(),
			})
		rows = res.RowsAffected
		return res.Error
	})
	return rows, err
}

func (r *ObjectRepository) DeleteByBucketAndName(ctx context.Context, subject string, bucketID uuid.UUID, name string) (int64, error) {
	var rows int64
	err := scopedTx(ctx, r.db, subject, func(tx *gorm.DB) error {
		res := tx.Delete(&entity.Object{}, "bucket_id = ? AND name = ?", bucketID, name)
		rows = res.RowsAffected
		return res.Error
	})
	return rows, err
}
