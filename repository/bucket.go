package repository

import (
	"context"

	"github.com/tnqbao/gau-storage-gateway/entity"
	"gorm.io/gorm"
)

type BucketRepository struct {
	db *gorm.DB
}

func NewBucketRepository(db *gorm.DB) *BucketRepository {
	return &BucketRepository{db: db}
}

// ResolveByName looks up the bucket a request targets. Buckets are created and
// mutated outside this service; the gateway only ever reads their identity.
func (r *BucketRepository) ResolveByName(ctx context.Context, subject, name string) (*entity.Bucket, error) {
	var bucket entity.Bucket
	err := scopedTx(ctx, r.db, subject, func(tx *gorm.DB) error {
		return tx.Where("name = ?", name).First(&bucket).Error
	})
	if err != nil {
		return nil, err
	}
	return &bucket, nil
}
