package repository

import (
	"context"

	"github.com/tnqbao/gau-storage-gateway/infra"
	"gorm.io/gorm"
)

type Repository struct {
	BucketRepo   *BucketRepository
	ObjectRepo   *ObjectRepository
	IncidentRepo *IncidentRepository
}

var repository *Repository

func InitRepository(infra *infra.Infra) *Repository {
	repository = &Repository{
		BucketRepo:   NewBucketRepository(infra.Postgres.DB),
		ObjectRepo:   NewObjectRepository(infra.Postgres.DB),
		IncidentRepo: NewIncidentRepository(infra.Postgres.DB),
	}
	return repository
}

func GetRepository() *Repository {
	if repository == nil {
		panic("repository not initialized")
	}
	return repository
}

// scopedTx runs fn inside a transaction whose session carries the caller's
// subject in request.jwt.claim.sub, so row-level policies in Postgres see who
// is asking. This is the only authorization mechanism in the system: rows the
// policies hide simply do not match, and denied mutations fail or match zero
// rows.
func scopedTx(ctx context.Context, db *gorm.DB, subject string, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT set_config('request.jwt.claim.sub', ?, true)", subject).Error; err != nil {
			return err
		}
		return fn(tx)
	})
}
