package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Object struct {
	ID             uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	BucketID       uuid.UUID         `json:"bucket_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_bucket_name"`
	Name           string            `json:"name" gorm:"type:varchar(1024);not null;uniqueIndex:idx_bucket_name"`
	Owner          uuid.UUID         `json:"owner" gorm:"type:uuid;not null;index"`
	Metadata       datatypes.JSONMap `json:"metadata" gorm:"type:jsonb"`
	CreatedAt      time.Time         `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt      time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`

	Bucket *Bucket `json:"bucket,omitempty" gorm:"foreignKey:BucketID;constraint:OnDelete:CASCADE"`
}
