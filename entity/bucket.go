package entity

import (
	"time"

	"github.com/google/uuid"
)

// Bucket rows are administered outside this service; the gateway only ever
// resolves a bucket by name to find the bucket a request targets.
type Bucket struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Owner     uuid.UUID `json:"owner" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Objects []Object `json:"objects,omitempty" gorm:"foreignKey:BucketID;constraint:OnDelete:CASCADE"`
}
