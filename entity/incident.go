package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	IncidentMissingBlob = "missing_blob" // metadata row exists, blob mutation failed or blob absent
	IncidentOrphanBlob  = "orphan_blob"  // metadata row gone, blob removal failed
)

// Incident records a detected disagreement between the metadata store and the
// blob store. Incidents are written by the consumer for operator review; the
// gateway never repairs the underlying state.
type Incident struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Kind       string    `json:"kind" gorm:"type:varchar(32);not null;index"`
	Bucket     string    `json:"bucket" gorm:"not null"`
	ObjectName string    `json:"object_name" gorm:"type:varchar(1024);not null"`
	Key        string    `json:"key" gorm:"type:varchar(2048);not null"`
	Detail     string    `json:"detail" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null;autoCreateTime"`
}
