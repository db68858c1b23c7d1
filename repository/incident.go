package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-storage-gateway/entity"
	"gorm.io/gorm"
)

type IncidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

// Incidents are operator-facing records, not caller data, so they are written
// without credential scoping.
func (r *IncidentRepository) Create(ctx context.Context, incident *entity.Incident) error {
	if incident.ID == uuid.Nil {
		incident.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(incident).Error
}

func (r *IncidentRepository) ListRecent(ctx context.Context, limit int) ([]entity.Incident, error) {
	var incidents []entity.Incident
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&incidents).Error
	if err != nil {
		return nil, err
	}
	return incidents, nil
}
