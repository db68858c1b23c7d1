package controller

import (
	"context"

	"github.com/tnqbao/gau-storage-gateway/config"
	"github.com/tnqbao/gau-storage-gateway/entity"
	"github.com/tnqbao/gau-storage-gateway/gateway"
	"github.com/tnqbao/gau-storage-gateway/infra"
)

// IncidentLister reads recorded incidents for the operator endpoint. Satisfied
// by the incident repository.
type IncidentLister interface {
	ListRecent(ctx context.Context, limit int) ([]entity.Incident, error)
}

type Controller struct {
	Config    *config.Config
	Infra     *infra.Infra
	Gateway   *gateway.Gateway
	Incidents IncidentLister
}

func NewController(cfg *config.Config, infra *infra.Infra, gw *gateway.Gateway, incidents IncidentLister) *Controller {
	return &Controller{
		Config:    cfg,
		Infra:     infra,
		Gateway:   gw,
		Incidents: incidents,
	}
}
