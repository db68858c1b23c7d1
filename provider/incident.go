package provider

import (
	"context"

	"github.com/tnqbao/gau-storage-gateway/gateway"
	"github.com/tnqbao/gau-storage-gateway/infra/produce"
)

// IncidentProvider publishes gateway incidents onto the message bus; the
// consumer persists them for operators.
type IncidentProvider struct {
	service *produce.IncidentService
}

func NewIncidentProvider(service *produce.IncidentService) *IncidentProvider {
	return &IncidentProvider{service: service}
}

func (p *IncidentProvider) Report(ctx context.Context, incident gateway.Incident) error {
	return p.service.PublishIncident(ctx, produce.IncidentMessage{
		Kind:       incident.Kind,
		Bucket:     incident.Bucket,
		ObjectName: incident.ObjectName,
		Key:        incident.Key,
		Detail:     incident.Detail,
	})
}
