package provider

import (
	"github.com/google/uuid"

	"github.com/tnqbao/gau-storage-gateway/config"
	"github.com/tnqbao/gau-storage-gateway/gateway"
	"github.com/tnqbao/gau-storage-gateway/utils"
)

// OwnerProvider verifies bearer tokens and derives the caller's identity from
// the sub claim. Any defect in the token collapses to a single verdict so the
// response never hints at which check failed.
type OwnerProvider struct {
	cfg *config.EnvConfig
}

func NewOwnerProvider(cfg *config.EnvConfig) *OwnerProvider {
	return &OwnerProvider{cfg: cfg}
}

func (p *OwnerProvider) Resolve(credential string) (uuid.UUID, error) {
	sub, err := utils.SubjectFromToken(credential, p.cfg)
	if err != nil {
		return uuid.Nil, gateway.ErrUnauthenticated
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, gateway.ErrUnauthenticated
	}
	return id, nil
}
