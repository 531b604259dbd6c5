package settings

import (
	"github.com/dishpatch/dishpatch-backend/pkg/config"
	"github.com/dishpatch/dishpatch-backend/pkg/money"
	"github.com/google/uuid"
)

// Service serves the platform pricing configuration the summarizer
// depends on: the tax percentage and per-vendor delivery fees.
type Service interface {
	TaxPercent() float64
	DeliveryFee(vendorID uuid.UUID) money.Cents
}

type service struct {
	cfg        config.CartConfig
	vendorFees map[uuid.UUID]money.Cents
}

// NewService builds a config-backed settings provider. vendorFees holds
// per-vendor overrides of the platform default delivery fee; it may be nil.
func NewService(cfg config.CartConfig, vendorFees map[uuid.UUID]money.Cents) Service {
	return &service{cfg: cfg, vendorFees: vendorFees}
}

func (s *service) TaxPercent() float64 {
	return s.cfg.TaxPercent
}

func (s *service) DeliveryFee(vendorID uuid.UUID) money.Cents {
	if fee, ok := s.vendorFees[vendorID]; ok {
		return fee
	}
	return money.Cents(s.cfg.DeliveryFeeCents)
}
