package settings

import (
	"testing"

	"github.com/dishpatch/dishpatch-backend/pkg/config"
	"github.com/dishpatch/dishpatch-backend/pkg/money"
	"github.com/google/uuid"
)

func TestDeliveryFeeFallsBackToPlatformDefault(t *testing.T) {
	t.Parallel()

	vendorWithOverride := uuid.New()
	svc := NewService(
		config.CartConfig{TaxPercent: 8.5, DeliveryFeeCents: 500},
		map[uuid.UUID]money.Cents{vendorWithOverride: 250},
	)

	if got := svc.DeliveryFee(vendorWithOverride); got != 250 {
		t.Fatalf("expected override fee 250, got %d", got)
	}
	if got := svc.DeliveryFee(uuid.New()); got != 500 {
		t.Fatalf("expected default fee 500, got %d", got)
	}
	if got := svc.TaxPercent(); got != 8.5 {
		t.Fatalf("unexpected tax percent %v", got)
	}
}

func TestNilOverridesAreSafe(t *testing.T) {
	t.Parallel()

	svc := NewService(config.CartConfig{DeliveryFeeCents: 500}, nil)
	if got := svc.DeliveryFee(uuid.New()); got != 500 {
		t.Fatalf("expected default fee with nil overrides, got %d", got)
	}
}
