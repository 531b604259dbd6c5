package catalog

import (
	"context"

	"github.com/dishpatch/dishpatch-backend/pkg/money"
	"github.com/google/uuid"
)

// Option is a priced add-on belonging to a dish (topping or extra).
type Option struct {
	Name       string      `json:"name"`
	PriceCents money.Cents `json:"price_cents"`
}

// Vendor is the snapshot of the restaurant a dish belongs to.
type Vendor struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Address   string    `json:"address,omitempty"`
}

// Dish is the read-only menu record the cart builds line items from.
// It arrives fully resolved; the cart never fetches menu data itself.
type Dish struct {
	ID               uuid.UUID   `json:"id"`
	Name             string      `json:"name"`
	ImageURL         string      `json:"image_url,omitempty"`
	BasePriceCents   money.Cents `json:"base_price_cents"`
	SpicinessOptions []string    `json:"spiciness_options,omitempty"`
	Toppings         []Option    `json:"toppings,omitempty"`
	Extras           []Option    `json:"extras,omitempty"`
	Vendor           Vendor      `json:"vendor"`
}

// Topping returns the dish topping with the given name, if present.
func (d *Dish) Topping(name string) (Option, bool) {
	return findOption(d.Toppings, name)
}

// Extra returns the dish extra with the given name, if present.
func (d *Dish) Extra(name string) (Option, bool) {
	return findOption(d.Extras, name)
}

// HasSpiciness reports whether the value is one of the dish's options.
func (d *Dish) HasSpiciness(value string) bool {
	for _, opt := range d.SpicinessOptions {
		if opt == value {
			return true
		}
	}
	return false
}

func findOption(options []Option, name string) (Option, bool) {
	for _, opt := range options {
		if opt.Name == name {
			return opt, true
		}
	}
	return Option{}, false
}

// Provider supplies dish records to the cart service.
type Provider interface {
	GetDish(ctx context.Context, id uuid.UUID) (*Dish, error)
}
