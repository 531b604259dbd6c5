package cart

import (
	"fmt"

	"github.com/dishpatch/dishpatch-backend/internal/catalog"
	pkgerrors "github.com/dishpatch/dishpatch-backend/pkg/errors"
)

// Selection captures the customization chosen for a dish. Topping and
// extra names are validated against the dish; prices always come from
// the dish record, never from the caller.
type Selection struct {
	Quantity  int
	Spiciness string
	Toppings  []string
	Extras    []string
}

// BuildLineItem validates the selection against the dish and produces a
// priced line item. Pure; quantities below 1 are clamped to 1.
func BuildLineItem(dish *catalog.Dish, sel Selection) (LineItem, error) {
	if dish == nil {
		return LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "dish is required")
	}

	quantity := sel.Quantity
	if quantity < 1 {
		quantity = 1
	}

	spiciness, err := resolveSpiciness(dish, sel.Spiciness)
	if err != nil {
		return LineItem{}, err
	}

	toppings, err := resolveOptions(sel.Toppings, dish.Topping, "topping")
	if err != nil {
		return LineItem{}, err
	}
	extras, err := resolveOptions(sel.Extras, dish.Extra, "extra")
	if err != nil {
		return LineItem{}, err
	}

	item := LineItem{
		DishID:         dish.ID,
		Name:           dish.Name,
		ImageURL:       dish.ImageURL,
		Vendor:         dish.Vendor,
		BasePriceCents: dish.BasePriceCents,
		Quantity:       quantity,
		Spiciness:      spiciness,
		Toppings:       toppings,
		Extras:         extras,
	}
	item.recomputeTotal()
	return item, nil
}

func resolveSpiciness(dish *catalog.Dish, value string) (string, error) {
	if len(dish.SpicinessOptions) == 0 {
		if value != "" && value != SpicinessNotSpecified {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "dish has no spiciness options").
				WithDetails(map[string]any{"spiciness": value})
		}
		return SpicinessNotSpecified, nil
	}
	if !dish.HasSpiciness(value) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "spiciness is not offered for this dish").
			WithDetails(map[string]any{"spiciness": value, "options": dish.SpicinessOptions})
	}
	return value, nil
}

// resolveOptions resolves selected names through the dish lookup,
// preserving selection order and dropping duplicate names.
func resolveOptions(names []string, lookup func(string) (catalog.Option, bool), kind string) ([]catalog.Option, error) {
	if len(names) == 0 {
		return nil, nil
	}
	seen := map[string]struct{}{}
	resolved := make([]catalog.Option, 0, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		opt, ok := lookup(name)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s is not offered for this dish", kind)).
				WithDetails(map[string]any{kind: name})
		}
		resolved = append(resolved, opt)
	}
	return resolved, nil
}
