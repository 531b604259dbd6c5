package cart

import (
	cartsvc "github.com/dishpatch/dishpatch-backend/internal/cart"
	"github.com/google/uuid"
)

// AddItemRequest is the dish selection posted when adding to the cart.
type AddItemRequest struct {
	DishID    uuid.UUID `json:"dish_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
	Spiciness string    `json:"spiciness"`
	Toppings  []string  `json:"toppings"`
	Extras    []string  `json:"extras"`
}

// UpdateQuantityRequest adjusts a slot's quantity by a signed delta.
type UpdateQuantityRequest struct {
	ItemKey string `json:"item_key" validate:"required"`
	Delta   int    `json:"delta" validate:"required"`
}

// RemoveItemRequest names the exact customization slot to drop.
type RemoveItemRequest struct {
	ItemKey string `json:"item_key" validate:"required"`
}

// LocationRequest carries the delivery zipcode the cart is scoped to.
type LocationRequest struct {
	Zipcode string `json:"zipcode" validate:"required,min=3,max=12"`
}

func toAddItemInput(payload AddItemRequest) cartsvc.AddItemInput {
	return cartsvc.AddItemInput{
		DishID:    payload.DishID,
		Quantity:  payload.Quantity,
		Spiciness: payload.Spiciness,
		Toppings:  payload.Toppings,
		Extras:    payload.Extras,
	}
}
