package cart

import "github.com/dishpatch/dishpatch-backend/pkg/money"

// Summary is the derived pricing view of a cart. Recomputed on every
// mutation; never stored.
type Summary struct {
	TotalItems       int
	SubtotalCents    money.Cents
	DeliveryFeeCents money.Cents
	TaxPercent       float64
	TaxAmountCents   money.Cents
	TotalCents       money.Cents
}

// Summarize derives totals from the line items and the supplied pricing
// configuration. An empty cart yields all-zero totals; the delivery fee
// only applies once there is something to deliver.
func Summarize(items []LineItem, deliveryFee money.Cents, taxPercent float64) Summary {
	if len(items) == 0 {
		return Summary{}
	}

	var subtotal money.Cents
	totalItems := 0
	for _, item := range items {
		subtotal += item.LineTotalCents
		totalItems += item.Quantity
	}

	tax := subtotal.Percent(taxPercent)
	return Summary{
		TotalItems:       totalItems,
		SubtotalCents:    subtotal,
		DeliveryFeeCents: deliveryFee,
		TaxPercent:       taxPercent,
		TaxAmountCents:   tax,
		TotalCents:       subtotal + deliveryFee + tax,
	}
}
