package cart

import (
	"sort"
	"strings"

	"github.com/dishpatch/dishpatch-backend/internal/catalog"
	"github.com/dishpatch/dishpatch-backend/pkg/money"
	"github.com/google/uuid"
)

// SpicinessNotSpecified is the sentinel stored when a dish carries no
// spiciness options.
const SpicinessNotSpecified = "Not specified"

// LineItem is one customized dish slot in a cart. Two line items with the
// same equivalence key occupy the same slot and merge by quantity.
type LineItem struct {
	DishID         uuid.UUID        `json:"dish_id"`
	Name           string           `json:"name"`
	ImageURL       string           `json:"image_url,omitempty"`
	Vendor         catalog.Vendor   `json:"vendor"`
	BasePriceCents money.Cents      `json:"base_price_cents"`
	Quantity       int              `json:"quantity"`
	Spiciness      string           `json:"spiciness"`
	Toppings       []catalog.Option `json:"toppings,omitempty"`
	Extras         []catalog.Option `json:"extras,omitempty"`
	LineTotalCents money.Cents      `json:"line_total_cents"`
}

// UnitPriceCents is the per-unit price: base plus all selected add-ons.
func (li LineItem) UnitPriceCents() money.Cents {
	unit := li.BasePriceCents
	for _, topping := range li.Toppings {
		unit += topping.PriceCents
	}
	for _, extra := range li.Extras {
		unit += extra.PriceCents
	}
	return unit
}

// Key derives the equivalence key for slot matching: dish identity plus
// spiciness plus the selected add-on names. Names are sorted so the same
// selections made in a different order land in the same slot; the stored
// display order is untouched.
func (li LineItem) Key() string {
	parts := []string{
		li.DishID.String(),
		li.Spiciness,
		joinSortedNames(li.Toppings),
		joinSortedNames(li.Extras),
	}
	return strings.Join(parts, "|")
}

func joinSortedNames(options []catalog.Option) string {
	names := make([]string, 0, len(options))
	for _, opt := range options {
		names = append(names, opt.Name)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

func (li *LineItem) recomputeTotal() {
	li.LineTotalCents = li.UnitPriceCents().Mul(li.Quantity)
}

// Cart is the canonical persisted shape: a delivery zipcode and a flat,
// ordered list of line items. Vendor grouping is always derived.
type Cart struct {
	Zipcode string     `json:"zipcode,omitempty"`
	Items   []LineItem `json:"items"`
}

// IsEmpty reports whether the cart holds no line items.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalItems sums quantities across all line items.
func (c Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// VendorIDs returns the distinct vendors present, in first-seen order.
func (c Cart) VendorIDs() []uuid.UUID {
	seen := map[uuid.UUID]struct{}{}
	ids := make([]uuid.UUID, 0, len(c.Items))
	for _, item := range c.Items {
		if _, ok := seen[item.Vendor.ID]; ok {
			continue
		}
		seen[item.Vendor.ID] = struct{}{}
		ids = append(ids, item.Vendor.ID)
	}
	return ids
}

// mergeItem folds the new item into an existing slot with the same
// equivalence key, or appends it. Reports whether a merge happened and
// the resulting slot quantity.
func mergeItem(items []LineItem, newItem LineItem) ([]LineItem, bool, int) {
	key := newItem.Key()
	for i := range items {
		if items[i].Key() != key {
			continue
		}
		items[i].Quantity += newItem.Quantity
		items[i].recomputeTotal()
		return items, true, items[i].Quantity
	}
	return append(items, newItem), false, newItem.Quantity
}

// findItem returns the index of the slot with the given equivalence key.
func findItem(items []LineItem, key string) int {
	for i := range items {
		if items[i].Key() == key {
			return i
		}
	}
	return -1
}

// VendorGroup is the derived per-vendor view of a cart.
type VendorGroup struct {
	Vendor        catalog.Vendor
	Items         []LineItem
	SubtotalCents money.Cents
}

// GroupByVendor buckets line items by vendor, preserving the order in
// which vendors first appear in the cart. A vendor group exists only
// while it holds at least one line item.
func GroupByVendor(items []LineItem) []VendorGroup {
	byVendor := map[uuid.UUID]int{}
	groups := []VendorGroup{}
	for _, item := range items {
		idx, ok := byVendor[item.Vendor.ID]
		if !ok {
			idx = len(groups)
			byVendor[item.Vendor.ID] = idx
			groups = append(groups, VendorGroup{Vendor: item.Vendor})
		}
		groups[idx].Items = append(groups[idx].Items, item)
		groups[idx].SubtotalCents += item.LineTotalCents
	}
	return groups
}
