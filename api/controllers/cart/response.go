package cart

import (
	cartsvc "github.com/dishpatch/dishpatch-backend/internal/cart"
	"github.com/dishpatch/dishpatch-backend/internal/catalog"
	"github.com/google/uuid"
)

// CartResponse is the hydrated cart view returned by every endpoint.
// Money travels both as integer cents and as a formatted string so
// clients never re-derive display values.
type CartResponse struct {
	Zipcode      string             `json:"zipcode,omitempty"`
	Items        []LineItemResponse `json:"items"`
	VendorGroups []VendorGroupView  `json:"vendor_groups"`
	Summary      SummaryResponse    `json:"summary"`
	Notice       *NoticeResponse    `json:"notice,omitempty"`
}

type LineItemResponse struct {
	ItemKey        string           `json:"item_key"`
	DishID         uuid.UUID        `json:"dish_id"`
	Name           string           `json:"name"`
	ImageURL       string           `json:"image_url,omitempty"`
	Quantity       int              `json:"quantity"`
	Spiciness      string           `json:"spiciness"`
	Toppings       []catalog.Option `json:"toppings,omitempty"`
	Extras         []catalog.Option `json:"extras,omitempty"`
	UnitPriceCents int64            `json:"unit_price_cents"`
	LineTotalCents int64            `json:"line_total_cents"`
	LineTotal      string           `json:"line_total"`
}

type VendorGroupView struct {
	Vendor        catalog.Vendor     `json:"vendor"`
	Items         []LineItemResponse `json:"items"`
	SubtotalCents int64              `json:"subtotal_cents"`
	Subtotal      string             `json:"subtotal"`
}

type SummaryResponse struct {
	TotalItems       int     `json:"total_items"`
	SubtotalCents    int64   `json:"subtotal_cents"`
	Subtotal         string  `json:"subtotal"`
	DeliveryFeeCents int64   `json:"delivery_fee_cents"`
	DeliveryFee      string  `json:"delivery_fee"`
	TaxPercent       float64 `json:"tax_percent"`
	TaxAmountCents   int64   `json:"tax_amount_cents"`
	TaxAmount        string  `json:"tax_amount"`
	TotalCents       int64   `json:"total_cents"`
	Total            string  `json:"total"`
}

// NoticeResponse carries the mutation message and any non-blocking
// persistence warning.
type NoticeResponse struct {
	Message string `json:"message,omitempty"`
	Warning string `json:"warning,omitempty"`
}

func newCartResponse(view cartsvc.View) CartResponse {
	items := make([]LineItemResponse, 0, len(view.Cart.Items))
	for _, item := range view.Cart.Items {
		items = append(items, newLineItemResponse(item))
	}

	groups := make([]VendorGroupView, 0, len(view.Groups))
	for _, group := range view.Groups {
		groupItems := make([]LineItemResponse, 0, len(group.Items))
		for _, item := range group.Items {
			groupItems = append(groupItems, newLineItemResponse(item))
		}
		groups = append(groups, VendorGroupView{
			Vendor:        group.Vendor,
			Items:         groupItems,
			SubtotalCents: int64(group.SubtotalCents),
			Subtotal:      group.SubtotalCents.String(),
		})
	}

	return CartResponse{
		Zipcode:      view.Cart.Zipcode,
		Items:        items,
		VendorGroups: groups,
		Summary:      newSummaryResponse(view.Summary),
	}
}

func newMutationResponse(result *cartsvc.MutationResult) CartResponse {
	response := newCartResponse(result.View)
	notice := &NoticeResponse{Message: result.Message}
	if result.PersistWarning != nil {
		notice.Warning = result.PersistWarning.Message()
	}
	response.Notice = notice
	return response
}

func newLineItemResponse(item cartsvc.LineItem) LineItemResponse {
	return LineItemResponse{
		ItemKey:        item.Key(),
		DishID:         item.DishID,
		Name:           item.Name,
		ImageURL:       item.ImageURL,
		Quantity:       item.Quantity,
		Spiciness:      item.Spiciness,
		Toppings:       item.Toppings,
		Extras:         item.Extras,
		UnitPriceCents: int64(item.UnitPriceCents()),
		LineTotalCents: int64(item.LineTotalCents),
		LineTotal:      item.LineTotalCents.String(),
	}
}

func newSummaryResponse(summary cartsvc.Summary) SummaryResponse {
	return SummaryResponse{
		TotalItems:       summary.TotalItems,
		SubtotalCents:    int64(summary.SubtotalCents),
		Subtotal:         summary.SubtotalCents.String(),
		DeliveryFeeCents: int64(summary.DeliveryFeeCents),
		DeliveryFee:      summary.DeliveryFeeCents.String(),
		TaxPercent:       summary.TaxPercent,
		TaxAmountCents:   int64(summary.TaxAmountCents),
		TaxAmount:        summary.TaxAmountCents.String(),
		TotalCents:       int64(summary.TotalCents),
		Total:            summary.TotalCents.String(),
	}
}
