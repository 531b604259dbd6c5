package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/dishpatch/dishpatch-backend/internal/catalog"
	"github.com/dishpatch/dishpatch-backend/internal/notifications"
	pkgerrors "github.com/dishpatch/dishpatch-backend/pkg/errors"
	"github.com/dishpatch/dishpatch-backend/pkg/logger"
	"github.com/dishpatch/dishpatch-backend/pkg/metrics"
	"github.com/dishpatch/dishpatch-backend/pkg/money"
	"github.com/google/uuid"
)

// Operation labels used for metrics and notification events.
const (
	OpHydrate    = "hydrate"
	OpAddItem    = "add_item"
	OpUpdateQty  = "update_quantity"
	OpRemoveItem = "remove_item"
	OpClear      = "clear"
	OpInvalidate = "invalidate_location"
)

type dishLoader interface {
	GetDish(ctx context.Context, id uuid.UUID) (*catalog.Dish, error)
}

type pricingProvider interface {
	TaxPercent() float64
	DeliveryFee(vendorID uuid.UUID) money.Cents
}

// Service exposes the cart aggregation operations. All mutations are
// serialized per session; the persisted envelope is rewritten after every
// successful mutation.
type Service interface {
	Hydrate(ctx context.Context, sessionID string) (*View, error)
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (*MutationResult, error)
	UpdateQuantity(ctx context.Context, sessionID, itemKey string, delta int) (*MutationResult, error)
	RemoveItem(ctx context.Context, sessionID, itemKey string) (*MutationResult, error)
	Clear(ctx context.Context, sessionID string) (*MutationResult, error)
	InvalidateForLocationChange(ctx context.Context, sessionID, zipcode string) (*MutationResult, error)
}

// AddItemInput names a dish and the customization to build a line item from.
type AddItemInput struct {
	DishID    uuid.UUID
	Quantity  int
	Spiciness string
	Toppings  []string
	Extras    []string
}

// View is a cart plus everything derived from it.
type View struct {
	Cart    Cart
	Groups  []VendorGroup
	Summary Summary
}

// MutationResult reports a completed mutation: the new view, what changed,
// and a human-readable message for the notification channel. PersistWarning
// is set when the mutation applied in memory but could not be saved.
type MutationResult struct {
	View           View
	Op             string
	ItemName       string
	Quantity       int
	Merged         bool
	Message        string
	PersistWarning *pkgerrors.Error
}

// ServiceParams carries the collaborators a cart service is built from.
// Sink, Logger and Metrics are optional.
type ServiceParams struct {
	Store   Store
	Dishes  dishLoader
	Pricing pricingProvider
	Sink    notifications.Sink
	Logger  *logger.Logger
	Metrics *metrics.CartMetrics
	MaxQty  int
}

type service struct {
	store   Store
	dishes  dishLoader
	pricing pricingProvider
	sink    notifications.Sink
	logg    *logger.Logger
	metrics *metrics.CartMetrics
	maxQty  int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService builds a cart service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Dishes == nil {
		return nil, fmt.Errorf("dish loader required")
	}
	if params.Pricing == nil {
		return nil, fmt.Errorf("pricing provider required")
	}
	maxQty := params.MaxQty
	if maxQty < 1 {
		maxQty = 99
	}
	return &service{
		store:   params.Store,
		dishes:  params.Dishes,
		pricing: params.Pricing,
		sink:    params.Sink,
		logg:    params.Logger,
		metrics: params.Metrics,
		maxQty:  maxQty,
		locks:   map[string]*sync.Mutex{},
	}, nil
}

// Hydrate restores the persisted cart for the session. Unreadable
// payloads fall open to an empty cart; corruption never blocks the
// session from reaching a usable state.
func (s *service) Hydrate(ctx context.Context, sessionID string) (*View, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	unlock := s.lockSession(sessionID)
	cart := s.loadFailOpen(ctx, sessionID)
	unlock()

	view := s.buildView(cart)
	s.metrics.IncMutation(OpHydrate)
	return &view, nil
}

// AddItem builds a line item from the dish and selection, then merges it
// into the session cart. An equivalence-key match bumps the existing
// slot's quantity; otherwise the item is appended.
func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*MutationResult, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if input.DishID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dish id is required")
	}

	dish, err := s.dishes.GetDish(ctx, input.DishID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dish")
	}

	item, err := BuildLineItem(dish, Selection{
		Quantity:  clampQuantity(input.Quantity, s.maxQty),
		Spiciness: input.Spiciness,
		Toppings:  input.Toppings,
		Extras:    input.Extras,
	})
	if err != nil {
		return nil, err
	}

	unlock := s.lockSession(sessionID)
	cart := s.loadFailOpen(ctx, sessionID)

	items, merged, slotQty := mergeItem(cart.Items, item)
	if slotQty > s.maxQty {
		idx := findItem(items, item.Key())
		items[idx].Quantity = s.maxQty
		items[idx].recomputeTotal()
		slotQty = s.maxQty
	}
	cart.Items = items

	warning := s.persist(ctx, sessionID, cart)
	unlock()

	result := &MutationResult{
		View:           s.buildView(cart),
		Op:             OpAddItem,
		ItemName:       item.Name,
		Quantity:       slotQty,
		Merged:         merged,
		Message:        fmt.Sprintf("%s added to cart", item.Name),
		PersistWarning: warning,
	}
	s.finish(ctx, sessionID, result)
	return result, nil
}

// UpdateQuantity adjusts the matched slot's quantity by delta, floored at
// 1. Dropping an item is an explicit removal, never a quantity update.
func (s *service) UpdateQuantity(ctx context.Context, sessionID, itemKey string, delta int) (*MutationResult, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if itemKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item key is required")
	}

	unlock := s.lockSession(sessionID)
	cart := s.loadFailOpen(ctx, sessionID)

	if cart.IsEmpty() {
		unlock()
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart has no items to update")
	}
	idx := findItem(cart.Items, itemKey)
	if idx < 0 {
		unlock()
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}

	quantity := clampQuantity(cart.Items[idx].Quantity+delta, s.maxQty)
	cart.Items[idx].Quantity = quantity
	cart.Items[idx].recomputeTotal()
	name := cart.Items[idx].Name

	warning := s.persist(ctx, sessionID, cart)
	unlock()

	result := &MutationResult{
		View:           s.buildView(cart),
		Op:             OpUpdateQty,
		ItemName:       name,
		Quantity:       quantity,
		Message:        fmt.Sprintf("%s quantity set to %d", name, quantity),
		PersistWarning: warning,
	}
	s.finish(ctx, sessionID, result)
	return result, nil
}

// RemoveItem drops the slot with the exact equivalence key. Other
// customization variants of the same dish are untouched; an emptied
// vendor group disappears from the derived view.
func (s *service) RemoveItem(ctx context.Context, sessionID, itemKey string) (*MutationResult, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if itemKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item key is required")
	}

	unlock := s.lockSession(sessionID)
	cart := s.loadFailOpen(ctx, sessionID)

	if cart.IsEmpty() {
		unlock()
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart has no items to remove")
	}
	idx := findItem(cart.Items, itemKey)
	if idx < 0 {
		unlock()
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}

	name := cart.Items[idx].Name
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

	warning := s.persist(ctx, sessionID, cart)
	unlock()

	result := &MutationResult{
		View:           s.buildView(cart),
		Op:             OpRemoveItem,
		ItemName:       name,
		Message:        fmt.Sprintf("%s removed from cart", name),
		PersistWarning: warning,
	}
	s.finish(ctx, sessionID, result)
	return result, nil
}

// Clear resets the session cart. Clearing an already-empty cart is
// reported, not rejected.
func (s *service) Clear(ctx context.Context, sessionID string) (*MutationResult, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	unlock := s.lockSession(sessionID)
	cart := s.loadFailOpen(ctx, sessionID)

	message := "cart cleared"
	if cart.IsEmpty() {
		message = "cart is already empty"
	}
	cart.Items = nil

	warning := s.persist(ctx, sessionID, cart)
	unlock()

	result := &MutationResult{
		View:           s.buildView(cart),
		Op:             OpClear,
		Message:        message,
		PersistWarning: warning,
	}
	s.finish(ctx, sessionID, result)
	return result, nil
}

// InvalidateForLocationChange scopes the cart to the new delivery
// zipcode. Vendor availability is location-dependent, so a zipcode
// change empties the cart; the same zipcode is a no-op.
func (s *service) InvalidateForLocationChange(ctx context.Context, sessionID, zipcode string) (*MutationResult, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if zipcode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "zipcode is required")
	}

	unlock := s.lockSession(sessionID)
	cart := s.loadFailOpen(ctx, sessionID)

	if cart.Zipcode == zipcode {
		unlock()
		view := s.buildView(cart)
		return &MutationResult{
			View:    view,
			Op:      OpInvalidate,
			Message: "delivery location unchanged",
		}, nil
	}

	cart.Zipcode = zipcode
	cart.Items = nil

	warning := s.persist(ctx, sessionID, cart)
	unlock()

	result := &MutationResult{
		View:           s.buildView(cart),
		Op:             OpInvalidate,
		Message:        "cart cleared for new delivery location",
		PersistWarning: warning,
	}
	s.finish(ctx, sessionID, result)
	return result, nil
}

// loadFailOpen hydrates the session cart, resetting to empty when the
// persisted payload is unreadable. The broken payload is left in place;
// the next successful mutation overwrites it.
func (s *service) loadFailOpen(ctx context.Context, sessionID string) Cart {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if s.logg != nil {
			ctx = s.logg.WithSessionID(ctx, sessionID)
			s.logg.Warn(ctx, "persisted cart unreadable, starting empty")
		}
		s.metrics.IncStorageFailure("read")
		s.metrics.IncHydrateReset()
		return Cart{}
	}
	return cart
}

// persist writes the mutated cart. A write failure never rolls back the
// in-memory mutation; it is surfaced as a non-blocking warning.
func (s *service) persist(ctx context.Context, sessionID string, cart Cart) *pkgerrors.Error {
	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		if s.logg != nil {
			ctx = s.logg.WithSessionID(ctx, sessionID)
			s.logg.Error(ctx, "failed to persist cart", err)
		}
		s.metrics.IncStorageFailure("write")
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeStorageWrite, err, "persist cart")
	}
	return nil
}

func (s *service) buildView(cart Cart) View {
	var fee money.Cents
	for _, vendorID := range cart.VendorIDs() {
		fee += s.pricing.DeliveryFee(vendorID)
	}
	return View{
		Cart:    cart,
		Groups:  GroupByVendor(cart.Items),
		Summary: Summarize(cart.Items, fee, s.pricing.TaxPercent()),
	}
}

// finish records metrics and dispatches the notification event. The sink
// runs after the session lock is released, so a callback that mutates the
// cart re-enters through the front door instead of mid-update.
func (s *service) finish(ctx context.Context, sessionID string, result *MutationResult) {
	s.metrics.IncMutation(result.Op)
	if s.sink == nil || result.Message == "" {
		return
	}
	s.sink.Notify(ctx, notifications.Event{
		SessionID: sessionID,
		Op:        result.Op,
		Message:   result.Message,
	})
}

func (s *service) lockSession(sessionID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	s.mu.Unlock()
	lock.Lock()
	return lock.Unlock
}

func clampQuantity(quantity, maxQty int) int {
	if quantity < 1 {
		return 1
	}
	if quantity > maxQty {
		return maxQty
	}
	return quantity
}
