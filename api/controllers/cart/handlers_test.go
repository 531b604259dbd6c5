package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dishpatch/dishpatch-backend/api/middleware"
	cartsvc "github.com/dishpatch/dishpatch-backend/internal/cart"
	"github.com/dishpatch/dishpatch-backend/internal/catalog"
	pkgerrors "github.com/dishpatch/dishpatch-backend/pkg/errors"
	"github.com/dishpatch/dishpatch-backend/pkg/money"
	"github.com/google/uuid"
)

type stubCartService struct {
	view   *cartsvc.View
	result *cartsvc.MutationResult
	err    error

	gotSession string
	gotInput   cartsvc.AddItemInput
	gotKey     string
	gotDelta   int
	gotZipcode string
}

func (s *stubCartService) Hydrate(ctx context.Context, sessionID string) (*cartsvc.View, error) {
	s.gotSession = sessionID
	return s.view, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, sessionID string, input cartsvc.AddItemInput) (*cartsvc.MutationResult, error) {
	s.gotSession = sessionID
	s.gotInput = input
	return s.result, s.err
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, sessionID, itemKey string, delta int) (*cartsvc.MutationResult, error) {
	s.gotSession = sessionID
	s.gotKey = itemKey
	s.gotDelta = delta
	return s.result, s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, sessionID, itemKey string) (*cartsvc.MutationResult, error) {
	s.gotSession = sessionID
	s.gotKey = itemKey
	return s.result, s.err
}

func (s *stubCartService) Clear(ctx context.Context, sessionID string) (*cartsvc.MutationResult, error) {
	s.gotSession = sessionID
	return s.result, s.err
}

func (s *stubCartService) InvalidateForLocationChange(ctx context.Context, sessionID, zipcode string) (*cartsvc.MutationResult, error) {
	s.gotSession = sessionID
	s.gotZipcode = zipcode
	return s.result, s.err
}

func fixtureView(t *testing.T) cartsvc.View {
	t.Helper()
	dish := &catalog.Dish{
		ID:               uuid.New(),
		Name:             "Margherita Pizza",
		BasePriceCents:   1000,
		SpicinessOptions: []string{"Mild", "Hot"},
		Toppings: []catalog.Option{
			{Name: "Extra Cheese", PriceCents: 150},
		},
		Vendor: catalog.Vendor{ID: uuid.New(), Name: "Luigi's"},
	}
	item, err := cartsvc.BuildLineItem(dish, cartsvc.Selection{
		Quantity:  2,
		Spiciness: "Mild",
		Toppings:  []string{"Extra Cheese"},
	})
	if err != nil {
		t.Fatalf("build line item: %v", err)
	}
	items := []cartsvc.LineItem{item}
	return cartsvc.View{
		Cart:    cartsvc.Cart{Zipcode: "10001", Items: items},
		Groups:  cartsvc.GroupByVendor(items),
		Summary: cartsvc.Summarize(items, money.Cents(500), 10),
	}
}

func withSession(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithSessionID(req.Context(), "session-1"))
}

func TestHydrateSuccess(t *testing.T) {
	view := fixtureView(t)
	svc := &stubCartService{view: &view}
	handler := Hydrate(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotSession != "session-1" {
		t.Fatalf("unexpected session %q", svc.gotSession)
	}

	var envelope struct {
		Data CartResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Zipcode != "10001" {
		t.Fatalf("unexpected zipcode %q", envelope.Data.Zipcode)
	}
	if len(envelope.Data.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(envelope.Data.Items))
	}
	got := envelope.Data.Items[0]
	if got.ItemKey == "" {
		t.Fatal("expected item_key to be populated")
	}
	if got.LineTotalCents != 2300 || got.LineTotal != "23.00" {
		t.Fatalf("unexpected line total %d %q", got.LineTotalCents, got.LineTotal)
	}
	// 2300 + 500 fee + 10% tax on 2300
	if envelope.Data.Summary.TotalCents != 3030 || envelope.Data.Summary.Total != "30.30" {
		t.Fatalf("unexpected summary total %d %q", envelope.Data.Summary.TotalCents, envelope.Data.Summary.Total)
	}
	if len(envelope.Data.VendorGroups) != 1 || envelope.Data.VendorGroups[0].Vendor.Name != "Luigi's" {
		t.Fatalf("unexpected vendor groups %+v", envelope.Data.VendorGroups)
	}
}

func TestHydrateMissingSession(t *testing.T) {
	handler := Hydrate(&stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAddItemSuccess(t *testing.T) {
	view := fixtureView(t)
	svc := &stubCartService{result: &cartsvc.MutationResult{
		View:    view,
		Op:      "add_item",
		Message: "Margherita Pizza added to cart",
	}}
	handler := AddItem(svc, nil)

	dishID := uuid.New()
	body := `{"dish_id":"` + dishID.String() + `","quantity":2,"spiciness":"Mild","toppings":["Extra Cheese"]}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.gotInput.DishID != dishID || svc.gotInput.Quantity != 2 {
		t.Fatalf("unexpected input %+v", svc.gotInput)
	}

	var envelope struct {
		Data CartResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Notice == nil || envelope.Data.Notice.Message != "Margherita Pizza added to cart" {
		t.Fatalf("unexpected notice %+v", envelope.Data.Notice)
	}
}

func TestAddItemRejectsInvalidBody(t *testing.T) {
	handler := AddItem(&stubCartService{}, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"quantity":0}`)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestUpdateQuantityPassesDelta(t *testing.T) {
	view := fixtureView(t)
	svc := &stubCartService{result: &cartsvc.MutationResult{View: view, Message: "Margherita Pizza quantity set to 1"}}
	handler := UpdateQuantity(svc, nil)

	body := `{"item_key":"abc","delta":-1}`
	req := withSession(httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotKey != "abc" || svc.gotDelta != -1 {
		t.Fatalf("unexpected args %q %d", svc.gotKey, svc.gotDelta)
	}
}

func TestRemoveItemNotFound(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "item is not in the cart")}
	handler := RemoveItem(svc, nil)

	body := `{"item_key":"missing"}`
	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeNotFound) {
		t.Fatalf("unexpected error code %q", envelope.Error.Code)
	}
	if envelope.Error.Message != "item is not in the cart" {
		t.Fatalf("unexpected error message %q", envelope.Error.Message)
	}
}

func TestMutationSurfacesPersistWarning(t *testing.T) {
	view := fixtureView(t)
	svc := &stubCartService{result: &cartsvc.MutationResult{
		View:           view,
		Message:        "cart cleared",
		PersistWarning: pkgerrors.New(pkgerrors.CodeStorageWrite, "cart changes may not be saved"),
	}}
	handler := Clear(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data CartResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Notice == nil || envelope.Data.Notice.Warning != "cart changes may not be saved" {
		t.Fatalf("expected persist warning, got %+v", envelope.Data.Notice)
	}
}

func TestSetLocationPassesZipcode(t *testing.T) {
	view := fixtureView(t)
	svc := &stubCartService{result: &cartsvc.MutationResult{View: view, Message: "cart cleared for new delivery location"}}
	handler := SetLocation(svc, nil)

	body := `{"zipcode":"94103"}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/location", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotZipcode != "94103" {
		t.Fatalf("unexpected zipcode %q", svc.gotZipcode)
	}
}
