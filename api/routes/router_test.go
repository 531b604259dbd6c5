package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	cartsvc "github.com/dishpatch/dishpatch-backend/internal/cart"
	"github.com/dishpatch/dishpatch-backend/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

type stubCartService struct {
	gotSession string
}

func (s *stubCartService) Hydrate(ctx context.Context, sessionID string) (*cartsvc.View, error) {
	s.gotSession = sessionID
	return &cartsvc.View{}, nil
}

func (s *stubCartService) AddItem(ctx context.Context, sessionID string, input cartsvc.AddItemInput) (*cartsvc.MutationResult, error) {
	return &cartsvc.MutationResult{}, nil
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, sessionID, itemKey string, delta int) (*cartsvc.MutationResult, error) {
	return &cartsvc.MutationResult{}, nil
}

func (s *stubCartService) RemoveItem(ctx context.Context, sessionID, itemKey string) (*cartsvc.MutationResult, error) {
	return &cartsvc.MutationResult{}, nil
}

func (s *stubCartService) Clear(ctx context.Context, sessionID string) (*cartsvc.MutationResult, error) {
	return &cartsvc.MutationResult{}, nil
}

func (s *stubCartService) InvalidateForLocationChange(ctx context.Context, sessionID, zipcode string) (*cartsvc.MutationResult, error) {
	return &cartsvc.MutationResult{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
	}
}

func TestHealthLiveRoute(t *testing.T) {
	router := NewRouter(testConfig(), nil, stubPinger{}, &stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("X-Dishpatch-Env"); got != "test" {
		t.Fatalf("unexpected env header %q", got)
	}
}

func TestHealthReadyReportsRedis(t *testing.T) {
	router := NewRouter(testConfig(), nil, stubPinger{}, &stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data["redis"] != "ok" {
		t.Fatalf("unexpected readiness payload %+v", envelope.Data)
	}
}

func TestMetricsRouteServesRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	router := NewRouter(testConfig(), nil, stubPinger{}, &stubCartService{}, registry)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestCartRouteExtractsSessionHeader(t *testing.T) {
	svc := &stubCartService{}
	router := NewRouter(testConfig(), nil, stubPinger{}, svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Session-Id", "session-42")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotSession != "session-42" {
		t.Fatalf("unexpected session %q", svc.gotSession)
	}
}

func TestCartRouteRejectsMissingSession(t *testing.T) {
	router := NewRouter(testConfig(), nil, stubPinger{}, &stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
