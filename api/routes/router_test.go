package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	professionalsvc "github.com/prodexlabs/prodex-backend/internal/professionals"
	"github.com/prodexlabs/prodex-backend/pkg/config"
	"github.com/prodexlabs/prodex-backend/pkg/logger"
	"github.com/prodexlabs/prodex-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubProfessionalService struct{}

func (stubProfessionalService) List(context.Context, string) ([]professionalsvc.ProfessionalDTO, error) {
	return []professionalsvc.ProfessionalDTO{}, nil
}

func (stubProfessionalService) Create(context.Context, json.RawMessage) (*professionalsvc.ProfessionalDTO, error) {
	return &professionalsvc.ProfessionalDTO{
		ID:       uuid.New(),
		FullName: "Ada Lovelace",
		Phone:    "+15550001111",
		Source:   "direct",
	}, nil
}

func (stubProfessionalService) BulkUpsert(context.Context, []json.RawMessage) (*professionalsvc.BatchResult, error) {
	return professionalsvc.NewBatchResult(), nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
	}
}

func newTestRouter(registry *prometheus.Registry) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		testConfig(),
		logg,
		stubPinger{},
		nil,
		registry,
		stubProfessionalService{},
	)
}

func TestHealthRoutes(t *testing.T) {
	router := newTestRouter(nil)

	live := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, live)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for live probe got %d", resp.Code)
	}

	ready := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, ready)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for ready probe got %d", resp.Code)
	}
}

func TestPingRouteSetsRequestID(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header to be minted")
	}
}

func TestMetricsRoute(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics.NewUpsertMetrics(registry)
	router := newTestRouter(registry)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "professionals_upsert_batch_duration_seconds") {
		t.Fatalf("expected upsert metrics exposed, got %s", resp.Body.String())
	}
}

func TestMetricsRouteAbsentWithoutRegistry(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestListProfessionalsRoute(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/professionals?source=direct", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"data":[]`) {
		t.Fatalf("expected empty list payload got %s", resp.Body.String())
	}
}

func TestCreateProfessionalRoute(t *testing.T) {
	router := newTestRouter(nil)

	payload := `{"full_name":"Ada Lovelace","phone":"+15550001111","source":"direct"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/professionals", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
}

func TestBulkUpsertRoute(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/professionals/bulk", strings.NewReader(`[]`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data professionalsvc.BatchResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Created == nil || envelope.Data.Updated == nil || envelope.Data.Errors == nil {
		t.Fatalf("expected all batch buckets in response")
	}
}

func TestBulkUpsertRouteRejectsNonList(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/professionals/bulk", strings.NewReader(`{"full_name":"Ada"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "expected a list of professional objects") {
		t.Fatalf("unexpected error payload %s", resp.Body.String())
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/companies", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
