package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	dto "github.com/prometheus/client_model/go"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	m := NewHTTPMetrics()

	router := chi.NewRouter()
	router.Use(m.Middleware)
	router.Get("/api/v1/ads/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ads/abc-123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	mfs, err := m.registry.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	var found bool
	for _, mf := range mfs {
		if mf.GetName() != "crunchperks_http_requests_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			labels := labelMap(metric.GetLabel())
			if labels["path"] == "/api/v1/ads/{id}" && labels["status"] == "404" {
				found = true
				if metric.GetCounter().GetValue() != 1 {
					t.Fatalf("expected counter 1, got %f", metric.GetCounter().GetValue())
				}
			}
			if labels["path"] == "/api/v1/ads/abc-123" {
				t.Fatal("raw path leaked into metric labels")
			}
		}
	}
	if !found {
		t.Fatal("request counter not recorded with route pattern")
	}
}

func TestMetricsHandlerServesRegistry(t *testing.T) {
	m := NewHTTPMetrics()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics handler, got %d", rec.Code)
	}
}

func labelMap(labels []*dto.LabelPair) map[string]string {
	out := make(map[string]string, len(labels))
	for _, label := range labels {
		out[label.GetName()] = label.GetValue()
	}
	return out
}
