package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodlog/internal/storage"
	"prodlog/internal/storage/memory"
)

func TestMetrics_DomainCounters(t *testing.T) {
	m := New()

	m.EntryCreated("Painting")
	m.EntryCreated("Painting")
	m.DetailAdded("NTSU", 12.5)
	m.InstructionCreated("Quality check")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.entries.WithLabelValues("Painting")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.details.WithLabelValues("NTSU")))
	assert.Equal(t, 12.5, testutil.ToFloat64(m.quantity.WithLabelValues("NTSU")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.instructions.WithLabelValues("Quality check")))
}

func TestMetrics_MiddlewareUsesRoutePattern(t *testing.T) {
	m := New()

	router := chi.NewRouter()
	router.Use(m.Middleware)
	router.Get("/api/production/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	router.Get("/metrics", m.Handler().ServeHTTP)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/production/7", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/production/{id}", http.MethodGet, "404")))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rr.Body)
	assert.Contains(t, string(body), "prodlog_http_requests_total")
}

func TestInstrumentStore(t *testing.T) {
	m := New()
	s := InstrumentStore(memory.New(), m)
	ctx := context.Background()

	e, err := s.CreateProductionEntry(ctx, storage.NewProductionEntry{UserID: 1, OperatorID: "1", Process: "Balancing", Station: "1", Time: "8pm"})
	require.NoError(t, err)
	_, err = s.AddProductionDetail(ctx, storage.NewProductionDetail{EntryID: e.ID, Model: "NTSX", Quantity: 3.5})
	require.NoError(t, err)
	_, err = s.CreateInstruction(ctx, storage.NewInstruction{UserID: 2, Type: "Slow down production", TargetProcess: storage.AllProcesses, TargetStation: storage.AllStations})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.entries.WithLabelValues("Balancing")))
	assert.Equal(t, 3.5, testutil.ToFloat64(m.quantity.WithLabelValues("NTSX")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.instructions.WithLabelValues("Slow down production")))

	got, err := s.GetProductionEntryByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, got.Details, 1)
}
