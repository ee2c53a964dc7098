package metrics

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requests     *prometheus.CounterVec
	entries      *prometheus.CounterVec
	details      *prometheus.CounterVec
	quantity     *prometheus.CounterVec
	instructions *prometheus.CounterVec
}

// New регистрирует счетчики в собственном реестре, чтобы тесты не конфликтовали
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prodlog",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		entries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prodlog",
			Name:      "production_entries_total",
			Help:      "Created production entries by process.",
		}, []string{"process"}),
		details: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prodlog",
			Name:      "production_details_total",
			Help:      "Attached production details by model.",
		}, []string{"model"}),
		quantity: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prodlog",
			Name:      "production_quantity_total",
			Help:      "Reported output quantity by model.",
		}, []string{"model"}),
		instructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prodlog",
			Name:      "instructions_total",
			Help:      "Created instructions by type.",
		}, []string{"type"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.entries,
		m.details,
		m.quantity,
		m.instructions,
		collectors.NewGoCollector(),
	)

	return m
}

func (m *Metrics) EntryCreated(process string) {
	m.entries.WithLabelValues(process).Inc()
}

func (m *Metrics) DetailAdded(model string, quantity float64) {
	m.details.WithLabelValues(model).Inc()
	m.quantity.WithLabelValues(model).Add(quantity)
}

func (m *Metrics) InstructionCreated(typ string) {
	m.instructions.WithLabelValues(typ).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware считает запросы по шаблону маршрута chi, а не по сырому пути
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
	})
}
