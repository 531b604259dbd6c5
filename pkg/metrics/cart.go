package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart mutation outcomes and storage fallbacks.
type CartMetrics struct {
	mutations       *prometheus.CounterVec
	storageFailures *prometheus.CounterVec
	hydrateResets   prometheus.Counter
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	storageFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_storage_failures_total",
		Help: "Session store failures by kind (read/write).",
	}, []string{"kind"})
	hydrateResets := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_hydrate_resets_total",
		Help: "Carts reset to empty because the persisted payload was unreadable.",
	})
	reg.MustRegister(mutations, storageFailures, hydrateResets)
	return &CartMetrics{
		mutations:       mutations,
		storageFailures: storageFailures,
		hydrateResets:   hydrateResets,
	}
}

// IncMutation increments the counter for the named operation.
func (c *CartMetrics) IncMutation(op string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncStorageFailure increments the store failure counter for the given kind.
func (c *CartMetrics) IncStorageFailure(kind string) {
	if c == nil || c.storageFailures == nil {
		return
	}
	c.storageFailures.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncHydrateReset counts a fail-open reset during hydration.
func (c *CartMetrics) IncHydrateReset() {
	if c == nil || c.hydrateResets == nil {
		return
	}
	c.hydrateResets.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
