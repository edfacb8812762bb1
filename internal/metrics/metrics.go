// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CartMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mithila_bazaar",
		Name:      "cart_mutations_total",
		Help:      "Cart mutations by operation.",
	}, []string{"op"})

	OrdersSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mithila_bazaar",
		Name:      "orders_submitted_total",
		Help:      "Order submissions by dispatch path and result.",
	}, []string{"dispatcher", "result"})

	CatalogFetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mithila_bazaar",
		Name:      "catalog_fetch_errors_total",
		Help:      "Failed catalog fetches by resource.",
	}, []string{"resource"})

	ProductImports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mithila_bazaar",
		Name:      "product_imports_total",
		Help:      "Admin product imports by format and result.",
	}, []string{"format", "result"})

	Visitors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mithila_bazaar",
		Name:      "visitors_total",
		Help:      "Unique visitor sessions counted per day.",
	})
)
