package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// チェックアウトの結果を数える。
// resultは success / insufficient_stock / empty_cart / error のいずれか。
type CheckoutMetrics struct {
	Checkouts *prometheus.CounterVec
}

func NewCheckoutMetrics() *CheckoutMetrics {
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shop",
		Subsystem: "orders",
		Name:      "checkouts_total",
		Help:      "Total number of checkout attempts by result.",
	}, []string{"result"})

	prometheus.MustRegister(checkouts)
	return &CheckoutMetrics{Checkouts: checkouts}
}

func (m *CheckoutMetrics) Observe(result string) {
	m.Checkouts.WithLabelValues(result).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
