package obs

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Scan outcomes recorded in CheckoutMetrics.Scans.
const (
	ScanResultOK      = "ok"
	ScanResultUnknown = "unknown_product"
)

// CheckoutMetrics groups Prometheus collectors for checkout sessions.
type CheckoutMetrics struct {
	Scans           *prometheus.CounterVec
	Discounts       *prometheus.CounterVec
	DiscountAmount  *prometheus.CounterVec
	// SurchargeAmount sums negative discounts, which only leniently validated
	// rules (BULK priced above unit price, XFORY with y > x) can produce.
	SurchargeAmount *prometheus.CounterVec
}

// NewCheckoutMetrics registers and returns checkout collectors. Registering the
// same namespace twice reuses the existing collectors.
func NewCheckoutMetrics(namespace string, reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &CheckoutMetrics{
		Scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Count of scanned product codes by outcome.",
		}, []string{"result"}),
		Discounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discounts_applied_total",
			Help:      "Count of non-zero discounts applied by rule kind.",
		}, []string{"kind"}),
		DiscountAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discount_amount_total",
			Help:      "Sum of positive discount amounts applied by rule kind.",
		}, []string{"kind"}),
		SurchargeAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "surcharge_amount_total",
			Help:      "Sum of absolute negative discount amounts applied by rule kind.",
		}, []string{"kind"}),
	}
	mustRegisterCounterVec(reg, &m.Scans)
	mustRegisterCounterVec(reg, &m.Discounts)
	mustRegisterCounterVec(reg, &m.DiscountAmount)
	mustRegisterCounterVec(reg, &m.SurchargeAmount)
	return m
}

// ObserveScan records a scan outcome.
func (m *CheckoutMetrics) ObserveScan(result string) {
	if m == nil {
		return
	}
	m.Scans.WithLabelValues(result).Inc()
}

// ObserveDiscount records an applied discount. Negative amounts are added to
// SurchargeAmount as their absolute value.
func (m *CheckoutMetrics) ObserveDiscount(kind string, amount float64) {
	if m == nil {
		return
	}
	m.Discounts.WithLabelValues(kind).Inc()
	switch {
	case amount > 0:
		m.DiscountAmount.WithLabelValues(kind).Add(amount)
	case amount < 0:
		m.SurchargeAmount.WithLabelValues(kind).Add(-amount)
	}
}

func mustRegisterCounterVec(reg prometheus.Registerer, counter **prometheus.CounterVec) {
	if err := reg.Register(*counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				*counter = existing
			}
			return
		}
		panic(fmt.Errorf("register counter: %w", err))
	}
}
