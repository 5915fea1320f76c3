package obs

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCheckoutMetricsRecordsObservations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCheckoutMetrics("test", reg)

	m.ObserveScan(ScanResultOK)
	m.ObserveScan(ScanResultOK)
	m.ObserveScan(ScanResultUnknown)
	m.ObserveDiscount("XFORY", 5)
	m.ObserveDiscount("BULK", 3)
	m.ObserveDiscount("BULK", 1)

	require.Equal(t, 2.0, testutil.ToFloat64(m.Scans.WithLabelValues(ScanResultOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Scans.WithLabelValues(ScanResultUnknown)))
	require.Equal(t, 2.0, testutil.ToFloat64(m.Discounts.WithLabelValues("BULK")))
	require.Equal(t, 4.0, testutil.ToFloat64(m.DiscountAmount.WithLabelValues("BULK")))
}

func TestCheckoutMetricsRecordsNegativeAmountsAsSurcharge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCheckoutMetrics("test", reg)

	m.ObserveDiscount("XFORY", -5)
	m.ObserveDiscount("XFORY", 2.5)

	require.Equal(t, 2.0, testutil.ToFloat64(m.Discounts.WithLabelValues("XFORY")))
	require.Equal(t, 2.5, testutil.ToFloat64(m.DiscountAmount.WithLabelValues("XFORY")))
	require.Equal(t, 5.0, testutil.ToFloat64(m.SurchargeAmount.WithLabelValues("XFORY")))
}

func TestCheckoutMetricsReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewCheckoutMetrics("test", reg)
	second := NewCheckoutMetrics("test", reg)

	second.ObserveScan(ScanResultOK)
	require.Equal(t, 1.0, testutil.ToFloat64(first.Scans.WithLabelValues(ScanResultOK)))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *CheckoutMetrics
	m.ObserveScan(ScanResultOK)
	m.ObserveDiscount("XFORY", 1)
}
