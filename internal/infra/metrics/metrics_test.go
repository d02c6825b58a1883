package metrics

import (
	"testing"

	"hospital_duty_kiosk/internal/app"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestKioskMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewKioskMetrics(reg)

	m.ObserveRefresh(app.OriginLive, app.StatusFound)
	m.ObserveRefresh(app.OriginLive, app.StatusFound)
	m.ObserveRefresh(app.OriginSample, app.StatusNoSource)
	m.ObserveRefreshDuration(0.4)
	m.ObserveDutyRecords(42)
	m.ObserveUnsupportedSource("doc")
	m.ObserveShiftImport("imported")
	m.ObserveShiftUpdate("major_shift", "updated")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.refreshTotal.WithLabelValues("live", "found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshTotal.WithLabelValues("sample", "no_source")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.dutyRecords))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.unsupportedTotal.WithLabelValues("doc")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.shiftUpdateTotal.WithLabelValues("major_shift", "updated")))
	assert.Equal(t, 6, testutil.CollectAndCount(reg, "kiosk_duties_refresh_total", "kiosk_duties_records",
		"kiosk_duties_unsupported_source_total", "kiosk_shifts_import_total", "kiosk_shifts_update_total"))
}

func TestKioskMetricsImplementsAppMetrics(t *testing.T) {
	var _ app.Metrics = NewKioskMetrics(prometheus.NewRegistry())
}

func TestKioskMetricsNilSafe(t *testing.T) {
	var m *KioskMetrics
	m.ObserveRefresh(app.OriginLive, app.StatusFound)
	m.ObserveRefreshDuration(1)
	m.ObserveDutyRecords(1)
	m.ObserveUnsupportedSource("doc")
	m.ObserveShiftImport("imported")
	m.ObserveShiftUpdate("field", "updated")
}
