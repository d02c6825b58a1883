package metrics

import (
	"hospital_duty_kiosk/internal/app"

	"github.com/prometheus/client_golang/prometheus"
)

// KioskMetrics exposes counters and gauges for the refresh pipeline and roster edits.
type KioskMetrics struct {
	refreshTotal     *prometheus.CounterVec
	refreshDuration  prometheus.Histogram
	dutyRecords      prometheus.Gauge
	unsupportedTotal *prometheus.CounterVec
	shiftImportTotal *prometheus.CounterVec
	shiftUpdateTotal *prometheus.CounterVec
}

func NewKioskMetrics(reg prometheus.Registerer) *KioskMetrics {
	m := &KioskMetrics{
		refreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kiosk",
			Subsystem: "duties",
			Name:      "refresh_total",
			Help:      "Duty refreshes by data origin and extraction status",
		}, []string{"origin", "status"}),
		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kiosk",
			Subsystem: "duties",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a duty refresh including download and parsing",
			Buckets:   prometheus.DefBuckets,
		}),
		dutyRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kiosk",
			Subsystem: "duties",
			Name:      "records",
			Help:      "Duty records currently served",
		}),
		unsupportedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kiosk",
			Subsystem: "duties",
			Name:      "unsupported_source_total",
			Help:      "Duty documents skipped because their format cannot be read",
		}, []string{"format"}),
		shiftImportTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kiosk",
			Subsystem: "shifts",
			Name:      "import_total",
			Help:      "Roster imports by outcome",
		}, []string{"outcome"}),
		shiftUpdateTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kiosk",
			Subsystem: "shifts",
			Name:      "update_total",
			Help:      "Manual roster corrections by field and outcome",
		}, []string{"field", "outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.refreshTotal, m.refreshDuration, m.dutyRecords, m.unsupportedTotal, m.shiftImportTotal, m.shiftUpdateTotal)
	return m
}

func (m *KioskMetrics) ObserveRefresh(origin app.Origin, status app.DutyStatus) {
	if m == nil {
		return
	}
	m.refreshTotal.WithLabelValues(string(origin), string(status)).Inc()
}

func (m *KioskMetrics) ObserveRefreshDuration(seconds float64) {
	if m == nil {
		return
	}
	m.refreshDuration.Observe(seconds)
}

func (m *KioskMetrics) ObserveDutyRecords(n int) {
	if m == nil {
		return
	}
	m.dutyRecords.Set(float64(n))
}

func (m *KioskMetrics) ObserveUnsupportedSource(format string) {
	if m == nil {
		return
	}
	m.unsupportedTotal.WithLabelValues(format).Inc()
}

func (m *KioskMetrics) ObserveShiftImport(outcome string) {
	if m == nil {
		return
	}
	m.shiftImportTotal.WithLabelValues(outcome).Inc()
}

func (m *KioskMetrics) ObserveShiftUpdate(field, outcome string) {
	if m == nil {
		return
	}
	m.shiftUpdateTotal.WithLabelValues(field, outcome).Inc()
}
