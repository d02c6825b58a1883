package app

// Metrics receives pipeline observations. Implementations must tolerate being nil.
type Metrics interface {
	ObserveRefresh(origin Origin, status DutyStatus)
	ObserveRefreshDuration(seconds float64)
	ObserveDutyRecords(n int)
	ObserveUnsupportedSource(format string)
	ObserveShiftImport(outcome string)
	ObserveShiftUpdate(field, outcome string)
}

type noopMetrics struct{}

func (noopMetrics) ObserveRefresh(Origin, DutyStatus) {}
func (noopMetrics) ObserveRefreshDuration(float64)    {}
func (noopMetrics) ObserveDutyRecords(int)            {}
func (noopMetrics) ObserveUnsupportedSource(string)   {}
func (noopMetrics) ObserveShiftImport(string)         {}
func (noopMetrics) ObserveShiftUpdate(string, string) {}

func metricsOrNoop(m Metrics) Metrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}
