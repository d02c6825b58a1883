package app

import (
	"context"
	"io"
	"sync"
	"time"

	"hospital_duty_kiosk/internal/domain/document"
	"hospital_duty_kiosk/internal/domain/duty"
	"hospital_duty_kiosk/internal/domain/shift"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

type fakeLister struct {
	sources []duty.Source
	err     error
	since   time.Time
}

func (f *fakeLister) ListSources(_ context.Context, since time.Time) ([]duty.Source, error) {
	f.since = since
	return f.sources, f.err
}

type fakeFetcher struct {
	docs    map[string][]byte
	fetched []string
}

func (f *fakeFetcher) Fetch(_ context.Context, id string) ([]byte, error) {
	f.fetched = append(f.fetched, id)
	raw, ok := f.docs[id]
	if !ok {
		return nil, duty.ErrNotFound
	}
	return raw, nil
}

// fakeDecoder returns preset documents keyed by the raw bytes.
type fakeDecoder struct {
	docs map[string]*document.Document
	err  error
}

func (f *fakeDecoder) Decode(format document.Format, raw []byte) (*document.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	if format == document.FormatDOC {
		return nil, document.ErrUnsupportedFormat
	}
	return f.docs[string(raw)], nil
}

type mockExtraction struct {
	mock.Mock
}

func (m *mockExtraction) Extract(ctx context.Context, date time.Time) DutyResult {
	args := m.Called(ctx, date)
	return args.Get(0).(DutyResult)
}

type memoryDutySnapshots struct {
	mu    sync.Mutex
	snap  *DutySnapshot
	saves int
	err   error
}

func (m *memoryDutySnapshots) SaveDuties(snap DutySnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.snap = &snap
	return m.err
}

func (m *memoryDutySnapshots) LoadDuties() (DutySnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return DutySnapshot{}, ErrNoSnapshot
	}
	return *m.snap, nil
}

type memoryShiftSnapshots struct {
	set        *shift.MonthSet
	lastUpdate time.Time
	saves      int
}

func (m *memoryShiftSnapshots) SaveShifts(set *shift.MonthSet, lastUpdate time.Time) error {
	m.saves++
	m.set = set.Clone()
	m.lastUpdate = lastUpdate
	return nil
}

func (m *memoryShiftSnapshots) LoadShifts() (*shift.MonthSet, time.Time, error) {
	if m.set == nil {
		return nil, time.Time{}, ErrNoSnapshot
	}
	return m.set.Clone(), m.lastUpdate, nil
}

type recordingMetrics struct {
	noopMetrics
	refreshes   []Origin
	unsupported []string
	imports     []string
	updates     []string
}

func (r *recordingMetrics) ObserveRefresh(origin Origin, _ DutyStatus) {
	r.refreshes = append(r.refreshes, origin)
}

func (r *recordingMetrics) ObserveUnsupportedSource(format string) {
	r.unsupported = append(r.unsupported, format)
}

func (r *recordingMetrics) ObserveShiftImport(outcome string) {
	r.imports = append(r.imports, outcome)
}

func (r *recordingMetrics) ObserveShiftUpdate(_ string, outcome string) {
	r.updates = append(r.updates, outcome)
}
