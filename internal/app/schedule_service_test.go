package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"hospital_duty_kiosk/internal/domain/document"
	"hospital_duty_kiosk/internal/domain/duty"
	"hospital_duty_kiosk/internal/domain/shift"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	extraction *mockExtraction
	decoder    *fakeDecoder
	duties     *memoryDutySnapshots
	shifts     *memoryShiftSnapshots
	metrics    *recordingMetrics
	service    *ScheduleService
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		extraction: &mockExtraction{},
		decoder:    &fakeDecoder{docs: map[string]*document.Document{"roster": rosterDocument()}},
		duties:     &memoryDutySnapshots{},
		shifts:     &memoryShiftSnapshots{},
		metrics:    &recordingMetrics{},
	}
	f.service = NewScheduleService(f.extraction, f.decoder, NewScheduleStore(), f.duties, f.shifts, f.metrics, testLogger())
	f.service.now = func() time.Time { return dutyDay }
	return f
}

func TestRefresh_LiveSavesSnapshot(t *testing.T) {
	f := newServiceFixture()
	f.extraction.On("Extract", mock.Anything, dutyDay).
		Return(DutyResult{Records: storeRecords(), Status: StatusFound, SourceLabel: "L"}).Once()

	report := f.service.Refresh(context.Background(), dutyDay)
	assert.Equal(t, OriginLive, report.Origin)
	assert.Equal(t, StatusFound, report.Status)
	assert.Equal(t, 4, report.Records)
	assert.NotEmpty(t, report.RunID)

	assert.Equal(t, 1, f.duties.saves)
	assert.Equal(t, storeRecords(), f.duties.snap.Records)
	assert.Equal(t, dutyDay, f.duties.snap.LastUpdate)
	assert.Equal(t, []Origin{OriginLive}, f.metrics.refreshes)
	f.extraction.AssertExpectations(t)
}

func TestRefresh_FallsBackToSnapshot(t *testing.T) {
	f := newServiceFixture()
	saved := dutyDay.Add(-24 * time.Hour)
	f.duties.snap = &DutySnapshot{LastUpdate: saved, Records: storeRecords()[:1]}
	f.extraction.On("Extract", mock.Anything, dutyDay).Return(DutyResult{Status: StatusUnavailable})

	report := f.service.Refresh(context.Background(), dutyDay)
	assert.Equal(t, OriginSnapshot, report.Origin)
	assert.Equal(t, StatusUnavailable, report.Status)
	assert.Equal(t, 1, report.Records)
	assert.Equal(t, 0, f.duties.saves)

	state := f.service.Store().DutyState()
	assert.Equal(t, saved, state.LastUpdate)
	assert.Equal(t, OriginSnapshot, state.Origin)
}

func TestRefresh_FallsBackToSample(t *testing.T) {
	f := newServiceFixture()
	f.extraction.On("Extract", mock.Anything, dutyDay).Return(DutyResult{Status: StatusNoSource})

	report := f.service.Refresh(context.Background(), dutyDay)
	assert.Equal(t, OriginSample, report.Origin)
	assert.Equal(t, len(sampleDuties), report.Records)
	for _, r := range f.service.Store().Duties() {
		assert.Equal(t, "2025-10-14", r.Date.String())
	}
	assert.Equal(t, 0, f.duties.saves)
}

func TestImportShifts(t *testing.T) {
	f := newServiceFixture()

	set, err := f.service.ImportShifts(context.Background(), []byte("roster"), dutyDay, false)
	require.NoError(t, err)
	assert.Equal(t, time.October, set.Month)
	assert.Equal(t, 1, f.shifts.saves)
	assert.NotNil(t, f.service.Store().ShiftFor(time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, []string{"imported"}, f.metrics.imports)
}

func TestImportShifts_PeriodMismatch(t *testing.T) {
	f := newServiceFixture()
	november := time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC)

	_, err := f.service.ImportShifts(context.Background(), []byte("roster"), november, false)
	require.ErrorIs(t, err, ErrPeriodMismatch)
	var mismatch *PeriodMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, time.October, mismatch.FoundMonth)
	assert.Equal(t, time.November, mismatch.ExpectedMonth)
	assert.Equal(t, 0, f.shifts.saves)
	assert.Nil(t, f.service.Store().Shifts())

	_, err = f.service.ImportShifts(context.Background(), []byte("roster"), november, true)
	require.NoError(t, err)
	assert.Equal(t, 1, f.shifts.saves)
}

func TestImportShifts_StructuralFailure(t *testing.T) {
	f := newServiceFixture()
	f.decoder.docs["bad"] = &document.Document{Paragraphs: []string{"Οκτώβριος 2025"}}

	_, err := f.service.ImportShifts(context.Background(), []byte("bad"), dutyDay, false)
	assert.ErrorIs(t, err, ErrParseFailure)
	assert.ErrorIs(t, err, ErrTooFewTables)

	f.decoder.err = errors.New("not a zip")
	_, err = f.service.ImportShifts(context.Background(), []byte("bad"), dutyDay, false)
	assert.ErrorIs(t, err, ErrParseFailure)
	assert.Equal(t, []string{"parse_error", "decode_error"}, f.metrics.imports)
}

func TestUpdateShift_PersistsAndRoundTrips(t *testing.T) {
	f := newServiceFixture()
	_, err := f.service.ImportShifts(context.Background(), []byte("roster"), dutyDay, false)
	require.NoError(t, err)

	d, err := f.service.UpdateShift(context.Background(), 1, shift.FieldAttendings, " A, B ,C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, d.Attendings)
	assert.Equal(t, 2, f.shifts.saves)

	_, err = f.service.UpdateShift(context.Background(), 30, shift.FieldMajorShift, "x")
	assert.ErrorIs(t, err, shift.ErrDayNotFound)
	assert.Equal(t, []string{"updated", "rejected"}, f.metrics.updates)

	// A fresh service sees the persisted roster.
	other := NewScheduleService(f.extraction, f.decoder, NewScheduleStore(), f.duties, f.shifts, nil, testLogger())
	current, err := other.LoadShiftSnapshot(dutyDay)
	require.NoError(t, err)
	assert.True(t, current)
	d1 := other.Store().ShiftFor(time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, d1)
	assert.Equal(t, []string{"A", "B", "C"}, d1.Attendings)

	stale, err := other.LoadShiftSnapshot(dutyDay.AddDate(0, 2, 0))
	require.NoError(t, err)
	assert.False(t, stale)
}

func TestLoadShiftSnapshot_Missing(t *testing.T) {
	f := newServiceFixture()
	_, err := f.service.LoadShiftSnapshot(dutyDay)
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestRestoreDutySnapshot(t *testing.T) {
	f := newServiceFixture()
	assert.ErrorIs(t, f.service.RestoreDutySnapshot(), ErrNoSnapshot)

	f.duties.snap = &DutySnapshot{Records: []duty.Record{{Name: "Χ"}}}
	require.NoError(t, f.service.RestoreDutySnapshot())
	assert.Equal(t, OriginSnapshot, f.service.Store().DutyState().Origin)
}
