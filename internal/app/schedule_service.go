package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hospital_duty_kiosk/internal/domain/document"
	"hospital_duty_kiosk/internal/domain/duty"
	"hospital_duty_kiosk/internal/domain/shift"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrNoShifts = fmt.Errorf("no shift roster loaded")
var ErrNoSnapshot = fmt.Errorf("snapshot file not found")
var ErrPeriodMismatch = fmt.Errorf("roster period differs from the expected month")

// PeriodMismatchError carries the roster period and the period the caller expected.
type PeriodMismatchError struct {
	FoundMonth    time.Month
	FoundYear     int
	ExpectedMonth time.Month
	ExpectedYear  int
}

func (e *PeriodMismatchError) Error() string {
	return fmt.Sprintf("%s: found %d/%d, expected %d/%d",
		ErrPeriodMismatch, int(e.FoundMonth), e.FoundYear, int(e.ExpectedMonth), e.ExpectedYear)
}

func (e *PeriodMismatchError) Unwrap() error { return ErrPeriodMismatch }

// DutyExtraction is the live source of duty records.
type DutyExtraction interface {
	Extract(ctx context.Context, date time.Time) DutyResult
}

// DutySnapshotRepository persists the last good duty records.
type DutySnapshotRepository interface {
	SaveDuties(snap DutySnapshot) error
	LoadDuties() (DutySnapshot, error)
}

// ShiftSnapshotRepository persists the current roster.
type ShiftSnapshotRepository interface {
	SaveShifts(set *shift.MonthSet, lastUpdate time.Time) error
	LoadShifts() (*shift.MonthSet, time.Time, error)
}

// RefreshReport summarizes one refresh run.
type RefreshReport struct {
	RunID       string
	Date        duty.Date
	Origin      Origin
	Status      DutyStatus
	SourceLabel string
	Records     int
}

// ScheduleService owns the refresh and fallback policy and the roster workflow.
type ScheduleService struct {
	extractor      DutyExtraction
	shiftExtractor *ShiftExtractor
	decoder        document.Decoder
	store          *ScheduleStore
	dutySnapshots  DutySnapshotRepository
	shiftSnapshots ShiftSnapshotRepository
	metrics        Metrics
	logger         *logrus.Entry
	now            func() time.Time

	refreshMu sync.Mutex
}

func NewScheduleService(
	extractor DutyExtraction,
	decoder document.Decoder,
	store *ScheduleStore,
	dutySnapshots DutySnapshotRepository,
	shiftSnapshots ShiftSnapshotRepository,
	metrics Metrics,
	logger *logrus.Entry,
) *ScheduleService {
	return &ScheduleService{
		extractor:      extractor,
		shiftExtractor: NewShiftExtractor(),
		decoder:        decoder,
		store:          store,
		dutySnapshots:  dutySnapshots,
		shiftSnapshots: shiftSnapshots,
		metrics:        metricsOrNoop(metrics),
		logger:         logger,
		now:            time.Now,
	}
}

// Store exposes the store the service writes to.
func (s *ScheduleService) Store() *ScheduleStore { return s.store }

// Refresh loads the records for date: live extraction first, then the last
// snapshot, then the sample dataset. Only one refresh runs at a time.
func (s *ScheduleService) Refresh(ctx context.Context, date time.Time) RefreshReport {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	started := s.now()
	report := RefreshReport{RunID: uuid.NewString(), Date: duty.DateOf(date)}
	log := s.logger.WithFields(logrus.Fields{"run_id": report.RunID, "date": report.Date.String()})
	log.Info("Refreshing duty schedule")

	result := s.extractor.Extract(ctx, date)
	report.Status = result.Status
	report.SourceLabel = result.SourceLabel

	switch {
	case len(result.Records) > 0:
		report.Origin = OriginLive
		s.store.ReplaceDuties(result.Records, started, OriginLive, result.Status, result.SourceLabel)
		if err := s.dutySnapshots.SaveDuties(s.store.DutySnapshot()); err != nil {
			log.WithError(err).Error("Failed to save duty snapshot")
		}
	default:
		snap, err := s.dutySnapshots.LoadDuties()
		if err == nil && len(snap.Records) > 0 {
			report.Origin = OriginSnapshot
			s.store.ReplaceDuties(snap.Records, snap.LastUpdate, OriginSnapshot, result.Status, result.SourceLabel)
			log.WithFields(logrus.Fields{"status": result.Status, "snapshot_time": snap.LastUpdate}).
				Warn("Live extraction produced no records, serving last snapshot")
			break
		}
		if err != nil && !errors.Is(err, ErrNoSnapshot) {
			log.WithError(err).Warn("Could not read duty snapshot")
		}
		report.Origin = OriginSample
		s.store.ReplaceDuties(SampleDuties(report.Date), started, OriginSample, result.Status, result.SourceLabel)
		log.WithField("status", result.Status).Warn("No live or snapshot data, serving sample data")
	}

	report.Records = len(s.store.Duties())
	s.metrics.ObserveRefresh(report.Origin, report.Status)
	s.metrics.ObserveDutyRecords(report.Records)
	s.metrics.ObserveRefreshDuration(s.now().Sub(started).Seconds())
	log.WithFields(logrus.Fields{
		"origin":  report.Origin,
		"status":  report.Status,
		"records": report.Records,
	}).Info("Duty schedule refreshed")
	return report
}

// RestoreDutySnapshot loads the duty snapshot into the store without fetching.
func (s *ScheduleService) RestoreDutySnapshot() error {
	snap, err := s.dutySnapshots.LoadDuties()
	if err != nil {
		return err
	}
	s.store.RestoreDuties(snap)
	return nil
}

// ImportShifts decodes a DOCX roster and installs it. A roster for a month
// other than expected is refused with a *PeriodMismatchError unless confirm is set.
func (s *ScheduleService) ImportShifts(ctx context.Context, raw []byte, expected time.Time, confirm bool) (*shift.MonthSet, error) {
	log := s.logger.WithField("operation", "import_shifts")

	doc, err := s.decoder.Decode(document.FormatDOCX, raw)
	if err != nil {
		s.metrics.ObserveShiftImport("decode_error")
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}
	set, err := s.shiftExtractor.Extract(doc)
	if err != nil {
		s.metrics.ObserveShiftImport("parse_error")
		log.WithError(err).Warn("Roster document rejected")
		return nil, err
	}

	if !set.ValidateMonthYear(expected.Month(), expected.Year()) {
		mismatch := &PeriodMismatchError{
			FoundMonth: set.Month, FoundYear: set.Year,
			ExpectedMonth: expected.Month(), ExpectedYear: expected.Year(),
		}
		if !confirm {
			s.metrics.ObserveShiftImport("period_mismatch")
			log.WithError(mismatch).Warn("Roster period mismatch, confirmation required")
			return set, mismatch
		}
		log.WithError(mismatch).Warn("Importing roster for another month after confirmation")
	}

	s.store.ReplaceShifts(set)
	if err := s.shiftSnapshots.SaveShifts(set, s.now()); err != nil {
		log.WithError(err).Error("Failed to save shift snapshot")
	}
	s.metrics.ObserveShiftImport("imported")
	log.WithFields(logrus.Fields{"period": set.Period(), "days": len(set.Days)}).Info("Roster imported")
	return set, nil
}

// UpdateShift corrects one field of one day and persists the roster.
func (s *ScheduleService) UpdateShift(ctx context.Context, day int, field shift.Field, value string) (*shift.Daily, error) {
	log := s.logger.WithFields(logrus.Fields{"day": day, "field": field})

	set, err := s.store.UpdateShift(day, field, value)
	if err != nil {
		s.metrics.ObserveShiftUpdate(string(field), "rejected")
		log.WithError(err).Warn("Shift update rejected")
		return nil, err
	}
	if err := s.shiftSnapshots.SaveShifts(set, s.now()); err != nil {
		log.WithError(err).Error("Failed to save shift snapshot")
	}
	s.metrics.ObserveShiftUpdate(string(field), "updated")
	log.Info("Shift updated")

	d, _ := set.Get(day)
	return d, nil
}

// LoadShiftSnapshot restores the persisted roster and reports whether it
// belongs to the month of now. A roster for another month is still loaded.
func (s *ScheduleService) LoadShiftSnapshot(now time.Time) (bool, error) {
	set, lastUpdate, err := s.shiftSnapshots.LoadShifts()
	if err != nil {
		return false, err
	}
	s.store.ReplaceShifts(set)

	current := set.ValidateMonthYear(now.Month(), now.Year())
	log := s.logger.WithFields(logrus.Fields{"period": set.Period(), "last_update": lastUpdate})
	if !current {
		log.Warn("Loaded roster is not for the current month")
	} else {
		log.Info("Roster loaded from snapshot")
	}
	return current, nil
}
