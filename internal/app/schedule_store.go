package app

import (
	"sort"
	"strings"
	"sync"
	"time"

	"hospital_duty_kiosk/internal/domain/duty"
	"hospital_duty_kiosk/internal/domain/registry"
	"hospital_duty_kiosk/internal/domain/shift"
)

// Origin tells where the current duty records came from.
type Origin string

const (
	OriginNone     Origin = ""
	OriginLive     Origin = "live"
	OriginSnapshot Origin = "snapshot"
	OriginSample   Origin = "sample"
)

// AllSpecialties is the filter value that selects every specialty.
const AllSpecialties = "Όλες οι ειδικότητες"

// DutySnapshot is the persisted form of the duty records. A zero LastUpdate means unknown.
type DutySnapshot struct {
	LastUpdate time.Time
	Records    []duty.Record
}

// DutyState is a consistent view of the store's duty side.
type DutyState struct {
	Records     []duty.Record
	LastUpdate  time.Time
	Origin      Origin
	Status      DutyStatus
	SourceLabel string
}

// SpecialtyGroup holds the records of one specialty.
type SpecialtyGroup struct {
	Specialty string
	Records   []duty.Record
}

// SlotGroup holds the records of one time slot.
type SlotGroup struct {
	TimeSlot duty.TimeSlot
	Records  []duty.Record
}

// ScheduleStore is the in-memory state read by the API, the bot and the scheduler.
// Readers always get copies; writers replace whole values.
type ScheduleStore struct {
	mu          sync.RWMutex
	records     []duty.Record
	lastUpdate  time.Time
	origin      Origin
	status      DutyStatus
	sourceLabel string
	shifts      *shift.MonthSet
}

func NewScheduleStore() *ScheduleStore {
	return &ScheduleStore{}
}

// ReplaceDuties swaps in a new record set.
func (s *ScheduleStore) ReplaceDuties(records []duty.Record, lastUpdate time.Time, origin Origin, status DutyStatus, sourceLabel string) {
	cp := append([]duty.Record(nil), records...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = cp
	s.lastUpdate = lastUpdate
	s.origin = origin
	s.status = status
	s.sourceLabel = sourceLabel
}

func (s *ScheduleStore) Duties() []duty.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]duty.Record(nil), s.records...)
}

func (s *ScheduleStore) DutyState() DutyState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return DutyState{
		Records:     append([]duty.Record(nil), s.records...),
		LastUpdate:  s.lastUpdate,
		Origin:      s.origin,
		Status:      s.status,
		SourceLabel: s.sourceLabel,
	}
}

// DutySnapshot returns the records in their persisted form.
func (s *ScheduleStore) DutySnapshot() DutySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return DutySnapshot{LastUpdate: s.lastUpdate, Records: append([]duty.Record(nil), s.records...)}
}

// RestoreDuties loads a persisted snapshot as the current records.
func (s *ScheduleStore) RestoreDuties(snap DutySnapshot) {
	s.ReplaceDuties(snap.Records, snap.LastUpdate, OriginSnapshot, "", "")
}

// GroupBySpecialty groups the records by specialty, sorted by specialty name.
func (s *ScheduleStore) GroupBySpecialty() []SpecialtyGroup {
	index := map[string]int{}
	var groups []SpecialtyGroup
	for _, r := range s.Duties() {
		i, ok := index[r.Specialty]
		if !ok {
			i = len(groups)
			index[r.Specialty] = i
			groups = append(groups, SpecialtyGroup{Specialty: r.Specialty})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Specialty < groups[j].Specialty })
	return groups
}

// GroupByTimeSlot groups the records by slot in canonical column order.
// Slots outside the canonical set follow, sorted by label.
func (s *ScheduleStore) GroupByTimeSlot() []SlotGroup {
	index := map[duty.TimeSlot]int{}
	var groups []SlotGroup
	for _, r := range s.Duties() {
		i, ok := index[r.TimeSlot]
		if !ok {
			i = len(groups)
			index[r.TimeSlot] = i
			groups = append(groups, SlotGroup{TimeSlot: r.TimeSlot})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		oi, oj := groups[i].TimeSlot.Order(), groups[j].TimeSlot.Order()
		if oi != oj {
			return oi < oj
		}
		return groups[i].TimeSlot < groups[j].TimeSlot
	})
	return groups
}

func (s *ScheduleStore) SearchBySpecialty(query string) []duty.Record {
	return s.search(query, func(r duty.Record) string { return r.Specialty })
}

func (s *ScheduleStore) SearchByArea(query string) []duty.Record {
	return s.search(query, func(r duty.Record) string { return r.Area })
}

func (s *ScheduleStore) SearchByName(query string) []duty.Record {
	return s.search(query, func(r duty.Record) string { return r.Name })
}

// search matches query as a substring ignoring case and accents.
func (s *ScheduleStore) search(query string, field func(duty.Record) string) []duty.Record {
	q := registry.Fold(strings.TrimSpace(query))
	var out []duty.Record
	for _, r := range s.Duties() {
		if strings.Contains(registry.Fold(field(r)), q) {
			out = append(out, r)
		}
	}
	return out
}

// Specialties lists the distinct Greek specialty names, sorted.
func (s *ScheduleStore) Specialties() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range s.Duties() {
		greek := greekPart(r.Specialty)
		if _, ok := seen[greek]; ok || greek == "" {
			continue
		}
		seen[greek] = struct{}{}
		out = append(out, greek)
	}
	sort.Strings(out)
	return out
}

// DefaultSpecialty picks the kiosk's initial filter: cardiology when present,
// otherwise the first specialty, otherwise AllSpecialties.
func (s *ScheduleStore) DefaultSpecialty() string {
	specialties := s.Specialties()
	for _, sp := range specialties {
		if strings.Contains(registry.Fold(sp), "καρδιολογ") {
			return sp
		}
	}
	if len(specialties) > 0 {
		return specialties[0]
	}
	return AllSpecialties
}

// FilterBySpecialty returns the records whose specialty starts with greek.
// AllSpecialties, "all" and "" select everything.
func (s *ScheduleStore) FilterBySpecialty(greek string) []duty.Record {
	greek = strings.TrimSpace(greek)
	if greek == "" || greek == AllSpecialties || strings.EqualFold(greek, "all") {
		return s.Duties()
	}
	var out []duty.Record
	for _, r := range s.Duties() {
		if strings.HasPrefix(r.Specialty, greek) {
			out = append(out, r)
		}
	}
	return out
}

// ReplaceShifts installs a new monthly roster.
func (s *ScheduleStore) ReplaceShifts(set *shift.MonthSet) {
	cp := set.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shifts = cp
}

// Shifts returns a copy of the current roster or nil.
func (s *ScheduleStore) Shifts() *shift.MonthSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shifts.Clone()
}

// ShiftFor returns the roster entry for date, or nil when the roster is for
// another month or has no entry for that day.
func (s *ScheduleStore) ShiftFor(date time.Time) *shift.Daily {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.shifts.ForDate(date)
	if d == nil {
		return nil
	}
	return d.Clone()
}

// UpdateShift corrects one field of the roster and returns a copy of the
// updated roster.
func (s *ScheduleStore) UpdateShift(day int, field shift.Field, value string) (*shift.MonthSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shifts == nil {
		return nil, ErrNoShifts
	}
	if err := s.shifts.Update(day, field, value); err != nil {
		return nil, err
	}
	return s.shifts.Clone(), nil
}

func greekPart(specialty string) string {
	greek, _, _ := strings.Cut(specialty, " / ")
	return strings.TrimSpace(greek)
}
