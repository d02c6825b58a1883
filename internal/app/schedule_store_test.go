package app

import (
	"sync"
	"testing"
	"time"

	"hospital_duty_kiosk/internal/domain/duty"
	"hospital_duty_kiosk/internal/domain/shift"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeRecords() []duty.Record {
	d := duty.DateOf(dutyDay)
	return []duty.Record{
		{Name: "Γενικό Νοσοκομείο Αθηνών «ΚΑΤ»", Specialty: "Χειρουργική / Surgery", TimeSlot: duty.SlotFullDay, Area: "Κηφισιά", Date: d},
		{Name: "Γενικό Νοσοκομείο Αθηνών «Λαϊκό»", Specialty: "Καρδιολογία / Cardiology", TimeSlot: duty.SlotMorning, Area: "Γουδή", Date: d},
		{Name: "Νοσοκομείο Θώρακος Αθηνών «Σωτηρία»", Specialty: "Καρδιολογία / Cardiology", TimeSlot: duty.TimeSlot("09:00-12:00"), Area: "Αμπελόκηποι", Date: d},
		{Name: "Γενικό Νοσοκομείο Αθηνών «Ελπίς»", Specialty: "Καρδιοχειρουργική / Cardiac Surgery", TimeSlot: duty.SlotMorning, Date: d},
	}
}

func filledStore() *ScheduleStore {
	s := NewScheduleStore()
	s.ReplaceDuties(storeRecords(), dutyDay, OriginLive, StatusFound, "14 ΟΚΤΩΒΡΙΟΥ 2025")
	return s
}

func TestStore_ReadersGetCopies(t *testing.T) {
	s := filledStore()
	got := s.Duties()
	got[0].Name = "changed"
	assert.NotEqual(t, "changed", s.Duties()[0].Name)

	state := s.DutyState()
	assert.Equal(t, OriginLive, state.Origin)
	assert.Equal(t, StatusFound, state.Status)
	assert.Equal(t, dutyDay, state.LastUpdate)
}

func TestStore_GroupBySpecialty(t *testing.T) {
	groups := filledStore().GroupBySpecialty()
	require.Len(t, groups, 3)
	assert.Equal(t, "Καρδιολογία / Cardiology", groups[0].Specialty)
	assert.Len(t, groups[0].Records, 2)
	assert.Equal(t, "Καρδιοχειρουργική / Cardiac Surgery", groups[1].Specialty)
	assert.Equal(t, "Χειρουργική / Surgery", groups[2].Specialty)
}

func TestStore_GroupByTimeSlot(t *testing.T) {
	groups := filledStore().GroupByTimeSlot()
	require.Len(t, groups, 3)
	assert.Equal(t, duty.SlotMorning, groups[0].TimeSlot)
	assert.Len(t, groups[0].Records, 2)
	assert.Equal(t, duty.SlotFullDay, groups[1].TimeSlot)
	assert.Equal(t, duty.TimeSlot("09:00-12:00"), groups[2].TimeSlot)
}

func TestStore_SearchIgnoresCaseAndAccents(t *testing.T) {
	s := filledStore()
	assert.Len(t, s.SearchBySpecialty("ΚΑΡΔΙΟΛΟΓΙΑ"), 2)
	assert.Len(t, s.SearchBySpecialty("cardio"), 2)
	assert.Len(t, s.SearchByArea("γουδη"), 1)
	assert.Len(t, s.SearchByName("σωτηρια"), 1)
	assert.Len(t, s.SearchByName(""), 4)
	assert.Empty(t, s.SearchByArea("Πειραιάς"))
}

func TestStore_SpecialtiesAndFilter(t *testing.T) {
	s := filledStore()
	assert.Equal(t, []string{"Καρδιολογία", "Καρδιοχειρουργική", "Χειρουργική"}, s.Specialties())
	assert.Equal(t, "Καρδιολογία", s.DefaultSpecialty())

	assert.Len(t, s.FilterBySpecialty("Καρδιολογία"), 2)
	assert.Len(t, s.FilterBySpecialty("Καρδιο"), 3)
	assert.Len(t, s.FilterBySpecialty(AllSpecialties), 4)
	assert.Len(t, s.FilterBySpecialty("all"), 4)

	assert.Equal(t, AllSpecialties, NewScheduleStore().DefaultSpecialty())
}

func TestStore_SnapshotRestore(t *testing.T) {
	snap := filledStore().DutySnapshot()

	s := NewScheduleStore()
	s.RestoreDuties(snap)
	state := s.DutyState()
	assert.Equal(t, OriginSnapshot, state.Origin)
	assert.Equal(t, storeRecords(), state.Records)
	assert.Equal(t, dutyDay, state.LastUpdate)
}

func TestStore_Shifts(t *testing.T) {
	s := NewScheduleStore()
	assert.Nil(t, s.ShiftFor(dutyDay))
	_, err := s.UpdateShift(14, shift.FieldMajorShift, "x")
	assert.ErrorIs(t, err, ErrNoShifts)

	set := shift.NewMonthSet(time.October, 2025)
	set.Upsert(14, "Οκτωβρίου", "Τρίτη", nil)
	s.ReplaceShifts(set)

	require.NotNil(t, s.ShiftFor(dutyDay))
	assert.Nil(t, s.ShiftFor(dutyDay.AddDate(0, 1, 0)))

	updated, err := s.UpdateShift(14, shift.FieldMajorShift, "Αλεξίου")
	require.NoError(t, err)
	assert.Equal(t, "Αλεξίου", *updated.Days[14].MajorShift)
	assert.Equal(t, "Αλεξίου", *s.ShiftFor(dutyDay).MajorShift)
	assert.Nil(t, set.Days[14].MajorShift)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := filledStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.ReplaceDuties(storeRecords(), time.Now(), OriginLive, StatusFound, "")
		}()
		go func() {
			defer wg.Done()
			_ = s.GroupBySpecialty()
			_ = s.SearchByName("κατ")
		}()
	}
	wg.Wait()
	assert.Len(t, s.Duties(), 4)
}
