package shift

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSet() *MonthSet {
	s := NewMonthSet(time.October, 2025)
	s.Upsert(14, "Οκτώβριος", "Τρίτη", func(d *Daily) {
		d.Attendings = []string{"Παπαδόπουλος"}
		d.MajorShift = Optional("Γεωργίου")
	})
	return s
}

func TestUpdate_Attendings(t *testing.T) {
	s := newSet()

	require.NoError(t, s.Update(14, FieldAttendings, " Α , , Β,"))
	d, _ := s.Get(14)
	assert.Equal(t, []string{"Α", "Β"}, d.Attendings)

	require.NoError(t, s.Update(14, FieldAttendings, ""))
	d, _ = s.Get(14)
	assert.NotNil(t, d.Attendings)
	assert.Empty(t, d.Attendings)
}

func TestUpdate_RoleField(t *testing.T) {
	s := newSet()

	require.NoError(t, s.Update(14, FieldTEPCardiologist, "  Νικολάου "))
	d, _ := s.Get(14)
	v, ok := d.Role(FieldTEPCardiologist)
	require.True(t, ok)
	assert.Equal(t, "Νικολάου", v)

	require.NoError(t, s.Update(14, FieldMajorShift, "   "))
	_, ok = d.Role(FieldMajorShift)
	assert.False(t, ok)
	assert.Nil(t, d.MajorShift)
}

func TestUpdate_Errors(t *testing.T) {
	s := newSet()
	assert.ErrorIs(t, s.Update(15, FieldMajorShift, "x"), ErrDayNotFound)
	assert.ErrorIs(t, s.Update(14, Field("nurse"), "x"), ErrUnknownField)
}

func TestParseField(t *testing.T) {
	f, err := ParseField("anesthesiologist_2")
	require.NoError(t, err)
	assert.Equal(t, FieldAnesthesiologist2, f)

	f, err = ParseField("attendings")
	require.NoError(t, err)
	assert.Equal(t, FieldAttendings, f)

	_, err = ParseField("day")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestUpsert_PatchesExisting(t *testing.T) {
	s := newSet()
	s.Upsert(14, "", "", func(d *Daily) { d.MinorShift = Optional("Κ") })

	d, ok := s.Get(14)
	require.True(t, ok)
	assert.Equal(t, "Τρίτη", d.Weekday)
	assert.Equal(t, []string{"Παπαδόπουλος"}, d.Attendings)
	assert.Equal(t, "Κ", *d.MinorShift)

	fresh := s.Upsert(1, "Οκτώβριος", "Τετάρτη", nil)
	assert.NotNil(t, fresh.Attendings)
}

func TestForDate(t *testing.T) {
	s := newSet()
	loc := time.UTC

	assert.NotNil(t, s.ForDate(time.Date(2025, 10, 14, 0, 0, 0, 0, loc)))
	assert.Nil(t, s.ForDate(time.Date(2025, 10, 15, 0, 0, 0, 0, loc)))
	assert.Nil(t, s.ForDate(time.Date(2025, 11, 14, 0, 0, 0, 0, loc)))
	assert.Nil(t, s.ForDate(time.Date(2024, 10, 14, 0, 0, 0, 0, loc)))

	var none *MonthSet
	assert.Nil(t, none.ForDate(time.Now()))
	assert.False(t, none.ValidateMonthYear(time.October, 2025))
}

func TestClone_IsDeep(t *testing.T) {
	s := newSet()
	c := s.Clone()

	d, _ := c.Get(14)
	d.Attendings[0] = "άλλος"
	*d.MajorShift = "άλλος"

	orig, _ := s.Get(14)
	assert.Equal(t, "Παπαδόπουλος", orig.Attendings[0])
	assert.Equal(t, "Γεωργίου", *orig.MajorShift)
}

func TestSortedDaysAndPeriod(t *testing.T) {
	s := newSet()
	s.Upsert(3, "", "", nil)
	s.Upsert(28, "", "", nil)
	assert.Equal(t, []int{3, 14, 28}, s.SortedDays())
	assert.Equal(t, "10/2025", s.Period())
}

func TestDaily_JSONUnsetFieldsAreNull(t *testing.T) {
	d := newSet().Days[14]
	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "Γεωργίου", m["major_shift"])
	assert.Contains(t, m, "minor_shift")
	assert.Nil(t, m["minor_shift"])
}

func TestSummary(t *testing.T) {
	d := newSet().Days[14]
	assert.Equal(t, "Επιμελητές: Παπαδόπουλος | Μεγάλη Εφημερία: Γεωργίου", d.Summary())

	empty := &Daily{}
	assert.Equal(t, "Επιμελητές: Κανένας", empty.Summary())
}
