package duty

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedup_KeepsFirstOccurrence(t *testing.T) {
	day := Date{Year: 2025, Month: time.October, Day: 14}
	records := []Record{
		{Name: "A", Specialty: "S", TimeSlot: SlotMorning, Date: day, Phone: "1"},
		{Name: "B", Specialty: "S", TimeSlot: SlotMorning, Date: day},
		{Name: "A", Specialty: "S", TimeSlot: SlotMorning, Date: day, Phone: "2"},
		{Name: "A", Specialty: "S", TimeSlot: SlotFullDay, Date: day},
	}

	out := Dedup(records)
	require.Len(t, out, 3)
	assert.Equal(t, "1", out[0].Phone)
	assert.Equal(t, "B", out[1].Name)
	assert.Equal(t, SlotFullDay, out[2].TimeSlot)
}

func TestDedup_Empty(t *testing.T) {
	assert.Empty(t, Dedup(nil))
}

func TestDate_JSON(t *testing.T) {
	d := Date{Year: 2025, Month: time.October, Day: 4}
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-10-04"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, d, back)

	require.NoError(t, json.Unmarshal([]byte("null"), &back))
	assert.True(t, back.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"14/10/2025"`), &back))
}

func TestDate_In(t *testing.T) {
	loc := time.FixedZone("EEST", 3*3600)
	d := DateOf(time.Date(2025, 10, 14, 23, 30, 0, 0, loc))
	got := d.In(loc)
	assert.Equal(t, 14, got.Day())
	assert.Equal(t, 0, got.Hour())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-10-14")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-14", d.String())

	_, err = ParseDate("yesterday")
	assert.Error(t, err)
}

func TestTimeSlots(t *testing.T) {
	slots := CanonicalSlots()
	require.Len(t, slots, SlotColumns())
	for i, s := range slots {
		got, ok := SlotForColumn(i + 1)
		require.True(t, ok)
		assert.Equal(t, s, got)
		assert.Equal(t, i, s.Order())
	}

	_, ok := SlotForColumn(0)
	assert.False(t, ok)
	_, ok = SlotForColumn(6)
	assert.False(t, ok)

	assert.True(t, SlotAfternoonToNext.WrapsMidnight())
	assert.True(t, SlotFullDay.WrapsMidnight())
	assert.False(t, SlotEvening.WrapsMidnight())
	assert.Equal(t, len(slots), TimeSlot("other").Order())
}
