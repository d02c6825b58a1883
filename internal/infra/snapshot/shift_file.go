package snapshot

import (
	"fmt"
	"strconv"
	"time"

	"hospital_duty_kiosk/internal/domain/shift"
)

type shiftFile struct {
	Month      int                    `json:"month"`
	Year       int                    `json:"year"`
	LastUpdate *string                `json:"last_update"`
	Shifts     map[string]shift.Daily `json:"shifts"`
}

// ShiftFile stores the roster keyed by day number as a string.
type ShiftFile struct {
	path     string
	location *time.Location
}

func NewShiftFile(path string, loc *time.Location) *ShiftFile {
	return &ShiftFile{path: path, location: loc}
}

func (f *ShiftFile) SaveShifts(set *shift.MonthSet, lastUpdate time.Time) error {
	out := shiftFile{
		Month:      int(set.Month),
		Year:       set.Year,
		LastUpdate: formatTimestamp(lastUpdate),
		Shifts:     make(map[string]shift.Daily, len(set.Days)),
	}
	for day, d := range set.Days {
		out.Shifts[strconv.Itoa(day)] = *d
	}
	return writeJSON(f.path, out)
}

func (f *ShiftFile) LoadShifts() (*shift.MonthSet, time.Time, error) {
	var raw shiftFile
	if err := readJSON(f.path, &raw); err != nil {
		return nil, time.Time{}, err
	}
	if raw.Month < 1 || raw.Month > 12 {
		return nil, time.Time{}, fmt.Errorf("shift snapshot %s: invalid month %d", f.path, raw.Month)
	}

	set := shift.NewMonthSet(time.Month(raw.Month), raw.Year)
	for key, d := range raw.Shifts {
		day, err := strconv.Atoi(key)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("shift snapshot %s: invalid day key %q", f.path, key)
		}
		d := d
		d.Day = day
		if d.Attendings == nil {
			d.Attendings = []string{}
		}
		set.Days[day] = &d
	}

	var lastUpdate time.Time
	if raw.LastUpdate != nil {
		t, err := parseTimestamp(*raw.LastUpdate, f.location)
		if err != nil {
			return nil, time.Time{}, err
		}
		lastUpdate = t
	}
	return set, lastUpdate, nil
}
