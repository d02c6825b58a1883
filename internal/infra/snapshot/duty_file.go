package snapshot

import (
	"time"

	"hospital_duty_kiosk/internal/app"
	"hospital_duty_kiosk/internal/domain/duty"
)

type dutyFile struct {
	LastUpdate *string       `json:"last_update"`
	Hospitals  []duty.Record `json:"hospitals"`
}

// DutyFile stores duty records as {"last_update", "hospitals"}.
type DutyFile struct {
	path     string
	location *time.Location
}

func NewDutyFile(path string, loc *time.Location) *DutyFile {
	return &DutyFile{path: path, location: loc}
}

func (f *DutyFile) SaveDuties(snap app.DutySnapshot) error {
	hospitals := snap.Records
	if hospitals == nil {
		hospitals = []duty.Record{}
	}
	return writeJSON(f.path, dutyFile{LastUpdate: formatTimestamp(snap.LastUpdate), Hospitals: hospitals})
}

func (f *DutyFile) LoadDuties() (app.DutySnapshot, error) {
	var raw dutyFile
	if err := readJSON(f.path, &raw); err != nil {
		return app.DutySnapshot{}, err
	}
	snap := app.DutySnapshot{Records: raw.Hospitals}
	if raw.LastUpdate != nil {
		t, err := parseTimestamp(*raw.LastUpdate, f.location)
		if err != nil {
			return app.DutySnapshot{}, err
		}
		snap.LastUpdate = t
	}
	return snap, nil
}
