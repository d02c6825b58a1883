// internal/domain/shift/daily.go
package shift

import (
	"fmt"
	"strings"
)

// Field names a mutable part of a Daily record. Values match the snapshot JSON keys.
type Field string

const (
	FieldAttendings            Field = "attendings"
	FieldMajorShift            Field = "major_shift"
	FieldMinorShift            Field = "minor_shift"
	FieldTEPCardiologist       Field = "tep_cardiologist"
	FieldSeniorCardiacSurgeon  Field = "senior_cardiac_surgeon"
	FieldJuniorCardiacSurgeon  Field = "junior_cardiac_surgeon"
	FieldAnesthesiologist1     Field = "anesthesiologist_1"
	FieldAnesthesiologist2     Field = "anesthesiologist_2"
	FieldPediatricCardiologist Field = "pediatric_cardiologist"
)

var ErrUnknownField = fmt.Errorf("unknown shift field")

// RoleFields lists the optional single-name fields in display order.
func RoleFields() []Field {
	return []Field{
		FieldMajorShift,
		FieldMinorShift,
		FieldTEPCardiologist,
		FieldSeniorCardiacSurgeon,
		FieldJuniorCardiacSurgeon,
		FieldAnesthesiologist1,
		FieldAnesthesiologist2,
		FieldPediatricCardiologist,
	}
}

// ParseField validates a field name.
func ParseField(name string) (Field, error) {
	f := Field(strings.TrimSpace(name))
	if f == FieldAttendings {
		return f, nil
	}
	for _, rf := range RoleFields() {
		if f == rf {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// fieldLabels are the Greek captions used when a day is rendered as text.
var fieldLabels = map[Field]string{
	FieldAttendings:            "Επιμελητές",
	FieldMajorShift:            "Μεγάλη Εφημερία",
	FieldMinorShift:            "Μικρή Εφημερία",
	FieldTEPCardiologist:       "ΤΕΠ",
	FieldSeniorCardiacSurgeon:  "Καρδιοχειρουργός 1",
	FieldJuniorCardiacSurgeon:  "Καρδιοχειρουργός 2",
	FieldAnesthesiologist1:     "Αναισθησιολόγος 1",
	FieldAnesthesiologist2:     "Αναισθησιολόγος 2",
	FieldPediatricCardiologist: "Παιδοκαρδιολόγος",
}

// Label returns the Greek caption of the field.
func (f Field) Label() string { return fieldLabels[f] }

// Daily holds who is on call for one day of the month.
// A nil role pointer means the field is unset.
type Daily struct {
	Day                   int      `json:"day"`
	MonthName             string   `json:"month_name"`
	Weekday               string   `json:"weekday"`
	Attendings            []string `json:"attendings"`
	MajorShift            *string  `json:"major_shift"`
	MinorShift            *string  `json:"minor_shift"`
	TEPCardiologist       *string  `json:"tep_cardiologist"`
	SeniorCardiacSurgeon  *string  `json:"senior_cardiac_surgeon"`
	JuniorCardiacSurgeon  *string  `json:"junior_cardiac_surgeon"`
	Anesthesiologist1     *string  `json:"anesthesiologist_1"`
	Anesthesiologist2     *string  `json:"anesthesiologist_2"`
	PediatricCardiologist *string  `json:"pediatric_cardiologist"`
}

func (d *Daily) roleSlot(f Field) **string {
	switch f {
	case FieldMajorShift:
		return &d.MajorShift
	case FieldMinorShift:
		return &d.MinorShift
	case FieldTEPCardiologist:
		return &d.TEPCardiologist
	case FieldSeniorCardiacSurgeon:
		return &d.SeniorCardiacSurgeon
	case FieldJuniorCardiacSurgeon:
		return &d.JuniorCardiacSurgeon
	case FieldAnesthesiologist1:
		return &d.Anesthesiologist1
	case FieldAnesthesiologist2:
		return &d.Anesthesiologist2
	case FieldPediatricCardiologist:
		return &d.PediatricCardiologist
	}
	return nil
}

// Role returns the value of a role field and whether it is set.
func (d *Daily) Role(f Field) (string, bool) {
	slot := d.roleSlot(f)
	if slot == nil || *slot == nil {
		return "", false
	}
	return **slot, true
}

// SetRole stores value in a role field; nil clears it.
func (d *Daily) SetRole(f Field, value *string) error {
	slot := d.roleSlot(f)
	if slot == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	if value == nil {
		*slot = nil
		return nil
	}
	v := *value
	*slot = &v
	return nil
}

// Clone returns a deep copy.
func (d *Daily) Clone() *Daily {
	c := *d
	c.Attendings = append([]string{}, d.Attendings...)
	for _, f := range RoleFields() {
		if v, ok := d.Role(f); ok {
			_ = c.SetRole(f, &v)
		}
	}
	return &c
}

// Summary renders the day on one line, e.g. "Επιμελητές: Α, Β | ΤΕΠ: Γ".
func (d *Daily) Summary() string {
	attendings := "Κανένας"
	if len(d.Attendings) > 0 {
		attendings = strings.Join(d.Attendings, ", ")
	}
	parts := []string{fmt.Sprintf("%s: %s", FieldAttendings.Label(), attendings)}
	for _, f := range RoleFields() {
		if v, ok := d.Role(f); ok && v != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", f.Label(), v))
		}
	}
	return strings.Join(parts, " | ")
}

// Optional returns nil for an empty string and a pointer to s otherwise.
func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
