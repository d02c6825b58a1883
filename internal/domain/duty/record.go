// internal/domain/duty/record.go
package duty

// Record is one hospital on duty for one specialty during one time slot of a day.
type Record struct {
	Name      string   `json:"name"`
	Specialty string   `json:"specialty"`
	Address   string   `json:"address"`
	Phone     string   `json:"phone"`
	Area      string   `json:"area"`
	Date      Date     `json:"on_duty_date"`
	TimeSlot  TimeSlot `json:"time_slot"`
}

// Key identifies a record; two records with the same key are the same duty.
type Key struct {
	Name      string
	Specialty string
	TimeSlot  TimeSlot
	Date      Date
}

func (r Record) Key() Key {
	return Key{Name: r.Name, Specialty: r.Specialty, TimeSlot: r.TimeSlot, Date: r.Date}
}

// Dedup drops records whose key was already seen, keeping the first occurrence
// in input order.
func Dedup(records []Record) []Record {
	seen := make(map[Key]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		k := r.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
