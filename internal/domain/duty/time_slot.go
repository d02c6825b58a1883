// internal/domain/duty/time_slot.go
package duty

import "strings"

// TimeSlot is the label of one of the fixed daily duty windows.
type TimeSlot string

const (
	SlotMorning         TimeSlot = "08:00-14:30"
	SlotDay             TimeSlot = "08:00-16:00"
	SlotEvening         TimeSlot = "08:00-23:00"
	SlotAfternoonToNext TimeSlot = "14:30-08:00 επομένης"
	SlotFullDay         TimeSlot = "08:00-08:00 επομένης"
)

// nextDayMarker marks a window that ends on the following day.
const nextDayMarker = "επομένης"

// columnSlots maps duty-table column indexes to their window. Column 0 holds the specialty.
var columnSlots = map[int]TimeSlot{
	1: SlotMorning,
	2: SlotDay,
	3: SlotEvening,
	4: SlotAfternoonToNext,
	5: SlotFullDay,
}

// CanonicalSlots returns the windows in table column order.
func CanonicalSlots() []TimeSlot {
	return []TimeSlot{SlotMorning, SlotDay, SlotEvening, SlotAfternoonToNext, SlotFullDay}
}

// SlotForColumn returns the window of a duty-table column.
func SlotForColumn(col int) (TimeSlot, bool) {
	s, ok := columnSlots[col]
	return s, ok
}

// SlotColumns is the number of time-slot columns following the specialty column.
func SlotColumns() int { return len(columnSlots) }

// WrapsMidnight reports whether the window ends on the next day.
func (s TimeSlot) WrapsMidnight() bool {
	return strings.Contains(string(s), nextDayMarker)
}

// Order returns the column position of a canonical slot, or len(CanonicalSlots())
// for labels that are not canonical.
func (s TimeSlot) Order() int {
	for i, c := range CanonicalSlots() {
		if c == s {
			return i
		}
	}
	return len(columnSlots)
}
