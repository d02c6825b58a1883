// internal/domain/shift/month_set.go
package shift

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

var ErrDayNotFound = fmt.Errorf("no shift recorded for day")

// MonthSet is the roster of one month. Days carry only the day number,
// so every lookup by date goes through the set's Month and Year.
type MonthSet struct {
	Month time.Month
	Year  int
	Days  map[int]*Daily
}

func NewMonthSet(month time.Month, year int) *MonthSet {
	return &MonthSet{Month: month, Year: year, Days: make(map[int]*Daily)}
}

// Upsert returns the record of day, creating it with an empty attendings list
// when absent, then applies patch to it.
func (s *MonthSet) Upsert(day int, monthName, weekday string, patch func(*Daily)) *Daily {
	d, ok := s.Days[day]
	if !ok {
		d = &Daily{Day: day, MonthName: monthName, Weekday: weekday, Attendings: []string{}}
		s.Days[day] = d
	}
	if patch != nil {
		patch(d)
	}
	return d
}

func (s *MonthSet) Get(day int) (*Daily, bool) {
	d, ok := s.Days[day]
	return d, ok
}

// ForDate returns the record for t, or nil when t falls outside the set's month.
func (s *MonthSet) ForDate(t time.Time) *Daily {
	if s == nil || !s.ValidateMonthYear(t.Month(), t.Year()) {
		return nil
	}
	return s.Days[t.Day()]
}

// ValidateMonthYear reports whether the set belongs to the given period.
func (s *MonthSet) ValidateMonthYear(month time.Month, year int) bool {
	return s != nil && s.Month == month && s.Year == year
}

// SortedDays returns the day numbers in ascending order.
func (s *MonthSet) SortedDays() []int {
	days := make([]int, 0, len(s.Days))
	for d := range s.Days {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// Update applies a manual correction to one field of one day.
// Attendings are given comma-separated; an empty role value clears the field.
func (s *MonthSet) Update(day int, field Field, value string) error {
	d, ok := s.Days[day]
	if !ok {
		return fmt.Errorf("%w: %d/%d", ErrDayNotFound, day, s.Month)
	}
	if field == FieldAttendings {
		names := []string{}
		for _, name := range strings.Split(value, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		d.Attendings = names
		return nil
	}
	return d.SetRole(field, Optional(strings.TrimSpace(value)))
}

// Clone returns a deep copy of the set.
func (s *MonthSet) Clone() *MonthSet {
	if s == nil {
		return nil
	}
	c := NewMonthSet(s.Month, s.Year)
	for day, d := range s.Days {
		c.Days[day] = d.Clone()
	}
	return c
}

// Period renders the set's month as "10/2025".
func (s *MonthSet) Period() string {
	return fmt.Sprintf("%d/%d", int(s.Month), s.Year)
}
