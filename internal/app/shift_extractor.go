package app

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hospital_duty_kiosk/internal/domain/document"
	"hospital_duty_kiosk/internal/domain/registry"
	"hospital_duty_kiosk/internal/domain/shift"
)

// Shift document errors. Structural problems always wrap ErrParseFailure.
var ErrParseFailure = fmt.Errorf("shift document structure not recognized")
var ErrMissingPeriod = fmt.Errorf("no paragraph names the roster month and year")
var ErrTooFewTables = fmt.Errorf("roster needs an attending table and a role table")

var yearPattern = regexp.MustCompile(`\b(20\d{2})\b`)

// roleColumns maps role-table columns to fields. Surgeon fields have no column.
var roleColumns = []struct {
	col   int
	field shift.Field
}{
	{3, shift.FieldMajorShift},
	{4, shift.FieldMinorShift},
	{5, shift.FieldTEPCardiologist},
	{6, shift.FieldAnesthesiologist1},
	{7, shift.FieldAnesthesiologist2},
	{8, shift.FieldPediatricCardiologist},
}

const (
	attendingMinCells = 4
	roleMinCells      = 6
	readinessMarker   = "*"
)

// ShiftExtractor reads a monthly cardiology roster: the first table lists the
// attendings per day, the second the single-name roles.
type ShiftExtractor struct{}

func NewShiftExtractor() *ShiftExtractor {
	return &ShiftExtractor{}
}

// Extract builds the month's shift set from doc.
func (e *ShiftExtractor) Extract(doc *document.Document) (*shift.MonthSet, error) {
	month, year, ok := findPeriod(doc.Paragraphs)
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, ErrMissingPeriod)
	}
	if len(doc.Tables) < 2 {
		return nil, fmt.Errorf("%w: %w (found %d)", ErrParseFailure, ErrTooFewTables, len(doc.Tables))
	}

	set := shift.NewMonthSet(month, year)
	e.readAttendings(set, doc.Tables[0])
	e.readRoles(set, doc.Tables[1])
	return set, nil
}

func (e *ShiftExtractor) readAttendings(set *shift.MonthSet, table document.Table) {
	for _, row := range table.Rows {
		cells := trimCells(row)
		if len(cells) < attendingMinCells {
			continue
		}
		day, ok := parseDay(cells[0])
		if !ok {
			continue
		}

		names := []string{}
		for _, name := range strings.Split(cells[3], "\n") {
			name = strings.TrimSpace(name)
			if name != "" && !strings.Contains(name, readinessMarker) {
				names = append(names, name)
			}
		}
		set.Upsert(day, cells[1], cells[2], func(d *shift.Daily) {
			d.Attendings = names
		})
	}
}

func (e *ShiftExtractor) readRoles(set *shift.MonthSet, table document.Table) {
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		cells := trimCells(row)
		if len(cells) < roleMinCells {
			continue
		}
		day, ok := parseDay(cells[0])
		if !ok {
			continue
		}

		set.Upsert(day, cells[1], cells[2], func(d *shift.Daily) {
			for _, rc := range roleColumns {
				var value string
				if rc.col < len(cells) {
					value = cells[rc.col]
				}
				_ = d.SetRole(rc.field, shift.Optional(value))
			}
		})
	}
}

// findPeriod returns the month and year of the first paragraph naming both.
func findPeriod(paragraphs []string) (time.Month, int, bool) {
	tokens := registry.MonthTokens()
	for _, p := range paragraphs {
		folded := registry.Fold(p)
		var month time.Month
		for _, tok := range tokens {
			if strings.Contains(folded, registry.Fold(tok.Token)) {
				month = tok.Month
				break
			}
		}
		if month == 0 {
			continue
		}
		m := yearPattern.FindStringSubmatch(p)
		if m == nil {
			continue
		}
		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return month, year, true
	}
	return 0, 0, false
}

func parseDay(s string) (int, bool) {
	day, err := strconv.Atoi(s)
	if err != nil || day < 1 || day > 31 {
		return 0, false
	}
	return day, true
}

func trimCells(row []string) []string {
	cells := make([]string, len(row))
	for i, c := range row {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}
