package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"hospital_duty_kiosk/internal/domain/document"
	"hospital_duty_kiosk/internal/domain/duty"
	"hospital_duty_kiosk/internal/domain/registry"

	"github.com/sirupsen/logrus"
)

// DutyStatus tells why an extraction produced the records it did.
type DutyStatus string

const (
	StatusFound       DutyStatus = "found"
	StatusNoSource    DutyStatus = "no_source"
	StatusUnavailable DutyStatus = "unavailable"
	StatusUnsupported DutyStatus = "unsupported"
	StatusEmpty       DutyStatus = "empty"
)

// clinicsHeaderMarker is the header text of the specialty column.
const clinicsHeaderMarker = "Κλινικές"

// headerScanRows bounds how far down a table the header row may be.
const headerScanRows = 5

// DutyResult is the outcome of one extraction. Source problems are reported
// through Status, never as errors.
type DutyResult struct {
	Records     []duty.Record
	Status      DutyStatus
	SourceLabel string
}

// DutyExtractor locates the ministry document for a day and turns its tables
// into duty records.
type DutyExtractor struct {
	lister       duty.SourceLister
	fetcher      duty.DocumentFetcher
	decoder      document.Decoder
	registry     *registry.Registry
	tokenizer    *CellTokenizer
	lookbackDays int
	metrics      Metrics
	logger       *logrus.Entry
}

func NewDutyExtractor(
	lister duty.SourceLister,
	fetcher duty.DocumentFetcher,
	decoder document.Decoder,
	reg *registry.Registry,
	lookbackDays int,
	metrics Metrics,
	logger *logrus.Entry,
) *DutyExtractor {
	return &DutyExtractor{
		lister:       lister,
		fetcher:      fetcher,
		decoder:      decoder,
		registry:     reg,
		tokenizer:    NewCellTokenizer(reg),
		lookbackDays: lookbackDays,
		metrics:      metricsOrNoop(metrics),
		logger:       logger,
	}
}

// Extract returns the on-duty records for date.
func (e *DutyExtractor) Extract(ctx context.Context, date time.Time) DutyResult {
	label := registry.DutyDateLabel(date)
	log := e.logger.WithFields(logrus.Fields{"date": duty.DateOf(date).String(), "label": label})

	since := date.AddDate(0, 0, -e.lookbackDays)
	sources, err := e.lister.ListSources(ctx, since)
	if err != nil {
		log.WithError(err).Warn("Could not list duty sources")
		return DutyResult{Status: StatusUnavailable}
	}

	src, ok := pickSource(sources, label)
	if !ok {
		log.WithField("sources", len(sources)).Info("No duty document published for date")
		return DutyResult{Status: StatusNoSource}
	}
	log = log.WithFields(logrus.Fields{"source_id": src.ID, "format": src.Format})

	raw, err := e.fetcher.Fetch(ctx, src.ID)
	if err != nil {
		log.WithError(err).Warn("Could not download duty document")
		return DutyResult{Status: StatusUnavailable, SourceLabel: src.Label}
	}

	doc, err := e.decoder.Decode(src.Format, raw)
	if err != nil {
		if errors.Is(err, document.ErrUnsupportedFormat) {
			log.WithError(err).Warn("Duty document format is not supported")
			e.metrics.ObserveUnsupportedSource(string(src.Format))
			return DutyResult{Status: StatusUnsupported, SourceLabel: src.Label}
		}
		log.WithError(err).Warn("Could not decode duty document")
		return DutyResult{Status: StatusUnavailable, SourceLabel: src.Label}
	}

	records := e.ExtractRecords(doc, duty.DateOf(date))
	if len(records) == 0 {
		log.Info("Duty document contained no duty rows")
		return DutyResult{Status: StatusEmpty, SourceLabel: src.Label}
	}
	log.WithField("records", len(records)).Info("Duty document extracted")
	return DutyResult{Records: records, Status: StatusFound, SourceLabel: src.Label}
}

// ExtractRecords reads every duty table of doc. Tables without a clinics
// header are ignored; a table that fails is skipped without affecting the others.
func (e *DutyExtractor) ExtractRecords(doc *document.Document, date duty.Date) []duty.Record {
	var records []duty.Record
	for i, table := range doc.Tables {
		rows, err := e.extractTable(table, date)
		if err != nil {
			e.logger.WithError(err).WithField("table", i).Warn("Skipping malformed duty table")
			continue
		}
		records = append(records, rows...)
	}
	return duty.Dedup(records)
}

func (e *DutyExtractor) extractTable(table document.Table, date duty.Date) (records []duty.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			records, err = nil, fmt.Errorf("table processing panicked: %v", r)
		}
	}()

	if len(table.Rows) < 2 {
		return nil, nil
	}
	header, ok := findHeaderRow(table)
	if !ok {
		return nil, nil
	}

	for _, row := range table.Rows[header+1:] {
		if len(row) < 2 {
			continue
		}
		specialty := collapseSpaces(row[0])
		if specialty == "" || specialty == clinicsHeaderMarker {
			continue
		}
		specialty = e.registry.NormalizeSpecialty(specialty)

		for col := 1; col < len(row); col++ {
			slot, ok := duty.SlotForColumn(col)
			if !ok {
				break
			}
			for _, name := range e.tokenizer.Tokenize(row[col]) {
				records = append(records, e.newRecord(name, specialty, slot, date))
			}
		}
	}
	return records, nil
}

func (e *DutyExtractor) newRecord(name, specialty string, slot duty.TimeSlot, date duty.Date) duty.Record {
	r := duty.Record{Name: name, Specialty: specialty, TimeSlot: slot, Date: date}
	if c, ok := e.registry.Contact(name); ok {
		r.Address, r.Phone, r.Area = c.Address, c.Phone, c.Area
	}
	return r
}

func findHeaderRow(table document.Table) (int, bool) {
	for i := 0; i < len(table.Rows) && i < headerScanRows; i++ {
		if table.RowContains(i, clinicsHeaderMarker) {
			return i, true
		}
	}
	return 0, false
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// pickSource returns the source whose label names the day, preferring PDF.
func pickSource(sources []duty.Source, label string) (duty.Source, bool) {
	var match duty.Source
	found := false
	for _, s := range sources {
		if !labelMatches(s.Label, label) {
			continue
		}
		if !found || (match.Format != document.FormatPDF && s.Format == document.FormatPDF) {
			match, found = s, true
		}
	}
	return match, found
}

// labelMatches reports whether label occurs in text at a position not preceded
// by a digit, so "1 ΟΚΤΩΒΡΙΟΥ" does not match "11 ΟΚΤΩΒΡΙΟΥ".
func labelMatches(text, label string) bool {
	if label == "" {
		return false
	}
	for offset := 0; ; {
		i := strings.Index(text[offset:], label)
		if i < 0 {
			return false
		}
		at := offset + i
		if at == 0 || !endsWithDigit(text[:at]) {
			return true
		}
		offset = at + 1
	}
}

func endsWithDigit(s string) bool {
	r := []rune(s)
	return len(r) > 0 && unicode.IsDigit(r[len(r)-1])
}
