package telegram

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hospital_duty_kiosk/internal/app"
	"hospital_duty_kiosk/internal/domain/document"
	"hospital_duty_kiosk/internal/domain/duty"
	"hospital_duty_kiosk/internal/infra/snapshot"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var athens = time.FixedZone("EEST", 3*3600)

type stubExtraction struct {
	result app.DutyResult
}

func (s stubExtraction) Extract(context.Context, time.Time) app.DutyResult { return s.result }

type stubDecoder map[string]*document.Document

func (s stubDecoder) Decode(_ document.Format, raw []byte) (*document.Document, error) {
	if doc, ok := s[string(raw)]; ok {
		return doc, nil
	}
	return &document.Document{}, nil
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func roster(period string) *document.Document {
	return &document.Document{
		Paragraphs: []string{"ΠΡΟΓΡΑΜΜΑ ΕΦΗΜΕΡΙΩΝ " + period},
		Tables: []document.Table{
			{Rows: [][]string{{"14", "Οκτωβρίου", "Τρίτη", "Παπαδόπουλος"}}},
			{Rows: [][]string{
				{"Ημ.", "Μήνας", "Ημέρα", "ΜΕΓΑΛΕΣ", "ΜΙΚΡΕΣ", "ΤΕΠ"},
				{"14", "Οκτωβρίου", "Τρίτη", "Αλεξίου", "", "Δημητρίου"},
			}},
		},
	}
}

func newCommands(t *testing.T, result app.DutyResult) *Commands {
	t.Helper()
	dir := t.TempDir()
	service := app.NewScheduleService(
		stubExtraction{result: result},
		stubDecoder{"october": roster("Οκτώβριος 2025"), "september": roster("Σεπτέμβριος 2025")},
		app.NewScheduleStore(),
		snapshot.NewDutyFile(filepath.Join(dir, "duties.json"), athens),
		snapshot.NewShiftFile(filepath.Join(dir, "shifts.json"), athens),
		nil,
		testLogger(),
	)
	c := NewCommands(service, athens)
	c.now = func() time.Time { return time.Date(2025, 10, 14, 9, 0, 0, 0, athens) }
	return c
}

func liveRecords() []duty.Record {
	day := duty.Date{Year: 2025, Month: time.October, Day: 14}
	return []duty.Record{
		{Name: "Γ.Ν. «ΕΥΑΓΓΕΛΙΣΜΟΣ»", Specialty: "Καρδιολογική / Cardiology", TimeSlot: duty.SlotFullDay, Date: day, Phone: "2132041000"},
		{Name: "Γ.Ν. «ΑΤΤΙΚΟΝ»", Specialty: "Καρδιολογική / Cardiology", TimeSlot: duty.SlotMorning, Date: day, Area: "Χαϊδάρι"},
		{Name: "Γ.Ν. «ΚΑΤ»", Specialty: "Ορθοπαιδική / Orthopedics", TimeSlot: duty.SlotMorning, Date: day},
	}
}

func TestDuties_DefaultSpecialtyGroupedBySlot(t *testing.T) {
	c := newCommands(t, app.DutyResult{Records: liveRecords(), Status: app.StatusFound})
	assert.Contains(t, c.Duties(nil), "/refresh")

	c.Refresh(context.Background())
	msg := c.Duties(nil)
	assert.True(t, strings.HasPrefix(msg, "Εφημερίες 2025-10-14: Καρδιολογική"))
	morning := strings.Index(msg, string(duty.SlotMorning))
	fullDay := strings.Index(msg, string(duty.SlotFullDay))
	require.True(t, morning >= 0 && fullDay >= 0)
	assert.Less(t, morning, fullDay)
	assert.Contains(t, msg, "• Γ.Ν. «ΑΤΤΙΚΟΝ» (Χαϊδάρι)")
	assert.Contains(t, msg, "τηλ. 2132041000")
	assert.NotContains(t, msg, "ΚΑΤ")
}

func TestDuties_ExplicitAndUnknownSpecialty(t *testing.T) {
	c := newCommands(t, app.DutyResult{Records: liveRecords(), Status: app.StatusFound})
	c.Refresh(context.Background())

	assert.Contains(t, c.Duties([]string{"Ορθοπαιδική"}), "Γ.Ν. «ΚΑΤ»")
	all := c.Duties([]string{app.AllSpecialties})
	assert.Contains(t, all, "[Ορθοπαιδική / Orthopedics]")

	msg := c.Duties([]string{"Οδοντιατρική"})
	assert.Contains(t, msg, "Δεν βρέθηκαν")
	assert.Contains(t, msg, "Καρδιολογική, Ορθοπαιδική")
}

func TestRefresh_ReportsOrigin(t *testing.T) {
	c := newCommands(t, app.DutyResult{Status: app.StatusNoSource})
	msg := c.Refresh(context.Background())
	assert.Contains(t, msg, "προέλευση sample")
	assert.Contains(t, msg, "κατάσταση no_source")
	assert.Contains(t, c.Duties([]string{app.AllSpecialties}), "(προέλευση: sample)")
}

func TestRosterImportAndEdit(t *testing.T) {
	c := newCommands(t, app.DutyResult{})
	ctx := context.Background()

	assert.Contains(t, c.Shift(nil), "Δεν έχει φορτωθεί")
	assert.Contains(t, c.SetShift(ctx, []string{"14", "minor_shift", "Χ"}), "Δεν έχει φορτωθεί")

	reply, needsConfirm := c.ImportRoster(ctx, 1, []byte("october"))
	assert.False(t, needsConfirm)
	assert.Equal(t, "Εισήχθη το πρόγραμμα 10/2025 (1 ημέρες).", reply)

	shiftMsg := c.Shift(nil)
	assert.True(t, strings.HasPrefix(shiftMsg, "14 ΟΚΤΩΒΡΙΟΥ 2025 (Τρίτη)"))
	assert.Contains(t, shiftMsg, "Παπαδόπουλος")

	assert.Contains(t, c.SetShift(ctx, []string{"14", "minor_shift", "Θεοδώρου", "Β."}), "Θεοδώρου Β.")
	assert.Contains(t, c.SetShift(ctx, []string{"3", "minor_shift", "Χ"}), "δεν υπάρχει")
	assert.Contains(t, c.SetShift(ctx, []string{"14", "nurse", "Χ"}), "Άγνωστο πεδίο")
	assert.Contains(t, c.SetShift(ctx, []string{"x", "minor_shift"}), "αριθμός")
	assert.Contains(t, c.SetShift(ctx, []string{"14"}), "Χρήση")

	assert.Contains(t, c.Shift([]string{"2025-10-15"}), "Δεν υπάρχει εγγραφή")
	assert.Contains(t, c.Shift([]string{"15/10"}), "Μη έγκυρη")
}

func TestRosterImport_MismatchNeedsConfirmation(t *testing.T) {
	c := newCommands(t, app.DutyResult{})
	ctx := context.Background()

	reply, needsConfirm := c.ImportRoster(ctx, 7, []byte("september"))
	assert.True(t, needsConfirm)
	assert.Contains(t, reply, "9/2025")
	assert.Contains(t, reply, "10/2025")
	assert.Nil(t, c.service.Store().Shifts())

	assert.Equal(t, "Δεν υπάρχει εκκρεμής εισαγωγή.", c.ConfirmImport(ctx, 8))
	assert.Equal(t, "Εισήχθη το πρόγραμμα 9/2025 (1 ημέρες).", c.ConfirmImport(ctx, 7))
	assert.Equal(t, "Δεν υπάρχει εκκρεμής εισαγωγή.", c.ConfirmImport(ctx, 7))

	_, needsConfirm = c.ImportRoster(ctx, 7, []byte("september"))
	require.True(t, needsConfirm)
	assert.Equal(t, "Η εισαγωγή ακυρώθηκε.", c.CancelImport(7))
	assert.Equal(t, "Δεν υπάρχει εκκρεμής εισαγωγή.", c.CancelImport(7))
}

func TestRosterImport_BadStructure(t *testing.T) {
	c := newCommands(t, app.DutyResult{})
	reply, needsConfirm := c.ImportRoster(context.Background(), 1, []byte("garbage"))
	assert.False(t, needsConfirm)
	assert.Contains(t, reply, "Μη αναγνωρίσιμη δομή")
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("α", maxMessageLen+10)
	out := truncate(long)
	assert.Equal(t, maxMessageLen, len([]rune(out)))
	assert.True(t, strings.HasSuffix(out, "…"))
	assert.Equal(t, "short", truncate("short"))
}

type recordingSender struct {
	chats []int64
	texts []string
	err   error
}

func (r *recordingSender) SendMessage(chatID int64, text string) error {
	r.chats = append(r.chats, chatID)
	r.texts = append(r.texts, text)
	return r.err
}

func TestAdminNotifier(t *testing.T) {
	sender := &recordingSender{}
	n := NewAdminNotifier(sender, 42, testLogger())

	n.NotifyRefresh(app.RefreshReport{Origin: app.OriginLive, Records: 10})
	assert.Empty(t, sender.texts)

	n.NotifyRefresh(app.RefreshReport{
		Date: duty.Date{Year: 2025, Month: time.October, Day: 14}, Origin: app.OriginSnapshot,
		Status: app.StatusUnsupported, Records: 5,
	})
	require.Len(t, sender.texts, 1)
	assert.Equal(t, []int64{42}, sender.chats)
	assert.Contains(t, sender.texts[0], "2025-10-14")
	assert.Contains(t, sender.texts[0], "DOC")

	sender.err = errors.New("blocked")
	n.NotifyRefresh(app.RefreshReport{Origin: app.OriginSample})
	assert.Len(t, sender.texts, 2)
}

func TestHelpTextListsCommands(t *testing.T) {
	for _, cmd := range []string{"/duties", "/shift", "/setshift", "/refresh", "/help"} {
		assert.Contains(t, helpText(), cmd)
	}
}
