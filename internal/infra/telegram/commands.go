package telegram

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"hospital_duty_kiosk/internal/app"
	"hospital_duty_kiosk/internal/domain/duty"
	"hospital_duty_kiosk/internal/domain/registry"
	"hospital_duty_kiosk/internal/domain/shift"
)

const maxMessageLen = 4000 // Telegram caps messages at 4096 characters

// Commands renders the admin bot's replies. Handlers only parse and send.
type Commands struct {
	service  *app.ScheduleService
	location *time.Location
	now      func() time.Time

	mu      sync.Mutex
	pending map[int64][]byte // roster uploads awaiting period confirmation
}

func NewCommands(service *app.ScheduleService, loc *time.Location) *Commands {
	return &Commands{
		service:  service,
		location: loc,
		now:      time.Now,
		pending:  map[int64][]byte{},
	}
}

// Duties lists the loaded duties of one specialty grouped by time slot.
// With no argument the kiosk's default specialty is used.
func (c *Commands) Duties(args []string) string {
	store := c.service.Store()
	if len(store.Duties()) == 0 {
		return "Δεν υπάρχουν φορτωμένες εφημερίες. Χρησιμοποιήστε /refresh."
	}

	specialty := strings.TrimSpace(strings.Join(args, " "))
	if specialty == "" {
		specialty = store.DefaultSpecialty()
	}
	records := store.FilterBySpecialty(specialty)
	if len(records) == 0 {
		return fmt.Sprintf("Δεν βρέθηκαν εφημερίες για «%s».\nΔιαθέσιμες: %s",
			specialty, strings.Join(store.Specialties(), ", "))
	}
	return truncate(formatDuties(specialty, records, store.DutyState()))
}

func formatDuties(specialty string, records []duty.Record, state app.DutyState) string {
	bySlot := map[duty.TimeSlot][]duty.Record{}
	var slots []duty.TimeSlot
	for _, r := range records {
		if _, ok := bySlot[r.TimeSlot]; !ok {
			slots = append(slots, r.TimeSlot)
		}
		bySlot[r.TimeSlot] = append(bySlot[r.TimeSlot], r)
	}
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Order() < slots[j].Order() })

	var b strings.Builder
	fmt.Fprintf(&b, "Εφημερίες %s: %s\n", records[0].Date, specialty)
	if state.Origin != app.OriginLive {
		fmt.Fprintf(&b, "(προέλευση: %s)\n", state.Origin)
	}
	for _, slot := range slots {
		fmt.Fprintf(&b, "\n%s\n", slot)
		for _, r := range bySlot[slot] {
			b.WriteString("• ")
			b.WriteString(r.Name)
			if r.Area != "" {
				fmt.Fprintf(&b, " (%s)", r.Area)
			}
			if r.Phone != "" {
				fmt.Fprintf(&b, " τηλ. %s", r.Phone)
			}
			if specialty == app.AllSpecialties {
				fmt.Fprintf(&b, " [%s]", r.Specialty)
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Shift shows the roster entry for a date, today by default.
func (c *Commands) Shift(args []string) string {
	date := c.now().In(c.location)
	if len(args) > 0 {
		d, err := duty.ParseDate(args[0])
		if err != nil {
			return "Μη έγκυρη ημερομηνία. Χρησιμοποιήστε: /shift [ΕΕΕΕ-ΜΜ-ΗΗ]"
		}
		date = d.In(c.location)
	}

	store := c.service.Store()
	if store.Shifts() == nil {
		return "Δεν έχει φορτωθεί πρόγραμμα εφημεριών κλινικής. Στείλτε το αρχείο DOCX."
	}
	d := store.ShiftFor(date)
	if d == nil {
		return fmt.Sprintf("Δεν υπάρχει εγγραφή για %s.", registry.DutyDateLabel(date))
	}
	return fmt.Sprintf("%s (%s)\n%s", registry.DutyDateLabel(date), d.Weekday, strings.ReplaceAll(d.Summary(), " | ", "\n"))
}

// SetShift corrects one roster field: /setshift <day> <field> <value...>.
// An empty value clears a role.
func (c *Commands) SetShift(ctx context.Context, args []string) string {
	if len(args) < 2 {
		return setShiftUsage()
	}
	day, err := strconv.Atoi(args[0])
	if err != nil {
		return "Η ημέρα πρέπει να είναι αριθμός.\n" + setShiftUsage()
	}
	field, err := shift.ParseField(args[1])
	if err != nil {
		return fmt.Sprintf("Άγνωστο πεδίο «%s».\n%s", args[1], setShiftUsage())
	}
	value := strings.Join(args[2:], " ")

	d, err := c.service.UpdateShift(ctx, day, field, value)
	switch {
	case err == nil:
		return fmt.Sprintf("Ενημερώθηκε η %d: %s", day, d.Summary())
	case errors.Is(err, app.ErrNoShifts):
		return "Δεν έχει φορτωθεί πρόγραμμα εφημεριών κλινικής."
	case errors.Is(err, shift.ErrDayNotFound):
		return fmt.Sprintf("Η ημέρα %d δεν υπάρχει στο πρόγραμμα.", day)
	default:
		return fmt.Sprintf("Σφάλμα ενημέρωσης: %s", err)
	}
}

func setShiftUsage() string {
	fields := []string{string(shift.FieldAttendings)}
	for _, f := range shift.RoleFields() {
		fields = append(fields, string(f))
	}
	return "Χρήση: /setshift <ημέρα> <πεδίο> <τιμή>\nΠεδία: " + strings.Join(fields, ", ")
}

// Refresh runs a refresh for today and reports where the data came from.
func (c *Commands) Refresh(ctx context.Context) string {
	report := c.service.Refresh(ctx, c.now().In(c.location))
	msg := fmt.Sprintf("Ανανέωση %s: %d εγγραφές, προέλευση %s", report.Date, report.Records, report.Origin)
	if report.Status != "" {
		msg += fmt.Sprintf(", κατάσταση %s", report.Status)
	}
	if report.SourceLabel != "" {
		msg += fmt.Sprintf("\nΠηγή: %s", report.SourceLabel)
	}
	return msg
}

// ImportRoster installs an uploaded DOCX roster. When the roster is for
// another month it is kept aside and needsConfirm is true.
func (c *Commands) ImportRoster(ctx context.Context, senderID int64, raw []byte) (reply string, needsConfirm bool) {
	set, err := c.service.ImportShifts(ctx, raw, c.now().In(c.location), false)
	var mismatch *app.PeriodMismatchError
	switch {
	case err == nil:
		return importedReply(set), false
	case errors.As(err, &mismatch):
		c.mu.Lock()
		c.pending[senderID] = raw
		c.mu.Unlock()
		return fmt.Sprintf("Το πρόγραμμα αφορά %d/%d ενώ ο τρέχων μήνας είναι %d/%d. Να εισαχθεί;",
			int(mismatch.FoundMonth), mismatch.FoundYear, int(mismatch.ExpectedMonth), mismatch.ExpectedYear), true
	case errors.Is(err, app.ErrParseFailure):
		return fmt.Sprintf("Μη αναγνωρίσιμη δομή αρχείου: %s", err), false
	default:
		return fmt.Sprintf("Σφάλμα εισαγωγής: %s", err), false
	}
}

// ConfirmImport installs the roster held for senderID regardless of its period.
func (c *Commands) ConfirmImport(ctx context.Context, senderID int64) string {
	raw, ok := c.takePending(senderID)
	if !ok {
		return "Δεν υπάρχει εκκρεμής εισαγωγή."
	}
	set, err := c.service.ImportShifts(ctx, raw, c.now().In(c.location), true)
	if err != nil {
		return fmt.Sprintf("Σφάλμα εισαγωγής: %s", err)
	}
	return importedReply(set)
}

// CancelImport drops the roster held for senderID.
func (c *Commands) CancelImport(senderID int64) string {
	if _, ok := c.takePending(senderID); !ok {
		return "Δεν υπάρχει εκκρεμής εισαγωγή."
	}
	return "Η εισαγωγή ακυρώθηκε."
}

func (c *Commands) takePending(senderID int64) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.pending[senderID]
	delete(c.pending, senderID)
	return raw, ok
}

func importedReply(set *shift.MonthSet) string {
	return fmt.Sprintf("Εισήχθη το πρόγραμμα %s (%d ημέρες).", set.Period(), len(set.Days))
}

func helpText() string {
	return strings.Join([]string{
		"Διαθέσιμες εντολές:",
		"/duties [ειδικότητα] - εφημερίες ανά ειδικότητα",
		"/shift [ΕΕΕΕ-ΜΜ-ΗΗ] - εφημερία κλινικής για μια ημέρα",
		"/setshift <ημέρα> <πεδίο> <τιμή> - διόρθωση προγράμματος",
		"/refresh - ανανέωση από το Υπουργείο Υγείας",
		"/help - αυτό το μήνυμα",
		"",
		"Στείλτε αρχείο DOCX για εισαγωγή μηνιαίου προγράμματος.",
	}, "\n")
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxMessageLen {
		return s
	}
	return string(r[:maxMessageLen-1]) + "…"
}
