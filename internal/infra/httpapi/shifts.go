package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hospital_duty_kiosk/internal/app"
	"hospital_duty_kiosk/internal/domain/duty"
	"hospital_duty_kiosk/internal/domain/shift"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

var ErrNoRosterEntry = fmt.Errorf("no roster entry for this date")
var ErrEmptyUpload = fmt.Errorf("request body holds no document")
var ErrInvalidDay = fmt.Errorf("day must be a number between 1 and 31")

const confirmHint = "repeat the request with confirm=true to import it anyway"

// ShiftResponse is the roster entry of one day.
type ShiftResponse struct {
	Date    string       `json:"date"`
	Shift   *shift.Daily `json:"shift"`
	Summary string       `json:"summary"`
}

// ImportResponse describes an installed roster.
type ImportResponse struct {
	Month  int    `json:"month"`
	Year   int    `json:"year"`
	Period string `json:"period"`
	Days   []int  `json:"days"`
}

type updateShiftRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// GetShift handles GET /api/shifts/{date}
func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	date, err := duty.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	d := h.service.Store().ShiftFor(date.In(h.location))
	if d == nil {
		writeError(w, http.StatusNotFound, ErrNoRosterEntry)
		return
	}
	writeJSON(w, http.StatusOK, ShiftResponse{Date: date.String(), Shift: d, Summary: d.Summary()})
}

// UpdateShift handles PUT /api/shifts/{day} with {"field": "...", "value": "..."}.
// An empty value clears a role field; attendings take a comma separated list.
func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil || day < 1 || day > 31 {
		writeError(w, http.StatusBadRequest, ErrInvalidDay)
		return
	}

	var req updateShiftRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	field, err := shift.ParseField(req.Field)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	d, err := h.service.UpdateShift(r.Context(), day, field, req.Value)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, d)
	case errors.Is(err, app.ErrNoShifts), errors.Is(err, shift.ErrDayNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, shift.ErrUnknownField):
		writeError(w, http.StatusBadRequest, err)
	default:
		h.logger.WithError(err).WithField("day", day).Error("Shift update failed")
		writeError(w, http.StatusInternalServerError, err)
	}
}

// ImportShifts handles POST /api/shifts/import?confirm=true&month=YYYY-MM
// The DOCX roster is the raw body or the "file" part of a multipart form.
// month defaults to the current month.
func (h *Handler) ImportShifts(w http.ResponseWriter, r *http.Request) {
	log := h.logger.WithField("handler", "import_shifts")

	expected, err := h.expectedPeriod(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	confirm, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	raw, err := h.readUpload(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	set, err := h.service.ImportShifts(r.Context(), raw, expected, confirm)
	var mismatch *app.PeriodMismatchError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, ImportResponse{
			Month:  int(set.Month),
			Year:   set.Year,
			Period: set.Period(),
			Days:   set.SortedDays(),
		})
	case errors.As(err, &mismatch):
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:    app.ErrPeriodMismatch.Error(),
			Found:    fmt.Sprintf("%d/%d", int(mismatch.FoundMonth), mismatch.FoundYear),
			Expected: fmt.Sprintf("%d/%d", int(mismatch.ExpectedMonth), mismatch.ExpectedYear),
			Hint:     confirmHint,
		})
	case errors.Is(err, app.ErrParseFailure):
		writeError(w, http.StatusUnprocessableEntity, err)
	default:
		log.WithError(err).Error("Roster import failed")
		writeError(w, http.StatusInternalServerError, err)
	}
}

func (h *Handler) expectedPeriod(raw string) (time.Time, error) {
	if raw = strings.TrimSpace(raw); raw == "" {
		return h.now().In(h.location), nil
	}
	t, err := time.ParseInLocation("2006-01", raw, h.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", raw)
	}
	return t, nil
}

func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	var body io.Reader = r.Body
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "multipart/form-data" {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEmptyUpload, err)
		}
		defer file.Close()
		body = file
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrEmptyUpload
	}
	h.logger.WithFields(logrus.Fields{"bytes": len(raw)}).Debug("Roster upload received")
	return raw, nil
}
