package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"hospital_duty_kiosk/internal/app"
	"hospital_duty_kiosk/internal/domain/duty"

	"github.com/sirupsen/logrus"
)

var ErrMissingQuery = fmt.Errorf("query parameter q is required")
var ErrUnknownSearchField = fmt.Errorf("by must be one of specialty, area, name")
var ErrUnknownGrouping = fmt.Errorf("group must be one of specialty, time_slot")

// Handler serves the kiosk API on top of the schedule service.
type Handler struct {
	service   *app.ScheduleService
	location  *time.Location
	logger    *logrus.Entry
	now       func() time.Time
	maxUpload int64
}

func NewHandler(service *app.ScheduleService, loc *time.Location, logger *logrus.Entry) *Handler {
	return &Handler{
		service:   service,
		location:  loc,
		logger:    logger,
		now:       time.Now,
		maxUpload: 32 << 20,
	}
}

type groupResponse struct {
	Key       string        `json:"key"`
	Hospitals []duty.Record `json:"hospitals"`
}

// DutiesResponse is the body of GET /api/duties.
type DutiesResponse struct {
	Date             string          `json:"date"`
	LastUpdate       *string         `json:"last_update"`
	Origin           app.Origin      `json:"origin"`
	Status           app.DutyStatus  `json:"status,omitempty"`
	SourceLabel      string          `json:"source_label,omitempty"`
	Specialty        string          `json:"specialty"`
	DefaultSpecialty string          `json:"default_specialty"`
	Hospitals        []duty.Record   `json:"hospitals"`
	Groups           []groupResponse `json:"groups,omitempty"`
}

// GetDuties handles GET /api/duties?date=YYYY-MM-DD&specialty=&group=
// It refreshes the schedule for the date and returns the resulting records.
func (h *Handler) GetDuties(w http.ResponseWriter, r *http.Request) {
	date, err := h.dateParam(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	group := r.URL.Query().Get("group")
	if group != "" && group != "specialty" && group != "time_slot" {
		writeError(w, http.StatusBadRequest, ErrUnknownGrouping)
		return
	}

	report := h.service.Refresh(r.Context(), date.In(h.location))
	store := h.service.Store()
	state := store.DutyState()

	specialty := strings.TrimSpace(r.URL.Query().Get("specialty"))
	if specialty == "" {
		specialty = app.AllSpecialties
	}
	hospitals := store.FilterBySpecialty(specialty)
	if hospitals == nil {
		hospitals = []duty.Record{}
	}

	resp := DutiesResponse{
		Date:             date.String(),
		LastUpdate:       formatTime(state.LastUpdate, h.location),
		Origin:           state.Origin,
		Status:           state.Status,
		SourceLabel:      state.SourceLabel,
		Specialty:        specialty,
		DefaultSpecialty: store.DefaultSpecialty(),
		Hospitals:        hospitals,
	}
	switch group {
	case "specialty":
		for _, g := range store.GroupBySpecialty() {
			resp.Groups = append(resp.Groups, groupResponse{Key: g.Specialty, Hospitals: g.Records})
		}
	case "time_slot":
		for _, g := range store.GroupByTimeSlot() {
			resp.Groups = append(resp.Groups, groupResponse{Key: string(g.TimeSlot), Hospitals: g.Records})
		}
	}

	h.logger.WithFields(logrus.Fields{
		"run_id": report.RunID,
		"date":   resp.Date,
		"origin": report.Origin,
	}).Debug("Duties served")
	writeJSON(w, http.StatusOK, resp)
}

// SearchDuties handles GET /api/duties/search?q=&by=specialty|area|name
// It searches the records already loaded without refreshing.
func (h *Handler) SearchDuties(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, ErrMissingQuery)
		return
	}

	store := h.service.Store()
	by := r.URL.Query().Get("by")
	var hospitals []duty.Record
	switch by {
	case "", "specialty":
		by = "specialty"
		hospitals = store.SearchBySpecialty(q)
	case "area":
		hospitals = store.SearchByArea(q)
	case "name":
		hospitals = store.SearchByName(q)
	default:
		writeError(w, http.StatusBadRequest, ErrUnknownSearchField)
		return
	}
	if hospitals == nil {
		hospitals = []duty.Record{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":     q,
		"by":        by,
		"hospitals": hospitals,
	})
}

// GetSpecialties handles GET /api/specialties
func (h *Handler) GetSpecialties(w http.ResponseWriter, r *http.Request) {
	store := h.service.Store()
	specialties := store.Specialties()
	if specialties == nil {
		specialties = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"all":         app.AllSpecialties,
		"default":     store.DefaultSpecialty(),
		"specialties": specialties,
	})
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	store := h.service.Store()
	state := store.DutyState()
	resp := map[string]any{
		"status":      "ok",
		"origin":      state.Origin,
		"last_update": formatTime(state.LastUpdate, h.location),
		"records":     len(state.Records),
	}
	if set := store.Shifts(); set != nil {
		resp["shift_period"] = set.Period()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) dateParam(raw string) (duty.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return duty.DateOf(h.now().In(h.location)), nil
	}
	return duty.ParseDate(raw)
}
