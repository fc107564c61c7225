package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/holidayopt/internal/calendar"
	"github.com/wonny/holidayopt/internal/metric"
	"github.com/wonny/holidayopt/internal/optimizer"
	"github.com/wonny/holidayopt/pkg/logger"
)

// CalendarHandler serves the fixed holidays and their distance table
// ⭐ SSOT: 달력 조회 API 핸들러는 이 구조체에서만
type CalendarHandler struct {
	cal    *calendar.Calendar
	logger *logger.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(cal *calendar.Calendar, log *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		cal:    cal,
		logger: log,
	}
}

// HolidaysResponse lists the fixed holidays of a year
type HolidaysResponse struct {
	Year     int                `json:"year"`
	Ruleset  string             `json:"ruleset"`
	Holidays []calendar.Holiday `json:"holidays"`
}

// DistanceResponse is the baseline days-until-next-holiday table of a year
type DistanceResponse struct {
	Year  int     `json:"year"`
	Total int     `json:"total"`
	Mean  float64 `json:"mean"`
	Max   int     `json:"max"`
	Table []int   `json:"table"` // index 0 = Jan 1
}

// GetHolidays returns the fixed holidays
// GET /api/holidays/{year}
func (h *CalendarHandler) GetHolidays(w http.ResponseWriter, r *http.Request) {
	year, ok := h.yearVar(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, HolidaysResponse{
		Year:     year,
		Ruleset:  h.cal.ID(),
		Holidays: h.cal.HolidaysForYear(year),
	})
}

// GetDistance returns the baseline distance table
// GET /api/distance/{year}
func (h *CalendarHandler) GetDistance(w http.ResponseWriter, r *http.Request) {
	year, ok := h.yearVar(w, r)
	if !ok {
		return
	}

	fixed := calendar.Dates(h.cal.HolidaysForYear(year))
	table := metric.Compute(h.cal, year, fixed)

	respondJSON(w, http.StatusOK, DistanceResponse{
		Year:  year,
		Total: table.Sum(),
		Mean:  table.Mean(),
		Max:   table.Max(),
		Table: table,
	})
}

func (h *CalendarHandler) yearVar(w http.ResponseWriter, r *http.Request) (int, bool) {
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil || year < optimizer.MinYear || year > optimizer.MaxYear {
		respondError(w, http.StatusBadRequest, "Invalid year (expected 1..9998)")
		return 0, false
	}
	return year, true
}
