package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Dan9191/finance-tracker/internal/export"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/Dan9191/finance-tracker/internal/service"
)

type summaryHistoryResponse struct {
	Summaries []models.BalanceSummary `json:"summaries"`
}

// monthYear reads the mandatory month and year parameters
func monthYear(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	p := newQueryParser(r.URL.Query())
	p.require("month", "year")
	month := p.intParam("month", 1, 12)
	year := p.intParam("year", minYear, maxYear)
	if len(p.problems) > 0 {
		writeError(w, http.StatusUnprocessableEntity, p.err())
		return 0, 0, false
	}
	return month, year, true
}

// Summary returns the balance summary of one month
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	month, year, ok := monthYear(w, r)
	if !ok {
		return
	}
	summary, err := h.svc.MonthlySummary(r.Context(), userID, month, year)
	if err != nil {
		h.handleError(w, r, err, "Summary not found")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// SummaryHistory returns one summary per month. Missing bounds default to
// the months leading up to the current one.
func (h *Handler) SummaryHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	p := newQueryParser(r.URL.Query())
	from, startConflict := periodParams(p, "start_month", "start_year")
	to, endConflict := periodParams(p, "end_month", "end_year")
	if len(p.problems) > 0 {
		writeError(w, http.StatusUnprocessableEntity, p.err())
		return
	}
	for _, conflict := range []string{startConflict, endConflict} {
		if conflict != "" {
			writeError(w, http.StatusBadRequest, conflict)
			return
		}
	}

	start, end := service.HistoryRange(from, to, time.Now())
	summaries, err := h.svc.SummaryHistory(r.Context(), userID, start, end)
	if err != nil {
		h.handleError(w, r, err, "Summary not found")
		return
	}
	writeJSON(w, http.StatusOK, summaryHistoryResponse{Summaries: summaries})
}

// ExportSummary downloads the summary of one month as XML
func (h *Handler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	month, year, ok := monthYear(w, r)
	if !ok {
		return
	}
	doc, err := h.svc.ExportSummary(r.Context(), userID, month, year)
	if err != nil {
		h.handleError(w, r, err, "Summary not found")
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="summary-%04d-%02d.xml"`, year, month))
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}
