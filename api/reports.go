package api

import (
	"net/http"

	"github.com/citraoverseas/placement/pkg/models"
	"github.com/citraoverseas/placement/pkg/repository"
)

type ReportsHandler struct {
	reportRepo repository.ReportRepo
}

func NewReportsHandler(rr repository.ReportRepo) *ReportsHandler {
	return &ReportsHandler{reportRepo: rr}
}

type reportsResponse struct {
	Overview     *models.Overview             `json:"overview"`
	StatusCounts []models.StatusCount         `json:"status_counts"`
	ScoreBands   []models.ScoreBand           `json:"score_bands"`
	TopJobs      []models.JobApplicationCount `json:"top_jobs"`
	Countries    []models.CountryCount        `json:"countries"`
	Categories   []models.CategoryCount       `json:"categories"`
}

// Get assembles every dataset the admin dashboard charts from.
func (h *ReportsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	overview, err := h.reportRepo.Overview(ctx)
	if err != nil {
		writeError(w, "failed to load reports", http.StatusInternalServerError)
		return
	}
	statusCounts, err := h.reportRepo.ApplicationStatusCounts(ctx)
	if err != nil {
		writeError(w, "failed to load reports", http.StatusInternalServerError)
		return
	}
	scores, err := h.reportRepo.ApplicationScores(ctx)
	if err != nil {
		writeError(w, "failed to load reports", http.StatusInternalServerError)
		return
	}
	topJobs, err := h.reportRepo.TopJobsByApplications(ctx, 10)
	if err != nil {
		writeError(w, "failed to load reports", http.StatusInternalServerError)
		return
	}
	countries, err := h.reportRepo.ParticipantsByCountry(ctx)
	if err != nil {
		writeError(w, "failed to load reports", http.StatusInternalServerError)
		return
	}
	categories, err := h.reportRepo.JobsByCategory(ctx)
	if err != nil {
		writeError(w, "failed to load reports", http.StatusInternalServerError)
		return
	}

	writeJSON(w, reportsResponse{
		Overview:     overview,
		StatusCounts: statusCounts,
		ScoreBands:   scoreBands(scores),
		TopJobs:      topJobs,
		Countries:    countries,
		Categories:   categories,
	}, http.StatusOK)
}

// scoreBands buckets match scores into the fixed dashboard ranges.
func scoreBands(scores []int) []models.ScoreBand {
	bands := []models.ScoreBand{
		{Range: "0-30"},
		{Range: "31-50"},
		{Range: "51-70"},
		{Range: "71-85"},
		{Range: "86-100"},
	}
	for _, s := range scores {
		switch {
		case s <= 30:
			bands[0].Count++
		case s <= 50:
			bands[1].Count++
		case s <= 70:
			bands[2].Count++
		case s <= 85:
			bands[3].Count++
		default:
			bands[4].Count++
		}
	}
	return bands
}
