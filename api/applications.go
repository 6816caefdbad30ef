package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/citraoverseas/placement/internal/jobs"
	"github.com/citraoverseas/placement/internal/workflow"
	"github.com/citraoverseas/placement/pkg/models"
	"github.com/citraoverseas/placement/pkg/repository"
)

type ApplicationsHandler struct {
	appRepo repository.ApplicationRepo
	jobRepo repository.JobRepo
	queue   jobs.Enqueuer
}

func NewApplicationsHandler(ar repository.ApplicationRepo, jr repository.JobRepo, q jobs.Enqueuer) *ApplicationsHandler {
	return &ApplicationsHandler{appRepo: ar, jobRepo: jr, queue: q}
}

type applyRequest struct {
	JobID string `json:"job_id"`
}

// Apply submits one application for the authenticated user. The store's
// uniqueness constraint is the duplicate guard; its violation is surfaced as
// "already applied", not a generic failure.
func (h *ApplicationsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.JobID == "" {
		writeError(w, "job_id is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	if _, err := h.jobRepo.GetJob(ctx, req.JobID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, "job not found", http.StatusNotFound)
			return
		}
		writeError(w, "failed to load job", http.StatusInternalServerError)
		return
	}

	app := models.Application{
		JobID:  req.JobID,
		UserID: uid,
		Status: string(workflow.StatusSubmitted),
	}
	if err := h.appRepo.CreateApplication(ctx, &app); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, "already applied", http.StatusConflict)
			return
		}
		writeError(w, "failed to submit application", http.StatusInternalServerError)
		return
	}

	// snapshot the match score off the request path; losing the snapshot
	// must not fail the submission
	payload := jobs.ScoreSnapshotPayload{ApplicationID: app.ID, UserID: uid, JobID: req.JobID}
	if h.queue != nil {
		if _, err := h.queue.Enqueue(ctx, jobs.TypeScoreSnapshot, payload, 100, 3); err != nil {
			logger.Warn("failed to enqueue score snapshot", "application_id", app.ID, "err", err)
		}
	}

	writeJSON(w, app, http.StatusCreated)
}

type applicationView struct {
	models.ApplicationWithJob
	StatusLabel string          `json:"status_label"`
	Steps       []workflow.Step `json:"steps"`
	CurrentStep int             `json:"current_step"`
	Progress    int             `json:"progress"`
}

// ListMine returns the user's applications with the tracker state rendered
// for each. Unknown status values come back verbatim with zero progress.
func (h *ApplicationsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	apps, err := h.appRepo.ListApplicationsByUser(r.Context(), uid)
	if err != nil {
		writeError(w, "failed to load applications", http.StatusInternalServerError)
		return
	}

	views := make([]applicationView, 0, len(apps))
	for _, a := range apps {
		status := workflow.Status(a.Status)
		steps, idx := workflow.CurrentIndex(status)
		views = append(views, applicationView{
			ApplicationWithJob: a,
			StatusLabel:        workflow.Label(status),
			Steps:              steps,
			CurrentStep:        idx,
			Progress:           workflow.ProgressPercent(steps, idx),
		})
	}

	writeJSON(w, views, http.StatusOK)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus is the staff-side status mutation. Transitions are validated
// against the workflow: forward only, rejection only before acceptance.
func (h *ApplicationsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	next := workflow.Status(req.Status)
	if !workflow.Known(next) {
		writeError(w, "unknown status", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	app, err := h.appRepo.GetApplication(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, "application not found", http.StatusNotFound)
			return
		}
		writeError(w, "failed to load application", http.StatusInternalServerError)
		return
	}

	if !workflow.CanTransition(workflow.Status(app.Status), next) {
		writeError(w, "invalid status transition", http.StatusConflict)
		return
	}

	if err := h.appRepo.UpdateApplicationStatus(ctx, id, string(next)); err != nil {
		writeError(w, "failed to update status", http.StatusInternalServerError)
		return
	}

	app.Status = string(next)
	writeJSON(w, app, http.StatusOK)
}
