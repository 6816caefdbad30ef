package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/citraoverseas/placement/pkg/models"
	"github.com/citraoverseas/placement/pkg/repository"
)

type JobsHandler struct {
	jobRepo repository.JobRepo
}

func NewJobsHandler(jr repository.JobRepo) *JobsHandler {
	return &JobsHandler{jobRepo: jr}
}

// ListActive returns the public catalog of open positions, newest first.
func (h *JobsHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobRepo.ListJobs(r.Context(), true)
	if err != nil {
		writeError(w, "failed to load jobs", http.StatusInternalServerError)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	writeJSON(w, jobs, http.StatusOK)
}

// ListAll is the staff view including inactive jobs.
func (h *JobsHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobRepo.ListJobs(r.Context(), false)
	if err != nil {
		writeError(w, "failed to load jobs", http.StatusInternalServerError)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	writeJSON(w, jobs, http.StatusOK)
}

func (h *JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var job models.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	job.Title = strings.TrimSpace(job.Title)
	if job.Title == "" {
		writeError(w, "title is required", http.StatusBadRequest)
		return
	}

	if err := h.jobRepo.CreateJob(r.Context(), &job); err != nil {
		writeError(w, "failed to create job", http.StatusInternalServerError)
		return
	}
	writeJSON(w, job, http.StatusCreated)
}

func (h *JobsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var job models.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	job.ID = id
	job.Title = strings.TrimSpace(job.Title)
	if job.Title == "" {
		writeError(w, "title is required", http.StatusBadRequest)
		return
	}

	if err := h.jobRepo.UpdateJob(r.Context(), &job); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, "job not found", http.StatusNotFound)
			return
		}
		writeError(w, "failed to update job", http.StatusInternalServerError)
		return
	}
	writeJSON(w, job, http.StatusOK)
}

func (h *JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.jobRepo.DeleteJob(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, "job not found", http.StatusNotFound)
			return
		}
		writeError(w, "failed to delete job", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type toggleResponse struct {
	ID       string `json:"id"`
	IsActive bool   `json:"is_active"`
}

// Toggle flips the active flag; inactive jobs stay stored but leave the
// public catalog and the recommendation pool.
func (h *JobsHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	job, err := h.jobRepo.GetJob(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, "job not found", http.StatusNotFound)
			return
		}
		writeError(w, "failed to load job", http.StatusInternalServerError)
		return
	}

	if err := h.jobRepo.SetJobActive(r.Context(), id, !job.IsActive); err != nil {
		writeError(w, "failed to toggle job", http.StatusInternalServerError)
		return
	}
	writeJSON(w, toggleResponse{ID: id, IsActive: !job.IsActive}, http.StatusOK)
}
