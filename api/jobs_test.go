package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/citraoverseas/placement/api"
	"github.com/citraoverseas/placement/pkg/models"
	"github.com/citraoverseas/placement/pkg/repository/mock"
)

func TestListActiveHidesInactiveJobs(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Jobs.Stored = []models.Job{
		{ID: "j1", Title: "Welder", IsActive: true},
		{ID: "j2", Title: "Caregiver", IsActive: false},
	}
	h := api.NewJobsHandler(mocks.Jobs)

	w := httptest.NewRecorder()
	h.ListActive(w, httptest.NewRequest(http.MethodGet, "/jobs", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var jobs []models.Job
	if err := json.Unmarshal(w.Body.Bytes(), &jobs); err != nil {
		t.Fatalf("unmarshal jobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != "j1" {
		t.Fatalf("expected only the active job, got %+v", jobs)
	}

	w = httptest.NewRecorder()
	h.ListAll(w, httptest.NewRequest(http.MethodGet, "/admin/jobs", nil))
	if err := json.Unmarshal(w.Body.Bytes(), &jobs); err != nil {
		t.Fatalf("unmarshal jobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("staff view must include inactive jobs, got %+v", jobs)
	}
}

func TestCreateJobRequiresTitle(t *testing.T) {
	h := api.NewJobsHandler(mock.NewMocks().Jobs)

	body, _ := json.Marshal(map[string]string{"country": "Japan"})
	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/admin/jobs", bytes.NewReader(body)))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateJob(t *testing.T) {
	mocks := mock.NewMocks()
	h := api.NewJobsHandler(mocks.Jobs)

	body, _ := json.Marshal(map[string]any{"title": "Welder", "country": "Japan", "is_active": true})
	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/admin/jobs", bytes.NewReader(body)))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", w.Code, w.Body.String())
	}
	if len(mocks.Jobs.Stored) != 1 {
		t.Fatalf("expected 1 stored job, got %d", len(mocks.Jobs.Stored))
	}
}

func TestUpdateJobNotFound(t *testing.T) {
	h := api.NewJobsHandler(mock.NewMocks().Jobs)

	body, _ := json.Marshal(map[string]string{"title": "Welder"})
	req := httptest.NewRequest(http.MethodPut, "/admin/jobs/missing", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "missing"})
	w := httptest.NewRecorder()
	h.Update(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestToggleJob(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Jobs.Stored = []models.Job{{ID: "j1", Title: "Welder", IsActive: true}}
	h := api.NewJobsHandler(mocks.Jobs)

	req := httptest.NewRequest(http.MethodPost, "/admin/jobs/j1/toggle", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "j1"})
	w := httptest.NewRecorder()
	h.Toggle(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mocks.Jobs.Stored[0].IsActive {
		t.Fatalf("expected job to be toggled inactive")
	}

	// toggling again flips it back
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin/jobs/j1/toggle", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "j1"})
	h.Toggle(w, req)
	if !mocks.Jobs.Stored[0].IsActive {
		t.Fatalf("expected job to be toggled back active")
	}
}

func TestDeleteJob(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Jobs.Stored = []models.Job{{ID: "j1", Title: "Welder"}}
	h := api.NewJobsHandler(mocks.Jobs)

	req := httptest.NewRequest(http.MethodDelete, "/admin/jobs/j1", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "j1"})
	w := httptest.NewRecorder()
	h.Delete(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if len(mocks.Jobs.Stored) != 0 {
		t.Fatalf("expected job removed, got %+v", mocks.Jobs.Stored)
	}
}
