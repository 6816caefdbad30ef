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

type NotesHandler struct {
	noteRepo repository.NoteRepo
	appRepo  repository.ApplicationRepo
}

func NewNotesHandler(nr repository.NoteRepo, ar repository.ApplicationRepo) *NotesHandler {
	return &NotesHandler{noteRepo: nr, appRepo: ar}
}

type addNoteRequest struct {
	Note string `json:"note"`
}

func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	adminID := userID(r)
	if adminID == "" {
		writeError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	applicationID := mux.Vars(r)["id"]

	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	req.Note = strings.TrimSpace(req.Note)
	if req.Note == "" {
		writeError(w, "note is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	if _, err := h.appRepo.GetApplication(ctx, applicationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, "application not found", http.StatusNotFound)
			return
		}
		writeError(w, "failed to load application", http.StatusInternalServerError)
		return
	}

	note := models.ApplicationNote{
		ApplicationID: applicationID,
		AdminID:       adminID,
		Note:          req.Note,
	}
	if err := h.noteRepo.CreateNote(ctx, &note); err != nil {
		writeError(w, "failed to save note", http.StatusInternalServerError)
		return
	}
	writeJSON(w, note, http.StatusCreated)
}

func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	applicationID := mux.Vars(r)["id"]

	notes, err := h.noteRepo.ListNotesByApplication(r.Context(), applicationID)
	if err != nil {
		writeError(w, "failed to load notes", http.StatusInternalServerError)
		return
	}
	if notes == nil {
		notes = []models.ApplicationNote{}
	}
	writeJSON(w, notes, http.StatusOK)
}

func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.noteRepo.DeleteNote(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, "note not found", http.StatusNotFound)
			return
		}
		writeError(w, "failed to delete note", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
