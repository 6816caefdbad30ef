package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/citraoverseas/placement/pkg/models"
	"github.com/citraoverseas/placement/pkg/repository"
)

type ProfilesHandler struct {
	profileRepo repository.ProfileRepo
}

func NewProfilesHandler(pr repository.ProfileRepo) *ProfilesHandler {
	return &ProfilesHandler{profileRepo: pr}
}

func (h *ProfilesHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	profile, err := h.profileRepo.GetProfile(r.Context(), uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, "profile not found", http.StatusNotFound)
			return
		}
		writeError(w, "failed to load profile", http.StatusInternalServerError)
		return
	}
	writeJSON(w, profile, http.StatusOK)
}

type updateProfileRequest struct {
	FullName        string   `json:"full_name"`
	Phone           string   `json:"phone"`
	TargetCountry   string   `json:"target_country"`
	EducationLevel  string   `json:"education_level"`
	ExperienceYears *int     `json:"experience_years"`
	Languages       []string `json:"languages"`
}

func (h *ProfilesHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	profile := models.Profile{
		UserID:          uid,
		FullName:        strings.TrimSpace(req.FullName),
		Phone:           strings.TrimSpace(req.Phone),
		TargetCountry:   strings.TrimSpace(req.TargetCountry),
		EducationLevel:  strings.TrimSpace(req.EducationLevel),
		ExperienceYears: req.ExperienceYears,
		Languages:       req.Languages,
	}
	if err := h.profileRepo.UpdateProfile(r.Context(), &profile); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, "profile not found", http.StatusNotFound)
			return
		}
		writeError(w, "failed to update profile", http.StatusInternalServerError)
		return
	}
	writeJSON(w, profile, http.StatusOK)
}

// ListParticipants is the staff roster view.
func (h *ProfilesHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileRepo.ListProfiles(r.Context())
	if err != nil {
		writeError(w, "failed to load participants", http.StatusInternalServerError)
		return
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}
	writeJSON(w, profiles, http.StatusOK)
}

func (h *ProfilesHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	profile, err := h.profileRepo.GetProfile(r.Context(), uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, "profile not found", http.StatusNotFound)
			return
		}
		writeError(w, "failed to load documents", http.StatusInternalServerError)
		return
	}

	docs := profile.Documents
	if docs == nil {
		docs = []models.Document{}
	}
	writeJSON(w, docs, http.StatusOK)
}

type addDocumentRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Path string `json:"path"`
}

// AddDocument records metadata for a file already placed in object storage.
func (h *ProfilesHandler) AddDocument(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req addDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Type == "" || req.Path == "" {
		writeError(w, "name, type, and path are required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	profile, err := h.profileRepo.GetProfile(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, "profile not found", http.StatusNotFound)
			return
		}
		writeError(w, "failed to load profile", http.StatusInternalServerError)
		return
	}

	doc := models.Document{
		Name:       req.Name,
		Type:       req.Type,
		Path:       req.Path,
		UploadedAt: time.Now().UTC().Unix(),
	}
	docs := append(profile.Documents, doc)

	if err := h.profileRepo.UpdateDocuments(ctx, uid, docs); err != nil {
		writeError(w, "failed to save document", http.StatusInternalServerError)
		return
	}
	writeJSON(w, doc, http.StatusCreated)
}

// RemoveDocument drops a document descriptor by its storage path.
func (h *ProfilesHandler) RemoveDocument(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, "path is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	profile, err := h.profileRepo.GetProfile(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, "profile not found", http.StatusNotFound)
			return
		}
		writeError(w, "failed to load profile", http.StatusInternalServerError)
		return
	}

	kept := make([]models.Document, 0, len(profile.Documents))
	found := false
	for _, d := range profile.Documents {
		if d.Path == path {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	if !found {
		writeError(w, "document not found", http.StatusNotFound)
		return
	}

	if err := h.profileRepo.UpdateDocuments(ctx, uid, kept); err != nil {
		writeError(w, "failed to remove document", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
