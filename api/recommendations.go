package api

import (
	"context"
	"net/http"

	"github.com/citraoverseas/placement/internal/recommend"
)

// Recommender ranks jobs for a user; satisfied by *recommend.Ranker.
type Recommender interface {
	Recommend(ctx context.Context, userID string) ([]recommend.RankedJob, error)
}

type RecommendationsHandler struct {
	ranker Recommender
}

func NewRecommendationsHandler(rk Recommender) *RecommendationsHandler {
	return &RecommendationsHandler{ranker: rk}
}

// List returns jobs scoring at or above the recommendation threshold for the
// authenticated user, best match first. An empty list is a valid answer
// meaning no job cleared the threshold, not an error.
func (h *RecommendationsHandler) List(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	ranked, err := h.ranker.Recommend(r.Context(), uid)
	if err != nil {
		writeError(w, "failed to load recommendations", http.StatusInternalServerError)
		return
	}
	if ranked == nil {
		ranked = []recommend.RankedJob{}
	}

	writeJSON(w, ranked, http.StatusOK)
}
