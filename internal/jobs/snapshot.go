package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/citraoverseas/placement/internal/match"
	"github.com/citraoverseas/placement/pkg/repository"
)

// TypeScoreSnapshot asks the external scorer for a participant/job fit and
// records it on the application row. The snapshot is taken once, near
// submission time, and is not recomputed on later status changes.
const TypeScoreSnapshot = "application.score_snapshot"

// ScoreSnapshotPayload is the queued payload for TypeScoreSnapshot.
type ScoreSnapshotPayload struct {
	ApplicationID string `json:"application_id"`
	UserID        string `json:"user_id"`
	JobID         string `json:"job_id"`
}

// ScoreSnapshotHandler builds the handler for TypeScoreSnapshot jobs.
func ScoreSnapshotHandler(apps repository.ApplicationRepo, scorer match.Scorer) Handler {
	return func(ctx context.Context, j *Job) error {
		var p ScoreSnapshotPayload
		if err := json.Unmarshal(j.Payload, &p); err != nil {
			return fmt.Errorf("decode score snapshot payload: %w", err)
		}
		if p.ApplicationID == "" || p.UserID == "" || p.JobID == "" {
			return fmt.Errorf("score snapshot payload is incomplete")
		}

		score, err := scorer.Score(ctx, p.UserID, p.JobID)
		if err != nil {
			return fmt.Errorf("score %s/%s: %w", p.UserID, p.JobID, err)
		}
		if err := apps.SetMatchScore(ctx, p.ApplicationID, score); err != nil {
			return fmt.Errorf("set match score: %w", err)
		}
		return nil
	}
}
