// Package recommend ranks active jobs for a participant by match score.
package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/citraoverseas/placement/internal/match"
	"github.com/citraoverseas/placement/pkg/models"
	"github.com/citraoverseas/placement/pkg/repository"
)

// Threshold is the minimum score for a job to surface as recommended.
const Threshold = 50

// RankedJob is one recommendation: the job, its score, and whether the
// participant already applied (used to disable the apply action, never to
// drop the job from the list).
type RankedJob struct {
	Job     models.Job `json:"job"`
	Score   int        `json:"match_score"`
	Applied bool       `json:"applied"`
}

type Ranker struct {
	jobs   repository.JobRepo
	apps   repository.ApplicationRepo
	scorer match.Scorer
	logger *slog.Logger
}

func NewRanker(jobs repository.JobRepo, apps repository.ApplicationRepo, scorer match.Scorer, logger *slog.Logger) *Ranker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ranker{jobs: jobs, apps: apps, scorer: scorer, logger: logger}
}

// Recommend fetches active jobs and the participant's applied set, scores
// every job concurrently, filters to scores >= Threshold, and returns the
// result sorted by score descending. Ties keep fetch order. A single failed
// score lookup degrades that job to score 0 instead of failing the batch.
// An empty result is valid and distinct from an error.
func (r *Ranker) Recommend(ctx context.Context, userID string) ([]RankedJob, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	var (
		jobs       []models.Job
		jobsErr    error
		appliedIDs []string
		appliedErr error
	)

	// jobs and applied-set fetches are independent; run them together and
	// wait for both before assembling the response
	var fetch sync.WaitGroup
	fetch.Add(2)
	go func() {
		defer fetch.Done()
		jobs, jobsErr = r.jobs.ListJobs(ctx, true)
	}()
	go func() {
		defer fetch.Done()
		appliedIDs, appliedErr = r.apps.ListAppliedJobIDs(ctx, userID)
	}()
	fetch.Wait()

	if jobsErr != nil {
		return nil, fmt.Errorf("list active jobs: %w", jobsErr)
	}
	if appliedErr != nil {
		// annotation only; degrade to an empty applied set
		r.logger.Warn("list applied jobs failed", "user_id", userID, "err", appliedErr)
		appliedIDs = nil
	}

	applied := make(map[string]bool, len(appliedIDs))
	for _, id := range appliedIDs {
		applied[id] = true
	}

	// per-job score lookups are independent; fire all, await all
	scores := make([]int, len(jobs))
	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			score, err := r.scorer.Score(ctx, userID, jobs[i].ID)
			if err != nil {
				r.logger.Warn("score lookup failed", "job_id", jobs[i].ID, "err", err)
				score = 0
			}
			scores[i] = score
		}(i)
	}
	wg.Wait()

	ranked := make([]RankedJob, 0, len(jobs))
	for i, job := range jobs {
		if scores[i] < Threshold {
			continue
		}
		ranked = append(ranked, RankedJob{Job: job, Score: scores[i], Applied: applied[job.ID]})
	}

	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].Score > ranked[b].Score })

	return ranked, nil
}
