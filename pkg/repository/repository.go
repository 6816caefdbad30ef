package repository

import (
	"context"
	"errors"

	"github.com/citraoverseas/placement/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
// The store, not the caller, enforces the one-application-per-job invariant,
// so callers must map this error to an "already applied" response instead of
// a generic failure.
var ErrDuplicate = errors.New("duplicate")

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type ProfileRepo interface {
	CreateProfile(ctx context.Context, p *models.Profile) error
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, p *models.Profile) error
	UpdateDocuments(ctx context.Context, userID string, docs []models.Document) error
	ListProfiles(ctx context.Context) ([]models.Profile, error)
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) error
	GetJob(ctx context.Context, id string) (*models.Job, error)
	UpdateJob(ctx context.Context, j *models.Job) error
	DeleteJob(ctx context.Context, id string) error
	SetJobActive(ctx context.Context, id string, active bool) error
	// ListJobs returns jobs newest first; activeOnly restricts to is_active rows.
	ListJobs(ctx context.Context, activeOnly bool) ([]models.Job, error)
}

type ApplicationRepo interface {
	CreateApplication(ctx context.Context, a *models.Application) error
	GetApplication(ctx context.Context, id string) (*models.Application, error)
	ListApplicationsByUser(ctx context.Context, userID string) ([]models.ApplicationWithJob, error)
	// ListAppliedJobIDs returns the job ids the user has already applied to.
	ListAppliedJobIDs(ctx context.Context, userID string) ([]string, error)
	UpdateApplicationStatus(ctx context.Context, id, status string) error
	SetMatchScore(ctx context.Context, id string, score int) error
}

type NoteRepo interface {
	CreateNote(ctx context.Context, n *models.ApplicationNote) error
	ListNotesByApplication(ctx context.Context, applicationID string) ([]models.ApplicationNote, error)
	DeleteNote(ctx context.Context, id string) error
}

type ReportRepo interface {
	ApplicationStatusCounts(ctx context.Context) ([]models.StatusCount, error)
	// ApplicationScores returns the match score of every application, with
	// missing scores reported as zero.
	ApplicationScores(ctx context.Context) ([]int, error)
	TopJobsByApplications(ctx context.Context, limit int) ([]models.JobApplicationCount, error)
	ParticipantsByCountry(ctx context.Context) ([]models.CountryCount, error)
	JobsByCategory(ctx context.Context) ([]models.CategoryCount, error)
	Overview(ctx context.Context) (*models.Overview, error)
}
