// Package mock provides in-memory repository fakes for handler and
// domain tests. They are deliberately simple: state lives in exported
// fields so tests can seed and inspect it directly, and every mock has
// per-method error hooks for failure paths.
package mock

import (
	"context"
	"fmt"

	"github.com/citraoverseas/placement/pkg/models"
	"github.com/citraoverseas/placement/pkg/repository"
)

type Mocks struct {
	Users    *UserRepo
	Profiles *ProfileRepo
	Jobs     *JobRepo
	Apps     *ApplicationRepo
	Notes    *NoteRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Users:    &UserRepo{},
		Profiles: &ProfileRepo{},
		Jobs:     &JobRepo{},
		Apps:     &ApplicationRepo{},
		Notes:    &NoteRepo{},
	}
}

type UserRepo struct {
	Stored    []models.User
	CreateErr error
	GetErr    error
}

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	for _, s := range m.Stored {
		if s.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", len(m.Stored)+1)
	}
	m.Stored = append(m.Stored, *u)
	return nil
}

func (m *UserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			u := m.Stored[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for i := range m.Stored {
		if m.Stored[i].Email == email {
			u := m.Stored[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *UserRepo) DeleteUser(ctx context.Context, id string) error {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type ProfileRepo struct {
	Stored    map[string]*models.Profile
	CreateErr error
	UpdateErr error
}

func (m *ProfileRepo) ensure() {
	if m.Stored == nil {
		m.Stored = make(map[string]*models.Profile)
	}
}

func (m *ProfileRepo) CreateProfile(ctx context.Context, p *models.Profile) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.ensure()
	if _, ok := m.Stored[p.UserID]; ok {
		return repository.ErrDuplicate
	}
	cp := *p
	m.Stored[p.UserID] = &cp
	return nil
}

func (m *ProfileRepo) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	m.ensure()
	p, ok := m.Stored[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *ProfileRepo) UpdateProfile(ctx context.Context, p *models.Profile) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.ensure()
	if _, ok := m.Stored[p.UserID]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	m.Stored[p.UserID] = &cp
	return nil
}

func (m *ProfileRepo) UpdateDocuments(ctx context.Context, userID string, docs []models.Document) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.ensure()
	p, ok := m.Stored[userID]
	if !ok {
		return repository.ErrNotFound
	}
	p.Documents = docs
	return nil
}

func (m *ProfileRepo) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	m.ensure()
	out := make([]models.Profile, 0, len(m.Stored))
	for _, p := range m.Stored {
		out = append(out, *p)
	}
	return out, nil
}

type JobRepo struct {
	Stored  []models.Job
	ListErr error
	GetErr  error
}

func (m *JobRepo) CreateJob(ctx context.Context, j *models.Job) error {
	if j.ID == "" {
		j.ID = fmt.Sprintf("job-%d", len(m.Stored)+1)
	}
	m.Stored = append(m.Stored, *j)
	return nil
}

func (m *JobRepo) GetJob(ctx context.Context, id string) (*models.Job, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			j := m.Stored[i]
			return &j, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *JobRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	for i := range m.Stored {
		if m.Stored[i].ID == j.ID {
			m.Stored[i] = *j
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *JobRepo) DeleteJob(ctx context.Context, id string) error {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *JobRepo) SetJobActive(ctx context.Context, id string, active bool) error {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			m.Stored[i].IsActive = active
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *JobRepo) ListJobs(ctx context.Context, activeOnly bool) ([]models.Job, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]models.Job, 0, len(m.Stored))
	for _, j := range m.Stored {
		if activeOnly && !j.IsActive {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

type ApplicationRepo struct {
	Stored    []models.Application
	CreateErr error
	ListErr   error
	StatusErr error

	// Scores records SetMatchScore calls keyed by application id.
	Scores map[string]int
}

func (m *ApplicationRepo) CreateApplication(ctx context.Context, a *models.Application) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	for _, s := range m.Stored {
		if s.UserID == a.UserID && s.JobID == a.JobID {
			return repository.ErrDuplicate
		}
	}
	if a.ID == "" {
		a.ID = fmt.Sprintf("app-%d", len(m.Stored)+1)
	}
	if a.Status == "" {
		a.Status = "submitted"
	}
	m.Stored = append(m.Stored, *a)
	return nil
}

func (m *ApplicationRepo) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			a := m.Stored[i]
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *ApplicationRepo) ListApplicationsByUser(ctx context.Context, userID string) ([]models.ApplicationWithJob, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []models.ApplicationWithJob
	for _, a := range m.Stored {
		if a.UserID == userID {
			out = append(out, models.ApplicationWithJob{Application: a})
		}
	}
	return out, nil
}

func (m *ApplicationRepo) ListAppliedJobIDs(ctx context.Context, userID string) ([]string, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var ids []string
	for _, a := range m.Stored {
		if a.UserID == userID {
			ids = append(ids, a.JobID)
		}
	}
	return ids, nil
}

func (m *ApplicationRepo) UpdateApplicationStatus(ctx context.Context, id, status string) error {
	if m.StatusErr != nil {
		return m.StatusErr
	}
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			m.Stored[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *ApplicationRepo) SetMatchScore(ctx context.Context, id string, score int) error {
	if m.Scores == nil {
		m.Scores = make(map[string]int)
	}
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			s := score
			m.Stored[i].MatchScore = &s
			m.Scores[id] = score
			return nil
		}
	}
	return repository.ErrNotFound
}

type NoteRepo struct {
	Stored    []models.ApplicationNote
	CreateErr error
}

func (m *NoteRepo) CreateNote(ctx context.Context, n *models.ApplicationNote) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if n.ID == "" {
		n.ID = fmt.Sprintf("note-%d", len(m.Stored)+1)
	}
	m.Stored = append(m.Stored, *n)
	return nil
}

func (m *NoteRepo) ListNotesByApplication(ctx context.Context, applicationID string) ([]models.ApplicationNote, error) {
	var out []models.ApplicationNote
	for _, n := range m.Stored {
		if n.ApplicationID == applicationID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *NoteRepo) DeleteNote(ctx context.Context, id string) error {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
