package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	dbfs "github.com/citraoverseas/placement/db"
	dbpkg "github.com/citraoverseas/placement/internal/db"
	sqlite "github.com/citraoverseas/placement/internal/repository/sqlite"
	"github.com/citraoverseas/placement/pkg/models"
	"github.com/citraoverseas/placement/pkg/repository"
)

// setupRepo opens a per-test in-memory database with the real embedded
// migrations applied, so repo tests run against the production schema.
func setupRepo(t *testing.T) *sqlite.SQLiteRepo {
	t.Helper()
	ctx := context.Background()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	d, err := dbpkg.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := dbpkg.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	return sqlite.New(d, nil)
}

func seedUser(t *testing.T, repo *sqlite.SQLiteRepo, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, PasswordHash: "hash"}
	if err := repo.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedJob(t *testing.T, repo *sqlite.SQLiteRepo, title string, active bool) *models.Job {
	t.Helper()
	j := &models.Job{Title: title, Country: "Japan", Category: "Manufacturing", IsActive: active}
	if err := repo.CreateJob(context.Background(), j); err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return j
}

func TestUserLifecycle(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if err := repo.CreateUser(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil user")
	}

	u := &models.User{Email: "siti@example.com", PasswordHash: "hash"}
	if err := repo.CreateUser(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID == "" {
		t.Fatalf("expected generated user id")
	}
	if u.Role != models.RoleParticipant {
		t.Fatalf("expected default role %q got %q", models.RoleParticipant, u.Role)
	}

	// duplicate email is rejected by the store
	dup := &models.User{Email: "siti@example.com", PasswordHash: "hash2"}
	if err := repo.CreateUser(ctx, dup); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for repeated email, got %v", err)
	}

	got, err := repo.GetUserByEmail(ctx, "siti@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("get by email returned wrong user: %q vs %q", got.ID, u.ID)
	}

	if _, err := repo.GetUserByID(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing user, got %v", err)
	}

	if err := repo.DeleteUser(ctx, u.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := repo.GetUserByID(ctx, u.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.DeleteUser(ctx, u.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for second delete, got %v", err)
	}
}

func TestApplicationUniquePerUserAndJob(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	u := seedUser(t, repo, "budi@example.com")
	j1 := seedJob(t, repo, "Welder", true)
	j2 := seedJob(t, repo, "Caregiver", true)

	a := &models.Application{JobID: j1.ID, UserID: u.ID}
	if err := repo.CreateApplication(ctx, a); err != nil {
		t.Fatalf("create application: %v", err)
	}
	if a.Status != "submitted" {
		t.Fatalf("expected default status submitted, got %q", a.Status)
	}

	// same user, same job: rejected by the unique constraint
	again := &models.Application{JobID: j1.ID, UserID: u.ID}
	if err := repo.CreateApplication(ctx, again); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for second application, got %v", err)
	}

	// same user, different job: allowed
	other := &models.Application{JobID: j2.ID, UserID: u.ID}
	if err := repo.CreateApplication(ctx, other); err != nil {
		t.Fatalf("apply to second job: %v", err)
	}

	ids, err := repo.ListAppliedJobIDs(ctx, u.ID)
	if err != nil {
		t.Fatalf("list applied job ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 applied job ids, got %d", len(ids))
	}
}

func TestApplicationStatusAndScore(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	u := seedUser(t, repo, "budi@example.com")
	j := seedJob(t, repo, "Welder", true)

	a := &models.Application{JobID: j.ID, UserID: u.ID}
	if err := repo.CreateApplication(ctx, a); err != nil {
		t.Fatalf("create application: %v", err)
	}

	if err := repo.UpdateApplicationStatus(ctx, a.ID, "screening"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if err := repo.SetMatchScore(ctx, a.ID, 78); err != nil {
		t.Fatalf("set match score: %v", err)
	}

	got, err := repo.GetApplication(ctx, a.ID)
	if err != nil {
		t.Fatalf("get application: %v", err)
	}
	if got.Status != "screening" {
		t.Fatalf("expected status screening, got %q", got.Status)
	}
	if got.MatchScore == nil || *got.MatchScore != 78 {
		t.Fatalf("expected match score 78, got %v", got.MatchScore)
	}

	if err := repo.UpdateApplicationStatus(ctx, "missing", "screening"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing application, got %v", err)
	}
}

func TestListApplicationsByUserJoinsJob(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	u := seedUser(t, repo, "budi@example.com")
	j := seedJob(t, repo, "Welder", true)

	a := &models.Application{JobID: j.ID, UserID: u.ID}
	if err := repo.CreateApplication(ctx, a); err != nil {
		t.Fatalf("create application: %v", err)
	}

	apps, err := repo.ListApplicationsByUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("list applications: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("expected 1 application, got %d", len(apps))
	}
	if apps[0].JobTitle != "Welder" || apps[0].JobCountry != "Japan" || apps[0].JobCategory != "Manufacturing" {
		t.Fatalf("unexpected joined job fields: %+v", apps[0])
	}
}

func TestProfileDocuments(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	u := seedUser(t, repo, "siti@example.com")
	p := &models.Profile{UserID: u.ID, FullName: "Siti Rahma"}
	if err := repo.CreateProfile(ctx, p); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	docs := []models.Document{{Name: "Paspor", Type: "passport", Path: "docs/paspor.pdf", UploadedAt: 1700000000}}
	if err := repo.UpdateDocuments(ctx, u.ID, docs); err != nil {
		t.Fatalf("update documents: %v", err)
	}

	got, err := repo.GetProfile(ctx, u.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if len(got.Documents) != 1 || got.Documents[0].Path != "docs/paspor.pdf" {
		t.Fatalf("unexpected documents: %+v", got.Documents)
	}

	// missing path fails the schema check at the store boundary
	bad := []models.Document{{Name: "KTP", Type: "id"}}
	if err := repo.UpdateDocuments(ctx, u.ID, bad); err == nil {
		t.Fatalf("expected schema validation error for document without path")
	}
}

func TestListJobsActiveOnly(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	seedJob(t, repo, "Welder", true)
	seedJob(t, repo, "Caregiver", false)

	active, err := repo.ListJobs(ctx, true)
	if err != nil {
		t.Fatalf("list active jobs: %v", err)
	}
	if len(active) != 1 || active[0].Title != "Welder" {
		t.Fatalf("expected only the active job, got %+v", active)
	}

	all, err := repo.ListJobs(ctx, false)
	if err != nil {
		t.Fatalf("list all jobs: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(all))
	}
}

func TestSetJobActiveToggles(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	j := seedJob(t, repo, "Welder", true)
	if err := repo.SetJobActive(ctx, j.ID, false); err != nil {
		t.Fatalf("set job inactive: %v", err)
	}

	got, err := repo.GetJob(ctx, j.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if got.IsActive {
		t.Fatalf("expected job to be inactive")
	}
}

func TestNotesLifecycle(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	admin := seedUser(t, repo, "admin@example.com")
	if err := repo.CreateProfile(ctx, &models.Profile{UserID: admin.ID, FullName: "Pak Admin"}); err != nil {
		t.Fatalf("create admin profile: %v", err)
	}
	u := seedUser(t, repo, "budi@example.com")
	j := seedJob(t, repo, "Welder", true)

	a := &models.Application{JobID: j.ID, UserID: u.ID}
	if err := repo.CreateApplication(ctx, a); err != nil {
		t.Fatalf("create application: %v", err)
	}

	n := &models.ApplicationNote{ApplicationID: a.ID, AdminID: admin.ID, Note: "dokumen lengkap"}
	if err := repo.CreateNote(ctx, n); err != nil {
		t.Fatalf("create note: %v", err)
	}

	notes, err := repo.ListNotesByApplication(ctx, a.ID)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	if notes[0].AdminName != "Pak Admin" || notes[0].AdminEmail != "admin@example.com" {
		t.Fatalf("unexpected note author fields: %+v", notes[0])
	}

	if err := repo.DeleteNote(ctx, n.ID); err != nil {
		t.Fatalf("delete note: %v", err)
	}
	if err := repo.DeleteNote(ctx, n.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted note, got %v", err)
	}
}

func TestReports(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	u1 := seedUser(t, repo, "budi@example.com")
	u2 := seedUser(t, repo, "siti@example.com")
	if err := repo.CreateProfile(ctx, &models.Profile{UserID: u1.ID, TargetCountry: "Japan"}); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if err := repo.CreateProfile(ctx, &models.Profile{UserID: u2.ID, TargetCountry: "Japan"}); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	j := seedJob(t, repo, "Welder", true)

	a1 := &models.Application{JobID: j.ID, UserID: u1.ID}
	if err := repo.CreateApplication(ctx, a1); err != nil {
		t.Fatalf("create application: %v", err)
	}
	a2 := &models.Application{JobID: j.ID, UserID: u2.ID}
	if err := repo.CreateApplication(ctx, a2); err != nil {
		t.Fatalf("create application: %v", err)
	}
	if err := repo.UpdateApplicationStatus(ctx, a2.ID, "accepted"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if err := repo.SetMatchScore(ctx, a1.ID, 64); err != nil {
		t.Fatalf("set match score: %v", err)
	}

	counts, err := repo.ApplicationStatusCounts(ctx)
	if err != nil {
		t.Fatalf("status counts: %v", err)
	}
	total := int64(0)
	for _, c := range counts {
		total += c.Count
	}
	if total != 2 {
		t.Fatalf("expected 2 applications counted, got %d", total)
	}

	scores, err := repo.ApplicationScores(ctx)
	if err != nil {
		t.Fatalf("application scores: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected a score per application, got %d", len(scores))
	}

	top, err := repo.TopJobsByApplications(ctx, 5)
	if err != nil {
		t.Fatalf("top jobs: %v", err)
	}
	if len(top) != 1 || top[0].Count != 2 {
		t.Fatalf("unexpected top jobs: %+v", top)
	}

	countries, err := repo.ParticipantsByCountry(ctx)
	if err != nil {
		t.Fatalf("participants by country: %v", err)
	}
	if len(countries) != 1 || countries[0].Country != "Japan" || countries[0].Count != 2 {
		t.Fatalf("unexpected countries: %+v", countries)
	}

	overview, err := repo.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.TotalApplications != 2 {
		t.Fatalf("expected 2 total applications, got %d", overview.TotalApplications)
	}
	if overview.ActiveJobs != 1 {
		t.Fatalf("expected 1 active job, got %d", overview.ActiveJobs)
	}
	if overview.AcceptedOrDeployed != 1 {
		t.Fatalf("expected 1 accepted application, got %d", overview.AcceptedOrDeployed)
	}
}
