package models

// Domain models matching the database schema in db/migrations/0001_init.sql

type User struct {
	ID           string `json:"id" db:"id"`
	Email        string `json:"email" db:"email" validate:"required,email"`
	Role         string `json:"role" db:"role"`
	PasswordHash string `json:"-" db:"password_hash"`
	Created      int64  `json:"created" db:"created"`
}

// Roles stored on the users table. Participants are job seekers; admins are
// agency staff.
const (
	RoleParticipant = "participant"
	RoleAdmin       = "admin"
)

type Profile struct {
	UserID          string     `json:"user_id" db:"user_id"`
	FullName        string     `json:"full_name,omitempty" db:"full_name"`
	Phone           string     `json:"phone,omitempty" db:"phone"`
	TargetCountry   string     `json:"target_country,omitempty" db:"target_country"`
	EducationLevel  string     `json:"education_level,omitempty" db:"education_level"`
	ExperienceYears *int       `json:"experience_years,omitempty" db:"experience_years"`
	Languages       []string   `json:"languages,omitempty" db:"languages"`
	Documents       []Document `json:"documents,omitempty" db:"documents"`
	Created         int64      `json:"created" db:"created"`
	Updated         int64      `json:"updated" db:"updated"`
}

// Document is metadata about an uploaded file. The bytes themselves live in
// external object storage; only the descriptor is kept on the profile row.
type Document struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Path       string `json:"path"`
	UploadedAt int64  `json:"uploaded_at"`
}

type Job struct {
	ID                string  `json:"id" db:"id"`
	Title             string  `json:"title" db:"title" validate:"required"`
	Country           string  `json:"country" db:"country"`
	Category          string  `json:"category" db:"category"`
	Description       string  `json:"description,omitempty" db:"description"`
	Requirements      string  `json:"requirements,omitempty" db:"requirements"`
	SalaryMin         *int64  `json:"salary_min,omitempty" db:"salary_min"`
	SalaryMax         *int64  `json:"salary_max,omitempty" db:"salary_max"`
	MinExperience     *int    `json:"min_experience,omitempty" db:"min_experience"`
	RequiredEducation *string `json:"required_education,omitempty" db:"required_education"`
	Deadline          *string `json:"deadline,omitempty" db:"deadline"`
	IsActive          bool    `json:"is_active" db:"is_active"`
	Created           int64   `json:"created" db:"created"`
}

type Application struct {
	ID         string `json:"id" db:"id"`
	JobID      string `json:"job_id" db:"job_id"`
	UserID     string `json:"user_id" db:"user_id"`
	Status     string `json:"status" db:"status"`
	MatchScore *int   `json:"match_score,omitempty" db:"match_score"`
	Created    int64  `json:"created" db:"created"`
}

// ApplicationWithJob is an application row joined with the summary of the
// job it targets, as rendered on the participant's applications page.
type ApplicationWithJob struct {
	Application
	JobTitle    string `json:"job_title"`
	JobCountry  string `json:"job_country"`
	JobCategory string `json:"job_category"`
}

type ApplicationNote struct {
	ID            string `json:"id" db:"id"`
	ApplicationID string `json:"application_id" db:"application_id"`
	AdminID       string `json:"admin_id" db:"admin_id"`
	Note          string `json:"note" db:"note"`
	Created       int64  `json:"created" db:"created"`

	// joined from the author's profile, empty when the profile is gone
	AdminName  string `json:"admin_name,omitempty"`
	AdminEmail string `json:"admin_email,omitempty"`
}

// Report rows for the admin dashboard charts.

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type ScoreBand struct {
	Range string `json:"range"`
	Count int64  `json:"count"`
}

type JobApplicationCount struct {
	JobTitle string `json:"job_title"`
	Count    int64  `json:"application_count"`
}

type CountryCount struct {
	Country string `json:"country"`
	Count   int64  `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type Overview struct {
	Participants       int64 `json:"participants"`
	ActiveJobs         int64 `json:"active_jobs"`
	TotalApplications  int64 `json:"total_applications"`
	AcceptedOrDeployed int64 `json:"accepted_or_deployed"`
}
