package api

import (
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/citraoverseas/placement/internal/assistant"
	"github.com/citraoverseas/placement/internal/config"
	"github.com/citraoverseas/placement/internal/jobs"
	"github.com/citraoverseas/placement/internal/repository/sqlite"
	"github.com/citraoverseas/placement/pkg/models"
)

// Deps are the collaborators the handlers need. The sqlite repo satisfies
// every repository interface; the rest are built in main.
type Deps struct {
	Repo        *sqlite.SQLiteRepo
	Recommender Recommender
	Assistant   assistant.Generator
	Queue       jobs.Enqueuer
}

func SetupRoutes(cfg *config.Config, version, buildTime string, deps Deps) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(deps.Repo, deps.Repo, cfg.JWTSecret, cfg.TokenDuration)
	jobsHandler := NewJobsHandler(deps.Repo)
	applicationsHandler := NewApplicationsHandler(deps.Repo, deps.Repo, deps.Queue)
	recommendationsHandler := NewRecommendationsHandler(deps.Recommender)
	profilesHandler := NewProfilesHandler(deps.Repo)
	notesHandler := NewNotesHandler(deps.Repo, deps.Repo)
	reportsHandler := NewReportsHandler(deps.Repo)
	assistantHandler := NewAssistantHandler(deps.Assistant)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")
	r.HandleFunc("/v1/jobs", jobsHandler.ListActive).Methods("GET")

	// Assistant relay: open like the rest of the public site, but rate limited
	assistantLimiter := rate.NewLimiter(rate.Limit(cfg.Assistant.RatePerSec), cfg.Assistant.RateBurst)
	assistantRoute := r.PathPrefix("/v1/assistant").Subrouter()
	assistantRoute.Use(RateLimitMiddleware(assistantLimiter))
	assistantRoute.HandleFunc("/chat", assistantHandler.Chat).Methods("POST", "OPTIONS")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	apiV1.HandleFunc("/auth/signout", authHandler.Signout).Methods("POST")

	// Participant endpoints
	apiV1.HandleFunc("/recommendations", recommendationsHandler.List).Methods("GET")
	apiV1.HandleFunc("/applications", applicationsHandler.Apply).Methods("POST")
	apiV1.HandleFunc("/applications", applicationsHandler.ListMine).Methods("GET")
	apiV1.HandleFunc("/profile", profilesHandler.GetMe).Methods("GET")
	apiV1.HandleFunc("/profile", profilesHandler.UpdateMe).Methods("PUT")
	apiV1.HandleFunc("/profile/documents", profilesHandler.ListDocuments).Methods("GET")
	apiV1.HandleFunc("/profile/documents", profilesHandler.AddDocument).Methods("POST")
	apiV1.HandleFunc("/profile/documents", profilesHandler.RemoveDocument).Methods("DELETE")

	// Staff endpoints
	admin := apiV1.PathPrefix("/admin").Subrouter()
	admin.Use(RequireRole(models.RoleAdmin))
	admin.HandleFunc("/jobs", jobsHandler.ListAll).Methods("GET")
	admin.HandleFunc("/jobs", jobsHandler.Create).Methods("POST")
	admin.HandleFunc("/jobs/{id}", jobsHandler.Update).Methods("PUT")
	admin.HandleFunc("/jobs/{id}", jobsHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/jobs/{id}/toggle", jobsHandler.Toggle).Methods("POST")
	admin.HandleFunc("/participants", profilesHandler.ListParticipants).Methods("GET")
	admin.HandleFunc("/applications/{id}/status", applicationsHandler.UpdateStatus).Methods("PUT")
	admin.HandleFunc("/applications/{id}/notes", notesHandler.Create).Methods("POST")
	admin.HandleFunc("/applications/{id}/notes", notesHandler.List).Methods("GET")
	admin.HandleFunc("/notes/{id}", notesHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/reports", reportsHandler.Get).Methods("GET")

	return r
}
