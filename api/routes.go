package api

import (
	"net/http"
	"path/filepath"

	"github.com/Sagari-07/Capstone-Job-Portel/internal/config"
	"github.com/Sagari-07/Capstone-Job-Portel/internal/db"
	"github.com/Sagari-07/Capstone-Job-Portel/internal/repository/sqlite"
	"github.com/Sagari-07/Capstone-Job-Portel/internal/session"
	"github.com/Sagari-07/Capstone-Job-Portel/internal/upload"
	"github.com/gorilla/mux"
)

// SetupRoutes wires repositories, the session manager and handlers into the
// full route table. The returned session manager is handed back so the
// caller can start the expiry janitor with its own lifecycle context.
func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB) (*mux.Router, *session.Manager) {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(database, logger)

	sessions := session.NewManager(repo, logger, cfg.SessionConfig.CookieName, cfg.SessionConfig.TTL)
	uploads := upload.NewStore(cfg.UploadsConfig.Dir, cfg.UploadsConfig.PublicPrefix, cfg.UploadsConfig.MaxBytes)
	gate := NewGate(sessions)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, sessions)
	applicationsHandler := NewApplicationsHandler(repo, uploads, sessions)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	// Auth endpoints
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", authHandler.Logout).Methods("POST")
	r.HandleFunc("/api/auth/me", authHandler.Me).Methods("GET")

	// Application endpoints: submission is open to anonymous visitors,
	// listing requires an authenticated session
	r.HandleFunc("/api/applications", applicationsHandler.Create).Methods("POST")
	r.Handle("/api/applications", gate.Require(TierUser)(http.HandlerFunc(applicationsHandler.List))).Methods("GET")

	// Gated page routes
	r.Handle("/applied.html", gate.Require(TierUser)(staticPage(cfg.StaticDir, "applied.html"))).Methods("GET")
	r.Handle("/admin.html", gate.Require(TierAdmin)(staticPage(cfg.StaticDir, "admin.html"))).Methods("GET")

	// Uploaded resumes and the rest of the front-end
	r.PathPrefix(cfg.UploadsConfig.PublicPrefix + "/").Handler(
		http.StripPrefix(cfg.UploadsConfig.PublicPrefix+"/", http.FileServer(http.Dir(uploads.Dir()))))
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))

	return r, sessions
}

func staticPage(dir, name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(dir, name))
	})
}
