package api

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"log/slog"

	"github.com/Sagari-07/Capstone-Job-Portel/internal/session"
	"github.com/Sagari-07/Capstone-Job-Portel/internal/upload"
	"github.com/Sagari-07/Capstone-Job-Portel/pkg/models"
	"github.com/Sagari-07/Capstone-Job-Portel/pkg/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// formMemoryLimit is how much of the multipart body is buffered in memory
// before spilling to temp files.
const formMemoryLimit = 4 << 20

type ApplicationsHandler struct {
	appRepo  repository.ApplicationRepo
	uploads  *upload.Store
	sessions *session.Manager
}

func NewApplicationsHandler(ar repository.ApplicationRepo, uploads *upload.Store, sessions *session.Manager) *ApplicationsHandler {
	return &ApplicationsHandler{appRepo: ar, uploads: uploads, sessions: sessions}
}

// Create accepts a job application from anyone: authenticated submitters get
// the record tied to their user id, anonymous ones are matched up later by
// email. Validation runs in a fixed order and stops at the first failure,
// before anything is persisted.
func (h *ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// the submitter may or may not be logged in; a broken session must not
	// block an anonymous submission
	principal, err := h.sessions.Resolve(ctx, r)
	if err != nil {
		logger.Warn("session resolve failed on submission, treating as anonymous", slog.Any("err", err))
		principal = nil
	}

	if err := r.ParseMultipartForm(formMemoryLimit); err != nil {
		writeMessage(w, "Invalid form submission.", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if len(name) < 2 || len(name) > 120 {
		writeMessage(w, "Name is required (2-120 characters).", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	if !emailPattern.MatchString(email) {
		writeMessage(w, "A valid email is required.", http.StatusBadRequest)
		return
	}

	jobID := r.FormValue("jobId")
	jobTitle := r.FormValue("jobTitle")
	if jobID == "" || jobTitle == "" {
		writeMessage(w, "Job details are missing.", http.StatusBadRequest)
		return
	}

	_, fh, err := r.FormFile("resume")
	if err != nil {
		writeMessage(w, "Resume upload is required.", http.StatusBadRequest)
		return
	}

	resumePath, err := h.uploads.SaveResume(fh)
	if err != nil {
		if errors.Is(err, upload.ErrUnsupportedType) || errors.Is(err, upload.ErrTooLarge) {
			writeMessage(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error("resume store failed", slog.Any("err", err))
		writeMessage(w, "Unable to save application right now.", http.StatusInternalServerError)
		return
	}

	a := &models.Application{
		JobID:      jobID,
		JobTitle:   jobTitle,
		Name:       name,
		Email:      email,
		ResumePath: resumePath,
	}
	if principal != nil {
		a.UserID = &principal.ID
	}

	if _, err := h.appRepo.CreateApplication(ctx, a); err != nil {
		// the stored resume is orphaned here; accepted, there is no
		// transaction spanning file write and row insert
		logger.Error("application insert failed", slog.Any("err", err))
		writeMessage(w, "Unable to save application right now.", http.StatusInternalServerError)
		return
	}

	writeMessage(w, "Application saved successfully.", http.StatusCreated)
}

type listApplicationsResponse struct {
	Applications []models.Application `json:"applications"`
}

// List returns every application for admins, and for everyone else only the
// applications they own by user id or submitted under their email address.
// The gate upstream guarantees an authenticated principal.
func (h *ApplicationsHandler) List(w http.ResponseWriter, r *http.Request) {
	p := PrincipalFrom(r.Context())
	if p == nil {
		writeMessage(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var (
		apps []models.Application
		err  error
	)
	if p.IsAdmin() {
		apps, err = h.appRepo.ListAll(r.Context())
	} else {
		apps, err = h.appRepo.ListByOwner(r.Context(), p.ID, p.Email)
	}
	if err != nil {
		logger.Error("application list failed", slog.Any("err", err))
		writeMessage(w, "Unable to fetch applications.", http.StatusInternalServerError)
		return
	}

	if apps == nil {
		apps = []models.Application{}
	}

	writeJSON(w, listApplicationsResponse{Applications: apps}, http.StatusOK)
}
