package api

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/Sagari-07/Capstone-Job-Portel/internal/session"
	"github.com/Sagari-07/Capstone-Job-Portel/pkg/models"
	"github.com/Sagari-07/Capstone-Job-Portel/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	userRepo repository.UserRepo
	sessions *session.Manager
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{userRepo: ur, sessions: sessions}
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type userResponse struct {
	User *models.Principal `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Identifier == "" || req.Password == "" {
		writeMessage(w, "Username/email and password are required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetByIdentifier(ctx, req.Identifier)
	if err != nil {
		logger.Error("login lookup failed", slog.Any("err", err))
		writeMessage(w, "Unable to log in right now", http.StatusInternalServerError)
		return
	}

	// an unknown identifier and a wrong password are indistinguishable to
	// the caller
	if user == nil {
		writeMessage(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeMessage(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	principal := models.PrincipalOf(user)
	if _, err := h.sessions.Issue(ctx, w, principal); err != nil {
		logger.Error("session issue failed", slog.Any("err", err))
		writeMessage(w, "Unable to log in right now", http.StatusInternalServerError)
		return
	}

	writeJSON(w, userResponse{User: principal}, http.StatusOK)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	hadSession, err := h.sessions.Destroy(r.Context(), w, r)
	if err != nil {
		logger.Error("logout failed", slog.Any("err", err))
		writeMessage(w, "Failed to log out", http.StatusInternalServerError)
		return
	}
	if !hadSession {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeMessage(w, "Logged out", http.StatusOK)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, err := h.sessions.Resolve(r.Context(), r)
	if err != nil {
		logger.Error("session resolve failed", slog.Any("err", err))
		writeMessage(w, "Unable to verify session", http.StatusInternalServerError)
		return
	}
	if p == nil {
		writeMessage(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	writeJSON(w, userResponse{User: p}, http.StatusOK)
}
