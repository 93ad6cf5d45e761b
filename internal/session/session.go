package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/Sagari-07/Capstone-Job-Portel/pkg/models"
	"github.com/Sagari-07/Capstone-Job-Portel/pkg/repository"
	"github.com/google/uuid"
)

// Manager owns the server-side session lifecycle: issuing a session on
// login, resolving the cookie on each request, destroying it on logout and
// sweeping expired rows in the background. The cookie carries nothing but
// the opaque token; the principal lives in the sessions table.
type Manager struct {
	repo       repository.SessionRepo
	logger     *slog.Logger
	cookieName string
	ttl        time.Duration
}

func NewManager(repo repository.SessionRepo, logger *slog.Logger, cookieName string, ttl time.Duration) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{repo: repo, logger: logger, cookieName: cookieName, ttl: ttl}
}

// Issue creates a session for the principal and sets the session cookie.
// The TTL is fixed at issue time; nothing extends it.
func (m *Manager) Issue(ctx context.Context, w http.ResponseWriter, p *models.Principal) (*models.Session, error) {
	created := time.Now().UTC()
	s := &models.Session{
		Token:    uuid.NewString(),
		UserID:   p.ID,
		Username: p.Username,
		Email:    p.Email,
		Role:     p.Role,
		Created:  created.UnixMilli(),
		Expires:  created.Add(m.ttl).UnixMilli(),
	}

	if err := m.repo.CreateSession(ctx, s); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    s.Token,
		Path:     "/",
		MaxAge:   int(m.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return s, nil
}

// Resolve looks up the request's session cookie and returns the attached
// principal. A missing cookie, unknown token or expired session all resolve
// to (nil, nil): the caller treats the request as anonymous.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (*models.Principal, error) {
	c, err := r.Cookie(m.cookieName)
	if err != nil || c.Value == "" {
		return nil, nil
	}

	s, err := m.repo.GetSession(ctx, c.Value)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if s == nil {
		return nil, nil
	}

	if s.Expires <= time.Now().UTC().UnixMilli() {
		// lazily drop the stale row; the janitor would get it anyway
		if err := m.repo.DeleteSession(ctx, s.Token); err != nil {
			m.logger.Warn("failed to delete expired session", slog.Any("err", err))
		}
		return nil, nil
	}

	return s.Principal(), nil
}

// Destroy deletes the request's session server-side and expires the cookie.
// It reports whether a session cookie was present at all, so callers can
// distinguish "logged out" from "there was nothing to log out".
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) (bool, error) {
	c, err := r.Cookie(m.cookieName)
	if err != nil || c.Value == "" {
		return false, nil
	}

	if err := m.repo.DeleteSession(ctx, c.Value); err != nil {
		return true, fmt.Errorf("delete session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return true, nil
}

// StartJanitor sweeps expired session rows every interval until ctx is
// cancelled.
func (m *Manager) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := m.repo.DeleteExpiredSessions(ctx, time.Now().UTC().UnixMilli())
				if err != nil {
					m.logger.Error("session janitor sweep failed", slog.Any("err", err))
					continue
				}
				if n > 0 {
					m.logger.Info("session janitor swept expired sessions", slog.Int64("count", n))
				}
			}
		}
	}()
}
