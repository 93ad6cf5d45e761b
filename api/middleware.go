package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"log/slog"

	"github.com/Sagari-07/Capstone-Job-Portel/internal/session"
	"github.com/Sagari-07/Capstone-Job-Portel/pkg/models"
	"github.com/gorilla/mux"
)

type ctxKey string

const ctxPrincipal ctxKey = "principal"

// package-level logger used by middleware and helpers; can be set via SetLogger from caller
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger installs a logger for the api package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
		)
		next.ServeHTTP(w, r)
	})
}

// CORSMiddleware echoes the caller's origin and allows credentials, since
// the session cookie has to travel with cross-origin API calls.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic", slog.Any("err", err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// Tier is the access level a protected route demands.
type Tier int

const (
	TierUser Tier = iota
	TierAdmin
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("admin access required")
)

// Authorize is the pure gate decision: no principal fails both tiers, a
// non-admin principal additionally fails the admin tier.
func Authorize(p *models.Principal, tier Tier) error {
	if p == nil {
		return ErrUnauthenticated
	}
	if tier == TierAdmin && !p.IsAdmin() {
		return ErrForbidden
	}

	return nil
}

// Gate resolves the request's session once and enforces a tier, branching
// the failure response on whether the caller prefers HTML (page routes get
// redirects, API calls get JSON errors).
type Gate struct {
	sessions *session.Manager
}

func NewGate(sessions *session.Manager) *Gate {
	return &Gate{sessions: sessions}
}

func (g *Gate) Require(tier Tier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := g.sessions.Resolve(r.Context(), r)
			if err != nil {
				logger.Error("session resolve failed", slog.Any("err", err))
				writeMessage(w, "Unable to verify session", http.StatusInternalServerError)
				return
			}

			htmlPreferred := wantsHTML(r)
			switch err := Authorize(p, tier); {
			case err == nil:
			case errors.Is(err, ErrForbidden):
				if htmlPreferred {
					http.Redirect(w, r, "/index.html", http.StatusFound)
					return
				}
				writeMessage(w, "Admin access required", http.StatusForbidden)
				return
			default:
				if htmlPreferred {
					http.Redirect(w, r, "/login.html", http.StatusFound)
					return
				}
				writeMessage(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ctxPrincipal, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom returns the principal the gate attached to the request
// context, or nil for anonymous requests.
func PrincipalFrom(ctx context.Context) *models.Principal {
	p, _ := ctx.Value(ctxPrincipal).(*models.Principal)
	return p
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
