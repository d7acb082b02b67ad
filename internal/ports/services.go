package ports

import (
	"context"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/domain"
)

// SessionService owns the login/signup/logout lifecycle. It exchanges
// credentials for a backend access token, parks the token in an in-memory
// session, and hands the browser a signed session token that never contains
// the backend credential.
type SessionService interface {
	Signup(ctx context.Context, req domain.SignupRequest) (string, *domain.Session, error)
	Login(ctx context.Context, email, password string) (string, *domain.Session, error)
	// Logout destroys the session locally. The backend has no invalidation
	// endpoint, so the access token simply ages out server-side.
	Logout(ctx context.Context, sessionID string)
	Validate(ctx context.Context, sessionToken string) (*domain.Session, error)
	UpdateProfile(ctx context.Context, sessionID, timezone, language string) (*domain.Session, error)
}

// SessionStore holds live sessions. Implementations are process-local;
// sessions are never persisted across restarts.
type SessionStore interface {
	Put(s *domain.Session)
	Get(id string) (*domain.Session, bool)
	Delete(id string)
	Count() int
	Close()
}
