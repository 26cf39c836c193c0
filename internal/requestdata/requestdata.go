package requestdata

import (
	"context"

	"github.com/google/uuid"
)

type sessionKey struct{}

// AuthSession is the authenticated caller, produced by an Authenticator and
// carried through the request context.
type AuthSession struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

func (s *AuthSession) IsAdmin() bool {
	return s != nil && s.Role == "admin"
}

func WithSession(ctx context.Context, session *AuthSession) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

func GetSession(ctx context.Context) *AuthSession {
	val := ctx.Value(sessionKey{})
	if session, ok := val.(*AuthSession); ok {
		return session
	}
	return nil
}
