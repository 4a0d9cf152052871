package composables

import (
	"context"
	"errors"

	"github.com/iota-uz/people-console/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/people-console/pkg/constants"
)

var (
	ErrNoSession = errors.New("session not found in context")
)

// Session is the explicit identity object supplied by the authentication
// collaborator. It is installed into the request context on login and torn
// down with the request; nothing in the console reads ambient global state.
type Session struct {
	ID     string
	UserID uint
	Name   string
	Role   employee.Role
	Token  string
}

// IsAdmin derives the single capability gate used everywhere instead of
// repeated role-string comparisons.
func (s *Session) IsAdmin() bool {
	return s.Role.IsAdmin()
}

// WithSession returns a new context carrying the session.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, constants.SessionKey, sess)
}

// UseSession returns the session from the context.
func UseSession(ctx context.Context) (*Session, error) {
	sess, ok := ctx.Value(constants.SessionKey).(*Session)
	if !ok {
		return nil, ErrNoSession
	}
	return sess, nil
}

// MustUseSession returns the session or panics. Handlers behind the session
// middleware may rely on its presence.
func MustUseSession(ctx context.Context) *Session {
	sess, err := UseSession(ctx)
	if err != nil {
		panic(err)
	}
	return sess
}
