package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/iota-uz/people-console/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/people-console/pkg/composables"
	"github.com/iota-uz/people-console/pkg/httpapi"
)

// SessionResolver turns an incoming request into the explicit session object.
// The authentication collaborator (login, token store) lives outside this
// service; the resolver only consumes what it forwards.
type SessionResolver interface {
	Resolve(r *http.Request) (*composables.Session, error)
}

// ProvideSession installs the resolved session into the request context.
// Requests the resolver rejects get a 401; role-gating further down never
// errors, it hides. Paths under a skip prefix (metrics scrapes) pass through
// unauthenticated.
func ProvideSession(resolver SessionResolver, skipPrefixes ...string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range skipPrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}
			sess, err := resolver.Resolve(r)
			if err != nil {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required", nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithSession(r.Context(), sess)))
		})
	}
}

// HeaderSessionResolver trusts the identity headers set by the auth proxy in
// front of the console (X-Auth-User-Id, X-Auth-User-Name, X-Auth-Role and the
// bearer token it validated).
type HeaderSessionResolver struct{}

func (HeaderSessionResolver) Resolve(r *http.Request) (*composables.Session, error) {
	role, err := employee.NewRole(r.Header.Get("X-Auth-Role"))
	if err != nil {
		return nil, err
	}

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	return &composables.Session{
		ID:     r.Header.Get("X-Auth-Session-Id"),
		UserID: parseUint(r.Header.Get("X-Auth-User-Id")),
		Name:   r.Header.Get("X-Auth-User-Name"),
		Role:   role,
		Token:  token,
	}, nil
}

func parseUint(s string) uint {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}
