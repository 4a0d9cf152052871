package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/people-console/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/people-console/pkg/composables"
)

func TestHeaderSessionResolver(t *testing.T) {
	t.Run("full identity headers", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/directory", nil)
		r.Header.Set("X-Auth-Role", "admin")
		r.Header.Set("X-Auth-User-Id", "42")
		r.Header.Set("X-Auth-User-Name", "Root")
		r.Header.Set("X-Auth-Session-Id", "sess-1")
		r.Header.Set("Authorization", "Bearer tok-abc")

		sess, err := HeaderSessionResolver{}.Resolve(r)
		require.NoError(t, err)
		assert.Equal(t, uint(42), sess.UserID)
		assert.Equal(t, "sess-1", sess.ID)
		assert.Equal(t, "tok-abc", sess.Token)
		assert.True(t, sess.IsAdmin())
	})

	t.Run("invalid role", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/directory", nil)
		r.Header.Set("X-Auth-Role", "root")
		_, err := HeaderSessionResolver{}.Resolve(r)
		require.Error(t, err)
	})
}

func TestProvideSession(t *testing.T) {
	handler := ProvideSession(HeaderSessionResolver{}, "/debug")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess, err := composables.UseSession(r.Context()); err == nil {
			w.Header().Set("X-Resolved-Role", string(sess.Role))
		}
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("authenticated request", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/directory", nil)
		r.Header.Set("X-Auth-Role", string(employee.RoleManager))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "manager", rec.Header().Get("X-Resolved-Role"))
	})

	t.Run("missing identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/directory", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("skipped prefix passes through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/prometheus", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Resolved-Role"))
	})
}
