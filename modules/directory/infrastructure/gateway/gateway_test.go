package gateway_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/people-console/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/people-console/modules/directory/infrastructure/gateway"
	"github.com/iota-uz/people-console/pkg/composables"
	"github.com/iota-uz/people-console/pkg/configuration"
	"github.com/iota-uz/people-console/pkg/logging"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *gateway.PersonnelGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return gateway.NewPersonnelGateway(&configuration.PersonnelAPIOptions{
		BaseURL:   srv.URL,
		Timeout:   5 * time.Second,
		RetryWait: time.Millisecond,
	}, logging.ConsoleLogger(logrus.PanicLevel))
}

const listBody = `{
	"success": true,
	"data": {
		"data": [
			{"id": 1, "first_name": "Marie", "last_name": "Curie", "login": "mcurie", "role": "manager", "is_active": true, "has_password": true, "hire_date": "2020-01-15"},
			{"id": 2, "first_name": "Pierre", "last_name": "Curie", "login": "pcurie", "role": "employee", "is_active": false, "has_password": false}
		],
		"current_page": 2,
		"per_page": 15,
		"total": 32,
		"last_page": 3
	}
}`

func TestPersonnelGateway_List(t *testing.T) {
	t.Parallel()

	t.Run("SendsExactFilterParams", func(t *testing.T) {
		var query url.Values
		g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(listBody))
		})

		_, err := g.List(context.Background(), &employee.FindParams{
			Page:    1,
			PerPage: 15,
			Search:  "",
			Role:    "manager",
			Active:  employee.ActiveYes,
		})
		require.NoError(t, err)

		assert.Len(t, query, 5)
		assert.Equal(t, "1", query.Get("page"))
		assert.Equal(t, "15", query.Get("per_page"))
		assert.True(t, query.Has("search"))
		assert.Equal(t, "", query.Get("search"))
		assert.Equal(t, "manager", query.Get("role"))
		assert.Equal(t, "1", query.Get("is_active"))
	})

	t.Run("OmitsUnconstrainedFilters", func(t *testing.T) {
		var query url.Values
		g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(listBody))
		})

		_, err := g.List(context.Background(), &employee.FindParams{Page: 1, PerPage: 15})
		require.NoError(t, err)

		assert.True(t, query.Has("search"))
		assert.False(t, query.Has("role"))
		assert.False(t, query.Has("is_active"))
	})

	t.Run("MirrorsServerCursor", func(t *testing.T) {
		g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(listBody))
		})

		page, err := g.List(context.Background(), &employee.FindParams{Page: 2, PerPage: 15})
		require.NoError(t, err)

		assert.Equal(t, 2, page.CurrentPage)
		assert.Equal(t, 15, page.PerPage)
		assert.Equal(t, 32, page.Total)
		assert.Equal(t, 3, page.LastPage)

		require.Len(t, page.Employees, 2)
		first := page.Employees[0]
		assert.Equal(t, uint(1), first.ID())
		assert.Equal(t, "Marie Curie", first.FullName())
		assert.Equal(t, "mcurie", first.Login())
		assert.Equal(t, employee.RoleManager, first.Role())
		assert.True(t, first.IsActive())
		assert.Equal(t, 2020, first.HireDate().Year())

		second := page.Employees[1]
		assert.False(t, second.IsActive())
		assert.False(t, second.HasPassword())
	})

	t.Run("ServerErrorSurfaces", func(t *testing.T) {
		g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success": false, "message": "boom"}`))
		})

		_, err := g.List(context.Background(), &employee.FindParams{Page: 1, PerPage: 15})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestPersonnelGateway_RetriesReadsOnly(t *testing.T) {
	t.Parallel()

	newRetryingGateway := func(t *testing.T, handler http.HandlerFunc) *gateway.PersonnelGateway {
		t.Helper()
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)

		return gateway.NewPersonnelGateway(&configuration.PersonnelAPIOptions{
			BaseURL:    srv.URL,
			Timeout:    5 * time.Second,
			RetryCount: 2,
			RetryWait:  time.Millisecond,
		}, logging.ConsoleLogger(logrus.PanicLevel))
	}

	t.Run("transient failure on a read is retried", func(t *testing.T) {
		var calls int32
		g := newRetryingGateway(t, func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(listBody))
		})

		page, err := g.List(context.Background(), &employee.FindParams{Page: 1, PerPage: 15})
		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
		assert.Len(t, page.Employees, 2)
	})

	t.Run("failed create is never re-sent", func(t *testing.T) {
		var calls int32
		g := newRetryingGateway(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success": false, "message": "boom"}`))
		})

		_, err := g.Create(context.Background(), &employee.CreateData{
			FirstName: "Marie",
			LastName:  "Curie",
			Login:     "mcurie",
			Role:      employee.RoleEmployee,
		})
		require.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}

func TestPersonnelGateway_GenerateLogins(t *testing.T) {
	t.Parallel()

	var query url.Values
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"suggestions": [
				{"login": "mcurie", "available": false},
				{"login": "marie.curie", "available": true},
				{"login": "mcurie1", "available": true},
				{"login": "curiem", "available": false},
				{"login": "m.curie", "available": true}
			]}
		}`))
	})

	suggestions, err := g.GenerateLogins(context.Background(), "Marie", "Curie")
	require.NoError(t, err)

	assert.Equal(t, "Marie", query.Get("first_name"))
	assert.Equal(t, "Curie", query.Get("last_name"))

	require.Len(t, suggestions, 5)
	assert.False(t, suggestions[0].Available)
	assert.Equal(t, "marie.curie", suggestions[1].Login)
	assert.True(t, suggestions[1].Available)
}

func TestPersonnelGateway_Create_ValidationError(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{
			"success": false,
			"message": "validation failed",
			"errors": {
				"login": ["The login has already been taken."],
				"email": ["The email must be a valid email address.", "The email has already been taken."]
			}
		}`))
	})

	_, err := g.Create(context.Background(), &employee.CreateData{
		FirstName: "Marie",
		LastName:  "Curie",
		Login:     "mcurie",
		Role:      employee.RoleEmployee,
	})
	require.Error(t, err)

	ve, ok := gateway.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"The login has already been taken."}, ve.Fields["login"])
	assert.Equal(t, []string{
		"The email must be a valid email address.",
		"The email has already been taken.",
		"The login has already been taken.",
	}, ve.Messages())
}

func TestPersonnelGateway_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success": false, "message": "not found"}`))
	})

	_, err := g.GetByID(context.Background(), 99)
	require.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestPersonnelGateway_SessionTokenForwarded(t *testing.T) {
	t.Parallel()

	var auth string
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"total": 0, "active": 0, "inactive": 0, "by_role": {}}}`))
	})

	ctx := composables.WithSession(context.Background(), &composables.Session{
		Role:  employee.RoleAdmin,
		Token: "secret-token",
	})
	_, err := g.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", auth)
}

func TestPersonnelGateway_Update_SkipsRoleForNonAdmins(t *testing.T) {
	t.Parallel()

	var body []byte
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"id": 1, "first_name": "Marie", "last_name": "Curie", "login": "mcurie", "role": "employee"}}`))
	})

	_, err := g.Update(context.Background(), 1, &employee.UpdateData{Email: "marie@institute.fr"})
	require.NoError(t, err)

	assert.Contains(t, string(body), `"email":"marie@institute.fr"`)
	assert.NotContains(t, string(body), `"role"`)
	assert.NotContains(t, string(body), `"is_active"`)
	assert.NotContains(t, string(body), `"first_name"`)
	assert.NotContains(t, string(body), `"login"`)
}
