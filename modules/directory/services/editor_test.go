package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/people-console/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/people-console/modules/directory/infrastructure/gateway"
)

func suggestingGateway() *fakeGateway {
	return &fakeGateway{
		generateFn: func(ctx context.Context, firstName, lastName string) ([]employee.Suggestion, error) {
			return []employee.Suggestion{
				{Login: "marie.curie", Available: true},
				{Login: "mcurie", Available: false},
			}, nil
		},
	}
}

func TestEditor_OpenCreate(t *testing.T) {
	editor := NewEditor(suggestingGateway(), testBus(t), &CollectingNotifier{})

	require.NoError(t, editor.Open(nil))
	assert.True(t, editor.IsOpen())
	assert.Equal(t, ModeCreate, editor.Mode())
	assert.Empty(t, editor.Draft().SelectedLogin)

	t.Run("second open is rejected", func(t *testing.T) {
		require.ErrorIs(t, editor.Open(nil), ErrEditorOpen)
	})
}

func TestEditor_CreateFlow_NamesDriveSuggestions(t *testing.T) {
	editor := NewEditor(suggestingGateway(), testBus(t), &CollectingNotifier{})
	require.NoError(t, editor.Open(nil))
	ctx := context.Background()

	require.NoError(t, editor.SetFirstName(ctx, "Marie"))
	assert.Empty(t, editor.Suggestions().Suggestions(), "one name alone must not generate")

	require.NoError(t, editor.SetLastName(ctx, "Curie"))
	require.Len(t, editor.Suggestions().Suggestions(), 2)
	assert.Equal(t, "marie.curie", editor.Draft().SelectedLogin)
}

func TestEditor_CreateBlockedWithoutLogin(t *testing.T) {
	gw := &fakeGateway{
		generateFn: func(ctx context.Context, firstName, lastName string) ([]employee.Suggestion, error) {
			return []employee.Suggestion{{Login: "taken", Available: false}}, nil
		},
	}
	notifier := &CollectingNotifier{}
	editor := NewEditor(gw, testBus(t), notifier)
	require.NoError(t, editor.Open(nil))
	ctx := context.Background()

	require.NoError(t, editor.SetFirstName(ctx, "Marie"))
	require.NoError(t, editor.SetLastName(ctx, "Curie"))

	err := editor.Submit(ctx)
	require.ErrorIs(t, err, ErrLoginNotChosen)
	assert.True(t, editor.IsOpen(), "editor stays open after a rejected submit")

	notes := notifier.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, LevelError, notes[0].Level)
}

func TestEditor_SubmitRequiresNames(t *testing.T) {
	editor := NewEditor(suggestingGateway(), testBus(t), &CollectingNotifier{})
	require.NoError(t, editor.Open(nil))

	err := editor.Submit(context.Background())
	require.ErrorIs(t, err, ErrNamesRequired)
	assert.True(t, editor.IsOpen())
}

func TestEditor_CreateSuccess(t *testing.T) {
	var captured *employee.CreateData
	gw := suggestingGateway()
	gw.createFn = func(ctx context.Context, data *employee.CreateData) (employee.Employee, error) {
		captured = data
		return employee.New(data.FirstName, data.LastName, data.Login, employee.WithID(7)), nil
	}

	bus := testBus(t)
	var created *employee.CreatedEvent
	var refreshed bool
	bus.Subscribe(func(e *employee.CreatedEvent) { created = e })
	bus.Subscribe(func(e *employee.RefreshRequestedEvent) { refreshed = true })

	notifier := &CollectingNotifier{}
	editor := NewEditor(gw, bus, notifier)
	require.NoError(t, editor.Open(nil))
	ctx := sessionContext(employee.RoleAdmin)

	require.NoError(t, editor.SetFirstName(ctx, "Marie"))
	require.NoError(t, editor.SetLastName(ctx, "Curie"))
	require.NoError(t, editor.SetEmail("marie@example.com"))
	require.NoError(t, editor.SetRole(ctx, employee.RoleManager))
	require.NoError(t, editor.SetActive(ctx, true))

	require.NoError(t, editor.Submit(ctx))

	require.NotNil(t, captured)
	assert.Equal(t, "marie.curie", captured.Login)
	assert.Equal(t, employee.RoleManager, captured.Role)
	assert.True(t, captured.IsActive)

	assert.False(t, editor.IsOpen())
	require.NotNil(t, created)
	assert.Equal(t, uint(7), created.Result.ID())
	assert.True(t, refreshed)

	notes := notifier.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, LevelSuccess, notes[0].Level)
}

func TestEditor_CreateNonAdminForcesDefaults(t *testing.T) {
	var captured *employee.CreateData
	gw := suggestingGateway()
	gw.createFn = func(ctx context.Context, data *employee.CreateData) (employee.Employee, error) {
		captured = data
		return employee.New(data.FirstName, data.LastName, data.Login), nil
	}
	editor := NewEditor(gw, testBus(t), &CollectingNotifier{})
	require.NoError(t, editor.Open(nil))
	ctx := sessionContext(employee.RoleEmployee)

	require.ErrorIs(t, editor.SetRole(ctx, employee.RoleAdmin), ErrRoleNotPermitted)
	require.ErrorIs(t, editor.SetActive(ctx, true), ErrRoleNotPermitted)

	require.NoError(t, editor.SetFirstName(ctx, "Marie"))
	require.NoError(t, editor.SetLastName(ctx, "Curie"))
	require.NoError(t, editor.Submit(ctx))

	require.NotNil(t, captured)
	assert.Equal(t, employee.RoleEmployee, captured.Role)
	assert.False(t, captured.IsActive)
}

func TestEditor_EditMode(t *testing.T) {
	record := employee.New("Marie", "Curie", "marie.curie",
		employee.WithID(3),
		employee.WithEmail("old@example.com"),
		employee.WithRole(employee.RoleManager),
		employee.WithActive(true),
	)

	t.Run("names and login are frozen", func(t *testing.T) {
		editor := NewEditor(&fakeGateway{}, testBus(t), &CollectingNotifier{})
		require.NoError(t, editor.Open(record))
		ctx := context.Background()

		require.ErrorIs(t, editor.SetFirstName(ctx, "Maria"), ErrFieldImmutable)
		require.ErrorIs(t, editor.SetLastName(ctx, "Sklodowska"), ErrFieldImmutable)
		require.ErrorIs(t, editor.SelectLogin("other"), ErrFieldImmutable)

		draft := editor.Draft()
		assert.Equal(t, "Marie", draft.FirstName)
		assert.Equal(t, "marie.curie", draft.SelectedLogin)
	})

	t.Run("admin update carries role and status", func(t *testing.T) {
		var captured *employee.UpdateData
		gw := &fakeGateway{
			updateFn: func(ctx context.Context, id uint, data *employee.UpdateData) (employee.Employee, error) {
				require.Equal(t, uint(3), id)
				captured = data
				return record, nil
			},
		}
		editor := NewEditor(gw, testBus(t), &CollectingNotifier{})
		require.NoError(t, editor.Open(record))
		ctx := sessionContext(employee.RoleAdmin)

		require.NoError(t, editor.SetEmail("new@example.com"))
		require.NoError(t, editor.SetRole(ctx, employee.RoleAdmin))
		require.NoError(t, editor.SetActive(ctx, false))
		require.NoError(t, editor.Submit(ctx))

		require.NotNil(t, captured)
		assert.Equal(t, "new@example.com", captured.Email)
		require.NotNil(t, captured.Role)
		assert.Equal(t, employee.RoleAdmin, *captured.Role)
		require.NotNil(t, captured.IsActive)
		assert.False(t, *captured.IsActive)
		assert.False(t, editor.IsOpen())
	})

	t.Run("non-admin update omits role and status", func(t *testing.T) {
		var captured *employee.UpdateData
		gw := &fakeGateway{
			updateFn: func(ctx context.Context, id uint, data *employee.UpdateData) (employee.Employee, error) {
				captured = data
				return record, nil
			},
		}
		editor := NewEditor(gw, testBus(t), &CollectingNotifier{})
		require.NoError(t, editor.Open(record))
		ctx := sessionContext(employee.RoleManager)

		require.NoError(t, editor.SetPhone("+998901112233"))
		require.NoError(t, editor.Submit(ctx))

		require.NotNil(t, captured)
		assert.Nil(t, captured.Role)
		assert.Nil(t, captured.IsActive)
	})
}

func TestEditor_ValidationErrorKeepsDraft(t *testing.T) {
	gw := suggestingGateway()
	gw.createFn = func(ctx context.Context, data *employee.CreateData) (employee.Employee, error) {
		return nil, &gateway.ValidationError{Fields: map[string][]string{
			"email": {"The email has already been taken."},
			"phone": {"The phone format is invalid."},
		}}
	}
	notifier := &CollectingNotifier{}
	editor := NewEditor(gw, testBus(t), notifier)
	require.NoError(t, editor.Open(nil))
	ctx := context.Background()

	require.NoError(t, editor.SetFirstName(ctx, "Marie"))
	require.NoError(t, editor.SetLastName(ctx, "Curie"))
	require.NoError(t, editor.SetEmail("dup@example.com"))

	err := editor.Submit(ctx)
	require.ErrorIs(t, err, ErrSubmitRejected)

	assert.True(t, editor.IsOpen())
	assert.Equal(t, "dup@example.com", editor.Draft().Email)

	notes := notifier.Drain()
	require.Len(t, notes, 2)
	assert.Equal(t, "The email has already been taken.", notes[0].Message)
	assert.Equal(t, "The phone format is invalid.", notes[1].Message)
}

func TestEditor_CloseDiscardsDraft(t *testing.T) {
	editor := NewEditor(suggestingGateway(), testBus(t), &CollectingNotifier{})
	require.NoError(t, editor.Open(nil))
	ctx := context.Background()

	require.NoError(t, editor.SetFirstName(ctx, "Marie"))
	require.NoError(t, editor.SetLastName(ctx, "Curie"))
	require.NoError(t, editor.SetHireDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))

	editor.Close()

	assert.False(t, editor.IsOpen())
	assert.Empty(t, editor.Suggestions().Suggestions())

	require.NoError(t, editor.Open(nil))
	draft := editor.Draft()
	assert.Empty(t, draft.FirstName)
	assert.True(t, draft.HireDate.IsZero())
	assert.Empty(t, draft.SelectedLogin)
}

func TestDirectoryService_Delete(t *testing.T) {
	var deleted uint
	gw := &fakeGateway{
		deleteFn: func(ctx context.Context, id uint) error {
			deleted = id
			return nil
		},
	}
	bus := testBus(t)
	var event *employee.DeletedEvent
	bus.Subscribe(func(e *employee.DeletedEvent) { event = e })

	notifier := &CollectingNotifier{}
	svc := NewDirectoryService(gw, bus, notifier)

	require.NoError(t, svc.Delete(context.Background(), 12))

	assert.Equal(t, uint(12), deleted)
	require.NotNil(t, event)
	assert.Equal(t, uint(12), event.ID)

	notes := notifier.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, LevelSuccess, notes[0].Level)
}
