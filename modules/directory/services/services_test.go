package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/people-console/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/people-console/pkg/composables"
	"github.com/iota-uz/people-console/pkg/eventbus"
)

// fakeGateway lets each test script the personnel API per operation.
type fakeGateway struct {
	listFn     func(ctx context.Context, params *employee.FindParams) (*employee.PageResult, error)
	getFn      func(ctx context.Context, id uint) (employee.Employee, error)
	generateFn func(ctx context.Context, firstName, lastName string) ([]employee.Suggestion, error)
	createFn   func(ctx context.Context, data *employee.CreateData) (employee.Employee, error)
	updateFn   func(ctx context.Context, id uint, data *employee.UpdateData) (employee.Employee, error)
	deleteFn   func(ctx context.Context, id uint) error
	statsFn    func(ctx context.Context) (*employee.Statistics, error)
}

var errNotScripted = errors.New("operation not scripted")

func (f *fakeGateway) List(ctx context.Context, params *employee.FindParams) (*employee.PageResult, error) {
	if f.listFn == nil {
		return nil, errNotScripted
	}
	return f.listFn(ctx, params)
}

func (f *fakeGateway) GetByID(ctx context.Context, id uint) (employee.Employee, error) {
	if f.getFn == nil {
		return nil, errNotScripted
	}
	return f.getFn(ctx, id)
}

func (f *fakeGateway) GenerateLogins(ctx context.Context, firstName, lastName string) ([]employee.Suggestion, error) {
	if f.generateFn == nil {
		return nil, errNotScripted
	}
	return f.generateFn(ctx, firstName, lastName)
}

func (f *fakeGateway) Create(ctx context.Context, data *employee.CreateData) (employee.Employee, error) {
	if f.createFn == nil {
		return nil, errNotScripted
	}
	return f.createFn(ctx, data)
}

func (f *fakeGateway) Update(ctx context.Context, id uint, data *employee.UpdateData) (employee.Employee, error) {
	if f.updateFn == nil {
		return nil, errNotScripted
	}
	return f.updateFn(ctx, id, data)
}

func (f *fakeGateway) Delete(ctx context.Context, id uint) error {
	if f.deleteFn == nil {
		return errNotScripted
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeGateway) Statistics(ctx context.Context) (*employee.Statistics, error) {
	if f.statsFn == nil {
		return nil, errNotScripted
	}
	return f.statsFn(ctx)
}

func testBus(t *testing.T) eventbus.EventBus {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return eventbus.NewEventPublisher(logger)
}

func sessionContext(role employee.Role) context.Context {
	return composables.WithSession(context.Background(), &composables.Session{
		ID:     "test-session",
		UserID: 1,
		Name:   "Test Operator",
		Role:   role,
	})
}
