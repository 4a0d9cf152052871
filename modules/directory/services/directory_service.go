package services

import (
	"context"

	"github.com/iota-uz/people-console/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/people-console/pkg/eventbus"
)

// DirectoryService covers the record operations that do not need per-session
// state: lookups, deletion and the statistics overview.
type DirectoryService struct {
	gw        employee.Gateway
	publisher eventbus.EventBus
	notifier  Notifier
}

func NewDirectoryService(gw employee.Gateway, publisher eventbus.EventBus, notifier Notifier) *DirectoryService {
	return &DirectoryService{
		gw:        gw,
		publisher: publisher,
		notifier:  notifier,
	}
}

func (s *DirectoryService) GetByID(ctx context.Context, id uint) (employee.Employee, error) {
	return s.gw.GetByID(ctx, id)
}

func (s *DirectoryService) Statistics(ctx context.Context) (*employee.Statistics, error) {
	return s.gw.Statistics(ctx)
}

// Delete removes the record and signals the query controller to reload. The
// caller is expected to have confirmed the action with the operator first.
func (s *DirectoryService) Delete(ctx context.Context, id uint) error {
	if err := s.gw.Delete(ctx, id); err != nil {
		s.notifier.Notify(Notification{Level: LevelError, Message: "the operation failed, please try again"})
		return err
	}
	s.notifier.Notify(Notification{Level: LevelSuccess, Message: "employee deleted"})
	s.publisher.Publish(employee.NewDeletedEvent(id))
	return nil
}
