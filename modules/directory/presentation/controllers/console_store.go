package controllers

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/people-console/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/people-console/modules/directory/services"
	"github.com/iota-uz/people-console/pkg/application"
	"github.com/iota-uz/people-console/pkg/composables"
	"github.com/iota-uz/people-console/pkg/eventbus"
)

// console bundles the stateful pieces of one operator's session: the query
// controller, the editor and the notification queue, all wired over a
// session-private event bus so one operator's refreshes never fan out to
// another's.
type console struct {
	bus       eventbus.EventBus
	notifier  *services.CollectingNotifier
	query     *services.QueryController
	editor    *services.Editor
	directory *services.DirectoryService
}

// consoleStore keys one console per session. Consoles are created lazily on
// first touch and dropped explicitly when the session ends.
type consoleStore struct {
	mu       sync.Mutex
	consoles map[string]*console

	app     application.Application
	gw      employee.Gateway
	perPage int
}

func newConsoleStore(app application.Application, gw employee.Gateway, perPage int) *consoleStore {
	return &consoleStore{
		consoles: make(map[string]*console),
		app:      app,
		gw:       gw,
		perPage:  perPage,
	}
}

// For returns the session's console, creating it on first use. The refresh
// context is rebound on every call so bus-triggered fetches always carry the
// session's current token.
func (s *consoleStore) For(sess *composables.Session) *console {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.consoles[sess.ID]
	if !ok {
		bus := eventbus.NewEventPublisher(s.app.Logger())
		notifier := services.NewCollectingNotifier()
		c = &console{
			bus:       bus,
			notifier:  notifier,
			query:     services.NewQueryController(s.gw, bus, notifier, s.perPage),
			editor:    services.NewEditor(s.gw, bus, notifier),
			directory: services.NewDirectoryService(s.gw, bus, notifier),
		}
		s.forwardDomainEvents(bus)
		s.consoles[sess.ID] = c
	}

	c.query.BindContext(composables.WithSession(context.Background(), sess))
	return c
}

func (s *consoleStore) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.consoles[sessionID]; ok {
		c.bus.Clear()
		delete(s.consoles, sessionID)
	}
}

// forwardDomainEvents re-publishes record mutations on the application bus
// for cross-cutting subscribers, while refresh signals stay session-local.
// Page loads are logged here since no other consumer observes them.
func (s *consoleStore) forwardDomainEvents(bus eventbus.EventBus) {
	appBus := s.app.EventPublisher()
	bus.Subscribe(func(e *employee.CreatedEvent) { appBus.Publish(e) })
	bus.Subscribe(func(e *employee.UpdatedEvent) { appBus.Publish(e) })
	bus.Subscribe(func(e *employee.DeletedEvent) { appBus.Publish(e) })
	bus.Subscribe(func(e *employee.PageLoadedEvent) {
		s.app.Logger().WithFields(logrus.Fields{
			"page":  e.Page,
			"total": e.Total,
		}).Debug("directory page loaded")
	})
}
