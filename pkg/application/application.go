package application

import (
	"fmt"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/people-console/pkg/eventbus"
	"github.com/iota-uz/people-console/pkg/types"
)

// Controller is a mux-registerable HTTP surface. Key must be unique per
// application; registering a duplicate replaces the previous controller.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module wires a feature vertical (services, controllers, navigation) into the
// application.
type Module interface {
	Name() string
	Register(app Application) error
}

type Application interface {
	Controllers() []Controller
	RegisterControllers(controllers ...Controller)
	Middleware() []mux.MiddlewareFunc
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
	RegisterNavItems(items ...types.NavigationItem)
	NavItems() []types.NavigationItem
	EventPublisher() eventbus.EventBus
	Logger() *logrus.Logger
}

type ApplicationOptions struct {
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
}

func New(opts *ApplicationOptions) Application {
	if opts == nil || opts.EventBus == nil || opts.Logger == nil {
		panic("application.New requires EventBus and Logger in options")
	}
	return &application{
		eventPublisher: opts.EventBus,
		logger:         opts.Logger,
		controllers:    make(map[string]Controller),
		services:       make(map[reflect.Type]interface{}),
	}
}

type application struct {
	eventPublisher eventbus.EventBus
	logger         *logrus.Logger
	controllers    map[string]Controller
	middleware     []mux.MiddlewareFunc
	services       map[reflect.Type]interface{}
	navItems       []types.NavigationItem
}

func (app *application) Controllers() []Controller {
	controllers := make([]Controller, 0, len(app.controllers))
	for _, c := range app.controllers {
		controllers = append(controllers, c)
	}
	return controllers
}

func (app *application) RegisterControllers(controllers ...Controller) {
	for _, c := range controllers {
		app.controllers[c.Key()] = c
	}
}

func (app *application) Middleware() []mux.MiddlewareFunc {
	return app.middleware
}

func (app *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	app.middleware = append(app.middleware, middleware...)
}

// RegisterServices registers a new service in the application by its type
func (app *application) RegisterServices(services ...interface{}) {
	for _, service := range services {
		serviceType := reflect.TypeOf(service).Elem()
		app.services[serviceType] = service
	}
}

// Service retrieves a service by its type
func (app *application) Service(service interface{}) interface{} {
	serviceType := reflect.TypeOf(service)
	svc, exists := app.services[serviceType]
	if !exists {
		panic(fmt.Sprintf("service %s not found", serviceType.Name()))
	}
	return svc
}

func (app *application) RegisterNavItems(items ...types.NavigationItem) {
	app.navItems = append(app.navItems, items...)
}

func (app *application) NavItems() []types.NavigationItem {
	return app.navItems
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.eventPublisher
}

func (app *application) Logger() *logrus.Logger {
	return app.logger
}
