package directory

import (
	"github.com/iota-uz/people-console/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/people-console/modules/directory/infrastructure/gateway"
	"github.com/iota-uz/people-console/modules/directory/presentation/controllers"
	"github.com/iota-uz/people-console/pkg/application"
	"github.com/iota-uz/people-console/pkg/configuration"
)

type ModuleOptions struct {
	// Gateway overrides the personnel API client, used by tests. Nil builds
	// the resty client from configuration.
	Gateway employee.Gateway
}

func NewModule(opts *ModuleOptions) application.Module {
	if opts == nil {
		opts = &ModuleOptions{}
	}
	return &Module{opts: opts}
}

type Module struct {
	opts *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()

	gw := m.opts.Gateway
	if gw == nil {
		gw = gateway.NewPersonnelGateway(&conf.PersonnelAPI, app.Logger())
	}

	app.RegisterControllers(
		controllers.NewEmployeesController(app, gw, conf.PageSize),
	)

	return nil
}

func (m *Module) Name() string {
	return "directory"
}
