package modules

import (
	"slices"

	"github.com/iota-uz/people-console/modules/directory"
	"github.com/iota-uz/people-console/pkg/application"
)

var (
	BuiltInModules = []application.Module{
		directory.NewModule(nil),
	}

	NavLinks = slices.Concat(
		directory.NavItems,
	)
)

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
