package maintenance

import (
	"sentrywatch/src/config"
	maintenanceutils "sentrywatch/src/modules/maintenance/utils"

	"go.uber.org/dig"
)

func RegisterDependencies(container *dig.Container, cfg *config.Config) {
	container.Provide(maintenanceutils.NewTimeWindowChecker)
	container.Provide(NewSQLRepository)
	container.Provide(NewService)
	container.Provide(NewController)
	container.Provide(NewRoute)
}
