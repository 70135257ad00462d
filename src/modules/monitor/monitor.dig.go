package monitor

import (
	"sentrywatch/src/config"

	"go.uber.org/dig"
)

// RegisterDependencies wires the monitor module. The repository is
// SQL-backed only for now (see DESIGN.md); cfg is still accepted so the
// call site matches every other module's RegisterDependencies(container, cfg)
// shape.
func RegisterDependencies(container *dig.Container, cfg *config.Config) {
	container.Provide(NewSQLRepository)
	container.Provide(NewMonitorService)
	container.Provide(NewMonitorController)
	container.Provide(NewMonitorRoute)
	container.Provide(NewUptimeCalculator)
}
