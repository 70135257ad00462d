package proxy

import (
	"sentrywatch/src/config"

	"go.uber.org/dig"
)

// RegisterDependencies wires the proxy module. SQL-backed only, matching
// monitor's repository scope; cfg is accepted for call-site consistency.
func RegisterDependencies(container *dig.Container, cfg *config.Config) {
	container.Provide(NewSQLRepository)
	container.Provide(NewService)
	container.Provide(NewController)
	container.Provide(NewRoute)
}
