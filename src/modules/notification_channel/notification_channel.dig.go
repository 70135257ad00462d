package notification_channel

import (
	"sentrywatch/src/config"

	"go.uber.org/dig"
)

// RegisterDependencies takes cfg for consistency with every other module's
// DB-type-based wiring; this module currently ships a mongo-backed
// repository only (see DESIGN.md).
func RegisterDependencies(container *dig.Container, cfg *config.Config) {
	container.Provide(NewRepository)
	container.Provide(NewService)
	container.Provide(NewController)
	container.Provide(NewRoute)
	container.Provide(NewNotificationEventListener)
}
