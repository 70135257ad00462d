package monitor_tag

import (
	"sentrywatch/src/config"

	"go.uber.org/dig"
)

// Mongo-only, matching the notification_channel/monitor_maintenance precedent.
func RegisterDependencies(container *dig.Container, cfg *config.Config) {
	container.Provide(NewMongoRepository)
	container.Provide(NewService)
}
