package monitor_maintenance

import (
	"sentrywatch/src/config"

	"go.uber.org/dig"
)

// Mongo-only, matching the notification_channel precedent: this is a pure
// join table with no relational-schema requirement.
func RegisterDependencies(container *dig.Container, cfg *config.Config) {
	container.Provide(NewMongoRepository)
	container.Provide(NewService)
}
