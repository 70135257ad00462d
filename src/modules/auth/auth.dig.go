package auth

import (
	"sentrywatch/src/config"
	"sentrywatch/src/utils"

	"go.uber.org/dig"
)

func RegisterDependencies(container *dig.Container, cfg *config.Config) {
	container.Provide(NewRoute)
	utils.RegisterRepositoryByDBType(container, cfg, NewSQLRepository, NewMongoRepository)
	container.Provide(NewTokenMaker)
	container.Provide(NewService)
	container.Provide(NewController)
	container.Provide(NewMiddlewareProvider)
}
