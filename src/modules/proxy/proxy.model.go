package proxy

import "sentrywatch/src/modules/shared"

type Model = shared.Proxy

type UpdateModel struct {
	Protocol *string
	Host     *string
	Port     *int
	Auth     *bool
	Username *string
	Password *string
	Active   *bool
}
