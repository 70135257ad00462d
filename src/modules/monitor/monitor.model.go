package monitor

import "sentrywatch/src/modules/shared"

// Model is the canonical monitor record; identical to shared.Monitor so
// that the healthcheck executor registry, event payloads and this
// package's repository all share one representation with zero copying.
type Model = shared.Monitor

// UpdateModel is the partial-update shape consumed by UpdatePartial: every
// field is a pointer so nil means "leave unchanged".
type UpdateModel struct {
	Type               *string
	Name               *string
	Interval           *int
	Timeout            *int
	MaxRetries         *int
	RetryInterval      *int
	ResendInterval     *int
	Active             *bool
	Status             *shared.MonitorStatus
	Config             *string
	ProxyId            *string
	PushToken          *string
	ParentID           *string
	UpsideDown         *bool
	ExpiryNotification *bool
}
