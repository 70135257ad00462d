package monitor_tls_info

import "context"

// Repository persists the latest TLS chain per monitor and the cert-expiry
// notification dedup history.
type Repository interface {
	Upsert(ctx context.Context, monitorID string, infoJSON string) (*Model, error)
	FindByMonitorID(ctx context.Context, monitorID string) (*Model, error)
	DeleteByMonitorID(ctx context.Context, monitorID string) error

	HasNotificationSent(ctx context.Context, notificationType, monitorID string, days int) (bool, error)
	RecordNotificationSent(ctx context.Context, notificationType, monitorID string, days int) error
	DeleteNotificationHistory(ctx context.Context, notificationType, monitorID string) error
}
