package monitor_tls_info

import "time"

// Model is the latest captured TLS certificate chain for a monitor, stored
// as an opaque JSON blob (shared.TlsInfo) keyed by monitor_id.
type Model struct {
	ID        string    `json:"id"`
	MonitorID string    `json:"monitor_id"`
	InfoJSON  string    `json:"info_json"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SentHistoryModel is one (type, monitor_id, days) dedup row recorded once a
// certificate-expiry notification has been sent for that threshold.
type SentHistoryModel struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	MonitorID string    `json:"monitor_id"`
	Days      int       `json:"days"`
	CreatedAt time.Time `json:"created_at"`
}
