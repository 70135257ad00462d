package shared

import "time"

// Monitor is the canonical monitor configuration and identity record.
// Protocol-specific fields (url, headers, keyword, dns fields, ...) are
// carried inside Config as a JSON blob, unmarshalled per-type by the
// matching executor.
type Monitor struct {
	ID                 string    `json:"id"`
	Type               string    `json:"type"`
	Name               string    `json:"name"`
	Interval           int       `json:"interval"`
	Timeout            int       `json:"timeout"`
	MaxRetries         int       `json:"max_retries"`
	RetryInterval      int       `json:"retry_interval"`
	ResendInterval     int       `json:"resend_interval"`
	Active             bool      `json:"active"`
	Status             MonitorStatus `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Config             string    `json:"config"`
	ProxyId            string    `json:"proxy_id"`
	PushToken          string    `json:"push_token"`

	// ParentID is non-empty when this monitor is a child of a group monitor.
	ParentID string `json:"parent_id"`
	// UpsideDown flips UP<->DOWN for the lifecycle of this monitor.
	UpsideDown bool `json:"upside_down"`
	// ExpiryNotification enables TLS certificate expiry notifications.
	ExpiryNotification bool `json:"expiry_notification"`
	// IgnoreTls skips TLS certificate verification for https probes.
	IgnoreTls bool `json:"ignore_tls"`
	// CheckContentParameter enables the *content field scan described in
	// spec.md's http probe subtype.
	CheckContentParameter bool `json:"check_content_parameter"`
	// PreUpCommand/PreDownCommand run via PreCommandRunner on the matching
	// important-for-notify transition.
	PreUpCommand   string `json:"pre_up_command"`
	PreDownCommand string `json:"pre_down_command"`
}

// Proxy is the canonical outbound proxy configuration used by probes that
// support routing through one (http, tcp-based probes).
type Proxy struct {
	ID       string `json:"id"`
	Protocol string `json:"protocol"` // http, https, socks4, socks5
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Auth     bool   `json:"auth"`
	Username string `json:"username"`
	Password string `json:"password"`
	Active   bool   `json:"active"`
}
