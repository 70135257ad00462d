package monitor

import "sentrywatch/src/modules/shared"

// CreateUpdateDto is the request body for POST/PUT monitors/:id.
type CreateUpdateDto struct {
	Type               string `json:"type" validate:"required"`
	Name               string `json:"name" validate:"required"`
	Interval           int    `json:"interval" validate:"required,min=1"`
	Timeout            int    `json:"timeout"`
	MaxRetries         int    `json:"max_retries" validate:"min=0"`
	RetryInterval      int    `json:"retry_interval" validate:"min=0"`
	ResendInterval     int    `json:"resend_interval" validate:"min=0"`
	Active             bool   `json:"active"`
	Config             string `json:"config"`
	ProxyId            string `json:"proxy_id"`
	PushToken          string `json:"push_token"`
	ParentID           string `json:"parent_id"`
	UpsideDown         bool   `json:"upside_down"`
	ExpiryNotification bool   `json:"expiry_notification"`
	IgnoreTls             bool   `json:"ignore_tls"`
	CheckContentParameter bool   `json:"check_content_parameter"`
	PreUpCommand          string `json:"pre_up_command"`
	PreDownCommand        string `json:"pre_down_command"`
}

func (d *CreateUpdateDto) toModel() *Model {
	return &Model{
		Type:               d.Type,
		Name:               d.Name,
		Interval:           d.Interval,
		Timeout:            d.Timeout,
		MaxRetries:         d.MaxRetries,
		RetryInterval:      d.RetryInterval,
		ResendInterval:     d.ResendInterval,
		Active:             d.Active,
		Config:             d.Config,
		ProxyId:            d.ProxyId,
		PushToken:          d.PushToken,
		ParentID:           d.ParentID,
		UpsideDown:         d.UpsideDown,
		ExpiryNotification: d.ExpiryNotification,
		IgnoreTls:             d.IgnoreTls,
		CheckContentParameter: d.CheckContentParameter,
		PreUpCommand:          d.PreUpCommand,
		PreDownCommand:        d.PreDownCommand,
	}
}

// PartialUpdateDto is the request body for PATCH monitors/:id, and is also
// used internally by the monitor event listener to push a status change
// without touching any other field.
type PartialUpdateDto struct {
	Type               *string                `json:"type,omitempty"`
	Name               *string                `json:"name,omitempty"`
	Interval           *int                   `json:"interval,omitempty"`
	Timeout            *int                   `json:"timeout,omitempty"`
	MaxRetries         *int                   `json:"max_retries,omitempty"`
	RetryInterval      *int                   `json:"retry_interval,omitempty"`
	ResendInterval     *int                   `json:"resend_interval,omitempty"`
	Active             *bool                  `json:"active,omitempty"`
	Status             *shared.MonitorStatus  `json:"status,omitempty"`
	Config             *string                `json:"config,omitempty"`
	ProxyId            *string                `json:"proxy_id,omitempty"`
	PushToken          *string                `json:"push_token,omitempty"`
	ParentID           *string                `json:"parent_id,omitempty"`
	UpsideDown         *bool                  `json:"upside_down,omitempty"`
	ExpiryNotification *bool                  `json:"expiry_notification,omitempty"`
}

func (d *PartialUpdateDto) toUpdateModel() *UpdateModel {
	return &UpdateModel{
		Type:               d.Type,
		Name:               d.Name,
		Interval:           d.Interval,
		Timeout:            d.Timeout,
		MaxRetries:         d.MaxRetries,
		RetryInterval:      d.RetryInterval,
		ResendInterval:     d.ResendInterval,
		Active:             d.Active,
		Status:             d.Status,
		Config:             d.Config,
		ProxyId:            d.ProxyId,
		PushToken:          d.PushToken,
		ParentID:           d.ParentID,
		UpsideDown:         d.UpsideDown,
		ExpiryNotification: d.ExpiryNotification,
	}
}
