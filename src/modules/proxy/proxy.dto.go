package proxy

// CreateUpdateDto is the request body for POST/PUT proxies/:id.
type CreateUpdateDto struct {
	Protocol string `json:"protocol" validate:"required,oneof=http https socks4 socks5"`
	Host     string `json:"host" validate:"required"`
	Port     int    `json:"port" validate:"required,min=1,max=65535"`
	Auth     bool   `json:"auth"`
	Username string `json:"username"`
	Password string `json:"password"`
	Active   bool   `json:"active"`
}

func (d *CreateUpdateDto) toModel() *Model {
	return &Model{
		Protocol: d.Protocol,
		Host:     d.Host,
		Port:     d.Port,
		Auth:     d.Auth,
		Username: d.Username,
		Password: d.Password,
		Active:   d.Active,
	}
}

// PartialUpdateDto is the request body for PATCH proxies/:id.
type PartialUpdateDto struct {
	Protocol *string `json:"protocol,omitempty"`
	Host     *string `json:"host,omitempty"`
	Port     *int    `json:"port,omitempty"`
	Auth     *bool   `json:"auth,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

func (d *PartialUpdateDto) toUpdateModel() *UpdateModel {
	return &UpdateModel{
		Protocol: d.Protocol,
		Host:     d.Host,
		Port:     d.Port,
		Auth:     d.Auth,
		Username: d.Username,
		Password: d.Password,
		Active:   d.Active,
	}
}
