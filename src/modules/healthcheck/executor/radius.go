package executor

import (
	"context"
	"crypto/md5"
	"crypto/rand"
	"fmt"
	"net"
	"sentrywatch/src/modules/shared"
	"time"

	"go.uber.org/zap"
)

// RadiusConfig backs the "radius" monitor type: a RADIUS authentication
// attempt (RFC 2865 Access-Request), UP iff the server answers
// Access-Accept.
type RadiusConfig struct {
	Host      string `json:"host" validate:"required" example:"radius.example.com"`
	Port      int    `json:"port" validate:"required,min=1,max=65535" example:"1812"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	Secret    string `json:"secret" validate:"required"`
	CalledStationId string `json:"called_station_id,omitempty"`
}

const (
	radiusCodeAccessRequest = 1
	radiusCodeAccessAccept  = 2
	radiusCodeAccessReject  = 3

	radiusAttrUserName     = 1
	radiusAttrUserPassword = 2
	radiusAttrCalledStationId = 30
)

type RadiusExecutor struct {
	logger *zap.SugaredLogger
}

func NewRadiusExecutor(logger *zap.SugaredLogger) *RadiusExecutor {
	return &RadiusExecutor{logger: logger}
}

func (r *RadiusExecutor) Unmarshal(configJSON string) (any, error) {
	return GenericUnmarshal[RadiusConfig](configJSON)
}

func (r *RadiusExecutor) Validate(configJSON string) error {
	cfg, err := r.Unmarshal(configJSON)
	if err != nil {
		return err
	}
	return GenericValidator(cfg.(*RadiusConfig))
}

func (r *RadiusExecutor) Execute(ctx context.Context, m *Monitor, proxyModel *Proxy) *Result {
	cfgAny, err := r.Unmarshal(m.Config)
	if err != nil {
		return DownResult(err, time.Now().UTC(), time.Now().UTC())
	}
	cfg := cfgAny.(*RadiusConfig)

	startTime := time.Now().UTC()

	packet, err := buildAccessRequest(cfg)
	if err != nil {
		return DownResult(err, startTime, time.Now().UTC())
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	timeout := time.Duration(m.Timeout) * time.Second

	conn, err := net.DialTimeout("udp", addr, timeout)
	if err != nil {
		return DownResult(fmt.Errorf("failed to reach radius server: %w", err), startTime, time.Now().UTC())
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(timeout))

	if _, err := conn.Write(packet.bytes); err != nil {
		return DownResult(fmt.Errorf("failed to send access-request: %w", err), startTime, time.Now().UTC())
	}

	reply := make([]byte, 4096)
	n, err := conn.Read(reply)
	endTime := time.Now().UTC()
	if err != nil {
		return DownResult(fmt.Errorf("no response from radius server: %w", err), startTime, endTime)
	}
	if n < 4 {
		return &Result{Status: shared.MonitorStatusDown, Message: "malformed radius response", StartTime: startTime, EndTime: endTime}
	}

	switch reply[0] {
	case radiusCodeAccessAccept:
		return &Result{Status: shared.MonitorStatusUp, Message: "Access-Accept", StartTime: startTime, EndTime: endTime}
	case radiusCodeAccessReject:
		return &Result{Status: shared.MonitorStatusDown, Message: "Access-Reject", StartTime: startTime, EndTime: endTime}
	default:
		return &Result{Status: shared.MonitorStatusDown, Message: fmt.Sprintf("unexpected radius response code %d", reply[0]), StartTime: startTime, EndTime: endTime}
	}
}

type radiusPacket struct {
	bytes []byte
}

// buildAccessRequest assembles an RFC 2865 Access-Request packet with a
// random 16-byte request authenticator and a User-Password attribute
// encrypted per §5.2 (c1 = p1 XOR MD5(secret + authenticator), chained for
// subsequent 16-byte blocks).
func buildAccessRequest(cfg *RadiusConfig) (*radiusPacket, error) {
	authenticator := make([]byte, 16)
	if _, err := rand.Read(authenticator); err != nil {
		return nil, fmt.Errorf("failed to generate radius authenticator: %w", err)
	}

	var attrs []byte
	attrs = append(attrs, radiusAttr(radiusAttrUserName, []byte(cfg.Username))...)
	attrs = append(attrs, radiusAttr(radiusAttrUserPassword, encryptRadiusPassword(cfg.Password, cfg.Secret, authenticator))...)
	if cfg.CalledStationId != "" {
		attrs = append(attrs, radiusAttr(radiusAttrCalledStationId, []byte(cfg.CalledStationId))...)
	}

	length := 20 + len(attrs)
	packet := make([]byte, 0, length)
	packet = append(packet, radiusCodeAccessRequest, byte(1))
	packet = append(packet, byte(length>>8), byte(length&0xFF))
	packet = append(packet, authenticator...)
	packet = append(packet, attrs...)

	return &radiusPacket{bytes: packet}, nil
}

func radiusAttr(typ byte, value []byte) []byte {
	out := make([]byte, 2, 2+len(value))
	out[0] = typ
	out[1] = byte(len(value) + 2)
	return append(out, value...)
}

// encryptRadiusPassword implements RFC 2865 §5.2 User-Password encryption.
func encryptRadiusPassword(password, secret string, authenticator []byte) []byte {
	p := []byte(password)
	if len(p)%16 != 0 {
		padded := make([]byte, (len(p)/16+1)*16)
		copy(padded, p)
		p = padded
	}
	if len(p) == 0 {
		p = make([]byte, 16)
	}

	result := make([]byte, len(p))
	prev := authenticator
	for i := 0; i < len(p); i += 16 {
		hash := md5.Sum(append([]byte(secret), prev...))
		block := p[i : i+16]
		out := make([]byte, 16)
		for j := 0; j < 16; j++ {
			out[j] = block[j] ^ hash[j]
		}
		copy(result[i:i+16], out)
		prev = out
	}
	return result
}
