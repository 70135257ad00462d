package executor

import (
	"context"
	"fmt"
	"net"
	"sentrywatch/src/modules/shared"
	"time"

	"go.uber.org/zap"
)

// GamedigConfig backs the "gamedig" monitor type: a generic game-server
// query. Game is only echoed in the result message; every game is probed
// with the same Valve source-engine A2S_INFO query.
type GamedigConfig struct {
	Host string `json:"host" validate:"required" example:"game.example.com"`
	Port int    `json:"port" validate:"required,min=1,max=65535" example:"27015"`
	Game string `json:"game" validate:"required" example:"valve-source"`
}

// a2sInfoQuery is the Valve source-engine A2S_INFO request: a single
// out-of-band UDP packet, FF FF FF FF 54 "Source Engine Query\0".
var a2sInfoQuery = append([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x54}, append([]byte("Source Engine Query"), 0)...)

type GamedigExecutor struct {
	logger *zap.SugaredLogger
}

func NewGamedigExecutor(logger *zap.SugaredLogger) *GamedigExecutor {
	return &GamedigExecutor{logger: logger}
}

func (g *GamedigExecutor) Unmarshal(configJSON string) (any, error) {
	return GenericUnmarshal[GamedigConfig](configJSON)
}

func (g *GamedigExecutor) Validate(configJSON string) error {
	cfg, err := g.Unmarshal(configJSON)
	if err != nil {
		return err
	}
	return GenericValidator(cfg.(*GamedigConfig))
}

// Execute queries the game server over UDP. This is a minimal subset of the
// gamedig protocol matrix (Valve source-engine query only) rather than the
// dozens of per-game wire formats a full gamedig library covers; see
// DESIGN.md for the scope justification. The A2S_INFO query is sent whatever
// the game value; any reply is UP, and no reply within the timeout is DOWN.
func (g *GamedigExecutor) Execute(ctx context.Context, m *Monitor, proxyModel *Proxy) *Result {
	cfgAny, err := g.Unmarshal(m.Config)
	if err != nil {
		return DownResult(err, time.Now().UTC(), time.Now().UTC())
	}
	cfg := cfgAny.(*GamedigConfig)

	startTime := time.Now().UTC()
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	timeout := time.Duration(m.Timeout) * time.Second
	conn, err := net.DialTimeout("udp", addr, timeout)
	if err != nil {
		return DownResult(fmt.Errorf("failed to reach game server: %w", err), startTime, time.Now().UTC())
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(timeout))

	query := a2sInfoQuery
	if _, err := conn.Write(query); err != nil {
		return DownResult(fmt.Errorf("failed to query game server: %w", err), startTime, time.Now().UTC())
	}

	buf := make([]byte, 1400)
	n, err := conn.Read(buf)
	endTime := time.Now().UTC()
	if err != nil {
		// UDP has no connection handshake: a read timeout here doesn't
		// necessarily mean the server is down for protocols that don't
		// respond to a raw A2S_INFO query, but for the servers this probe
		// targets it does.
		return DownResult(fmt.Errorf("no response from game server: %w", err), startTime, endTime)
	}

	return &Result{
		Status:    shared.MonitorStatusUp,
		Message:   fmt.Sprintf("%s server responded with %d bytes", cfg.Game, n),
		StartTime: startTime,
		EndTime:   endTime,
	}
}
