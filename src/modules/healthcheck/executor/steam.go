package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sentrywatch/src/modules/shared"
	"time"

	"go.uber.org/zap"
)

// SteamConfig backs the "steam" monitor type: a Steam game-server health
// check via the Steam Web API's GetServerList, filtered by host:port.
type SteamConfig struct {
	Host       string `json:"host" validate:"required" example:"1.2.3.4"`
	Port       int    `json:"port" validate:"required,min=1,max=65535" example:"27015"`
	SteamAPIKey string `json:"steam_api_key" validate:"required"`
}

type steamServerListResponse struct {
	Response struct {
		Servers []struct {
			Addr string `json:"addr"`
			Name string `json:"name"`
		} `json:"servers"`
	} `json:"response"`
}

type SteamExecutor struct {
	logger *zap.SugaredLogger
	client *http.Client
}

func NewSteamExecutor(logger *zap.SugaredLogger) *SteamExecutor {
	return &SteamExecutor{
		logger: logger,
		client: &http.Client{},
	}
}

func (s *SteamExecutor) Unmarshal(configJSON string) (any, error) {
	return GenericUnmarshal[SteamConfig](configJSON)
}

func (s *SteamExecutor) Validate(configJSON string) error {
	cfg, err := s.Unmarshal(configJSON)
	if err != nil {
		return err
	}
	return GenericValidator(cfg.(*SteamConfig))
}

// Execute queries IGameServersService/GetServerList for the configured
// host:port; the probe is UP when at least one server is listed, with that
// server's name as the message. No ICMP ping is sent, so the recorded
// latency is the round trip of the API request.
func (s *SteamExecutor) Execute(ctx context.Context, m *Monitor, proxyModel *Proxy) *Result {
	cfgAny, err := s.Unmarshal(m.Config)
	if err != nil {
		return DownResult(err, time.Now().UTC(), time.Now().UTC())
	}
	cfg := cfgAny.(*SteamConfig)

	startTime := time.Now().UTC()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	apiURL := fmt.Sprintf(
		"https://api.steampowered.com/IGameServersService/GetServerList/v1/?key=%s&filter=%s",
		url.QueryEscape(cfg.SteamAPIKey),
		url.QueryEscape(fmt.Sprintf("addr\\%s", addr)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return DownResult(err, startTime, time.Now().UTC())
	}

	resp, err := s.client.Do(req)
	endTime := time.Now().UTC()
	if err != nil {
		return DownResult(err, startTime, endTime)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &Result{
			Status:    shared.MonitorStatusDown,
			Message:   fmt.Sprintf("Steam API returned status %d", resp.StatusCode),
			StartTime: startTime,
			EndTime:   endTime,
		}
	}

	var parsed steamServerListResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return &Result{
			Status:    shared.MonitorStatusDown,
			Message:   fmt.Sprintf("failed to parse Steam API response: %v", err),
			StartTime: startTime,
			EndTime:   endTime,
		}
	}

	if len(parsed.Response.Servers) == 0 {
		return &Result{
			Status:    shared.MonitorStatusDown,
			Message:   "No server returned for this address",
			StartTime: startTime,
			EndTime:   endTime,
		}
	}

	server := parsed.Response.Servers[0]

	return &Result{
		Status:    shared.MonitorStatusUp,
		Message:   server.Name,
		StartTime: startTime,
		EndTime:   endTime,
	}
}
