package executor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sentrywatch/src/modules/shared"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// redirectTransport forwards every request to a fixed test server regardless
// of the original host, so the hardcoded Steam API URL can be exercised
// against httptest.
type redirectTransport struct {
	target *url.URL
}

func (t *redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newSteamExecutorAgainst(logger *zap.SugaredLogger, srv *httptest.Server) *SteamExecutor {
	exec := NewSteamExecutor(logger)
	target, _ := url.Parse(srv.URL)
	exec.client = &http.Client{Transport: &redirectTransport{target: target}}
	return exec
}

func TestSteamExecutor_Execute_Up(t *testing.T) {
	logger := zap.NewNop().Sugar()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response":{"servers":[{"addr":"1.2.3.4:27015","name":"My Game Server"}]}}`)
	}))
	defer srv.Close()

	exec := newSteamExecutorAgainst(logger, srv)

	m := &Monitor{Config: `{"host":"1.2.3.4","port":27015,"steam_api_key":"key"}`}
	result := exec.Execute(context.Background(), m, nil)

	assert.Equal(t, shared.MonitorStatusUp, result.Status)
	assert.Equal(t, "My Game Server", result.Message)
}

func TestSteamExecutor_Execute_NoServers(t *testing.T) {
	logger := zap.NewNop().Sugar()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response":{"servers":[]}}`)
	}))
	defer srv.Close()

	exec := newSteamExecutorAgainst(logger, srv)

	m := &Monitor{Config: `{"host":"1.2.3.4","port":27015,"steam_api_key":"key"}`}
	result := exec.Execute(context.Background(), m, nil)

	assert.Equal(t, shared.MonitorStatusDown, result.Status)
	assert.Equal(t, "No server returned for this address", result.Message)
}

func TestSteamExecutor_Execute_NonOKStatus(t *testing.T) {
	logger := zap.NewNop().Sugar()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	exec := newSteamExecutorAgainst(logger, srv)

	m := &Monitor{Config: `{"host":"1.2.3.4","port":27015,"steam_api_key":"key"}`}
	result := exec.Execute(context.Background(), m, nil)

	assert.Equal(t, shared.MonitorStatusDown, result.Status)
}

func TestSteamExecutor_Validate(t *testing.T) {
	logger := zap.NewNop().Sugar()
	exec := NewSteamExecutor(logger)

	assert.NoError(t, exec.Validate(`{"host":"1.2.3.4","port":27015,"steam_api_key":"key"}`))
	assert.Error(t, exec.Validate(`{"host":"1.2.3.4"}`))
}
