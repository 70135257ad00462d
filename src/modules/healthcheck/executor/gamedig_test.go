package executor

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"sentrywatch/src/modules/shared"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGamedigExecutor_Execute_Up(t *testing.T) {
	logger := zap.NewNop().Sugar()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	assert.NoError(t, err)
	defer conn.Close()

	go func() {
		buf := make([]byte, 1400)
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			return
		}
		if n > 0 {
			conn.WriteTo([]byte("fake A2S_INFO response"), addr)
		}
	}()

	_, portStr, _ := net.SplitHostPort(conn.LocalAddr().String())

	exec := NewGamedigExecutor(logger)
	m := &Monitor{
		Timeout: 2,
		Config:  `{"host":"127.0.0.1","port":` + portStr + `,"game":"valve-source"}`,
	}

	result := exec.Execute(context.Background(), m, nil)

	assert.Equal(t, shared.MonitorStatusUp, result.Status)
	assert.True(t, strings.Contains(result.Message, "valve-source"))
}

func TestGamedigExecutor_Execute_NoResponse(t *testing.T) {
	logger := zap.NewNop().Sugar()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	assert.NoError(t, err)
	_, portStr, _ := net.SplitHostPort(conn.LocalAddr().String())
	conn.Close() // nothing listening now, reads will fail fast via timeout

	exec := NewGamedigExecutor(logger)
	m := &Monitor{
		Timeout: 1,
		Config:  `{"host":"127.0.0.1","port":` + portStr + `,"game":"valve-source"}`,
	}

	start := time.Now()
	result := exec.Execute(context.Background(), m, nil)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, shared.MonitorStatusDown, result.Status)
}

func TestGamedigExecutor_Validate(t *testing.T) {
	logger := zap.NewNop().Sugar()
	exec := NewGamedigExecutor(logger)

	assert.NoError(t, exec.Validate(`{"host":"127.0.0.1","port":27015,"game":"valve-source"}`))
	assert.Error(t, exec.Validate(`{"host":"127.0.0.1"}`))
}
