package executor

import (
	"context"
	"net"
	"testing"
	"time"

	"sentrywatch/src/modules/shared"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func radiusConfigJSON(portStr string) string {
	return `{"host":"127.0.0.1","port":` + portStr + `,"username":"u","password":"p","secret":"s"}`
}

func TestRadiusExecutor_Execute_AccessAccept(t *testing.T) {
	logger := zap.NewNop().Sugar()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	assert.NoError(t, err)
	defer conn.Close()

	go func() {
		buf := make([]byte, 4096)
		n, addr, err := conn.ReadFrom(buf)
		if err != nil || n == 0 {
			return
		}
		reply := make([]byte, 20)
		reply[0] = radiusCodeAccessAccept
		conn.WriteTo(reply, addr)
	}()

	_, portStr, _ := net.SplitHostPort(conn.LocalAddr().String())

	exec := NewRadiusExecutor(logger)
	m := &Monitor{Timeout: 2, Config: radiusConfigJSON(portStr)}

	result := exec.Execute(context.Background(), m, nil)

	assert.Equal(t, shared.MonitorStatusUp, result.Status)
	assert.Equal(t, "Access-Accept", result.Message)
}

func TestRadiusExecutor_Execute_AccessReject(t *testing.T) {
	logger := zap.NewNop().Sugar()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	assert.NoError(t, err)
	defer conn.Close()

	go func() {
		buf := make([]byte, 4096)
		n, addr, err := conn.ReadFrom(buf)
		if err != nil || n == 0 {
			return
		}
		reply := make([]byte, 20)
		reply[0] = radiusCodeAccessReject
		conn.WriteTo(reply, addr)
	}()

	_, portStr, _ := net.SplitHostPort(conn.LocalAddr().String())

	exec := NewRadiusExecutor(logger)
	m := &Monitor{Timeout: 2, Config: radiusConfigJSON(portStr)}

	result := exec.Execute(context.Background(), m, nil)

	assert.Equal(t, shared.MonitorStatusDown, result.Status)
	assert.Equal(t, "Access-Reject", result.Message)
}

func TestRadiusExecutor_Execute_NoResponse(t *testing.T) {
	logger := zap.NewNop().Sugar()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	assert.NoError(t, err)
	_, portStr, _ := net.SplitHostPort(conn.LocalAddr().String())
	conn.Close()

	exec := NewRadiusExecutor(logger)
	m := &Monitor{Timeout: 1, Config: radiusConfigJSON(portStr)}

	start := time.Now()
	result := exec.Execute(context.Background(), m, nil)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, shared.MonitorStatusDown, result.Status)
}

func TestRadiusExecutor_Validate(t *testing.T) {
	logger := zap.NewNop().Sugar()
	exec := NewRadiusExecutor(logger)

	assert.NoError(t, exec.Validate(radiusConfigJSON("1812")))
	assert.Error(t, exec.Validate(`{"host":"127.0.0.1"}`))
}

func TestEncryptRadiusPassword_BlockAligned(t *testing.T) {
	authenticator := make([]byte, 16)
	encrypted := encryptRadiusPassword("password123", "secret", authenticator)
	assert.Equal(t, 16, len(encrypted))

	longPass := "this-is-a-much-longer-password-than-one-block"
	encryptedLong := encryptRadiusPassword(longPass, "secret", authenticator)
	assert.Equal(t, 48, len(encryptedLong))
}
