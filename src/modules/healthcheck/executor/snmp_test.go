package executor

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestSnmpExecutor_Validate(t *testing.T) {
	logger := zap.NewNop().Sugar()
	executor := NewSnmpExecutor(logger)

	tests := []struct {
		name      string
		config    string
		wantError bool
	}{
		{
			name: "valid config",
			config: `{
				"host": "127.0.0.1",
				"port": 161,
				"community": "public",
				"snmp_version": "v2c",
				"oid": "1.3.6.1.2.1.1.1.0"
			}`,
			wantError: false,
		},
		{
			name: "missing host",
			config: `{
				"port": 161,
				"community": "public",
				"snmp_version": "v2c",
				"oid": "1.3.6.1.2.1.1.1.0"
			}`,
			wantError: true,
		},
		{
			name: "missing community",
			config: `{
				"host": "127.0.0.1",
				"port": 161,
				"snmp_version": "v2c",
				"oid": "1.3.6.1.2.1.1.1.0"
			}`,
			wantError: true,
		},
		{
			name: "missing oid",
			config: `{
				"host": "127.0.0.1",
				"port": 161,
				"community": "public",
				"snmp_version": "v2c"
			}`,
			wantError: true,
		},
		{
			name: "invalid snmp version",
			config: `{
				"host": "127.0.0.1",
				"port": 161,
				"community": "public",
				"snmp_version": "invalid",
				"oid": "1.3.6.1.2.1.1.1.0"
			}`,
			wantError: true,
		},
		{
			name: "invalid operator",
			config: `{
				"host": "127.0.0.1",
				"port": 161,
				"community": "public",
				"snmp_version": "v2c",
				"oid": "1.3.6.1.2.1.1.1.0",
				"json_path_operator": "invalid"
			}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := executor.Validate(tt.config)
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestSnmpExecutor_Unmarshal(t *testing.T) {
	logger := zap.NewNop().Sugar()
	executor := NewSnmpExecutor(logger)

	config := `{
		"host": "127.0.0.1",
		"port": 161,
		"community": "public",
		"snmp_version": "v2c",
		"oid": "1.3.6.1.2.1.1.1.0",
		"json_path": "$",
		"json_path_operator": "eq",
		"expected_value": "test"
	}`

	result, err := executor.Unmarshal(config)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	cfg := result.(*SnmpConfig)
	if cfg.Host != "127.0.0.1" {
		t.Errorf("Host = %v, want %v", cfg.Host, "127.0.0.1")
	}
	if cfg.Port != 161 {
		t.Errorf("Port = %v, want %v", cfg.Port, 161)
	}
	if cfg.Community != "public" {
		t.Errorf("Community = %v, want %v", cfg.Community, "public")
	}
	if cfg.SnmpVersion != "v2c" {
		t.Errorf("SnmpVersion = %v, want %v", cfg.SnmpVersion, "v2c")
	}
	if cfg.Oid != "1.3.6.1.2.1.1.1.0" {
		t.Errorf("Oid = %v, want %v", cfg.Oid, "1.3.6.1.2.1.1.1.0")
	}
	if cfg.JsonPath != "$" {
		t.Errorf("JsonPath = %v, want %v", cfg.JsonPath, "$")
	}
	if cfg.JsonPathOperator != "eq" {
		t.Errorf("JsonPathOperator = %v, want %v", cfg.JsonPathOperator, "eq")
	}
	if cfg.ExpectedValue != "test" {
		t.Errorf("ExpectedValue = %v, want %v", cfg.ExpectedValue, "test")
	}
}

func TestSnmpExecutor_parseSnmpVersion(t *testing.T) {
	logger := zap.NewNop().Sugar()
	executor := NewSnmpExecutor(logger)

	tests := []struct {
		input    string
		expected string
	}{
		{"v1", "1"},
		{"v2c", "2c"},
		{"v3", "3"},
		{"invalid", "2c"}, // should default to v2c
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := executor.parseSnmpVersion(tt.input)
			if result.String() != tt.expected {
				t.Errorf("parseSnmpVersion(%v) = %v, want %v", tt.input, result.String(), tt.expected)
			}
		})
	}
}

func TestSnmpExecutor_evaluateCondition(t *testing.T) {
	logger := zap.NewNop().Sugar()
	executor := NewSnmpExecutor(logger)

	tests := []struct {
		name     string
		actual   string
		operator string
		expected string
		want     bool
	}{
		{"equal strings", "test", "eq", "test", true},
		{"not equal strings", "test", "ne", "other", true},
		{"equal numbers", "5", "eq", "5", true},
		{"less than", "5", "lt", "10", true},
		{"greater than", "10", "gt", "5", true},
		{"less than or equal", "5", "le", "5", true},
		{"greater than or equal", "10", "ge", "10", true},
		{"numeric comparison fail", "10", "lt", "5", false},
		{"string comparison with numbers", "abc", "lt", "def", false}, // falls back to string equality
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := executor.evaluateCondition(tt.actual, tt.operator, tt.expected)
			if result != tt.want {
				t.Errorf("evaluateCondition(%v, %v, %v) = %v, want %v", tt.actual, tt.operator, tt.expected, result, tt.want)
			}
		})
	}
}

func TestSnmpExecutor_Execute_InvalidConfig(t *testing.T) {
	logger := zap.NewNop().Sugar()
	executor := NewSnmpExecutor(logger)

	monitor := &Monitor{
		Name:    "test-monitor",
		Timeout: 5,
		Config:  `invalid json`,
	}

	ctx := context.Background()
	result := executor.Execute(ctx, monitor, nil)

	if result.Status != 0 { // MonitorStatusDown
		t.Errorf("Expected down status for invalid config")
	}

	if result.Message == "" {
		t.Errorf("Expected error message for invalid config")
	}
}

func TestSnmpExecutor_Execute_DefaultPort(t *testing.T) {
	logger := zap.NewNop().Sugar()
	executor := NewSnmpExecutor(logger)

	// This test will fail at connection but should validate the config parsing
	monitor := &Monitor{
		Name:    "test-monitor",
		Timeout: 1,
		Config: `{
			"host": "nonexistent.host",
			"community": "public",
			"snmp_version": "v2c",
			"oid": "1.3.6.1.2.1.1.1.0"
		}`,
	}

	ctx := context.Background()
	result := executor.Execute(ctx, monitor, nil)

	// Should fail with connection error, but that means config was parsed correctly
	if result.Status != 0 { // MonitorStatusDown
		t.Errorf("Expected down status for connection failure")
	}

	// Re-parse the config; the default port is applied only inside Execute,
	// so no port value is checked here
	cfg, _ := executor.Unmarshal(monitor.Config)
	snmpCfg := cfg.(*SnmpConfig)
	if snmpCfg.Port != 0 { // Port should be 0 in config, but will be set to 161 in Execute
		// The actual port validation happens in Execute, so we just check that parsing worked
	}
}
