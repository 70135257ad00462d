package executor

import (
	"context"
	"fmt"
	"sentrywatch/src/modules/heartbeat"
	"sentrywatch/src/modules/monitor"
	"sentrywatch/src/modules/shared"
	"time"

	"go.uber.org/zap"
)

type Result struct {
	Status    heartbeat.MonitorStatus
	Message   string
	StartTime time.Time
	EndTime   time.Time
	TlsInfo   *shared.TlsInfo
}

type Monitor = shared.Monitor
type Proxy = shared.Proxy

// Executor defines the interface that all health check executors must implement
type Executor interface {
	Execute(ctx context.Context, params *Monitor, proxyModel *Proxy) *Result
	Validate(configJSON string) error
	Unmarshal(configJSON string) (any, error)
}

type ExecutorRegistry struct {
	logger   *zap.SugaredLogger
	registry map[string]Executor
}

// NewExecutorRegistry builds the type -> ProbeDriver dispatch table
// (spec.md §4.5, §9 "dynamic dispatch on probe type"). Adding a driver is
// additive: register it here and nowhere else needs to change.
func NewExecutorRegistry(
	logger *zap.SugaredLogger,
	heartbeatService heartbeat.Service,
	monitorService monitor.Service,
) *ExecutorRegistry {
	registry := make(map[string]Executor)

	httpExec := NewHTTPExecutor(logger)
	registry["http"] = httpExec
	registry["keyword"] = httpExec
	registry["json-query"] = httpExec

	registry["push"] = NewPushExecutor(logger, heartbeatService)
	registry["port"] = NewTCPExecutor(logger)
	registry["ping"] = NewPingExecutor(logger)
	registry["dns"] = NewDNSExecutor(logger)
	registry["docker"] = NewDockerExecutor(logger)
	registry["grpc-keyword"] = NewGRPCExecutor(logger)
	registry["mqtt"] = NewMQTTExecutor(logger)
	registry["kafka-producer"] = NewKafkaProducerExecutor(logger)
	registry["redis"] = NewRedisExecutor(logger)
	registry["mysql"] = NewMySQLExecutor(logger)
	registry["postgres"] = NewPostgresExecutor(logger)
	registry["sqlserver"] = NewSQLServerExecutor(logger)
	registry["mongodb"] = NewMongoDBExecutor(logger)
	registry["snmp"] = NewSnmpExecutor(logger)
	registry["rabbitmq"] = NewRabbitMQExecutor(logger)
	registry["steam"] = NewSteamExecutor(logger)
	registry["gamedig"] = NewGamedigExecutor(logger)
	registry["radius"] = NewRadiusExecutor(logger)
	registry["group"] = NewGroupExecutor(logger, monitorService, heartbeatService)

	return &ExecutorRegistry{
		registry: registry,
		logger:   logger,
	}
}

func (f *ExecutorRegistry) GetExecutor(name string) (Executor, bool) {
	e, ok := f.registry[name]
	return e, ok
}

func (er *ExecutorRegistry) ValidateConfig(monitorType string, configJSON string) error {
	executor, ok := er.GetExecutor(monitorType)
	if !ok {
		err := fmt.Errorf("executor not found for monitor type: %s", monitorType)
		return err
	}

	err := executor.Validate(configJSON)
	if err != nil {
		er.logger.Errorf("failed to validate config: %s", err.Error())
		return err
	}

	return nil
}
