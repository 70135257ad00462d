package executor

import (
	"context"
	"sentrywatch/src/modules/heartbeat"
	"sentrywatch/src/modules/monitor"
	"sentrywatch/src/modules/shared"
	"time"

	"go.uber.org/zap"
)

// GroupConfig is empty: a group monitor has no protocol-specific fields of
// its own, only children discovered via ParentID.
type GroupConfig struct{}

// GroupExecutor derives a group monitor's status from its direct children's
// latest heartbeats (spec.md §4.6). It never touches the network.
type GroupExecutor struct {
	logger           *zap.SugaredLogger
	monitorService   monitor.Service
	heartbeatService heartbeat.Service
}

func NewGroupExecutor(logger *zap.SugaredLogger, monitorService monitor.Service, heartbeatService heartbeat.Service) *GroupExecutor {
	return &GroupExecutor{
		logger:           logger,
		monitorService:   monitorService,
		heartbeatService: heartbeatService,
	}
}

func (g *GroupExecutor) Unmarshal(configJSON string) (any, error) {
	return GenericUnmarshal[GroupConfig](configJSON)
}

func (g *GroupExecutor) Validate(configJSON string) error {
	cfg, err := g.Unmarshal(configJSON)
	if err != nil {
		return err
	}
	return GenericValidator(cfg.(*GroupConfig))
}

func (g *GroupExecutor) Execute(ctx context.Context, m *Monitor, proxyModel *Proxy) *Result {
	startTime := time.Now().UTC()

	children, err := g.monitorService.FindByParentID(ctx, m.ID)
	if err != nil {
		return DownResult(err, startTime, time.Now().UTC())
	}

	var activeChildren []*monitor.Model
	for _, c := range children {
		if c.Active {
			activeChildren = append(activeChildren, c)
		}
	}

	if len(activeChildren) == 0 {
		return &Result{
			Status:    shared.MonitorStatusPending,
			Message:   "Group empty",
			StartTime: startTime,
			EndTime:   time.Now().UTC(),
		}
	}

	status := shared.MonitorStatusUp
	anyPending := false
	anyDown := false

	for _, child := range activeChildren {
		latest, err := g.heartbeatService.FindByMonitorIDPaginated(ctx, child.ID, 1, 0, nil, false)
		if err != nil {
			g.logger.Warnf("failed to load latest heartbeat for group child %s: %v", child.ID, err)
			anyPending = true
			continue
		}
		if len(latest) == 0 {
			// Child has no prior heartbeat: degrade to PENDING.
			anyPending = true
			continue
		}

		switch latest[0].Status {
		case shared.MonitorStatusDown:
			anyDown = true
		case shared.MonitorStatusPending:
			anyPending = true
		}
	}

	endTime := time.Now().UTC()

	if anyDown {
		status = shared.MonitorStatusDown
		return &Result{Status: status, Message: "Child inaccessible", StartTime: startTime, EndTime: endTime}
	}
	if anyPending {
		status = shared.MonitorStatusPending
		return &Result{Status: status, Message: "Child inaccessible", StartTime: startTime, EndTime: endTime}
	}

	return &Result{
		Status:    shared.MonitorStatusUp,
		Message:   "All children up and running",
		StartTime: startTime,
		EndTime:   endTime,
	}
}
