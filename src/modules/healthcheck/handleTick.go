package healthcheck

import (
	"context"
	"fmt"
	"sentrywatch/src/modules/events"
	"sentrywatch/src/modules/healthcheck/executor"
	"sentrywatch/src/modules/heartbeat"
	"sentrywatch/src/modules/proxy"
	"sentrywatch/src/modules/shared"
	"time"
)

// isImportantForNotification determines if a heartbeat is important for notification purposes.
func (s *HealthCheckSupervisor) isImportantForNotification(prevBeatStatus, currBeatStatus heartbeat.MonitorStatus) bool {
	up := shared.MonitorStatusUp
	down := shared.MonitorStatusDown
	pending := shared.MonitorStatusPending
	maintenance := shared.MonitorStatusMaintenance

	// * ? -> ANY STATUS = important [isFirstBeat]
	// UP -> PENDING = not important
	// * UP -> DOWN = important
	// UP -> UP = not important
	// PENDING -> PENDING = not important
	// * PENDING -> DOWN = important
	// PENDING -> UP = not important
	// DOWN -> PENDING = this case not exists
	// DOWN -> DOWN = not important
	// * DOWN -> UP = important
	// MAINTENANCE -> MAINTENANCE = not important
	// MAINTENANCE -> UP = not important
	// * MAINTENANCE -> DOWN = important
	// DOWN -> MAINTENANCE = not important
	// UP -> MAINTENANCE = not important

	return (prevBeatStatus == maintenance && currBeatStatus == down) ||
		(prevBeatStatus == up && currBeatStatus == down) ||
		(prevBeatStatus == down && currBeatStatus == up) ||
		(prevBeatStatus == pending && currBeatStatus == down)
}

// isImportantBeat determines if the status of the monitor has changed in an important way since the last beat.
func (s *HealthCheckSupervisor) isImportantBeat(prevBeatStatus, currBeatStatus heartbeat.MonitorStatus) bool {
	up := shared.MonitorStatusUp
	down := shared.MonitorStatusDown
	pending := shared.MonitorStatusPending
	maintenance := shared.MonitorStatusMaintenance

	// UP -> PENDING = not important
	// * UP -> DOWN = important
	// UP -> UP = not important
	// PENDING -> PENDING = not important
	// * PENDING -> DOWN = important
	// PENDING -> UP = not important
	// DOWN -> PENDING = this case not exists
	// DOWN -> DOWN = not important
	// * DOWN -> UP = important
	// MAINTENANCE -> MAINTENANCE = not important
	// * MAINTENANCE -> UP = important
	// * MAINTENANCE -> DOWN = important
	// * DOWN -> MAINTENANCE = important
	// * UP -> MAINTENANCE = important

	return (prevBeatStatus == down && currBeatStatus == maintenance) ||
		(prevBeatStatus == up && currBeatStatus == maintenance) ||
		(prevBeatStatus == maintenance && currBeatStatus == down) ||
		(prevBeatStatus == maintenance && currBeatStatus == up) ||
		(prevBeatStatus == up && currBeatStatus == down) ||
		(prevBeatStatus == down && currBeatStatus == up) ||
		(prevBeatStatus == pending && currBeatStatus == down)
}

func (s *HealthCheckSupervisor) postProcessHeartbeat(result *executor.Result, m *Monitor, intervalUpdateCb func(newInterval time.Duration)) {
	ping := int(result.EndTime.Sub(result.StartTime).Milliseconds())

	ctx := context.Background()

	// get the previous heartbeat
	previousBeats, err := s.heartbeatService.FindByMonitorIDPaginated(ctx, m.ID, 1, 0, nil, false)
	var previousBeat *heartbeat.Model = nil
	if err != nil {
		s.logger.Errorf("Failed to get previous heartbeat for monitor %s: %v", m.ID, err)
	}
	if len(previousBeats) > 0 {
		previousBeat = previousBeats[0]
	}

	s.logger.Debugf("previousBeat %t", previousBeat != nil)

	isFirstBeat := previousBeat == nil

	status := result.Status

	// Upside-down inversion (post-probe): flip UP<->DOWN for the lifecycle
	// of this monitor. PENDING/MAINTENANCE pass through untouched; a
	// flipped DOWN is treated exactly like a probe-reported DOWN below.
	if m.UpsideDown {
		switch status {
		case shared.MonitorStatusUp:
			status = shared.MonitorStatusDown
		case shared.MonitorStatusDown:
			status = shared.MonitorStatusUp
		}
	}

	duration := 0
	if !isFirstBeat {
		duration = int(result.StartTime.Sub(previousBeat.Time).Seconds())
	}

	hb := &heartbeat.CreateUpdateDto{
		MonitorID: m.ID,
		Status:    status,
		Msg:       result.Message,
		Ping:      ping,
		Duration:  duration,
		DownCount: 0,
		Retries:   0,
		Important: false,
		Time:      result.StartTime,
		EndTime:   result.EndTime,
		Notified:  false,
	}

	if !isFirstBeat {
		hb.DownCount = previousBeat.DownCount
		hb.Retries = previousBeat.Retries
	}

	// mark as pending if max retries is set and retries is less than max retries;
	// hb.Retries already holds previousBeat.Retries (or 0 on the first beat,
	// which must itself go PENDING rather than DOWN when maxRetries > 0).
	if status == shared.MonitorStatusDown {
		if m.MaxRetries > 0 && hb.Retries < m.MaxRetries {
			hb.Status = shared.MonitorStatusPending
		}
		if intervalUpdateCb != nil {
			intervalUpdateCb(time.Duration(m.RetryInterval) * time.Second)
		}
		hb.Retries++
	} else {
		if intervalUpdateCb != nil {
			intervalUpdateCb(time.Duration(m.Interval) * time.Second)
		}
		hb.Retries = 0
	}

	s.logger.Debugf("isFirstBeat for: %s %t", m.Name, isFirstBeat)
	s.logger.Debugf("checking if important for: %s", m.Name)
	prevStatus := shared.MonitorStatus(0)
	if previousBeat != nil {
		prevStatus = previousBeat.Status
	}
	isImportant := isFirstBeat || s.isImportantBeat(prevStatus, hb.Status)
	s.logger.Debugf("isImportant for %s: %t", m.Name, isImportant)

	shouldNotify := false
	importantForNotify := isFirstBeat || s.isImportantForNotification(prevStatus, hb.Status)

	// if important (beat status changed), send notification
	if isImportant {
		hb.Important = true

		if importantForNotify {
			s.logger.Debugf("sending notification %s", m.Name)
			shouldNotify = true
			hb.Notified = true
		} else {
			s.logger.Debugf("not sending notification %s", m.Name)
		}

		hb.DownCount = 0
	} else {
		hb.Important = false

		if hb.Status == shared.MonitorStatusDown && m.ResendInterval > 0 {
			hb.DownCount += 1

			if hb.DownCount >= m.ResendInterval {
				shouldNotify = true
				hb.Notified = true
				hb.DownCount = 0
			}
		}
	}

	// importantForNotify also resets retries, per the flap-with-retries
	// scenario: a PENDING->DOWN transition that fires a notification has
	// already "used up" its retry budget. A first beat degraded to PENDING
	// keeps its count, since its retry budget has only just started.
	if importantForNotify && hb.Status != shared.MonitorStatusPending {
		hb.Retries = 0
	}

	if hb.Status == shared.MonitorStatusUp {
		s.logger.Debugf("%s successful response %d ms | interval %d seconds | type %s", m.Name, ping, m.Interval, m.Type)
	} else if hb.Status == shared.MonitorStatusPending {
		s.logger.Debugf("%s pending response %d ms | interval %d seconds | type %s", m.Name, ping, m.Interval, m.Type)
	} else if hb.Status == shared.MonitorStatusDown {
		s.logger.Debugf("%s down response %d ms | interval %d seconds | type %s", m.Name, ping, m.Interval, m.Type)
	} else if hb.Status == shared.MonitorStatusMaintenance {
		s.logger.Debugf("%s maintenance response %d ms | interval %d seconds | type %s", m.Name, ping, m.Interval, m.Type)
	}

	if result.TlsInfo != nil && s.tlsInfoService != nil {
		if err := s.tlsInfoService.HandleTlsInfo(ctx, m, result.TlsInfo); err != nil {
			s.logger.Warnf("Failed to process tls info for monitor %s: %v", m.ID, err)
		}
	}

	dbHb, err := s.heartbeatService.Create(ctx, hb)
	if err != nil {
		s.logger.Errorf("Failed to create heartbeat: %v", err)
		return
	}

	// Every beat invalidates the uptime cache for this monitor, not just
	// important ones, since duration/ping data changed either way.
	if s.uptimeCalculator != nil {
		s.uptimeCalculator.InvalidateCache(m.ID)
	}

	if shouldNotify {
		s.eventBus.Publish(events.Event{
			Type:    events.MonitorStatusChanged,
			Payload: dbHb,
		})
	}
}

// handleMonitorTick processes a single monitor tick in its own goroutine.
func (s *HealthCheckSupervisor) handleMonitorTick(
	ctx context.Context,
	m *Monitor,
	exec executor.Executor,
	proxyModel *proxy.Model,
	intervalUpdateCb func(newInterval time.Duration),
) {
	// Check if monitor is under maintenance
	isUnderMaintenance, err := s.isUnderMaintenance(ctx, m.ID)
	s.logger.Debugf("isUnderMaintenance for %s: %t", m.Name, isUnderMaintenance)
	if err != nil {
		s.logger.Errorf("Failed to check maintenance status for monitor %s: %v", m.ID, err)
	}

	if isUnderMaintenance {
		// If under maintenance, create a maintenance status heartbeat
		result := &executor.Result{
			Status:    shared.MonitorStatusMaintenance,
			Message:   "Monitor under maintenance",
			StartTime: time.Now(),
			EndTime:   time.Now(),
		}
		s.postProcessHeartbeat(result, m, intervalUpdateCb)
		return
	}

	callCtx, cCancel := context.WithTimeout(
		ctx,
		time.Duration(m.Timeout)*time.Second,
	)
	defer cCancel()

	// Execute the health check
	result := exec.Execute(callCtx, m, proxyModel)
	if result == nil {
		return
	}

	// A probe that failed because its own context deadline fired (rather
	// than reporting a protocol-level error) is reported uniformly here,
	// since individual executors don't all distinguish cancellation causes.
	if callCtx.Err() == context.DeadlineExceeded && result.Status != shared.MonitorStatusUp {
		result.Message = fmt.Sprintf("timeout by AbortSignal (%ds)", m.Timeout)
	}

	s.postProcessHeartbeat(result, m, intervalUpdateCb)
}
