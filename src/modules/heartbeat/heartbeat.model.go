package heartbeat

import (
	"time"

	"sentrywatch/src/modules/shared"
)

type MonitorStatus = shared.MonitorStatus

type ChartPoint = shared.HeartBeatChartPoint

// Model is one probe-outcome record for a monitor. Append-only.
type Model struct {
	ID        string
	MonitorID string
	Status    MonitorStatus
	Msg       string
	Ping      int
	Duration  int
	DownCount int
	Retries   int
	Important bool
	Time      time.Time
	EndTime   time.Time
	Notified  bool
}
