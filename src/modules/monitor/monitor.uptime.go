package monitor

import (
	"context"
	"fmt"
	"sentrywatch/src/modules/heartbeat"
	"sentrywatch/src/modules/shared"
	"sync"
	"time"
)

// UptimeCache holds uptime(monitorId, windowHours) ratios, invalidated
// per-monitor whenever an important beat is recorded for that monitor
// (spec: "cache is purged per-monitor on every important beat").
type UptimeCache struct {
	mu      sync.RWMutex
	entries map[string]uptimeCacheEntry
}

type uptimeCacheEntry struct {
	ratio float64
}

func NewUptimeCache() *UptimeCache {
	return &UptimeCache{entries: make(map[string]uptimeCacheEntry)}
}

func uptimeCacheKey(monitorID string, windowHours float64) string {
	return fmt.Sprintf("%s|%g", monitorID, windowHours)
}

func (c *UptimeCache) get(monitorID string, windowHours float64) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[uptimeCacheKey(monitorID, windowHours)]
	return e.ratio, ok
}

func (c *UptimeCache) set(monitorID string, windowHours float64, ratio float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[uptimeCacheKey(monitorID, windowHours)] = uptimeCacheEntry{ratio: ratio}
}

// Invalidate purges every cached window for monitorID. Called from the
// tick path on every important beat.
func (c *UptimeCache) Invalidate(monitorID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := monitorID + "|"
	for k := range c.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.entries, k)
		}
	}
}

// UptimeResult holds the calculated uptime and average ping for a period.
type UptimeResult struct {
	Uptime  float64                `json:"uptime"` // 0-100
	AvgPing *float64               `json:"avgPing"`
	Points  []heartbeat.ChartPoint `json:"points"`
}

// UptimeGranularity defines the time bucket for aggregation.
type UptimeGranularity string

const (
	GranularityMinute UptimeGranularity = "minute"
	GranularityHour   UptimeGranularity = "hour"
	GranularityDay    UptimeGranularity = "day"
)

// UptimeCalculator provides methods to calculate uptime for a monitor.
type UptimeCalculator struct {
	HeartbeatService heartbeat.Service
	cache            *UptimeCache
}

func NewUptimeCalculator(heartbeatService heartbeat.Service) *UptimeCalculator {
	return &UptimeCalculator{HeartbeatService: heartbeatService, cache: NewUptimeCache()}
}

// InvalidateCache purges every cached window for monitorID. Call on every
// important beat (spec.md §4.2 step 8/9, §4.8).
func (u *UptimeCalculator) InvalidateCache(monitorID string) {
	u.cache.Invalidate(monitorID)
}

// GetUptimeRatio computes uptime(monitorId, windowHours) per spec.md §4.8:
// duration-trimmed availability in [0,1], with MAINTENANCE counting as UP.
// Result is cached until the next important beat for this monitor.
func (u *UptimeCalculator) GetUptimeRatio(ctx context.Context, monitorID string, windowHours float64, now time.Time) (float64, error) {
	if ratio, ok := u.cache.get(monitorID, windowHours); ok {
		return ratio, nil
	}

	t0 := now.Add(-time.Duration(windowHours * float64(time.Hour)))

	beats, err := u.HeartbeatService.FindByMonitorIDAndTimeRange(ctx, monitorID, t0, now)
	if err != nil {
		return 0, err
	}

	var totalDuration, uptimeDuration int64
	for _, hb := range beats {
		secondsSinceT0 := int64(hb.Time.Sub(t0).Seconds())
		d := int64(hb.Duration)
		if d > secondsSinceT0 {
			d = secondsSinceT0
		}
		if d < 0 {
			continue
		}
		totalDuration += d
		if hb.Status == shared.MonitorStatusUp || hb.Status == shared.MonitorStatusMaintenance {
			uptimeDuration += d
		}
	}

	var ratio float64
	if totalDuration > 0 {
		ratio = float64(uptimeDuration) / float64(totalDuration)
	} else if len(beats) > 0 && (beats[len(beats)-1].Status == shared.MonitorStatusUp || beats[len(beats)-1].Status == shared.MonitorStatusMaintenance) {
		ratio = 1
	} else {
		ratio = 0
	}

	u.cache.set(monitorID, windowHours, ratio)
	return ratio, nil
}

// AvgPing returns the mean heartbeat ping over the window, ignoring
// heartbeats with no ping recorded (ping<=0 is treated as absent, matching
// probes that leave Ping unset on failure).
func (u *UptimeCalculator) AvgPing(ctx context.Context, monitorID string, windowHours float64, now time.Time) (*float64, error) {
	t0 := now.Add(-time.Duration(windowHours * float64(time.Hour)))
	beats, err := u.HeartbeatService.FindByMonitorIDAndTimeRange(ctx, monitorID, t0, now)
	if err != nil {
		return nil, err
	}

	var sum float64
	var count int
	for _, hb := range beats {
		if hb.Ping > 0 {
			sum += float64(hb.Ping)
			count++
		}
	}
	if count == 0 {
		return nil, nil
	}
	avg := sum / float64(count)
	return &avg, nil
}

// GetUptime calculates uptime for a monitor over a given period and granularity.
func (u *UptimeCalculator) GetUptime(ctx context.Context, monitorID string, since time.Time, until time.Time, granularity UptimeGranularity) (*UptimeResult, error) {
	// Use the heartbeat service to fetch chart points for the period
	points, err := u.fetchChartPoints(ctx, monitorID, since, until, granularity)
	if err != nil {
		return nil, err
	}

	var totalUp, totalDown int
	var totalPing float64
	var upCount int

	for _, pt := range points {
		totalUp += pt.Up
		totalDown += pt.Down
		if pt.Up > 0 {
			totalPing += pt.AvgPing * float64(pt.Up)
			upCount += pt.Up
		}
	}

	// Calculate uptime percentage
	total := totalUp + totalDown
	uptime := 0.0
	if total > 0 {
		uptime = float64(totalUp) / float64(total) * 100
	}

	// Calculate average ping
	var avgPing *float64
	if upCount > 0 {
		avg := totalPing / float64(upCount)
		avgPing = &avg
	}

	return &UptimeResult{
		Uptime:  uptime,
		AvgPing: avgPing,
		Points:  points,
	}, nil
}

// fetchChartPoints fetches heartbeat chart points for the given period and granularity.
func (u *UptimeCalculator) fetchChartPoints(ctx context.Context, monitorID string, since, until time.Time, granularity UptimeGranularity) ([]heartbeat.ChartPoint, error) {
	// For now, use the existing FindByMonitorIDAndTimeRange for minutely granularity.
	// For hourly/daily, you may want to add similar aggregation in the heartbeat repository.
	if granularity == GranularityMinute {
		points, err := u.HeartbeatService.FindByMonitorIDAndTimeRange(ctx, monitorID, since, until)
		if err != nil {
			return nil, err
		}
		return toChartPointSlice(points), nil
	}
	// For hour/day, you would need to implement aggregation in heartbeat repository.
	// For now, fallback to minutely and aggregate in Go.
	minutelyPoints, err := u.HeartbeatService.FindByMonitorIDAndTimeRange(ctx, monitorID, since, until)
	if err != nil {
		return nil, err
	}
	return aggregatePoints(minutelyPoints, granularity), nil
}

// toChartPointSlice converts []*ChartPoint to []ChartPoint
func toChartPointSlice(points []*heartbeat.ChartPoint) []heartbeat.ChartPoint {
	res := make([]heartbeat.ChartPoint, len(points))
	for i, p := range points {
		if p != nil {
			res[i] = *p
		}
	}
	return res
}

// aggregatePoints aggregates minutely points into hourly or daily buckets.
func aggregatePoints(points []*heartbeat.ChartPoint, granularity UptimeGranularity) []heartbeat.ChartPoint {
	bucketMap := make(map[int64]*heartbeat.ChartPoint)
	var bucketSize int64
	if granularity == GranularityHour {
		bucketSize = 3600 * 1000 // ms
	} else if granularity == GranularityDay {
		bucketSize = 86400 * 1000 // ms
	} else {
		return toChartPointSlice(points)
	}

	for _, pt := range points {
		if pt == nil {
			continue
		}
		bucket := pt.Timestamp - (pt.Timestamp % bucketSize)
		b, ok := bucketMap[bucket]
		if !ok {
			b = &heartbeat.ChartPoint{Timestamp: bucket, MinPing: pt.MinPing, MaxPing: pt.MaxPing}
			bucketMap[bucket] = b
		}
		b.Up += pt.Up
		b.Down += pt.Down
		if pt.MinPing < b.MinPing || b.MinPing == 0 {
			b.MinPing = pt.MinPing
		}
		if pt.MaxPing > b.MaxPing {
			b.MaxPing = pt.MaxPing
		}
		b.AvgPing += pt.AvgPing * float64(pt.Up)
	}
	// Finalize avgPing
	var result []heartbeat.ChartPoint
	for _, b := range bucketMap {
		if b.Up > 0 {
			b.AvgPing = b.AvgPing / float64(b.Up)
		}
		result = append(result, *b)
	}
	return result
}
