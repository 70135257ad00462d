package stats

import (
	"context"
	"fmt"
	"sentrywatch/src/modules/events"
	"sentrywatch/src/modules/shared"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type HeartbeatPayload struct {
	MonitorID string
	Status    shared.MonitorStatus
	Ping      int
	Time      int64 // Unix seconds
}

type Service interface {
	AggregateHeartbeat(ctx context.Context, hb *HeartbeatPayload) error
	RegisterEventHandlers(eventBus *events.EventBus)
	FindStatsByMonitorIDAndTimeRange(ctx context.Context, monitorID string, since, until time.Time, period StatPeriod) ([]*Stat, error)
	StatPointsSummary(statsList []*Stat) *Stats
}

type ServiceImpl struct {
	repo   Repository
	logger *zap.SugaredLogger
}

func NewService(repo Repository, logger *zap.SugaredLogger) Service {
	return &ServiceImpl{repo, logger.Named("[stats-service]")}
}

// flatStatus buckets the four-way monitor status down to up/down for
// uptime-bucket aggregation: a monitor under maintenance still counts as
// reachable, and PENDING (mid-retry) still counts as unreachable.
func (s *ServiceImpl) flatStatus(status shared.MonitorStatus) shared.MonitorStatus {
	switch status {
	case shared.MonitorStatusUp, shared.MonitorStatusMaintenance:
		return shared.MonitorStatusUp
	case shared.MonitorStatusDown, shared.MonitorStatusPending:
		return shared.MonitorStatusDown
	default:
		return status
	}
}

func (s *ServiceImpl) AggregateHeartbeat(ctx context.Context, hb *HeartbeatPayload) error {
	periods := []struct {
		Period StatPeriod
		Bucket time.Duration
	}{
		{StatMinutely, time.Minute},
		{StatHourly, time.Hour},
		{StatDaily, 24 * time.Hour},
	}

	for _, p := range periods {
		bucketTime := time.Unix(hb.Time, 0).Truncate(p.Bucket)

		monitorObjectID, err := primitive.ObjectIDFromHex(hb.MonitorID)
		if err != nil {
			return fmt.Errorf("invalid monitorID: %w", err)
		}

		stat, err := s.repo.GetOrCreateStat(ctx, monitorObjectID, bucketTime, p.Period)
		if err != nil {
			return err
		}

		statToUpsert := *stat // copy

		// Up/Down logic (flattened)
		if s.flatStatus(hb.Status) == shared.MonitorStatusUp {
			statToUpsert.Up = stat.Up + 1
			// Only update ping stats for a genuine UP, not a maintenance window
			if hb.Status == shared.MonitorStatusUp {
				fPing := float64(hb.Ping)
				if stat.Up == 0 {
					statToUpsert.PingMin = fPing
					statToUpsert.Ping = fPing
					statToUpsert.PingMax = fPing
				} else {
					statToUpsert.Ping = (stat.Ping*float64(stat.Up) + fPing) / float64(stat.Up+1)

					// Update ping min if new ping is lower
					if fPing < stat.PingMin || stat.PingMin == 0 {
						statToUpsert.PingMin = fPing
					} else {
						statToUpsert.PingMin = stat.PingMin
					}

					// Update ping max if new ping is higher
					if fPing > stat.PingMax {
						statToUpsert.PingMax = fPing
					} else {
						statToUpsert.PingMax = stat.PingMax
					}
				}
			}
		} else if s.flatStatus(hb.Status) == shared.MonitorStatusDown {
			statToUpsert.Down = stat.Down + 1
		}

		// Aggregate maintenance status separately
		if hb.Status == shared.MonitorStatusMaintenance {
			statToUpsert.Maintenance = stat.Maintenance + 1
		}

		// Upsert stat
		if err := s.repo.UpsertStat(ctx, &statToUpsert, p.Period); err != nil {
			return err
		}
	}
	return nil
}

func (s *ServiceImpl) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.HeartbeatEvent, func(event events.Event) {
		payload, ok := event.Payload.(*shared.HeartBeatModel)
		if !ok {
			return
		}
		hb := &HeartbeatPayload{
			MonitorID: payload.MonitorID,
			Status:    payload.Status,
			Ping:      payload.Ping,
			Time:      payload.Time.Unix(),
		}
		_ = s.AggregateHeartbeat(context.Background(), hb)
	})
}

func (s *ServiceImpl) FindStatsByMonitorIDAndTimeRange(ctx context.Context, monitorID string, since, until time.Time, period StatPeriod) ([]*Stat, error) {
	objectID, err := primitive.ObjectIDFromHex(monitorID)
	if err != nil {
		return nil, fmt.Errorf("invalid monitorID: %w", err)
	}
	stats, err := s.repo.FindStatsByMonitorIDAndTimeRange(ctx, objectID, since, until, period)
	if err != nil {
		return nil, err
	}

	// Determine bucket size
	var bucket time.Duration
	switch period {
	case StatMinutely:
		bucket = time.Minute
	case StatHourly:
		bucket = time.Hour
	case StatDaily:
		bucket = 24 * time.Hour
	default:
		bucket = time.Minute
	}

	// Build a map for quick lookup
	statMap := make(map[int64]*Stat)
	for _, stat := range stats {
		statMap[stat.Timestamp.Unix()] = stat
	}

	// Fill missing intervals
	targetBucketLength := int(until.Sub(since)/bucket) + 1
	result := make([]*Stat, 0, targetBucketLength)
	for t := since.Truncate(bucket); !t.After(until); t = t.Add(bucket) {
		key := t.Unix()
		if stat, ok := statMap[key]; ok {
			result = append(result, stat)
		} else {
			result = append(result, &Stat{
				ID:          primitive.NilObjectID,
				MonitorID:   objectID,
				Timestamp:   t,
				Ping:        0,
				PingMin:     0,
				PingMax:     0,
				Up:          0,
				Down:        0,
				Maintenance: 0,
			})
		}
	}

	return result, nil
}

// StatPointsSummary is a local struct for summary in stats package (avoid import cycle)
type Stats struct {
	MaxPing     *float64 `json:"maxPing"`
	MinPing     *float64 `json:"minPing"`
	AvgPing     *float64 `json:"avgPing"`
	Uptime      *float64 `json:"uptime"`
	Maintenance *float64 `json:"maintenance"`
}

// StatPointsSummary computes stat points and summary for a period using flatStatus logic
func (s *ServiceImpl) StatPointsSummary(statsList []*Stat) *Stats {
	var maxPing *float64
	var minPing *float64
	var sumPing float64
	var upCount int
	var totalUp, totalDown, totalMaintenance int

	for _, s := range statsList {
		if s.Up > 0 {
			if maxPing == nil || s.PingMax > *maxPing {
				v := s.PingMax
				maxPing = &v
			}
			if s.PingMin > 0 && (minPing == nil || s.PingMin < *minPing) {
				v := s.PingMin
				minPing = &v
			}
			sumPing += s.Ping * float64(s.Up)
			upCount += s.Up
		}
		totalUp += s.Up
		totalDown += s.Down
		totalMaintenance += s.Maintenance
	}

	var avgPing *float64
	if upCount > 0 {
		v := sumPing / float64(upCount)
		avgPing = &v
	}

	var uptime *float64
	var maintenance *float64
	total := totalUp + totalDown + totalMaintenance
	if total > 0 {
		uptimeV := float64(totalUp) / float64(total) * 100
		uptime = &uptimeV

		maintenanceV := float64(totalMaintenance) / float64(total) * 100
		maintenance = &maintenanceV
	}

	return &Stats{
		MaxPing:     maxPing,
		MinPing:     minPing,
		AvgPing:     avgPing,
		Uptime:      uptime,
		Maintenance: maintenance,
	}
}
