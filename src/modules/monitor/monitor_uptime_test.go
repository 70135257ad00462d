package monitor

import (
	"context"
	"testing"
	"time"

	"sentrywatch/src/modules/heartbeat"
	"sentrywatch/src/modules/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type uptimeMockHeartbeatService struct {
	mock.Mock
}

func (m *uptimeMockHeartbeatService) Create(ctx context.Context, entity *heartbeat.CreateUpdateDto) (*heartbeat.Model, error) {
	args := m.Called(ctx, entity)
	return args.Get(0).(*heartbeat.Model), args.Error(1)
}

func (m *uptimeMockHeartbeatService) FindByID(ctx context.Context, id string) (*heartbeat.Model, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*heartbeat.Model), args.Error(1)
}

func (m *uptimeMockHeartbeatService) FindAll(ctx context.Context, page int, limit int) ([]*heartbeat.Model, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]*heartbeat.Model), args.Error(1)
}

func (m *uptimeMockHeartbeatService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *uptimeMockHeartbeatService) FindUptimeStatsByMonitorID(ctx context.Context, monitorID string, periods map[string]time.Duration, now time.Time) (map[string]float64, error) {
	args := m.Called(ctx, monitorID, periods, now)
	return args.Get(0).(map[string]float64), args.Error(1)
}

func (m *uptimeMockHeartbeatService) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *uptimeMockHeartbeatService) FindByMonitorIDPaginated(ctx context.Context, monitorID string, limit, page int, important *bool, reverse bool) ([]*heartbeat.Model, error) {
	args := m.Called(ctx, monitorID, limit, page, important, reverse)
	return args.Get(0).([]*heartbeat.Model), args.Error(1)
}

func (m *uptimeMockHeartbeatService) DeleteByMonitorID(ctx context.Context, monitorID string) error {
	args := m.Called(ctx, monitorID)
	return args.Error(0)
}

func (m *uptimeMockHeartbeatService) FindByMonitorIDAndTimeRange(ctx context.Context, monitorID string, since, until time.Time) ([]*heartbeat.Model, error) {
	args := m.Called(ctx, monitorID, since, until)
	return args.Get(0).([]*heartbeat.Model), args.Error(1)
}

func TestUptimeCalculator_GetUptimeRatio_DurationTrimmed(t *testing.T) {
	hbSvc := new(uptimeMockHeartbeatService)
	now := time.Now().UTC()
	windowHours := 1.0
	t0 := now.Add(-time.Hour)

	beats := []*heartbeat.Model{
		// starts 10 min before the window: duration should be trimmed to
		// only the portion inside [t0, now].
		{Status: shared.MonitorStatusUp, Time: t0.Add(-10 * time.Minute), Duration: 20 * 60},
		{Status: shared.MonitorStatusDown, Time: t0.Add(30 * time.Minute), Duration: 10 * 60},
	}
	hbSvc.On("FindByMonitorIDAndTimeRange", mock.Anything, "m1", mock.Anything, mock.Anything).Return(beats, nil)

	calc := NewUptimeCalculator(hbSvc)
	ratio, err := calc.GetUptimeRatio(context.Background(), "m1", windowHours, now)

	assert.NoError(t, err)
	// first beat: secondsSinceT0 = -10min -> negative, so it's skipped
	// entirely (hb.Time before t0 and duration would overshoot negative
	// trim). Second beat: secondsSinceT0 = 30min = 1800s, duration 600s,
	// not trimmed since 600 < 1800. DOWN contributes 0 to uptimeDuration.
	assert.Equal(t, float64(0), ratio)
}

func TestUptimeCalculator_GetUptimeRatio_AllUp(t *testing.T) {
	hbSvc := new(uptimeMockHeartbeatService)
	now := time.Now().UTC()
	t0 := now.Add(-time.Hour)

	beats := []*heartbeat.Model{
		{Status: shared.MonitorStatusUp, Time: t0.Add(10 * time.Minute), Duration: 30 * 60},
		{Status: shared.MonitorStatusMaintenance, Time: t0.Add(40 * time.Minute), Duration: 10 * 60},
	}
	hbSvc.On("FindByMonitorIDAndTimeRange", mock.Anything, "m1", mock.Anything, mock.Anything).Return(beats, nil)

	calc := NewUptimeCalculator(hbSvc)
	ratio, err := calc.GetUptimeRatio(context.Background(), "m1", 1.0, now)

	assert.NoError(t, err)
	assert.Equal(t, float64(1), ratio)
}

func TestUptimeCalculator_GetUptimeRatio_CachedUntilInvalidated(t *testing.T) {
	hbSvc := new(uptimeMockHeartbeatService)
	now := time.Now().UTC()
	t0 := now.Add(-time.Hour)

	beats := []*heartbeat.Model{
		{Status: shared.MonitorStatusUp, Time: t0.Add(5 * time.Minute), Duration: 60 * 60},
	}
	hbSvc.On("FindByMonitorIDAndTimeRange", mock.Anything, "m1", mock.Anything, mock.Anything).Return(beats, nil).Once()

	calc := NewUptimeCalculator(hbSvc)

	ratio1, err := calc.GetUptimeRatio(context.Background(), "m1", 1.0, now)
	assert.NoError(t, err)

	// Second call within the same window hits the cache; the mock would
	// fail the test via unmet "Once()" expectations if FindByMonitorIDAndTimeRange
	// were called again.
	ratio2, err := calc.GetUptimeRatio(context.Background(), "m1", 1.0, now)
	assert.NoError(t, err)
	assert.Equal(t, ratio1, ratio2)

	hbSvc.AssertExpectations(t)

	calc.InvalidateCache("m1")

	hbSvc.On("FindByMonitorIDAndTimeRange", mock.Anything, "m1", mock.Anything, mock.Anything).Return(beats, nil).Once()
	ratio3, err := calc.GetUptimeRatio(context.Background(), "m1", 1.0, now)
	assert.NoError(t, err)
	assert.Equal(t, ratio1, ratio3)
	hbSvc.AssertExpectations(t)
}

func TestUptimeCalculator_AvgPing(t *testing.T) {
	hbSvc := new(uptimeMockHeartbeatService)
	now := time.Now().UTC()

	beats := []*heartbeat.Model{
		{Ping: 100},
		{Ping: 200},
		{Ping: 0}, // ignored
	}
	hbSvc.On("FindByMonitorIDAndTimeRange", mock.Anything, "m1", mock.Anything, mock.Anything).Return(beats, nil)

	calc := NewUptimeCalculator(hbSvc)
	avg, err := calc.AvgPing(context.Background(), "m1", 1.0, now)

	assert.NoError(t, err)
	assert.NotNil(t, avg)
	assert.Equal(t, float64(150), *avg)
}
