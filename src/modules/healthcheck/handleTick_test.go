package healthcheck

import (
	"context"
	"testing"
	"time"

	"sentrywatch/src/modules/events"
	"sentrywatch/src/modules/healthcheck/executor"
	"sentrywatch/src/modules/heartbeat"
	"sentrywatch/src/modules/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// tickMockHeartbeatService implements heartbeat.Service for postProcessHeartbeat tests.
type tickMockHeartbeatService struct {
	mock.Mock
}

func (m *tickMockHeartbeatService) Create(ctx context.Context, entity *heartbeat.CreateUpdateDto) (*heartbeat.Model, error) {
	args := m.Called(ctx, entity)
	var hb *heartbeat.Model
	if v, ok := args.Get(0).(*heartbeat.Model); ok {
		hb = v
	}
	return hb, args.Error(1)
}

func (m *tickMockHeartbeatService) FindByID(ctx context.Context, id string) (*heartbeat.Model, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*heartbeat.Model), args.Error(1)
}

func (m *tickMockHeartbeatService) FindAll(ctx context.Context, page int, limit int) ([]*heartbeat.Model, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]*heartbeat.Model), args.Error(1)
}

func (m *tickMockHeartbeatService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *tickMockHeartbeatService) FindUptimeStatsByMonitorID(ctx context.Context, monitorID string, periods map[string]time.Duration, now time.Time) (map[string]float64, error) {
	args := m.Called(ctx, monitorID, periods, now)
	return args.Get(0).(map[string]float64), args.Error(1)
}

func (m *tickMockHeartbeatService) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *tickMockHeartbeatService) FindByMonitorIDPaginated(ctx context.Context, monitorID string, limit, page int, important *bool, reverse bool) ([]*heartbeat.Model, error) {
	args := m.Called(ctx, monitorID, limit, page, important, reverse)
	var beats []*heartbeat.Model
	if v, ok := args.Get(0).([]*heartbeat.Model); ok {
		beats = v
	}
	return beats, args.Error(1)
}

func (m *tickMockHeartbeatService) DeleteByMonitorID(ctx context.Context, monitorID string) error {
	args := m.Called(ctx, monitorID)
	return args.Error(0)
}

func (m *tickMockHeartbeatService) FindByMonitorIDAndTimeRange(ctx context.Context, monitorID string, since, until time.Time) ([]*heartbeat.Model, error) {
	args := m.Called(ctx, monitorID, since, until)
	return args.Get(0).([]*heartbeat.Model), args.Error(1)
}

func newTestSupervisor(hbSvc heartbeat.Service) *HealthCheckSupervisor {
	logger := zap.NewNop().Sugar()
	return &HealthCheckSupervisor{
		active:           make(map[string]*task),
		heartbeatService: hbSvc,
		eventBus:         events.NewEventBus(logger),
		logger:           logger,
	}
}

func TestIsImportantBeat_TruthTable(t *testing.T) {
	s := newTestSupervisor(nil)
	up := shared.MonitorStatusUp
	down := shared.MonitorStatusDown
	pending := shared.MonitorStatusPending
	maintenance := shared.MonitorStatusMaintenance

	cases := []struct {
		prev, curr shared.MonitorStatus
		important  bool
	}{
		{up, pending, false},
		{up, down, true},
		{up, up, false},
		{pending, pending, false},
		{pending, down, true},
		{pending, up, false},
		{down, down, false},
		{down, up, true},
		{maintenance, maintenance, false},
		{maintenance, up, true},
		{maintenance, down, true},
		{down, maintenance, true},
		{up, maintenance, true},
	}

	for _, c := range cases {
		got := s.isImportantBeat(c.prev, c.curr)
		assert.Equal(t, c.important, got, "prev=%v curr=%v", c.prev, c.curr)
	}
}

func TestIsImportantForNotification_TruthTable(t *testing.T) {
	s := newTestSupervisor(nil)
	up := shared.MonitorStatusUp
	down := shared.MonitorStatusDown
	pending := shared.MonitorStatusPending
	maintenance := shared.MonitorStatusMaintenance

	cases := []struct {
		prev, curr shared.MonitorStatus
		important  bool
	}{
		{up, pending, false},
		{up, down, true},
		{up, up, false},
		{pending, pending, false},
		{pending, down, true},
		{pending, up, false},
		{down, down, false},
		{down, up, true},
		{maintenance, maintenance, false},
		{maintenance, up, false},
		{maintenance, down, true},
		{down, maintenance, false},
		{up, maintenance, false},
	}

	for _, c := range cases {
		got := s.isImportantForNotification(c.prev, c.curr)
		assert.Equal(t, c.important, got, "prev=%v curr=%v", c.prev, c.curr)
	}
}

func TestPostProcessHeartbeat_FirstBeatIsImportant(t *testing.T) {
	hbSvc := new(tickMockHeartbeatService)
	hbSvc.On("FindByMonitorIDPaginated", mock.Anything, "m1", 1, 0, mock.Anything, false).Return([]*heartbeat.Model(nil), nil)

	var captured *heartbeat.CreateUpdateDto
	hbSvc.On("Create", mock.Anything, mock.MatchedBy(func(dto *heartbeat.CreateUpdateDto) bool {
		captured = dto
		return true
	})).Return(&heartbeat.Model{ID: "hb1"}, nil)

	s := newTestSupervisor(hbSvc)
	m := &Monitor{ID: "m1", Name: "svc", Interval: 60, RetryInterval: 10, MaxRetries: 0}

	result := &executor.Result{
		Status:    shared.MonitorStatusUp,
		Message:   "OK",
		StartTime: time.Now().UTC(),
		EndTime:   time.Now().UTC(),
	}

	s.postProcessHeartbeat(result, m, nil)

	assert.NotNil(t, captured)
	assert.True(t, captured.Important)
	assert.True(t, captured.Notified)
	assert.Equal(t, shared.MonitorStatusUp, captured.Status)
	assert.Equal(t, 0, captured.Duration)
}

func TestPostProcessHeartbeat_FirstBeatDownWithMaxRetriesIsPending(t *testing.T) {
	hbSvc := new(tickMockHeartbeatService)
	hbSvc.On("FindByMonitorIDPaginated", mock.Anything, "m1", 1, 0, mock.Anything, false).Return([]*heartbeat.Model(nil), nil)

	var captured *heartbeat.CreateUpdateDto
	hbSvc.On("Create", mock.Anything, mock.MatchedBy(func(dto *heartbeat.CreateUpdateDto) bool {
		captured = dto
		return true
	})).Return(&heartbeat.Model{ID: "hb1"}, nil)

	s := newTestSupervisor(hbSvc)
	m := &Monitor{ID: "m1", Name: "svc", Interval: 60, RetryInterval: 10, MaxRetries: 2}

	result := &executor.Result{
		Status:    shared.MonitorStatusDown,
		Message:   "conn refused",
		StartTime: time.Now().UTC(),
		EndTime:   time.Now().UTC(),
	}

	s.postProcessHeartbeat(result, m, nil)

	assert.NotNil(t, captured)
	// retries=0 on the first beat is still < maxRetries=2, so the first
	// failing beat degrades to PENDING rather than DOWN.
	assert.Equal(t, shared.MonitorStatusPending, captured.Status)
	assert.Equal(t, 1, captured.Retries)
}

func TestPostProcessHeartbeat_UpsideDownInversion(t *testing.T) {
	hbSvc := new(tickMockHeartbeatService)
	prevTime := time.Now().UTC().Add(-time.Minute)
	hbSvc.On("FindByMonitorIDPaginated", mock.Anything, "m1", 1, 0, mock.Anything, false).
		Return([]*heartbeat.Model{{Status: shared.MonitorStatusUp, Time: prevTime}}, nil)

	var captured *heartbeat.CreateUpdateDto
	hbSvc.On("Create", mock.Anything, mock.MatchedBy(func(dto *heartbeat.CreateUpdateDto) bool {
		captured = dto
		return true
	})).Return(&heartbeat.Model{ID: "hb1"}, nil)

	s := newTestSupervisor(hbSvc)
	m := &Monitor{ID: "m1", Name: "svc", Interval: 60, RetryInterval: 10, UpsideDown: true}

	result := &executor.Result{
		Status:    shared.MonitorStatusUp, // probe says UP, upside-down flips to DOWN
		Message:   "OK",
		StartTime: time.Now().UTC(),
		EndTime:   time.Now().UTC(),
	}

	s.postProcessHeartbeat(result, m, nil)

	assert.NotNil(t, captured)
	assert.Equal(t, shared.MonitorStatusDown, captured.Status)
	assert.True(t, captured.Duration >= 59 && captured.Duration <= 61)
}

func TestPostProcessHeartbeat_FlapWithRetriesResets(t *testing.T) {
	hbSvc := new(tickMockHeartbeatService)
	hbSvc.On("FindByMonitorIDPaginated", mock.Anything, "m1", 1, 0, mock.Anything, false).
		Return([]*heartbeat.Model{{Status: shared.MonitorStatusPending, Retries: 3, DownCount: 0}}, nil)

	var captured *heartbeat.CreateUpdateDto
	hbSvc.On("Create", mock.Anything, mock.MatchedBy(func(dto *heartbeat.CreateUpdateDto) bool {
		captured = dto
		return true
	})).Return(&heartbeat.Model{ID: "hb1"}, nil)

	s := newTestSupervisor(hbSvc)
	m := &Monitor{ID: "m1", Name: "svc", Interval: 60, RetryInterval: 10, MaxRetries: 3}

	result := &executor.Result{
		Status:    shared.MonitorStatusDown,
		Message:   "conn refused",
		StartTime: time.Now().UTC(),
		EndTime:   time.Now().UTC(),
	}

	s.postProcessHeartbeat(result, m, nil)

	assert.NotNil(t, captured)
	// retries already at MaxRetries, so this beat stays DOWN instead of
	// degrading to PENDING; PENDING -> DOWN is important-for-notification,
	// which resets retries back to 0 for the next cycle.
	assert.Equal(t, shared.MonitorStatusDown, captured.Status)
	assert.True(t, captured.Notified)
	assert.Equal(t, 0, captured.Retries)
}

func TestPostProcessHeartbeat_ResendInterval(t *testing.T) {
	hbSvc := new(tickMockHeartbeatService)
	hbSvc.On("FindByMonitorIDPaginated", mock.Anything, "m1", 1, 0, mock.Anything, false).
		Return([]*heartbeat.Model{{Status: shared.MonitorStatusDown, DownCount: 2, Retries: 5}}, nil)

	var captured *heartbeat.CreateUpdateDto
	hbSvc.On("Create", mock.Anything, mock.MatchedBy(func(dto *heartbeat.CreateUpdateDto) bool {
		captured = dto
		return true
	})).Return(&heartbeat.Model{ID: "hb1"}, nil)

	s := newTestSupervisor(hbSvc)
	m := &Monitor{ID: "m1", Name: "svc", Interval: 60, RetryInterval: 10, MaxRetries: 0, ResendInterval: 3}

	result := &executor.Result{
		Status:    shared.MonitorStatusDown,
		Message:   "still down",
		StartTime: time.Now().UTC(),
		EndTime:   time.Now().UTC(),
	}

	s.postProcessHeartbeat(result, m, nil)

	assert.NotNil(t, captured)
	assert.False(t, captured.Important)
	// DownCount was 2, incremented to 3 == ResendInterval: resend fires.
	assert.True(t, captured.Notified)
	assert.Equal(t, 0, captured.DownCount)
}
