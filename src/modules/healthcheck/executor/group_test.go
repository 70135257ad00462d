package executor

import (
	"context"
	"sentrywatch/src/modules/heartbeat"
	"sentrywatch/src/modules/monitor"
	"sentrywatch/src/modules/shared"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestGroupExecutor_Execute(t *testing.T) {
	logger := zap.NewNop().Sugar()

	childUp := &monitor.Model{ID: "child-up", Active: true}
	childDown := &monitor.Model{ID: "child-down", Active: true}
	childPending := &monitor.Model{ID: "child-pending", Active: true}
	childInactive := &monitor.Model{ID: "child-inactive", Active: false}

	tests := []struct {
		name           string
		children       []*monitor.Model
		beats          map[string][]*heartbeat.Model
		expectedStatus shared.MonitorStatus
		expectedMsg    string
	}{
		{
			name:           "no children is pending",
			children:       nil,
			expectedStatus: shared.MonitorStatusPending,
			expectedMsg:    "Group empty",
		},
		{
			name:           "only inactive children is pending",
			children:       []*monitor.Model{childInactive},
			expectedStatus: shared.MonitorStatusPending,
			expectedMsg:    "Group empty",
		},
		{
			name:     "all active children up",
			children: []*monitor.Model{childUp},
			beats: map[string][]*heartbeat.Model{
				"child-up": {{Status: shared.MonitorStatusUp}},
			},
			expectedStatus: shared.MonitorStatusUp,
			expectedMsg:    "All children up and running",
		},
		{
			name:     "one child down drags the group down",
			children: []*monitor.Model{childUp, childDown},
			beats: map[string][]*heartbeat.Model{
				"child-up":   {{Status: shared.MonitorStatusUp}},
				"child-down": {{Status: shared.MonitorStatusDown}},
			},
			expectedStatus: shared.MonitorStatusDown,
			expectedMsg:    "Child inaccessible",
		},
		{
			name:     "one child pending degrades to pending",
			children: []*monitor.Model{childUp, childPending},
			beats: map[string][]*heartbeat.Model{
				"child-up":      {{Status: shared.MonitorStatusUp}},
				"child-pending": {{Status: shared.MonitorStatusPending}},
			},
			expectedStatus: shared.MonitorStatusPending,
			expectedMsg:    "Child inaccessible",
		},
		{
			name:     "child with no heartbeat yet degrades to pending",
			children: []*monitor.Model{childUp},
			beats: map[string][]*heartbeat.Model{
				"child-up": {},
			},
			expectedStatus: shared.MonitorStatusPending,
			expectedMsg:    "Child inaccessible",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monitorSvc := new(ExecutorMockMonitorService)
			heartbeatSvc := new(ExecutorMockHeartbeatService)

			monitorSvc.On("FindByParentID", mock.Anything, "group1").Return(tt.children, nil)
			for id, beats := range tt.beats {
				heartbeatSvc.On("FindByMonitorIDPaginated", mock.Anything, id, 1, 0, mock.Anything, false).Return(beats, nil)
			}

			exec := NewGroupExecutor(logger, monitorSvc, heartbeatSvc)
			result := exec.Execute(context.Background(), &Monitor{ID: "group1", Type: "group"}, nil)

			assert.NotNil(t, result)
			assert.Equal(t, tt.expectedStatus, result.Status)
			assert.Equal(t, tt.expectedMsg, result.Message)
		})
	}
}

func TestGroupExecutor_Validate(t *testing.T) {
	logger := zap.NewNop().Sugar()
	exec := NewGroupExecutor(logger, nil, nil)

	assert.NoError(t, exec.Validate(`{}`))
	assert.Error(t, exec.Validate(`{invalid}`))
}
