package monitor

import (
	"context"
	"sentrywatch/src/modules/events"
	"sentrywatch/src/modules/heartbeat"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, dto *CreateUpdateDto) (*Model, error)
	FindByID(ctx context.Context, id string) (*Model, error)
	FindByIDs(ctx context.Context, ids []string) ([]*Model, error)
	FindAll(ctx context.Context, page int, limit int, q string, active *bool, status *int) ([]*Model, error)
	FindActive(ctx context.Context) ([]*Model, error)
	UpdateFull(ctx context.Context, id string, dto *CreateUpdateDto) (*Model, error)
	UpdatePartial(ctx context.Context, id string, dto *PartialUpdateDto) (*Model, error)
	Delete(ctx context.Context, id string) error
	FindByProxyId(ctx context.Context, proxyId string) ([]*Model, error)
	FindOneByPushToken(ctx context.Context, pushToken string) (*Model, error)
	FindByParentID(ctx context.Context, parentID string) ([]*Model, error)
	ResetMonitorData(ctx context.Context, id string) error
}

type ServiceImpl struct {
	repository       MonitorRepository
	heartbeatService heartbeat.Service
	eventBus         *events.EventBus
	logger           *zap.SugaredLogger
}

func NewMonitorService(
	repository MonitorRepository,
	heartbeatService heartbeat.Service,
	eventBus *events.EventBus,
	logger *zap.SugaredLogger,
) Service {
	return &ServiceImpl{
		repository:       repository,
		heartbeatService: heartbeatService,
		eventBus:         eventBus,
		logger:           logger.Named("[monitor-service]"),
	}
}

func (s *ServiceImpl) Create(ctx context.Context, dto *CreateUpdateDto) (*Model, error) {
	created, err := s.repository.Create(ctx, dto.toModel())
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(events.Event{Type: events.MonitorCreated, Payload: created})
	return created, nil
}

func (s *ServiceImpl) FindByID(ctx context.Context, id string) (*Model, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *ServiceImpl) FindByIDs(ctx context.Context, ids []string) ([]*Model, error) {
	return s.repository.FindByIDs(ctx, ids)
}

func (s *ServiceImpl) FindAll(ctx context.Context, page int, limit int, q string, active *bool, status *int) ([]*Model, error) {
	return s.repository.FindAll(ctx, page, limit, q, active, status)
}

func (s *ServiceImpl) FindActive(ctx context.Context) ([]*Model, error) {
	return s.repository.FindActive(ctx)
}

func (s *ServiceImpl) UpdateFull(ctx context.Context, id string, dto *CreateUpdateDto) (*Model, error) {
	m := dto.toModel()
	m.ID = id
	if err := s.repository.UpdateFull(ctx, id, m); err != nil {
		return nil, err
	}

	updated, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(events.Event{Type: events.MonitorUpdated, Payload: updated})
	return updated, nil
}

func (s *ServiceImpl) UpdatePartial(ctx context.Context, id string, dto *PartialUpdateDto) (*Model, error) {
	if err := s.repository.UpdatePartial(ctx, id, dto.toUpdateModel()); err != nil {
		return nil, err
	}

	updated, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(events.Event{Type: events.MonitorUpdated, Payload: updated})
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repository.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.heartbeatService.DeleteByMonitorID(ctx, id); err != nil {
		s.logger.Errorf("failed to delete heartbeats for monitor %s: %v", id, err)
	}

	s.eventBus.Publish(events.Event{Type: events.MonitorDeleted, Payload: id})
	return nil
}

func (s *ServiceImpl) FindByProxyId(ctx context.Context, proxyId string) ([]*Model, error) {
	return s.repository.FindByProxyId(ctx, proxyId)
}

func (s *ServiceImpl) FindOneByPushToken(ctx context.Context, pushToken string) (*Model, error) {
	return s.repository.FindOneByPushToken(ctx, pushToken)
}

func (s *ServiceImpl) FindByParentID(ctx context.Context, parentID string) ([]*Model, error) {
	return s.repository.FindByParentID(ctx, parentID)
}

// ResetMonitorData clears a monitor's heartbeat history, used when a
// monitor's configuration changes enough to invalidate historical data.
func (s *ServiceImpl) ResetMonitorData(ctx context.Context, id string) error {
	return s.heartbeatService.DeleteByMonitorID(ctx, id)
}
