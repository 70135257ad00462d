package proxy

import (
	"context"
	"sentrywatch/src/modules/events"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, dto *CreateUpdateDto) (*Model, error)
	FindByID(ctx context.Context, id string) (*Model, error)
	FindAll(ctx context.Context, page int, limit int, q string) ([]*Model, error)
	UpdateFull(ctx context.Context, id string, dto *CreateUpdateDto) (*Model, error)
	UpdatePartial(ctx context.Context, id string, dto *PartialUpdateDto) (*Model, error)
	Delete(ctx context.Context, id string) error
}

type ServiceImpl struct {
	repository Repository
	eventBus   *events.EventBus
	logger     *zap.SugaredLogger
}

func NewService(repository Repository, eventBus *events.EventBus, logger *zap.SugaredLogger) Service {
	return &ServiceImpl{
		repository: repository,
		eventBus:   eventBus,
		logger:     logger.Named("[proxy-service]"),
	}
}

func (s *ServiceImpl) Create(ctx context.Context, dto *CreateUpdateDto) (*Model, error) {
	return s.repository.Create(ctx, dto.toModel())
}

func (s *ServiceImpl) FindByID(ctx context.Context, id string) (*Model, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *ServiceImpl) FindAll(ctx context.Context, page int, limit int, q string) ([]*Model, error) {
	return s.repository.FindAll(ctx, page, limit, q)
}

func (s *ServiceImpl) UpdateFull(ctx context.Context, id string, dto *CreateUpdateDto) (*Model, error) {
	m := dto.toModel()
	m.ID = id
	updated, err := s.repository.UpdateFull(ctx, id, m)
	if err != nil {
		return nil, err
	}
	s.eventBus.Publish(events.Event{Type: events.ProxyUpdated, Payload: updated})
	return updated, nil
}

func (s *ServiceImpl) UpdatePartial(ctx context.Context, id string, dto *PartialUpdateDto) (*Model, error) {
	updated, err := s.repository.UpdatePartial(ctx, id, dto.toUpdateModel())
	if err != nil {
		return nil, err
	}
	s.eventBus.Publish(events.Event{Type: events.ProxyUpdated, Payload: updated})
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repository.Delete(ctx, id); err != nil {
		return err
	}
	s.eventBus.Publish(events.Event{Type: events.ProxyDeleted, Payload: id})
	return nil
}
