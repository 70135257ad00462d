package maintenance

import (
	"context"
	"time"

	maintenanceutils "sentrywatch/src/modules/maintenance/utils"
	"sentrywatch/src/modules/monitor_maintenance"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, entity *CreateUpdateDto) (*Model, error)
	FindByID(ctx context.Context, id string) (*Model, error)
	FindAll(ctx context.Context, page int, limit int, q string, strategy string) ([]*Model, error)
	UpdateFull(ctx context.Context, id string, entity *CreateUpdateDto) (*Model, error)
	UpdatePartial(ctx context.Context, id string, entity *PartialUpdateDto) (*Model, error)
	Delete(ctx context.Context, id string) error

	Pause(ctx context.Context, id string) (*Model, error)
	Resume(ctx context.Context, id string) (*Model, error)

	GetMaintenancesByMonitorID(ctx context.Context, monitorID string) ([]*Model, error)
	IsUnderMaintenance(ctx context.Context, m *Model) (bool, error)
}

type ServiceImpl struct {
	repository           Repository
	monitorMaintenanceSvc monitor_maintenance.Service
	cronGenerator        *maintenanceutils.CronGenerator
	timeUtils            *maintenanceutils.TimeUtils
	windowChecker        *maintenanceutils.TimeWindowChecker
	validator            *maintenanceutils.Validator
	logger               *zap.SugaredLogger
}

func NewService(
	repository Repository,
	monitorMaintenanceSvc monitor_maintenance.Service,
	windowChecker *maintenanceutils.TimeWindowChecker,
	logger *zap.SugaredLogger,
) Service {
	return &ServiceImpl{
		repository:            repository,
		monitorMaintenanceSvc: monitorMaintenanceSvc,
		cronGenerator:         maintenanceutils.NewCronGenerator(),
		timeUtils:             maintenanceutils.NewTimeUtils(),
		windowChecker:         windowChecker,
		validator:             maintenanceutils.NewValidator(),
		logger:                logger.Named("[maintenance-service]"),
	}
}

// populateCron recomputes the cron expression for recurring strategies so the
// stored schedule always reflects the latest start_time/weekdays/days_of_month.
func (s *ServiceImpl) populateCron(entity *CreateUpdateDto) error {
	if err := s.validator.ValidateStrategy(entity.Strategy); err != nil {
		return err
	}

	cron, err := s.cronGenerator.GenerateCronExpression(entity.Strategy, &maintenanceutils.CronParams{
		StartTime:   entity.StartTime,
		EndTime:     entity.EndTime,
		Weekdays:    entity.Weekdays,
		DaysOfMonth: entity.DaysOfMonth,
		IntervalDay: entity.IntervalDay,
	})
	if err != nil {
		return err
	}
	if cron != nil {
		entity.Cron = cron
	}

	return s.validator.ValidateCronAndDuration(&maintenanceutils.ValidationParams{
		Cron:     entity.Cron,
		Duration: entity.Duration,
		Strategy: &entity.Strategy,
	})
}

func (s *ServiceImpl) Create(ctx context.Context, entity *CreateUpdateDto) (*Model, error) {
	if err := s.populateCron(entity); err != nil {
		return nil, err
	}
	return s.repository.Create(ctx, entity)
}

func (s *ServiceImpl) FindByID(ctx context.Context, id string) (*Model, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *ServiceImpl) FindAll(ctx context.Context, page int, limit int, q string, strategy string) ([]*Model, error) {
	return s.repository.FindAll(ctx, page, limit, q, strategy)
}

func (s *ServiceImpl) UpdateFull(ctx context.Context, id string, entity *CreateUpdateDto) (*Model, error) {
	if err := s.populateCron(entity); err != nil {
		return nil, err
	}
	return s.repository.UpdateFull(ctx, id, entity)
}

func (s *ServiceImpl) UpdatePartial(ctx context.Context, id string, entity *PartialUpdateDto) (*Model, error) {
	return s.repository.UpdatePartial(ctx, id, entity)
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repository.Delete(ctx, id)
}

func (s *ServiceImpl) Pause(ctx context.Context, id string) (*Model, error) {
	return s.repository.SetActive(ctx, id, false)
}

func (s *ServiceImpl) Resume(ctx context.Context, id string) (*Model, error) {
	return s.repository.SetActive(ctx, id, true)
}

// GetMaintenancesByMonitorID resolves the monitor's maintenance links via the
// monitor_maintenance join collection (kept separately since it has no SQL
// schema counterpart) and fetches each maintenance record individually,
// rather than relying on a cross-store SQL join.
func (s *ServiceImpl) GetMaintenancesByMonitorID(ctx context.Context, monitorID string) ([]*Model, error) {
	links, err := s.monitorMaintenanceSvc.FindByMonitorID(ctx, monitorID)
	if err != nil {
		return nil, err
	}

	maintenances := make([]*Model, 0, len(links))
	for _, link := range links {
		m, err := s.repository.FindByID(ctx, link.MaintenanceID)
		if err != nil {
			return nil, err
		}
		if m == nil || !m.Active {
			continue
		}
		maintenances = append(maintenances, m)
	}
	return maintenances, nil
}

// IsUnderMaintenance evaluates whether the given maintenance record is
// currently active, dispatching on its strategy.
func (s *ServiceImpl) IsUnderMaintenance(ctx context.Context, m *Model) (bool, error) {
	if !m.Active {
		return false, nil
	}

	timezone := s.timeUtils.GetDefaultTimezone()
	if m.Timezone != nil {
		timezone = *m.Timezone
	}
	loc := s.timeUtils.LoadTimezone(timezone)
	now := time.Now().In(loc)

	params := &maintenanceutils.TimeWindowParams{
		StartDateTime: m.StartDateTime,
		EndDateTime:   m.EndDateTime,
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		IntervalDay:   m.IntervalDay,
		Cron:          m.Cron,
		Duration:      m.Duration,
		Weekdays:      m.Weekdays,
		DaysOfMonth:   m.DaysOfMonth,
		Timezone:      &timezone,
	}

	switch m.Strategy {
	case "manual":
		return true, nil
	case "single":
		return s.windowChecker.IsInDateTimePeriod(params, now, loc)
	case "recurring-interval":
		return s.windowChecker.IsInRecurringIntervalWindow(params, now, loc)
	case "recurring-weekday":
		return s.windowChecker.IsInRecurringWeekdayWindow(params, now, loc)
	case "recurring-day-of-month":
		return s.windowChecker.IsInRecurringDayOfMonthWindow(params, now, loc)
	default:
		if m.Cron != nil {
			return s.windowChecker.IsInCronMaintenanceWindow(params, now, loc)
		}
		return false, nil
	}
}
