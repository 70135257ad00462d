package monitor_tls_info

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type sqlModel struct {
	bun.BaseModel `bun:"table:monitor_tls_info,alias:mti"`

	ID        string    `bun:"id,pk"`
	MonitorID string    `bun:"monitor_id,unique,notnull"`
	InfoJSON  string    `bun:"info_json,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type sentHistorySQLModel struct {
	bun.BaseModel `bun:"table:notification_sent_history,alias:nsh"`

	ID        string    `bun:"id,pk"`
	Type      string    `bun:"type,notnull"`
	MonitorID string    `bun:"monitor_id,notnull"`
	Days      int       `bun:"days,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func toDomainModelFromSQL(sm *sqlModel) *Model {
	return &Model{
		ID:        sm.ID,
		MonitorID: sm.MonitorID,
		InfoJSON:  sm.InfoJSON,
		CreatedAt: sm.CreatedAt,
		UpdatedAt: sm.UpdatedAt,
	}
}

type SQLRepositoryImpl struct {
	db *bun.DB
}

func NewSQLRepository(db *bun.DB) Repository {
	return &SQLRepositoryImpl{db: db}
}

func (r *SQLRepositoryImpl) Upsert(ctx context.Context, monitorID string, infoJSON string) (*Model, error) {
	existing := new(sqlModel)
	err := r.db.NewSelect().Model(existing).Where("monitor_id = ?", monitorID).Scan(ctx)
	if err != nil && err.Error() != "sql: no rows in result set" {
		return nil, err
	}

	if err == nil {
		existing.InfoJSON = infoJSON
		existing.UpdatedAt = time.Now()
		_, err := r.db.NewUpdate().Model(existing).Where("id = ?", existing.ID).Exec(ctx)
		if err != nil {
			return nil, err
		}
		return toDomainModelFromSQL(existing), nil
	}

	sm := &sqlModel{
		ID:        uuid.New().String(),
		MonitorID: monitorID,
		InfoJSON:  infoJSON,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	_, err = r.db.NewInsert().Model(sm).Returning("*").Exec(ctx)
	if err != nil {
		return nil, err
	}
	return toDomainModelFromSQL(sm), nil
}

func (r *SQLRepositoryImpl) FindByMonitorID(ctx context.Context, monitorID string) (*Model, error) {
	sm := new(sqlModel)
	err := r.db.NewSelect().Model(sm).Where("monitor_id = ?", monitorID).Scan(ctx)
	if err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, nil
		}
		return nil, err
	}
	return toDomainModelFromSQL(sm), nil
}

func (r *SQLRepositoryImpl) DeleteByMonitorID(ctx context.Context, monitorID string) error {
	_, err := r.db.NewDelete().Model((*sqlModel)(nil)).Where("monitor_id = ?", monitorID).Exec(ctx)
	return err
}

func (r *SQLRepositoryImpl) HasNotificationSent(ctx context.Context, notificationType, monitorID string, days int) (bool, error) {
	count, err := r.db.NewSelect().
		Model((*sentHistorySQLModel)(nil)).
		Where("type = ? AND monitor_id = ? AND days = ?", notificationType, monitorID, days).
		Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SQLRepositoryImpl) RecordNotificationSent(ctx context.Context, notificationType, monitorID string, days int) error {
	sm := &sentHistorySQLModel{
		ID:        uuid.New().String(),
		Type:      notificationType,
		MonitorID: monitorID,
		Days:      days,
		CreatedAt: time.Now(),
	}
	_, err := r.db.NewInsert().Model(sm).Exec(ctx)
	return err
}

func (r *SQLRepositoryImpl) DeleteNotificationHistory(ctx context.Context, notificationType, monitorID string) error {
	_, err := r.db.NewDelete().
		Model((*sentHistorySQLModel)(nil)).
		Where("type = ? AND monitor_id = ?", notificationType, monitorID).
		Exec(ctx)
	return err
}
