package monitor_tls_info

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"sentrywatch/src/modules/heartbeat"
	"sentrywatch/src/modules/monitor_notification"
	"sentrywatch/src/modules/notification_channel"
	"sentrywatch/src/modules/setting"
	"sentrywatch/src/modules/shared"

	"go.uber.org/zap"
)

// defaultExpiryThresholds is used when the tlsExpiryNotifyDays setting is
// absent or unparseable.
var defaultExpiryThresholds = []int{7, 14, 21}

const certificateNotificationType = "certificate"

type Service interface {
	FindByMonitorID(ctx context.Context, monitorID string) (*shared.TlsInfo, error)
	// HandleTlsInfo upserts the captured chain, resets expiry-notification
	// dedup on fingerprint rotation, and sends threshold-crossing
	// certificate-expiry notifications.
	HandleTlsInfo(ctx context.Context, m *shared.Monitor, tlsInfo *shared.TlsInfo) error
}

type ServiceImpl struct {
	repository                 Repository
	monitorNotificationService monitor_notification.Service
	notificationChannelService notification_channel.Service
	settingService             setting.Service
	logger                     *zap.SugaredLogger
}

func NewService(
	repository Repository,
	monitorNotificationService monitor_notification.Service,
	notificationChannelService notification_channel.Service,
	settingService setting.Service,
	logger *zap.SugaredLogger,
) Service {
	return &ServiceImpl{
		repository:                 repository,
		monitorNotificationService: monitorNotificationService,
		notificationChannelService: notificationChannelService,
		settingService:             settingService,
		logger:                     logger.Named("[monitor-tls-info-service]"),
	}
}

func (s *ServiceImpl) FindByMonitorID(ctx context.Context, monitorID string) (*shared.TlsInfo, error) {
	m, err := s.repository.FindByMonitorID(ctx, monitorID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}

	var info shared.TlsInfo
	if err := json.Unmarshal([]byte(m.InfoJSON), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *ServiceImpl) HandleTlsInfo(ctx context.Context, m *shared.Monitor, tlsInfo *shared.TlsInfo) error {
	if tlsInfo == nil || tlsInfo.Leaf() == nil {
		return nil
	}

	previous, err := s.FindByMonitorID(ctx, m.ID)
	if err != nil {
		s.logger.Warnw("failed to load previous tls info", "monitor_id", m.ID, "error", err)
	}

	infoJSON, err := json.Marshal(tlsInfo)
	if err != nil {
		return err
	}
	if _, err := s.repository.Upsert(ctx, m.ID, string(infoJSON)); err != nil {
		return err
	}

	leaf := tlsInfo.Leaf()
	if previous == nil || previous.Leaf() == nil || previous.Leaf().Fingerprint256 != leaf.Fingerprint256 {
		if err := s.repository.DeleteNotificationHistory(ctx, certificateNotificationType, m.ID); err != nil {
			s.logger.Warnw("failed to clear cert notification history on fingerprint change", "monitor_id", m.ID, "error", err)
		}
	}

	if m.IgnoreTls || !m.ExpiryNotification {
		return nil
	}

	thresholds := s.expiryThresholds(ctx)

	for _, cert := range tlsInfo.Certificates {
		if cert.CertType == "root" {
			continue
		}
		for _, threshold := range thresholds {
			if cert.DaysRemaining > threshold {
				continue
			}

			sent, err := s.repository.HasNotificationSent(ctx, certificateNotificationType, m.ID, threshold)
			if err != nil {
				s.logger.Warnw("failed to check cert notification dedup", "monitor_id", m.ID, "error", err)
				continue
			}
			if sent {
				continue
			}

			message := fmt.Sprintf("[%s][%s] %s certificate %s will be expired in %d days", m.Name, monitorURL(m), cert.CertType, cert.SubjectCN, cert.DaysRemaining)
			s.sendExpiryNotification(ctx, m, message)

			if err := s.repository.RecordNotificationSent(ctx, certificateNotificationType, m.ID, threshold); err != nil {
				s.logger.Warnw("failed to record cert notification dedup row", "monitor_id", m.ID, "error", err)
			}
		}
	}

	return nil
}

// monitorURL pulls the "url" field out of a monitor's per-type Config blob,
// which is where the http executor's config (the only type that ever
// produces TlsInfo) stores it.
func monitorURL(m *shared.Monitor) string {
	var cfg struct {
		Url string `json:"url"`
	}
	if err := json.Unmarshal([]byte(m.Config), &cfg); err != nil {
		return ""
	}
	return cfg.Url
}

func (s *ServiceImpl) expiryThresholds(ctx context.Context) []int {
	thresholdSetting, err := s.settingService.GetByKey(ctx, "TLS_EXPIRY_NOTIFY_DAYS")
	if err != nil || thresholdSetting == nil || thresholdSetting.Value == "" {
		return defaultExpiryThresholds
	}

	var raw []int
	if err := json.Unmarshal([]byte(thresholdSetting.Value), &raw); err == nil && len(raw) > 0 {
		return raw
	}
	if v, err := strconv.Atoi(thresholdSetting.Value); err == nil {
		return []int{v}
	}
	return defaultExpiryThresholds
}

func (s *ServiceImpl) sendExpiryNotification(ctx context.Context, m *shared.Monitor, message string) {
	links, err := s.monitorNotificationService.FindByMonitorID(ctx, m.ID)
	if err != nil {
		s.logger.Errorw("failed to load monitor notification links", "monitor_id", m.ID, "error", err)
		return
	}

	hb := &heartbeat.Model{
		MonitorID: m.ID,
		Status:    shared.MonitorStatusUp,
		Msg:       message,
	}

	for _, link := range links {
		channel, err := s.notificationChannelService.FindByID(ctx, link.NotificationID)
		if err != nil || channel == nil || channel.Config == nil {
			continue
		}

		provider, ok := notification_channel.GetNotificationChannelProvider(channel.Type)
		if !ok {
			continue
		}
		if err := provider.Validate(*channel.Config); err != nil {
			s.logger.Warnw("invalid notification config", "channel", channel.Name, "error", err)
			continue
		}
		if err := provider.Send(ctx, *channel.Config, message, m, hb); err != nil {
			s.logger.Errorw("failed to send cert expiry notification", "channel", channel.Name, "error", err)
		}
	}
}
