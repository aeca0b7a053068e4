package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/pkg/logger"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// ReportReadyEvent 面试完成后发往消息总线的事件，下游（邮件、站内信）自行消费
type ReportReadyEvent struct {
	SessionID         string    `json:"session_id"`
	UserID            string    `json:"user_id"`
	Role              string    `json:"role"`
	OverallScore      float64   `json:"overall_score"`
	QuestionsAnswered int       `json:"questions_answered"`
	NarrativeSource   string    `json:"narrative_source"`
	CompletedAt       time.Time `json:"completed_at"`
}

// NotificationService 报告送达通知。发布失败由调用方决定是否忽略，
// 面试主流程对它只做 fire-and-forget 调用。未配置 NATS 时事件只写日志。
type NotificationService struct {
	conn    *nats.Conn
	subject string
}

func NewNotificationService(cfg config.NotifyConfig) (*NotificationService, error) {
	if cfg.NATSURL == "" {
		logger.Log.Info("NATS not configured, report events will be logged only")
		return &NotificationService{subject: cfg.Subject}, nil
	}

	conn, err := nats.Connect(cfg.NATSURL,
		nats.Name("mock-interview-backend"),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	logger.Log.Info("connected to NATS", zap.String("url", cfg.NATSURL))
	return &NotificationService{conn: conn, subject: cfg.Subject}, nil
}

func (n *NotificationService) NotifyReportReady(ctx context.Context, session *model.InterviewSession, report *model.InterviewReport) error {
	completedAt := time.Now()
	if session.CompletedAt != nil {
		completedAt = *session.CompletedAt
	}

	event := ReportReadyEvent{
		SessionID:         session.ID,
		UserID:            session.UserID,
		Role:              session.Role,
		OverallScore:      report.OverallScore,
		QuestionsAnswered: report.QuestionsAnswered,
		NarrativeSource:   report.NarrativeSource,
		CompletedAt:       completedAt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal report event: %w", err)
	}

	if n.conn == nil {
		logger.Log.Info("report ready", zap.ByteString("event", data))
		return nil
	}
	if err := n.conn.Publish(n.subject, data); err != nil {
		return fmt.Errorf("publish report event: %w", err)
	}

	logger.Log.Info("report ready event published",
		zap.String("session_id", session.ID),
		zap.String("subject", n.subject))
	return nil
}

// Close 排空未发出的消息后断开连接
func (n *NotificationService) Close() {
	if n.conn != nil {
		if err := n.conn.Drain(); err != nil {
			logger.Log.Warn("NATS drain failed", zap.Error(err))
		}
	}
}
