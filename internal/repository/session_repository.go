package repository

import (
	"context"
	"errors"

	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionRepository 面试会话的持久化层。会话进行期间以缓存快照为准，
// 这里负责创建时和到达终态时的落库。
type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

// SaveSession 写入会话及其全部轮次。轮次按 (session_id, seq) 幂等覆盖，
// 开放轮次在评估完成后会带着答案重写一次。
func (r *SessionRepository) SaveSession(ctx context.Context, s *model.InterviewSession) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Turns", "Report").Save(s).Error; err != nil {
			return err
		}

		for i := range s.Turns {
			s.Turns[i].SessionID = s.ID
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "session_id"}, {Name: "seq"}},
				UpdateAll: true,
			}).Create(&s.Turns[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *SessionRepository) LoadSession(ctx context.Context, sessionID string) (*model.InterviewSession, error) {
	var s model.InterviewSession
	err := r.DB.WithContext(ctx).
		Preload("Turns", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Preload("Report").
		First(&s, "id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) SaveReport(ctx context.Context, report *model.InterviewReport) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		UpdateAll: true,
	}).Create(report).Error
}

func (r *SessionRepository) LoadReport(ctx context.Context, sessionID string) (*model.InterviewReport, error) {
	var report model.InterviewReport
	err := r.DB.WithContext(ctx).First(&report, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrReportNotReady
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *SessionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.InterviewSession, int64, error) {
	var sessions []model.InterviewSession
	var total int64

	db := r.DB.WithContext(ctx).Model(&model.InterviewSession{}).Where("user_id = ?", userID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&sessions).Error
	return sessions, total, err
}
