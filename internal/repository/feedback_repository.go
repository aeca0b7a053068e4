package repository

import (
	"context"

	"mock_interview_backend/internal/model"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, fb *model.UserFeedback) error {
	return r.DB.WithContext(ctx).Create(fb).Error
}

func (r *FeedbackRepository) ListBySession(ctx context.Context, sessionID string) ([]model.UserFeedback, error) {
	var items []model.UserFeedback
	err := r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").Find(&items).Error
	return items, err
}

// CountByType 按反馈类型统计，供运营侧汇总
func (r *FeedbackRepository) CountByType(ctx context.Context) (map[string]int64, error) {
	type row struct {
		FeedbackType string
		Total        int64
	}
	var rows []row
	err := r.DB.WithContext(ctx).Model(&model.UserFeedback{}).
		Select("feedback_type, count(*) as total").
		Group("feedback_type").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.FeedbackType] = r.Total
	}
	return out, nil
}
