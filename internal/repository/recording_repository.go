package repository

import (
	"context"
	"errors"

	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/util"

	"gorm.io/gorm"
)

type RecordingRepository struct {
	DB *gorm.DB
}

func NewRecordingRepository(db *gorm.DB) *RecordingRepository {
	return &RecordingRepository{DB: db}
}

func (r *RecordingRepository) Create(ctx context.Context, rec *model.AnswerRecording) error {
	return r.DB.WithContext(ctx).Create(rec).Error
}

func (r *RecordingRepository) GetByID(ctx context.Context, id string) (*model.AnswerRecording, error) {
	var rec model.AnswerRecording
	err := r.DB.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrRecordingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecordingRepository) ListBySession(ctx context.Context, sessionID string) ([]model.AnswerRecording, error) {
	var recs []model.AnswerRecording
	err := r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("turn_seq ASC").Find(&recs).Error
	return recs, err
}

func (r *RecordingRepository) Update(ctx context.Context, rec *model.AnswerRecording) error {
	return r.DB.WithContext(ctx).Save(rec).Error
}

func (r *RecordingRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&model.AnswerRecording{}, "id = ?", id).Error
}
