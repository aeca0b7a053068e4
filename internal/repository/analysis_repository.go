package repository

import (
	"context"
	"errors"

	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/util"

	"gorm.io/gorm"
)

type AnalysisRepository struct {
	DB *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{DB: db}
}

func (r *AnalysisRepository) Create(ctx context.Context, req *model.AnalysisRequest) error {
	return r.DB.WithContext(ctx).Create(req).Error
}

func (r *AnalysisRepository) Update(ctx context.Context, req *model.AnalysisRequest) error {
	return r.DB.WithContext(ctx).Save(req).Error
}

func (r *AnalysisRepository) GetByID(ctx context.Context, id string) (*model.AnalysisRequest, error) {
	var req model.AnalysisRequest
	err := r.DB.WithContext(ctx).First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAnalysisNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *AnalysisRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.AnalysisRequest, int64, error) {
	var items []model.AnalysisRequest
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.AnalysisRequest{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&items).Error
	return items, total, err
}
