package service

import (
	"context"
	"fmt"

	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/repository"
	"mock_interview_backend/internal/util"
)

// FeedbackService 用户对题目、评语、报告的反馈
type FeedbackService struct {
	repo  *repository.FeedbackRepository
	store SessionStore
}

func NewFeedbackService(repo *repository.FeedbackRepository, store SessionStore) *FeedbackService {
	return &FeedbackService{repo: repo, store: store}
}

type SubmitFeedbackRequest struct {
	SessionID    string `json:"session_id"`
	TurnSeq      int    `json:"turn_seq"`
	FeedbackType string `json:"feedback_type" binding:"required"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

// SubmitFeedback 记录一条反馈。负面反馈必须附带说明，否则拒绝。
func (s *FeedbackService) SubmitFeedback(ctx context.Context, userID string, req *SubmitFeedbackRequest) (*model.UserFeedback, error) {
	feedbackType := model.FeedbackType(req.FeedbackType)
	if !model.ValidFeedbackType(feedbackType) {
		return nil, fmt.Errorf("%w: unknown feedback type %q", util.ErrInvalidConfiguration, req.FeedbackType)
	}

	comment := util.SanitizeText(req.Comment, 2000)
	if feedbackType.Negative() && util.IsBlank(comment) {
		return nil, util.ErrCommentRequired
	}
	// 0 表示未评分
	if req.Rating != 0 && (req.Rating < 1 || req.Rating > 5) {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", util.ErrInvalidConfiguration)
	}

	if req.SessionID != "" {
		session, err := s.store.LoadSession(ctx, req.SessionID)
		if err != nil {
			return nil, err
		}
		if session.UserID != userID {
			return nil, util.ErrSessionNotFound
		}
		if req.TurnSeq != 0 {
			found := false
			for _, t := range session.Turns {
				if t.Seq == req.TurnSeq {
					found = true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("%w: turn %d does not exist", util.ErrInvalidConfiguration, req.TurnSeq)
			}
		}
	}

	fb := &model.UserFeedback{
		UserID:       userID,
		SessionID:    req.SessionID,
		TurnSeq:      req.TurnSeq,
		FeedbackType: feedbackType,
		Rating:       req.Rating,
		Comment:      comment,
	}
	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}

func (s *FeedbackService) ListSessionFeedback(ctx context.Context, userID, sessionID string) ([]model.UserFeedback, error) {
	session, err := s.store.LoadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	return s.repo.ListBySession(ctx, sessionID)
}

// FeedbackStats 按类型统计反馈量，运营侧使用
func (s *FeedbackService) FeedbackStats(ctx context.Context) (map[string]int64, error) {
	return s.repo.CountByType(ctx)
}
