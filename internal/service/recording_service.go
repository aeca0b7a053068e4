package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/repository"
	"mock_interview_backend/internal/util"
	"mock_interview_backend/pkg/logger"

	"go.uber.org/zap"
)

// 嗅探不出来的容器（m4a、部分 webm）会报 octet-stream，由后面的 ffprobe 兜底把关
var recordingMimeAllowlist = []string{util.MimeVideo, util.MimeAudio, "application/ogg", util.MimeOctetStream}

// RecordingService 负责回答录音/录像工件的上传、探测与元数据管理
type RecordingService struct {
	config  config.StorageConfig
	repo    *repository.RecordingRepository
	store   SessionStore
	storage *StorageService
}

func NewRecordingService(cfg config.StorageConfig, repo *repository.RecordingRepository, store SessionStore, storage *StorageService) *RecordingService {
	return &RecordingService{
		config:  cfg,
		repo:    repo,
		store:   store,
		storage: storage,
	}
}

// AttachSignalsRequest 外部分析方回写的信号，内容不做语义校验
type AttachSignalsRequest struct {
	Signals map[string]any `json:"signals" binding:"required"`
}

// UploadRecording 上传某一轮回答的录音/录像并持久化探测出的元数据
func (s *RecordingService) UploadRecording(ctx context.Context, userID, sessionID string, turnSeq int, file *multipart.FileHeader) (*model.AnswerRecording, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !hasTurn(session, turnSeq) {
		return nil, fmt.Errorf("%w: session has no turn %d", util.ErrStaleTurn, turnSeq)
	}

	if !util.IsAllowedRecordingExt(file.Filename) {
		return nil, fmt.Errorf("%w: %s", util.ErrUnsupportedMedia, filepath.Ext(file.Filename))
	}
	maxBytes := s.config.MaxRecordingMB * 1024 * 1024
	if file.Size > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d MB", util.ErrRecordingTooLarge, file.Size, s.config.MaxRecordingMB)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, recordingMimeAllowlist)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", util.ErrUnsupportedMedia, mimeType)
	}
	if mimeType == util.MimeOctetStream {
		if ct := file.Header.Get("Content-Type"); ct != "" {
			mimeType = ct
		}
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	// 临时落盘，探测元数据之后再进对象存储
	tempDir := filepath.Join(s.config.LocalPath, "temp")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	tempPath := filepath.Join(tempDir, fmt.Sprintf("recording_%d%s", time.Now().UnixNano(), ext))
	defer os.Remove(tempPath)

	dst, err := os.Create(tempPath)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return nil, err
	}
	dst.Close()

	info, err := util.ProbeMedia(tempPath)
	if err != nil {
		return nil, fmt.Errorf("%w: not a readable media file", util.ErrUnsupportedMedia)
	}

	objectKey := RecordingObjectKey(sessionID, turnSeq, ext)
	if _, err := s.storage.UploadFile(ctx, objectKey, tempPath, mimeType); err != nil {
		return nil, err
	}

	thumbnailKey := ""
	if info.HasVideo {
		thumbnailKey = s.uploadThumbnail(ctx, sessionID, turnSeq, tempPath)
	}

	rec := &model.AnswerRecording{
		SessionID:       sessionID,
		TurnSeq:         turnSeq,
		ObjectPath:      objectKey,
		ThumbnailPath:   thumbnailKey,
		MimeType:        mimeType,
		DurationSeconds: info.Duration,
		SizeBytes:       info.Size,
		Format:          info.Format,
		HasVideo:        info.HasVideo,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	logger.Log.Info("answer recording stored",
		zap.String("sessionId", sessionID),
		zap.Int("turnSeq", turnSeq),
		zap.String("format", rec.Format),
		zap.Float64("durationSeconds", rec.DurationSeconds),
		zap.Bool("hasVideo", rec.HasVideo))
	return rec, nil
}

// uploadThumbnail 抓帧失败只记日志，不影响主件上传
func (s *RecordingService) uploadThumbnail(ctx context.Context, sessionID string, turnSeq int, mediaPath string) string {
	thumbnailKey := ThumbnailObjectKey(sessionID, turnSeq)
	thumbnailPath := filepath.Join(s.config.LocalPath, "temp", filepath.Base(thumbnailKey))
	defer os.Remove(thumbnailPath)

	if err := util.ExtractThumbnail(mediaPath, thumbnailPath, "1"); err != nil {
		logger.Log.Warn("thumbnail extraction failed",
			zap.String("sessionId", sessionID), zap.Int("turnSeq", turnSeq), zap.Error(err))
		return ""
	}
	if _, err := s.storage.UploadFile(ctx, thumbnailKey, thumbnailPath, "image/jpeg"); err != nil {
		logger.Log.Warn("thumbnail upload failed",
			zap.String("sessionId", sessionID), zap.Int("turnSeq", turnSeq), zap.Error(err))
		return ""
	}
	return thumbnailKey
}

func (s *RecordingService) GetRecording(ctx context.Context, userID, recordingID string) (*model.AnswerRecording, error) {
	rec, err := s.repo.GetByID(ctx, recordingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedSession(ctx, userID, rec.SessionID); err != nil {
		return nil, util.ErrRecordingNotFound
	}
	return rec, nil
}

func (s *RecordingService) ListSessionRecordings(ctx context.Context, userID, sessionID string) ([]model.AnswerRecording, error) {
	if _, err := s.ownedSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	return s.repo.ListBySession(ctx, sessionID)
}

// AttachSignals 合并外部提供方的分析信号，同名键覆盖
func (s *RecordingService) AttachSignals(ctx context.Context, userID, recordingID string, signals map[string]any) (*model.AnswerRecording, error) {
	rec, err := s.GetRecording(ctx, userID, recordingID)
	if err != nil {
		return nil, err
	}
	if rec.Signals == nil {
		rec.Signals = make(map[string]any, len(signals))
	}
	for k, v := range signals {
		rec.Signals[k] = v
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *RecordingService) DeleteRecording(ctx context.Context, userID, recordingID string) error {
	rec, err := s.GetRecording(ctx, userID, recordingID)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, rec.ObjectPath); err != nil {
		logger.Log.Warn("recording object delete failed", zap.String("objectPath", rec.ObjectPath), zap.Error(err))
	}
	if rec.ThumbnailPath != "" {
		if err := s.storage.Delete(ctx, rec.ThumbnailPath); err != nil {
			logger.Log.Warn("thumbnail object delete failed", zap.String("thumbnailPath", rec.ThumbnailPath), zap.Error(err))
		}
	}
	return s.repo.Delete(ctx, recordingID)
}

// ownedSession 按归属取会话，不属于该用户时按不存在处理
func (s *RecordingService) ownedSession(ctx context.Context, userID, sessionID string) (*model.InterviewSession, error) {
	session, err := s.store.LoadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	return session, nil
}

func hasTurn(session *model.InterviewSession, seq int) bool {
	for i := range session.Turns {
		if session.Turns[i].Seq == seq {
			return true
		}
	}
	return false
}
