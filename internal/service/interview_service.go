package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/util"
	"mock_interview_backend/pkg/logger"
	"mock_interview_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// SessionStore 持久化协作方。完成响应返回给调用方之前，落库必须先成功。
type SessionStore interface {
	SaveSession(ctx context.Context, s *model.InterviewSession) error
	LoadSession(ctx context.Context, sessionID string) (*model.InterviewSession, error)
	SaveReport(ctx context.Context, report *model.InterviewReport) error
	LoadReport(ctx context.Context, sessionID string) (*model.InterviewReport, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.InterviewSession, int64, error)
}

// SessionCacheStore 缓存协作方，带会话级互斥锁
type SessionCacheStore interface {
	Acquire(ctx context.Context, sessionID string) (string, error)
	Release(ctx context.Context, sessionID, token string) error
	GetSnapshot(ctx context.Context, sessionID string) (*model.SessionSnapshot, error)
	SetSnapshot(ctx context.Context, snap *model.SessionSnapshot) error
	DeleteSnapshot(ctx context.Context, sessionID string) error
	ActiveSessionIDs(ctx context.Context) ([]string, error)
}

// ReportNotifier 报告送达协作方，只做 fire-and-forget 调用
type ReportNotifier interface {
	NotifyReportReady(ctx context.Context, session *model.InterviewSession, report *model.InterviewReport) error
}

type StartInterviewRequest struct {
	Role            string   `json:"role" binding:"required"`
	Experience      string   `json:"experience" binding:"required"`
	Industry        string   `json:"industry"`
	InterviewType   string   `json:"interview_type"`
	Difficulty      string   `json:"difficulty"`
	QuestionTarget  int      `json:"question_target"`
	DurationMinutes int      `json:"duration_minutes"`
	Skills          []string `json:"skills"`
	CustomQuestions []string `json:"custom_questions"`
}

type SubmitAnswerRequest struct {
	TurnSeq int    `json:"turn_seq" binding:"required"`
	Answer  string `json:"answer"`
}

type QuestionResponse struct {
	SessionID  string `json:"session_id"`
	TurnSeq    int    `json:"turn_seq"`
	Question   string `json:"question"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

type StartInterviewResponse struct {
	SessionID     string            `json:"session_id"`
	Status        string            `json:"status"`
	FirstQuestion *QuestionResponse `json:"first_question"`
}

type TurnEvaluation struct {
	TurnSeq     int      `json:"turn_seq"`
	Score       float64  `json:"score"`
	Feedback    string   `json:"feedback"`
	KeywordHits []string `json:"keyword_hits,omitempty"`
}

// SubmitAnswerResponse 要么带下一题，要么带最终报告
type SubmitAnswerResponse struct {
	SessionID    string                 `json:"session_id"`
	Evaluation   *TurnEvaluation        `json:"evaluation"`
	NextQuestion *QuestionResponse      `json:"next_question,omitempty"`
	Report       *model.InterviewReport `json:"report,omitempty"`
	Completed    bool                   `json:"completed"`
}

type SessionStatusResponse struct {
	SessionID         string     `json:"session_id"`
	Status            string     `json:"status"`
	FailureCause      string     `json:"failure_cause,omitempty"`
	CurrentSeq        int        `json:"current_seq"`
	QuestionTarget    int        `json:"question_target"`
	AnsweredCount     int        `json:"answered_count"`
	Difficulty        string     `json:"difficulty"`
	CurrentDifficulty string     `json:"current_difficulty"`
	StartedAt         *time.Time `json:"started_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// InterviewService 面试会话状态机的编排层。所有会话变更都在会话锁内执行，
// 同一会话同时只有一个操作在途，锁被占用时直接拒绝。
type InterviewService struct {
	config    config.InterviewConfig
	store     SessionStore
	cache     SessionCacheStore
	notifier  ReportNotifier
	memory    *MemoryManager
	questions *QuestionGenerator
	evaluator *ResponseEvaluator
	reports   *ReportAggregator
}

func NewInterviewService(
	cfg config.InterviewConfig,
	store SessionStore,
	cache SessionCacheStore,
	notifier ReportNotifier,
	memory *MemoryManager,
	questions *QuestionGenerator,
	evaluator *ResponseEvaluator,
	reports *ReportAggregator,
) *InterviewService {
	return &InterviewService{
		config:    cfg,
		store:     store,
		cache:     cache,
		notifier:  notifier,
		memory:    memory,
		questions: questions,
		evaluator: evaluator,
		reports:   reports,
	}
}

// StartSession 创建会话并返回第一道题。校验失败时不产生任何状态变更；
// 首题生成失败时会话以 FAILED 落库，错误原样返回。
func (s *InterviewService) StartSession(ctx context.Context, userID string, req *StartInterviewRequest) (*StartInterviewResponse, error) {
	session, err := s.buildSession(userID, req)
	if err != nil {
		return nil, err
	}

	token, err := s.cache.Acquire(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	defer s.cache.Release(ctx, session.ID, token)

	question, err := s.questions.NextQuestion(ctx, session, "")
	if err != nil {
		s.failSession(ctx, session, &model.MemoryWindow{}, err)
		return nil, err
	}

	now := time.Now()
	session.Status = model.SessionActive
	session.StartedAt = &now
	session.LastActivityAt = now
	session.CurrentSeq = 1
	session.CurrentDifficulty = question.Difficulty
	session.Turns = append(session.Turns, model.InterviewTurn{
		SessionID:        session.ID,
		Seq:              1,
		Question:         question.Question,
		Category:         question.Category,
		Difficulty:       question.Difficulty,
		ExpectedKeywords: question.ExpectedKeywords,
		AskedAt:          now,
	})

	if err := s.cache.SetSnapshot(ctx, &model.SessionSnapshot{Session: *session, Memory: model.MemoryWindow{}}); err != nil {
		return nil, err
	}
	if err := s.store.SaveSession(ctx, session); err != nil {
		s.cache.DeleteSnapshot(ctx, session.ID)
		return nil, err
	}

	monitoring.SessionsStarted.Inc()
	logger.Log.Info("interview session started",
		zap.String("session_id", session.ID),
		zap.String("user_id", userID),
		zap.String("role", session.Role),
		zap.String("difficulty", string(session.Difficulty)))

	return &StartInterviewResponse{
		SessionID:     session.ID,
		Status:        string(session.Status),
		FirstQuestion: questionResponse(session.ID, &session.Turns[0]),
	}, nil
}

// SubmitAnswer 评估当前轮的回答。题量未达标时返回下一题；达标时聚合报告、
// 落库后返回报告并异步触发送达通知。
func (s *InterviewService) SubmitAnswer(ctx context.Context, userID, sessionID string, req *SubmitAnswerRequest) (*SubmitAnswerResponse, error) {
	token, err := s.cache.Acquire(ctx, sessionID)
	if err != nil {
		if errors.Is(err, util.ErrSessionBusy) {
			monitoring.SessionLockContention.Inc()
		}
		return nil, err
	}
	defer s.cache.Release(ctx, sessionID, token)

	session, window, err := s.loadForUpdate(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != model.SessionActive {
		return nil, fmt.Errorf("%w: cannot submit answer while session is %s", util.ErrInvalidTransition, session.Status)
	}

	turn := session.OpenTurn()
	if turn == nil || req.TurnSeq != session.CurrentSeq {
		return nil, fmt.Errorf("%w: expected turn %d, got %d", util.ErrStaleTurn, session.CurrentSeq, req.TurnSeq)
	}

	answer := util.SanitizeText(req.Answer, util.MaxPromptLength)
	if util.ContainsInjection(answer) {
		return nil, fmt.Errorf("%w: answer contains disallowed markup", util.ErrPromptRejected)
	}

	evaluation, err := s.evaluator.Evaluate(ctx, turn, answer, s.memory.ContextForNextTurn(window))
	if err != nil {
		s.failSession(ctx, session, window, err)
		return nil, err
	}

	now := time.Now()
	turn.Answer = answer
	turn.Answered = true
	turn.Score = evaluation.Score
	turn.Feedback = evaluation.Feedback
	turn.KeywordHits = evaluation.KeywordHits
	turn.AnsweredAt = &now
	session.LastActivityAt = now

	s.memory.Append(ctx, window, model.MemoryTurn{
		Seq:      turn.Seq,
		Question: turn.Question,
		Answer:   answer,
		Score:    evaluation.Score,
	})

	resp := &SubmitAnswerResponse{
		SessionID: sessionID,
		Evaluation: &TurnEvaluation{
			TurnSeq:     turn.Seq,
			Score:       evaluation.Score,
			Feedback:    evaluation.Feedback,
			KeywordHits: evaluation.KeywordHits,
		},
	}

	if session.AnsweredCount() < session.QuestionTarget {
		question, err := s.questions.NextQuestion(ctx, session, s.memory.ContextForNextTurn(window))
		if err != nil {
			s.failSession(ctx, session, window, err)
			return nil, err
		}

		session.CurrentSeq++
		session.CurrentDifficulty = question.Difficulty
		session.Turns = append(session.Turns, model.InterviewTurn{
			SessionID:        sessionID,
			Seq:              session.CurrentSeq,
			Question:         question.Question,
			Category:         question.Category,
			Difficulty:       question.Difficulty,
			ExpectedKeywords: question.ExpectedKeywords,
			AskedAt:          now,
		})

		if err := s.cache.SetSnapshot(ctx, &model.SessionSnapshot{Session: *session, Memory: *window}); err != nil {
			return nil, err
		}
		if err := s.store.SaveSession(ctx, session); err != nil {
			return nil, err
		}

		resp.NextQuestion = questionResponse(sessionID, session.OpenTurn())
		return resp, nil
	}

	return s.completeSession(ctx, session, window, resp)
}

// completeSession 走 EVALUATING→COMPLETED：聚合报告，库写成功后才把完成
// 结果返回给调用方；送达通知异步发出，失败只记日志。
func (s *InterviewService) completeSession(ctx context.Context, session *model.InterviewSession, window *model.MemoryWindow, resp *SubmitAnswerResponse) (*SubmitAnswerResponse, error) {
	session.Status = model.SessionEvaluating
	if err := s.cache.SetSnapshot(ctx, &model.SessionSnapshot{Session: *session, Memory: *window}); err != nil {
		logger.Log.Warn("failed to broadcast evaluating status", zap.String("session_id", session.ID), zap.Error(err))
	}

	now := time.Now()
	session.CompletedAt = &now
	report := s.reports.Aggregate(ctx, session)

	session.Status = model.SessionCompleted
	session.LastActivityAt = now

	if err := s.store.SaveSession(ctx, session); err != nil {
		s.failSession(ctx, session, window, fmt.Errorf("persist completed session: %w", err))
		return nil, err
	}
	if err := s.store.SaveReport(ctx, report); err != nil {
		s.failSession(ctx, session, window, fmt.Errorf("persist report: %w", err))
		return nil, err
	}
	if err := s.cache.SetSnapshot(ctx, &model.SessionSnapshot{Session: *session, Memory: *window}); err != nil {
		logger.Log.Warn("failed to cache completed session", zap.String("session_id", session.ID), zap.Error(err))
	}

	monitoring.SessionsFinished.WithLabelValues(string(model.SessionCompleted)).Inc()
	logger.Log.Info("interview session completed",
		zap.String("session_id", session.ID),
		zap.Float64("overall_score", report.OverallScore),
		zap.Int("questions_answered", report.QuestionsAnswered))

	go s.notifyReportReady(session, report)

	resp.Report = report
	resp.Completed = true
	return resp, nil
}

func (s *InterviewService) notifyReportReady(session *model.InterviewSession, report *model.InterviewReport) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.notifier.NotifyReportReady(ctx, session, report); err != nil {
		logger.Log.Warn("report notification failed",
			zap.String("session_id", session.ID),
			zap.Error(err))
	}
}

// GetStatus 纯读操作，不做任何状态迁移，重复调用结果一致
func (s *InterviewService) GetStatus(ctx context.Context, userID, sessionID string) (*SessionStatusResponse, error) {
	snap, err := s.cache.GetSnapshot(ctx, sessionID)
	if err != nil {
		logger.Log.Warn("status cache read failed, falling back to store",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
	if snap != nil {
		if snap.Session.UserID != userID {
			return nil, util.ErrSessionNotFound
		}
		return statusOf(&snap.Session), nil
	}

	session, err := s.store.LoadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	return statusOf(session), nil
}

// PauseSession ACTIVE→PAUSED，记忆窗口原样保留
func (s *InterviewService) PauseSession(ctx context.Context, userID, sessionID string) (*SessionStatusResponse, error) {
	return s.transition(ctx, userID, sessionID, model.SessionActive, model.SessionPaused)
}

// ResumeSession PAUSED→ACTIVE
func (s *InterviewService) ResumeSession(ctx context.Context, userID, sessionID string) (*SessionStatusResponse, error) {
	return s.transition(ctx, userID, sessionID, model.SessionPaused, model.SessionActive)
}

func (s *InterviewService) transition(ctx context.Context, userID, sessionID string, from, to model.SessionStatus) (*SessionStatusResponse, error) {
	token, err := s.cache.Acquire(ctx, sessionID)
	if err != nil {
		if errors.Is(err, util.ErrSessionBusy) {
			monitoring.SessionLockContention.Inc()
		}
		return nil, err
	}
	defer s.cache.Release(ctx, sessionID, token)

	session, window, err := s.loadForUpdate(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != from {
		return nil, fmt.Errorf("%w: %s -> %s not allowed", util.ErrInvalidTransition, session.Status, to)
	}

	session.Status = to
	session.LastActivityAt = time.Now()

	if err := s.cache.SetSnapshot(ctx, &model.SessionSnapshot{Session: *session, Memory: *window}); err != nil {
		return nil, err
	}
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	logger.Log.Info("interview session transitioned",
		zap.String("session_id", sessionID),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	return statusOf(session), nil
}

// AbortSession 把会话终止为 ABORTED，已完成的轮次全部保留并落库。
// 进行中的操作持有会话锁，此时中止会拿到 SessionBusy，由调用方稍后重试，
// 在途的模型调用因此总能完整跑完，不会破坏已持久化的状态。
func (s *InterviewService) AbortSession(ctx context.Context, userID, sessionID, cause string) (*SessionStatusResponse, error) {
	token, err := s.cache.Acquire(ctx, sessionID)
	if err != nil {
		if errors.Is(err, util.ErrSessionBusy) {
			monitoring.SessionLockContention.Inc()
		}
		return nil, err
	}
	defer s.cache.Release(ctx, sessionID, token)

	session, window, err := s.loadForUpdate(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if cause == "" {
		cause = "user abort"
	}
	session.Status = model.SessionAborted
	session.FailureCause = cause
	session.LastActivityAt = time.Now()

	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	if err := s.cache.SetSnapshot(ctx, &model.SessionSnapshot{Session: *session, Memory: *window}); err != nil {
		logger.Log.Warn("failed to cache aborted session", zap.String("session_id", sessionID), zap.Error(err))
	}

	monitoring.SessionsFinished.WithLabelValues(string(model.SessionAborted)).Inc()
	logger.Log.Info("interview session aborted",
		zap.String("session_id", sessionID),
		zap.String("cause", cause))
	return statusOf(session), nil
}

// GetReport 读取已完成会话的报告
func (s *InterviewService) GetReport(ctx context.Context, userID, sessionID string) (*model.InterviewReport, error) {
	session, err := s.store.LoadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	return s.store.LoadReport(ctx, sessionID)
}

// ListSessions 按用户分页列出历史会话
func (s *InterviewService) ListSessions(ctx context.Context, userID string, limit, offset int) ([]model.InterviewSession, int64, error) {
	return s.store.ListByUser(ctx, userID, limit, offset)
}

// SweepIdleSessions 巡检缓存中的会话，把闲置超时的补记为 ABORTED(expired)。
// 快照 TTL 是兜底，这里保证超时会话在快照被清走之前已经落库。
func (s *InterviewService) SweepIdleSessions(ctx context.Context) {
	ids, err := s.cache.ActiveSessionIDs(ctx)
	if err != nil {
		logger.Log.Warn("session sweep scan failed", zap.Error(err))
		return
	}
	for _, id := range ids {
		s.expireIfIdle(ctx, id)
	}
}

func (s *InterviewService) expireIfIdle(ctx context.Context, sessionID string) {
	// 锁被占说明会话正活跃，跳过，下一轮巡检再看
	token, err := s.cache.Acquire(ctx, sessionID)
	if err != nil {
		return
	}
	defer s.cache.Release(ctx, sessionID, token)

	snap, err := s.cache.GetSnapshot(ctx, sessionID)
	if err != nil || snap == nil {
		return
	}
	session := snap.Session
	if session.Status.Terminal() {
		return
	}
	if time.Since(session.LastActivityAt) < s.config.SessionTTL {
		return
	}

	session.Status = model.SessionAborted
	session.FailureCause = "expired"
	session.LastActivityAt = time.Now()

	if err := s.store.SaveSession(ctx, &session); err != nil {
		logger.Log.Error("failed to persist expired session",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return
	}
	if err := s.cache.SetSnapshot(ctx, &model.SessionSnapshot{Session: session, Memory: snap.Memory}); err != nil {
		logger.Log.Warn("failed to cache expired session", zap.String("session_id", sessionID), zap.Error(err))
	}

	monitoring.SessionsFinished.WithLabelValues(string(model.SessionAborted)).Inc()
	logger.Log.Info("idle interview session expired", zap.String("session_id", sessionID))
}

// loadForUpdate 在锁内取出会话快照，归属不符时按不存在处理。缓存未命中时
// 回源数据库：终态记录直接拒绝；非终态说明会话已闲置到快照被清走，补记
// ABORTED(expired) 后拒绝。
func (s *InterviewService) loadForUpdate(ctx context.Context, userID, sessionID string) (*model.InterviewSession, *model.MemoryWindow, error) {
	snap, err := s.cache.GetSnapshot(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if snap != nil {
		if snap.Session.UserID != userID {
			return nil, nil, util.ErrSessionNotFound
		}
		if snap.Session.Status.Terminal() {
			return nil, nil, fmt.Errorf("%w: session is %s", util.ErrInvalidTransition, snap.Session.Status)
		}
		session := snap.Session
		window := snap.Memory
		return &session, &window, nil
	}

	session, err := s.store.LoadSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.UserID != userID {
		return nil, nil, util.ErrSessionNotFound
	}
	if session.Status.Terminal() {
		return nil, nil, fmt.Errorf("%w: session is %s", util.ErrInvalidTransition, session.Status)
	}

	session.Status = model.SessionAborted
	session.FailureCause = "expired"
	session.LastActivityAt = time.Now()
	if err := s.store.SaveSession(ctx, session); err != nil {
		logger.Log.Error("failed to persist expired session",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
	monitoring.SessionsFinished.WithLabelValues(string(model.SessionAborted)).Inc()
	return nil, nil, util.ErrSessionExpired
}

// failSession 把会话落入 FAILED 并尽力持久化，已完成的轮次全部保留。
// 这里的持久化失败只记日志，原始错误仍由调用链原样上抛。
func (s *InterviewService) failSession(ctx context.Context, session *model.InterviewSession, window *model.MemoryWindow, cause error) {
	session.Status = model.SessionFailed
	session.FailureCause = cause.Error()
	session.LastActivityAt = time.Now()

	if err := s.cache.SetSnapshot(ctx, &model.SessionSnapshot{Session: *session, Memory: *window}); err != nil {
		logger.Log.Warn("failed to cache failed session", zap.String("session_id", session.ID), zap.Error(err))
	}
	if err := s.store.SaveSession(ctx, session); err != nil {
		logger.Log.Error("failed to persist failed session", zap.String("session_id", session.ID), zap.Error(err))
	}

	monitoring.SessionsFinished.WithLabelValues(string(model.SessionFailed)).Inc()
	logger.Log.Error("interview session failed",
		zap.String("session_id", session.ID),
		zap.Error(cause))
}

func (s *InterviewService) buildSession(userID string, req *StartInterviewRequest) (*model.InterviewSession, error) {
	role := strings.TrimSpace(req.Role)
	if role == "" {
		return nil, fmt.Errorf("%w: role is required", util.ErrInvalidConfiguration)
	}
	experience := strings.TrimSpace(req.Experience)
	if experience == "" {
		return nil, fmt.Errorf("%w: experience is required", util.ErrInvalidConfiguration)
	}

	interviewType := model.InterviewType(req.InterviewType)
	if req.InterviewType == "" {
		interviewType = model.TypeMixed
	} else if !model.ValidInterviewType(interviewType) {
		return nil, fmt.Errorf("%w: unknown interview type %q", util.ErrInvalidConfiguration, req.InterviewType)
	}

	difficulty := model.Difficulty(req.Difficulty)
	if req.Difficulty == "" {
		difficulty = model.DifficultyIntermediate
	} else if !model.ValidDifficulty(difficulty) {
		return nil, fmt.Errorf("%w: unknown difficulty %q", util.ErrInvalidConfiguration, req.Difficulty)
	}

	target := req.QuestionTarget
	if target == 0 {
		target = s.config.DefaultQuestionTarget
	}
	if target < s.config.MinQuestions || target > s.config.MaxQuestions {
		return nil, fmt.Errorf("%w: question_target must be between %d and %d",
			util.ErrInvalidConfiguration, s.config.MinQuestions, s.config.MaxQuestions)
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = s.config.DefaultDurationMins
	}
	if duration < s.config.MinDurationMinutes || duration > s.config.MaxDurationMinutes {
		return nil, fmt.Errorf("%w: duration_minutes must be between %d and %d",
			util.ErrInvalidConfiguration, s.config.MinDurationMinutes, s.config.MaxDurationMinutes)
	}

	if len(req.Skills) > s.config.MaxSkills {
		return nil, fmt.Errorf("%w: at most %d skills", util.ErrInvalidConfiguration, s.config.MaxSkills)
	}
	if len(req.CustomQuestions) > s.config.MaxCustomQuestions {
		return nil, fmt.Errorf("%w: at most %d custom questions", util.ErrInvalidConfiguration, s.config.MaxCustomQuestions)
	}
	for _, q := range req.CustomQuestions {
		if util.IsBlank(q) || len(q) > util.MaxPromptLength {
			return nil, fmt.Errorf("%w: invalid custom question", util.ErrInvalidConfiguration)
		}
		if util.ContainsInjection(q) {
			return nil, fmt.Errorf("%w: custom question contains disallowed markup", util.ErrPromptRejected)
		}
	}

	now := time.Now()
	return &model.InterviewSession{
		UUIDBase:          model.UUIDBase{ID: model.GenerateUUID()},
		UserID:            userID,
		Role:              role,
		Experience:        experience,
		Industry:          strings.TrimSpace(req.Industry),
		InterviewType:     interviewType,
		Difficulty:        difficulty,
		CurrentDifficulty: difficulty,
		QuestionTarget:    target,
		DurationMinutes:   duration,
		Skills:            req.Skills,
		CustomQuestions:   req.CustomQuestions,
		Status:            model.SessionCreated,
		LastActivityAt:    now,
	}, nil
}

func questionResponse(sessionID string, turn *model.InterviewTurn) *QuestionResponse {
	if turn == nil {
		return nil
	}
	return &QuestionResponse{
		SessionID:  sessionID,
		TurnSeq:    turn.Seq,
		Question:   turn.Question,
		Category:   turn.Category,
		Difficulty: string(turn.Difficulty),
	}
}

func statusOf(session *model.InterviewSession) *SessionStatusResponse {
	return &SessionStatusResponse{
		SessionID:         session.ID,
		Status:            string(session.Status),
		FailureCause:      session.FailureCause,
		CurrentSeq:        session.CurrentSeq,
		QuestionTarget:    session.QuestionTarget,
		AnsweredCount:     session.AnsweredCount(),
		Difficulty:        string(session.Difficulty),
		CurrentDifficulty: string(session.CurrentDifficulty),
		StartedAt:         session.StartedAt,
		CompletedAt:       session.CompletedAt,
	}
}
