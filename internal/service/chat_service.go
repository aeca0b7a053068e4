package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/repository"
	"mock_interview_backend/internal/util"
	"mock_interview_backend/pkg/logger"

	"go.uber.org/zap"
)

const coachSystemPrompt = "You are an interview coach helping a candidate improve after mock interviews. Give specific, practical advice. Keep replies focused and under 300 words."

// 流结束后归档回复的宽限时间
const archiveTimeout = 5 * time.Second

// ChatService 面试后的教练式问答。对话历史走缓存加归档，
// 挂了面试会话的对话会把该场面试的报告和问答注入为背景。
type ChatService struct {
	config        config.ChatConfig
	conversations *repository.ConversationRepository
	store         SessionStore
	llm           *LLMClient
}

func NewChatService(cfg config.ChatConfig, conversations *repository.ConversationRepository, store SessionStore, llm *LLMClient) *ChatService {
	return &ChatService{
		config:        cfg,
		conversations: conversations,
		store:         store,
		llm:           llm,
	}
}

type CreateConversationRequest struct {
	Title     string `json:"title"`
	SessionID string `json:"session_id"`
}

type ChatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

func (s *ChatService) CreateConversation(ctx context.Context, userID string, req *CreateConversationRequest) (*model.Conversation, error) {
	title := strings.TrimSpace(req.Title)

	if req.SessionID != "" {
		session, err := s.store.LoadSession(ctx, req.SessionID)
		if err != nil {
			return nil, err
		}
		if session.UserID != userID {
			return nil, util.ErrSessionNotFound
		}
		if title == "" {
			title = fmt.Sprintf("Review: %s interview", session.Role)
		}
	}
	if title == "" {
		title = "New conversation"
	}

	conv := &model.Conversation{
		UserID:    userID,
		SessionID: req.SessionID,
		Title:     title,
	}
	if err := s.conversations.Create(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *ChatService) GetConversation(ctx context.Context, userID, conversationID string) (*model.Conversation, error) {
	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.UserID != userID {
		return nil, util.ErrConversationNotFound
	}
	return conv, nil
}

func (s *ChatService) ListConversations(ctx context.Context, userID string, limit, offset int) ([]model.Conversation, int64, error) {
	return s.conversations.ListByUser(ctx, userID, limit, offset)
}

func (s *ChatService) DeleteConversation(ctx context.Context, userID, conversationID string) error {
	if _, err := s.GetConversation(ctx, userID, conversationID); err != nil {
		return err
	}
	return s.conversations.Delete(ctx, conversationID)
}

// SendMessageStream 发送一条消息并流式返回回复，完整回复在流结束后归档
func (s *ChatService) SendMessageStream(ctx context.Context, userID, conversationID, message string) (<-chan string, <-chan error, error) {
	conv, prompt, params, err := s.prepareTurn(ctx, userID, conversationID, message)
	if err != nil {
		return nil, nil, err
	}

	stream, streamErr := s.llm.GenerateStream(ctx, prompt, params)

	out := make(chan string)
	errChan := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errChan)

		var full strings.Builder
		for chunk := range stream {
			full.WriteString(chunk)
			out <- chunk
		}
		if err := <-streamErr; err != nil {
			errChan <- err
			return
		}

		s.archiveReply(conv, full.String())
	}()

	return out, errChan, nil
}

// SendMessage 同步问答，回复落库后整条返回
func (s *ChatService) SendMessage(ctx context.Context, userID, conversationID, message string) (*model.ConversationMessage, error) {
	conv, prompt, params, err := s.prepareTurn(ctx, userID, conversationID, message)
	if err != nil {
		return nil, err
	}

	reply, err := s.llm.Generate(ctx, prompt, params)
	if err != nil {
		return nil, err
	}

	msg := &model.ConversationMessage{
		ConversationID: conv.ID,
		Role:           "assistant",
		Content:        reply,
		TokensUsed:     s.llm.CountTokens(reply),
	}
	if err := s.conversations.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// prepareTurn 校验归属、入库用户消息，并组装提示词与历史
func (s *ChatService) prepareTurn(ctx context.Context, userID, conversationID, message string) (*model.Conversation, string, GenerateParams, error) {
	conv, err := s.GetConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, "", GenerateParams{}, err
	}

	message = util.SanitizeText(message, util.MaxPromptLength)
	if util.IsBlank(message) {
		return nil, "", GenerateParams{}, fmt.Errorf("%w: message is empty", util.ErrInvalidConfiguration)
	}
	if util.ContainsInjection(message) {
		return nil, "", GenerateParams{}, fmt.Errorf("%w: message contains disallowed markup", util.ErrPromptRejected)
	}

	history, err := s.conversations.RecentMessages(ctx, conversationID, s.config.ContextWindow)
	if err != nil {
		logger.Log.Warn("chat history load failed, continuing without it",
			zap.String("conversation_id", conversationID),
			zap.Error(err))
		history = nil
	}

	userMsg := &model.ConversationMessage{
		ConversationID: conv.ID,
		Role:           "user",
		Content:        message,
		TokensUsed:     s.llm.CountTokens(message),
	}
	if err := s.conversations.AppendMessage(ctx, userMsg); err != nil {
		return nil, "", GenerateParams{}, err
	}

	params := GenerateParams{
		System:      s.systemPrompt(ctx, conv),
		Temperature: 0.6,
	}
	for _, h := range history {
		params.History = append(params.History, AIChatMessage{Role: h.Role, Content: h.Content})
	}

	return conv, message, params, nil
}

// systemPrompt 基础教练人设，挂了面试的对话追加该场面试的报告摘要
func (s *ChatService) systemPrompt(ctx context.Context, conv *model.Conversation) string {
	if conv.SessionID == "" {
		return coachSystemPrompt
	}

	session, err := s.store.LoadSession(ctx, conv.SessionID)
	if err != nil {
		logger.Log.Warn("grounding session load failed",
			zap.String("session_id", conv.SessionID),
			zap.Error(err))
		return coachSystemPrompt
	}

	var sb strings.Builder
	sb.WriteString(coachSystemPrompt)
	fmt.Fprintf(&sb, "\n\nThe candidate just finished a %s mock interview for a %s position.",
		session.Difficulty, session.Role)
	if session.Report != nil {
		fmt.Fprintf(&sb, " Overall score: %.1f/10.", session.Report.OverallScore)
		if len(session.Report.Weaknesses) > 0 {
			fmt.Fprintf(&sb, " Identified weaknesses: %s.", strings.Join(session.Report.Weaknesses, "; "))
		}
	}
	for _, t := range session.Turns {
		if t.Answered {
			fmt.Fprintf(&sb, "\nQ%d (%s, %.1f/10): %s", t.Seq, t.Category, t.Score, t.Question)
		}
	}
	return sb.String()
}

func (s *ChatService) archiveReply(conv *model.Conversation, reply string) {
	if strings.TrimSpace(reply) == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()

	msg := &model.ConversationMessage{
		ConversationID: conv.ID,
		Role:           "assistant",
		Content:        reply,
		TokensUsed:     s.llm.CountTokens(reply),
	}
	if err := s.conversations.AppendMessage(ctx, msg); err != nil {
		logger.Log.Error("failed to archive assistant reply",
			zap.String("conversation_id", conv.ID),
			zap.Error(err))
	}
}
