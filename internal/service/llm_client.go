package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mock_interview_backend/internal/config"
	"mock_interview_backend/pkg/logger"
	"mock_interview_backend/pkg/monitoring"
	"mock_interview_backend/pkg/tracing"

	"github.com/cenkalti/backoff/v4"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateParams 单次生成的调用参数，零值字段回落到全局 AI 配置
type GenerateParams struct {
	System      string
	History     []AIChatMessage
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// TextGenerator 供各服务注入的生成端口，测试时用假实现替换
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, params GenerateParams) (string, error)
	CountTokens(text string) int
}

type LLMErrorKind string

const (
	LLMErrTransient LLMErrorKind = "transient"
	LLMErrFatal     LLMErrorKind = "fatal"
)

// LLMError 区分可重试耗尽与不可恢复两类模型调用失败，调用方据此决定会话走向
type LLMError struct {
	Kind  LLMErrorKind
	Cause error
}

func (e *LLMError) Error() string {
	return fmt.Sprintf("llm %s error: %v", e.Kind, e.Cause)
}

func (e *LLMError) Unwrap() error { return e.Cause }

func IsTransientLLMError(err error) bool {
	var lerr *LLMError
	return errors.As(err, &lerr) && lerr.Kind == LLMErrTransient
}

func IsFatalLLMError(err error) bool {
	var lerr *LLMError
	return errors.As(err, &lerr) && lerr.Kind == LLMErrFatal
}

// 鉴权失败、模型不存在、请求本身非法，重试没有意义
var fatalMarkers = []string{
	"invalid_api_key",
	"incorrect api key",
	"status code: 401",
	"status code: 403",
	"model_not_found",
	"does not exist",
	"context_length_exceeded",
	"string_above_max_length",
	"invalid_request_error",
}

func isFatalAPIError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range fatalMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

type LLMClient struct {
	config config.AIConfig
	model  llms.Model
}

func NewLLMClient(cfg config.AIConfig) (*LLMClient, error) {
	model, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("init llm provider: %w", err)
	}
	return &LLMClient{config: cfg, model: model}, nil
}

// Generate 调用模型生成文本。暂时性错误按指数退避重试，重试耗尽返回
// transient 类错误；不可恢复错误立即返回 fatal 类错误，绝不吞掉。
func (c *LLMClient) Generate(ctx context.Context, prompt string, params GenerateParams) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "llm.generate")
	defer span.End()

	messages := c.buildMessages(prompt, params)
	opts := c.callOptions(params)

	var out string
	operation := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
		defer cancel()

		start := time.Now()
		resp, err := c.model.GenerateContent(attemptCtx, messages, opts...)
		monitoring.LLMRequestDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			if isFatalAPIError(err) {
				return backoff.Permanent(&LLMError{Kind: LLMErrFatal, Cause: err})
			}
			return err
		}
		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
			return errors.New("model returned empty completion")
		}
		out = resp.Choices[0].Content
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.BackoffInitial
	bo.MaxInterval = c.config.BackoffMax
	bo.MaxElapsedTime = 0

	var retries uint64
	if c.config.MaxAttempts > 1 {
		retries = uint64(c.config.MaxAttempts - 1)
	}

	err := backoff.RetryNotify(
		operation,
		backoff.WithContext(backoff.WithMaxRetries(bo, retries), ctx),
		func(err error, wait time.Duration) {
			monitoring.LLMRetries.Inc()
			logger.Log.Warn("LLM call failed, backing off",
				zap.Duration("wait", wait),
				zap.Error(err))
		},
	)
	if err != nil {
		var lerr *LLMError
		if errors.As(err, &lerr) {
			monitoring.LLMRequests.WithLabelValues("fatal").Inc()
			return "", lerr
		}
		monitoring.LLMRequests.WithLabelValues("exhausted").Inc()
		return "", &LLMError{Kind: LLMErrTransient, Cause: err}
	}
	monitoring.LLMRequests.WithLabelValues("success").Inc()
	return out, nil
}

// GenerateStream 流式生成，分片依次写入返回的通道。
// 流式请求不做重试，避免重复下发已经送出的分片。
func (c *LLMClient) GenerateStream(ctx context.Context, prompt string, params GenerateParams) (<-chan string, <-chan error) {
	out := make(chan string)
	errChan := make(chan error, 1)

	messages := c.buildMessages(prompt, params)
	opts := c.callOptions(params)

	go func() {
		defer close(out)
		defer close(errChan)

		ctx, span := tracing.StartSpan(ctx, "llm.generate_stream")
		defer span.End()

		streamOpts := append(opts, llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			select {
			case out <- string(chunk):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}))

		start := time.Now()
		_, err := c.model.GenerateContent(ctx, messages, streamOpts...)
		monitoring.LLMRequestDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			if isFatalAPIError(err) {
				monitoring.LLMRequests.WithLabelValues("fatal").Inc()
				errChan <- &LLMError{Kind: LLMErrFatal, Cause: err}
				return
			}
			monitoring.LLMRequests.WithLabelValues("exhausted").Inc()
			errChan <- &LLMError{Kind: LLMErrTransient, Cause: err}
			return
		}
		monitoring.LLMRequests.WithLabelValues("success").Inc()
	}()

	return out, errChan
}

// CountTokens 估算文本占用的 token 数，供上下文长度控制使用
func (c *LLMClient) CountTokens(text string) int {
	return llms.CountTokens(c.config.Model, text)
}

func (c *LLMClient) buildMessages(prompt string, params GenerateParams) []llms.MessageContent {
	messages := make([]llms.MessageContent, 0, len(params.History)+2)
	if params.System != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, params.System))
	}
	for _, h := range params.History {
		role := llms.ChatMessageTypeHuman
		if h.Role == "assistant" {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, h.Content))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, prompt))
	return messages
}

func (c *LLMClient) callOptions(params GenerateParams) []llms.CallOption {
	temperature := c.config.Temperature
	if params.Temperature > 0 {
		temperature = params.Temperature
	}
	maxTokens := c.config.MaxTokens
	if params.MaxTokens > 0 {
		maxTokens = params.MaxTokens
	}
	topP := c.config.TopP
	if params.TopP > 0 {
		topP = params.TopP
	}
	return []llms.CallOption{
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(maxTokens),
		llms.WithTopP(topP),
	}
}
