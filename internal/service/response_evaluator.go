package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/util"
	"mock_interview_backend/pkg/logger"

	"go.uber.org/zap"
)

const evaluationSystemPrompt = `You are a strict but fair interview assessor. Score the candidate's answer and give concise, actionable feedback. Always include a line of the form "Score: N/10".`

const evaluationPromptTemplate = `Interview question (%s, difficulty %s):
%s

Candidate answer:
%s
%s
Assess the answer for correctness, depth, clarity and relevance. Reply with:
Score: <0-10, one decimal allowed>/10
Feedback: <2-4 sentences of concrete feedback>`

const noAnswerFeedback = "No answer was given for this question."

var (
	feedbackMarker = regexp.MustCompile(`(?i)feedback\s*[:：]\s*`)
	scoreLine      = regexp.MustCompile(`(?i)^\s*score\s*[:：]`)
)

// Evaluation 单轮回答的评估结果
type Evaluation struct {
	Score       float64
	Feedback    string
	KeywordHits []string
}

// ResponseEvaluator 给候选人回答打分。空白回答走确定性短路，不调模型；
// 关键词命中也是确定性计算，评估逻辑自身不引入随机性。
type ResponseEvaluator struct {
	config    config.InterviewConfig
	generator TextGenerator
}

func NewResponseEvaluator(cfg config.InterviewConfig, generator TextGenerator) *ResponseEvaluator {
	return &ResponseEvaluator{config: cfg, generator: generator}
}

func (e *ResponseEvaluator) Evaluate(ctx context.Context, turn *model.InterviewTurn, answer, contextText string) (*Evaluation, error) {
	if util.IsBlank(answer) {
		return &Evaluation{
			Score:    e.config.ScoreFloor,
			Feedback: noAnswerFeedback,
		}, nil
	}

	hits := keywordHits(turn.ExpectedKeywords, answer)
	prompt := e.buildPrompt(turn, answer, contextText)

	attempts := e.config.RegenAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		out, err := e.generator.Generate(ctx, prompt, GenerateParams{
			System:      evaluationSystemPrompt,
			Temperature: 0.2,
		})
		if err != nil {
			return nil, err
		}

		score, ok := util.ExtractScore(out, e.config.ScoreFloor, e.config.ScoreMax)
		if !ok {
			lastErr = fmt.Errorf("no score found in evaluation completion")
			logger.Log.Warn("evaluation completion missing score line, retrying",
				zap.Int("attempt", i+1))
			continue
		}

		return &Evaluation{
			Score:       score,
			Feedback:    extractFeedback(out),
			KeywordHits: hits,
		}, nil
	}

	// 评分行反复解析不出来按模型响应损坏处理，不可恢复
	return nil, &LLMError{Kind: LLMErrFatal, Cause: lastErr}
}

func (e *ResponseEvaluator) buildPrompt(turn *model.InterviewTurn, answer, contextText string) string {
	var extras strings.Builder
	if len(turn.ExpectedKeywords) > 0 {
		fmt.Fprintf(&extras, "\nKey concepts a strong answer covers: %s\n",
			strings.Join(turn.ExpectedKeywords, ", "))
	}
	if contextText != "" {
		fmt.Fprintf(&extras, "\nContext from earlier in the interview:\n%s\n", contextText)
	}
	return fmt.Sprintf(evaluationPromptTemplate,
		turn.Category, turn.Difficulty, turn.Question, answer, extras.String())
}

// keywordHits 大小写不敏感的包含匹配，与模型输出无关
func keywordHits(expected []string, answer string) []string {
	if len(expected) == 0 {
		return nil
	}
	lower := strings.ToLower(answer)
	var hits []string
	for _, kw := range expected {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			hits = append(hits, kw)
		}
	}
	return hits
}

func extractFeedback(raw string) string {
	if loc := feedbackMarker.FindStringIndex(raw); loc != nil {
		return strings.TrimSpace(raw[loc[1]:])
	}
	// 没有 Feedback 标记时，剔除评分行用剩余文本
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if scoreLine.MatchString(line) {
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
