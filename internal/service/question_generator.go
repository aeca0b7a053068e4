package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/pkg/logger"

	"go.uber.org/zap"
)

const questionSystemPrompt = "You are an experienced interviewer conducting a mock interview. Ask exactly one question at a time. Reply strictly in the required format."

const questionPromptTemplate = `Candidate profile:
- Target role: %s
- Experience: %s
- Industry: %s
- Key skills: %s

Interview type: %s
Question difficulty: %s

%s

Ask the next interview question. Do not repeat a question that was already asked. Reply in exactly this format:
QUESTION: <the question>
CATEGORY: <one short category label, e.g. algorithms, system design, behavioral>
KEYWORDS: <3-6 comma separated keywords a strong answer would mention>`

// GeneratedQuestion 生成器产出的一道题
type GeneratedQuestion struct {
	Question         string
	Category         string
	Difficulty       model.Difficulty
	ExpectedKeywords []string
}

// QuestionGenerator 出题器：自定义题目优先消费，之后按当前难度调模型生成，
// 生成结果做指纹查重，重复或格式不对时在限定次数内重新生成。
type QuestionGenerator struct {
	config    config.InterviewConfig
	generator TextGenerator
}

func NewQuestionGenerator(cfg config.InterviewConfig, generator TextGenerator) *QuestionGenerator {
	return &QuestionGenerator{config: cfg, generator: generator}
}

// NextQuestion 产出下一道题。模型调用失败时错误原样上抛，由编排层决定会话走向。
func (g *QuestionGenerator) NextQuestion(ctx context.Context, session *model.InterviewSession, contextText string) (*GeneratedQuestion, error) {
	served := len(session.Turns)
	if served < len(session.CustomQuestions) {
		return &GeneratedQuestion{
			Question:   session.CustomQuestions[served],
			Category:   "custom",
			Difficulty: session.CurrentDifficulty,
		}, nil
	}

	asked := make(map[string]struct{}, len(session.Turns))
	for _, t := range session.Turns {
		asked[questionFingerprint(t.Question)] = struct{}{}
	}

	difficulty := g.AdaptDifficulty(session)
	prompt := g.buildPrompt(session, difficulty, contextText)

	attempts := g.config.RegenAttempts
	if attempts < 1 {
		attempts = 1
	}

	var duplicate *GeneratedQuestion
	for i := 0; i < attempts; i++ {
		out, err := g.generator.Generate(ctx, prompt, GenerateParams{System: questionSystemPrompt})
		if err != nil {
			return nil, err
		}

		parsed, err := parseGeneratedQuestion(out)
		if err != nil {
			logger.Log.Warn("malformed question completion, regenerating",
				zap.Int("attempt", i+1),
				zap.Error(err))
			continue
		}
		parsed.Difficulty = difficulty

		if _, dup := asked[questionFingerprint(parsed.Question)]; !dup {
			return parsed, nil
		}
		duplicate = parsed
		logger.Log.Warn("duplicate question generated, regenerating",
			zap.Int("attempt", i+1))
	}

	// 查重重试耗尽：带着重复题继续好过中断面试
	if duplicate != nil {
		return duplicate, nil
	}
	return nil, fmt.Errorf("question generation produced no parseable completion after %d attempts", attempts)
}

// AdaptDifficulty 按最近几轮得分的均值调整难度，一次最多变动一档。
// 样本不足时维持当前难度。
func (g *QuestionGenerator) AdaptDifficulty(session *model.InterviewSession) model.Difficulty {
	scores := recentScores(session, g.config.AdaptWindow)
	if len(scores) < g.config.AdaptWindow {
		return session.CurrentDifficulty
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))

	switch {
	case mean >= g.config.RaiseThreshold:
		return session.CurrentDifficulty.Shift(1)
	case mean <= g.config.LowerThreshold:
		return session.CurrentDifficulty.Shift(-1)
	default:
		return session.CurrentDifficulty
	}
}

func (g *QuestionGenerator) buildPrompt(session *model.InterviewSession, difficulty model.Difficulty, contextText string) string {
	skills := "not specified"
	if len(session.Skills) > 0 {
		skills = strings.Join(session.Skills, ", ")
	}
	contextBlock := "This is the first question of the interview."
	if contextText != "" {
		contextBlock = "Context from the interview so far:\n" + contextText
	}
	return fmt.Sprintf(questionPromptTemplate,
		session.Role, session.Experience, session.Industry, skills,
		session.InterviewType, difficulty, contextBlock)
}

func recentScores(session *model.InterviewSession, n int) []float64 {
	var scores []float64
	for i := len(session.Turns) - 1; i >= 0 && len(scores) < n; i-- {
		if session.Turns[i].Answered {
			scores = append(scores, session.Turns[i].Score)
		}
	}
	return scores
}

func parseGeneratedQuestion(raw string) (*GeneratedQuestion, error) {
	q := &GeneratedQuestion{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "QUESTION:"):
			q.Question = strings.TrimSpace(line[len("QUESTION:"):])
		case strings.HasPrefix(upper, "CATEGORY:"):
			q.Category = strings.ToLower(strings.TrimSpace(line[len("CATEGORY:"):]))
		case strings.HasPrefix(upper, "KEYWORDS:"):
			for _, kw := range strings.Split(line[len("KEYWORDS:"):], ",") {
				if kw = strings.TrimSpace(kw); kw != "" {
					q.ExpectedKeywords = append(q.ExpectedKeywords, strings.ToLower(kw))
				}
			}
		}
	}
	if q.Question == "" {
		return nil, fmt.Errorf("completion missing QUESTION line")
	}
	if q.Category == "" {
		q.Category = "general"
	}
	return q, nil
}

// questionFingerprint 题目查重指纹：小写、去标点、压缩空白
func questionFingerprint(q string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(q) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
