package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/repository"
	"mock_interview_backend/internal/util"
	"mock_interview_backend/pkg/logger"

	"go.uber.org/zap"
)

const sentimentPromptTemplate = `Classify the sentiment of the following text.

Text:
%s

Reply in exactly this format:
SENTIMENT: <positive|neutral|negative>
CONFIDENCE: <0.0-1.0>
EXPLANATION: <one sentence>`

const keywordsPromptTemplate = `Extract the most important keywords from the following text.

Text:
%s

Reply with a single line of 5-10 comma separated keywords, nothing else.`

const summaryPromptTmpl = `Summarize the following text in at most 3 sentences.

Text:
%s`

// 得分趋势判定的阈值：前后半程均分差超过该值才算有趋势
const trendThreshold = 0.5

// AnalysisService 文本与面试表现分析。表现分析是纯本地计算；
// 情感、关键词、摘要走模型。每次分析作为一条任务记录落库。
type AnalysisService struct {
	repo      *repository.AnalysisRepository
	store     SessionStore
	generator TextGenerator
}

func NewAnalysisService(repo *repository.AnalysisRepository, store SessionStore, generator TextGenerator) *AnalysisService {
	return &AnalysisService{repo: repo, store: store, generator: generator}
}

type AnalyzeRequest struct {
	AnalysisType string `json:"analysis_type" binding:"required"`
	Text         string `json:"text"`
	SessionID    string `json:"session_id"`
}

// Analyze 同步执行分析并返回任务记录。模型失败时任务标记 failed，
// 记录里带上错误信息，记录本身照常返回。
func (s *AnalysisService) Analyze(ctx context.Context, userID string, req *AnalyzeRequest) (*model.AnalysisRequest, error) {
	analysisType := model.AnalysisType(req.AnalysisType)
	if !model.ValidAnalysisType(analysisType) {
		return nil, fmt.Errorf("%w: unknown analysis type %q", util.ErrInvalidConfiguration, req.AnalysisType)
	}

	task := &model.AnalysisRequest{
		UUIDBase:     model.UUIDBase{ID: model.GenerateUUID()},
		UserID:       userID,
		AnalysisType: analysisType,
		Status:       model.AnalysisPending,
	}

	if analysisType == model.AnalysisPerformance {
		if req.SessionID == "" {
			return nil, fmt.Errorf("%w: session_id is required for %s", util.ErrInvalidConfiguration, analysisType)
		}
		task.SessionID = req.SessionID
	} else {
		text := util.SanitizeText(req.Text, util.MaxPromptLength)
		if util.IsBlank(text) {
			return nil, fmt.Errorf("%w: text is required for %s", util.ErrInvalidConfiguration, analysisType)
		}
		if util.ContainsInjection(text) {
			return nil, fmt.Errorf("%w: text contains disallowed markup", util.ErrPromptRejected)
		}
		task.InputText = text
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.run(ctx, userID, task)
	task.ProcessingMs = time.Since(start).Milliseconds()

	if err != nil {
		task.Status = model.AnalysisFailed
		task.ErrorMessage = err.Error()
		logger.Log.Warn("analysis failed",
			zap.String("analysis_id", task.ID),
			zap.String("type", string(task.AnalysisType)),
			zap.Error(err))
	} else {
		task.Status = model.AnalysisCompleted
		task.Result = result
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *AnalysisService) GetAnalysis(ctx context.Context, userID, id string) (*model.AnalysisRequest, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, util.ErrAnalysisNotFound
	}
	return task, nil
}

func (s *AnalysisService) ListAnalyses(ctx context.Context, userID string, limit, offset int) ([]model.AnalysisRequest, int64, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *AnalysisService) run(ctx context.Context, userID string, task *model.AnalysisRequest) (map[string]any, error) {
	switch task.AnalysisType {
	case model.AnalysisPerformance:
		return s.analyzePerformance(ctx, userID, task.SessionID)
	case model.AnalysisSentiment:
		return s.analyzeSentiment(ctx, task.InputText)
	case model.AnalysisKeywords:
		return s.analyzeKeywords(ctx, task.InputText)
	case model.AnalysisSummary:
		return s.analyzeSummary(ctx, task.InputText)
	}
	return nil, fmt.Errorf("unhandled analysis type %s", task.AnalysisType)
}

// analyzePerformance 面试得分走势与分类强弱，全部为确定性本地计算
func (s *AnalysisService) analyzePerformance(ctx context.Context, userID, sessionID string) (map[string]any, error) {
	session, err := s.store.LoadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}

	var scores []float64
	catSum := map[string]float64{}
	catCount := map[string]int{}
	for _, t := range session.Turns {
		if !t.Answered {
			continue
		}
		scores = append(scores, t.Score)
		catSum[t.Category] += t.Score
		catCount[t.Category]++
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("%w: session has no answered turns", util.ErrInvalidConfiguration)
	}

	result := map[string]any{
		"overall_avg":    util.Round1(mean(scores)),
		"answered_turns": len(scores),
	}

	if len(scores) >= 2 {
		half := len(scores) / 2
		firstAvg := mean(scores[:half])
		secondAvg := mean(scores[half:])
		trend := "stable"
		switch {
		case secondAvg-firstAvg > trendThreshold:
			trend = "improving"
		case firstAvg-secondAvg > trendThreshold:
			trend = "declining"
		}
		result["trend"] = trend
		result["first_half_avg"] = util.Round1(firstAvg)
		result["second_half_avg"] = util.Round1(secondAvg)
	} else {
		result["trend"] = "insufficient_data"
	}

	categories := map[string]float64{}
	best, worst := "", ""
	for cat, sum := range catSum {
		avg := util.Round1(sum / float64(catCount[cat]))
		categories[cat] = avg
		if best == "" || avg > categories[best] {
			best = cat
		}
		if worst == "" || avg < categories[worst] {
			worst = cat
		}
	}
	result["category_averages"] = categories
	result["best_category"] = best
	result["worst_category"] = worst
	return result, nil
}

func (s *AnalysisService) analyzeSentiment(ctx context.Context, text string) (map[string]any, error) {
	out, err := s.generator.Generate(ctx, fmt.Sprintf(sentimentPromptTemplate, text), GenerateParams{Temperature: 0.1})
	if err != nil {
		return nil, err
	}

	result := map[string]any{"sentiment": "neutral", "confidence": 0.0}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "SENTIMENT:"):
			v := strings.ToLower(strings.TrimSpace(line[len("SENTIMENT:"):]))
			if v == "positive" || v == "neutral" || v == "negative" {
				result["sentiment"] = v
			}
		case strings.HasPrefix(upper, "CONFIDENCE:"):
			if v, err := strconv.ParseFloat(strings.TrimSpace(line[len("CONFIDENCE:"):]), 64); err == nil {
				result["confidence"] = v
			}
		case strings.HasPrefix(upper, "EXPLANATION:"):
			result["explanation"] = strings.TrimSpace(line[len("EXPLANATION:"):])
		}
	}
	return result, nil
}

func (s *AnalysisService) analyzeKeywords(ctx context.Context, text string) (map[string]any, error) {
	out, err := s.generator.Generate(ctx, fmt.Sprintf(keywordsPromptTemplate, text), GenerateParams{Temperature: 0.1})
	if err != nil {
		return nil, err
	}

	var keywords []string
	for _, kw := range strings.Split(strings.TrimSpace(out), ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return map[string]any{"keywords": keywords}, nil
}

func (s *AnalysisService) analyzeSummary(ctx context.Context, text string) (map[string]any, error) {
	out, err := s.generator.Generate(ctx, fmt.Sprintf(summaryPromptTmpl, text), GenerateParams{Temperature: 0.3})
	if err != nil {
		return nil, err
	}
	return map[string]any{"summary": strings.TrimSpace(out)}, nil
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
