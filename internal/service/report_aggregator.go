package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/util"
	"mock_interview_backend/pkg/logger"

	"go.uber.org/zap"
)

const narrativeSystemPrompt = "You are a senior interviewer writing the final assessment of a mock interview. Be specific and constructive. Reply strictly in the required format."

const narrativePromptTemplate = `Interview for a %s position (%s experience, %s difficulty). %d of %d questions answered, overall score %.1f/10.

Per-question results:
%s

Write the final assessment. Reply in exactly this format:
NARRATIVE: <2-3 sentence overall assessment>
STRENGTHS: <2-4 items separated by ";">
WEAKNESSES: <2-4 items separated by ";">
RECOMMENDATIONS: <2-4 items separated by ";">`

// 模板文案里强弱项的划分线
const (
	strongCategoryScore = 7.0
	weakCategoryScore   = 5.0
)

type narrative struct {
	Text            string
	Strengths       []string
	Weaknesses      []string
	Recommendations []string
}

// ReportAggregator 汇总面试结果产出报告。数值部分纯本地计算，叙述部分
// 调模型合成；合成失败退回模板文案，报告本身永远产出。
type ReportAggregator struct {
	config    config.InterviewConfig
	generator TextGenerator
}

func NewReportAggregator(cfg config.InterviewConfig, generator TextGenerator) *ReportAggregator {
	return &ReportAggregator{config: cfg, generator: generator}
}

func (a *ReportAggregator) Aggregate(ctx context.Context, session *model.InterviewSession) *model.InterviewReport {
	answered := answeredTurns(session.Turns)
	overall, categories := a.scoreBreakdown(answered)

	report := &model.InterviewReport{
		SessionID:         session.ID,
		OverallScore:      overall,
		CategoryScores:    categories,
		QuestionsAnswered: len(answered),
		DurationMinutes:   sessionDurationMinutes(session),
	}

	nar, err := a.synthesizeNarrative(ctx, session, answered, overall)
	if err != nil {
		logger.Log.Warn("narrative synthesis failed, using templated fallback",
			zap.String("session_id", session.ID),
			zap.Error(err))
		nar = a.fallbackNarrative(session, answered, overall, categories)
		report.NarrativeSource = "fallback"
	} else {
		report.NarrativeSource = "model"
		// 模型漏掉的列表用模板补齐
		fb := a.fallbackNarrative(session, answered, overall, categories)
		if len(nar.Strengths) == 0 {
			nar.Strengths = fb.Strengths
		}
		if len(nar.Weaknesses) == 0 {
			nar.Weaknesses = fb.Weaknesses
		}
		if len(nar.Recommendations) == 0 {
			nar.Recommendations = fb.Recommendations
		}
	}

	report.Narrative = nar.Text
	report.Strengths = nar.Strengths
	report.Weaknesses = nar.Weaknesses
	report.Recommendations = nar.Recommendations
	return report
}

// scoreBreakdown 计算总分与分类均分。配了类别权重用加权均值，否则简单均值；
// 权重表里没出现的类别按 1.0 计。
func (a *ReportAggregator) scoreBreakdown(turns []model.InterviewTurn) (float64, map[string]float64) {
	if len(turns) == 0 {
		return a.config.ScoreFloor, map[string]float64{}
	}

	catSum := map[string]float64{}
	catCount := map[string]int{}
	var sum float64
	for _, t := range turns {
		sum += t.Score
		catSum[t.Category] += t.Score
		catCount[t.Category]++
	}

	categories := make(map[string]float64, len(catSum))
	for cat, s := range catSum {
		categories[cat] = util.Round1(s / float64(catCount[cat]))
	}

	if len(a.config.CategoryWeights) == 0 {
		return util.Round1(sum / float64(len(turns))), categories
	}

	var weighted, totalWeight float64
	for cat, mean := range categories {
		w, ok := a.config.CategoryWeights[cat]
		if !ok {
			w = 1.0
		}
		weighted += w * mean
		totalWeight += w
	}
	if totalWeight == 0 {
		return util.Round1(sum / float64(len(turns))), categories
	}
	return util.Round1(weighted / totalWeight), categories
}

func (a *ReportAggregator) synthesizeNarrative(ctx context.Context, session *model.InterviewSession, answered []model.InterviewTurn, overall float64) (narrative, error) {
	var sb strings.Builder
	for _, t := range answered {
		answer := t.Answer
		if r := []rune(answer); len(r) > 300 {
			answer = string(r[:300]) + "…"
		}
		fmt.Fprintf(&sb, "Q%d [%s, %.1f/10]: %s\nA: %s\n", t.Seq, t.Category, t.Score, t.Question, answer)
		if len(t.KeywordHits) > 0 {
			fmt.Fprintf(&sb, "Concepts mentioned: %s\n", strings.Join(t.KeywordHits, ", "))
		}
	}

	prompt := fmt.Sprintf(narrativePromptTemplate,
		session.Role, session.Experience, session.Difficulty,
		len(answered), session.QuestionTarget, overall, sb.String())

	out, err := a.generator.Generate(ctx, prompt, GenerateParams{
		System:      narrativeSystemPrompt,
		Temperature: 0.5,
	})
	if err != nil {
		return narrative{}, err
	}
	return parseNarrative(out), nil
}

func parseNarrative(raw string) narrative {
	var nar narrative
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "NARRATIVE:"):
			nar.Text = strings.TrimSpace(line[len("NARRATIVE:"):])
		case strings.HasPrefix(upper, "STRENGTHS:"):
			nar.Strengths = splitList(line[len("STRENGTHS:"):])
		case strings.HasPrefix(upper, "WEAKNESSES:"):
			nar.Weaknesses = splitList(line[len("WEAKNESSES:"):])
		case strings.HasPrefix(upper, "RECOMMENDATIONS:"):
			nar.Recommendations = splitList(line[len("RECOMMENDATIONS:"):])
		}
	}
	// 没按格式回也不浪费：整段文本当叙述用
	if nar.Text == "" {
		nar.Text = strings.TrimSpace(raw)
	}
	return nar
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ";") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func (a *ReportAggregator) fallbackNarrative(session *model.InterviewSession, answered []model.InterviewTurn, overall float64, categories map[string]float64) narrative {
	nar := narrative{
		Text: fmt.Sprintf("The candidate answered %d of %d questions with an overall score of %.1f/10 at %s difficulty.",
			len(answered), session.QuestionTarget, overall, session.Difficulty),
	}

	cats := make([]string, 0, len(categories))
	for cat := range categories {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	for _, cat := range cats {
		mean := categories[cat]
		switch {
		case mean >= strongCategoryScore:
			nar.Strengths = append(nar.Strengths, fmt.Sprintf("Consistent performance in %s (%.1f/10)", cat, mean))
		case mean < weakCategoryScore:
			nar.Weaknesses = append(nar.Weaknesses, fmt.Sprintf("Below-average results in %s (%.1f/10)", cat, mean))
			nar.Recommendations = append(nar.Recommendations, fmt.Sprintf("Review core %s topics and practice with targeted questions", cat))
		}
	}

	if len(nar.Strengths) == 0 && len(cats) > 0 {
		best := cats[0]
		for _, cat := range cats {
			if categories[cat] > categories[best] {
				best = cat
			}
		}
		nar.Strengths = append(nar.Strengths, fmt.Sprintf("Strongest area: %s (%.1f/10)", best, categories[best]))
	}
	if len(nar.Recommendations) == 0 {
		nar.Recommendations = append(nar.Recommendations, "Keep practicing mock interviews at the current difficulty to consolidate performance.")
	}
	return nar
}

func answeredTurns(turns []model.InterviewTurn) []model.InterviewTurn {
	var out []model.InterviewTurn
	for _, t := range turns {
		if t.Answered {
			out = append(out, t)
		}
	}
	return out
}

func sessionDurationMinutes(session *model.InterviewSession) float64 {
	if session.StartedAt == nil {
		return 0
	}
	end := time.Now()
	if session.CompletedAt != nil {
		end = *session.CompletedAt
	}
	return util.Round1(end.Sub(*session.StartedAt).Minutes())
}
