package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"mock_interview_backend/internal/model"
)

func answeredTurn(seq int, category string, score float64) model.InterviewTurn {
	return model.InterviewTurn{
		Seq:      seq,
		Question: fmt.Sprintf("Question %d?", seq),
		Category: category,
		Answer:   "An answer.",
		Answered: true,
		Score:    score,
	}
}

func reportTestSession(turns ...model.InterviewTurn) *model.InterviewSession {
	started := time.Now().Add(-30 * time.Minute)
	completed := started.Add(30 * time.Minute)
	return &model.InterviewSession{
		UUIDBase:       model.UUIDBase{ID: "sess-r"},
		UserID:         "user-1",
		Role:           "Backend Engineer",
		Experience:     "3 years",
		Difficulty:     model.DifficultyIntermediate,
		QuestionTarget: len(turns),
		Status:         model.SessionEvaluating,
		StartedAt:      &started,
		CompletedAt:    &completed,
		Turns:          turns,
	}
}

func TestAggregateSimpleMean(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{
		"NARRATIVE: Decent showing.\nSTRENGTHS: Clear algorithmic thinking; Calm under pressure\nWEAKNESSES: Shallow on behavioral depth\nRECOMMENDATIONS: Practice STAR stories",
	}}
	a := NewReportAggregator(testInterviewConfig(), gen)
	session := reportTestSession(
		answeredTurn(1, "algorithms", 8),
		answeredTurn(2, "behavioral", 6),
	)

	report := a.Aggregate(context.Background(), session)

	if report.SessionID != session.ID {
		t.Errorf("SessionID = %q", report.SessionID)
	}
	if report.OverallScore != 7.0 {
		t.Errorf("OverallScore = %v, want 7.0", report.OverallScore)
	}
	if report.CategoryScores["algorithms"] != 8.0 || report.CategoryScores["behavioral"] != 6.0 {
		t.Errorf("CategoryScores = %v", report.CategoryScores)
	}
	if report.QuestionsAnswered != 2 {
		t.Errorf("QuestionsAnswered = %d, want 2", report.QuestionsAnswered)
	}
	if report.DurationMinutes != 30.0 {
		t.Errorf("DurationMinutes = %v, want 30.0", report.DurationMinutes)
	}
	if report.Narrative != "Decent showing." {
		t.Errorf("Narrative = %q", report.Narrative)
	}
	if report.NarrativeSource != "model" {
		t.Errorf("NarrativeSource = %q, want model", report.NarrativeSource)
	}
	wantStrengths := []string{"Clear algorithmic thinking", "Calm under pressure"}
	if len(report.Strengths) != 2 || report.Strengths[0] != wantStrengths[0] || report.Strengths[1] != wantStrengths[1] {
		t.Errorf("Strengths = %v, want %v", report.Strengths, wantStrengths)
	}
	if len(report.Weaknesses) != 1 || len(report.Recommendations) != 1 {
		t.Errorf("Weaknesses = %v, Recommendations = %v", report.Weaknesses, report.Recommendations)
	}
}

func TestAggregateWeightedMean(t *testing.T) {
	cfg := testInterviewConfig()
	cfg.CategoryWeights = map[string]float64{"algorithms": 2, "behavioral": 1}
	a := NewReportAggregator(cfg, &fakeGenerator{err: errors.New("narrative off")})
	session := reportTestSession(
		answeredTurn(1, "algorithms", 8),
		answeredTurn(2, "algorithms", 6),
		answeredTurn(3, "behavioral", 5),
		answeredTurn(4, "product sense", 6),
	)

	report := a.Aggregate(context.Background(), session)

	// (2*7.0 + 1*5.0 + 1*6.0) / 4，权重表没配的类别按 1.0 计
	if report.OverallScore != 6.3 {
		t.Errorf("OverallScore = %v, want 6.3", report.OverallScore)
	}
	if report.CategoryScores["algorithms"] != 7.0 {
		t.Errorf("algorithms mean = %v, want 7.0", report.CategoryScores["algorithms"])
	}
	if report.CategoryScores["behavioral"] != 5.0 {
		t.Errorf("behavioral mean = %v, want 5.0", report.CategoryScores["behavioral"])
	}
	if report.CategoryScores["product sense"] != 6.0 {
		t.Errorf("product sense mean = %v, want 6.0", report.CategoryScores["product sense"])
	}
}

func TestAggregateFallbackNarrative(t *testing.T) {
	a := NewReportAggregator(testInterviewConfig(), &fakeGenerator{err: errors.New("model unavailable")})
	session := reportTestSession(
		answeredTurn(1, "algorithms", 8),
		answeredTurn(2, "behavioral", 3),
	)

	report := a.Aggregate(context.Background(), session)

	if report.NarrativeSource != "fallback" {
		t.Fatalf("NarrativeSource = %q, want fallback", report.NarrativeSource)
	}
	want := "The candidate answered 2 of 2 questions with an overall score of 5.5/10 at intermediate difficulty."
	if report.Narrative != want {
		t.Errorf("Narrative = %q, want %q", report.Narrative, want)
	}
	if len(report.Strengths) != 1 || !strings.Contains(report.Strengths[0], "algorithms") {
		t.Errorf("Strengths = %v, want the strong category", report.Strengths)
	}
	if len(report.Weaknesses) != 1 || !strings.Contains(report.Weaknesses[0], "behavioral") {
		t.Errorf("Weaknesses = %v, want the weak category", report.Weaknesses)
	}
	if len(report.Recommendations) == 0 {
		t.Error("Recommendations empty")
	}
}

func TestAggregateBackfillsMissingLists(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"NARRATIVE: Strong technical showing."}}
	a := NewReportAggregator(testInterviewConfig(), gen)
	session := reportTestSession(
		answeredTurn(1, "algorithms", 8),
		answeredTurn(2, "behavioral", 3),
	)

	report := a.Aggregate(context.Background(), session)

	if report.Narrative != "Strong technical showing." {
		t.Errorf("Narrative = %q", report.Narrative)
	}
	if report.NarrativeSource != "model" {
		t.Errorf("NarrativeSource = %q, want model", report.NarrativeSource)
	}
	if len(report.Strengths) == 0 || len(report.Weaknesses) == 0 || len(report.Recommendations) == 0 {
		t.Errorf("lists not backfilled: strengths=%v weaknesses=%v recommendations=%v",
			report.Strengths, report.Weaknesses, report.Recommendations)
	}
}

func TestAggregateKeepsUnformattedNarrative(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"The candidate did fine overall and should keep practicing."}}
	a := NewReportAggregator(testInterviewConfig(), gen)
	session := reportTestSession(answeredTurn(1, "general", 6))

	report := a.Aggregate(context.Background(), session)

	if report.Narrative != "The candidate did fine overall and should keep practicing." {
		t.Errorf("Narrative = %q, want the whole completion", report.Narrative)
	}
	if report.NarrativeSource != "model" {
		t.Errorf("NarrativeSource = %q, want model", report.NarrativeSource)
	}
}

func TestAggregateNoAnsweredTurns(t *testing.T) {
	a := NewReportAggregator(testInterviewConfig(), &fakeGenerator{})
	session := &model.InterviewSession{
		UUIDBase:       model.UUIDBase{ID: "sess-empty"},
		UserID:         "user-1",
		Role:           "Backend Engineer",
		Difficulty:     model.DifficultyIntermediate,
		QuestionTarget: 1,
		Turns:          []model.InterviewTurn{{Seq: 1, Question: "Unanswered?"}},
	}

	report := a.Aggregate(context.Background(), session)

	if report == nil {
		t.Fatal("Aggregate() = nil, report must always be produced")
	}
	if report.OverallScore != 0 {
		t.Errorf("OverallScore = %v, want the score floor", report.OverallScore)
	}
	if len(report.CategoryScores) != 0 {
		t.Errorf("CategoryScores = %v, want empty", report.CategoryScores)
	}
	if report.QuestionsAnswered != 0 {
		t.Errorf("QuestionsAnswered = %d, want 0", report.QuestionsAnswered)
	}
	if report.DurationMinutes != 0 {
		t.Errorf("DurationMinutes = %v, want 0 without start time", report.DurationMinutes)
	}
	if report.NarrativeSource != "fallback" {
		t.Errorf("NarrativeSource = %q, want fallback", report.NarrativeSource)
	}
	if !strings.Contains(report.Narrative, "0 of 1") {
		t.Errorf("Narrative = %q", report.Narrative)
	}
	if len(report.Recommendations) == 0 {
		t.Error("Recommendations empty")
	}
}
