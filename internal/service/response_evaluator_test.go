package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mock_interview_backend/internal/model"
)

func evaluatorTestTurn() *model.InterviewTurn {
	return &model.InterviewTurn{
		Seq:              1,
		Question:         "How would you make a shared counter safe?",
		Category:         "concurrency",
		Difficulty:       model.DifficultyIntermediate,
		ExpectedKeywords: []string{"mutex", "critical section", "semaphore"},
	}
}

func TestEvaluateBlankAnswerShortCircuits(t *testing.T) {
	cfg := testInterviewConfig()
	cfg.ScoreFloor = 2
	gen := &fakeGenerator{}
	e := NewResponseEvaluator(cfg, gen)

	eval, err := e.Evaluate(context.Background(), evaluatorTestTurn(), "  \n\t  ", "")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if eval.Score != 2 {
		t.Errorf("Score = %v, want the configured floor", eval.Score)
	}
	if eval.Feedback != noAnswerFeedback {
		t.Errorf("Feedback = %q", eval.Feedback)
	}
	if len(eval.KeywordHits) != 0 {
		t.Errorf("KeywordHits = %v, want none", eval.KeywordHits)
	}
	if gen.callCount() != 0 {
		t.Errorf("Generate calls = %d, blank answers must not hit the model", gen.callCount())
	}
}

func TestEvaluateParsesScoreAndFeedback(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"Score: 7.5/10\nFeedback: Solid answer with good depth."}}
	e := NewResponseEvaluator(testInterviewConfig(), gen)
	turn := evaluatorTestTurn()
	answer := "I would guard the counter with a mutex so the critical section stays exclusive."

	eval, err := e.Evaluate(context.Background(), turn, answer, "")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if eval.Score != 7.5 {
		t.Errorf("Score = %v, want 7.5", eval.Score)
	}
	if eval.Feedback != "Solid answer with good depth." {
		t.Errorf("Feedback = %q", eval.Feedback)
	}
	want := []string{"mutex", "critical section"}
	if len(eval.KeywordHits) != len(want) {
		t.Fatalf("KeywordHits = %v, want %v", eval.KeywordHits, want)
	}
	for i, kw := range want {
		if eval.KeywordHits[i] != kw {
			t.Errorf("hit[%d] = %q, want %q", i, eval.KeywordHits[i], kw)
		}
	}

	if gen.systems[0] != evaluationSystemPrompt {
		t.Errorf("system prompt = %q", gen.systems[0])
	}
	prompt := gen.prompt(t, 0)
	if !strings.Contains(prompt, turn.Question) {
		t.Errorf("prompt missing question:\n%s", prompt)
	}
	if !strings.Contains(prompt, answer) {
		t.Errorf("prompt missing answer:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Key concepts a strong answer covers: mutex, critical section, semaphore") {
		t.Errorf("prompt missing expected keywords:\n%s", prompt)
	}
	if strings.Contains(prompt, "Context from earlier in the interview:") {
		t.Errorf("context block present without context:\n%s", prompt)
	}
}

func TestEvaluateIncludesContext(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"Score: 5/10\nFeedback: Thin."}}
	e := NewResponseEvaluator(testInterviewConfig(), gen)

	_, err := e.Evaluate(context.Background(), evaluatorTestTurn(), "Some answer.", "Q1: Earlier question?\nA1: Earlier answer.")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	prompt := gen.prompt(t, 0)
	if !strings.Contains(prompt, "Context from earlier in the interview:") {
		t.Errorf("prompt missing context block:\n%s", prompt)
	}
	if !strings.Contains(prompt, "A1: Earlier answer.") {
		t.Errorf("prompt missing context body:\n%s", prompt)
	}
}

func TestEvaluateClampsScoreToRange(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"Score: 15/10\nFeedback: Overenthusiastic."}}
	e := NewResponseEvaluator(testInterviewConfig(), gen)

	eval, err := e.Evaluate(context.Background(), evaluatorTestTurn(), "An answer.", "")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if eval.Score != 10 {
		t.Errorf("Score = %v, want clamp to score_max", eval.Score)
	}
}

func TestEvaluateRetriesUnparsableCompletion(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{
		"Looks good to me.",
		"Score: 6/10\nFeedback: Reasonable.",
	}}
	e := NewResponseEvaluator(testInterviewConfig(), gen)

	eval, err := e.Evaluate(context.Background(), evaluatorTestTurn(), "An answer.", "")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if eval.Score != 6 {
		t.Errorf("Score = %v, want 6", eval.Score)
	}
	if gen.callCount() != 2 {
		t.Errorf("Generate calls = %d, want one retry", gen.callCount())
	}
}

func TestEvaluateFatalAfterRetriesExhausted(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"no score in sight", "still chatting"}}
	e := NewResponseEvaluator(testInterviewConfig(), gen)

	eval, err := e.Evaluate(context.Background(), evaluatorTestTurn(), "An answer.", "")
	if err == nil {
		t.Fatal("Evaluate() error = nil, want fatal error")
	}
	if !IsFatalLLMError(err) {
		t.Errorf("IsFatalLLMError() = false for %v", err)
	}
	if !strings.Contains(err.Error(), "no score found") {
		t.Errorf("error = %v", err)
	}
	if eval != nil {
		t.Errorf("evaluation = %+v, want nil", eval)
	}
	if gen.callCount() != 2 {
		t.Errorf("Generate calls = %d, want 2", gen.callCount())
	}
}

func TestEvaluatePropagatesGeneratorError(t *testing.T) {
	upstream := errors.New("upstream down")
	gen := &fakeGenerator{err: upstream}
	e := NewResponseEvaluator(testInterviewConfig(), gen)

	eval, err := e.Evaluate(context.Background(), evaluatorTestTurn(), "An answer.", "")
	if !errors.Is(err, upstream) {
		t.Fatalf("Evaluate() error = %v, want upstream error", err)
	}
	if IsFatalLLMError(err) {
		t.Error("generator errors must pass through unclassified")
	}
	if eval != nil {
		t.Errorf("evaluation = %+v, want nil", eval)
	}
	if gen.callCount() != 1 {
		t.Errorf("Generate calls = %d, want no retry", gen.callCount())
	}
}

func TestKeywordHits(t *testing.T) {
	hits := keywordHits([]string{"Mutex", "RACE condition", ""}, "A mutex prevents a race condition.")
	want := []string{"Mutex", "RACE condition"}
	if len(hits) != len(want) {
		t.Fatalf("keywordHits() = %v, want %v", hits, want)
	}
	for i, kw := range want {
		if hits[i] != kw {
			t.Errorf("hit[%d] = %q, want original keyword casing %q", i, hits[i], kw)
		}
	}
	if got := keywordHits(nil, "anything"); got != nil {
		t.Errorf("keywordHits(nil) = %v, want nil", got)
	}
}

func TestExtractFeedback(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "marker on own line",
			raw:  "Score: 8/10\nFeedback: Good coverage.",
			want: "Good coverage.",
		},
		{
			name: "fullwidth colon marker",
			raw:  "Score: 8/10\nFeedback： 覆盖了关键点。",
			want: "覆盖了关键点。",
		},
		{
			name: "marker mid line",
			raw:  "Score: 9/10 Feedback: Tight answer.",
			want: "Tight answer.",
		},
		{
			name: "no marker strips score lines",
			raw:  "Score: 8/10\nGood coverage of locking.\nMentions contention.",
			want: "Good coverage of locking.\nMentions contention.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractFeedback(tt.raw); got != tt.want {
				t.Errorf("extractFeedback() = %q, want %q", got, tt.want)
			}
		})
	}
}
