package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mock_interview_backend/internal/model"
)

func questionTestSession() *model.InterviewSession {
	return &model.InterviewSession{
		UUIDBase:          model.UUIDBase{ID: "sess-q"},
		UserID:            "user-1",
		Role:              "Backend Engineer",
		Experience:        "3 years",
		Industry:          "fintech",
		InterviewType:     model.TypeTechnical,
		Difficulty:        model.DifficultyIntermediate,
		CurrentDifficulty: model.DifficultyIntermediate,
		QuestionTarget:    3,
		Skills:            []string{"Go", "SQL"},
	}
}

func TestNextQuestionServesCustomQuestionsFirst(t *testing.T) {
	gen := &fakeGenerator{}
	g := NewQuestionGenerator(testInterviewConfig(), gen)
	session := questionTestSession()
	session.CustomQuestions = []string{"Walk me through your last project.", "Why Go?"}

	q, err := g.NextQuestion(context.Background(), session, "")
	if err != nil {
		t.Fatalf("NextQuestion() error = %v", err)
	}
	if q.Question != "Walk me through your last project." {
		t.Errorf("first question = %q, want first custom question", q.Question)
	}
	if q.Category != "custom" {
		t.Errorf("category = %q, want custom", q.Category)
	}
	if q.Difficulty != model.DifficultyIntermediate {
		t.Errorf("difficulty = %q, want session difficulty", q.Difficulty)
	}

	session.Turns = append(session.Turns, model.InterviewTurn{Seq: 1, Question: q.Question})
	q, err = g.NextQuestion(context.Background(), session, "")
	if err != nil {
		t.Fatalf("NextQuestion() error = %v", err)
	}
	if q.Question != "Why Go?" {
		t.Errorf("second question = %q, want second custom question", q.Question)
	}
	if gen.callCount() != 0 {
		t.Errorf("Generate calls = %d, custom questions must not hit the model", gen.callCount())
	}
}

func TestNextQuestionParsesCompletion(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{
		"QUESTION: How does a hash map handle collisions?\nCATEGORY: Data Structures\nKEYWORDS: chaining, open addressing, load factor",
	}}
	g := NewQuestionGenerator(testInterviewConfig(), gen)
	session := questionTestSession()

	q, err := g.NextQuestion(context.Background(), session, "")
	if err != nil {
		t.Fatalf("NextQuestion() error = %v", err)
	}
	if q.Question != "How does a hash map handle collisions?" {
		t.Errorf("question = %q", q.Question)
	}
	if q.Category != "data structures" {
		t.Errorf("category = %q, want lowercased label", q.Category)
	}
	want := []string{"chaining", "open addressing", "load factor"}
	if len(q.ExpectedKeywords) != len(want) {
		t.Fatalf("keywords = %v, want %v", q.ExpectedKeywords, want)
	}
	for i, kw := range want {
		if q.ExpectedKeywords[i] != kw {
			t.Errorf("keyword[%d] = %q, want %q", i, q.ExpectedKeywords[i], kw)
		}
	}
	if q.Difficulty != model.DifficultyIntermediate {
		t.Errorf("difficulty = %q, want current difficulty", q.Difficulty)
	}

	if gen.systems[0] != questionSystemPrompt {
		t.Errorf("system prompt = %q", gen.systems[0])
	}
	prompt := gen.prompt(t, 0)
	if !strings.Contains(prompt, "Target role: Backend Engineer") {
		t.Errorf("prompt missing candidate profile:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Key skills: Go, SQL") {
		t.Errorf("prompt missing skills:\n%s", prompt)
	}
	if !strings.Contains(prompt, "This is the first question of the interview.") {
		t.Errorf("prompt missing first-question marker:\n%s", prompt)
	}
}

func TestNextQuestionIncludesContext(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"QUESTION: Next one?\nCATEGORY: general"}}
	g := NewQuestionGenerator(testInterviewConfig(), gen)
	session := questionTestSession()
	session.Turns = append(session.Turns, model.InterviewTurn{Seq: 1, Question: "Opening question?", Answered: true, Score: 6})

	if _, err := g.NextQuestion(context.Background(), session, "Q1: Opening question?\nA1: Something."); err != nil {
		t.Fatalf("NextQuestion() error = %v", err)
	}
	prompt := gen.prompt(t, 0)
	if !strings.Contains(prompt, "Context from the interview so far:") {
		t.Errorf("prompt missing context block:\n%s", prompt)
	}
	if !strings.Contains(prompt, "A1: Something.") {
		t.Errorf("prompt missing context body:\n%s", prompt)
	}
	if strings.Contains(prompt, "This is the first question of the interview.") {
		t.Errorf("first-question marker present despite context:\n%s", prompt)
	}
}

func TestNextQuestionRegeneratesOnDuplicate(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{
		"QUESTION: how does a hash map handle collisions\nCATEGORY: data structures",
		"QUESTION: Explain B-tree indexes.\nCATEGORY: databases\nKEYWORDS: b-tree, page, fanout",
	}}
	g := NewQuestionGenerator(testInterviewConfig(), gen)
	session := questionTestSession()
	session.Turns = append(session.Turns, model.InterviewTurn{
		Seq: 1, Question: "How does a hash map handle collisions?", Answered: true, Score: 7,
	})

	q, err := g.NextQuestion(context.Background(), session, "")
	if err != nil {
		t.Fatalf("NextQuestion() error = %v", err)
	}
	if q.Question != "Explain B-tree indexes." {
		t.Errorf("question = %q, want regenerated question", q.Question)
	}
	if gen.callCount() != 2 {
		t.Errorf("Generate calls = %d, want 2", gen.callCount())
	}
}

func TestNextQuestionAcceptsDuplicateAfterRetries(t *testing.T) {
	dup := "QUESTION: how does a hash map handle collisions\nCATEGORY: data structures"
	gen := &fakeGenerator{outputs: []string{dup, dup}}
	g := NewQuestionGenerator(testInterviewConfig(), gen)
	session := questionTestSession()
	session.Turns = append(session.Turns, model.InterviewTurn{
		Seq: 1, Question: "How does a hash map handle collisions?", Answered: true, Score: 7,
	})

	// 查重耗尽后带重复题继续，不中断面试
	q, err := g.NextQuestion(context.Background(), session, "")
	if err != nil {
		t.Fatalf("NextQuestion() error = %v", err)
	}
	if q.Question != "how does a hash map handle collisions" {
		t.Errorf("question = %q, want the duplicate completion", q.Question)
	}
	if gen.callCount() != 2 {
		t.Errorf("Generate calls = %d, want 2", gen.callCount())
	}
}

func TestNextQuestionFailsWhenAllCompletionsMalformed(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"no structured lines here", "still just prose"}}
	g := NewQuestionGenerator(testInterviewConfig(), gen)

	q, err := g.NextQuestion(context.Background(), questionTestSession(), "")
	if err == nil {
		t.Fatal("NextQuestion() error = nil, want parse failure")
	}
	if !strings.Contains(err.Error(), "no parseable completion") {
		t.Errorf("error = %v", err)
	}
	if q != nil {
		t.Errorf("question = %+v, want nil", q)
	}
	if gen.callCount() != 2 {
		t.Errorf("Generate calls = %d, want 2", gen.callCount())
	}
}

func TestNextQuestionPropagatesGeneratorError(t *testing.T) {
	upstream := errors.New("upstream down")
	gen := &fakeGenerator{err: upstream}
	g := NewQuestionGenerator(testInterviewConfig(), gen)

	q, err := g.NextQuestion(context.Background(), questionTestSession(), "")
	if !errors.Is(err, upstream) {
		t.Fatalf("NextQuestion() error = %v, want upstream error", err)
	}
	if q != nil {
		t.Errorf("question = %+v, want nil", q)
	}
	if gen.callCount() != 1 {
		t.Errorf("Generate calls = %d, want no retry on generator error", gen.callCount())
	}
}

func TestAdaptDifficulty(t *testing.T) {
	tests := []struct {
		name     string
		current  model.Difficulty
		scores   []float64
		openTurn bool
		want     model.Difficulty
	}{
		{"raises on high mean", model.DifficultyIntermediate, []float64{8.5, 9, 8}, false, model.DifficultyAdvanced},
		{"raise threshold inclusive", model.DifficultyIntermediate, []float64{8, 8, 8}, false, model.DifficultyAdvanced},
		{"lowers on low mean", model.DifficultyIntermediate, []float64{3, 4, 2}, false, model.DifficultyBeginner},
		{"lower threshold inclusive", model.DifficultyIntermediate, []float64{4, 4, 4}, false, model.DifficultyBeginner},
		{"holds in mid band", model.DifficultyIntermediate, []float64{6, 6, 6}, false, model.DifficultyIntermediate},
		{"holds with too few samples", model.DifficultyIntermediate, []float64{9, 9}, false, model.DifficultyIntermediate},
		{"uses only the recent window", model.DifficultyIntermediate, []float64{2, 2, 9, 8, 8}, false, model.DifficultyAdvanced},
		{"clamps at expert", model.DifficultyExpert, []float64{9, 9, 9}, false, model.DifficultyExpert},
		{"clamps at beginner", model.DifficultyBeginner, []float64{2, 2, 2}, false, model.DifficultyBeginner},
		{"ignores open turns", model.DifficultyIntermediate, []float64{9, 9, 9}, true, model.DifficultyAdvanced},
	}
	g := NewQuestionGenerator(testInterviewConfig(), &fakeGenerator{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := questionTestSession()
			session.CurrentDifficulty = tt.current
			for i, score := range tt.scores {
				session.Turns = append(session.Turns, model.InterviewTurn{
					Seq: i + 1, Question: "Q?", Answered: true, Score: score,
				})
			}
			if tt.openTurn {
				session.Turns = append(session.Turns, model.InterviewTurn{
					Seq: len(tt.scores) + 1, Question: "Pending?",
				})
			}
			if got := g.AdaptDifficulty(session); got != tt.want {
				t.Errorf("AdaptDifficulty() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseGeneratedQuestion(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantErr      bool
		wantQuestion string
		wantCategory string
		wantKeywords []string
	}{
		{
			name:         "lowercase markers accepted",
			raw:          "question: What is a closure?\ncategory: Language",
			wantQuestion: "What is a closure?",
			wantCategory: "language",
		},
		{
			name:         "missing category defaults to general",
			raw:          "QUESTION: Describe TCP slow start.",
			wantQuestion: "Describe TCP slow start.",
			wantCategory: "general",
		},
		{
			name:    "missing question line fails",
			raw:     "CATEGORY: networking\nKEYWORDS: tcp, window",
			wantErr: true,
		},
		{
			name:         "empty keyword entries skipped",
			raw:          "QUESTION: Q?\nCATEGORY: misc\nKEYWORDS: a, , b",
			wantQuestion: "Q?",
			wantCategory: "misc",
			wantKeywords: []string{"a", "b"},
		},
		{
			name:         "surrounding prose ignored",
			raw:          "Sure, here you go:\nQUESTION: Q?\nCATEGORY: misc\nGood luck!",
			wantQuestion: "Q?",
			wantCategory: "misc",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := parseGeneratedQuestion(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseGeneratedQuestion() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseGeneratedQuestion() error = %v", err)
			}
			if q.Question != tt.wantQuestion {
				t.Errorf("Question = %q, want %q", q.Question, tt.wantQuestion)
			}
			if q.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", q.Category, tt.wantCategory)
			}
			if len(tt.wantKeywords) > 0 {
				if len(q.ExpectedKeywords) != len(tt.wantKeywords) {
					t.Fatalf("ExpectedKeywords = %v, want %v", q.ExpectedKeywords, tt.wantKeywords)
				}
				for i, kw := range tt.wantKeywords {
					if q.ExpectedKeywords[i] != kw {
						t.Errorf("keyword[%d] = %q, want %q", i, q.ExpectedKeywords[i], kw)
					}
				}
			}
		})
	}
}

func TestQuestionFingerprint(t *testing.T) {
	if questionFingerprint("What is Go?") != questionFingerprint("what   is GO") {
		t.Error("case and whitespace variants must share a fingerprint")
	}
	if questionFingerprint("Hello, world!") != questionFingerprint("hello world") {
		t.Error("punctuation-only variants must share a fingerprint")
	}
	if questionFingerprint("A B C") == questionFingerprint("ABC") {
		t.Error("word boundaries must survive fingerprinting")
	}
}
