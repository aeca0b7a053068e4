package model

import "testing"

func TestSessionStatusTerminal(t *testing.T) {
	tests := []struct {
		status SessionStatus
		want   bool
	}{
		{SessionCreated, false},
		{SessionActive, false},
		{SessionPaused, false},
		{SessionEvaluating, false},
		{SessionCompleted, true},
		{SessionFailed, true},
		{SessionAborted, true},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestDifficultyShift(t *testing.T) {
	tests := []struct {
		name  string
		from  Difficulty
		delta int
		want  Difficulty
	}{
		{"raise one", DifficultyIntermediate, 1, DifficultyAdvanced},
		{"lower one", DifficultyIntermediate, -1, DifficultyBeginner},
		{"no change", DifficultyAdvanced, 0, DifficultyAdvanced},
		{"clamp at expert", DifficultyExpert, 1, DifficultyExpert},
		{"clamp at beginner", DifficultyBeginner, -1, DifficultyBeginner},
		{"clamp past expert", DifficultyIntermediate, 5, DifficultyExpert},
		{"clamp past beginner", DifficultyAdvanced, -5, DifficultyBeginner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.Shift(tt.delta); got != tt.want {
				t.Errorf("%s.Shift(%d) = %s, want %s", tt.from, tt.delta, got, tt.want)
			}
		})
	}
}

func TestValidDifficulty(t *testing.T) {
	for _, d := range []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert} {
		if !ValidDifficulty(d) {
			t.Errorf("ValidDifficulty(%s) = false, want true", d)
		}
	}
	for _, d := range []Difficulty{"", "hard", "EXPERT"} {
		if ValidDifficulty(d) {
			t.Errorf("ValidDifficulty(%q) = true, want false", d)
		}
	}
}

func TestValidInterviewType(t *testing.T) {
	for _, it := range []InterviewType{TypeTechnical, TypeBehavioral, TypeCoding, TypeSystemDesign, TypeMixed} {
		if !ValidInterviewType(it) {
			t.Errorf("ValidInterviewType(%s) = false, want true", it)
		}
	}
	if ValidInterviewType("casual") {
		t.Error("ValidInterviewType(\"casual\") = true, want false")
	}
}

func TestOpenTurn(t *testing.T) {
	s := &InterviewSession{
		CurrentSeq: 2,
		Turns: []InterviewTurn{
			{Seq: 1, Answered: true},
			{Seq: 2},
		},
	}
	turn := s.OpenTurn()
	if turn == nil {
		t.Fatal("OpenTurn() = nil, want turn 2")
	}
	if turn.Seq != 2 {
		t.Errorf("OpenTurn().Seq = %d, want 2", turn.Seq)
	}

	// 返回的是切片中的元素，修改应落在会话上
	turn.Answered = true
	if !s.Turns[1].Answered {
		t.Error("mutating OpenTurn() result did not affect session turns")
	}

	if got := s.OpenTurn(); got != nil {
		t.Errorf("OpenTurn() after answering = %+v, want nil", got)
	}
}

func TestOpenTurnNoTurns(t *testing.T) {
	s := &InterviewSession{CurrentSeq: 1}
	if got := s.OpenTurn(); got != nil {
		t.Errorf("OpenTurn() = %+v, want nil", got)
	}
}

func TestAnsweredCount(t *testing.T) {
	s := &InterviewSession{
		Turns: []InterviewTurn{
			{Seq: 1, Answered: true},
			{Seq: 2, Answered: true},
			{Seq: 3},
		},
	}
	if got := s.AnsweredCount(); got != 2 {
		t.Errorf("AnsweredCount() = %d, want 2", got)
	}
}
