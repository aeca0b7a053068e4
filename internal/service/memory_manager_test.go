package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/model"
)

// 折叠窗口相关用例统一用 K=3、硬上限 5 的小窗口
func memoryTestConfig() config.InterviewConfig {
	cfg := testInterviewConfig()
	cfg.HotWindowSize = 3
	cfg.HardWindowMax = 5
	return cfg
}

func memTurn(seq int, question, answer string) model.MemoryTurn {
	return model.MemoryTurn{Seq: seq, Question: question, Answer: answer, Score: 7}
}

func hotSeqs(w *model.MemoryWindow) []int {
	seqs := make([]int, 0, len(w.Hot))
	for _, t := range w.Hot {
		seqs = append(seqs, t.Seq)
	}
	return seqs
}

func TestAppendFoldsOverflowIntoSummary(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"Candidate covered goroutines well."}}
	m := NewMemoryManager(memoryTestConfig(), gen)
	w := &model.MemoryWindow{}

	m.Append(context.Background(), w, memTurn(1, "What do goroutines do?", "They run concurrently."))
	m.Append(context.Background(), w, memTurn(2, "What is a channel?", "A typed conduit."))
	m.Append(context.Background(), w, memTurn(3, "What is select?", "Waits on channels."))
	if gen.callCount() != 0 {
		t.Fatalf("Generate calls before overflow = %d, want 0", gen.callCount())
	}

	m.Append(context.Background(), w, memTurn(4, "What is a mutex?", "A lock."))

	if gen.callCount() != 1 {
		t.Fatalf("Generate calls = %d, want 1", gen.callCount())
	}
	prompt := gen.prompt(t, 0)
	if !strings.Contains(prompt, "Q1: What do goroutines do?") {
		t.Errorf("fold prompt missing evicted turn:\n%s", prompt)
	}
	if !strings.Contains(prompt, "(none)") {
		t.Errorf("fold prompt should mark the empty existing summary:\n%s", prompt)
	}
	if w.Summary != "Candidate covered goroutines well." {
		t.Errorf("Summary = %q, want scripted completion", w.Summary)
	}
	if got := hotSeqs(w); len(got) != 3 || got[0] != 2 || got[2] != 4 {
		t.Errorf("hot window seqs = %v, want [2 3 4]", got)
	}
	if w.EvictedCount != 1 {
		t.Errorf("EvictedCount = %d, want 1", w.EvictedCount)
	}
	if w.Degraded {
		t.Error("Degraded = true after successful fold")
	}
}

func TestAppendFoldsEachTurnAtMostOnce(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"Summary one.", "Summary two."}}
	m := NewMemoryManager(memoryTestConfig(), gen)
	w := &model.MemoryWindow{}

	for seq := 1; seq <= 5; seq++ {
		m.Append(context.Background(), w, memTurn(seq, "Question body.", "Answer body."))
	}

	if gen.callCount() != 2 {
		t.Fatalf("Generate calls = %d, want 2", gen.callCount())
	}
	second := gen.prompt(t, 1)
	if !strings.Contains(second, "Summary one.") {
		t.Errorf("second fold should carry the existing summary:\n%s", second)
	}
	if !strings.Contains(second, "Q2:") {
		t.Errorf("second fold should contain turn 2:\n%s", second)
	}
	if strings.Contains(second, "Q1:") {
		t.Errorf("turn 1 folded twice:\n%s", second)
	}
	if w.Summary != "Summary two." {
		t.Errorf("Summary = %q, want %q", w.Summary, "Summary two.")
	}
	if w.EvictedCount != 2 {
		t.Errorf("EvictedCount = %d, want 2", w.EvictedCount)
	}
}

func TestAppendDegradesWhenSummarizerKeepsFailing(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	m := NewMemoryManager(memoryTestConfig(), gen)
	w := &model.MemoryWindow{}

	// 折叠失败时窗口先超员保留，信息不丢
	for seq := 1; seq <= 5; seq++ {
		m.Append(context.Background(), w, memTurn(seq, "Question body.", "Answer body."))
	}
	if len(w.Hot) != 5 {
		t.Fatalf("hot window size = %d, want 5 retained turns", len(w.Hot))
	}
	if w.Degraded || w.EvictedCount != 0 || w.Summary != "" {
		t.Fatalf("window degraded early: %+v", w)
	}

	// 超过硬上限后强制截断，占位说明顶替丢掉的轮次
	m.Append(context.Background(), w, memTurn(6, "Question body.", "Answer body."))

	if w.Summary != "[Questions 1, 2, 3 omitted: summary unavailable]" {
		t.Errorf("Summary = %q, want omission note", w.Summary)
	}
	if got := hotSeqs(w); len(got) != 3 || got[0] != 4 || got[2] != 6 {
		t.Errorf("hot window seqs = %v, want [4 5 6]", got)
	}
	if w.EvictedCount != 3 {
		t.Errorf("EvictedCount = %d, want 3", w.EvictedCount)
	}
	if !w.Degraded {
		t.Error("Degraded = false after forced truncation")
	}
}

func TestAppendKeepsDegradedFlagAfterRecovery(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	m := NewMemoryManager(memoryTestConfig(), gen)
	w := &model.MemoryWindow{}

	for seq := 1; seq <= 6; seq++ {
		m.Append(context.Background(), w, memTurn(seq, "Question body.", "Answer body."))
	}
	if !w.Degraded {
		t.Fatal("window not degraded after sustained failures")
	}

	gen.err = nil
	gen.outputs = []string{"Fresh summary after recovery."}
	m.Append(context.Background(), w, memTurn(7, "Question body.", "Answer body."))

	if w.Summary != "Fresh summary after recovery." {
		t.Errorf("Summary = %q, want recovered completion", w.Summary)
	}
	if w.EvictedCount != 4 {
		t.Errorf("EvictedCount = %d, want 4", w.EvictedCount)
	}
	if !w.Degraded {
		t.Error("Degraded flag must stick once truncation happened")
	}
}

func TestFoldTruncatesSummaryToLimit(t *testing.T) {
	cfg := memoryTestConfig()
	cfg.HotWindowSize = 1
	cfg.HardWindowMax = 5
	cfg.SummaryMaxChars = 10
	gen := &fakeGenerator{outputs: []string{"this summary is much longer than ten runes"}}
	m := NewMemoryManager(cfg, gen)
	w := &model.MemoryWindow{}

	m.Append(context.Background(), w, memTurn(1, "First?", "Yes."))
	m.Append(context.Background(), w, memTurn(2, "Second?", "Also yes."))

	if got := utf8.RuneCountInString(w.Summary); got != 10 {
		t.Errorf("summary length = %d runes, want 10", got)
	}
	if w.Summary != "this summa" {
		t.Errorf("Summary = %q, want truncated head of completion", w.Summary)
	}
}

func TestContextForNextTurnRendersSummaryAndHot(t *testing.T) {
	gen := &fakeGenerator{}
	m := NewMemoryManager(testInterviewConfig(), gen)

	if out := m.ContextForNextTurn(&model.MemoryWindow{}); out != "" {
		t.Errorf("empty window rendered %q, want empty string", out)
	}

	w := &model.MemoryWindow{
		Summary: "Earlier the candidate discussed Go basics.",
		Hot: []model.MemoryTurn{
			memTurn(3, "What is a slice?", "A view over an array."),
			memTurn(4, "What is an interface?", "   "),
		},
	}
	out := m.ContextForNextTurn(w)

	if !strings.Contains(out, "Interview so far (summarized):") {
		t.Errorf("context missing summary header:\n%s", out)
	}
	if !strings.Contains(out, "Earlier the candidate discussed Go basics.") {
		t.Errorf("context missing summary body:\n%s", out)
	}
	if !strings.Contains(out, "Recent exchanges:") {
		t.Errorf("context missing hot window header:\n%s", out)
	}
	if !strings.Contains(out, "Q3: What is a slice?") {
		t.Errorf("context missing hot turn:\n%s", out)
	}
	if !strings.Contains(out, "A4: (no answer)") {
		t.Errorf("blank answer not rendered as placeholder:\n%s", out)
	}
}

func TestContextForNextTurnCompressesSummaryTail(t *testing.T) {
	cfg := testInterviewConfig()
	cfg.ContextCeiling = 100
	gen := &fakeGenerator{tokensFn: utf8.RuneCountInString}
	m := NewMemoryManager(cfg, gen)

	w := &model.MemoryWindow{
		Summary: "HEAD-MARKER" + strings.Repeat("s", 300) + "TAIL",
		Hot:     []model.MemoryTurn{memTurn(9, "Hi", "Yo")},
	}
	out := m.ContextForNextTurn(w)

	if strings.Contains(out, "HEAD-MARKER") {
		t.Errorf("summary head survived compression:\n%s", out)
	}
	if !strings.Contains(out, "TAIL") {
		t.Errorf("summary tail lost:\n%s", out)
	}
	if !strings.Contains(out, "…") {
		t.Errorf("compressed summary not marked:\n%s", out)
	}
	if !strings.Contains(w.Summary, "HEAD-MARKER") {
		t.Error("compression must not mutate the stored summary")
	}
}

func TestContextForNextTurnDropsOldestTurnsFromView(t *testing.T) {
	cfg := testInterviewConfig()
	cfg.ContextCeiling = 60
	gen := &fakeGenerator{tokensFn: utf8.RuneCountInString}
	m := NewMemoryManager(cfg, gen)

	w := &model.MemoryWindow{
		Hot: []model.MemoryTurn{
			memTurn(1, "What is a goroutine?", "A lightweight thread."),
			memTurn(2, "What is a channel?", "A typed conduit."),
			memTurn(3, "What is a mutex?", "A lock."),
		},
	}
	out := m.ContextForNextTurn(w)

	if strings.Contains(out, "goroutine") || strings.Contains(out, "channel") {
		t.Errorf("oldest turns not dropped from view:\n%s", out)
	}
	if !strings.Contains(out, "mutex") {
		t.Errorf("newest turn missing from view:\n%s", out)
	}
	if len(w.Hot) != 3 {
		t.Errorf("hot window mutated by rendering: %d turns left", len(w.Hot))
	}
}

func TestContextForNextTurnHardTruncatesOversizedTurn(t *testing.T) {
	cfg := testInterviewConfig()
	cfg.ContextCeiling = 10
	gen := &fakeGenerator{tokensFn: utf8.RuneCountInString}
	m := NewMemoryManager(cfg, gen)

	w := &model.MemoryWindow{
		Hot: []model.MemoryTurn{memTurn(1, "Q?", strings.Repeat("a", 200))},
	}
	out := m.ContextForNextTurn(w)

	if got := utf8.RuneCountInString(out); got != cfg.ContextCeiling*3 {
		t.Errorf("truncated context length = %d runes, want %d", got, cfg.ContextCeiling*3)
	}
}
