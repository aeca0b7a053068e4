package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/pkg/logger"
	"mock_interview_backend/pkg/monitoring"

	"go.uber.org/zap"
)

const summarySystemPrompt = "You are a note taker for a mock interview. Merge interview exchanges into a compact running summary. Keep every fact from the existing summary, the candidate's demonstrated strengths and gaps, and the topics already covered. Plain text only."

const summaryPromptTemplate = `Existing summary:
%s

New exchanges to fold in:
%s

Write the updated summary in at most %d characters.`

// 摘要压缩后保留的尾部长度
const minSummaryRunes = 200

// MemoryManager 维护会话的对话记忆：固定容量的热窗口加一份累积摘要。
// 溢出的轮次折叠进摘要，摘要只增不减，信息不回退。
type MemoryManager struct {
	config    config.InterviewConfig
	generator TextGenerator
}

func NewMemoryManager(cfg config.InterviewConfig, generator TextGenerator) *MemoryManager {
	return &MemoryManager{config: cfg, generator: generator}
}

// Append 把一轮问答追加进热窗口，超出容量时把最旧的轮次折叠进摘要。
// 折叠调用失败时窗口暂时超员而不是阻塞面试；超过硬上限后强制降级截断，
// 用占位说明替代丢失的轮次并打上 Degraded 标记。每轮至多被折叠一次。
func (m *MemoryManager) Append(ctx context.Context, w *model.MemoryWindow, turn model.MemoryTurn) {
	w.Hot = append(w.Hot, turn)
	if len(w.Hot) <= m.config.HotWindowSize {
		return
	}

	overflow := len(w.Hot) - m.config.HotWindowSize
	evicted := w.Hot[:overflow]
	summary, err := m.foldIntoSummary(ctx, w.Summary, evicted)
	if err == nil {
		w.Summary = summary
		w.Hot = append([]model.MemoryTurn{}, w.Hot[overflow:]...)
		w.EvictedCount += overflow
		monitoring.MemoryEvictions.Add(float64(overflow))
		return
	}

	logger.Log.Warn("summary fold failed, retaining turns in hot window",
		zap.Int("hot_size", len(w.Hot)),
		zap.Error(err))

	if len(w.Hot) > m.config.HardWindowMax {
		drop := len(w.Hot) - m.config.HotWindowSize
		dropped := w.Hot[:drop]
		w.Summary = truncatedSummary(w.Summary, dropped)
		w.Hot = append([]model.MemoryTurn{}, w.Hot[drop:]...)
		w.EvictedCount += drop
		w.Degraded = true
		monitoring.MemoryEvictions.Add(float64(drop))
	}
}

// ContextForNextTurn 渲染提示词用的会话上下文，超过 token 上限时裁剪视图：
// 先压缩摘要，再从视图里丢最旧的轮次。裁剪只影响返回值，窗口本身不动。
func (m *MemoryManager) ContextForNextTurn(w *model.MemoryWindow) string {
	summary := w.Summary
	hot := w.Hot

	out := renderContext(summary, hot)
	if m.generator.CountTokens(out) <= m.config.ContextCeiling {
		return out
	}

	if r := []rune(summary); len(r) > minSummaryRunes {
		summary = "…" + string(r[len(r)-minSummaryRunes:])
		out = renderContext(summary, hot)
	}

	for len(hot) > 1 && m.generator.CountTokens(out) > m.config.ContextCeiling {
		hot = hot[1:]
		out = renderContext(summary, hot)
	}

	// 单轮问答仍放不下时硬截断兜底
	if m.generator.CountTokens(out) > m.config.ContextCeiling {
		if r := []rune(out); len(r) > m.config.ContextCeiling*3 {
			out = string(r[:m.config.ContextCeiling*3])
		}
	}
	return out
}

func (m *MemoryManager) foldIntoSummary(ctx context.Context, current string, turns []model.MemoryTurn) (string, error) {
	var sb strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&sb, "Q%d: %s\nA%d: %s (score %.1f)\n", t.Seq, t.Question, t.Seq, t.Answer, t.Score)
	}
	existing := current
	if existing == "" {
		existing = "(none)"
	}
	prompt := fmt.Sprintf(summaryPromptTemplate, existing, sb.String(), m.config.SummaryMaxChars)

	out, err := m.generator.Generate(ctx, prompt, GenerateParams{
		System:      summarySystemPrompt,
		Temperature: 0.3,
		MaxTokens:   512,
	})
	if err != nil {
		return "", err
	}

	summary := strings.TrimSpace(out)
	if r := []rune(summary); len(r) > m.config.SummaryMaxChars {
		summary = string(r[:m.config.SummaryMaxChars])
	}
	return summary, nil
}

// 降级截断：丢掉的轮次用占位说明顶替，原有摘要内容保留
func truncatedSummary(current string, dropped []model.MemoryTurn) string {
	seqs := make([]string, 0, len(dropped))
	for _, t := range dropped {
		seqs = append(seqs, strconv.Itoa(t.Seq))
	}
	note := fmt.Sprintf("[Questions %s omitted: summary unavailable]", strings.Join(seqs, ", "))
	if current == "" {
		return note
	}
	return current + "\n" + note
}

func renderContext(summary string, hot []model.MemoryTurn) string {
	var sb strings.Builder
	if summary != "" {
		sb.WriteString("Interview so far (summarized):\n")
		sb.WriteString(summary)
		sb.WriteString("\n")
	}
	if len(hot) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Recent exchanges:\n")
		for _, t := range hot {
			answer := t.Answer
			if strings.TrimSpace(answer) == "" {
				answer = "(no answer)"
			}
			fmt.Fprintf(&sb, "Q%d: %s\nA%d: %s\n", t.Seq, t.Question, t.Seq, answer)
		}
	}
	return strings.TrimSpace(sb.String())
}
