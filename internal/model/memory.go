package model

// MemoryTurn 进入记忆窗口的一轮摘要视图，只保留组装上下文需要的字段
type MemoryTurn struct {
	Seq      int     `json:"seq"`
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"`
}

// MemoryWindow 会话独占的对话记忆：热窗口逐字保留最近的轮次，
// 更早的轮次被折叠进 Summary。Summary 只增不减，会话终止时随快照一起销毁。
// 该结构只存在于会话缓存中，不落库。
type MemoryWindow struct {
	Summary      string       `json:"summary"`
	Hot          []MemoryTurn `json:"hot"`
	EvictedCount int          `json:"evictedCount"` // 已折叠进摘要的轮数，每轮至多折叠一次
	Degraded     bool         `json:"degraded"`     // 摘要调用失败后被迫使用截断摘要
}

// SessionSnapshot 活动会话在缓存中的完整快照
type SessionSnapshot struct {
	Session InterviewSession `json:"session"`
	Memory  MemoryWindow     `json:"memory"`
}
