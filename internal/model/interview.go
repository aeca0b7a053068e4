package model

import "time"

// SessionStatus 面试会话状态机的状态
type SessionStatus string

const (
	SessionCreated    SessionStatus = "created"
	SessionActive     SessionStatus = "active"
	SessionPaused     SessionStatus = "paused"
	SessionEvaluating SessionStatus = "evaluating"
	SessionCompleted  SessionStatus = "completed"
	SessionFailed     SessionStatus = "failed"
	SessionAborted    SessionStatus = "aborted"
)

// Terminal 判断状态是否为终态，终态会话不再接受任何变更
func (s SessionStatus) Terminal() bool {
	return s == SessionCompleted || s == SessionFailed || s == SessionAborted
}

// InterviewType 面试类型
type InterviewType string

const (
	TypeTechnical    InterviewType = "technical"
	TypeBehavioral   InterviewType = "behavioral"
	TypeCoding       InterviewType = "coding"
	TypeSystemDesign InterviewType = "system_design"
	TypeMixed        InterviewType = "mixed"
)

func ValidInterviewType(t InterviewType) bool {
	switch t {
	case TypeTechnical, TypeBehavioral, TypeCoding, TypeSystemDesign, TypeMixed:
		return true
	}
	return false
}

// Difficulty 面试难度档位，自适应调整时按 difficultyOrder 升降一档
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

var difficultyOrder = []Difficulty{
	DifficultyBeginner,
	DifficultyIntermediate,
	DifficultyAdvanced,
	DifficultyExpert,
}

func ValidDifficulty(d Difficulty) bool {
	for _, v := range difficultyOrder {
		if v == d {
			return true
		}
	}
	return false
}

// Shift 按 delta 档位升降难度，结果始终落在 beginner..expert 内
func (d Difficulty) Shift(delta int) Difficulty {
	idx := 0
	for i, v := range difficultyOrder {
		if v == d {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx > len(difficultyOrder)-1 {
		idx = len(difficultyOrder) - 1
	}
	return difficultyOrder[idx]
}

// InterviewSession 一次模拟面试。ID 即会话ID，同一ID同一时刻只有一个活动实例，
// 并发操作由会话级分布式锁串行化。
type InterviewSession struct {
	UUIDBase
	UserID     string `gorm:"index;type:varchar(64)" json:"userId"`
	Role       string `gorm:"type:varchar(128)" json:"role"`
	Experience string `gorm:"type:varchar(64)" json:"experience"`
	Industry   string `gorm:"type:varchar(128)" json:"industry,omitempty"`

	InterviewType     InterviewType `gorm:"type:varchar(20)" json:"interviewType"`
	Difficulty        Difficulty    `gorm:"type:varchar(20)" json:"difficulty"`
	CurrentDifficulty Difficulty    `gorm:"type:varchar(20)" json:"currentDifficulty"` // 自适应后的当前档位
	QuestionTarget    int           `json:"questionTarget"`
	DurationMinutes   int           `json:"durationMinutes"`

	Skills          []string `gorm:"type:json;serializer:json" json:"skills,omitempty"`
	CustomQuestions []string `gorm:"type:json;serializer:json" json:"customQuestions,omitempty"`

	Status       SessionStatus `gorm:"type:varchar(20);index" json:"status"`
	FailureCause string        `gorm:"type:varchar(512)" json:"failureCause,omitempty"`
	CurrentSeq   int           `json:"currentSeq"` // 当前待回答轮次，0 表示没有待回答的问题

	StartedAt      *time.Time `json:"startedAt,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	LastActivityAt time.Time  `json:"lastActivityAt"`

	Turns  []InterviewTurn  `gorm:"foreignKey:SessionID;references:ID" json:"turns,omitempty"`
	Report *InterviewReport `gorm:"foreignKey:SessionID;references:ID" json:"report,omitempty"`
}

func (InterviewSession) TableName() string {
	return "interview_sessions"
}

// AnsweredCount 已完成评估的轮数
func (s *InterviewSession) AnsweredCount() int {
	n := 0
	for _, t := range s.Turns {
		if t.Answered {
			n++
		}
	}
	return n
}

// OpenTurn 返回当前待回答的轮次，没有时返回 nil
func (s *InterviewSession) OpenTurn() *InterviewTurn {
	for i := range s.Turns {
		if !s.Turns[i].Answered && s.Turns[i].Seq == s.CurrentSeq {
			return &s.Turns[i]
		}
	}
	return nil
}

// InterviewTurn 一轮问答。Seq 从 1 开始连续递增；评估完成后整条记录不可再修改。
type InterviewTurn struct {
	BaseModel
	SessionID  string     `gorm:"type:varchar(36);uniqueIndex:idx_session_seq" json:"sessionId"`
	Seq        int        `gorm:"uniqueIndex:idx_session_seq" json:"seq"`
	Question   string     `gorm:"type:text" json:"question"`
	Category   string     `gorm:"type:varchar(64)" json:"category"`
	Difficulty Difficulty `gorm:"type:varchar(20)" json:"difficulty"`

	// 评估时用于关键词命中的期望概念，由问题生成器给出
	ExpectedKeywords []string `gorm:"type:json;serializer:json" json:"expectedKeywords,omitempty"`

	Answer      string     `gorm:"type:text" json:"answer,omitempty"`
	Answered    bool       `json:"answered"`
	Score       float64    `json:"score"`
	Feedback    string     `gorm:"type:text" json:"feedback,omitempty"`
	KeywordHits []string   `gorm:"type:json;serializer:json" json:"keywordHits,omitempty"`
	AskedAt     time.Time  `json:"askedAt"`
	AnsweredAt  *time.Time `json:"answeredAt,omitempty"`
}

func (InterviewTurn) TableName() string {
	return "interview_turns"
}

// InterviewReport 面试完成后由聚合器生成，一个会话仅有一份，生成后不可变
type InterviewReport struct {
	BaseModel
	SessionID string `gorm:"type:varchar(36);uniqueIndex" json:"sessionId"`

	OverallScore   float64            `json:"overallScore"`
	CategoryScores map[string]float64 `gorm:"type:json;serializer:json" json:"categoryScores"`

	Strengths       []string `gorm:"type:json;serializer:json" json:"strengths"`
	Weaknesses      []string `gorm:"type:json;serializer:json" json:"weaknesses"`
	Recommendations []string `gorm:"type:json;serializer:json" json:"recommendations"`

	Narrative       string `gorm:"type:text" json:"narrative"`
	NarrativeSource string `gorm:"type:varchar(16)" json:"narrativeSource"` // model / fallback

	QuestionsAnswered int     `json:"questionsAnswered"`
	DurationMinutes   float64 `json:"durationMinutes"`
}

func (InterviewReport) TableName() string {
	return "interview_reports"
}
