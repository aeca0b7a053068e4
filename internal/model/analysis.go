package model

// AnalysisType 文本/表现分析任务的类型
type AnalysisType string

const (
	AnalysisSentiment   AnalysisType = "sentiment"
	AnalysisKeywords    AnalysisType = "keywords"
	AnalysisSummary     AnalysisType = "summary"
	AnalysisPerformance AnalysisType = "interview_performance"
)

func ValidAnalysisType(t AnalysisType) bool {
	switch t {
	case AnalysisSentiment, AnalysisKeywords, AnalysisSummary, AnalysisPerformance:
		return true
	}
	return false
}

// AnalysisStatus 分析任务状态
type AnalysisStatus string

const (
	AnalysisPending   AnalysisStatus = "pending"
	AnalysisCompleted AnalysisStatus = "completed"
	AnalysisFailed    AnalysisStatus = "failed"
)

type AnalysisRequest struct {
	UUIDBase
	UserID       string         `gorm:"index;type:varchar(64)" json:"userId"`
	SessionID    string         `gorm:"index;type:varchar(36)" json:"sessionId,omitempty"` // 面试表现分析时引用
	AnalysisType AnalysisType   `gorm:"type:varchar(32)" json:"analysisType"`
	InputText    string         `gorm:"type:text" json:"inputText,omitempty"`
	Result       map[string]any `gorm:"type:json;serializer:json" json:"result,omitempty"`
	Status       AnalysisStatus `gorm:"type:varchar(16)" json:"status"`
	ErrorMessage string         `gorm:"type:varchar(512)" json:"errorMessage,omitempty"`
	ProcessingMs int64          `json:"processingMs"`
}

func (AnalysisRequest) TableName() string {
	return "analysis_requests"
}
