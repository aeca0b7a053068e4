package model

// FeedbackType 用户对问题/评语/报告的反馈类型
type FeedbackType string

const (
	FeedbackHelpful       FeedbackType = "helpful"
	FeedbackNotHelpful    FeedbackType = "not_helpful"
	FeedbackIncorrect     FeedbackType = "incorrect"
	FeedbackInappropriate FeedbackType = "inappropriate"
)

func ValidFeedbackType(t FeedbackType) bool {
	switch t {
	case FeedbackHelpful, FeedbackNotHelpful, FeedbackIncorrect, FeedbackInappropriate:
		return true
	}
	return false
}

// Negative 负面反馈必须附带说明
func (t FeedbackType) Negative() bool {
	return t == FeedbackNotHelpful || t == FeedbackIncorrect || t == FeedbackInappropriate
}

type UserFeedback struct {
	BaseModel
	UserID       string       `gorm:"index;type:varchar(64)" json:"userId"`
	SessionID    string       `gorm:"index;type:varchar(36)" json:"sessionId,omitempty"`
	TurnSeq      int          `json:"turnSeq,omitempty"`
	FeedbackType FeedbackType `gorm:"type:varchar(20)" json:"feedbackType"`
	Rating       int          `json:"rating,omitempty"` // 1-5，可选
	Comment      string       `gorm:"type:text" json:"comment,omitempty"`
}

func (UserFeedback) TableName() string {
	return "user_feedbacks"
}
