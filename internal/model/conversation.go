package model

// Conversation 面试助手的多轮对话。挂了 SessionID 的对话以对应面试的
// 报告和问答记录作为背景知识。
type Conversation struct {
	UUIDBase
	UserID    string `gorm:"index;type:varchar(64)" json:"userId"`
	SessionID string `gorm:"index;type:varchar(36)" json:"sessionId,omitempty"`
	Title     string `gorm:"type:varchar(255)" json:"title"`

	Messages []ConversationMessage `gorm:"foreignKey:ConversationID;references:ID" json:"messages,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}

type ConversationMessage struct {
	BaseModel
	ConversationID string `gorm:"index;type:varchar(36)" json:"conversationId"`
	Role           string `gorm:"type:varchar(16)" json:"role"` // user / assistant
	Content        string `gorm:"type:text" json:"content"`
	TokensUsed     int    `json:"tokensUsed"`
}

func (ConversationMessage) TableName() string {
	return "conversation_messages"
}
