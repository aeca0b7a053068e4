package model

// AnswerRecording 候选人回答的录音/录像工件。
// 情绪等信号由外部提供方写入 Signals，本服务只存储不做推断。
type AnswerRecording struct {
	UUIDBase
	SessionID string `gorm:"index;type:varchar(36)" json:"sessionId"`
	TurnSeq   int    `json:"turnSeq"`

	ObjectPath    string `gorm:"type:varchar(512)" json:"objectPath"`
	ThumbnailPath string `gorm:"type:varchar(512)" json:"thumbnailPath,omitempty"`
	MimeType      string `gorm:"type:varchar(64)" json:"mimeType"`

	DurationSeconds float64 `json:"durationSeconds"`
	SizeBytes       int64   `json:"sizeBytes"`
	Format          string  `gorm:"type:varchar(32)" json:"format"`
	HasVideo        bool    `json:"hasVideo"`

	Signals map[string]any `gorm:"type:json;serializer:json" json:"signals,omitempty"`
}

func (AnswerRecording) TableName() string {
	return "answer_recordings"
}
