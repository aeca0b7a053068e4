package util

import "errors"

var (
	ErrInvalidConfiguration = errors.New("面试配置无效")
	ErrSessionNotFound      = errors.New("面试会话不存在")
	ErrSessionExpired       = errors.New("面试会话已过期")
	ErrSessionBusy          = errors.New("session busy, another operation in flight")
	ErrStaleTurn            = errors.New("stale turn sequence")
	ErrInvalidTransition    = errors.New("operation not allowed in current session state")
	ErrReportNotReady       = errors.New("面试报告尚未生成")
	ErrConversationNotFound = errors.New("对话不存在")
	ErrAnalysisNotFound     = errors.New("分析记录不存在")
	ErrRecordingNotFound    = errors.New("recording not found")
	ErrUnsupportedMedia     = errors.New("不支持的媒体格式")
	ErrRecordingTooLarge    = errors.New("录制文件超出大小限制")
	ErrCommentRequired      = errors.New("负面反馈必须填写说明")
	ErrPromptRejected       = errors.New("输入内容包含不允许的片段")
)
