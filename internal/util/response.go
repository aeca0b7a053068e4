package util

import (
	"errors"
	"net/http"

	"mock_interview_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func TooManyRequests(c *gin.Context, message string) {
	Error(c, http.StatusTooManyRequests, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// RespondError 将领域错误映射为HTTP响应，未识别的错误按500处理并记录日志
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidConfiguration),
		errors.Is(err, ErrCommentRequired),
		errors.Is(err, ErrPromptRejected):
		BadRequest(c, err.Error())
	case errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrConversationNotFound),
		errors.Is(err, ErrAnalysisNotFound),
		errors.Is(err, ErrRecordingNotFound),
		errors.Is(err, ErrReportNotReady):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrSessionExpired):
		Error(c, http.StatusGone, err.Error())
	case errors.Is(err, ErrUnsupportedMedia):
		Error(c, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, ErrRecordingTooLarge):
		Error(c, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, ErrStaleTurn),
		errors.Is(err, ErrInvalidTransition):
		Conflict(c, err.Error())
	case errors.Is(err, ErrSessionBusy):
		TooManyRequests(c, err.Error())
	default:
		LogInternalError(c, err)
	}
}
