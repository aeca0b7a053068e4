package controller

import (
	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// FeedbackController 评估反馈的API入口
type FeedbackController struct {
	FeedbackService *service.FeedbackService
}

func NewFeedbackController(feedbackService *service.FeedbackService) *FeedbackController {
	return &FeedbackController{FeedbackService: feedbackService}
}

// @Summary 提交反馈
// @Description 对某轮评估提交反馈，负面类型必须填写说明
// @Tags 反馈
// @Accept json
// @Produce json
// @Param request body service.SubmitFeedbackRequest true "反馈内容"
// @Success 201 {object} util.Response
// @Router /api/v1/feedback [post]
func (c *FeedbackController) Submit(ctx *gin.Context) {
	var req service.SubmitFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	fb, err := c.FeedbackService.SubmitFeedback(ctx.Request.Context(), util.UserIDFromContext(ctx), &req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, fb)
}

// @Summary 会话反馈列表
// @Description 列出某个面试会话下的全部反馈
// @Tags 反馈
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/v1/feedback/sessions/{id} [get]
func (c *FeedbackController) ListBySession(ctx *gin.Context) {
	items, err := c.FeedbackService.ListSessionFeedback(ctx.Request.Context(), util.UserIDFromContext(ctx), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, items)
}

// @Summary 反馈统计
// @Description 按类型汇总全量反馈数
// @Tags 反馈
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/v1/feedback/stats [get]
func (c *FeedbackController) Stats(ctx *gin.Context) {
	stats, err := c.FeedbackService.FeedbackStats(ctx.Request.Context())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}
