package controller

import (
	"strconv"

	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// InterviewController 模拟面试会话的API入口
type InterviewController struct {
	InterviewService *service.InterviewService
}

func NewInterviewController(interviewService *service.InterviewService) *InterviewController {
	return &InterviewController{InterviewService: interviewService}
}

// @Summary 创建面试会话
// @Description 根据岗位配置创建会话并返回第一道面试题
// @Tags 面试
// @Accept json
// @Produce json
// @Param request body service.StartInterviewRequest true "面试配置"
// @Success 201 {object} util.Response
// @Router /api/v1/interviews [post]
func (c *InterviewController) Start(ctx *gin.Context) {
	var req service.StartInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.InterviewService.StartSession(ctx.Request.Context(), util.UserIDFromContext(ctx), &req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, resp)
}

// @Summary 提交回答
// @Description 评估当前轮回答；未到题量上限时返回下一题，否则返回面试报告
// @Tags 面试
// @Accept json
// @Produce json
// @Param id path string true "会话ID"
// @Param request body service.SubmitAnswerRequest true "回答内容"
// @Success 200 {object} util.Response
// @Router /api/v1/interviews/{id}/answers [post]
func (c *InterviewController) SubmitAnswer(ctx *gin.Context) {
	var req service.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.InterviewService.SubmitAnswer(ctx.Request.Context(), util.UserIDFromContext(ctx), ctx.Param("id"), &req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 查询会话状态
// @Description 返回会话当前状态与进度，终态会话附带失败原因
// @Tags 面试
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/v1/interviews/{id} [get]
func (c *InterviewController) GetStatus(ctx *gin.Context) {
	resp, err := c.InterviewService.GetStatus(ctx.Request.Context(), util.UserIDFromContext(ctx), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 暂停面试
// @Description 把进行中的会话切到暂停态，上下文原样保留
// @Tags 面试
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/v1/interviews/{id}/pause [post]
func (c *InterviewController) Pause(ctx *gin.Context) {
	resp, err := c.InterviewService.PauseSession(ctx.Request.Context(), util.UserIDFromContext(ctx), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 恢复面试
// @Description 把暂停中的会话恢复为进行中
// @Tags 面试
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/v1/interviews/{id}/resume [post]
func (c *InterviewController) Resume(ctx *gin.Context) {
	resp, err := c.InterviewService.ResumeSession(ctx.Request.Context(), util.UserIDFromContext(ctx), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 终止面试
// @Description 中止会话，已完成的问答全部保留
// @Tags 面试
// @Produce json
// @Param id path string true "会话ID"
// @Param cause query string false "终止原因"
// @Success 200 {object} util.Response
// @Router /api/v1/interviews/{id} [delete]
func (c *InterviewController) Abort(ctx *gin.Context) {
	resp, err := c.InterviewService.AbortSession(ctx.Request.Context(), util.UserIDFromContext(ctx), ctx.Param("id"), ctx.Query("cause"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 获取面试报告
// @Description 读取已完成会话的评估报告，未完成时返回404
// @Tags 面试
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/v1/interviews/{id}/report [get]
func (c *InterviewController) GetReport(ctx *gin.Context) {
	report, err := c.InterviewService.GetReport(ctx.Request.Context(), util.UserIDFromContext(ctx), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, report)
}

// @Summary 会话列表
// @Description 分页列出当前用户的历史面试会话
// @Tags 面试
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.PageResponse
// @Router /api/v1/interviews [get]
func (c *InterviewController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	sessions, total, err := c.InterviewService.ListSessions(ctx.Request.Context(), util.UserIDFromContext(ctx), limit, (page-1)*limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  sessions,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
