package controller

import (
	"strconv"

	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AnalysisController 文本与表现分析的API入口
type AnalysisController struct {
	AnalysisService *service.AnalysisService
}

func NewAnalysisController(analysisService *service.AnalysisService) *AnalysisController {
	return &AnalysisController{AnalysisService: analysisService}
}

// @Summary 提交分析任务
// @Description 对文本做情感/关键词/摘要分析，或对面试会话做表现分析
// @Tags 分析
// @Accept json
// @Produce json
// @Param request body service.AnalyzeRequest true "分析请求"
// @Success 201 {object} util.Response
// @Router /api/v1/analysis [post]
func (c *AnalysisController) Analyze(ctx *gin.Context) {
	var req service.AnalyzeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.AnalysisService.Analyze(ctx.Request.Context(), util.UserIDFromContext(ctx), &req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, task)
}

// @Summary 分析结果
// @Description 按ID读取分析任务与结果
// @Tags 分析
// @Produce json
// @Param id path string true "任务ID"
// @Success 200 {object} util.Response
// @Router /api/v1/analysis/{id} [get]
func (c *AnalysisController) GetAnalysis(ctx *gin.Context) {
	task, err := c.AnalysisService.GetAnalysis(ctx.Request.Context(), util.UserIDFromContext(ctx), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, task)
}

// @Summary 分析任务列表
// @Description 分页列出当前用户的分析任务
// @Tags 分析
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.PageResponse
// @Router /api/v1/analysis [get]
func (c *AnalysisController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	tasks, total, err := c.AnalysisService.ListAnalyses(ctx.Request.Context(), util.UserIDFromContext(ctx), limit, (page-1)*limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  tasks,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
