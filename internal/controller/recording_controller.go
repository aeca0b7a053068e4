package controller

import (
	"strconv"

	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// RecordingController 回答录音/录像的API入口
type RecordingController struct {
	RecordingService *service.RecordingService
}

func NewRecordingController(recordingService *service.RecordingService) *RecordingController {
	return &RecordingController{RecordingService: recordingService}
}

// @Summary 上传回答录制
// @Description 上传某一轮回答的录音或录像，服务端探测时长与格式并生成视频封面
// @Tags 录制
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "会话ID"
// @Param seq path int true "轮次"
// @Param file formData file true "媒体文件"
// @Success 201 {object} util.Response
// @Router /api/v1/interviews/{id}/turns/{seq}/recording [post]
func (c *RecordingController) Upload(ctx *gin.Context) {
	seq, err := strconv.Atoi(ctx.Param("seq"))
	if err != nil || seq < 1 {
		util.BadRequest(ctx, "invalid turn seq")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	rec, err := c.RecordingService.UploadRecording(ctx.Request.Context(), util.UserIDFromContext(ctx), ctx.Param("id"), seq, file)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, rec)
}

// @Summary 录制详情
// @Description 按ID读取录制元数据
// @Tags 录制
// @Produce json
// @Param id path string true "录制ID"
// @Success 200 {object} util.Response
// @Router /api/v1/recordings/{id} [get]
func (c *RecordingController) Get(ctx *gin.Context) {
	rec, err := c.RecordingService.GetRecording(ctx.Request.Context(), util.UserIDFromContext(ctx), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, rec)
}

// @Summary 会话录制列表
// @Description 列出某个面试会话下的全部录制
// @Tags 录制
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/v1/interviews/{id}/recordings [get]
func (c *RecordingController) ListBySession(ctx *gin.Context) {
	recs, err := c.RecordingService.ListSessionRecordings(ctx.Request.Context(), util.UserIDFromContext(ctx), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, recs)
}

// @Summary 回写分析信号
// @Description 外部分析方回写情绪等信号，服务端只存储不做推断
// @Tags 录制
// @Accept json
// @Produce json
// @Param id path string true "录制ID"
// @Param request body service.AttachSignalsRequest true "信号内容"
// @Success 200 {object} util.Response
// @Router /api/v1/recordings/{id}/signals [put]
func (c *RecordingController) AttachSignals(ctx *gin.Context) {
	var req service.AttachSignalsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rec, err := c.RecordingService.AttachSignals(ctx.Request.Context(), util.UserIDFromContext(ctx), ctx.Param("id"), req.Signals)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, rec)
}

// @Summary 删除录制
// @Description 删除录制的对象文件与元数据
// @Tags 录制
// @Produce json
// @Param id path string true "录制ID"
// @Success 200 {object} util.Response
// @Router /api/v1/recordings/{id} [delete]
func (c *RecordingController) Delete(ctx *gin.Context) {
	if err := c.RecordingService.DeleteRecording(ctx.Request.Context(), util.UserIDFromContext(ctx), ctx.Param("id")); err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
