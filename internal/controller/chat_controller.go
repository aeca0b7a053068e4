package controller

import (
	"strconv"

	"mock_interview_backend/internal/service"
	"mock_interview_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ChatController 面试教练对话的API入口
type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// @Summary 创建对话
// @Description 新建教练对话，关联面试会话后回答会引用对应的报告与问答记录
// @Tags 教练对话
// @Accept json
// @Produce json
// @Param request body service.CreateConversationRequest true "对话配置"
// @Success 201 {object} util.Response
// @Router /api/v1/chat/conversations [post]
func (c *ChatController) CreateConversation(ctx *gin.Context) {
	var req service.CreateConversationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	conv, err := c.ChatService.CreateConversation(ctx.Request.Context(), util.UserIDFromContext(ctx), &req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, conv)
}

// @Summary 对话列表
// @Description 分页列出当前用户的教练对话
// @Tags 教练对话
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.PageResponse
// @Router /api/v1/chat/conversations [get]
func (c *ChatController) ListConversations(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	convs, total, err := c.ChatService.ListConversations(ctx.Request.Context(), util.UserIDFromContext(ctx), limit, (page-1)*limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  convs,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 对话详情
// @Description 返回对话及全部历史消息
// @Tags 教练对话
// @Produce json
// @Param id path string true "对话ID"
// @Success 200 {object} util.Response
// @Router /api/v1/chat/conversations/{id} [get]
func (c *ChatController) GetConversation(ctx *gin.Context) {
	conv, err := c.ChatService.GetConversation(ctx.Request.Context(), util.UserIDFromContext(ctx), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, conv)
}

// @Summary 删除对话
// @Description 删除对话及其全部消息
// @Tags 教练对话
// @Produce json
// @Param id path string true "对话ID"
// @Success 200 {object} util.Response
// @Router /api/v1/chat/conversations/{id} [delete]
func (c *ChatController) DeleteConversation(ctx *gin.Context) {
	if err := c.ChatService.DeleteConversation(ctx.Request.Context(), util.UserIDFromContext(ctx), ctx.Param("id")); err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 发送消息
// @Description 发送消息并同步返回完整回复
// @Tags 教练对话
// @Accept json
// @Produce json
// @Param id path string true "对话ID"
// @Param request body service.ChatMessageRequest true "消息内容"
// @Success 200 {object} util.Response
// @Router /api/v1/chat/conversations/{id}/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	var req service.ChatMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.ChatService.SendMessage(ctx.Request.Context(), util.UserIDFromContext(ctx), ctx.Param("id"), req.Message)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, reply)
}

// @Summary 发送消息（流式）
// @Description 发送消息并以SSE流式返回回复分片
// @Tags 教练对话
// @Accept json
// @Produce text/event-stream
// @Param id path string true "对话ID"
// @Param request body service.ChatMessageRequest true "消息内容"
// @Success 200 {string} string "SSE流"
// @Router /api/v1/chat/conversations/{id}/messages/stream [post]
func (c *ChatController) SendMessageStream(ctx *gin.Context) {
	var req service.ChatMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	stream, errChan, err := c.ChatService.SendMessageStream(ctx.Request.Context(), util.UserIDFromContext(ctx), ctx.Param("id"), req.Message)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("Transfer-Encoding", "chunked")

	for content := range stream {
		ctx.SSEvent("message", content)
		ctx.Writer.Flush()
	}

	if err := <-errChan; err != nil {
		ctx.SSEvent("error", err.Error())
		ctx.Writer.Flush()
	}

	ctx.SSEvent("end", "done")
	ctx.Writer.Flush()
}
