package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Leela-Pavan/EduTrack/internal/dto"
	"github.com/Leela-Pavan/EduTrack/internal/service"
	"github.com/Leela-Pavan/EduTrack/pkg/response"
)

// GroupHandler 班组与科目分配模块 HTTP 处理器
type GroupHandler struct {
	groupSvc service.GroupService
}

// NewGroupHandler 创建 GroupHandler
func NewGroupHandler(groupSvc service.GroupService) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc}
}

// Create 新增班组
// POST /api/v1/groups
func (h *GroupHandler) Create(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	group, err := h.groupSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleGroupError(c, err)
		return
	}

	response.Created(c, group)
}

// Get 获取班组详情
// GET /api/v1/groups/:id
func (h *GroupHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 15001, "班组ID不能为空")
		return
	}

	group, err := h.groupSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleGroupError(c, err)
		return
	}

	response.OK(c, group)
}

// List 分页获取班组列表
// GET /api/v1/groups
func (h *GroupHandler) List(c *gin.Context) {
	var req dto.GroupListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	groups, total, err := h.groupSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleGroupError(c, err)
		return
	}

	response.OKPage(c, groups, total, req.GetPage(), req.GetPageSize())
}

// Update 更新班组
// PUT /api/v1/groups/:id
func (h *GroupHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 15001, "班组ID不能为空")
		return
	}

	var req dto.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	group, err := h.groupSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleGroupError(c, err)
		return
	}

	response.OK(c, group)
}

// Delete 删除班组
// DELETE /api/v1/groups/:id
func (h *GroupHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 15001, "班组ID不能为空")
		return
	}

	if err := h.groupSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleGroupError(c, err)
		return
	}

	response.OK(c, nil)
}

// AssignSubject 为班组分配科目（排课需求）
// POST /api/v1/groups/:id/subjects
func (h *GroupHandler) AssignSubject(c *gin.Context) {
	groupID := c.Param("id")
	if groupID == "" {
		response.BadRequest(c, 15001, "班组ID不能为空")
		return
	}

	var req dto.AssignSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	assignment, err := h.groupSvc.AssignSubject(c.Request.Context(), groupID, &req)
	if err != nil {
		h.handleGroupError(c, err)
		return
	}

	response.Created(c, assignment)
}

// ListAssignments 获取班组的科目分配列表
// GET /api/v1/groups/:id/subjects
func (h *GroupHandler) ListAssignments(c *gin.Context) {
	groupID := c.Param("id")
	if groupID == "" {
		response.BadRequest(c, 15001, "班组ID不能为空")
		return
	}

	assignments, err := h.groupSvc.ListAssignments(c.Request.Context(), groupID)
	if err != nil {
		h.handleGroupError(c, err)
		return
	}

	response.OK(c, gin.H{"list": assignments})
}

// UpdateAssignment 更新科目分配（调整教师、周课时等）
// PUT /api/v1/group-subjects/:id
func (h *GroupHandler) UpdateAssignment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 15001, "分配ID不能为空")
		return
	}

	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	assignment, err := h.groupSvc.UpdateAssignment(c.Request.Context(), id, &req)
	if err != nil {
		h.handleGroupError(c, err)
		return
	}

	response.OK(c, assignment)
}

// RemoveAssignment 移除科目分配
// DELETE /api/v1/group-subjects/:id
func (h *GroupHandler) RemoveAssignment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 15001, "分配ID不能为空")
		return
	}

	if err := h.groupSvc.RemoveAssignment(c.Request.Context(), id); err != nil {
		h.handleGroupError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleGroupError 统一处理班组模块业务错误
func (h *GroupHandler) handleGroupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 15101, "班组不存在")
	case errors.Is(err, service.ErrGroupCodeExists):
		response.BadRequest(c, 15102, "班组编号已存在")
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 15103, "科目分配不存在")
	case errors.Is(err, service.ErrTeacherNotQualified):
		response.BadRequest(c, 15104, "教师不具备该科目的授课资质")
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 12101, "教师不存在")
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 13101, "科目不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/group_handler.go
