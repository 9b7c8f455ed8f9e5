package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"english-center/backend/internal/dto"
	"english-center/backend/internal/service"
	"english-center/backend/pkg/response"
)

// StaffHandler 行政人员模块 HTTP 处理器
type StaffHandler struct {
	staffSvc service.StaffService
}

// NewStaffHandler 创建 StaffHandler
func NewStaffHandler(staffSvc service.StaffService) *StaffHandler {
	return &StaffHandler{staffSvc: staffSvc}
}

// ListStaff 行政人员列表
// GET /api/v1/staff
func (h *StaffHandler) ListStaff(c *gin.Context) {
	var req dto.StaffListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.staffSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleStaffError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetStaff 行政人员详情
// GET /api/v1/staff/:id
func (h *StaffHandler) GetStaff(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "人员ID不能为空")
		return
	}

	staff, err := h.staffSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleStaffError(c, err)
		return
	}

	response.OK(c, staff)
}

// CreateStaff 创建行政人员
// POST /api/v1/staff
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	staff, err := h.staffSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleStaffError(c, err)
		return
	}

	response.Created(c, staff)
}

// UpdateStaff 更新行政人员
// PUT /api/v1/staff/:id
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "人员ID不能为空")
		return
	}

	var req dto.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	staff, err := h.staffSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleStaffError(c, err)
		return
	}

	response.OK(c, staff)
}

// DeleteStaff 删除行政人员（软删除）
// DELETE /api/v1/staff/:id
func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "人员ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.staffSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleStaffError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleStaffError 统一处理行政人员模块业务错误
func (h *StaffHandler) handleStaffError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStaffNotFound):
		response.NotFound(c, 14001, "行政人员不存在")
	default:
		response.InternalError(c)
	}
}
