package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"english-center/backend/internal/dto"
	"english-center/backend/internal/service"
	"english-center/backend/pkg/response"
)

// ClassroomHandler 班级与报名模块 HTTP 处理器
type ClassroomHandler struct {
	classroomSvc service.ClassroomService
}

// NewClassroomHandler 创建 ClassroomHandler
func NewClassroomHandler(classroomSvc service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{classroomSvc: classroomSvc}
}

// ListClassrooms 班级列表
// GET /api/v1/classrooms
func (h *ClassroomHandler) ListClassrooms(c *gin.Context) {
	var req dto.ClassroomListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.classroomSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetClassroom 班级详情
// GET /api/v1/classrooms/:id
func (h *ClassroomHandler) GetClassroom(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	classroom, err := h.classroomSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, classroom)
}

// CreateClassroom 创建班级
// POST /api/v1/classrooms
func (h *ClassroomHandler) CreateClassroom(c *gin.Context) {
	var req dto.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	classroom, err := h.classroomSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.Created(c, classroom)
}

// UpdateClassroom 更新班级
// PUT /api/v1/classrooms/:id
func (h *ClassroomHandler) UpdateClassroom(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	var req dto.UpdateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	classroom, err := h.classroomSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, classroom)
}

// DeleteClassroom 删除班级（软删除）
// DELETE /api/v1/classrooms/:id
func (h *ClassroomHandler) DeleteClassroom(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.classroomSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── 报名 ──

// Enroll 学员报名入班
// POST /api/v1/classrooms/:id/enrollments
func (h *ClassroomHandler) Enroll(c *gin.Context) {
	classroomID := c.Param("id")
	if classroomID == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	enrollment, err := h.classroomSvc.Enroll(c.Request.Context(), classroomID, &req, callerID)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.Created(c, enrollment)
}

// Unenroll 学员退班
// DELETE /api/v1/classrooms/:id/enrollments/:student_id
func (h *ClassroomHandler) Unenroll(c *gin.Context) {
	classroomID := c.Param("id")
	studentID := c.Param("student_id")
	if classroomID == "" || studentID == "" {
		response.BadRequest(c, 10001, "班级ID和学员ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.classroomSvc.Unenroll(c.Request.Context(), classroomID, studentID, callerID); err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListEnrollments 班级报名名单
// GET /api/v1/classrooms/:id/enrollments
func (h *ClassroomHandler) ListEnrollments(c *gin.Context) {
	classroomID := c.Param("id")
	if classroomID == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	list, err := h.classroomSvc.ListEnrollments(c.Request.Context(), classroomID)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, list)
}

// handleClassroomError 统一处理班级模块业务错误
func (h *ClassroomHandler) handleClassroomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassroomNotFound):
		response.NotFound(c, 16001, "班级不存在")
	case errors.Is(err, service.ErrCourseNotFound):
		response.BadRequest(c, 16002, "课程不存在")
	case errors.Is(err, service.ErrTeacherNotFound):
		response.BadRequest(c, 16003, "教师不存在")
	case errors.Is(err, service.ErrClassroomDateOrder):
		response.BadRequest(c, 16004, "结课日期不能早于开课日期")
	case errors.Is(err, service.ErrClassroomFull):
		response.Conflict(c, 16005, "班级已满")
	case errors.Is(err, service.ErrAlreadyEnrolled):
		response.Conflict(c, 16006, "学员已报名该班级")
	case errors.Is(err, service.ErrStudentNotFound):
		response.BadRequest(c, 16007, "学员不存在")
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.NotFound(c, 16008, "报名记录不存在")
	default:
		response.InternalError(c)
	}
}
