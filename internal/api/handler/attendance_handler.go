package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"english-center/backend/internal/dto"
	"english-center/backend/internal/service"
	"english-center/backend/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// BatchRecord 整课次批量点名（重复提交覆盖旧记录）
// POST /api/v1/attendances
func (h *AttendanceHandler) BatchRecord(c *gin.Context) {
	var req dto.BatchAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	records, err := h.attendanceSvc.BatchRecord(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, records)
}

// ListAttendances 考勤查询（按课次+日期，或按学员+时间段）
// GET /api/v1/attendances?schedule_id=&date= 或 ?student_id=&from=&to=
func (h *AttendanceHandler) ListAttendances(c *gin.Context) {
	var req dto.AttendanceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	var (
		records []dto.AttendanceResponse
		err     error
	)
	switch {
	case req.ScheduleID != "":
		records, err = h.attendanceSvc.ListBySchedule(c.Request.Context(), req.ScheduleID, req.Date)
	case req.StudentID != "":
		records, err = h.attendanceSvc.ListByStudent(c.Request.Context(), req.StudentID, req.From, req.To)
	default:
		response.BadRequest(c, 10001, "schedule_id 和 student_id 至少提供一个")
		return
	}
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, records)
}

// handleAttendanceError 统一处理考勤模块业务错误
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.BadRequest(c, 20001, "排课不存在")
	case errors.Is(err, service.ErrAttendanceWrongDay):
		response.BadRequest(c, 20002, "点名日期与排课星期不符")
	case errors.Is(err, service.ErrAttendanceOutOfRange):
		response.BadRequest(c, 20003, "点名日期不在班级有效范围内")
	case errors.Is(err, service.ErrAttendanceNotEnrolled):
		response.BadRequest(c, 20004, "学员未报名该排课所属班级")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 20005, "学员不存在")
	default:
		response.InternalError(c)
	}
}
