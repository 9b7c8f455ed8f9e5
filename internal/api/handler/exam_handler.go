package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"english-center/backend/internal/dto"
	"english-center/backend/internal/service"
	"english-center/backend/pkg/response"
)

// ExamHandler 考试与成绩模块 HTTP 处理器
type ExamHandler struct {
	examSvc service.ExamService
}

// NewExamHandler 创建 ExamHandler
func NewExamHandler(examSvc service.ExamService) *ExamHandler {
	return &ExamHandler{examSvc: examSvc}
}

// ListExams 班级考试列表
// GET /api/v1/exams?classroom_id=
func (h *ExamHandler) ListExams(c *gin.Context) {
	classroomID := c.Query("classroom_id")
	if classroomID == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	list, err := h.examSvc.ListByClassroom(c.Request.Context(), classroomID)
	if err != nil {
		h.handleExamError(c, err)
		return
	}

	response.OK(c, list)
}

// GetExam 考试详情
// GET /api/v1/exams/:id
func (h *ExamHandler) GetExam(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "考试ID不能为空")
		return
	}

	exam, err := h.examSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleExamError(c, err)
		return
	}

	response.OK(c, exam)
}

// CreateExam 创建考试
// POST /api/v1/exams
func (h *ExamHandler) CreateExam(c *gin.Context) {
	var req dto.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	exam, err := h.examSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleExamError(c, err)
		return
	}

	response.Created(c, exam)
}

// UpdateExam 更新考试
// PUT /api/v1/exams/:id
func (h *ExamHandler) UpdateExam(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "考试ID不能为空")
		return
	}

	var req dto.UpdateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	exam, err := h.examSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleExamError(c, err)
		return
	}

	response.OK(c, exam)
}

// DeleteExam 删除考试（软删除）
// DELETE /api/v1/exams/:id
func (h *ExamHandler) DeleteExam(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "考试ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.examSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleExamError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── 成绩 ──

// BatchScores 批量录入/更新成绩（同一学员重复提交覆盖旧值）
// POST /api/v1/exams/:id/scores
func (h *ExamHandler) BatchScores(c *gin.Context) {
	examID := c.Param("id")
	if examID == "" {
		response.BadRequest(c, 10001, "考试ID不能为空")
		return
	}

	var req dto.BatchScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	scores, err := h.examSvc.BatchScores(c.Request.Context(), examID, &req, callerID)
	if err != nil {
		h.handleExamError(c, err)
		return
	}

	response.OK(c, scores)
}

// ListExamScores 整场考试成绩单
// GET /api/v1/exams/:id/scores
func (h *ExamHandler) ListExamScores(c *gin.Context) {
	examID := c.Param("id")
	if examID == "" {
		response.BadRequest(c, 10001, "考试ID不能为空")
		return
	}

	scores, err := h.examSvc.ListScoresByExam(c.Request.Context(), examID)
	if err != nil {
		h.handleExamError(c, err)
		return
	}

	response.OK(c, scores)
}

// ListStudentScores 学员历次成绩
// GET /api/v1/students/:id/scores
func (h *ExamHandler) ListStudentScores(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		response.BadRequest(c, 10001, "学员ID不能为空")
		return
	}

	scores, err := h.examSvc.ListScoresByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.handleExamError(c, err)
		return
	}

	response.OK(c, scores)
}

// handleExamError 统一处理考试模块业务错误
func (h *ExamHandler) handleExamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExamNotFound):
		response.NotFound(c, 19001, "考试不存在")
	case errors.Is(err, service.ErrClassroomNotFound):
		response.BadRequest(c, 19002, "班级不存在")
	case errors.Is(err, service.ErrScoreExceedsMax):
		response.BadRequest(c, 19003, "成绩超出该考试满分")
	case errors.Is(err, service.ErrScoreNotEnrolled):
		response.BadRequest(c, 19004, "学员未报名该考试所属班级")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 19005, "学员不存在")
	default:
		response.InternalError(c)
	}
}
