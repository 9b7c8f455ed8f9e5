package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"english-center/backend/internal/dto"
	"english-center/backend/internal/model"
	"english-center/backend/internal/repository"
	"english-center/backend/internal/timetable"
)

// ── 考勤模块业务错误 ──

var (
	ErrAttendanceWrongDay    = errors.New("点名日期与排课星期不符")
	ErrAttendanceOutOfRange  = errors.New("点名日期不在班级有效范围内")
	ErrAttendanceNotEnrolled = errors.New("学员未报名该排课所属班级")
)

// AttendanceService 考勤业务接口
type AttendanceService interface {
	BatchRecord(ctx context.Context, req *dto.BatchAttendanceRequest, callerID string) ([]dto.AttendanceResponse, error)
	ListBySchedule(ctx context.Context, scheduleID, date string) ([]dto.AttendanceResponse, error)
	ListByStudent(ctx context.Context, studentID, from, to string) ([]dto.AttendanceResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

// ────────────────────── BatchRecord ──────────────────────
//
// 整课次批量点名：按 (schedule_id, student_id, date) 幂等覆盖。
// 点名日期必须与排课星期一致，且落在班级有效范围内。

func (s *attendanceService) BatchRecord(ctx context.Context, req *dto.BatchAttendanceRequest, callerID string) ([]dto.AttendanceResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询排课失败", zap.Error(err))
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrTimetableBadDate
	}

	// 日期必须是该排课的星期
	if wd, err := timetable.ParseWeekday(schedule.Weekday); err == nil {
		window := timetable.WeekWindowOf(date)
		if !timetable.ScheduleDateInWeek(wd, window.Start).Equal(date) {
			return nil, ErrAttendanceWrongDay
		}
	}

	// 日期必须落在班级有效范围内
	if schedule.Classroom != nil {
		if date.Before(schedule.Classroom.StartDate) || date.After(schedule.Classroom.EndDate) {
			return nil, ErrAttendanceOutOfRange
		}
	}

	enrollments, err := s.repo.Enrollment.ListByClassroom(ctx, schedule.ClassroomID)
	if err != nil {
		s.logger.Error("查询报名失败", zap.Error(err))
		return nil, err
	}
	// 仅在读学员可被点名，已退班/结业的报名记录不算
	enrolled := make(map[string]bool, len(enrollments))
	for i := range enrollments {
		if enrollments[i].Status == "active" {
			enrolled[enrollments[i].StudentID] = true
		}
	}

	records := make([]model.Attendance, 0, len(req.Records))
	for _, entry := range req.Records {
		if !enrolled[entry.StudentID] {
			return nil, ErrAttendanceNotEnrolled
		}
		record := model.Attendance{
			ScheduleID: req.ScheduleID,
			StudentID:  entry.StudentID,
			Date:       date,
			Status:     strings.ToLower(entry.Status),
			Note:       entry.Note,
		}
		record.CreatedBy = &callerID
		record.UpdatedBy = &callerID
		records = append(records, record)
	}

	if err := s.repo.Attendance.BatchUpsert(ctx, records); err != nil {
		s.logger.Error("批量点名失败", zap.Error(err))
		return nil, err
	}

	return s.ListBySchedule(ctx, req.ScheduleID, req.Date)
}

// ────────────────────── ListBySchedule ──────────────────────

func (s *attendanceService) ListBySchedule(ctx context.Context, scheduleID, date string) ([]dto.AttendanceResponse, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrTimetableBadDate
	}

	records, err := s.repo.Attendance.ListBySchedule(ctx, scheduleID, parsed)
	if err != nil {
		s.logger.Error("查询考勤失败", zap.Error(err))
		return nil, err
	}
	return s.toAttendanceResponses(records), nil
}

// ────────────────────── ListByStudent ──────────────────────

func (s *attendanceService) ListByStudent(ctx context.Context, studentID, from, to string) ([]dto.AttendanceResponse, error) {
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学员失败", zap.Error(err))
		return nil, err
	}

	var fromDate, toDate time.Time
	if from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, ErrTimetableBadDate
		}
		fromDate = parsed
	}
	if to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, ErrTimetableBadDate
		}
		toDate = parsed
	}

	records, err := s.repo.Attendance.ListByStudent(ctx, studentID, fromDate, toDate)
	if err != nil {
		s.logger.Error("查询考勤失败", zap.Error(err))
		return nil, err
	}
	return s.toAttendanceResponses(records), nil
}

// ── 内部辅助方法 ──

func (s *attendanceService) toAttendanceResponses(records []model.Attendance) []dto.AttendanceResponse {
	result := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		r := &records[i]
		resp := dto.AttendanceResponse{
			ID:         r.AttendanceID,
			ScheduleID: r.ScheduleID,
			Date:       r.Date.Format("2006-01-02"),
			Status:     r.Status,
			Note:       r.Note,
		}
		if r.Student != nil {
			resp.Student = &dto.StudentBrief{ID: r.Student.StudentID, Name: r.Student.Name}
		} else {
			resp.Student = &dto.StudentBrief{ID: r.StudentID}
		}
		result = append(result, resp)
	}
	return result
}
