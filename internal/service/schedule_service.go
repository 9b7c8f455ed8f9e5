package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"english-center/backend/internal/dto"
	"english-center/backend/internal/model"
	"english-center/backend/internal/repository"
	"english-center/backend/internal/timetable"
	"english-center/backend/pkg/redis"
)

// ── 排课模块业务错误 ──

var (
	ErrScheduleNotFound = errors.New("排课不存在")
	ErrScheduleConflict = errors.New("与该班级已有排课时间冲突")
)

// ScheduleService 周期排课业务接口
type ScheduleService interface {
	Create(ctx context.Context, req *dto.CreateScheduleRequest, callerID string) (*dto.ScheduleResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ScheduleResponse, error)
	List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest, callerID string) (*dto.ScheduleResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type scheduleService struct {
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, rdb: rdb, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateScheduleRequest, callerID string) (*dto.ScheduleResponse, error) {
	if _, err := s.repo.Classroom.GetByID(ctx, req.ClassroomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassroomNotFound
		}
		s.logger.Error("查询班级失败", zap.Error(err))
		return nil, err
	}

	weekday, err := timetable.ParseWeekday(req.Weekday)
	if err != nil {
		return nil, err
	}
	candidate := timetable.ScheduleSlot{
		Weekday:   string(weekday),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkConflict(ctx, req.ClassroomID, "", candidate); err != nil {
		return nil, err
	}

	schedule := &model.Schedule{
		ClassroomID: req.ClassroomID,
		Weekday:     string(weekday), // 统一存小写
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	schedule.CreatedBy = &callerID
	schedule.UpdatedBy = &callerID

	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		s.logger.Error("创建排课失败", zap.Error(err))
		return nil, err
	}

	s.invalidateTimetableCache(ctx)
	return s.toScheduleResponse(schedule), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *scheduleService) GetByID(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询排课失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toScheduleResponse(schedule), nil
}

// ────────────────────── List ──────────────────────

func (s *scheduleService) List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleResponse, error) {
	var (
		schedules []model.Schedule
		err       error
	)
	switch {
	case req.ClassroomID != "":
		schedules, err = s.repo.Schedule.ListByClassroom(ctx, req.ClassroomID)
	case req.TeacherID != "":
		schedules, err = s.repo.Schedule.ListByTeacher(ctx, req.TeacherID)
	default:
		schedules, err = s.repo.Schedule.ListAllActive(ctx)
	}
	if err != nil {
		s.logger.Error("列出排课失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, *s.toScheduleResponse(&schedules[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *scheduleService) Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest, callerID string) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询排课失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Weekday != nil {
		weekday, err := timetable.ParseWeekday(*req.Weekday)
		if err != nil {
			return nil, err
		}
		schedule.Weekday = string(weekday)
	}
	if req.StartTime != nil {
		schedule.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		schedule.EndTime = *req.EndTime
	}

	candidate := timetable.ScheduleSlot{
		Weekday:   schedule.Weekday,
		StartTime: schedule.StartTime,
		EndTime:   schedule.EndTime,
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkConflict(ctx, schedule.ClassroomID, schedule.ScheduleID, candidate); err != nil {
		return nil, err
	}

	schedule.UpdatedBy = &callerID
	if err := s.repo.Schedule.Update(ctx, schedule); err != nil {
		s.logger.Error("更新排课失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.invalidateTimetableCache(ctx)
	return s.toScheduleResponse(schedule), nil
}

// ────────────────────── Delete ──────────────────────

func (s *scheduleService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Schedule.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("查询排课失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Schedule.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除排课失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.invalidateTimetableCache(ctx)
	return nil
}

// ── 内部辅助方法 ──

// checkConflict 同一班级、同一星期内起止时间不得与既有排课相交。
// excludeID 用于更新场景排除自身。
func (s *scheduleService) checkConflict(ctx context.Context, classroomID, excludeID string, candidate timetable.ScheduleSlot) error {
	existing, err := s.repo.Schedule.ListByClassroom(ctx, classroomID)
	if err != nil {
		s.logger.Error("查询既有排课失败", zap.Error(err))
		return err
	}

	for i := range existing {
		other := &existing[i]
		if other.ScheduleID == excludeID {
			continue
		}
		if !strings.EqualFold(other.Weekday, candidate.Weekday) {
			continue
		}
		overlap, err := timetable.TimeRangesOverlap(candidate.StartTime, candidate.EndTime, other.StartTime, other.EndTime)
		if err != nil {
			// 既有脏数据不阻塞新排课，网格构建时会单独跳过
			s.logger.Warn("既有排课时间格式非法，跳过冲突检查",
				zap.String("schedule_id", other.ScheduleID), zap.Error(err))
			continue
		}
		if overlap {
			return ErrScheduleConflict
		}
	}
	return nil
}

// invalidateTimetableCache 排课变更后清空周课表缓存
func (s *scheduleService) invalidateTimetableCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.CacheDelPrefix(ctx, timetableCachePrefix); err != nil {
		s.logger.Warn("清理课表缓存失败", zap.Error(err))
	}
}

func (s *scheduleService) toScheduleResponse(sc *model.Schedule) *dto.ScheduleResponse {
	resp := &dto.ScheduleResponse{
		ID:          sc.ScheduleID,
		ClassroomID: sc.ClassroomID,
		Weekday:     sc.Weekday,
		StartTime:   sc.StartTime,
		EndTime:     sc.EndTime,
		CreatedAt:   sc.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   sc.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if sc.Classroom != nil {
		resp.ClassroomName = sc.Classroom.Name
		resp.ClassStartDate = sc.Classroom.StartDate.Format("2006-01-02")
		resp.ClassEndDate = sc.Classroom.EndDate.Format("2006-01-02")
	}
	return resp
}
